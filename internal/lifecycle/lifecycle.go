// Package lifecycle guards container and package status transitions. Statuses
// may only move forward along the route; out-of-order moves need an explicit
// force flag from the operator.
package lifecycle

import (
	"fmt"

	"sahel-cargo/internal/domain/container"
	"sahel-cargo/internal/domain/parcel"
	appErrors "sahel-cargo/pkg/errors"
)

// State machine for container status transitions
var containerTransitions = map[container.Status][]container.Status{
	container.StatusPreparation: {
		container.StatusLoaded,
		container.StatusInTransit, // Departure recorded without a separate loading step
		container.StatusCancelled,
	},
	container.StatusLoaded: {
		container.StatusInTransit,
		container.StatusCancelled,
	},
	container.StatusInTransit: {
		container.StatusCustoms,
		container.StatusDelivered,
	},
	container.StatusCustoms: {
		container.StatusInTransit, // Released, continuing inland
		container.StatusDelivered,
	},
	container.StatusDelivered: {
		// Terminal state - no transitions
	},
	container.StatusCancelled: {
		// Terminal state - no transitions
	},
}

// State machine for package status transitions
var packageTransitions = map[parcel.Status][]parcel.Status{
	parcel.StatusRegistered: {
		parcel.StatusCollected,
		parcel.StatusCancelled,
	},
	parcel.StatusCollected: {
		parcel.StatusInContainer,
		parcel.StatusCancelled,
	},
	parcel.StatusInContainer: {
		parcel.StatusInTransit,
		parcel.StatusCancelled,
	},
	parcel.StatusInTransit: {
		parcel.StatusCustoms,
		parcel.StatusDelivered,
	},
	parcel.StatusCustoms: {
		parcel.StatusInTransit,
		parcel.StatusDelivered,
		parcel.StatusReturned,
	},
	parcel.StatusDelivered: {
		parcel.StatusReturned, // Refused by the recipient
	},
	parcel.StatusReturned:  {},
	parcel.StatusCancelled: {},
}

// ValidateContainerTransition checks if a container status transition is allowed
func ValidateContainerTransition(current, next container.Status) error {
	if !next.Valid() {
		return appErrors.NewAppError(
			"INVALID_STATUS",
			fmt.Sprintf("Unknown container status: %s", next),
			container.ErrInvalidStatus,
		)
	}

	allowed, exists := containerTransitions[current]
	if !exists {
		return appErrors.NewAppError(
			"INVALID_STATUS",
			fmt.Sprintf("Unknown current status: %s", current),
			container.ErrInvalidStatus,
		)
	}

	for _, s := range allowed {
		if next == s {
			return nil
		}
	}

	return appErrors.NewAppError(
		"INVALID_TRANSITION",
		fmt.Sprintf("Cannot transition container from %s to %s", current, next),
		container.ErrInvalidStatusTransition,
	)
}

// ValidatePackageTransition checks if a package status transition is allowed
func ValidatePackageTransition(current, next parcel.Status) error {
	if !next.Valid() {
		return appErrors.NewAppError(
			"INVALID_STATUS",
			fmt.Sprintf("Unknown package status: %s", next),
			parcel.ErrInvalidStatus,
		)
	}

	allowed, exists := packageTransitions[current]
	if !exists {
		return appErrors.NewAppError(
			"INVALID_STATUS",
			fmt.Sprintf("Unknown current status: %s", current),
			parcel.ErrInvalidStatus,
		)
	}

	for _, s := range allowed {
		if next == s {
			return nil
		}
	}

	return appErrors.NewAppError(
		"INVALID_TRANSITION",
		fmt.Sprintf("Cannot transition package from %s to %s", current, next),
		parcel.ErrInvalidStatusTransition,
	)
}

// AllowedContainerTransitions returns allowed next statuses
func AllowedContainerTransitions(current container.Status) []container.Status {
	return containerTransitions[current]
}

// AllowedPackageTransitions returns allowed next statuses
func AllowedPackageTransitions(current parcel.Status) []parcel.Status {
	return packageTransitions[current]
}

// PackageStatusForContainer maps a container status to the package status its
// contents should carry. The second return is false for container statuses
// that do not touch package state.
func PackageStatusForContainer(s container.Status) (parcel.Status, bool) {
	switch s {
	case container.StatusLoaded:
		return parcel.StatusInContainer, true
	case container.StatusInTransit:
		return parcel.StatusInTransit, true
	case container.StatusCustoms:
		return parcel.StatusCustoms, true
	case container.StatusDelivered:
		return parcel.StatusDelivered, true
	}
	return "", false
}
