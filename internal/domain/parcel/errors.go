package parcel

import "errors"

var (
	ErrPackageNotFound         = errors.New("package not found")
	ErrDuplicateNumber         = errors.New("number already in use")
	ErrShipmentNotFound        = errors.New("shipment not found")
	ErrPackageAlreadyAssigned  = errors.New("package already assigned to a container")
	ErrPackageNotAssigned      = errors.New("package is not assigned to a container")
	ErrInvalidStatus           = errors.New("invalid package status")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrMixedClients            = errors.New("shipment packages must belong to one client")
	ErrMixedContainers         = errors.New("shipment packages must share one container")
	ErrEmptyShipment           = errors.New("shipment must contain at least one package")
)
