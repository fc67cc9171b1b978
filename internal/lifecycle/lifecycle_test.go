package lifecycle

import (
	"testing"

	"sahel-cargo/internal/domain/container"
	"sahel-cargo/internal/domain/parcel"

	"github.com/stretchr/testify/require"
)

func TestValidateContainerTransition_happyPath(t *testing.T) {
	path := []container.Status{
		container.StatusPreparation,
		container.StatusLoaded,
		container.StatusInTransit,
		container.StatusCustoms,
		container.StatusDelivered,
	}
	for i := 0; i < len(path)-1; i++ {
		require.NoError(t, ValidateContainerTransition(path[i], path[i+1]),
			"%s -> %s", path[i], path[i+1])
	}
}

func TestValidateContainerTransition_departureWithoutLoading(t *testing.T) {
	require.NoError(t, ValidateContainerTransition(container.StatusPreparation, container.StatusInTransit))
}

func TestValidateContainerTransition_rejectsSkips(t *testing.T) {
	require.Error(t, ValidateContainerTransition(container.StatusPreparation, container.StatusDelivered))
	require.Error(t, ValidateContainerTransition(container.StatusLoaded, container.StatusCustoms))
}

func TestValidateContainerTransition_terminalStates(t *testing.T) {
	for _, terminal := range []container.Status{container.StatusDelivered, container.StatusCancelled} {
		for _, next := range []container.Status{
			container.StatusPreparation, container.StatusLoaded,
			container.StatusInTransit, container.StatusCustoms,
		} {
			require.Error(t, ValidateContainerTransition(terminal, next),
				"%s -> %s should be rejected", terminal, next)
		}
	}
}

func TestValidateContainerTransition_customsCanResume(t *testing.T) {
	require.NoError(t, ValidateContainerTransition(container.StatusCustoms, container.StatusInTransit))
	require.NoError(t, ValidateContainerTransition(container.StatusCustoms, container.StatusDelivered))
}

func TestValidateContainerTransition_unknownStatus(t *testing.T) {
	require.Error(t, ValidateContainerTransition(container.StatusPreparation, container.Status("FLYING")))
	require.Error(t, ValidateContainerTransition(container.Status("FLYING"), container.StatusLoaded))
}

func TestValidatePackageTransition(t *testing.T) {
	require.NoError(t, ValidatePackageTransition(parcel.StatusRegistered, parcel.StatusCollected))
	require.NoError(t, ValidatePackageTransition(parcel.StatusCollected, parcel.StatusInContainer))
	require.NoError(t, ValidatePackageTransition(parcel.StatusCustoms, parcel.StatusReturned))
	require.Error(t, ValidatePackageTransition(parcel.StatusRegistered, parcel.StatusDelivered))
	require.Error(t, ValidatePackageTransition(parcel.StatusCancelled, parcel.StatusCollected))
}

func TestPackageStatusForContainer(t *testing.T) {
	got, ok := PackageStatusForContainer(container.StatusInTransit)
	require.True(t, ok)
	require.Equal(t, parcel.StatusInTransit, got)

	got, ok = PackageStatusForContainer(container.StatusDelivered)
	require.True(t, ok)
	require.Equal(t, parcel.StatusDelivered, got)

	_, ok = PackageStatusForContainer(container.StatusPreparation)
	require.False(t, ok)
	_, ok = PackageStatusForContainer(container.StatusCancelled)
	require.False(t, ok)
}
