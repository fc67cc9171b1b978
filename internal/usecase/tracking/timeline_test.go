package tracking

import (
	"testing"
	"time"

	domainContainer "sahel-cargo/internal/domain/container"
	domainParcel "sahel-cargo/internal/domain/parcel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestPackage(status domainParcel.Status) *domainParcel.Package {
	return &domainParcel.Package{
		ID:        uuid.New(),
		Number:    "PKG202501042",
		ClientID:  uuid.New(),
		Status:    status,
		Pieces:    1,
		CreatedAt: time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC),
	}
}

func newTestContainer(status domainContainer.Status) *domainContainer.Container {
	return &domainContainer.Container{
		ID:        uuid.New(),
		Number:    "CNT202501001",
		Status:    status,
		CreatedAt: time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestBuildTimelineFreshPackage(t *testing.T) {
	pkg := newTestPackage(domainParcel.StatusRegistered)

	entries := BuildTimeline(pkg, nil)

	require.Len(t, entries, 2)
	require.Equal(t, StageRegistered, entries[0].Status)
	require.True(t, entries[0].Completed)
	require.True(t, entries[0].Current)
	require.Contains(t, entries[0].Description, "02/01/2025")
	require.Equal(t, StageDelivered, entries[1].Status)
	require.False(t, entries[1].Completed)
	require.Equal(t, "En attente de livraison", entries[1].Description)
}

func TestBuildTimelineCollectedWithoutPickupDate(t *testing.T) {
	pkg := newTestPackage(domainParcel.StatusCollected)

	entries := BuildTimeline(pkg, nil)

	require.Len(t, entries, 3)
	require.Equal(t, StageCollected, entries[1].Status)
	require.False(t, entries[1].Completed)
	require.Equal(t, "En attente de collecte", entries[1].Description)
}

func TestBuildTimelineUsesMostRecentUpdateOnly(t *testing.T) {
	containerID := uuid.New()
	cont := newTestContainer(domainContainer.StatusInTransit)
	cont.ID = containerID

	// Most recent first, matching repository ordering.
	base := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	cont.Updates = []domainContainer.TrackingUpdate{
		{ContainerID: containerID, Location: "Lomé", Description: "Arrivé au port de Lomé", IsPublic: true, CreatedAt: base.Add(48 * time.Hour)},
		{ContainerID: containerID, Location: "En mer", Description: "Conteneur en transit", IsPublic: true, CreatedAt: base.Add(24 * time.Hour)},
		{ContainerID: containerID, Location: "Marseille", Description: "Départ du port", IsPublic: true, CreatedAt: base},
	}

	pkg := newTestPackage(domainParcel.StatusInTransit)
	pkg.ContainerID = &containerID
	pickup := time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC)
	pkg.PickupAt = &pickup

	entries := BuildTimeline(pkg, cont)

	require.Len(t, entries, 5)
	inTransit := entries[3]
	require.Equal(t, StageInTransit, inTransit.Status)
	require.Equal(t, "Arrivé au port de Lomé", inTransit.Description)
	require.Equal(t, "Lomé", inTransit.Location)
	require.True(t, inTransit.Completed)
	require.True(t, inTransit.Current)
	require.False(t, entries[4].Current)
}

func TestBuildTimelineSkipsInternalUpdates(t *testing.T) {
	containerID := uuid.New()
	cont := newTestContainer(domainContainer.StatusInTransit)
	cont.ID = containerID
	cont.Updates = []domainContainer.TrackingUpdate{
		{ContainerID: containerID, Location: "12.3686,-1.5275", Description: "Position GPS", IsPublic: false, CreatedAt: time.Now()},
	}

	pkg := newTestPackage(domainParcel.StatusInTransit)
	pkg.ContainerID = &containerID

	entries := BuildTimeline(pkg, cont)

	for _, e := range entries {
		require.NotEqual(t, StageInTransit, e.Status)
	}
}

func TestBuildPublicTimelinePrependsUpcomingEntry(t *testing.T) {
	containerID := uuid.New()
	cont := newTestContainer(domainContainer.StatusInTransit)
	cont.ID = containerID
	planned := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	cont.PlannedArrivalAt = &planned
	cont.Updates = []domainContainer.TrackingUpdate{
		{ContainerID: containerID, Location: "En route", Description: "Conteneur en transit", IsPublic: true, CreatedAt: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)},
	}

	pkg := newTestPackage(domainParcel.StatusInTransit)
	pkg.ContainerID = &containerID

	entries := BuildPublicTimeline(pkg, cont)

	require.Equal(t, StageUpcoming, entries[0].Status)
	require.False(t, entries[0].Completed)
	require.False(t, entries[0].Current)
	require.Contains(t, entries[0].Description, "15/02/2025")

	require.Equal(t, StageInTransit, entries[1].Status)
	require.True(t, entries[1].Current)

	for _, e := range entries[2:] {
		require.False(t, e.Current)
		require.True(t, e.Completed)
	}
}

func TestBuildPublicTimelineDeliveredContainer(t *testing.T) {
	containerID := uuid.New()
	cont := newTestContainer(domainContainer.StatusDelivered)
	cont.ID = containerID

	pkg := newTestPackage(domainParcel.StatusDelivered)
	pkg.ContainerID = &containerID
	delivered := time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC)
	pkg.DeliveryAt = &delivered

	entries := BuildPublicTimeline(pkg, cont)

	require.Equal(t, StageDelivered, entries[0].Status)
	require.True(t, entries[0].Completed)
	require.True(t, entries[0].Current)
	for _, e := range entries {
		require.NotEqual(t, StageUpcoming, e.Status)
	}
}
