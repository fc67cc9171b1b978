package container

import (
	"context"
	"testing"
	"time"

	domainContainer "sahel-cargo/internal/domain/container"
	domainParcel "sahel-cargo/internal/domain/parcel"
	"sahel-cargo/internal/usecase/notifier"
	appErrors "sahel-cargo/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeContainerRepo struct {
	containers map[uuid.UUID]*domainContainer.Container
	updates    []*domainContainer.TrackingUpdate

	// duplicateCreates makes the next N Create calls report a number conflict.
	duplicateCreates int
}

func newFakeContainerRepo() *fakeContainerRepo {
	return &fakeContainerRepo{containers: make(map[uuid.UUID]*domainContainer.Container)}
}

func (f *fakeContainerRepo) Create(ctx context.Context, c *domainContainer.Container) error {
	if f.duplicateCreates > 0 {
		f.duplicateCreates--
		return domainContainer.ErrContainerAlreadyExists
	}
	f.containers[c.ID] = c
	return nil
}

func (f *fakeContainerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domainContainer.Container, error) {
	c, ok := f.containers[id]
	if !ok {
		return nil, domainContainer.ErrContainerNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeContainerRepo) GetByNumber(ctx context.Context, number string) (*domainContainer.Container, error) {
	for _, c := range f.containers {
		if c.Number == number {
			copied := *c
			return &copied, nil
		}
	}
	return nil, domainContainer.ErrContainerNotFound
}

func (f *fakeContainerRepo) Update(ctx context.Context, c *domainContainer.Container) error {
	f.containers[c.ID] = c
	return nil
}

func (f *fakeContainerRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domainContainer.Status, location string) error {
	c, ok := f.containers[id]
	if !ok {
		return domainContainer.ErrContainerNotFound
	}
	c.Status = status
	if location != "" {
		c.CurrentLocation = location
	}
	return nil
}

func (f *fakeContainerRepo) SetActualDeparture(ctx context.Context, id uuid.UUID, at time.Time) error {
	f.containers[id].ActualDepartureAt = &at
	return nil
}

func (f *fakeContainerRepo) SetActualArrival(ctx context.Context, id uuid.UUID, at time.Time) error {
	f.containers[id].ActualArrivalAt = &at
	return nil
}

func (f *fakeContainerRepo) List(ctx context.Context, filter *domainContainer.Filter) ([]*domainContainer.Container, int64, error) {
	var out []*domainContainer.Container
	for _, c := range f.containers {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeContainerRepo) CreateUpdate(ctx context.Context, u *domainContainer.TrackingUpdate) error {
	f.updates = append(f.updates, u)
	if c, ok := f.containers[u.ContainerID]; ok {
		c.Updates = append([]domainContainer.TrackingUpdate{*u}, c.Updates...)
	}
	return nil
}

func (f *fakeContainerRepo) ListUpdates(ctx context.Context, id uuid.UUID, publicOnly bool) ([]domainContainer.TrackingUpdate, error) {
	var out []domainContainer.TrackingUpdate
	for _, u := range f.updates {
		if u.ContainerID == id && (!publicOnly || u.IsPublic) {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeParcelRepo struct {
	domainParcel.Repository
	packages  map[uuid.UUID]*domainParcel.Package
	shipments []*domainParcel.Shipment
}

func newFakeParcelRepo() *fakeParcelRepo {
	return &fakeParcelRepo{packages: make(map[uuid.UUID]*domainParcel.Package)}
}

func (f *fakeParcelRepo) ListByContainer(ctx context.Context, containerID uuid.UUID) ([]*domainParcel.Package, error) {
	var out []*domainParcel.Package
	for _, p := range f.packages {
		if p.ContainerID != nil && *p.ContainerID == containerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeParcelRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domainParcel.Status) error {
	f.packages[id].Status = status
	return nil
}

func (f *fakeParcelRepo) SetDelivery(ctx context.Context, id uuid.UUID, at time.Time) error {
	f.packages[id].DeliveryAt = &at
	return nil
}

func (f *fakeParcelRepo) ListShipmentsByContainer(ctx context.Context, containerID uuid.UUID) ([]*domainParcel.Shipment, error) {
	return f.shipments, nil
}

type notifyCall struct {
	update *domainContainer.TrackingUpdate
	mode   notifier.Mode
}

type fakeNotifier struct {
	calls []notifyCall
}

func (f *fakeNotifier) NotifyContainerUpdate(ctx context.Context, cont *domainContainer.Container, update *domainContainer.TrackingUpdate, mode notifier.Mode) (*notifier.Report, error) {
	f.calls = append(f.calls, notifyCall{update: update, mode: mode})
	return &notifier.Report{Total: 1, Success: 1}, nil
}

type serviceFixture struct {
	repo     *fakeContainerRepo
	parcels  *fakeParcelRepo
	notify   *fakeNotifier
	service  *Service
	cont     *domainContainer.Container
	operator uuid.UUID
}

func newServiceFixture(t *testing.T, status domainContainer.Status) *serviceFixture {
	t.Helper()

	f := &serviceFixture{
		repo:     newFakeContainerRepo(),
		parcels:  newFakeParcelRepo(),
		notify:   &fakeNotifier{},
		operator: uuid.New(),
	}
	f.service = NewService(f.repo, f.parcels, f.notify)

	f.cont = &domainContainer.Container{
		ID:        uuid.New(),
		Number:    "CNT202501001",
		Status:    status,
		CreatedBy: f.operator,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, f.repo.Create(context.Background(), f.cont))
	return f
}

func TestSetStatusSynthesizesOneUpdate(t *testing.T) {
	f := newServiceFixture(t, domainContainer.StatusLoaded)

	resp, err := f.service.SetStatus(context.Background(), "CNT202501001", f.operator, &SetStatusRequest{
		Status: string(domainContainer.StatusInTransit),
	})
	require.NoError(t, err)
	require.Equal(t, "IN_TRANSIT", resp.Status)

	require.Len(t, f.repo.updates, 1)
	update := f.repo.updates[0]
	require.Equal(t, "En route", update.Location)
	require.Equal(t, "Conteneur en transit", update.Description)
	require.True(t, update.IsPublic)

	require.Len(t, f.notify.calls, 1)
	require.Equal(t, notifier.ModeDispatch, f.notify.calls[0].mode)

	stored := f.repo.containers[f.cont.ID]
	require.NotNil(t, stored.ActualDepartureAt)
	require.Equal(t, "En route", stored.CurrentLocation)
}

func TestSetStatusFullLifecycle(t *testing.T) {
	f := newServiceFixture(t, domainContainer.StatusPreparation)
	ctx := context.Background()

	for _, status := range []domainContainer.Status{
		domainContainer.StatusLoaded,
		domainContainer.StatusInTransit,
		domainContainer.StatusCustoms,
		domainContainer.StatusDelivered,
	} {
		_, err := f.service.SetStatus(ctx, "CNT202501001", f.operator, &SetStatusRequest{Status: string(status)})
		require.NoError(t, err)
	}

	// One synthetic update and one notification batch per status change.
	require.Len(t, f.repo.updates, 4)
	require.Len(t, f.notify.calls, 4)

	stored := f.repo.containers[f.cont.ID]
	require.Equal(t, domainContainer.StatusDelivered, stored.Status)
	require.NotNil(t, stored.ActualDepartureAt)
	require.NotNil(t, stored.ActualArrivalAt)
}

func TestSetStatusRejectsInvalidTransition(t *testing.T) {
	f := newServiceFixture(t, domainContainer.StatusPreparation)

	_, err := f.service.SetStatus(context.Background(), "CNT202501001", f.operator, &SetStatusRequest{
		Status: string(domainContainer.StatusDelivered),
	})
	require.Error(t, err)

	require.Empty(t, f.repo.updates)
	require.Empty(t, f.notify.calls)
	require.Equal(t, domainContainer.StatusPreparation, f.repo.containers[f.cont.ID].Status)
}

func TestSetStatusForceOverridesValidation(t *testing.T) {
	f := newServiceFixture(t, domainContainer.StatusPreparation)

	resp, err := f.service.SetStatus(context.Background(), "CNT202501001", f.operator, &SetStatusRequest{
		Status: string(domainContainer.StatusDelivered),
		Force:  true,
	})
	require.NoError(t, err)
	require.Equal(t, "DELIVERED", resp.Status)

	require.Len(t, f.repo.updates, 1)
	require.Equal(t, "Conteneur arrivé à destination", f.repo.updates[0].Description)
}

func TestSetStatusCancelledProducesNoUpdate(t *testing.T) {
	f := newServiceFixture(t, domainContainer.StatusPreparation)

	_, err := f.service.SetStatus(context.Background(), "CNT202501001", f.operator, &SetStatusRequest{
		Status: string(domainContainer.StatusCancelled),
	})
	require.NoError(t, err)

	require.Empty(t, f.repo.updates)
	require.Empty(t, f.notify.calls)
}

func TestSetStatusCascadesPackages(t *testing.T) {
	f := newServiceFixture(t, domainContainer.StatusCustoms)

	pkg := &domainParcel.Package{
		ID:          uuid.New(),
		Number:      "PKG202501042",
		ContainerID: &f.cont.ID,
		Status:      domainParcel.StatusCustoms,
	}
	f.parcels.packages[pkg.ID] = pkg

	_, err := f.service.SetStatus(context.Background(), "CNT202501001", f.operator, &SetStatusRequest{
		Status: string(domainContainer.StatusDelivered),
	})
	require.NoError(t, err)

	require.Equal(t, domainParcel.StatusDelivered, pkg.Status)
	require.NotNil(t, pkg.DeliveryAt)
}

func TestAddTrackingUpdateNotifiesUnconditionally(t *testing.T) {
	f := newServiceFixture(t, domainContainer.StatusInTransit)

	resp, err := f.service.AddTrackingUpdate(context.Background(), f.cont.ID, f.operator, &AddUpdateRequest{
		Location:    "Port de Lomé",
		Description: "Arrivé au port, en attente de transbordement",
	})
	require.NoError(t, err)

	require.Equal(t, "Port de Lomé", resp.Update.Location)
	require.True(t, resp.Update.IsPublic)
	require.NotNil(t, resp.Notifications)
	require.Equal(t, 1, resp.Notifications.Success)

	require.Len(t, f.notify.calls, 1)
	require.Equal(t, notifier.ModeDispatch, f.notify.calls[0].mode)

	// Container status is untouched, only the location moves.
	stored := f.repo.containers[f.cont.ID]
	require.Equal(t, domainContainer.StatusInTransit, stored.Status)
	require.Equal(t, "Port de Lomé", stored.CurrentLocation)
}

func TestAddTrackingUpdateInternalTakesRecordOnlyPath(t *testing.T) {
	f := newServiceFixture(t, domainContainer.StatusInTransit)

	resp, err := f.service.AddTrackingUpdate(context.Background(), f.cont.ID, f.operator, &AddUpdateRequest{
		Location:    "12.3686,-1.5275",
		Description: "Position GPS",
		Internal:    true,
	})
	require.NoError(t, err)
	require.False(t, resp.Update.IsPublic)

	require.Len(t, f.notify.calls, 1)
	require.Equal(t, notifier.ModeRecordOnly, f.notify.calls[0].mode)
}

func TestListRejectsUnknownSortColumn(t *testing.T) {
	f := newServiceFixture(t, domainContainer.StatusPreparation)

	_, _, err := f.service.List(context.Background(), &ListContainersQuery{
		SortBy: "number; DROP TABLE containers--",
	})
	require.Error(t, err)
	require.Equal(t, "VALIDATION_ERROR", appErrors.CodeOf(err))

	_, _, err = f.service.List(context.Background(), &ListContainersQuery{
		SortOrder: "ASC, (SELECT 1)",
	})
	require.Error(t, err)
	require.Equal(t, "VALIDATION_ERROR", appErrors.CodeOf(err))

	_, _, err = f.service.List(context.Background(), &ListContainersQuery{
		SortBy:    "planned_departure_at",
		SortOrder: "asc",
	})
	require.NoError(t, err)
}

func TestCreateRegeneratesNumberOnConflict(t *testing.T) {
	f := newServiceFixture(t, domainContainer.StatusPreparation)
	f.repo.duplicateCreates = 2

	resp, err := f.service.Create(context.Background(), f.operator, &CreateContainerRequest{})
	require.NoError(t, err)
	require.Regexp(t, `^CNT\d{9}$`, resp.Number)
	require.Equal(t, 0, f.repo.duplicateCreates)
}

func TestCreateGivesUpAfterRepeatedConflicts(t *testing.T) {
	f := newServiceFixture(t, domainContainer.StatusPreparation)
	f.repo.duplicateCreates = 10

	_, err := f.service.Create(context.Background(), f.operator, &CreateContainerRequest{})
	require.ErrorIs(t, err, domainContainer.ErrContainerAlreadyExists)
}
