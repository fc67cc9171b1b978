package parcel

import (
	"context"
	"testing"
	"time"

	domainClient "sahel-cargo/internal/domain/client"
	domainContainer "sahel-cargo/internal/domain/container"
	domainParcel "sahel-cargo/internal/domain/parcel"
	appErrors "sahel-cargo/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeParcelRepo struct {
	domainParcel.Repository
	packages  map[uuid.UUID]*domainParcel.Package
	shipments map[uuid.UUID]*domainParcel.Shipment

	// duplicateCreates makes the next N Create calls report a number conflict.
	duplicateCreates int
}

func newFakeParcelRepo() *fakeParcelRepo {
	return &fakeParcelRepo{
		packages:  make(map[uuid.UUID]*domainParcel.Package),
		shipments: make(map[uuid.UUID]*domainParcel.Shipment),
	}
}

func (f *fakeParcelRepo) Create(ctx context.Context, pkg *domainParcel.Package) error {
	if f.duplicateCreates > 0 {
		f.duplicateCreates--
		return domainParcel.ErrDuplicateNumber
	}
	f.packages[pkg.ID] = pkg
	return nil
}

func (f *fakeParcelRepo) GetByID(ctx context.Context, id uuid.UUID) (*domainParcel.Package, error) {
	pkg, ok := f.packages[id]
	if !ok {
		return nil, domainParcel.ErrPackageNotFound
	}
	return pkg, nil
}

func (f *fakeParcelRepo) List(ctx context.Context, filter *domainParcel.Filter) ([]*domainParcel.Package, int64, error) {
	var out []*domainParcel.Package
	for _, p := range f.packages {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeParcelRepo) Update(ctx context.Context, pkg *domainParcel.Package) error {
	f.packages[pkg.ID] = pkg
	return nil
}

func (f *fakeParcelRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domainParcel.Status) error {
	f.packages[id].Status = status
	return nil
}

func (f *fakeParcelRepo) AssignContainer(ctx context.Context, packageID, containerID uuid.UUID) error {
	pkg := f.packages[packageID]
	pkg.ContainerID = &containerID
	pkg.Status = domainParcel.StatusInContainer
	return nil
}

func (f *fakeParcelRepo) SetPickup(ctx context.Context, id uuid.UUID, at time.Time) error {
	f.packages[id].PickupAt = &at
	return nil
}

func (f *fakeParcelRepo) SetDelivery(ctx context.Context, id uuid.UUID, at time.Time) error {
	f.packages[id].DeliveryAt = &at
	return nil
}

func (f *fakeParcelRepo) CreateShipment(ctx context.Context, shipment *domainParcel.Shipment) error {
	f.shipments[shipment.ID] = shipment
	for _, id := range shipment.PackageIDs {
		f.packages[id].ShipmentID = &shipment.ID
	}
	return nil
}

type fakeClientRepo struct {
	domainClient.Repository
	clients map[uuid.UUID]*domainClient.Client
}

func (f *fakeClientRepo) GetByID(ctx context.Context, id uuid.UUID) (*domainClient.Client, error) {
	cl, ok := f.clients[id]
	if !ok {
		return nil, domainClient.ErrClientNotFound
	}
	return cl, nil
}

type fakeContainerRepo struct {
	domainContainer.Repository
	containers map[uuid.UUID]*domainContainer.Container
}

func (f *fakeContainerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domainContainer.Container, error) {
	c, ok := f.containers[id]
	if !ok {
		return nil, domainContainer.ErrContainerNotFound
	}
	return c, nil
}

type fixture struct {
	parcels    *fakeParcelRepo
	clients    *fakeClientRepo
	containers *fakeContainerRepo
	service    *Service
	clientID   uuid.UUID
	operator   uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		parcels:    newFakeParcelRepo(),
		clients:    &fakeClientRepo{clients: make(map[uuid.UUID]*domainClient.Client)},
		containers: &fakeContainerRepo{containers: make(map[uuid.UUID]*domainContainer.Container)},
		operator:   uuid.New(),
	}
	f.service = NewService(f.parcels, f.clients, f.containers)

	cl := &domainClient.Client{ID: uuid.New(), Name: "Sender", RecipientName: "Recipient"}
	f.clients.clients[cl.ID] = cl
	f.clientID = cl.ID
	return f
}

func (f *fixture) addContainer(status domainContainer.Status) *domainContainer.Container {
	c := &domainContainer.Container{ID: uuid.New(), Number: "CNT202501001", Status: status}
	f.containers.containers[c.ID] = c
	return c
}

func (f *fixture) addPackage(status domainParcel.Status, containerID *uuid.UUID) *domainParcel.Package {
	pkg := &domainParcel.Package{
		ID:            uuid.New(),
		Number:        "PKG202501042",
		ClientID:      f.clientID,
		ContainerID:   containerID,
		Status:        status,
		Pieces:        1,
		PaymentStatus: domainParcel.PaymentPending,
	}
	f.parcels.packages[pkg.ID] = pkg
	return pkg
}

func TestCreatePackageDefaults(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.CreatePackage(context.Background(), f.operator, &CreatePackageRequest{
		ClientID:    f.clientID,
		Description: "Cartons de vêtements",
	})
	require.NoError(t, err)

	require.Equal(t, "REGISTERED", resp.Status)
	require.Equal(t, 1, resp.Pieces)
	require.Equal(t, "PENDING", resp.PaymentStatus)
	require.Regexp(t, `^PKG\d{9}$`, resp.Number)
}

func TestCreatePackageUnknownClient(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CreatePackage(context.Background(), f.operator, &CreatePackageRequest{
		ClientID:    uuid.New(),
		Description: "Cartons de vêtements",
	})
	require.ErrorIs(t, err, domainClient.ErrClientNotFound)
}

func TestAssignToContainerRequiresPreparation(t *testing.T) {
	f := newFixture(t)
	cont := f.addContainer(domainContainer.StatusInTransit)
	pkg := f.addPackage(domainParcel.StatusCollected, nil)

	_, err := f.service.AssignToContainer(context.Background(), pkg.ID, &AssignContainerRequest{ContainerID: cont.ID})
	require.Error(t, err)
	require.Nil(t, pkg.ContainerID)
}

func TestAssignToContainer(t *testing.T) {
	f := newFixture(t)
	cont := f.addContainer(domainContainer.StatusPreparation)
	pkg := f.addPackage(domainParcel.StatusCollected, nil)

	resp, err := f.service.AssignToContainer(context.Background(), pkg.ID, &AssignContainerRequest{ContainerID: cont.ID})
	require.NoError(t, err)
	require.Equal(t, "IN_CONTAINER", resp.Status)
	require.Equal(t, cont.ID, *resp.ContainerID)
}

func TestMarkCollectedRejectsOutOfOrder(t *testing.T) {
	f := newFixture(t)
	pkg := f.addPackage(domainParcel.StatusInTransit, nil)

	_, err := f.service.MarkCollected(context.Background(), pkg.ID, nil)
	require.Error(t, err)
}

func TestCreateShipmentRejectsMixedClients(t *testing.T) {
	f := newFixture(t)
	cont := f.addContainer(domainContainer.StatusPreparation)

	other := &domainClient.Client{ID: uuid.New(), Name: "Other"}
	f.clients.clients[other.ID] = other

	pkg1 := f.addPackage(domainParcel.StatusInContainer, &cont.ID)
	pkg2 := f.addPackage(domainParcel.StatusInContainer, &cont.ID)
	pkg2.ClientID = other.ID

	_, err := f.service.CreateShipment(context.Background(), f.operator, &CreateShipmentRequest{
		PackageIDs: []uuid.UUID{pkg1.ID, pkg2.ID},
	})
	require.ErrorIs(t, err, domainParcel.ErrMixedClients)
}

func TestCreateShipment(t *testing.T) {
	f := newFixture(t)
	cont := f.addContainer(domainContainer.StatusPreparation)
	pkg1 := f.addPackage(domainParcel.StatusInContainer, &cont.ID)
	pkg2 := f.addPackage(domainParcel.StatusInContainer, &cont.ID)

	resp, err := f.service.CreateShipment(context.Background(), f.operator, &CreateShipmentRequest{
		PackageIDs: []uuid.UUID{pkg1.ID, pkg2.ID},
	})
	require.NoError(t, err)

	require.Regexp(t, `^EXP\d{9}$`, resp.Number)
	require.Equal(t, f.clientID, resp.ClientID)
	require.Equal(t, cont.ID, resp.ContainerID)
	require.NotNil(t, pkg1.ShipmentID)
	require.NotNil(t, pkg2.ShipmentID)
}

func TestCreateShipmentRejectsAlreadyShipped(t *testing.T) {
	f := newFixture(t)
	cont := f.addContainer(domainContainer.StatusPreparation)
	pkg := f.addPackage(domainParcel.StatusInContainer, &cont.ID)
	existing := uuid.New()
	pkg.ShipmentID = &existing

	_, err := f.service.CreateShipment(context.Background(), f.operator, &CreateShipmentRequest{
		PackageIDs: []uuid.UUID{pkg.ID},
	})
	require.ErrorIs(t, err, domainParcel.ErrPackageAlreadyAssigned)
}

func TestRecordPaymentProgression(t *testing.T) {
	f := newFixture(t)
	pkg := f.addPackage(domainParcel.StatusRegistered, nil)
	price := 300.0
	pkg.PriceEUR = &price

	resp, err := f.service.RecordPayment(context.Background(), pkg.ID, &RecordPaymentRequest{AmountEUR: 100})
	require.NoError(t, err)
	require.Equal(t, "PARTIAL", resp.PaymentStatus)

	resp, err = f.service.RecordPayment(context.Background(), pkg.ID, &RecordPaymentRequest{AmountEUR: 200})
	require.NoError(t, err)
	require.Equal(t, "PAID", resp.PaymentStatus)
	require.Equal(t, 300.0, *resp.AmountPaidEUR)
}

func TestSetStatusDeliveredSetsDate(t *testing.T) {
	f := newFixture(t)
	pkg := f.addPackage(domainParcel.StatusCustoms, nil)

	resp, err := f.service.SetStatus(context.Background(), pkg.ID, &SetPackageStatusRequest{
		Status: string(domainParcel.StatusDelivered),
	})
	require.NoError(t, err)
	require.Equal(t, "DELIVERED", resp.Status)
	require.NotNil(t, resp.DeliveryAt)
}

func TestListPackagesRejectsUnknownSortColumn(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.service.ListPackages(context.Background(), &ListPackagesQuery{
		SortBy: "number; DROP TABLE packages--",
	})
	require.Error(t, err)
	require.Equal(t, "VALIDATION_ERROR", appErrors.CodeOf(err))

	_, _, err = f.service.ListPackages(context.Background(), &ListPackagesQuery{
		SortOrder: "desc OR 1=1",
	})
	require.Error(t, err)
	require.Equal(t, "VALIDATION_ERROR", appErrors.CodeOf(err))

	_, _, err = f.service.ListPackages(context.Background(), &ListPackagesQuery{
		SortBy:    "pickup_at",
		SortOrder: "desc",
	})
	require.NoError(t, err)
}

func TestCreatePackageRegeneratesNumberOnConflict(t *testing.T) {
	f := newFixture(t)
	f.parcels.duplicateCreates = 1

	resp, err := f.service.CreatePackage(context.Background(), f.operator, &CreatePackageRequest{
		ClientID:    f.clientID,
		Description: "Valise 23kg",
	})
	require.NoError(t, err)
	require.Regexp(t, `^PKG\d{9}$`, resp.Number)

	f.parcels.duplicateCreates = 10
	_, err = f.service.CreatePackage(context.Background(), f.operator, &CreatePackageRequest{
		ClientID:    f.clientID,
		Description: "Carton 12kg",
	})
	require.ErrorIs(t, err, domainParcel.ErrDuplicateNumber)
}
