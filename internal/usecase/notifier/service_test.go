package notifier

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	domainClient "sahel-cargo/internal/domain/client"
	domainContainer "sahel-cargo/internal/domain/container"
	domainNotification "sahel-cargo/internal/domain/notification"
	domainParcel "sahel-cargo/internal/domain/parcel"
	"sahel-cargo/internal/integrations/sms/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeParcelRepo struct {
	domainParcel.Repository
	shipments []*domainParcel.Shipment
}

func (f *fakeParcelRepo) ListShipmentsByContainer(ctx context.Context, containerID uuid.UUID) ([]*domainParcel.Shipment, error) {
	return f.shipments, nil
}

type fakeClientRepo struct {
	domainClient.Repository
	clients map[uuid.UUID]*domainClient.Client
}

func (f *fakeClientRepo) GetByID(ctx context.Context, clientID uuid.UUID) (*domainClient.Client, error) {
	cl, ok := f.clients[clientID]
	if !ok {
		return nil, domainClient.ErrClientNotFound
	}
	return cl, nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	outbound      []*domainNotification.OutboundMessage
	notifications []*domainNotification.Notification
}

func (f *fakeNotificationRepo) CreateOutbound(ctx context.Context, msg *domainNotification.OutboundMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outbound = append(f.outbound, msg)
	return nil
}

func (f *fakeNotificationRepo) ListOutboundByContainer(ctx context.Context, containerID uuid.UUID) ([]*domainNotification.OutboundMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.outbound, nil
}

func (f *fakeNotificationRepo) CreateNotification(ctx context.Context, n *domainNotification.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeNotificationRepo) ListByClient(ctx context.Context, clientID uuid.UUID, limit int) ([]*domainNotification.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.notifications, nil
}

func (f *fakeNotificationRepo) countByStatus(status domainNotification.DeliveryStatus) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, msg := range f.outbound {
		if msg.Status == status {
			n++
		}
	}
	return n
}

type batchFixture struct {
	container *domainContainer.Container
	update    *domainContainer.TrackingUpdate
	parcels   *fakeParcelRepo
	clients   *fakeClientRepo
	audit     *fakeNotificationRepo
	gateway   *fake.Gateway
}

func newBatchFixture(t *testing.T, phones []string) *batchFixture {
	t.Helper()

	cont := &domainContainer.Container{
		ID:     uuid.New(),
		Number: "CNT202501001",
		Status: domainContainer.StatusInTransit,
	}
	update := &domainContainer.TrackingUpdate{
		ID:          uuid.New(),
		ContainerID: cont.ID,
		Location:    "En route",
		Description: "Conteneur en transit",
		IsPublic:    true,
		CreatedAt:   time.Now(),
	}

	f := &batchFixture{
		container: cont,
		update:    update,
		parcels:   &fakeParcelRepo{},
		clients:   &fakeClientRepo{clients: make(map[uuid.UUID]*domainClient.Client)},
		audit:     &fakeNotificationRepo{},
		gateway:   fake.New(),
	}

	for i, p := range phones {
		cl := &domainClient.Client{
			ID:                   uuid.New(),
			Name:                 "Sender",
			RecipientName:        "Recipient",
			RecipientPhone:       p,
			RecipientCountryCode: "BF",
		}
		f.clients.clients[cl.ID] = cl
		f.parcels.shipments = append(f.parcels.shipments, &domainParcel.Shipment{
			ID:          uuid.New(),
			Number:      fmt.Sprintf("EXP2025010%02d", i+1),
			ClientID:    cl.ID,
			ContainerID: cont.ID,
		})
	}
	return f
}

func (f *batchFixture) service() *Service {
	return NewService(f.parcels, f.clients, f.audit, f.gateway, "https://sahel-cargo.example/suivi", 2)
}

func TestNotifyContainerUpdateCountsInvalidPhones(t *testing.T) {
	f := newBatchFixture(t, []string{"+22670123456", "226 70 12 34 56", "abc"})

	report, err := f.service().NotifyContainerUpdate(context.Background(), f.container, f.update, ModeDispatch)
	require.NoError(t, err)

	require.Equal(t, 3, report.Total)
	require.Equal(t, 2, report.Success)
	require.Equal(t, 0, report.Errors)
	require.Equal(t, 1, report.InvalidPhones)

	require.Len(t, f.gateway.Messages(), 2)
	require.Equal(t, 2, f.audit.countByStatus(domainNotification.DeliverySent))
	require.Equal(t, 1, f.audit.countByStatus(domainNotification.DeliveryInvalid))

	// In-app records are written regardless of SMS outcome.
	require.Len(t, f.audit.notifications, 3)
}

func TestNotifyContainerUpdateIsolatesGatewayFailures(t *testing.T) {
	f := newBatchFixture(t, []string{"+22670123456", "+22670123457"})
	f.gateway.Fail("+22670123457", errors.New("gateway timeout"))

	report, err := f.service().NotifyContainerUpdate(context.Background(), f.container, f.update, ModeDispatch)
	require.NoError(t, err)

	require.Equal(t, 2, report.Total)
	require.Equal(t, 1, report.Success)
	require.Equal(t, 1, report.Errors)
	require.Len(t, report.ErrorDetails, 1)
	require.Contains(t, report.ErrorDetails[0], "gateway timeout")

	require.Equal(t, 1, f.audit.countByStatus(domainNotification.DeliveryFailed))
	failed := f.audit.outbound
	var found bool
	for _, msg := range failed {
		if msg.Status == domainNotification.DeliveryFailed {
			require.NotNil(t, msg.Error)
			require.Contains(t, *msg.Error, "gateway timeout")
			found = true
		}
	}
	require.True(t, found)
}

func TestNotifyContainerUpdateSMSBodyContainsTrackingLink(t *testing.T) {
	f := newBatchFixture(t, []string{"+22670123456"})

	_, err := f.service().NotifyContainerUpdate(context.Background(), f.container, f.update, ModeDispatch)
	require.NoError(t, err)

	sent := f.gateway.Messages()
	require.Len(t, sent, 1)
	require.Contains(t, sent[0].Body, "EXP202501001")
	require.Contains(t, sent[0].Body, "En route")
	require.Contains(t, sent[0].Body, "Conteneur en transit")
	require.Contains(t, sent[0].Body, "https://sahel-cargo.example/suivi/EXP202501001")
}

func TestNotifyContainerUpdateRecordOnlySkipsGateway(t *testing.T) {
	f := newBatchFixture(t, []string{"+22670123456", "not-a-phone"})

	report, err := f.service().NotifyContainerUpdate(context.Background(), f.container, f.update, ModeRecordOnly)
	require.NoError(t, err)

	require.Equal(t, 2, report.Total)
	require.Equal(t, 2, report.Success)
	require.Equal(t, 0, report.InvalidPhones)

	require.Empty(t, f.gateway.Messages())
	require.Empty(t, f.audit.outbound)
	require.Len(t, f.audit.notifications, 2)
}

func TestNotifyContainerUpdateEmptyContainer(t *testing.T) {
	f := newBatchFixture(t, nil)

	report, err := f.service().NotifyContainerUpdate(context.Background(), f.container, f.update, ModeDispatch)
	require.NoError(t, err)
	require.Equal(t, 0, report.Total)
}
