package notifier

import (
	"context"
	"fmt"
	"sync"
	"time"

	domainClient "sahel-cargo/internal/domain/client"
	domainContainer "sahel-cargo/internal/domain/container"
	domainNotification "sahel-cargo/internal/domain/notification"
	domainParcel "sahel-cargo/internal/domain/parcel"
	"sahel-cargo/internal/integrations/sms"
	"sahel-cargo/internal/logger"
	"sahel-cargo/pkg/phone"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Mode selects what a notification batch does per shipment.
type Mode int

const (
	// ModeDispatch normalizes the recipient phone, sends an SMS through
	// the gateway and records the outcome.
	ModeDispatch Mode = iota
	// ModeRecordOnly writes the in-app notification record without
	// touching the gateway. Used for internal updates such as GPS feeds.
	ModeRecordOnly
)

// Report aggregates the outcome of one notification batch.
type Report struct {
	Total         int
	Success       int
	Errors        int
	InvalidPhones int
	ErrorDetails  []string
}

const defaultConcurrency = 5

// Service fans out client notifications for container updates
type Service struct {
	parcelRepo       domainParcel.Repository
	clientRepo       domainClient.Repository
	notificationRepo domainNotification.Repository
	gateway          sms.Gateway

	trackingBaseURL string
	concurrency     int
}

// NewService creates a new notifier service
func NewService(
	parcelRepo domainParcel.Repository,
	clientRepo domainClient.Repository,
	notificationRepo domainNotification.Repository,
	gateway sms.Gateway,
	trackingBaseURL string,
	concurrency int,
) *Service {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Service{
		parcelRepo:       parcelRepo,
		clientRepo:       clientRepo,
		notificationRepo: notificationRepo,
		gateway:          gateway,
		trackingBaseURL:  trackingBaseURL,
		concurrency:      concurrency,
	}
}

// NotifyContainerUpdate notifies every shipment in the container about a
// tracking update. Sends run with bounded concurrency; a failure for one
// shipment never blocks the others, and the batch itself never fails once
// the shipment list has loaded.
func (s *Service) NotifyContainerUpdate(ctx context.Context, cont *domainContainer.Container, update *domainContainer.TrackingUpdate, mode Mode) (*Report, error) {
	shipments, err := s.parcelRepo.ListShipmentsByContainer(ctx, cont.ID)
	if err != nil {
		return nil, err
	}

	report := &Report{Total: len(shipments)}
	if len(shipments) == 0 {
		return report, nil
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, s.concurrency)
	)

	for _, shipment := range shipments {
		wg.Add(1)
		sem <- struct{}{}
		go func(shipment *domainParcel.Shipment) {
			defer wg.Done()
			defer func() { <-sem }()

			outcome := s.notifyShipment(ctx, cont, update, shipment, mode)

			mu.Lock()
			switch outcome.kind {
			case outcomeSuccess:
				report.Success++
			case outcomeInvalidPhone:
				report.InvalidPhones++
			case outcomeError:
				report.Errors++
				report.ErrorDetails = append(report.ErrorDetails, outcome.detail)
			}
			mu.Unlock()
		}(shipment)
	}
	wg.Wait()

	logger.Info("Notification batch finished",
		zap.String("container_number", cont.Number),
		zap.Int("total", report.Total),
		zap.Int("success", report.Success),
		zap.Int("errors", report.Errors),
		zap.Int("invalid_phones", report.InvalidPhones),
	)
	return report, nil
}

type outcomeKind int

const (
	outcomeSuccess outcomeKind = iota
	outcomeInvalidPhone
	outcomeError
)

type outcome struct {
	kind   outcomeKind
	detail string
}

func (s *Service) notifyShipment(ctx context.Context, cont *domainContainer.Container, update *domainContainer.TrackingUpdate, shipment *domainParcel.Shipment, mode Mode) outcome {
	cl, err := s.clientRepo.GetByID(ctx, shipment.ClientID)
	if err != nil {
		logger.Error("Failed to load client for notification",
			zap.String("shipment_number", shipment.Number),
			zap.Error(err),
		)
		return outcome{kind: outcomeError, detail: fmt.Sprintf("%s: load client: %v", shipment.Number, err)}
	}

	if mode == ModeRecordOnly {
		s.recordNotification(ctx, cl, shipment, cont, update)
		return outcome{kind: outcomeSuccess}
	}

	phoneCtx := phone.ContextForCountryCode(cl.RecipientCountryCode)
	to, err := phone.SmartNormalize(cl.RecipientPhone, phoneCtx, phone.AllowBareLocal())
	if err != nil {
		logger.Warn("Recipient phone could not be normalized",
			zap.String("shipment_number", shipment.Number),
			zap.String("client_id", cl.ID.String()),
			zap.String("country_code", cl.RecipientCountryCode),
			zap.Error(err),
		)
		s.recordOutbound(ctx, shipment, cl, cont, cl.RecipientPhone, "", domainNotification.DeliveryInvalid, nil, err)
		s.recordNotification(ctx, cl, shipment, cont, update)
		return outcome{kind: outcomeInvalidPhone}
	}

	body := s.smsBody(shipment, update)
	result, sendErr := s.gateway.Send(ctx, to, body)

	if sendErr != nil {
		logger.Error("SMS send failed",
			zap.String("shipment_number", shipment.Number),
			zap.String("recipient", to),
			zap.Error(sendErr),
		)
		s.recordOutbound(ctx, shipment, cl, cont, to, body, domainNotification.DeliveryFailed, nil, sendErr)
		s.recordNotification(ctx, cl, shipment, cont, update)
		return outcome{kind: outcomeError, detail: fmt.Sprintf("%s: %v", shipment.Number, sendErr)}
	}

	s.recordOutbound(ctx, shipment, cl, cont, to, body, domainNotification.DeliverySent, &result.MessageID, nil)
	s.recordNotification(ctx, cl, shipment, cont, update)
	return outcome{kind: outcomeSuccess}
}

func (s *Service) smsBody(shipment *domainParcel.Shipment, update *domainContainer.TrackingUpdate) string {
	body := fmt.Sprintf("Votre expédition %s: %s - %s.", shipment.Number, update.Location, update.Description)
	if s.trackingBaseURL != "" {
		body += fmt.Sprintf(" Suivi: %s/%s", s.trackingBaseURL, shipment.Number)
	}
	return body
}

// recordOutbound writes the SMS audit row. A write failure is logged and
// swallowed; the batch outcome is already decided by the gateway result.
func (s *Service) recordOutbound(ctx context.Context, shipment *domainParcel.Shipment, cl *domainClient.Client, cont *domainContainer.Container, recipient, body string, status domainNotification.DeliveryStatus, gatewayID *string, sendErr error) {
	msg := &domainNotification.OutboundMessage{
		ID:               uuid.New(),
		ShipmentID:       shipment.ID,
		ClientID:         cl.ID,
		ContainerID:      cont.ID,
		Recipient:        recipient,
		Body:             body,
		Status:           status,
		GatewayMessageID: gatewayID,
		CreatedAt:        time.Now(),
	}
	if status == domainNotification.DeliverySent {
		now := time.Now()
		msg.SentAt = &now
	}
	if sendErr != nil {
		text := sendErr.Error()
		msg.Error = &text
	}

	if err := s.notificationRepo.CreateOutbound(ctx, msg); err != nil {
		logger.Warn("Failed to record outbound message",
			zap.String("shipment_number", shipment.Number),
			zap.Error(err),
		)
	}
}

// recordNotification writes the in-app record, independent of SMS outcome.
func (s *Service) recordNotification(ctx context.Context, cl *domainClient.Client, shipment *domainParcel.Shipment, cont *domainContainer.Container, update *domainContainer.TrackingUpdate) {
	n := &domainNotification.Notification{
		ID:          uuid.New(),
		ClientID:    cl.ID,
		ShipmentID:  &shipment.ID,
		ContainerID: &cont.ID,
		Title:       fmt.Sprintf("Mise à jour de votre expédition %s", shipment.Number),
		Message:     fmt.Sprintf("%s - %s", update.Location, update.Description),
		CreatedAt:   time.Now(),
	}
	if err := s.notificationRepo.CreateNotification(ctx, n); err != nil {
		logger.Warn("Failed to record notification",
			zap.String("shipment_number", shipment.Number),
			zap.Error(err),
		)
	}
}
