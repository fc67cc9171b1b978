package client

import (
	"context"
	"strings"
	"time"

	domainClient "sahel-cargo/internal/domain/client"
	"sahel-cargo/internal/logger"
	appErrors "sahel-cargo/pkg/errors"
	"sahel-cargo/pkg/phone"
	"sahel-cargo/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements client use cases
type Service struct {
	clientRepo domainClient.Repository
}

// NewService creates a new client service
func NewService(clientRepo domainClient.Repository) *Service {
	return &Service{clientRepo: clientRepo}
}

func (s *Service) Create(ctx context.Context, req *CreateClientRequest) (*ClientResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	now := time.Now()
	cl := &domainClient.Client{
		ID:                   uuid.New(),
		Name:                 utils.SanitizeString(req.Name),
		Phone:                utils.SanitizePhone(req.Phone),
		Email:                req.Email,
		Address:              utils.SanitizeText(req.Address),
		City:                 utils.SanitizeString(req.City),
		CountryCode:          strings.ToUpper(req.CountryCode),
		RecipientName:        utils.SanitizeString(req.RecipientName),
		RecipientPhone:       utils.SanitizePhone(req.RecipientPhone),
		RecipientAddress:     utils.SanitizeText(req.RecipientAddress),
		RecipientCity:        utils.SanitizeString(req.RecipientCity),
		RecipientCountryCode: strings.ToUpper(req.RecipientCountryCode),
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	s.checkRecipientPhone(cl)

	if err := s.clientRepo.Create(ctx, cl); err != nil {
		return nil, err
	}

	logger.Info("Client created",
		zap.String("client_id", cl.ID.String()),
		zap.String("recipient_country", cl.RecipientCountryCode),
	)
	return ToClientResponse(cl), nil
}

func (s *Service) GetByID(ctx context.Context, clientID uuid.UUID) (*ClientResponse, error) {
	cl, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return ToClientResponse(cl), nil
}

func (s *Service) Update(ctx context.Context, clientID uuid.UUID, req *UpdateClientRequest) (*ClientResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	cl, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		cl.Name = utils.SanitizeString(*req.Name)
	}
	if req.Phone != nil {
		cl.Phone = utils.SanitizePhone(*req.Phone)
	}
	if req.Email != nil {
		cl.Email = req.Email
	}
	if req.Address != nil {
		cl.Address = utils.SanitizeText(*req.Address)
	}
	if req.City != nil {
		cl.City = utils.SanitizeString(*req.City)
	}
	if req.CountryCode != nil {
		cl.CountryCode = strings.ToUpper(*req.CountryCode)
	}
	if req.RecipientName != nil {
		cl.RecipientName = utils.SanitizeString(*req.RecipientName)
	}
	if req.RecipientPhone != nil {
		cl.RecipientPhone = utils.SanitizePhone(*req.RecipientPhone)
	}
	if req.RecipientAddress != nil {
		cl.RecipientAddress = utils.SanitizeText(*req.RecipientAddress)
	}
	if req.RecipientCity != nil {
		cl.RecipientCity = utils.SanitizeString(*req.RecipientCity)
	}
	if req.RecipientCountryCode != nil {
		cl.RecipientCountryCode = strings.ToUpper(*req.RecipientCountryCode)
	}
	cl.UpdatedAt = time.Now()

	s.checkRecipientPhone(cl)

	if err := s.clientRepo.Update(ctx, cl); err != nil {
		return nil, err
	}
	return ToClientResponse(cl), nil
}

func (s *Service) List(ctx context.Context, query *ListClientsQuery) ([]*ClientResponse, int64, error) {
	filter := &domainClient.Filter{
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if query.CountryCode != "" {
		code := strings.ToUpper(query.CountryCode)
		filter.CountryCode = &code
	}

	clients, total, err := s.clientRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*ClientResponse, 0, len(clients))
	for _, cl := range clients {
		responses = append(responses, ToClientResponse(cl))
	}
	return responses, total, nil
}

// checkRecipientPhone flags numbers the notifier will not be able to
// deliver to. The record is still saved; operators fix the phone later.
func (s *Service) checkRecipientPhone(cl *domainClient.Client) {
	phoneCtx := phone.ContextForCountryCode(cl.RecipientCountryCode)
	if _, err := phone.SmartNormalize(cl.RecipientPhone, phoneCtx, phone.AllowBareLocal()); err != nil {
		logger.Warn("Recipient phone will not be deliverable",
			zap.String("client_id", cl.ID.String()),
			zap.String("country_code", cl.RecipientCountryCode),
			zap.Error(err),
		)
	}
}
