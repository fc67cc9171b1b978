package parcel

import (
	"context"
	"errors"
	"time"

	domainClient "sahel-cargo/internal/domain/client"
	domainContainer "sahel-cargo/internal/domain/container"
	domainParcel "sahel-cargo/internal/domain/parcel"
	"sahel-cargo/internal/lifecycle"
	"sahel-cargo/internal/logger"
	appErrors "sahel-cargo/pkg/errors"
	"sahel-cargo/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements package and shipment use cases
type Service struct {
	parcelRepo    domainParcel.Repository
	clientRepo    domainClient.Repository
	containerRepo domainContainer.Repository
}

// NewService creates a new parcel service
func NewService(
	parcelRepo domainParcel.Repository,
	clientRepo domainClient.Repository,
	containerRepo domainContainer.Repository,
) *Service {
	return &Service{
		parcelRepo:    parcelRepo,
		clientRepo:    clientRepo,
		containerRepo: containerRepo,
	}
}

func (s *Service) CreatePackage(ctx context.Context, userID uuid.UUID, req *CreatePackageRequest) (*PackageResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if _, err := s.clientRepo.GetByID(ctx, req.ClientID); err != nil {
		return nil, err
	}

	pieces := req.Pieces
	if pieces == 0 {
		pieces = 1
	}

	now := time.Now()
	pkg := &domainParcel.Package{
		ID:            uuid.New(),
		Number:        utils.GenerateNumber("PKG", now),
		ClientID:      req.ClientID,
		Status:        domainParcel.StatusRegistered,
		Description:   utils.SanitizeText(req.Description),
		WeightKg:      req.WeightKg,
		Pieces:        pieces,
		PriceEUR:      req.PriceEUR,
		PaymentStatus: domainParcel.PaymentPending,
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// Generated numbers can collide on the unique index; regenerate and retry.
	for attempt := 0; ; attempt++ {
		err := s.parcelRepo.Create(ctx, pkg)
		if err == nil {
			break
		}
		if errors.Is(err, domainParcel.ErrDuplicateNumber) && attempt < utils.NumberRetries {
			pkg.Number = utils.GenerateNumber("PKG", now)
			continue
		}
		return nil, err
	}

	logger.Info("Package registered",
		zap.String("package_number", pkg.Number),
		zap.String("client_id", pkg.ClientID.String()),
	)
	return ToPackageResponse(pkg), nil
}

func (s *Service) GetPackageByID(ctx context.Context, packageID uuid.UUID) (*PackageResponse, error) {
	pkg, err := s.parcelRepo.GetByID(ctx, packageID)
	if err != nil {
		return nil, err
	}
	return ToPackageResponse(pkg), nil
}

func (s *Service) UpdatePackage(ctx context.Context, packageID uuid.UUID, req *UpdatePackageRequest) (*PackageResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	pkg, err := s.parcelRepo.GetByID(ctx, packageID)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		pkg.Description = utils.SanitizeText(*req.Description)
	}
	if req.WeightKg != nil {
		pkg.WeightKg = req.WeightKg
	}
	if req.Pieces != nil {
		pkg.Pieces = *req.Pieces
	}
	if req.PriceEUR != nil {
		pkg.PriceEUR = req.PriceEUR
		pkg.PaymentStatus = paymentStatusFor(pkg.PriceEUR, pkg.AmountPaidEUR)
	}
	pkg.UpdatedAt = time.Now()

	if err := s.parcelRepo.Update(ctx, pkg); err != nil {
		return nil, err
	}
	return ToPackageResponse(pkg), nil
}

func (s *Service) ListPackages(ctx context.Context, query *ListPackagesQuery) ([]*PackageResponse, int64, error) {
	if err := utils.ValidateStruct(query); err != nil {
		return nil, 0, appErrors.NewAppError("VALIDATION_ERROR", "Invalid query parameters", err)
	}

	filter := &domainParcel.Filter{
		Search:    query.Search,
		Page:      query.Page,
		PageSize:  query.PageSize,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
	}
	if query.Status != "" {
		status := domainParcel.Status(query.Status)
		if !status.Valid() {
			return nil, 0, appErrors.NewAppError("INVALID_STATUS", "Unknown package status", domainParcel.ErrInvalidStatus)
		}
		filter.Status = &status
	}
	if query.ClientID != "" {
		id, err := uuid.Parse(query.ClientID)
		if err != nil {
			return nil, 0, appErrors.NewAppError("VALIDATION_ERROR", "Invalid client id", err)
		}
		filter.ClientID = &id
	}
	if query.ContainerID != "" {
		id, err := uuid.Parse(query.ContainerID)
		if err != nil {
			return nil, 0, appErrors.NewAppError("VALIDATION_ERROR", "Invalid container id", err)
		}
		filter.ContainerID = &id
	}

	packages, total, err := s.parcelRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*PackageResponse, 0, len(packages))
	for _, pkg := range packages {
		responses = append(responses, ToPackageResponse(pkg))
	}
	return responses, total, nil
}

// MarkCollected records the physical pickup or drop-off of a package.
func (s *Service) MarkCollected(ctx context.Context, packageID uuid.UUID, req *MarkCollectedRequest) (*PackageResponse, error) {
	pkg, err := s.parcelRepo.GetByID(ctx, packageID)
	if err != nil {
		return nil, err
	}

	if err := lifecycle.ValidatePackageTransition(pkg.Status, domainParcel.StatusCollected); err != nil {
		return nil, err
	}

	pickupAt := time.Now()
	if req != nil && req.PickupAt != nil {
		pickupAt = *req.PickupAt
	}

	if err := s.parcelRepo.UpdateStatus(ctx, pkg.ID, domainParcel.StatusCollected); err != nil {
		return nil, err
	}
	if err := s.parcelRepo.SetPickup(ctx, pkg.ID, pickupAt); err != nil {
		return nil, err
	}

	pkg.Status = domainParcel.StatusCollected
	pkg.PickupAt = &pickupAt

	logger.Info("Package collected", zap.String("package_number", pkg.Number))
	return ToPackageResponse(pkg), nil
}

// AssignToContainer places a collected package into a container that is
// still being filled.
func (s *Service) AssignToContainer(ctx context.Context, packageID uuid.UUID, req *AssignContainerRequest) (*PackageResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	pkg, err := s.parcelRepo.GetByID(ctx, packageID)
	if err != nil {
		return nil, err
	}
	if pkg.ContainerID != nil {
		return nil, appErrors.NewAppError("ALREADY_ASSIGNED", "Package already assigned to a container", domainParcel.ErrPackageAlreadyAssigned)
	}

	if err := lifecycle.ValidatePackageTransition(pkg.Status, domainParcel.StatusInContainer); err != nil {
		return nil, err
	}

	cont, err := s.containerRepo.GetByID(ctx, req.ContainerID)
	if err != nil {
		return nil, err
	}
	if cont.Status != domainContainer.StatusPreparation {
		return nil, appErrors.NewAppError("CONTAINER_CLOSED", "Container is no longer accepting packages", domainContainer.ErrInvalidStatus)
	}

	if err := s.parcelRepo.AssignContainer(ctx, pkg.ID, cont.ID); err != nil {
		return nil, err
	}

	pkg.ContainerID = &cont.ID
	pkg.Status = domainParcel.StatusInContainer

	logger.Info("Package assigned to container",
		zap.String("package_number", pkg.Number),
		zap.String("container_number", cont.Number),
	)
	return ToPackageResponse(pkg), nil
}

// SetStatus moves a single package through its lifecycle, for corrections
// or deliveries handled outside the container cascade.
func (s *Service) SetStatus(ctx context.Context, packageID uuid.UUID, req *SetPackageStatusRequest) (*PackageResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	pkg, err := s.parcelRepo.GetByID(ctx, packageID)
	if err != nil {
		return nil, err
	}

	newStatus := domainParcel.Status(req.Status)
	if !newStatus.Valid() {
		return nil, appErrors.NewAppError("INVALID_STATUS", "Unknown package status", domainParcel.ErrInvalidStatus)
	}

	if !req.Force {
		if err := lifecycle.ValidatePackageTransition(pkg.Status, newStatus); err != nil {
			return nil, err
		}
	} else if pkg.Status != newStatus {
		logger.Warn("Package transition forced",
			zap.String("package_number", pkg.Number),
			zap.String("from", string(pkg.Status)),
			zap.String("to", string(newStatus)),
		)
	}

	if err := s.parcelRepo.UpdateStatus(ctx, pkg.ID, newStatus); err != nil {
		return nil, err
	}
	pkg.Status = newStatus

	if newStatus == domainParcel.StatusDelivered && pkg.DeliveryAt == nil {
		now := time.Now()
		if err := s.parcelRepo.SetDelivery(ctx, pkg.ID, now); err != nil {
			return nil, err
		}
		pkg.DeliveryAt = &now
	}

	return ToPackageResponse(pkg), nil
}

// RecordPayment adds a payment toward the package's shipping fee and
// recomputes the payment status.
func (s *Service) RecordPayment(ctx context.Context, packageID uuid.UUID, req *RecordPaymentRequest) (*PackageResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	pkg, err := s.parcelRepo.GetByID(ctx, packageID)
	if err != nil {
		return nil, err
	}

	paid := req.AmountEUR
	if pkg.AmountPaidEUR != nil {
		paid += *pkg.AmountPaidEUR
	}
	pkg.AmountPaidEUR = &paid
	pkg.PaymentStatus = paymentStatusFor(pkg.PriceEUR, pkg.AmountPaidEUR)
	pkg.UpdatedAt = time.Now()

	if err := s.parcelRepo.Update(ctx, pkg); err != nil {
		return nil, err
	}
	return ToPackageResponse(pkg), nil
}

// CreateShipment groups packages of one client in one container into a
// shipment, the unit that client notifications fan out over.
func (s *Service) CreateShipment(ctx context.Context, userID uuid.UUID, req *CreateShipmentRequest) (*ShipmentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}
	if len(req.PackageIDs) == 0 {
		return nil, appErrors.NewAppError("EMPTY_SHIPMENT", "Shipment must contain at least one package", domainParcel.ErrEmptyShipment)
	}

	var (
		clientID    uuid.UUID
		containerID uuid.UUID
	)
	for i, id := range req.PackageIDs {
		pkg, err := s.parcelRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if pkg.ContainerID == nil {
			return nil, appErrors.NewAppError("NOT_ASSIGNED", "Package "+pkg.Number+" is not in a container", domainParcel.ErrPackageNotAssigned)
		}
		if pkg.ShipmentID != nil {
			return nil, appErrors.NewAppError("ALREADY_ASSIGNED", "Package "+pkg.Number+" already belongs to a shipment", domainParcel.ErrPackageAlreadyAssigned)
		}
		if i == 0 {
			clientID = pkg.ClientID
			containerID = *pkg.ContainerID
			continue
		}
		if pkg.ClientID != clientID {
			return nil, appErrors.NewAppError("MIXED_CLIENTS", "Shipment packages must belong to one client", domainParcel.ErrMixedClients)
		}
		if *pkg.ContainerID != containerID {
			return nil, appErrors.NewAppError("MIXED_CONTAINERS", "Shipment packages must share one container", domainParcel.ErrMixedContainers)
		}
	}

	now := time.Now()
	shipment := &domainParcel.Shipment{
		ID:          uuid.New(),
		Number:      utils.GenerateNumber("EXP", now),
		ClientID:    clientID,
		ContainerID: containerID,
		PackageIDs:  req.PackageIDs,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	for attempt := 0; ; attempt++ {
		err := s.parcelRepo.CreateShipment(ctx, shipment)
		if err == nil {
			break
		}
		if errors.Is(err, domainParcel.ErrDuplicateNumber) && attempt < utils.NumberRetries {
			shipment.Number = utils.GenerateNumber("EXP", now)
			continue
		}
		return nil, err
	}

	logger.Info("Shipment created",
		zap.String("shipment_number", shipment.Number),
		zap.Int("packages", len(shipment.PackageIDs)),
	)
	return ToShipmentResponse(shipment), nil
}

func (s *Service) GetShipmentByID(ctx context.Context, shipmentID uuid.UUID) (*ShipmentResponse, error) {
	shipment, err := s.parcelRepo.GetShipmentByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	return ToShipmentResponse(shipment), nil
}

func (s *Service) ListShipmentsByContainer(ctx context.Context, containerID uuid.UUID) ([]*ShipmentResponse, error) {
	shipments, err := s.parcelRepo.ListShipmentsByContainer(ctx, containerID)
	if err != nil {
		return nil, err
	}
	responses := make([]*ShipmentResponse, 0, len(shipments))
	for _, shipment := range shipments {
		responses = append(responses, ToShipmentResponse(shipment))
	}
	return responses, nil
}

// paymentStatusFor derives the payment status from price and amount paid.
func paymentStatusFor(price, paid *float64) domainParcel.PaymentStatus {
	if paid == nil || *paid <= 0 {
		return domainParcel.PaymentPending
	}
	if price != nil && *paid >= *price {
		return domainParcel.PaymentPaid
	}
	return domainParcel.PaymentPartial
}
