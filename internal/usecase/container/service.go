package container

import (
	"context"
	"errors"
	"time"

	domainContainer "sahel-cargo/internal/domain/container"
	domainParcel "sahel-cargo/internal/domain/parcel"
	"sahel-cargo/internal/lifecycle"
	"sahel-cargo/internal/logger"
	"sahel-cargo/internal/usecase/notifier"
	appErrors "sahel-cargo/pkg/errors"
	"sahel-cargo/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier fans out client notifications after a tracking update.
type Notifier interface {
	NotifyContainerUpdate(ctx context.Context, cont *domainContainer.Container, update *domainContainer.TrackingUpdate, mode notifier.Mode) (*notifier.Report, error)
}

// cannedUpdate is the synthesized tracking entry for a status change.
type cannedUpdate struct {
	location    string
	description string
}

// Statuses without an entry here produce no synthetic update.
var cannedUpdates = map[domainContainer.Status]cannedUpdate{
	domainContainer.StatusLoaded:    {"Entrepôt de départ", "Conteneur chargé"},
	domainContainer.StatusInTransit: {"En route", "Conteneur en transit"},
	domainContainer.StatusCustoms:   {"Douane", "Conteneur en dédouanement"},
	domainContainer.StatusDelivered: {"Destination", "Conteneur arrivé à destination"},
}

// Service implements container use cases
type Service struct {
	containerRepo domainContainer.Repository
	parcelRepo    domainParcel.Repository
	notify        Notifier
}

// NewService creates a new container service
func NewService(
	containerRepo domainContainer.Repository,
	parcelRepo domainParcel.Repository,
	notify Notifier,
) *Service {
	return &Service{
		containerRepo: containerRepo,
		parcelRepo:    parcelRepo,
		notify:        notify,
	}
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *CreateContainerRequest) (*ContainerResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	now := time.Now()
	cont := &domainContainer.Container{
		ID:                 uuid.New(),
		Number:             utils.GenerateNumber("CNT", now),
		Status:             domainContainer.StatusPreparation,
		CurrentLocation:    req.CurrentLocation,
		PlannedDepartureAt: req.PlannedDepartureAt,
		PlannedArrivalAt:   req.PlannedArrivalAt,
		CreatedBy:          userID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	// Generated numbers can collide on the unique index; regenerate and retry.
	for attempt := 0; ; attempt++ {
		err := s.containerRepo.Create(ctx, cont)
		if err == nil {
			break
		}
		if errors.Is(err, domainContainer.ErrContainerAlreadyExists) && attempt < utils.NumberRetries {
			cont.Number = utils.GenerateNumber("CNT", now)
			continue
		}
		return nil, err
	}

	logger.Info("Container created",
		zap.String("container_number", cont.Number),
		zap.String("created_by", userID.String()),
	)
	return ToContainerResponse(cont), nil
}

func (s *Service) GetByID(ctx context.Context, containerID uuid.UUID) (*ContainerResponse, error) {
	cont, err := s.containerRepo.GetByID(ctx, containerID)
	if err != nil {
		return nil, err
	}
	return ToContainerResponse(cont), nil
}

func (s *Service) GetByNumber(ctx context.Context, number string) (*ContainerResponse, error) {
	cont, err := s.containerRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return ToContainerResponse(cont), nil
}

func (s *Service) List(ctx context.Context, query *ListContainersQuery) ([]*ContainerResponse, int64, error) {
	if err := utils.ValidateStruct(query); err != nil {
		return nil, 0, appErrors.NewAppError("VALIDATION_ERROR", "Invalid query parameters", err)
	}

	filter := &domainContainer.Filter{
		Search:    query.Search,
		Page:      query.Page,
		PageSize:  query.PageSize,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
	}
	if query.Status != "" {
		status := domainContainer.Status(query.Status)
		if !status.Valid() {
			return nil, 0, appErrors.NewAppError("INVALID_STATUS", "Unknown container status", domainContainer.ErrInvalidStatus)
		}
		filter.Status = &status
	}

	containers, total, err := s.containerRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*ContainerResponse, 0, len(containers))
	for _, c := range containers {
		responses = append(responses, ToContainerResponse(c))
	}
	return responses, total, nil
}

func (s *Service) Update(ctx context.Context, containerID uuid.UUID, req *UpdateContainerRequest) (*ContainerResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	cont, err := s.containerRepo.GetByID(ctx, containerID)
	if err != nil {
		return nil, err
	}

	if req.CurrentLocation != nil {
		cont.CurrentLocation = *req.CurrentLocation
	}
	if req.PlannedDepartureAt != nil {
		cont.PlannedDepartureAt = req.PlannedDepartureAt
	}
	if req.PlannedArrivalAt != nil {
		cont.PlannedArrivalAt = req.PlannedArrivalAt
	}
	cont.UpdatedAt = time.Now()

	if err := s.containerRepo.Update(ctx, cont); err != nil {
		return nil, err
	}
	return ToContainerResponse(cont), nil
}

// AddTrackingUpdate appends a tracking update to the container's history
// and notifies every shipment on board. Notification runs regardless of
// whether the status changed; a notification failure never rolls back the
// recorded update.
func (s *Service) AddTrackingUpdate(ctx context.Context, containerID, userID uuid.UUID, req *AddUpdateRequest) (*AddUpdateResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	cont, err := s.containerRepo.GetByID(ctx, containerID)
	if err != nil {
		return nil, err
	}

	update, report, err := s.recordUpdate(ctx, cont, userID, req)
	if err != nil {
		return nil, err
	}

	resp := &AddUpdateResponse{Update: ToTrackingUpdateResponse(update)}
	if report != nil {
		resp.Notifications = toNotificationReport(report)
	}
	return resp, nil
}

// SetStatus drives a container through its lifecycle. Transitions are
// validated against the allowed table unless Force is set. Statuses with a
// canned text synthesize exactly one tracking update, which in turn
// notifies the clients on board.
func (s *Service) SetStatus(ctx context.Context, containerNumber string, userID uuid.UUID, req *SetStatusRequest) (*ContainerResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	cont, err := s.containerRepo.GetByNumber(ctx, containerNumber)
	if err != nil {
		return nil, err
	}

	newStatus := domainContainer.Status(req.Status)
	if !newStatus.Valid() {
		return nil, appErrors.NewAppError("INVALID_STATUS", "Unknown container status", domainContainer.ErrInvalidStatus)
	}

	if !req.Force {
		if err := lifecycle.ValidateContainerTransition(cont.Status, newStatus); err != nil {
			return nil, err
		}
	} else if cont.Status != newStatus {
		logger.Warn("Container transition forced",
			zap.String("container_number", cont.Number),
			zap.String("from", string(cont.Status)),
			zap.String("to", string(newStatus)),
			zap.String("user_id", userID.String()),
		)
	}

	canned, hasCanned := cannedUpdates[newStatus]
	location := req.Location
	if location == "" && hasCanned {
		location = canned.location
	}

	if err := s.containerRepo.UpdateStatus(ctx, cont.ID, newStatus, location); err != nil {
		return nil, err
	}

	now := time.Now()
	if newStatus == domainContainer.StatusInTransit && cont.ActualDepartureAt == nil {
		if err := s.containerRepo.SetActualDeparture(ctx, cont.ID, now); err != nil {
			logger.Warn("Failed to set actual departure", zap.String("container_number", cont.Number), zap.Error(err))
		}
	}
	if newStatus == domainContainer.StatusDelivered && cont.ActualArrivalAt == nil {
		if err := s.containerRepo.SetActualArrival(ctx, cont.ID, now); err != nil {
			logger.Warn("Failed to set actual arrival", zap.String("container_number", cont.Number), zap.Error(err))
		}
	}

	s.cascadePackages(ctx, cont, newStatus, now)

	cont.Status = newStatus
	cont.CurrentLocation = location

	if hasCanned {
		updateReq := &AddUpdateRequest{
			Location:    location,
			Description: canned.description,
		}
		if _, _, err := s.recordUpdate(ctx, cont, userID, updateReq); err != nil {
			logger.Error("Failed to record status update",
				zap.String("container_number", cont.Number),
				zap.String("status", string(newStatus)),
				zap.Error(err),
			)
		}
	}

	updated, err := s.containerRepo.GetByID(ctx, cont.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("Container status changed",
		zap.String("container_number", updated.Number),
		zap.String("status", string(updated.Status)),
		zap.String("user_id", userID.String()),
	)
	return ToContainerResponse(updated), nil
}

// recordUpdate persists the update and fans out notifications. Internal
// updates take the record-only path so no SMS leaves the system.
func (s *Service) recordUpdate(ctx context.Context, cont *domainContainer.Container, userID uuid.UUID, req *AddUpdateRequest) (*domainContainer.TrackingUpdate, *notifier.Report, error) {
	update := &domainContainer.TrackingUpdate{
		ID:          uuid.New(),
		ContainerID: cont.ID,
		Location:    req.Location,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		IsPublic:    !req.Internal,
		CreatedBy:   userID,
		CreatedAt:   time.Now(),
	}

	if err := s.containerRepo.CreateUpdate(ctx, update); err != nil {
		return nil, nil, err
	}

	if update.IsPublic && req.Location != cont.CurrentLocation {
		if err := s.containerRepo.UpdateStatus(ctx, cont.ID, cont.Status, req.Location); err != nil {
			logger.Warn("Failed to refresh container location", zap.String("container_number", cont.Number), zap.Error(err))
		}
	}

	mode := notifier.ModeDispatch
	if !update.IsPublic {
		mode = notifier.ModeRecordOnly
	}

	report, err := s.notify.NotifyContainerUpdate(ctx, cont, update, mode)
	if err != nil {
		logger.Error("Notification batch failed",
			zap.String("container_number", cont.Number),
			zap.Error(err),
		)
		return update, nil, nil
	}
	return update, report, nil
}

// cascadePackages mirrors the container status onto its packages where the
// lifecycle tables allow it. Terminal packages are left untouched.
func (s *Service) cascadePackages(ctx context.Context, cont *domainContainer.Container, newStatus domainContainer.Status, now time.Time) {
	pkgStatus, ok := lifecycle.PackageStatusForContainer(newStatus)
	if !ok {
		return
	}

	packages, err := s.parcelRepo.ListByContainer(ctx, cont.ID)
	if err != nil {
		logger.Warn("Failed to list packages for status cascade",
			zap.String("container_number", cont.Number),
			zap.Error(err),
		)
		return
	}

	for _, pkg := range packages {
		if pkg.Status == pkgStatus || pkg.Status.IsTerminal() {
			continue
		}
		if err := lifecycle.ValidatePackageTransition(pkg.Status, pkgStatus); err != nil {
			logger.Warn("Package skipped during status cascade",
				zap.String("package_number", pkg.Number),
				zap.String("from", string(pkg.Status)),
				zap.String("to", string(pkgStatus)),
			)
			continue
		}
		if err := s.parcelRepo.UpdateStatus(ctx, pkg.ID, pkgStatus); err != nil {
			logger.Warn("Failed to cascade package status",
				zap.String("package_number", pkg.Number),
				zap.Error(err),
			)
			continue
		}
		if pkgStatus == domainParcel.StatusDelivered {
			if err := s.parcelRepo.SetDelivery(ctx, pkg.ID, now); err != nil {
				logger.Warn("Failed to set delivery date",
					zap.String("package_number", pkg.Number),
					zap.Error(err),
				)
			}
		}
	}
}

func toNotificationReport(r *notifier.Report) *NotificationReport {
	return &NotificationReport{
		Total:         r.Total,
		Success:       r.Success,
		Errors:        r.Errors,
		InvalidPhones: r.InvalidPhones,
		ErrorDetails:  r.ErrorDetails,
	}
}
