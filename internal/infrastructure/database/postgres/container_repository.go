package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sahel-cargo/internal/domain/container"
	"sahel-cargo/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContainerRepository struct {
	db *DB
}

func NewContainerRepository(db *DB) *ContainerRepository {
	return &ContainerRepository{db: db}
}

func (r *ContainerRepository) Create(ctx context.Context, c *container.Container) error {
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	if c.Status == "" {
		c.Status = container.StatusPreparation
	}

	dbModel := toContainerModel(c)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return container.ErrContainerAlreadyExists
		}
		return fmt.Errorf("failed to create container: %w", err)
	}

	c.ID = dbModel.ID
	c.CreatedAt = dbModel.CreatedAt
	c.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *ContainerRepository) GetByID(ctx context.Context, containerID uuid.UUID) (*container.Container, error) {
	var dbModel models.ContainerModel
	err := r.db.DB.WithContext(ctx).
		Preload("Updates", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("id = ?", containerID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, container.ErrContainerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get container: %w", err)
	}

	return toContainerEntity(&dbModel), nil
}

func (r *ContainerRepository) GetByNumber(ctx context.Context, number string) (*container.Container, error) {
	var dbModel models.ContainerModel
	err := r.db.DB.WithContext(ctx).
		Preload("Updates", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("UPPER(number) = ?", strings.ToUpper(strings.TrimSpace(number))).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, container.ErrContainerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get container: %w", err)
	}

	return toContainerEntity(&dbModel), nil
}

func (r *ContainerRepository) Update(ctx context.Context, c *container.Container) error {
	c.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.ContainerModel{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"status":               string(c.Status),
			"current_location":     c.CurrentLocation,
			"planned_departure_at": c.PlannedDepartureAt,
			"actual_departure_at":  c.ActualDepartureAt,
			"planned_arrival_at":   c.PlannedArrivalAt,
			"actual_arrival_at":    c.ActualArrivalAt,
			"updated_at":           c.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update container: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return container.ErrContainerNotFound
	}

	return nil
}

func (r *ContainerRepository) UpdateStatus(ctx context.Context, containerID uuid.UUID, status container.Status, location string) error {
	updates := map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now(),
	}
	if location != "" {
		updates["current_location"] = location
	}

	result := r.db.DB.WithContext(ctx).
		Model(&models.ContainerModel{}).
		Where("id = ?", containerID).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update container status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return container.ErrContainerNotFound
	}

	return nil
}

func (r *ContainerRepository) SetActualDeparture(ctx context.Context, containerID uuid.UUID, at time.Time) error {
	return r.setTimestamp(ctx, containerID, "actual_departure_at", at)
}

func (r *ContainerRepository) SetActualArrival(ctx context.Context, containerID uuid.UUID, at time.Time) error {
	return r.setTimestamp(ctx, containerID, "actual_arrival_at", at)
}

func (r *ContainerRepository) setTimestamp(ctx context.Context, containerID uuid.UUID, column string, at time.Time) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.ContainerModel{}).
		Where("id = ?", containerID).
		Updates(map[string]interface{}{column: at, "updated_at": time.Now()})

	if result.Error != nil {
		return fmt.Errorf("failed to set %s: %w", column, result.Error)
	}
	if result.RowsAffected == 0 {
		return container.ErrContainerNotFound
	}
	return nil
}

func (r *ContainerRepository) List(ctx context.Context, filter *container.Filter) ([]*container.Container, int64, error) {
	var dbModels []models.ContainerModel
	var total int64

	db := r.db.DB.WithContext(ctx).Model(&models.ContainerModel{})

	if filter.Status != nil {
		db = db.Where("status = ?", string(*filter.Status))
	}
	if filter.DepartureAfter != nil {
		db = db.Where("planned_departure_at >= ?", filter.DepartureAfter)
	}
	if filter.DepartureBefore != nil {
		db = db.Where("planned_departure_at <= ?", filter.DepartureBefore)
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		db = db.Where("number ILIKE ? OR current_location ILIKE ?", search, search)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count containers: %w", err)
	}

	sortBy := "created_at"
	if filter.SortBy != "" {
		sortBy = filter.SortBy
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	err := db.Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Limit(pageSize).
		Offset(offset).
		Find(&dbModels).Error

	if err != nil {
		return nil, 0, fmt.Errorf("failed to list containers: %w", err)
	}

	containers := make([]*container.Container, len(dbModels))
	for i := range dbModels {
		containers[i] = toContainerEntity(&dbModels[i])
	}

	return containers, total, nil
}

func (r *ContainerRepository) CreateUpdate(ctx context.Context, update *container.TrackingUpdate) error {
	update.ID = uuid.New()
	if update.CreatedAt.IsZero() {
		update.CreatedAt = time.Now()
	}

	dbModel := toTrackingUpdateModel(update)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create tracking update: %w", err)
	}

	update.ID = dbModel.ID
	update.CreatedAt = dbModel.CreatedAt

	return nil
}

func (r *ContainerRepository) ListUpdates(ctx context.Context, containerID uuid.UUID, publicOnly bool) ([]container.TrackingUpdate, error) {
	var dbModels []models.TrackingUpdateModel

	db := r.db.DB.WithContext(ctx).
		Where("container_id = ?", containerID).
		Order("created_at DESC")
	if publicOnly {
		db = db.Where("is_public = ?", true)
	}

	if err := db.Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list tracking updates: %w", err)
	}

	updates := make([]container.TrackingUpdate, len(dbModels))
	for i := range dbModels {
		updates[i] = *toTrackingUpdateEntity(&dbModels[i])
	}

	return updates, nil
}
