package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sahel-cargo/internal/domain/parcel"
	"sahel-cargo/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ParcelRepository struct {
	db *DB
}

func NewParcelRepository(db *DB) *ParcelRepository {
	return &ParcelRepository{db: db}
}

func (r *ParcelRepository) Create(ctx context.Context, p *parcel.Package) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	if p.Status == "" {
		p.Status = parcel.StatusRegistered
	}
	if p.PaymentStatus == "" {
		p.PaymentStatus = parcel.PaymentPending
	}

	dbModel := toPackageModel(p)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return parcel.ErrDuplicateNumber
		}
		return fmt.Errorf("failed to create package: %w", err)
	}

	p.ID = dbModel.ID
	p.CreatedAt = dbModel.CreatedAt
	p.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *ParcelRepository) GetByID(ctx context.Context, packageID uuid.UUID) (*parcel.Package, error) {
	var dbModel models.PackageModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", packageID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, parcel.ErrPackageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}

	return toPackageEntity(&dbModel), nil
}

func (r *ParcelRepository) GetByNumber(ctx context.Context, number string) (*parcel.Package, error) {
	var dbModel models.PackageModel
	err := r.db.DB.WithContext(ctx).
		Where("UPPER(number) = ?", strings.ToUpper(strings.TrimSpace(number))).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, parcel.ErrPackageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}

	return toPackageEntity(&dbModel), nil
}

func (r *ParcelRepository) Update(ctx context.Context, p *parcel.Package) error {
	p.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.PackageModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"container_id":    p.ContainerID,
			"shipment_id":     p.ShipmentID,
			"status":          string(p.Status),
			"description":     p.Description,
			"weight_kg":       p.WeightKg,
			"pieces":          p.Pieces,
			"pickup_at":       p.PickupAt,
			"delivery_at":     p.DeliveryAt,
			"price_eur":       p.PriceEUR,
			"amount_paid_eur": p.AmountPaidEUR,
			"payment_status":  string(p.PaymentStatus),
			"updated_at":      p.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update package: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return parcel.ErrPackageNotFound
	}

	return nil
}

func (r *ParcelRepository) UpdateStatus(ctx context.Context, packageID uuid.UUID, status parcel.Status) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.PackageModel{}).
		Where("id = ?", packageID).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update package status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return parcel.ErrPackageNotFound
	}

	return nil
}

func (r *ParcelRepository) AssignContainer(ctx context.Context, packageID, containerID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.PackageModel{}).
		Where("id = ?", packageID).
		Updates(map[string]interface{}{
			"container_id": containerID,
			"status":       string(parcel.StatusInContainer),
			"updated_at":   time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to assign container: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return parcel.ErrPackageNotFound
	}

	return nil
}

func (r *ParcelRepository) SetPickup(ctx context.Context, packageID uuid.UUID, at time.Time) error {
	return r.setTimestamp(ctx, packageID, "pickup_at", at)
}

func (r *ParcelRepository) SetDelivery(ctx context.Context, packageID uuid.UUID, at time.Time) error {
	return r.setTimestamp(ctx, packageID, "delivery_at", at)
}

func (r *ParcelRepository) setTimestamp(ctx context.Context, packageID uuid.UUID, column string, at time.Time) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.PackageModel{}).
		Where("id = ?", packageID).
		Updates(map[string]interface{}{column: at, "updated_at": time.Now()})

	if result.Error != nil {
		return fmt.Errorf("failed to set %s: %w", column, result.Error)
	}
	if result.RowsAffected == 0 {
		return parcel.ErrPackageNotFound
	}
	return nil
}

func (r *ParcelRepository) List(ctx context.Context, filter *parcel.Filter) ([]*parcel.Package, int64, error) {
	var dbModels []models.PackageModel
	var total int64

	db := r.db.DB.WithContext(ctx).Model(&models.PackageModel{})

	if filter.Status != nil {
		db = db.Where("status = ?", string(*filter.Status))
	}
	if filter.ClientID != nil {
		db = db.Where("client_id = ?", *filter.ClientID)
	}
	if filter.ContainerID != nil {
		db = db.Where("container_id = ?", *filter.ContainerID)
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		db = db.Where("number ILIKE ? OR description ILIKE ?", search, search)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count packages: %w", err)
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

	err := db.Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&dbModels).Error

	if err != nil {
		return nil, 0, fmt.Errorf("failed to list packages: %w", err)
	}

	packages := make([]*parcel.Package, len(dbModels))
	for i := range dbModels {
		packages[i] = toPackageEntity(&dbModels[i])
	}

	return packages, total, nil
}

func (r *ParcelRepository) ListByContainer(ctx context.Context, containerID uuid.UUID) ([]*parcel.Package, error) {
	var dbModels []models.PackageModel

	err := r.db.DB.WithContext(ctx).
		Where("container_id = ?", containerID).
		Order("created_at ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list packages by container: %w", err)
	}

	packages := make([]*parcel.Package, len(dbModels))
	for i := range dbModels {
		packages[i] = toPackageEntity(&dbModels[i])
	}

	return packages, nil
}

func (r *ParcelRepository) CreateShipment(ctx context.Context, s *parcel.Shipment) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()

	dbModel := toShipmentModel(s)

	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(dbModel).Error; err != nil {
			return err
		}
		return tx.Model(&models.PackageModel{}).
			Where("id IN ?", s.PackageIDs).
			Updates(map[string]interface{}{
				"shipment_id": dbModel.ID,
				"updated_at":  time.Now(),
			}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return parcel.ErrDuplicateNumber
		}
		return fmt.Errorf("failed to create shipment: %w", err)
	}

	s.ID = dbModel.ID
	return nil
}

func (r *ParcelRepository) GetShipmentByID(ctx context.Context, shipmentID uuid.UUID) (*parcel.Shipment, error) {
	var dbModel models.ShipmentModel
	err := r.db.DB.WithContext(ctx).
		Preload("Packages").
		Where("id = ?", shipmentID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, parcel.ErrShipmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shipment: %w", err)
	}

	return toShipmentEntity(&dbModel), nil
}

func (r *ParcelRepository) GetShipmentByNumber(ctx context.Context, number string) (*parcel.Shipment, error) {
	var dbModel models.ShipmentModel
	err := r.db.DB.WithContext(ctx).
		Preload("Packages").
		Where("UPPER(number) = ?", strings.ToUpper(strings.TrimSpace(number))).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, parcel.ErrShipmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shipment: %w", err)
	}

	return toShipmentEntity(&dbModel), nil
}

func (r *ParcelRepository) ListShipmentsByContainer(ctx context.Context, containerID uuid.UUID) ([]*parcel.Shipment, error) {
	var dbModels []models.ShipmentModel

	err := r.db.DB.WithContext(ctx).
		Preload("Packages").
		Where("container_id = ?", containerID).
		Order("created_at ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list shipments by container: %w", err)
	}

	shipments := make([]*parcel.Shipment, len(dbModels))
	for i := range dbModels {
		shipments[i] = toShipmentEntity(&dbModels[i])
	}

	return shipments, nil
}
