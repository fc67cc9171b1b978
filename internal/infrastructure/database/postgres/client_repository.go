package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sahel-cargo/internal/domain/client"
	"sahel-cargo/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientRepository struct {
	db *DB
}

func NewClientRepository(db *DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()

	dbModel := toClientModel(c)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	c.ID = dbModel.ID
	return nil
}

func (r *ClientRepository) GetByID(ctx context.Context, clientID uuid.UUID) (*client.Client, error) {
	var dbModel models.ClientModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", clientID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, client.ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return toClientEntity(&dbModel), nil
}

func (r *ClientRepository) Update(ctx context.Context, c *client.Client) error {
	c.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.ClientModel{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"name":                   c.Name,
			"phone":                  c.Phone,
			"email":                  c.Email,
			"address":                c.Address,
			"city":                   c.City,
			"country_code":           c.CountryCode,
			"recipient_name":         c.RecipientName,
			"recipient_phone":        c.RecipientPhone,
			"recipient_address":      c.RecipientAddress,
			"recipient_city":         c.RecipientCity,
			"recipient_country_code": c.RecipientCountryCode,
			"updated_at":             c.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return client.ErrClientNotFound
	}

	return nil
}

func (r *ClientRepository) List(ctx context.Context, filter *client.Filter) ([]*client.Client, int64, error) {
	var dbModels []models.ClientModel
	var total int64

	db := r.db.DB.WithContext(ctx).Model(&models.ClientModel{})

	if filter.CountryCode != nil {
		db = db.Where("country_code = ?", *filter.CountryCode)
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		db = db.Where("name ILIKE ? OR recipient_name ILIKE ? OR phone ILIKE ?", search, search, search)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	err := db.Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&dbModels).Error

	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}

	clients := make([]*client.Client, len(dbModels))
	for i := range dbModels {
		clients[i] = toClientEntity(&dbModels[i])
	}

	return clients, total, nil
}
