package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BarberiaElCorte/barberia-crm/internal/clientcache"
	domain "github.com/BarberiaElCorte/barberia-crm/internal/domain/client"
	"github.com/BarberiaElCorte/barberia-crm/internal/models"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *ClientGormRepository) List(
	ctx context.Context,
) ([]models.Client, error) {

	var clients []models.Client
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientGormRepository) Search(
	ctx context.Context,
	query string,
) ([]models.Client, error) {

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return r.List(ctx)
	}

	like := "%" + query + "%"

	var clients []models.Client
	if err := r.db.WithContext(ctx).
		Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR phone LIKE ?",
			like, like, like,
		).
		Order("created_at DESC").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientGormRepository) FindByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// --------------------------------------------------
// Invariants
// --------------------------------------------------

func (r *ClientGormRepository) PhoneExists(
	ctx context.Context,
	phone string,
	excludeID uuid.UUID,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("phone = ?", phone)

	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ClientGormRepository) CountServices(
	ctx context.Context,
	clientID uuid.UUID,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("client_id = ?", clientID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// --------------------------------------------------
// clientcache.Remote
// --------------------------------------------------

func (r *ClientGormRepository) Insert(
	ctx context.Context,
	client *models.Client,
) (*models.Client, error) {

	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

func (r *ClientGormRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	patch clientcache.ClientPatch,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&client).Error; err != nil {
		return nil, err
	}

	patch.ApplyTo(&client)

	if err := r.db.WithContext(ctx).Save(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientGormRepository) Delete(
	ctx context.Context,
	id uuid.UUID,
) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Client{}).Error
}

// Compile-time checks
var (
	_ domain.Repository  = (*ClientGormRepository)(nil)
	_ clientcache.Remote = (*ClientGormRepository)(nil)
)
