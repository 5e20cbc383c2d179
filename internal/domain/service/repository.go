package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/BarberiaElCorte/barberia-crm/internal/models"
)

type Repository interface {
	// -------- Reads --------
	List(
		ctx context.Context,
	) ([]models.Service, error)

	ListByClient(
		ctx context.Context,
		clientID uuid.UUID,
	) ([]models.Service, error)

	FindByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Service, error)

	// -------- Writes --------
	Create(
		ctx context.Context,
		svc *models.Service,
	) error

	Update(
		ctx context.Context,
		svc *models.Service,
	) error
}
