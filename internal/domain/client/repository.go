package client

import (
	"context"

	"github.com/google/uuid"

	"github.com/BarberiaElCorte/barberia-crm/internal/models"
)

type Repository interface {
	// -------- Reads --------
	List(
		ctx context.Context,
	) ([]models.Client, error)

	Search(
		ctx context.Context,
		query string,
	) ([]models.Client, error)

	FindByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Client, error)

	// -------- Invariants --------
	PhoneExists(
		ctx context.Context,
		phone string,
		excludeID uuid.UUID,
	) (bool, error)

	CountServices(
		ctx context.Context,
		clientID uuid.UUID,
	) (int64, error)
}
