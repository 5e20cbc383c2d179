package clientcache

import (
	"context"

	"github.com/google/uuid"

	"github.com/BarberiaElCorte/barberia-crm/internal/models"
)

// ClientPatch son los campos editables de un cliente.
type ClientPatch struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

func (p ClientPatch) ApplyTo(c *models.Client) {
	if p.FirstName != nil {
		c.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		c.LastName = *p.LastName
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
}

// Remote es la fuente de verdad detrás de la caché
// (repositorio gorm en producción, fakes en tests).
type Remote interface {
	List(ctx context.Context) ([]models.Client, error)
	Insert(ctx context.Context, client *models.Client) (*models.Client, error)
	Update(ctx context.Context, id uuid.UUID, patch ClientPatch) (*models.Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
