package client

import (
	"context"

	"github.com/google/uuid"

	"github.com/BarberiaElCorte/barberia-crm/internal/audit"
	"github.com/BarberiaElCorte/barberia-crm/internal/clientcache"
	domain "github.com/BarberiaElCorte/barberia-crm/internal/domain/client"
	"github.com/BarberiaElCorte/barberia-crm/internal/httperr"
	"github.com/BarberiaElCorte/barberia-crm/internal/models"
	"github.com/BarberiaElCorte/barberia-crm/internal/realtime"
)

// ======================================================
// INPUT
// ======================================================

type CreateClientInput struct {
	UserID *uint

	FirstName string
	LastName  string
	Phone     string
}

// ======================================================
// USE CASE
// ======================================================

type CreateClient struct {
	cache *clientcache.Cache
	repo  domain.Repository
	feed  *realtime.Publisher
	audit *audit.Dispatcher
}

func NewCreateClient(
	cache *clientcache.Cache,
	repo domain.Repository,
	feed *realtime.Publisher,
	auditDispatcher *audit.Dispatcher,
) *CreateClient {
	return &CreateClient{
		cache: cache,
		repo:  repo,
		feed:  feed,
		audit: auditDispatcher,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateClient) Execute(
	ctx context.Context,
	in CreateClientInput,
) (*models.Client, error) {

	// 1. Validación de formulario
	client, err := domain.NewClient(in.FirstName, in.LastName, in.Phone)
	if err != nil {
		return nil, err
	}

	// 2. Unicidad del teléfono (chequeo previo al insert,
	//    igual que hacía el formulario original)
	exists, err := uc.repo.PhoneExists(ctx, client.Phone, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, httperr.ErrBusiness("phone_already_exists")
	}

	// 3. Insert optimista: entra a la caché local y se confirma
	//    contra la base; rollback automático si falla
	confirmed, err := uc.cache.AddOptimistic(ctx, *client)
	if err != nil {
		return nil, err
	}

	// 4. Feed de cambios
	uc.feed.Publish(ctx, realtime.EventInsert, realtime.TableClients, confirmed)

	// 5. Auditoría
	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "client_created",
		Entity:   "client",
		EntityID: confirmed.ID.String(),
	})

	return confirmed, nil
}
