package client

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

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

type UpdateClientInput struct {
	UserID *uint

	ID    uuid.UUID
	Patch clientcache.ClientPatch
}

// ======================================================
// USE CASE
// ======================================================

type UpdateClient struct {
	cache  *clientcache.Cache
	repo   domain.Repository
	remote clientcache.Remote
	feed   *realtime.Publisher
	audit  *audit.Dispatcher
}

func NewUpdateClient(
	cache *clientcache.Cache,
	repo domain.Repository,
	remote clientcache.Remote,
	feed *realtime.Publisher,
	auditDispatcher *audit.Dispatcher,
) *UpdateClient {
	return &UpdateClient{
		cache:  cache,
		repo:   repo,
		remote: remote,
		feed:   feed,
		audit:  auditDispatcher,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateClient) Execute(
	ctx context.Context,
	in UpdateClientInput,
) (*models.Client, error) {

	patch := in.Patch

	// 1. Teléfono del parche: normalizar y verificar unicidad,
	//    excluyendo al propio cliente
	if patch.Phone != nil {
		normalized, err := domain.NormalizePatchPhone(*patch.Phone)
		if err != nil {
			return nil, err
		}

		exists, err := uc.repo.PhoneExists(ctx, normalized, in.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, httperr.ErrBusiness("phone_already_exists")
		}

		patch.Phone = &normalized
	}

	// 2. Update optimista con rollback; si la caché aún no conoce
	//    el registro, directo al remoto
	confirmed, err := uc.cache.UpdateOptimistic(ctx, in.ID, patch)
	if errors.Is(err, clientcache.ErrNotInCache) {
		confirmed, err = uc.remote.Update(ctx, in.ID, patch)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("client_not_found")
		}
		return nil, err
	}

	// 3. Feed + auditoría
	uc.feed.Publish(ctx, realtime.EventUpdate, realtime.TableClients, confirmed)

	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "client_updated",
		Entity:   "client",
		EntityID: confirmed.ID.String(),
	})

	return confirmed, nil
}
