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
	"github.com/BarberiaElCorte/barberia-crm/internal/realtime"
)

// ======================================================
// USE CASE
// ======================================================

type DeleteClient struct {
	cache  *clientcache.Cache
	repo   domain.Repository
	remote clientcache.Remote
	feed   *realtime.Publisher
	audit  *audit.Dispatcher
}

func NewDeleteClient(
	cache *clientcache.Cache,
	repo domain.Repository,
	remote clientcache.Remote,
	feed *realtime.Publisher,
	auditDispatcher *audit.Dispatcher,
) *DeleteClient {
	return &DeleteClient{
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

func (uc *DeleteClient) Execute(
	ctx context.Context,
	userID *uint,
	id uuid.UUID,
) error {

	removed, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("client_not_found")
		}
		return err
	}

	// Integridad referencial: nunca borrar en cascada
	count, err := uc.repo.CountServices(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return httperr.ErrBusiness("client_has_services")
	}

	err = uc.cache.DeleteOptimistic(ctx, id)
	if errors.Is(err, clientcache.ErrNotInCache) {
		err = uc.remote.Delete(ctx, id)
	}
	if err != nil {
		return err
	}

	uc.feed.Publish(ctx, realtime.EventDelete, realtime.TableClients, removed)

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "client_deleted",
		Entity:   "client",
		EntityID: id.String(),
	})

	return nil
}
