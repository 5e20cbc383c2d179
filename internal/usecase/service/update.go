package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BarberiaElCorte/barberia-crm/internal/analytics"
	"github.com/BarberiaElCorte/barberia-crm/internal/audit"
	domain "github.com/BarberiaElCorte/barberia-crm/internal/domain/service"
	"github.com/BarberiaElCorte/barberia-crm/internal/httperr"
	"github.com/BarberiaElCorte/barberia-crm/internal/models"
	"github.com/BarberiaElCorte/barberia-crm/internal/realtime"
)

// ======================================================
// INPUT
// ======================================================

type UpdateServiceInput struct {
	UserID *uint

	ID          uuid.UUID
	ServiceType *string
	Price       *float64
	Notes       *string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateService struct {
	repo  domain.Repository
	feed  *realtime.Publisher
	audit *audit.Dispatcher
}

func NewUpdateService(
	repo domain.Repository,
	feed *realtime.Publisher,
	auditDispatcher *audit.Dispatcher,
) *UpdateService {
	return &UpdateService{
		repo:  repo,
		feed:  feed,
		audit: auditDispatcher,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateService) Execute(
	ctx context.Context,
	in UpdateServiceInput,
) (*models.Service, error) {

	svc, err := uc.repo.FindByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		return nil, err
	}

	if in.ServiceType != nil {
		trimmed := strings.TrimSpace(*in.ServiceType)
		if trimmed == "" {
			return nil, httperr.ErrBusiness("service_type_required")
		}
		svc.ServiceType = trimmed
	}

	if in.Price != nil {
		if *in.Price <= 0 {
			return nil, httperr.ErrBusiness("invalid_price")
		}
		svc.Price = analytics.Round2(*in.Price)
	}

	if in.Notes != nil {
		svc.Notes = strings.TrimSpace(*in.Notes)
	}

	if err := uc.repo.Update(ctx, svc); err != nil {
		return nil, err
	}

	uc.feed.Publish(ctx, realtime.EventUpdate, realtime.TableServices, svc)

	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "service_updated",
		Entity:   "service",
		EntityID: svc.ID.String(),
	})

	return svc, nil
}
