package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BarberiaElCorte/barberia-crm/internal/audit"
	clientDomain "github.com/BarberiaElCorte/barberia-crm/internal/domain/client"
	domain "github.com/BarberiaElCorte/barberia-crm/internal/domain/service"
	"github.com/BarberiaElCorte/barberia-crm/internal/httperr"
	"github.com/BarberiaElCorte/barberia-crm/internal/models"
	"github.com/BarberiaElCorte/barberia-crm/internal/realtime"
)

// ======================================================
// INPUT
// ======================================================

type CreateServiceInput struct {
	UserID *uint

	ClientID    uuid.UUID
	ServiceType string
	Price       float64
	Notes       string
}

// ======================================================
// USE CASE
// ======================================================

type CreateService struct {
	repo    domain.Repository
	clients clientDomain.Repository
	feed    *realtime.Publisher
	audit   *audit.Dispatcher
}

func NewCreateService(
	repo domain.Repository,
	clients clientDomain.Repository,
	feed *realtime.Publisher,
	auditDispatcher *audit.Dispatcher,
) *CreateService {
	return &CreateService{
		repo:    repo,
		clients: clients,
		feed:    feed,
		audit:   auditDispatcher,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateService) Execute(
	ctx context.Context,
	in CreateServiceInput,
) (*models.Service, error) {

	// 1. Validación de formulario
	svc, err := domain.NewService(in.ClientID, in.ServiceType, in.Price, in.Notes)
	if err != nil {
		return nil, err
	}

	// 2. El cliente debe existir
	if _, err := uc.clients.FindByID(ctx, in.ClientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("client_not_found")
		}
		return nil, err
	}

	// 3. Persistencia
	if err := uc.repo.Create(ctx, svc); err != nil {
		return nil, err
	}

	// 4. Feed + auditoría
	uc.feed.Publish(ctx, realtime.EventInsert, realtime.TableServices, svc)

	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "service_created",
		Entity:   "service",
		EntityID: svc.ID.String(),
	})

	return svc, nil
}
