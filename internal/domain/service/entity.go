package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/BarberiaElCorte/barberia-crm/internal/analytics"
	"github.com/BarberiaElCorte/barberia-crm/internal/httperr"
	"github.com/BarberiaElCorte/barberia-crm/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// NewService valida la entrada del formulario de servicios.
func NewService(clientID uuid.UUID, serviceType string, price float64, notes string) (*models.Service, error) {
	if clientID == uuid.Nil {
		return nil, httperr.ErrBusiness("client_required")
	}

	serviceType = strings.TrimSpace(serviceType)
	if serviceType == "" {
		return nil, httperr.ErrBusiness("service_type_required")
	}

	if price <= 0 {
		return nil, httperr.ErrBusiness("invalid_price")
	}

	return &models.Service{
		ClientID:    clientID,
		ServiceType: serviceType,
		Price:       analytics.Round2(price),
		Notes:       strings.TrimSpace(notes),
	}, nil
}
