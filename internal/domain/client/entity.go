package client

import (
	"strings"

	"github.com/BarberiaElCorte/barberia-crm/internal/httperr"
	"github.com/BarberiaElCorte/barberia-crm/internal/models"
	"github.com/BarberiaElCorte/barberia-crm/internal/validators"
)

// ===============================
// Domain Actions
// ===============================

// NewClient valida y normaliza la entrada del formulario.
func NewClient(firstName, lastName, phone string) (*models.Client, error) {
	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		return nil, httperr.ErrBusiness("first_name_required")
	}

	normalized := validators.NormalizePhone(phone)
	if len(normalized) != 10 {
		return nil, httperr.ErrBusiness("invalid_phone")
	}

	return &models.Client{
		FirstName: firstName,
		LastName:  strings.TrimSpace(lastName),
		Phone:     normalized,
	}, nil
}

// NormalizePatchPhone valida un teléfono que llega en un parche.
func NormalizePatchPhone(phone string) (string, error) {
	normalized := validators.NormalizePhone(phone)
	if len(normalized) != 10 {
		return "", httperr.ErrBusiness("invalid_phone")
	}
	return normalized, nil
}
