package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BarberiaElCorte/barberia-crm/internal/models"
	"github.com/BarberiaElCorte/barberia-crm/internal/validators"
)

type ClientListDTO struct {
	ID             uuid.UUID `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name,omitempty"`
	Phone          string    `json:"phone"`
	FormattedPhone string    `json:"formatted_phone"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func ToClientListDTO(c models.Client) ClientListDTO {
	return ClientListDTO{
		ID:             c.ID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Phone:          c.Phone,
		FormattedPhone: validators.FormatPhoneNumber(c.Phone),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
