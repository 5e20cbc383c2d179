package analytics

import (
	"time"

	"github.com/BarberiaElCorte/barberia-crm/internal/models"
)

// ===============================
// Client risk buckets
// ===============================

type RiskLevel = string

const (
	RiskActivo       RiskLevel = "Activo"
	RiskBajo         RiskLevel = "Bajo"
	RiskMedio        RiskLevel = "Medio"
	RiskAlto         RiskLevel = "Alto"
	RiskSinServicios RiskLevel = "Sin Servicios"
)

type Risk struct {
	Level             RiskLevel `json:"level"`
	RecommendedAction string    `json:"recommended_action"`
}

// AssessRisk clasifica al cliente por la recencia de su último
// servicio y sugiere la acción de retención correspondiente.
func AssessRisk(services []models.Service, now time.Time) Risk {
	if len(services) == 0 {
		return Risk{
			Level:             RiskSinServicios,
			RecommendedAction: "Invitarlo a su primera visita",
		}
	}

	days := DaysSinceLast(services, now)

	switch {
	case days <= 30:
		return Risk{
			Level:             RiskActivo,
			RecommendedAction: "Mantener la atención habitual",
		}
	case days <= 90:
		return Risk{
			Level:             RiskBajo,
			RecommendedAction: "Recordarle agendar su próxima cita",
		}
	case days <= 180:
		return Risk{
			Level:             RiskMedio,
			RecommendedAction: "Enviar una promoción personalizada",
		}
	default:
		return Risk{
			Level:             RiskAlto,
			RecommendedAction: "Contactarlo con una oferta de regreso",
		}
	}
}
