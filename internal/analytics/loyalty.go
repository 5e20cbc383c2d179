package analytics

import (
	"math"
	"time"

	"github.com/BarberiaElCorte/barberia-crm/internal/models"
)

// ===============================
// RFM loyalty scoring
// ===============================
//
// Puntaje 0–100: recencia (máx 40) + frecuencia (máx 30) +
// monetario (máx 30). Se recalcula en cada lectura a partir
// del join completo cliente×servicios; nunca se persiste.

type Tier = string

const (
	TierVIP          Tier = "VIP"
	TierFiel         Tier = "Fiel"
	TierRegular      Tier = "Regular"
	TierOcasional    Tier = "Ocasional"
	TierInactivo     Tier = "Inactivo"
	TierSinServicios Tier = "Sin Servicios"
)

type LoyaltyScore struct {
	Recency   int `json:"recency"`
	Frequency int `json:"frequency"`
	Monetary  int `json:"monetary"`
	Total     int `json:"total"`

	Tier          Tier `json:"tier"`
	DaysSinceLast int  `json:"days_since_last"` // -1 sin servicios
}

// Score puntúa los servicios de UN cliente.
func Score(services []models.Service, now time.Time) LoyaltyScore {
	if len(services) == 0 {
		return LoyaltyScore{Tier: TierSinServicios, DaysSinceLast: -1}
	}

	days := DaysSinceLast(services, now)
	spent := TotalSpent(services)

	s := LoyaltyScore{
		Recency:       recencyPoints(days),
		Frequency:     frequencyPoints(len(services)),
		Monetary:      monetaryPoints(spent),
		DaysSinceLast: days,
	}
	s.Total = s.Recency + s.Frequency + s.Monetary
	s.Tier = tierFor(s.Total)
	return s
}

func recencyPoints(days int) int {
	switch {
	case days <= 30:
		return 40
	case days <= 90:
		return 25
	case days <= 180:
		return 15
	default:
		return 5
	}
}

func frequencyPoints(count int) int {
	switch {
	case count >= 20:
		return 30
	case count >= 12:
		return 24
	case count >= 6:
		return 15
	case count >= 2:
		return 8
	case count >= 1:
		return 4
	default:
		return 0
	}
}

func monetaryPoints(spent float64) int {
	switch {
	case spent >= 1000:
		return 30
	case spent >= 500:
		return 22
	case spent >= 300:
		return 14
	case spent >= 100:
		return 6
	case spent > 0:
		return 3
	default:
		return 0
	}
}

func tierFor(total int) Tier {
	switch {
	case total >= 80:
		return TierVIP
	case total >= 60:
		return TierFiel
	case total >= 40:
		return TierRegular
	case total >= 20:
		return TierOcasional
	default:
		return TierInactivo
	}
}

// DaysSinceLast cuenta días calendario desde el servicio más
// reciente: un corte a las 16:00 de ayer ya cuenta como 1 día,
// sin importar la hora de hoy.
func DaysSinceLast(services []models.Service, now time.Time) int {
	var last time.Time
	for _, s := range services {
		if s.CreatedAt.After(last) {
			last = s.CreatedAt
		}
	}
	if last.IsZero() {
		return -1
	}

	loc := now.Location()
	lastDay := startOfDay(last.In(loc), loc)
	today := startOfDay(now, loc)

	// Round absorbe los días de 23/25 horas por cambio de horario
	days := int(math.Round(today.Sub(lastDay).Hours() / 24))
	if days < 0 {
		days = 0
	}
	return days
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func TotalSpent(services []models.Service) float64 {
	var total float64
	for _, s := range services {
		total += s.Price
	}
	return Round2(total)
}

// Round2 redondea a centavos.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
