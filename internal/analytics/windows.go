package analytics

import (
	"time"

	"github.com/BarberiaElCorte/barberia-crm/internal/models"
)

// ===============================
// Date windows
// ===============================

type Window string

const (
	WindowDay   Window = "day"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowYear  Window = "year"
)

func ParseWindow(s string) (Window, bool) {
	switch Window(s) {
	case WindowDay, WindowWeek, WindowMonth, WindowYear:
		return Window(s), true
	}
	return "", false
}

// FilterByWindow conserva los servicios dentro de la ventana
// relativa a now (en la zona horaria de now).
func FilterByWindow(services []models.Service, w Window, now time.Time) []models.Service {
	var from time.Time

	switch w {
	case WindowDay:
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case WindowWeek:
		from = now.AddDate(0, 0, -7)
	case WindowMonth:
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case WindowYear:
		from = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	default:
		return services
	}

	out := make([]models.Service, 0, len(services))
	for _, s := range services {
		t := s.CreatedAt.In(now.Location())
		if !t.Before(from) && !t.After(now) {
			out = append(out, s)
		}
	}
	return out
}

// FilterByMonth conserva los servicios de un año/mes explícito.
func FilterByMonth(services []models.Service, year int, month time.Month, loc *time.Location) []models.Service {
	from := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 1, 0)

	out := make([]models.Service, 0, len(services))
	for _, s := range services {
		t := s.CreatedAt.In(loc)
		if !t.Before(from) && t.Before(to) {
			out = append(out, s)
		}
	}
	return out
}
