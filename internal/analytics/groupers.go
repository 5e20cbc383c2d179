package analytics

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/BarberiaElCorte/barberia-crm/internal/models"
)

// ===============================
// Chart data shaping
// ===============================

var weekdayNames = [7]string{
	"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado",
}

type RevenuePoint struct {
	Date    string  `json:"date"` // YYYY-MM-DD
	Revenue float64 `json:"revenue"`
	Count   int     `json:"count"`
}

// RevenueByDay agrupa ingresos por día calendario, ordenado ascendente.
func RevenueByDay(services []models.Service, loc *time.Location) []RevenuePoint {
	byDay := make(map[string]*RevenuePoint)

	for _, s := range services {
		day := s.CreatedAt.In(loc).Format("2006-01-02")
		p, ok := byDay[day]
		if !ok {
			p = &RevenuePoint{Date: day}
			byDay[day] = p
		}
		p.Revenue = Round2(p.Revenue + s.Price)
		p.Count++
	}

	out := make([]RevenuePoint, 0, len(byDay))
	for _, p := range byDay {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

type WeekdayStat struct {
	Weekday string  `json:"weekday"`
	Revenue float64 `json:"revenue"`
	Count   int     `json:"count"`
}

// RevenueByWeekday devuelve siempre las 7 entradas, Domingo primero.
func RevenueByWeekday(services []models.Service, loc *time.Location) []WeekdayStat {
	out := make([]WeekdayStat, 7)
	for i := range out {
		out[i].Weekday = weekdayNames[i]
	}

	for _, s := range services {
		wd := int(s.CreatedAt.In(loc).Weekday())
		out[wd].Revenue = Round2(out[wd].Revenue + s.Price)
		out[wd].Count++
	}
	return out
}

type HourStat struct {
	Hour    int     `json:"hour"`
	Revenue float64 `json:"revenue"`
	Count   int     `json:"count"`
}

// ServicesByHour devuelve las 24 horas, incluso las vacías.
func ServicesByHour(services []models.Service, loc *time.Location) []HourStat {
	out := make([]HourStat, 24)
	for i := range out {
		out[i].Hour = i
	}

	for _, s := range services {
		h := s.CreatedAt.In(loc).Hour()
		out[h].Revenue = Round2(out[h].Revenue + s.Price)
		out[h].Count++
	}
	return out
}

type ServiceTypeStat struct {
	ServiceType string  `json:"service_type"`
	Revenue     float64 `json:"revenue"`
	Count       int     `json:"count"`
}

// RevenueByServiceType ordena por ingresos de mayor a menor.
func RevenueByServiceType(services []models.Service) []ServiceTypeStat {
	byType := make(map[string]*ServiceTypeStat)

	for _, s := range services {
		st, ok := byType[s.ServiceType]
		if !ok {
			st = &ServiceTypeStat{ServiceType: s.ServiceType}
			byType[s.ServiceType] = st
		}
		st.Revenue = Round2(st.Revenue + s.Price)
		st.Count++
	}

	out := make([]ServiceTypeStat, 0, len(byType))
	for _, st := range byType {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].ServiceType < out[j].ServiceType
	})
	return out
}

type ClientStats struct {
	Client       models.Client `json:"client"`
	TotalSpent   float64       `json:"total_spent"`
	ServiceCount int           `json:"service_count"`
	LastVisit    *time.Time    `json:"last_visit,omitempty"`

	Loyalty LoyaltyScore `json:"loyalty"`
	Risk    Risk         `json:"risk"`
}

// BuildClientStats arma la tabla del dashboard: agregados por
// cliente más puntaje de lealtad y nivel de riesgo.
func BuildClientStats(clients []models.Client, services []models.Service, now time.Time) []ClientStats {
	byClient := make(map[uuid.UUID][]models.Service, len(clients))
	for _, s := range services {
		byClient[s.ClientID] = append(byClient[s.ClientID], s)
	}

	out := make([]ClientStats, 0, len(clients))
	for _, client := range clients {
		own := byClient[client.ID]

		cs := ClientStats{
			Client:       client,
			TotalSpent:   TotalSpent(own),
			ServiceCount: len(own),
			Loyalty:      Score(own, now),
			Risk:         AssessRisk(own, now),
		}

		for i := range own {
			if cs.LastVisit == nil || own[i].CreatedAt.After(*cs.LastVisit) {
				cs.LastVisit = &own[i].CreatedAt
			}
		}

		out = append(out, cs)
	}

	// mejores clientes primero
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Loyalty.Total > out[j].Loyalty.Total
	})
	return out
}
