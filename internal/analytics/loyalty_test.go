package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BarberiaElCorte/barberia-crm/internal/models"
)

func svc(created time.Time, price float64) models.Service {
	return models.Service{
		ID:          uuid.New(),
		ServiceType: "Corte",
		Price:       price,
		CreatedAt:   created,
	}
}

func TestScore_SinServicios(t *testing.T) {
	now := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)

	s := Score(nil, now)

	assert.Equal(t, 0, s.Total)
	assert.Equal(t, TierSinServicios, s.Tier)
	assert.Equal(t, -1, s.DaysSinceLast)
}

func TestScore_ReferenceScenario(t *testing.T) {
	// dos servicios de $50: 2024-01-05 y 2024-03-01, hoy es 2024-03-02
	now := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
	services := []models.Service{
		svc(time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC), 50),
		svc(time.Date(2024, 3, 1, 16, 0, 0, 0, time.UTC), 50),
	}

	s := Score(services, now)

	assert.Equal(t, 1, s.DaysSinceLast)
	assert.Equal(t, 40, s.Recency)   // ≤30 días
	assert.Equal(t, 8, s.Frequency)  // 2 servicios
	assert.Equal(t, 6, s.Monetary)   // $100
	assert.Equal(t, 54, s.Total)
	assert.Equal(t, TierRegular, s.Tier)
}

func TestScore_AlwaysWithinRange(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		services []models.Service
	}{
		{"vacío", nil},
		{"un servicio viejo y barato", []models.Service{
			svc(now.AddDate(-3, 0, 0), 0.5),
		}},
		{"cliente de máximo puntaje", func() []models.Service {
			out := make([]models.Service, 0, 25)
			for i := 0; i < 25; i++ {
				out = append(out, svc(now.AddDate(0, 0, -i), 100))
			}
			return out
		}()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Score(tc.services, now)
			assert.GreaterOrEqual(t, s.Total, 0)
			assert.LessOrEqual(t, s.Total, 100)
			assert.Equal(t, s.Recency+s.Frequency+s.Monetary, s.Total)
		})
	}
}

func TestScore_MaxIsExactly100(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	services := make([]models.Service, 0, 20)
	for i := 0; i < 20; i++ {
		services = append(services, svc(now.AddDate(0, 0, -1), 50))
	}

	s := Score(services, now)

	require.Equal(t, 40, s.Recency)
	require.Equal(t, 30, s.Frequency)
	require.Equal(t, 30, s.Monetary)
	assert.Equal(t, 100, s.Total)
	assert.Equal(t, TierVIP, s.Tier)
}

func TestDaysSinceLast_CalendarDays(t *testing.T) {
	// se cuentan días calendario, no bloques de 24 horas:
	// ayer a las 16:00 visto hoy a las 12:00 es 1 día
	now := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		last time.Time
		want int
	}{
		{"ayer por la tarde", time.Date(2024, 3, 1, 16, 0, 0, 0, time.UTC), 1},
		{"hoy más temprano", time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC), 0},
		{"hace una semana", time.Date(2024, 2, 24, 23, 59, 0, 0, time.UTC), 7},
		{"reloj adelantado", time.Date(2024, 3, 2, 18, 0, 0, 0, time.UTC), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DaysSinceLast([]models.Service{svc(tc.last, 50)}, now)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDaysSinceLast_SinServicios(t *testing.T) {
	now := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, -1, DaysSinceLast(nil, now))
}

func TestTierBoundaries(t *testing.T) {
	assert.Equal(t, TierVIP, tierFor(80))
	assert.Equal(t, TierFiel, tierFor(79))
	assert.Equal(t, TierFiel, tierFor(60))
	assert.Equal(t, TierRegular, tierFor(59))
	assert.Equal(t, TierRegular, tierFor(40))
	assert.Equal(t, TierOcasional, tierFor(39))
	assert.Equal(t, TierOcasional, tierFor(20))
	assert.Equal(t, TierInactivo, tierFor(19))
	assert.Equal(t, TierInactivo, tierFor(0))
}

func TestAssessRisk(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("sin servicios", func(t *testing.T) {
		r := AssessRisk(nil, now)
		assert.Equal(t, RiskSinServicios, r.Level)
		assert.NotEmpty(t, r.RecommendedAction)
	})

	cases := []struct {
		daysAgo int
		level   RiskLevel
	}{
		{1, RiskActivo},
		{30, RiskActivo},
		{31, RiskBajo},
		{90, RiskBajo},
		{91, RiskMedio},
		{180, RiskMedio},
		{181, RiskAlto},
		{400, RiskAlto},
	}

	for _, tc := range cases {
		r := AssessRisk([]models.Service{
			svc(now.AddDate(0, 0, -tc.daysAgo), 50),
		}, now)
		assert.Equal(t, tc.level, r.Level, "hace %d días", tc.daysAgo)
		assert.NotEmpty(t, r.RecommendedAction)
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.57, Round2(10.567))
	assert.Equal(t, 10.56, Round2(10.562))
	assert.Equal(t, 0.3, Round2(0.1+0.2))
}
