package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BarberiaElCorte/barberia-crm/internal/models"
)

func typedSvc(created time.Time, price float64, serviceType string) models.Service {
	s := svc(created, price)
	s.ServiceType = serviceType
	return s
}

func TestRevenueByDay(t *testing.T) {
	services := []models.Service{
		svc(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), 150),
		svc(time.Date(2024, 3, 1, 17, 30, 0, 0, time.UTC), 100),
		svc(time.Date(2024, 3, 3, 9, 0, 0, 0, time.UTC), 80),
	}

	series := RevenueByDay(services, time.UTC)

	require.Len(t, series, 2)
	assert.Equal(t, "2024-03-01", series[0].Date)
	assert.Equal(t, 250.0, series[0].Revenue)
	assert.Equal(t, 2, series[0].Count)
	assert.Equal(t, "2024-03-03", series[1].Date)
	assert.Equal(t, 80.0, series[1].Revenue)
}

func TestRevenueByWeekday(t *testing.T) {
	// 2024-03-01 fue viernes, 2024-03-03 domingo
	services := []models.Service{
		svc(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), 150),
		svc(time.Date(2024, 3, 3, 9, 0, 0, 0, time.UTC), 80),
	}

	stats := RevenueByWeekday(services, time.UTC)

	require.Len(t, stats, 7)
	assert.Equal(t, "Domingo", stats[0].Weekday)
	assert.Equal(t, 80.0, stats[0].Revenue)
	assert.Equal(t, "Viernes", stats[5].Weekday)
	assert.Equal(t, 150.0, stats[5].Revenue)
	assert.Equal(t, 0, stats[1].Count) // lunes vacío
}

func TestServicesByHour(t *testing.T) {
	services := []models.Service{
		svc(time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC), 150),
		svc(time.Date(2024, 3, 2, 10, 45, 0, 0, time.UTC), 100),
		svc(time.Date(2024, 3, 3, 18, 0, 0, 0, time.UTC), 80),
	}

	stats := ServicesByHour(services, time.UTC)

	require.Len(t, stats, 24)
	assert.Equal(t, 2, stats[10].Count)
	assert.Equal(t, 250.0, stats[10].Revenue)
	assert.Equal(t, 1, stats[18].Count)
	assert.Equal(t, 0, stats[0].Count)
}

func TestRevenueByServiceType(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	services := []models.Service{
		typedSvc(now, 150, "Corte"),
		typedSvc(now, 100, "Corte"),
		typedSvc(now, 300, "Tinte"),
	}

	stats := RevenueByServiceType(services)

	require.Len(t, stats, 2)
	assert.Equal(t, "Tinte", stats[0].ServiceType) // mayor ingreso primero
	assert.Equal(t, 300.0, stats[0].Revenue)
	assert.Equal(t, "Corte", stats[1].ServiceType)
	assert.Equal(t, 250.0, stats[1].Revenue)
	assert.Equal(t, 2, stats[1].Count)
}

func TestBuildClientStats(t *testing.T) {
	now := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)

	ana := models.Client{ID: uuid.New(), FirstName: "Ana", Phone: "5511111111"}
	beto := models.Client{ID: uuid.New(), FirstName: "Beto", Phone: "5522222222"}

	s1 := svc(time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC), 50)
	s1.ClientID = ana.ID
	s2 := svc(time.Date(2024, 3, 1, 16, 0, 0, 0, time.UTC), 50)
	s2.ClientID = ana.ID

	stats := BuildClientStats(
		[]models.Client{ana, beto},
		[]models.Service{s1, s2},
		now,
	)

	require.Len(t, stats, 2)

	// Ana puntúa más alto, va primero
	assert.Equal(t, ana.ID, stats[0].Client.ID)
	assert.Equal(t, 100.0, stats[0].TotalSpent)
	assert.Equal(t, 2, stats[0].ServiceCount)
	assert.Equal(t, 54, stats[0].Loyalty.Total)
	assert.Equal(t, TierRegular, stats[0].Loyalty.Tier)
	assert.Equal(t, RiskActivo, stats[0].Risk.Level)
	require.NotNil(t, stats[0].LastVisit)
	assert.Equal(t, s2.CreatedAt, *stats[0].LastVisit)

	// Beto no tiene servicios
	assert.Equal(t, beto.ID, stats[1].Client.ID)
	assert.Equal(t, 0, stats[1].Loyalty.Total)
	assert.Equal(t, TierSinServicios, stats[1].Loyalty.Tier)
	assert.Equal(t, RiskSinServicios, stats[1].Risk.Level)
	assert.Nil(t, stats[1].LastVisit)
}
