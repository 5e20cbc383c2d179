package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BarberiaElCorte/barberia-crm/internal/analytics"
	clientDomain "github.com/BarberiaElCorte/barberia-crm/internal/domain/client"
	serviceDomain "github.com/BarberiaElCorte/barberia-crm/internal/domain/service"
	"github.com/BarberiaElCorte/barberia-crm/internal/httperr"
	"github.com/BarberiaElCorte/barberia-crm/internal/models"
	"github.com/BarberiaElCorte/barberia-crm/internal/timezone"
)

// ======================================================
// STATS
// ======================================================
//
// Todas las vistas se recalculan por request a partir del
// join completo cliente×servicios; nada se cachea.

type StatsHandler struct {
	services serviceDomain.Repository
	clients  clientDomain.Repository
	tz       string
}

func NewStatsHandler(
	services serviceDomain.Repository,
	clients clientDomain.Repository,
	tz string,
) *StatsHandler {
	return &StatsHandler{
		services: services,
		clients:  clients,
		tz:       tz,
	}
}

// --------- Handlers ---------

// Revenue responde la serie diaria de ingresos para una ventana
// relativa (?window=day|week|month|year) o un mes explícito
// (?year=2024&month=3).
func (h *StatsHandler) Revenue(c *gin.Context) {
	services, ok := h.loadServices(c)
	if !ok {
		return
	}

	loc := timezone.Location(h.tz)
	now := timezone.NowIn(h.tz)

	filtered, ok := applyDateFilters(c, services, now, loc)
	if !ok {
		return
	}

	series := analytics.RevenueByDay(filtered, loc)

	var total float64
	var count int
	for _, p := range series {
		total = analytics.Round2(total + p.Revenue)
		count += p.Count
	}

	c.JSON(http.StatusOK, gin.H{
		"series":        series,
		"total_revenue": total,
		"total_count":   count,
	})
}

func (h *StatsHandler) Weekday(c *gin.Context) {
	services, ok := h.loadServices(c)
	if !ok {
		return
	}

	loc := timezone.Location(h.tz)
	c.JSON(http.StatusOK, gin.H{"weekdays": analytics.RevenueByWeekday(services, loc)})
}

func (h *StatsHandler) Hours(c *gin.Context) {
	services, ok := h.loadServices(c)
	if !ok {
		return
	}

	loc := timezone.Location(h.tz)
	c.JSON(http.StatusOK, gin.H{"hours": analytics.ServicesByHour(services, loc)})
}

func (h *StatsHandler) ServiceTypes(c *gin.Context) {
	services, ok := h.loadServices(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"service_types": analytics.RevenueByServiceType(services)})
}

// Clients responde la tabla del dashboard: agregados, puntaje
// de lealtad, nivel de riesgo y acción recomendada por cliente.
func (h *StatsHandler) Clients(c *gin.Context) {
	ctx := c.Request.Context()

	clients, err := h.clients.List(ctx)
	if err != nil {
		httperr.Internal(c, "failed_to_load_stats", "No se pudieron calcular las estadísticas.")
		return
	}

	services, ok := h.loadServices(c)
	if !ok {
		return
	}

	now := timezone.NowIn(h.tz)
	c.JSON(http.StatusOK, gin.H{"clients": analytics.BuildClientStats(clients, services, now)})
}

// --------- Helpers ---------

func (h *StatsHandler) loadServices(c *gin.Context) ([]models.Service, bool) {
	services, err := h.services.List(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_load_stats", "No se pudieron calcular las estadísticas.")
		return nil, false
	}
	return services, true
}

// applyDateFilters recorta por mes explícito (?year=&month=) o por
// ventana relativa (?window=); sin parámetros deja la lista intacta.
// Lo comparten las estadísticas y el listado de servicios.
func applyDateFilters(
	c *gin.Context,
	services []models.Service,
	now time.Time,
	loc *time.Location,
) ([]models.Service, bool) {

	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_year", "El año no es válido.")
			return nil, false
		}

		month, err := strconv.Atoi(c.DefaultQuery("month", "1"))
		if err != nil || month < 1 || month > 12 {
			httperr.BadRequest(c, "invalid_month", "El mes debe estar entre 1 y 12.")
			return nil, false
		}

		return analytics.FilterByMonth(services, year, time.Month(month), loc), true
	}

	if windowStr := c.Query("window"); windowStr != "" {
		window, ok := analytics.ParseWindow(windowStr)
		if !ok {
			httperr.BadRequest(c, "invalid_window", "La ventana debe ser day, week, month o year.")
			return nil, false
		}
		return analytics.FilterByWindow(services, window, now), true
	}

	return services, true
}
