package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/BarberiaElCorte/barberia-crm/internal/domain/service"
	"github.com/BarberiaElCorte/barberia-crm/internal/httperr"
	"github.com/BarberiaElCorte/barberia-crm/internal/httpresp"
	"github.com/BarberiaElCorte/barberia-crm/internal/models"
	"github.com/BarberiaElCorte/barberia-crm/internal/timezone"
	ucService "github.com/BarberiaElCorte/barberia-crm/internal/usecase/service"
)

type ServiceHandler struct {
	repo     domain.Repository
	createUC *ucService.CreateService
	updateUC *ucService.UpdateService
	tz       string
}

func NewServiceHandler(
	repo domain.Repository,
	createUC *ucService.CreateService,
	updateUC *ucService.UpdateService,
	tz string,
) *ServiceHandler {
	return &ServiceHandler{
		repo:     repo,
		createUC: createUC,
		updateUC: updateUC,
		tz:       tz,
	}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	ClientID    uuid.UUID `json:"client_id" binding:"required"`
	ServiceType string    `json:"service_type" binding:"required"`
	Price       float64   `json:"price" binding:"required"`
	Notes       string    `json:"notes"`
}

type UpdateServiceRequest struct {
	ServiceType *string  `json:"service_type,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
}

// --------- Handlers ---------

// List acepta ?client_id=, ?window=day|week|month|year o
// ?year=&month=; los filtros de fecha se combinan con el de cliente.
func (h *ServiceHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var services []models.Service
	var err error

	if raw := c.Query("client_id"); raw != "" {
		clientID, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			httperr.BadRequest(c, "invalid_client_id", "El identificador del cliente no es válido.")
			return
		}
		services, err = h.repo.ListByClient(ctx, clientID)
	} else {
		services, err = h.repo.List(ctx)
	}
	if err != nil {
		httperr.Internal(c, "failed_to_list_services", "No se pudo cargar la lista de servicios.")
		return
	}

	loc := timezone.Location(h.tz)
	now := timezone.NowIn(h.tz)

	filtered, ok := applyDateFilters(c, services, now, loc)
	if !ok {
		return
	}

	httpresp.List(c, filtered)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	svc, err := h.createUC.Execute(c.Request.Context(), ucService.CreateServiceInput{
		UserID:      currentUserID(c),
		ClientID:    req.ClientID,
		ServiceType: req.ServiceType,
		Price:       req.Price,
		Notes:       req.Notes,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "El identificador del servicio no es válido.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	svc, err := h.updateUC.Execute(c.Request.Context(), ucService.UpdateServiceInput{
		UserID:      currentUserID(c),
		ID:          id,
		ServiceType: req.ServiceType,
		Price:       req.Price,
		Notes:       req.Notes,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, svc)
}

// --------- Helpers ---------

func writeServiceError(c *gin.Context, err error) {
	var be httperr.BusinessError
	if !errors.As(err, &be) {
		httperr.Internal(c, "internal_error", "Ocurrió un error inesperado.")
		return
	}

	switch be.Code {
	case "client_required":
		httperr.BadRequest(c, be.Code, "Selecciona un cliente para el servicio.")
	case "service_type_required":
		httperr.BadRequest(c, be.Code, "El tipo de servicio es obligatorio.")
	case "invalid_price":
		httperr.BadRequest(c, be.Code, "El precio debe ser mayor a cero.")
	case "client_not_found":
		httperr.NotFound(c, be.Code, "El cliente no existe.")
	case "service_not_found":
		httperr.NotFound(c, be.Code, "El servicio no existe.")
	default:
		httperr.BadRequest(c, be.Code, be.Code)
	}
}
