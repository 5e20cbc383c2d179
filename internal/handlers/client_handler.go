package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BarberiaElCorte/barberia-crm/internal/clientcache"
	"github.com/BarberiaElCorte/barberia-crm/internal/httperr"
	"github.com/BarberiaElCorte/barberia-crm/internal/httpresp"
	"github.com/BarberiaElCorte/barberia-crm/internal/middleware"
	ucClient "github.com/BarberiaElCorte/barberia-crm/internal/usecase/client"
)

type ClientHandler struct {
	createUC *ucClient.CreateClient
	updateUC *ucClient.UpdateClient
	deleteUC *ucClient.DeleteClient
	listUC   *ucClient.ListClients
}

func NewClientHandler(
	createUC *ucClient.CreateClient,
	updateUC *ucClient.UpdateClient,
	deleteUC *ucClient.DeleteClient,
	listUC *ucClient.ListClients,
) *ClientHandler {
	return &ClientHandler{
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		listUC:   listUC,
	}
}

// --------- Requests ---------

type CreateClientRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone" binding:"required"`
}

type UpdateClientRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// --------- Handlers ---------

func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.listUC.Execute(c.Request.Context(), c.Query("query"))
	if err != nil {
		httperr.Internal(c, "failed_to_list_clients", "No se pudo cargar la lista de clientes.")
		return
	}

	httpresp.List(c, clients)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	client, err := h.createUC.Execute(c.Request.Context(), ucClient.CreateClientInput{
		UserID:    currentUserID(c),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		writeClientError(c, err)
		return
	}

	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_client_id", "El identificador del cliente no es válido.")
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	client, err := h.updateUC.Execute(c.Request.Context(), ucClient.UpdateClientInput{
		UserID: currentUserID(c),
		ID:     id,
		Patch: clientcache.ClientPatch{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
		},
	})
	if err != nil {
		writeClientError(c, err)
		return
	}

	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_client_id", "El identificador del cliente no es válido.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), currentUserID(c), id); err != nil {
		writeClientError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// --------- Helpers ---------

func currentUserID(c *gin.Context) *uint {
	if v, ok := c.Get(middleware.ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return &id
		}
	}
	return nil
}

func writeClientError(c *gin.Context, err error) {
	var be httperr.BusinessError
	if !errors.As(err, &be) {
		httperr.Internal(c, "internal_error", "Ocurrió un error inesperado.")
		return
	}

	switch be.Code {
	case "first_name_required":
		httperr.BadRequest(c, be.Code, "El nombre del cliente es obligatorio.")
	case "invalid_phone":
		httperr.BadRequest(c, be.Code, "El teléfono debe tener exactamente 10 dígitos.")
	case "phone_already_exists":
		httperr.Conflict(c, be.Code, "Ya existe un cliente registrado con ese teléfono.")
	case "client_has_services":
		httperr.Conflict(c, be.Code, "No se puede eliminar: el cliente tiene servicios registrados.")
	case "client_not_found":
		httperr.NotFound(c, be.Code, "El cliente no existe.")
	default:
		httperr.BadRequest(c, be.Code, be.Code)
	}
}
