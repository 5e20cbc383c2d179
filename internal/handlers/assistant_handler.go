package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BarberiaElCorte/barberia-crm/internal/assistant"
	serviceDomain "github.com/BarberiaElCorte/barberia-crm/internal/domain/service"
	"github.com/BarberiaElCorte/barberia-crm/internal/httperr"
)

type AssistantHandler struct {
	assistant *assistant.Assistant
	services  serviceDomain.Repository
}

func NewAssistantHandler(
	a *assistant.Assistant,
	services serviceDomain.Repository,
) *AssistantHandler {
	return &AssistantHandler{
		assistant: a,
		services:  services,
	}
}

// --------- Requests ---------

type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

// --------- Handlers ---------

func (h *AssistantHandler) Ask(c *gin.Context) {
	if h.assistant == nil {
		httperr.Write(c, http.StatusServiceUnavailable,
			"assistant_disabled", "El asistente no está configurado.")
		return
	}

	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		httperr.BadRequest(c, "question_required", "Escribe una pregunta.")
		return
	}

	ctx := c.Request.Context()

	services, err := h.services.List(ctx)
	if err != nil {
		httperr.Internal(c, "failed_to_load_context", "No se pudo preparar el contexto del asistente.")
		return
	}

	answer, err := h.assistant.Ask(ctx, question, services)
	if err != nil {
		httperr.Write(c, http.StatusBadGateway,
			"assistant_unavailable", "El asistente no pudo responder, intenta de nuevo.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}
