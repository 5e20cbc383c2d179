package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/BarberiaElCorte/barberia-crm/internal/models"
)

// ======================================================
// CHAT ASSISTANT (Gemini)
// ======================================================
//
// Petición/respuesta sin estado: la lista completa de servicios
// viaja como contexto JSON junto con la pregunta. Sin reintentos
// ni rate limiting.

type Assistant struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func New(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Assistant, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("assistant: GEMINI_API_KEY is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("assistant: failed to create genai client: %w", err)
	}

	return &Assistant{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// contexto por servicio: lo justo para que el modelo razone
// sobre el negocio sin exponer datos que no necesita
type serviceContext struct {
	ClientName  string  `json:"client_name"`
	ServiceType string  `json:"service_type"`
	Price       float64 `json:"price"`
	Date        string  `json:"date"`
}

func buildContext(services []models.Service) ([]byte, error) {
	ctx := make([]serviceContext, 0, len(services))
	for _, s := range services {
		ctx = append(ctx, serviceContext{
			ClientName:  s.Client.FullName(),
			ServiceType: s.ServiceType,
			Price:       s.Price,
			Date:        s.CreatedAt.Format(time.RFC3339),
		})
	}
	return json.Marshal(ctx)
}

// Ask envía la pregunta con el historial de servicios como
// contexto y devuelve el texto de la respuesta.
func (a *Assistant) Ask(ctx context.Context, question string, services []models.Service) (string, error) {
	history, err := buildContext(services)
	if err != nil {
		return "", fmt.Errorf("assistant: failed to encode context: %w", err)
	}

	prompt := fmt.Sprintf(
		"Eres el asistente de una barbería. Responde en español, de forma breve y práctica, "+
			"usando únicamente los datos del negocio.\n\n"+
			"Servicios registrados (JSON):\n%s\n\nPregunta: %s",
		history, question,
	)

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model, contents, nil)
	if err != nil {
		a.logger.Warn("assistant: generate failed", zap.Error(err))
		return "", fmt.Errorf("assistant: generate failed: %w", err)
	}

	answer := result.Text()
	if answer == "" {
		return "", fmt.Errorf("assistant: empty answer")
	}
	return answer, nil
}
