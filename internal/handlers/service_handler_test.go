package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BarberiaElCorte/barberia-crm/internal/models"
)

// ------------------------------
// fake repo
// ------------------------------

type fakeServiceRepo struct {
	services []models.Service
}

func (f *fakeServiceRepo) List(ctx context.Context) ([]models.Service, error) {
	return f.services, nil
}

func (f *fakeServiceRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Service, error) {
	out := make([]models.Service, 0, len(f.services))
	for _, s := range f.services {
		if s.ClientID == clientID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	for i := range f.services {
		if f.services[i].ID == id {
			return &f.services[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeServiceRepo) Create(ctx context.Context, svc *models.Service) error {
	f.services = append(f.services, *svc)
	return nil
}

func (f *fakeServiceRepo) Update(ctx context.Context, svc *models.Service) error {
	return nil
}

// ------------------------------
// helpers
// ------------------------------

type listServicesResponse struct {
	Data  []models.Service `json:"data"`
	Total int              `json:"total"`
}

func newServicesRouter(repo *fakeServiceRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewServiceHandler(repo, nil, nil, "UTC")

	r := gin.New()
	r.GET("/services", h.List)
	return r
}

func getServices(t *testing.T, r *gin.Engine, path string) (int, listServicesResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp listServicesResponse
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w.Code, resp
}

func serviceAt(clientID uuid.UUID, created time.Time) models.Service {
	return models.Service{
		ID:          uuid.New(),
		ClientID:    clientID,
		ServiceType: "Corte",
		Price:       150,
		CreatedAt:   created,
	}
}

// ------------------------------
// List
// ------------------------------

func TestListServices_Filters(t *testing.T) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	ana := uuid.New()
	beto := uuid.New()

	repo := &fakeServiceRepo{services: []models.Service{
		serviceAt(ana, today),                   // hoy
		serviceAt(beto, now.AddDate(0, 0, -3)),  // esta semana
		serviceAt(ana, now.AddDate(0, 0, -200)), // fuera de semana/día
		serviceAt(ana, time.Date(2023, 5, 10, 12, 0, 0, 0, time.UTC)),
	}}
	r := newServicesRouter(repo)

	t.Run("sin filtros", func(t *testing.T) {
		code, resp := getServices(t, r, "/services")
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, 4, resp.Total)
	})

	t.Run("ventana día", func(t *testing.T) {
		code, resp := getServices(t, r, "/services?window=day")
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, 1, resp.Total)
	})

	t.Run("ventana semana", func(t *testing.T) {
		code, resp := getServices(t, r, "/services?window=week")
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, 2, resp.Total)
	})

	t.Run("mes explícito", func(t *testing.T) {
		code, resp := getServices(t, r, "/services?year=2023&month=5")
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, 1, resp.Total)
		assert.Equal(t, 2023, resp.Data[0].CreatedAt.Year())
	})

	t.Run("por cliente y ventana combinados", func(t *testing.T) {
		code, resp := getServices(t, r, "/services?client_id="+ana.String()+"&window=week")
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, 1, resp.Total)
		assert.Equal(t, ana, resp.Data[0].ClientID)
	})

	t.Run("por cliente", func(t *testing.T) {
		code, resp := getServices(t, r, "/services?client_id="+beto.String())
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, 1, resp.Total)
	})
}

func TestListServices_BadParams(t *testing.T) {
	r := newServicesRouter(&fakeServiceRepo{})

	cases := []struct {
		name string
		path string
	}{
		{"client_id inválido", "/services?client_id=nope"},
		{"ventana desconocida", "/services?window=quincena"},
		{"mes fuera de rango", "/services?year=2024&month=13"},
		{"año no numérico", "/services?year=hoy"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := getServices(t, r, tc.path)
			assert.Equal(t, http.StatusBadRequest, code)
		})
	}
}
