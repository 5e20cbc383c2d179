package client

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BarberiaElCorte/barberia-crm/internal/httperr"
	"github.com/BarberiaElCorte/barberia-crm/internal/models"
)

// ------------------------------
// fake repo
// ------------------------------

type fakeClientRepo struct {
	clients      map[uuid.UUID]models.Client
	serviceCount map[uuid.UUID]int64
	phones       map[string]bool
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{
		clients:      make(map[uuid.UUID]models.Client),
		serviceCount: make(map[uuid.UUID]int64),
		phones:       make(map[string]bool),
	}
}

func (f *fakeClientRepo) List(ctx context.Context) ([]models.Client, error) {
	out := make([]models.Client, 0, len(f.clients))
	for _, c := range f.clients {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeClientRepo) Search(ctx context.Context, query string) ([]models.Client, error) {
	return f.List(ctx)
}

func (f *fakeClientRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (f *fakeClientRepo) PhoneExists(ctx context.Context, phone string, excludeID uuid.UUID) (bool, error) {
	for _, c := range f.clients {
		if c.Phone == phone && c.ID != excludeID {
			return true, nil
		}
	}
	return f.phones[phone], nil
}

func (f *fakeClientRepo) CountServices(ctx context.Context, clientID uuid.UUID) (int64, error) {
	return f.serviceCount[clientID], nil
}

func seed(repo *fakeClientRepo, phone string, services int64) models.Client {
	c := models.Client{ID: uuid.New(), FirstName: "Ana", Phone: phone}
	repo.clients[c.ID] = c
	repo.serviceCount[c.ID] = services
	return c
}

// ------------------------------
// DeleteClient
// ------------------------------

func TestDeleteClient_BlockedWhenClientHasServices(t *testing.T) {
	repo := newFakeClientRepo()
	ana := seed(repo, "5511111111", 3)

	// cache/feed/audit nunca se tocan en la ruta bloqueada
	uc := NewDeleteClient(nil, repo, nil, nil, nil)

	err := uc.Execute(context.Background(), nil, ana.ID)

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "client_has_services"))
	assert.Contains(t, repo.clients, ana.ID, "el cliente sigue existiendo")
}

func TestDeleteClient_NotFound(t *testing.T) {
	repo := newFakeClientRepo()
	uc := NewDeleteClient(nil, repo, nil, nil, nil)

	err := uc.Execute(context.Background(), nil, uuid.New())

	assert.True(t, httperr.IsBusiness(err, "client_not_found"))
}

// ------------------------------
// CreateClient (validación)
// ------------------------------

func TestCreateClient_RejectsInvalidPhone(t *testing.T) {
	repo := newFakeClientRepo()
	uc := NewCreateClient(nil, repo, nil, nil)

	_, err := uc.Execute(context.Background(), CreateClientInput{
		FirstName: "Carla",
		Phone:     "12345", // menos de 10 dígitos
	})

	assert.True(t, httperr.IsBusiness(err, "invalid_phone"))
}

func TestCreateClient_RejectsMissingFirstName(t *testing.T) {
	repo := newFakeClientRepo()
	uc := NewCreateClient(nil, repo, nil, nil)

	_, err := uc.Execute(context.Background(), CreateClientInput{
		Phone: "5511111111",
	})

	assert.True(t, httperr.IsBusiness(err, "first_name_required"))
}

func TestCreateClient_RejectsDuplicatePhone(t *testing.T) {
	repo := newFakeClientRepo()
	seed(repo, "5511111111", 0)
	uc := NewCreateClient(nil, repo, nil, nil)

	_, err := uc.Execute(context.Background(), CreateClientInput{
		FirstName: "Carla",
		Phone:     "(551) 111-1111", // normaliza al mismo número
	})

	assert.True(t, httperr.IsBusiness(err, "phone_already_exists"))
}
