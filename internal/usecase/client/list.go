package client

import (
	"context"
	"strings"

	"github.com/BarberiaElCorte/barberia-crm/internal/clientcache"
	domain "github.com/BarberiaElCorte/barberia-crm/internal/domain/client"
	"github.com/BarberiaElCorte/barberia-crm/internal/dto"
	"github.com/BarberiaElCorte/barberia-crm/internal/models"
)

type ListClients struct {
	cache *clientcache.Cache
	repo  domain.Repository
}

func NewListClients(
	cache *clientcache.Cache,
	repo domain.Repository,
) *ListClients {
	return &ListClients{
		cache: cache,
		repo:  repo,
	}
}

// Execute sirve desde la caché mientras el feed esté vivo;
// si no, cae al repositorio.
func (uc *ListClients) Execute(
	ctx context.Context,
	query string,
) ([]dto.ClientListDTO, error) {

	query = strings.ToLower(strings.TrimSpace(query))

	var clients []models.Client

	if uc.cache.Warm() {
		clients = filter(uc.cache.Snapshot().Clients, query)
	} else {
		var err error
		clients, err = uc.repo.Search(ctx, query)
		if err != nil {
			return nil, err
		}
	}

	out := make([]dto.ClientListDTO, 0, len(clients))
	for _, c := range clients {
		out = append(out, dto.ToClientListDTO(c))
	}
	return out, nil
}

// búsqueda en memoria, mismo criterio que el repositorio
func filter(clients []models.Client, query string) []models.Client {
	if query == "" {
		return clients
	}

	out := make([]models.Client, 0, len(clients))
	for _, c := range clients {
		if strings.Contains(strings.ToLower(c.FirstName), query) ||
			strings.Contains(strings.ToLower(c.LastName), query) ||
			strings.Contains(c.Phone, query) {
			out = append(out, c)
		}
	}
	return out
}
