package realtime

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ===============================
// Change Feed Events
// ===============================

type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

const (
	TableClients  = "clients"
	TableServices = "services"
)

// Event es un cambio de fila publicado en el feed.
// Record carries the full row after the change (or the
// deleted row's last state for DELETE).
type Event struct {
	ID     string          `json:"id"`
	Type   EventType       `json:"type"`
	Table  string          `json:"table"`
	Record json.RawMessage `json:"record"`
	At     time.Time       `json:"at"`
}

func NewEvent(typ EventType, table string, record any) (Event, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return Event{}, err
	}

	return Event{
		ID:     uuid.NewString(),
		Type:   typ,
		Table:  table,
		Record: raw,
		At:     time.Now().UTC(),
	}, nil
}

// Channel returns the redis pub/sub channel for a table.
func Channel(table string) string {
	return "crm:changes:" + table
}
