package realtime

// Status refleja el estado de la suscripción al feed.
type Status struct {
	IsConnected        bool   `json:"is_connected"`
	IsReconnecting     bool   `json:"is_reconnecting"`
	ConnectionAttempts int    `json:"connection_attempts"`
	LastError          string `json:"last_error,omitempty"`
}
