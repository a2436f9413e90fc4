package handler

import (
	"github.com/deppfellow/filesubmit/internal/server"
)

// Handlers groups all HTTP handlers so router setup receives one object.
type Handlers struct {
	Health *HealthHandler // Health serves the /status endpoint.
	Form   *FormHandler   // Form serves the form and confirmation pages.
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(s),
		Form:   NewFormHandler(s),
	}
}
