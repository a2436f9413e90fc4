package middleware

import (
	"github.com/deppfellow/filesubmit/internal/server"
)

// Middlewares groups all middleware components used by the HTTP server so
// router setup receives one object.
type Middlewares struct {
	// Global holds CORS, request logging, recovery, secure headers, rate
	// limiting and the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer attaches a request-scoped logger.
	ContextEnhancer *ContextEnhancer

	// Tracing provides the New Relic middleware and custom attributes.
	Tracing *TracingMiddleware

	// RateLimit enforces server.rate_limit and records denials.
	RateLimit *RateLimitMiddleware
}

// NewMiddlewares constructs all middleware components.
//
// When New Relic is not configured the tracing middleware degrades into a
// pass-through.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
