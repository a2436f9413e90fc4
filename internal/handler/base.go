package handler

import (
	"time"

	"github.com/deppfellow/filesubmit/internal/lib/page"
	"github.com/deppfellow/filesubmit/internal/middleware"
	"github.com/deppfellow/filesubmit/internal/server"
	"github.com/deppfellow/filesubmit/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler is the base handler type that holds shared application
// dependencies. Concrete handlers embed it.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint function: it receives a bound and
// validated request and returns a result or an error.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// Payload constrains PT to be a pointer to T that can validate itself, so
// a fresh request value can be allocated per request with new(T).
type Payload[T any] interface {
	*T
	validation.Validatable
}

// ResponseHandler writes a successful result and describes it for logs
// and traces.
type ResponseHandler interface {
	// Handle writes the HTTP response for the given result.
	Handle(c echo.Context, result interface{}) error

	// GetOperation names the response kind in structured logs.
	GetOperation() string

	// AddAttributes attaches New Relic attributes for the result.
	AddAttributes(txn *newrelic.Transaction, result interface{})
}

// RenderResponseHandler renders a page template with the result as data.
type RenderResponseHandler struct {
	status   int
	template page.Template
}

func (h RenderResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.Render(h.status, string(h.template), result)
}

func (h RenderResponseHandler) GetOperation() string {
	return "handler_render"
}

func (h RenderResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	txn.AddAttribute("page.template", string(h.template))
}

// RedirectResponseHandler redirects to the location the handler returns.
type RedirectResponseHandler struct {
	status int
}

func (h RedirectResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.Redirect(h.status, result.(string))
}

func (h RedirectResponseHandler) GetOperation() string {
	return "handler_redirect"
}

func (h RedirectResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	if location, ok := result.(string); ok {
		txn.AddAttribute("redirect.location", location)
	}
}

// handleRequest is the shared execution pipeline for every endpoint:
// binding + validation, structured logging, New Relic attributes,
// timings and response writing.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	handler func(c echo.Context, req Req) (interface{}, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	validationStart := time.Now()
	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Error().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		return err
	}
	validationDuration := time.Since(validationStart)

	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(start)).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		}

		return err
	}

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Debug().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", time.Since(start)).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// Render wraps a handler whose result is the data for a page template.
//
//	router.GET("/submit/:file_name", handler.Render(h.Form.Submit, http.StatusOK, page.TemplateSubmit))
func Render[T any, PT Payload[T], Res any](
	handler HandlerFunc[PT, Res],
	status int,
	template page.Template,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, PT(new(T)), func(c echo.Context, req PT) (interface{}, error) {
			return handler(c, req)
		}, RenderResponseHandler{status: status, template: template})
	}
}

// Redirect wraps a handler whose result is the redirect location.
func Redirect[T any, PT Payload[T]](
	handler HandlerFunc[PT, string],
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, PT(new(T)), func(c echo.Context, req PT) (interface{}, error) {
			return handler(c, req)
		}, RedirectResponseHandler{status: status})
	}
}
