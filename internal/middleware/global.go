package middleware

import (
	"net/http"
	"strings"

	"github.com/deppfellow/filesubmit/internal/errs"
	"github.com/deppfellow/filesubmit/internal/lib/page"
	"github.com/deppfellow/filesubmit/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups the global middleware and the global error
// handler. They read config and the logger from the server.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORSEnabled reports whether any origin is configured.
func (global *GlobalMiddlewares) CORSEnabled() bool {
	return len(global.server.Config.Server.CORSAllowedOrigins) > 0
}

// CORS returns Echo's CORS middleware for the configured origins.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger logs one "API" line per request, at a level chosen by the
// final status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// The error handler writes the response after this runs, so
			// v.Status is still 200 for failed requests. Take the status
			// from the error instead.
			// See https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			if v.Error != nil {
				statusCode = statusFromError(v.Error)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover turns panics into errors for GlobalErrorHandler.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

// Secure adds Echo's standard security headers.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler is the final error funnel for the HTTP server.
//
// Every error is reduced to an *errs.HTTPError, logged with the original
// error, and written as an HTML error page or, for clients that ask for
// application/json, as JSON.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	originalErr := err
	httpErr := toHTTPError(err)

	logger := GetLogger(c)

	var e *zerolog.Event
	if httpErr.Status >= 500 {
		e = logger.Error().Stack()
	} else {
		e = logger.Warn()
	}

	e.Err(originalErr).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Msg(httpErr.Message)

	if c.Response().Committed {
		return
	}

	if wantsJSON(c.Request()) {
		if err := c.JSON(httpErr.Status, httpErr); err != nil {
			logger.Error().Err(err).Msg("failed to write JSON error response")
		}
		return
	}

	data := page.ErrorData{
		Status:    httpErr.Status,
		Code:      httpErr.Code,
		Message:   httpErr.Message,
		RequestID: GetRequestID(c),
	}

	if err := c.Render(httpErr.Status, string(page.TemplateError), data); err != nil {
		logger.Error().Err(err).Msg("failed to render error page")

		if !c.Response().Committed {
			_ = c.String(httpErr.Status, httpErr.Message)
		}
	}
}

// toHTTPError maps any error onto the application error shape.
//
// Unknown errors become a generic 500 so internal detail never reaches
// the client.
func toHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		switch echoErr.Code {
		case http.StatusNotFound:
			return errs.NewNotFoundError("Route not found", false, nil)
		case http.StatusMethodNotAllowed:
			return errs.NewMethodNotAllowedError("Method not allowed")
		}

		httpErr := errs.New(echoErr.Code, http.StatusText(echoErr.Code), false)
		if message, ok := echoErr.Message.(string); ok {
			return httpErr.WithMessage(message)
		}

		return httpErr
	}

	return errs.NewInternalServerError()
}

func statusFromError(err error) int {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return echoErr.Code
	}

	return http.StatusInternalServerError
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
