package router

import (
	"net/http"

	"github.com/deppfellow/filesubmit/internal/handler"
	"github.com/deppfellow/filesubmit/internal/lib/page"
	"github.com/labstack/echo/v4"
)

// registerFormRoutes registers the two pages.
//
// The pages answer HEAD as well as GET. A post without file_name
// redirects to /submit/, so the empty segment is routed explicitly to the
// same handler.
func registerFormRoutes(r *echo.Echo, h *handler.Handlers) {
	pageMethods := []string{http.MethodGet, http.MethodHead}
	submit := handler.Render(h.Form.Submit, http.StatusOK, page.TemplateSubmit)

	nameRoutes(r.Match(pageMethods, "/", handler.Render(h.Form.Index, http.StatusOK, page.TemplateIndex)), handler.RouteIndex)
	r.POST("/", handler.Redirect(h.Form.Post, http.StatusFound))
	nameRoutes(r.Match(pageMethods, "/submit/:"+handler.FieldFileName, submit), handler.RouteSubmit)
	r.Match(pageMethods, "/submit/", submit)
}

func nameRoutes(routes []*echo.Route, routeName string) {
	for _, route := range routes {
		route.Name = routeName
	}
}
