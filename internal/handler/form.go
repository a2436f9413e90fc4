package handler

import (
	"net/url"

	"github.com/deppfellow/filesubmit/internal/lib/page"
	"github.com/deppfellow/filesubmit/internal/server"
	"github.com/labstack/echo/v4"
)

const (
	// RouteIndex names the GET / route for reverse routing.
	RouteIndex = "index"

	// RouteSubmit names the GET /submit/:file_name route for reverse routing.
	RouteSubmit = "submit"

	// FieldFileName is both the form field and the path parameter name.
	FieldFileName = "file_name"
)

// FormHandler serves the two pages: the form on / and the confirmation
// page on /submit/:file_name.
//
// The file name is opaque display text. It is neither validated nor
// checked against any real file.
type FormHandler struct {
	Handler
}

// NewFormHandler constructs a FormHandler.
func NewFormHandler(s *server.Server) *FormHandler {
	return &FormHandler{
		Handler: NewHandler(s),
	}
}

// IndexPageRequest carries nothing; GET / always renders the form.
type IndexPageRequest struct{}

func (r *IndexPageRequest) Validate() error { return nil }

// IndexFormRequest is the form post on /.
type IndexFormRequest struct {
	FileName string
}

// Bind reads file_name from the request body only. A missing field or a
// body that is not a form gives "" rather than an error.
func (r *IndexFormRequest) Bind(c echo.Context) error {
	r.FileName = c.Request().PostFormValue(FieldFileName)
	return nil
}

func (r *IndexFormRequest) Validate() error { return nil }

// SubmitPageRequest is the file name taken from the /submit path.
type SubmitPageRequest struct {
	FileName string
}

// Bind reads the file_name path segment. Echo routes on the raw path when
// the URL carries escapes the default encoding would not produce (an
// encoded "/" for example), so the segment is unescaped once in that case.
func (r *SubmitPageRequest) Bind(c echo.Context) error {
	name := c.Param(FieldFileName)

	if c.Request().URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}
	}

	r.FileName = name
	return nil
}

func (r *SubmitPageRequest) Validate() error { return nil }

// Index renders the form page.
func (h *FormHandler) Index(c echo.Context, req *IndexPageRequest) (page.IndexData, error) {
	return page.IndexData{Action: c.Echo().Reverse(RouteIndex)}, nil
}

// Post returns the confirmation page URL for the submitted file name,
// escaped into a single path segment.
func (h *FormHandler) Post(c echo.Context, req *IndexFormRequest) (string, error) {
	h.server.LoggerService.RecordCustomEvent("FileNameSubmitted", map[string]interface{}{
		"file_name_length": len(req.FileName),
	})

	return c.Echo().Reverse(RouteSubmit, url.PathEscape(req.FileName)), nil
}

// Submit renders the confirmation page showing the file name.
func (h *FormHandler) Submit(c echo.Context, req *SubmitPageRequest) (page.SubmitData, error) {
	return page.SubmitData{
		FileName: req.FileName,
		BackURL:  c.Echo().Reverse(RouteIndex),
	}, nil
}
