// Package page renders the HTML pages served by the application.
//
// Templates are embedded in the binary. Each page is parsed together with
// the shared layout and executed through the "layout" entry point.
package page

// Template names a page template under templates/.
type Template string

const (
	// TemplateIndex is the form page (templates/index.html).
	TemplateIndex Template = "index"

	// TemplateSubmit is the confirmation page (templates/submit.html).
	TemplateSubmit Template = "submit"

	// TemplateError is the error page (templates/error.html).
	TemplateError Template = "error"
)

// Templates lists every page template parsed at start-up.
var Templates = []Template{TemplateIndex, TemplateSubmit, TemplateError}

// IndexData is the view model for TemplateIndex.
type IndexData struct {
	// Action is the URL the form posts to.
	Action string
}

// SubmitData is the view model for TemplateSubmit.
type SubmitData struct {
	FileName string
	BackURL  string
}

// ErrorData is the view model for TemplateError.
type ErrorData struct {
	Status    int
	Code      string
	Message   string
	RequestID string
}
