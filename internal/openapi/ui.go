package openapi

import (
	_ "embed"
	"html/template"
	"io"
)

//go:embed assets/swagger.html
var swaggerHTML []byte

var uiTemplate = template.Must(template.New("swagger-ui").Parse(string(swaggerHTML)))

// UIData is passed to the Swagger UI template.
type UIData struct {
	// Title is the page title.
	Title string
	// SpecURL is where the page fetches the document from.
	SpecURL string
	// SpecLabel names the document in the UI's definition selector.
	SpecLabel string
}

// RenderUI writes the Swagger UI page for data to w.
func RenderUI(w io.Writer, data UIData) error {
	return uiTemplate.Execute(w, data)
}
