package views

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Templates parses the storefront templates: "index", "catalog", "cart" and
// "summary".
func Templates() (*template.Template, error) {
	return template.New("storefront").ParseFS(templateFS, "templates/*.tmpl")
}

// Page is the data for the "index" template.
type Page struct {
	Catalog  CatalogView
	Cart     CartViewModel
	CartHTML template.HTML
	Summary  SummaryViewModel
}
