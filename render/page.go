package render

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// PageData feeds the search page shell.
type PageData struct {
	Title           string
	TranscriptCount int
}

// Page writes the search page shell to w.
func Page(w io.Writer, data PageData) error {
	if data.Title == "" {
		data.Title = "Call Transcript Search"
	}
	return pageTemplate.Execute(w, data)
}
