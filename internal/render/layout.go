package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

// Layout selects the page template wrapped around an HTML fragment.
type Layout string

const (
	LayoutCV     Layout = "cv"
	LayoutLetter Layout = "letter"
)

//go:embed templates/*.html templates/style.css
var templateFS embed.FS

var (
	pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))
	stylesheet    = mustRead("templates/style.css")
)

func mustRead(name string) string {
	b, err := templateFS.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return string(b)
}

// Page describes the document a fragment is wrapped into.
type Page struct {
	Layout Layout
	Title  string
	Lang   string
}

type pageData struct {
	Title   string
	Lang    string
	Style   template.CSS
	Content template.HTML
}

// Document wraps fragment in the page's layout with the embedded stylesheet
// inlined.
func Document(fragment string, page Page) (string, error) {
	name := string(page.Layout) + ".html"
	if pageTemplates.Lookup(name) == nil {
		return "", fmt.Errorf("unknown layout %q", page.Layout)
	}
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}
	var buf bytes.Buffer
	err := pageTemplates.ExecuteTemplate(&buf, name, pageData{
		Title:   page.Title,
		Lang:    lang,
		Style:   template.CSS(stylesheet),
		Content: template.HTML(fragment),
	})
	if err != nil {
		return "", fmt.Errorf("execute %s layout: %w", page.Layout, err)
	}
	return buf.String(), nil
}
