package render

import (
	"bytes"
	"fmt"
	"html/template"

	"trimplan/internal/domain/models"
)

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"placeholder": func() string { return Placeholder },
}).Parse(`<!DOCTYPE html>
<html lang="nb">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; font-size: 10pt; color: #111827; margin: 28px; }
h1 { font-size: 18pt; margin-bottom: 6px; }
h2 { font-size: 12pt; margin-top: 14px; margin-bottom: 6px; }
h3 { font-size: 11pt; margin: 0 0 6px; }
.small { font-size: 9pt; color: #374151; }
.box, .card { border: 1px solid #E5E7EB; border-radius: 8px; padding: 10px; margin-top: 8px; break-inside: avoid; }
.label { font-size: 9pt; color: #6B7280; margin: 8px 0 2px; }
ul { margin: 0; padding-left: 16px; }
p { margin: 0; }
@media print { .card { page-break-inside: avoid; } }
</style>
</head>
<body>
{{template "body" .}}
</body>
</html>
{{define "body"}}<h1>{{.Title}}</h1>
<p class="small">{{.Subtitle}}</p>
{{range .Sections}}<h2>{{.Heading}}</h2>
{{if .Intro}}<p class="small">{{.Intro}}</p>
{{end}}{{if .Fields}}<div class="box">
{{range .Fields}}{{template "field" .}}{{end}}</div>
{{end}}{{range .Cards}}<div class="card">
<h3>{{.Heading}}</h3>
{{range .Fields}}{{template "field" .}}{{end}}</div>
{{end}}{{end}}{{end}}
{{define "field"}}<div class="label">{{.Label}}</div>
{{if .List}}{{if .Lines}}<ul>
{{range .Lines}}<li>{{.}}</li>
{{end}}</ul>
{{else}}<p>{{placeholder}}</p>
{{end}}{{else}}<p>{{.Text}}</p>
{{end}}{{end}}`))

// HTML renders the full print page
func HTML(doc *models.Document) ([]byte, error) {
	return execute("page", doc)
}

// htmlBody renders only the page body, without head and styles
func htmlBody(doc *models.Document) ([]byte, error) {
	return execute("body", doc)
}

func execute(name string, doc *models.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, name, buildPage(doc)); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
