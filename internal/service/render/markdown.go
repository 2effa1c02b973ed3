package render

import (
	"bytes"
	"fmt"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"

	"trimplan/internal/domain/models"
)

// frontMatter is the YAML header of a Markdown export
type frontMatter struct {
	Title     string `yaml:"title"`
	Customer  string `yaml:"customer"`
	Project   string `yaml:"project"`
	Deadline  string `yaml:"deadline"`
	CreatedAt string `yaml:"created_at"`
	UpdatedAt string `yaml:"updated_at"`
	Videos    int    `yaml:"videos"`
	Graphics  int    `yaml:"graphics"`
	Weeks     int    `yaml:"weeks"`
}

// MarkdownRenderer converts the print page to Markdown.
// The page body is sanitized before conversion since every value in it is
// user-entered text.
//
// Safe for concurrent use.
type MarkdownRenderer struct {
	policy    *bluemonday.Policy
	converter *md.Converter
}

// NewMarkdownRenderer creates a renderer with a UGC sanitizing policy
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		policy:    bluemonday.UGCPolicy(),
		converter: md.NewConverter("", true, nil),
	}
}

// Render returns the document as Markdown with YAML front matter
func (r *MarkdownRenderer) Render(doc *models.Document) ([]byte, error) {
	body, err := htmlBody(doc)
	if err != nil {
		return nil, err
	}

	markdown, err := r.converter.ConvertString(r.policy.Sanitize(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}

	header, err := yaml.Marshal(frontMatter{
		Title:     doc.Meta.Title,
		Customer:  doc.Customer.Name,
		Project:   doc.Customer.ProjectName,
		Deadline:  doc.Customer.Deadline,
		CreatedAt: doc.Meta.CreatedAt,
		UpdatedAt: doc.Meta.UpdatedAt,
		Videos:    len(doc.Productions.Videos),
		Graphics:  len(doc.Productions.Graphics),
		Weeks:     len(doc.Weeks),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(header)
	buf.WriteString("---\n\n")
	buf.WriteString(markdown)
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

var defaultMarkdownRenderer = NewMarkdownRenderer()

// Markdown renders doc with the shared renderer
func Markdown(doc *models.Document) ([]byte, error) {
	return defaultMarkdownRenderer.Render(doc)
}
