package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"trimplan/internal/domain/models"
)

var (
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	subtitleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	headingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true).MarginTop(1)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Italic(true)
	cardStyle        = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#4A5568")).
				Padding(0, 1)
	cardHeadingStyle = lipgloss.NewStyle().Bold(true)
)

// Terminal renders the document for a terminal using ANSI styling.
// Cards are wrapped to width columns; a width of 0 leaves them unwrapped.
func Terminal(doc *models.Document, width int) string {
	page := buildPage(doc)

	blocks := []string{
		titleStyle.Render(page.Title),
		subtitleStyle.Render(page.Subtitle),
	}
	for _, section := range page.Sections {
		blocks = append(blocks, headingStyle.Render(section.Heading))
		if section.Intro != "" {
			blocks = append(blocks, subtitleStyle.Render(section.Intro))
		}
		for _, f := range section.Fields {
			blocks = append(blocks, terminalField(f))
		}
		for _, card := range section.Cards {
			blocks = append(blocks, terminalCard(card, width))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...) + "\n"
}

func terminalCard(card Card, width int) string {
	lines := []string{cardHeadingStyle.Render(card.Heading)}
	for _, f := range card.Fields {
		lines = append(lines, terminalField(f))
	}

	style := cardStyle
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func terminalField(f Field) string {
	label := labelStyle.Render(f.Label + ":")
	if !f.List {
		return label + " " + styledValue(f.Text)
	}
	if len(f.Lines) == 0 {
		return label + " " + placeholderStyle.Render(Placeholder)
	}

	var b strings.Builder
	b.WriteString(label)
	for _, line := range f.Lines {
		b.WriteString("\n  • ")
		b.WriteString(valueStyle.Render(line))
	}
	return b.String()
}

func styledValue(s string) string {
	if s == Placeholder {
		return placeholderStyle.Render(s)
	}
	return valueStyle.Render(s)
}
