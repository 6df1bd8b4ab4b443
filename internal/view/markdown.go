package view

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Markdown renders comment bodies as plain text. The body is escaped before
// parsing and only paragraphs are recognised, so nothing the commenter wrote
// is dropped or restyled. Newlines become line breaks.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown builds the comment body renderer.
func NewMarkdown() *Markdown {
	p := parser.NewParser(
		parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 1000)),
	)
	return &Markdown{
		md: goldmark.New(
			goldmark.WithParser(p),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

// Render converts src to HTML safe for embedding in a page.
func (m *Markdown) Render(src string) template.HTML {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	escaped := strings.ReplaceAll(template.HTMLEscapeString(src), `\`, "&#92;")
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(escaped), &buf); err != nil {
		return plainText(src)
	}
	return template.HTML(buf.String())
}

func plainText(src string) template.HTML {
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		lines[i] = template.HTMLEscapeString(line)
	}
	return template.HTML(strings.Join(lines, "<br>"))
}
