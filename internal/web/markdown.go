package web

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/nextgen-ti/kbportal/internal/catalog"
)

// newMarkdown configures goldmark for article bodies. Raw HTML in the source
// is escaped.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)
}

func renderArticle(md goldmark.Markdown, a catalog.Article) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(a.Markdown()), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
