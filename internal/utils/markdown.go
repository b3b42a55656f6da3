package utils

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	articleParser = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	articlePolicy = bluemonday.UGCPolicy()
)

func init() {
	articlePolicy.AllowImages()
	articlePolicy.AddTargetBlankToFullyQualifiedLinks(true)
	articlePolicy.RequireNoReferrerOnLinks(true)
}

// RenderArticle converts an article body from markdown to sanitized HTML and
// hardens embedded images.
func RenderArticle(source string) template.HTML {
	var buf bytes.Buffer
	if err := articleParser.Convert([]byte(source), &buf); err != nil {
		return template.HTML(source) // Fallback
	}

	sanitized := articlePolicy.SanitizeBytes(buf.Bytes())

	return EnhanceArticleHTML(string(sanitized))
}
