package report

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

var markdownEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
		htmlrenderer.WithXHTML(),
	),
)

// RenderReportHTML converts a markdown report body into a standalone HTML
// document.
func RenderReportHTML(title, markdownText string) string {
	var body bytes.Buffer
	if err := markdownEngine.Convert([]byte(markdownText), &body); err != nil {
		body.Reset()
		body.WriteString("<pre>" + template.HTMLEscapeString(markdownText) + "</pre>")
	}

	var b strings.Builder
	b.Grow(body.Len() + 512)
	b.WriteString("<!DOCTYPE html>\n<html lang=\"zh-cn\">\n")
	b.WriteString("  <head>\n")
	b.WriteString("    <meta charset=\"UTF-8\" />\n")
	b.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\" />\n")
	b.WriteString("    <title>")
	b.WriteString(template.HTMLEscapeString(title))
	b.WriteString("</title>\n")
	b.WriteString("    <style>\n")
	b.WriteString("      body { max-width: 48em; margin: 2em auto; padding: 0 1em; font-family: sans-serif; line-height: 1.6; }\n")
	b.WriteString("      h1, h2, h3 { line-height: 1.3; }\n")
	b.WriteString("    </style>\n")
	b.WriteString("  </head>\n")
	b.WriteString("  <body>\n")
	b.WriteString(body.String())
	b.WriteString("\n  </body>\n</html>")
	return b.String()
}
