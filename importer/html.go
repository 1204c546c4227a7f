package importer

import (
	"bytes"
	"io"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/html"
	nethtml "golang.org/x/net/html"
	"go.uber.org/zap"
)

var (
	// elements which content never becomes text
	skipElements = map[string]bool{"script": true, "style": true, "head": true, "template": true, "noscript": true}
	// elements which start new paragraph
	blockElements = map[string]bool{
		"p": true, "div": true, "section": true, "article": true, "header": true, "footer": true,
		"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
		"li": true, "ul": true, "ol": true, "blockquote": true, "pre": true,
		"table": true, "figure": true, "figcaption": true, "hr": true, "body": true,
	}
)

// extractHTML turns HTML markup into plain text with paragraphs separated by
// blank lines. Images become "[image]" tokens and table cells are joined
// with "|" so page builder can place placeholders for them.
func extractHTML(data []byte, log *zap.Logger) string {
	var (
		out   strings.Builder
		skip  int
		cells int
		lexer = html.NewLexer(parse.NewInput(bytes.NewReader(data)))
	)
	paragraph := func() {
		out.WriteString("\n\n")
	}

	for {
		tt, raw := lexer.Next()
		switch tt {
		case html.ErrorToken:
			if err := lexer.Err(); err != nil && err != io.EOF {
				log.Debug("HTML lexer stopped early", zap.Error(err))
			}
			return out.String()

		case html.StartTagToken:
			name := strings.ToLower(string(lexer.Text()))
			switch {
			case skipElements[name]:
				skip++
			case skip > 0:
			case blockElements[name]:
				paragraph()
			case name == "tr":
				out.WriteByte('\n')
				cells = 0
			case name == "td" || name == "th":
				if cells > 0 {
					out.WriteString(" | ")
				}
				cells++
			case name == "br":
				out.WriteByte('\n')
			case name == "img":
				out.WriteString(" [image] ")
			}

		case html.EndTagToken:
			name := strings.ToLower(string(lexer.Text()))
			switch {
			case skipElements[name]:
				skip = max(skip-1, 0)
			case skip == 0 && blockElements[name]:
				paragraph()
			}

		case html.TextToken:
			if skip > 0 {
				continue
			}
			text := nethtml.UnescapeString(string(raw))
			out.WriteString(collapseSpaces(text))
		}
	}
}

// collapseSpaces replaces runs of whitespace, non breaking spaces included,
// with single space. Source formatting of HTML carries no meaning.
func collapseSpaces(s string) string {
	var (
		b     strings.Builder
		space bool
	)
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(r)
	}
	if space {
		b.WriteByte(' ')
	}
	return b.String()
}
