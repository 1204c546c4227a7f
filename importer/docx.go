package importer

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"bookforge/archive"
)

const docxMainPart = "word/document.xml"

// extractDOCX reads main document part of WordprocessingML package and
// returns its text, one paragraph per w:p. Table rows become lines with
// cells separated by "|", drawings become "[image]" tokens.
func extractDOCX(data []byte) (string, error) {
	part, err := archive.ReadEntry(data, docxMainPart)
	if err != nil {
		return "", fmt.Errorf("unable to read docx package: %w", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(part); err != nil {
		return "", fmt.Errorf("unable to parse %s: %w", docxMainPart, err)
	}
	body := doc.FindElement("//body")
	if body == nil {
		return "", fmt.Errorf("%s has no body", docxMainPart)
	}

	var paragraphs []string
	for _, el := range body.ChildElements() {
		switch el.Tag {
		case "p":
			paragraphs = append(paragraphs, runText(el))
		case "tbl":
			var rows []string
			for _, tr := range el.SelectElements("tr") {
				var cells []string
				for _, tc := range tr.SelectElements("tc") {
					var parts []string
					for _, p := range tc.SelectElements("p") {
						if t := strings.TrimSpace(runText(p)); t != "" {
							parts = append(parts, t)
						}
					}
					cells = append(cells, strings.Join(parts, " "))
				}
				rows = append(rows, strings.Join(cells, " | "))
			}
			paragraphs = append(paragraphs, strings.Join(rows, "\n"))
		}
	}
	return strings.Join(paragraphs, "\n\n"), nil
}

// runText collects text of a paragraph in document order.
func runText(p *etree.Element) string {
	var b strings.Builder
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		for _, child := range el.ChildElements() {
			switch child.Tag {
			case "t":
				b.WriteString(child.Text())
			case "tab":
				b.WriteByte('\t')
			case "br", "cr":
				b.WriteByte('\n')
			case "drawing", "pict":
				b.WriteString("[image]")
			case "pPr", "rPr", "instrText", "delText":
				// formatting and field codes
			default:
				walk(child)
			}
		}
	}
	walk(p)
	return b.String()
}
