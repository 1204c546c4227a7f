package importer

import (
	"bytes"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/unicode/norm"

	"bookforge/common"
	"bookforge/document"
)

const (
	DefaultMaxCharsPerPage = 1800

	emptyPageText = "Empty imported page."
)

var (
	reBlankLines  = regexp.MustCompile(`\n[ \t\f\v]*\n\s*`)
	reImageTokens = regexp.MustCompile(`(?i)!\[[^\]]*\]\([^)]*\)|\[image\]`)
	reHeading     = regexp.MustCompile(`^#{1,6}\s+`)
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// decodeText converts raw text to NFC normalized UTF-8. Valid UTF-8 is taken
// as is, anything else is decoded with forced code page when one is given or
// with sniffed one.
func decodeText(data []byte, cp encoding.Encoding) (string, error) {
	data = bytes.TrimPrefix(data, bom)
	if !utf8.Valid(data) {
		if cp == nil {
			cp, _, _ = charset.DetermineEncoding(data, "text/plain")
		}
		decoded, err := cp.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("unable to decode text: %w", err)
		}
		data = decoded
	}
	return norm.NFC.String(string(data)), nil
}

// splitParagraphs breaks text at blank lines.
func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var out []string
	for _, p := range reBlankLines.Split(text, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// chunkParagraphs groups paragraphs into pages of at most maxChars runes.
// Paragraph which alone exceeds the limit is split at sentence boundaries
// first. Result always has at least one page.
func chunkParagraphs(paragraphs []string, maxChars int, split *Splitter) [][]string {
	if maxChars <= 0 {
		maxChars = DefaultMaxCharsPerPage
	}

	var (
		pages   [][]string
		current []string
		count   int
	)
	for _, paragraph := range paragraphs {
		for _, piece := range split.Pack(paragraph, maxChars) {
			n := runeLen(piece)
			if count+n > maxChars && len(current) > 0 {
				pages = append(pages, current)
				current, count = nil, 0
			}
			current = append(current, piece)
			count += n
		}
	}
	if len(current) > 0 {
		pages = append(pages, current)
	}
	if len(pages) == 0 {
		pages = append(pages, []string{emptyPageText})
	}
	return pages
}

// buildTextFrames lays out one page worth of paragraphs: title, body, table
// placeholder when text looks tabular and up to two image placeholders.
// Body frame is chained to the first placeholder.
func buildTextFrames(paragraphs []string, kind common.SourceKind, styleID string, pageNumber int) []document.Frame {
	joined := strings.Join(paragraphs, "\n\n")

	title := fmt.Sprintf("Import page %d", pageNumber)
	if len(paragraphs) > 0 && paragraphs[0] != "" {
		title = paragraphs[0]
		if kind == common.SourceKindMarkdown {
			title = reHeading.ReplaceAllString(title, "")
		}
	}

	frame := func(typ common.FrameType, x, y, w, h float64, layer, content string) document.Frame {
		f := document.NewFrame(typ)
		f.X, f.Y, f.W, f.H = x, y, w, h
		f.Layer = layer
		f.Content = content
		f.Imported = true
		f.ImportedFrom = string(kind)
		if typ == common.FrameTypeText {
			f.StyleID = styleID
		}
		return f
	}

	blocks := []document.Frame{
		frame(common.FrameTypeText, 8, 8, 84, 12, "text", title),
		frame(common.FrameTypeText, 8, 22, 84, 66, "text", joined),
	}
	if strings.Contains(joined, "|") {
		blocks = append(blocks, frame(common.FrameTypeTable, 8, 76, 84, 16, "tables", "Table detected"))
	}
	tokens := reImageTokens.FindAllString(joined, 2)
	for i := range tokens {
		blocks = append(blocks, frame(common.FrameTypeImage, 58+float64(i)*18, 24, 16, 18, "images", fmt.Sprintf("Image %d", i+1)))
	}
	if len(blocks) > 2 {
		blocks[1].NextFrameID = blocks[2].ID
	}
	return blocks
}

// ParseRange parses page selection like "1-3,6" against total available
// pages. Values are clamped to [1,total], duplicates removed and result sorted.
// Empty input or selection which yields nothing means all pages.
func ParseRange(input string, total int) []int {
	all := func() []int {
		out := make([]int, total)
		for i := range out {
			out[i] = i + 1
		}
		return out
	}
	if total <= 0 {
		return nil
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return all()
	}

	seen := make(map[int]struct{})
	for token := range strings.SplitSeq(input, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if lo, hi, ok := strings.Cut(token, "-"); ok {
			start, err1 := strconv.Atoi(strings.TrimSpace(lo))
			end, err2 := strconv.Atoi(strings.TrimSpace(hi))
			if err1 != nil || err2 != nil {
				continue
			}
			for i := clampPage(start, total); i <= min(end, total); i++ {
				seen[i] = struct{}{}
			}
			continue
		}
		n, err := strconv.Atoi(token)
		if err != nil {
			continue
		}
		seen[clampPage(n, total)] = struct{}{}
	}
	if len(seen) == 0 {
		return all()
	}

	out := make([]int, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

func clampPage(n, total int) int {
	return min(max(n, 1), total)
}
