package importer

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/h2non/filetype"

	"bookforge/archive"
	"bookforge/assets"
	"bookforge/common"
)

// Detect recognizes kind of import source by content, falling back to file
// name extension for textual formats which have no signature.
func Detect(name string, data []byte) (common.SourceKind, error) {
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		switch {
		case kind.Extension == "pdf":
			return common.SourceKindPdf, nil
		case kind.Extension == "docx" || kind.Extension == "zip" && isDocx(data):
			return common.SourceKindDocx, nil
		case filetype.IsImage(data):
			return common.SourceKindImage, nil
		default:
			return "", unsupported(name, kind.MIME.Value)
		}
	}

	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case ext == ".svg" || assets.IsSVG(data):
		return common.SourceKindSvg, nil
	case ext == ".docx":
		// some writers produce packages filetype does not recognize
		return common.SourceKindDocx, nil
	case ext == ".html" || ext == ".htm" || ext == ".xhtml" || looksLikeHTML(data):
		return common.SourceKindHtml, nil
	case ext == ".md" || ext == ".markdown":
		return common.SourceKindMarkdown, nil
	case isText(data):
		return common.SourceKindText, nil
	}
	return "", unsupported(name, "application/octet-stream")
}

// IsBundle reports whether data is zip archive which is not an office
// document, such archives are expanded into files.
func IsBundle(data []byte) bool {
	return filetype.Is(data, "zip") && !isDocx(data)
}

// isDocx looks for main document part, filetype only recognizes packages
// where it comes early.
func isDocx(data []byte) bool {
	if filetype.Is(data, "docx") {
		return true
	}
	_, err := archive.ReadEntry(data, docxMainPart)
	return err == nil
}

func looksLikeHTML(data []byte) bool {
	head := bytes.ToLower(bytes.TrimSpace(data[:min(len(data), 512)]))
	return bytes.HasPrefix(head, []byte("<!doctype html")) || bytes.HasPrefix(head, []byte("<html"))
}

// isText accepts valid UTF-8 and anything else without NUL bytes in its head,
// legacy single byte encodings are decoded later.
func isText(data []byte) bool {
	head := data[:min(len(data), 4096)]
	if bytes.IndexByte(head, 0) >= 0 {
		return false
	}
	return utf8.Valid(head) || !bytes.ContainsFunc(head, func(r rune) bool {
		return r < 0x20 && r != '\n' && r != '\r' && r != '\t' && r != '\f' && r != utf8.RuneError
	})
}
