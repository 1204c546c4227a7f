package importer

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"bookforge/common"
)

const docxBody = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:pPr><w:pStyle w:val="Title"/></w:pPr><w:r><w:t>Hello</w:t></w:r><w:r><w:tab/><w:t>world</w:t></w:r></w:p>
<w:tbl><w:tr>
<w:tc><w:p><w:r><w:t>a</w:t></w:r></w:p></w:tc>
<w:tc><w:p><w:r><w:t>b</w:t></w:r></w:p></w:tc>
</w:tr></w:tbl>
<w:p><w:r><w:drawing/></w:r></w:p>
<w:sectPr/>
</w:body>
</w:document>`

func zipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	slices.Sort(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(files[name])); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: uint8(x), G: 120, B: uint8(y), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func newTestImporter(t *testing.T, opts Options) *Importer {
	t.Helper()
	return New(opts, zaptest.NewLogger(t))
}

func TestExtractHTML(t *testing.T) {
	src := `<!DOCTYPE html><html><head><title>T</title><style>p { color: red }</style></head>
<body><h1>Head</h1><p>One &amp;
   two</p><script>var x = "<p>no</p>";</script>
<table><tr><td>a</td><td>b</td></tr></table><img src="x.png"></body></html>`

	got := splitParagraphs(extractHTML([]byte(src), zaptest.NewLogger(t)))
	want := []string{"Head", "One & two", "a | b", "[image]"}
	if !slices.Equal(got, want) {
		t.Errorf("extractHTML() paragraphs = %q, want %q", got, want)
	}
}

func TestExtractDOCX(t *testing.T) {
	data := zipBytes(t, map[string]string{
		"[Content_Types].xml": `<Types/>`,
		"word/document.xml":   docxBody,
	})
	got, err := extractDOCX(data)
	if err != nil {
		t.Fatalf("extractDOCX() error: %v", err)
	}
	want := "Hello\tworld\n\na | b\n\n[image]"
	if got != want {
		t.Errorf("extractDOCX() = %q, want %q", got, want)
	}

	if _, err := extractDOCX(zipBytes(t, map[string]string{"a.txt": "x"})); err == nil {
		t.Error("expected error for package without main part")
	}
}

func TestDetect(t *testing.T) {
	docx := zipBytes(t, map[string]string{"word/document.xml": docxBody})
	tests := []struct {
		name string
		file string
		data []byte
		want common.SourceKind
	}{
		{"png", "scan", pngBytes(t, 4, 4), common.SourceKindImage},
		{"svg", "drawing.svg", []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="4" height="4"/>`), common.SourceKindSvg},
		{"pdf", "book.pdf", []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n"), common.SourceKindPdf},
		{"docx", "letter.docx", docx, common.SourceKindDocx},
		{"markdown", "notes.md", []byte("# Notes\n\ntext"), common.SourceKindMarkdown},
		{"html by extension", "page.htm", []byte("<p>x</p>"), common.SourceKindHtml},
		{"html by content", "page", []byte("  <!DOCTYPE html><html></html>"), common.SourceKindHtml},
		{"text", "plain.txt", []byte("hello"), common.SourceKindText},
		{"legacy text", "old.txt", []byte{'c', 'a', 'f', 0xE9}, common.SourceKindText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(tt.file, tt.data)
			if err != nil {
				t.Fatalf("Detect() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Detect() = %s, want %s", got, tt.want)
			}
		})
	}

	t.Run("binary", func(t *testing.T) {
		if _, err := Detect("data.bin", []byte{1, 0, 2, 0, 3}); !errors.Is(err, ErrUnsupported) {
			t.Errorf("Detect() error = %v, want ErrUnsupported", err)
		}
	})

	t.Run("bundle", func(t *testing.T) {
		if !IsBundle(zipBytes(t, map[string]string{"a.txt": "x"})) {
			t.Error("plain zip should be a bundle")
		}
		if IsBundle(docx) {
			t.Error("docx should not be a bundle")
		}
	})
}

func TestImportDataText(t *testing.T) {
	para := strings.TrimSpace(strings.Repeat("lorem ", 83)) // 497 runes
	text := strings.Join([]string{para, para, para, para, para}, "\n\n")

	t.Run("all pages", func(t *testing.T) {
		im := newTestImporter(t, Options{MaxCharsPerPage: 1000, StyleID: "p-body"})
		b, err := im.ImportData("chapter.txt", []byte(text))
		if err != nil {
			t.Fatalf("ImportData() error: %v", err)
		}
		if b.Kind != common.SourceKindText || b.Estimated != 3 || len(b.Pages) != 3 {
			t.Fatalf("batch kind=%s estimated=%d pages=%d", b.Kind, b.Estimated, len(b.Pages))
		}
		for i, p := range b.Pages {
			if p.PageNumber != i+1 || p.Mode != "structured" || p.Background != nil {
				t.Errorf("page %d = %+v", i, p)
			}
		}
		if b.Asset.Name != "chapter.txt" || b.Asset.Size != int64(len(text)) {
			t.Errorf("asset = %+v", b.Asset)
		}
	})

	t.Run("range", func(t *testing.T) {
		im := newTestImporter(t, Options{MaxCharsPerPage: 1000, Range: "2"})
		b, err := im.ImportData("chapter.txt", []byte(text))
		if err != nil {
			t.Fatalf("ImportData() error: %v", err)
		}
		if len(b.Pages) != 1 || b.Pages[0].PageNumber != 2 || b.Estimated != 3 {
			t.Errorf("range selection: estimated=%d pages=%+v", b.Estimated, b.Pages)
		}
	})

	t.Run("blank source", func(t *testing.T) {
		im := newTestImporter(t, Options{})
		b, err := im.ImportData("empty.md", []byte("\n\n  \n"))
		if err != nil {
			t.Fatalf("ImportData() error: %v", err)
		}
		if got := b.Pages[0].Frames[0].Content; got != "Content imported from empty.md." {
			t.Errorf("title = %q", got)
		}
	})

	t.Run("docx", func(t *testing.T) {
		im := newTestImporter(t, Options{})
		b, err := im.ImportData("letter.docx", zipBytes(t, map[string]string{"word/document.xml": docxBody}))
		if err != nil {
			t.Fatalf("ImportData() error: %v", err)
		}
		frames := b.Pages[0].Frames
		// title, body, table and one image placeholder
		if len(frames) != 4 || frames[0].Content != "Hello\tworld" || frames[0].ImportedFrom != "docx" {
			t.Errorf("docx frames = %+v", frames)
		}
	})
}

func TestImportDataImage(t *testing.T) {
	data := pngBytes(t, 200, 100)

	t.Run("frame", func(t *testing.T) {
		im := newTestImporter(t, Options{PageWidthMm: 210})
		b, err := im.ImportData("scan.png", data)
		if err != nil {
			t.Fatalf("ImportData() error: %v", err)
		}
		p := b.Pages[0]
		if b.Kind != common.SourceKindImage || p.Mode != "image" || len(p.Frames) != 1 {
			t.Fatalf("page = %+v", p)
		}
		f := p.Frames[0]
		if f.Type != common.FrameTypeImage || f.X != 4 || f.W != 92 || f.Layer != "imported-image" {
			t.Errorf("frame = %+v", f)
		}
		if !strings.HasPrefix(f.Src, "data:image/jpeg;base64,") {
			t.Errorf("frame src = %.40s", f.Src)
		}
		want := 200 / (210 * 0.92 / 25.4)
		if math.Abs(f.DPI-want) > 0.01 {
			t.Errorf("frame dpi = %v, want %v", f.DPI, want)
		}
		if b.Asset.Type != "image/png" {
			t.Errorf("asset type = %q", b.Asset.Type)
		}
	})

	t.Run("reference", func(t *testing.T) {
		im := newTestImporter(t, Options{PlaceAsReference: true, ReferenceOpacity: 0.5})
		b, err := im.ImportData("scan.png", data)
		if err != nil {
			t.Fatalf("ImportData() error: %v", err)
		}
		p := b.Pages[0]
		bg := p.Background
		if p.Mode != "reference" || bg == nil {
			t.Fatalf("page = %+v", p)
		}
		if !bg.Locked || !bg.NonPrintable || bg.Opacity != 0.5 || bg.SourceName != "scan.png" || bg.DataURL == "" {
			t.Errorf("background = %+v", bg)
		}
		if len(p.Frames) != 1 || p.Frames[0].Type != common.FrameTypeText {
			t.Errorf("reference page frames = %+v", p.Frames)
		}
	})

	t.Run("broken", func(t *testing.T) {
		im := newTestImporter(t, Options{})
		if _, err := im.ImportData("broken.png", data[:40]); err == nil {
			t.Error("expected error for truncated image")
		}
	})
}

func TestImportDataUnsupported(t *testing.T) {
	im := newTestImporter(t, Options{})
	if _, err := im.ImportData("book.pdf", []byte("%PDF-1.7\n")); !errors.Is(err, ErrUnsupported) {
		t.Errorf("pdf import error = %v, want ErrUnsupported", err)
	}
	if _, err := im.ImportData("empty.txt", nil); err == nil {
		t.Error("expected error for empty file")
	}
}

func TestImportFile(t *testing.T) {
	ctx := context.Background()

	t.Run("directory", func(t *testing.T) {
		dir := t.TempDir()
		write := func(name, content string) {
			path := filepath.Join(dir, name)
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatal(err)
			}
		}
		write("b10.txt", "ten")
		write("b2.txt", "two")
		write("sub/c.md", "# see")
		write("zz.bin", "\x00\x01\x00")

		im := newTestImporter(t, Options{})
		batches, err := im.ImportFile(ctx, dir)
		if err == nil || !errors.Is(err, ErrUnsupported) {
			t.Errorf("ImportFile() error = %v, want ErrUnsupported for binary file", err)
		}
		var names []string
		for _, b := range batches {
			names = append(names, b.FileName)
		}
		if !slices.Equal(names, []string{"b2.txt", "b10.txt", "c.md"}) {
			t.Errorf("imported files = %v", names)
		}
	})

	t.Run("bundle", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pages.zip")
		data := zipBytes(t, map[string]string{"p10.txt": "ten", "p2.txt": "two"})
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatal(err)
		}

		im := newTestImporter(t, Options{})
		batches, err := im.ImportFile(ctx, path)
		if err != nil {
			t.Fatalf("ImportFile() error: %v", err)
		}
		if len(batches) != 2 || batches[0].FileName != "p2.txt" || batches[1].FileName != "p10.txt" {
			t.Errorf("bundle batches = %+v", batches)
		}
	})

	t.Run("missing", func(t *testing.T) {
		im := newTestImporter(t, Options{})
		if _, err := im.ImportFile(ctx, filepath.Join(t.TempDir(), "nope.txt")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		im := newTestImporter(t, Options{})
		if _, err := im.ImportFile(cctx, t.TempDir()); !errors.Is(err, context.Canceled) {
			t.Errorf("ImportFile() error = %v, want context.Canceled", err)
		}
	})
}
