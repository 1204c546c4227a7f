package export

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"go.uber.org/zap/zaptest"

	"bookforge/common"
	"bookforge/document"
	"bookforge/layout"
)

func TestEffectiveOptions(t *testing.T) {
	o := DefaultOptions()
	o.Profile = common.ExportProfileDigital
	e := o.Effective()
	if e.Bleed || e.CropMarks || e.ColorMode != common.ColorModeRGB {
		t.Errorf("digital profile = %+v", e)
	}

	e = Options{}.Effective()
	if e.Profile != common.ExportProfilePrint || e.Compression != common.CompressionHigh || e.MinImageDPI != DefaultMinImageDPI {
		t.Errorf("zero options = %+v", e)
	}
}

func countSlots(out *etree.Document, class string) int {
	return len(out.FindElements("//section[@class='" + class + "']"))
}

func TestBuildHTMLSpreads(t *testing.T) {
	doc := document.NewDefault()
	doc.Title = "Sample <Book>"
	doc.Settings.StartOnRight = true

	out := BuildHTML(doc, DefaultOptions())
	sheets := out.FindElements("//article[@class='sheet spread']")
	if len(sheets) != 3 {
		t.Fatalf("sheets = %d, want 3", len(sheets))
	}
	if n := countSlots(out, "slot empty"); n != 1 {
		t.Errorf("empty slots = %d, want 1", n)
	}
	first := sheets[0].SelectElements("section")
	if len(first) != 2 || first[0].FindElement("div[@class='blank-note']") == nil {
		t.Error("first sheet must start with virtual blank")
	}
	if head := first[1].FindElement("div[@class='head']"); head == nil || head.Text() != "1 (right)" {
		t.Errorf("first page label = %v", head)
	}
	if title := out.FindElement("//title"); title.Text() != "Sample <Book>" {
		t.Errorf("title = %q", title.Text())
	}

	data, err := RenderHTML(doc, DefaultOptions())
	if err != nil {
		t.Fatalf("RenderHTML() error: %v", err)
	}
	s := string(data)
	if !strings.HasPrefix(s, "<!DOCTYPE html>") {
		t.Errorf("missing doctype: %.40q", s)
	}
	if !strings.Contains(s, "Sample &lt;Book&gt;") {
		t.Error("title must be escaped")
	}
	if !strings.Contains(s, "@page { size: 210mm 297mm; margin: 0; }") {
		t.Error("page size rule not found")
	}
}

func TestBuildHTMLSingle(t *testing.T) {
	doc := document.NewDefault()
	doc.Settings.StartOnRight = true
	opts := DefaultOptions()
	opts.Spreads = false
	opts.Bleed = false

	out := BuildHTML(doc, opts)
	if n := len(out.FindElements("//article[@class='sheet single']")); n != 5 {
		t.Errorf("single sheets = %d, want 5 (blank included)", n)
	}
	if n := countSlots(out, "slot empty"); n != 0 {
		t.Errorf("empty slots = %d", n)
	}
}

func TestBuildHTMLFrames(t *testing.T) {
	doc := document.NewDefault()
	text := document.NewFrame(common.FrameTypeText)
	text.Content = "Hello"
	text.Rotation = 90
	hidden := document.NewFrame(common.FrameTypeText)
	hidden.Hidden = true
	img := document.NewFrame(common.FrameTypeImage)
	img.Missing = true
	doc.Pages[0].Frames = []document.Frame{text, hidden, img}

	opts := DefaultOptions()
	opts.Guides = true
	opts.MissingImage = []byte("<svg/>")
	out := BuildHTML(doc, opts)

	frames := out.FindElements("//div[@class='f f-text']")
	if len(frames) != 1 || frames[0].Text() != "Hello" {
		t.Fatalf("text frames = %d", len(frames))
	}
	style := frames[0].SelectAttrValue("style", "")
	if !strings.Contains(style, "left:8%;top:8%;width:50%;height:20%;") || !strings.Contains(style, "rotate(90deg)") {
		t.Errorf("style = %q", style)
	}
	im := out.FindElement("//div[@class='f f-image']/img")
	if im == nil || !strings.HasPrefix(im.SelectAttrValue("src", ""), "data:image/svg+xml;base64,") {
		t.Error("missing image placeholder not rendered")
	}
	// first page is left, outside margin on the left
	guides := out.FindElement("//div[@class='guides']")
	if guides == nil || guides.SelectAttrValue("style", "") != "top:15mm;right:22mm;bottom:20mm;left:15mm;" {
		t.Errorf("guides = %v", guides)
	}
}

func TestBuildHTMLRasterPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatal(err)
	}
	doc := document.NewDefault()
	img := document.NewFrame(common.FrameTypeImage)
	img.Missing = true
	doc.Pages[0].Frames = []document.Frame{img}

	opts := DefaultOptions()
	opts.MissingImage = buf.Bytes()
	im := BuildHTML(doc, opts).FindElement("//div[@class='f f-image']/img")
	if im == nil {
		t.Fatal("missing image placeholder not rendered")
	}
	if src := im.SelectAttrValue("src", ""); !strings.HasPrefix(src, "data:image/png;base64,") {
		t.Errorf("placeholder src = %.40q", src)
	}
}

func TestBuildHTMLGridAndCrop(t *testing.T) {
	doc := document.NewDefault()
	doc.Grids.Columns, doc.Grids.Gutter, doc.Grids.Baseline = 3, 10, 12
	doc.Grids.Guides = true
	img := document.NewFrame(common.FrameTypeImage)
	img.Src = "data:image/png;base64,AA=="
	img.Crop.Zoom = 2
	doc.Pages[0].Frames = []document.Frame{img}

	opts := DefaultOptions()
	opts.Guides = true
	out := BuildHTML(doc, opts)

	grids := out.FindElements("//div[@class='grid']")
	if len(grids) == 0 {
		t.Fatal("grid overlay not rendered")
	}
	if style := grids[0].SelectAttrValue("style", ""); style != "--grid-col-size:70mm;--grid-gutter-size:10mm;--grid-baseline-size:12mm;" {
		t.Errorf("grid style = %q", style)
	}
	im := out.FindElement("//div[@class='f f-image']/img")
	if im == nil || im.SelectAttrValue("style", "") != "transform:scale(2);" {
		t.Errorf("zoomed image = %v", im)
	}

	// grid follows guides option
	opts.Guides = false
	if n := len(BuildHTML(doc, opts).FindElements("//div[@class='grid']")); n != 0 {
		t.Errorf("grid overlays without guides = %d", n)
	}
}

func TestBuildHTMLBookmarks(t *testing.T) {
	doc := document.NewDefault()
	sec := document.NewSection("Appendix", document.DefaultMasterID)
	doc.Sections = append(doc.Sections, sec)
	doc.Pages[2].SectionID = sec.ID

	out := BuildHTML(doc, DefaultOptions())
	links := out.FindElements("//ul[@class='bookmarks']/li/a")
	if len(links) != 2 || links[1].Text() != "Appendix" || links[1].SelectAttrValue("href", "") != "#"+sec.ID {
		t.Fatalf("bookmarks = %d", len(links))
	}
	if out.FindElement("//section[@id='"+sec.ID+"']") == nil {
		t.Error("section anchor missing")
	}

	opts := DefaultOptions()
	opts.Bookmarks = false
	if BuildHTML(doc, opts).FindElement("//ul[@class='bookmarks']") != nil {
		t.Error("bookmarks rendered when disabled")
	}
}

func checklistFor(doc *document.Document, opts Options) []Check {
	out, snap := layout.Recalculate(doc)
	return Checklist(out, snap, opts)
}

func findCheck(checks []Check, label string) *Check {
	for i := range checks {
		if strings.HasPrefix(checks[i].Label, label) {
			return &checks[i]
		}
	}
	return nil
}

func TestChecklistDefaults(t *testing.T) {
	checks := checklistFor(document.NewDefault(), DefaultOptions())
	warnings, errs := Counts(checks)
	if errs != 0 {
		t.Errorf("errors = %d", errs)
	}
	// four empty pages, RGB styles, ICC profile
	if warnings != 6 {
		t.Errorf("warnings = %d, want 6: %+v", warnings, checks)
	}
	if !CanExport(checks, DefaultOptions()) {
		t.Error("CanExport() = false")
	}
	if findCheck(checks, "No image frames") == nil {
		t.Error("image check missing")
	}
}

func TestChecklistErrors(t *testing.T) {
	doc := document.NewDefault()
	doc.Settings.Bleed = 0
	doc.Settings.Margins.Visible = false
	img := document.NewFrame(common.FrameTypeImage)
	img.DPI, img.Missing = 150, true
	text := document.NewFrame(common.FrameTypeText)
	text.Content = "bad � glyph"
	doc.Pages[1].Frames = []document.Frame{img, text}

	opts := DefaultOptions()
	checks := checklistFor(doc, opts)

	if c := findCheck(checks, "Bleed missing"); c == nil || c.Status != common.CheckStatusError || c.Fix != FixBleed {
		t.Errorf("bleed check = %+v", c)
	}
	if c := findCheck(checks, "Margin overlays hidden"); c == nil || c.Fix != FixShowMargins {
		t.Errorf("margins check = %+v", c)
	}
	if c := findCheck(checks, "Resolution 150 DPI"); c == nil || c.PageID != doc.Pages[1].ID {
		t.Errorf("dpi check = %+v", c)
	}
	if c := findCheck(checks, "Missing image"); c == nil || c.Status != common.CheckStatusError {
		t.Errorf("missing image check = %+v", c)
	}
	if c := findCheck(checks, "Missing glyphs"); c == nil {
		t.Error("glyph check missing")
	}
	if _, errs := Counts(checks); errs != 3 {
		t.Errorf("errors = %d, want 3", errs)
	}
	if CanExport(checks, opts) {
		t.Error("CanExport() = true with errors")
	}
	opts.BlockOnErrors = false
	if !CanExport(checks, opts) {
		t.Error("CanExport() must ignore errors when not blocking")
	}
}

func TestChecklistStartOnOdd(t *testing.T) {
	tests := []struct {
		name    string
		first   int
		spreads bool
		warn    bool
	}{
		{"right page in spreads", 1, true, false},
		{"left page in spreads", 2, true, true},
		{"even page without spreads", 1, false, true},
		{"odd page without spreads", 2, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := document.NewDefault()
			doc.Settings.Spreads = tt.spreads
			sec := document.NewSection("Part", document.DefaultMasterID)
			sec.StartOnOdd = true
			doc.Sections = append(doc.Sections, sec)
			for i := tt.first; i < len(doc.Pages); i++ {
				doc.Pages[i].SectionID = sec.ID
			}
			got := findCheck(checklistFor(doc, DefaultOptions()), "Part should start on odd page") != nil
			if got != tt.warn {
				t.Errorf("warning = %v, want %v", got, tt.warn)
			}
		})
	}

	doc := document.NewDefault()
	doc.Sections = append(doc.Sections, document.NewSection("Empty", document.DefaultMasterID))
	if findCheck(checklistFor(doc, DefaultOptions()), "Section without pages: Empty") == nil {
		t.Error("empty section not reported")
	}
}

func TestChecklistSpreadMode(t *testing.T) {
	tests := []struct {
		name         string
		spreads      bool
		startOnRight bool
		want         string
	}{
		{"spreads", true, false, "Spreads enabled"},
		{"start on right implies spreads", false, true, "Spreads enabled"},
		{"single pages", false, false, "Export in single pages"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := document.NewDefault()
			doc.Settings.Spreads, doc.Settings.StartOnRight = tt.spreads, tt.startOnRight
			checks := checklistFor(doc, DefaultOptions())
			c := findCheck(checks, tt.want)
			if c == nil {
				t.Fatalf("%q not reported: %+v", tt.want, checks)
			}
			if other := findCheck(checks, "Export in single pages"); tt.want == "Spreads enabled" && other != nil {
				t.Errorf("unexpected %q", other.Label)
			}
		})
	}
}

func TestOutputName(t *testing.T) {
	doc := document.NewDefault()
	doc.Title = " My Book "

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"slug", "", "my-book.zip"},
		{"template", "{{ .Title | trim }}-{{ .Profile }}", "My Book-print.zip"},
		{"subdirectory", "{{ .Profile }}/{{ .Title | trim }}", filepath.Join("print", "My Book.zip")},
		{"broken template", "{{ .Title", "my-book.zip"},
		{"unknown field", "{{ .Author }}", "my-book.zip"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.NameTemplate = tt.template
			if got := OutputName(doc, opts, zaptest.NewLogger(t)); got != tt.want {
				t.Errorf("OutputName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteBundle(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	doc := document.NewDefault()
	doc.Title = "Bundle"

	res, err := Write(ctx, doc, DefaultOptions(), dir, false, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if res.Path != filepath.Join(dir, "bundle.zip") {
		t.Errorf("path = %s", res.Path)
	}
	if res.Sheets != 2 {
		t.Errorf("sheets = %d, want 2", res.Sheets)
	}

	zr, err := zip.OpenReader(res.Path)
	if err != nil {
		t.Fatalf("open bundle: %v", err)
	}
	defer zr.Close()
	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
		if f.Flags&0x8 != 0 {
			t.Errorf("%s has data descriptor", f.Name)
		}
	}
	for _, n := range []string{IndexName, BookName, ChecklistName} {
		if !names[n] {
			t.Errorf("bundle misses %s", n)
		}
	}

	if _, err := Write(ctx, doc, DefaultOptions(), dir, false, nil); !errors.Is(err, ErrExists) {
		t.Errorf("second Write() error = %v, want ErrExists", err)
	}
	if _, err := Write(ctx, doc, DefaultOptions(), dir, true, nil); err != nil {
		t.Errorf("Write() with overwrite error: %v", err)
	}

	doc.Settings.Bleed = 0
	if _, err := Write(ctx, doc, DefaultOptions(), filepath.Join(dir, "blocked.zip"), false, nil); !errors.Is(err, ErrBlocked) {
		t.Errorf("Write() error = %v, want ErrBlocked", err)
	}
}

func TestBuildHTMLStyles(t *testing.T) {
	doc := document.NewDefault()
	f := document.NewFrame(common.FrameTypeText)
	f.StyleID = "p-quote"
	doc.Pages[0].Frames = []document.Frame{f}

	out := BuildHTML(doc, DefaultOptions())
	style := out.FindElement("//head/style")
	if style == nil || !strings.Contains(style.Text(), ".p-quote { font-family: Palatino Linotype;") {
		t.Fatal("book styles missing from stylesheet")
	}
	if out.FindElement("//div[@class='f f-text p-quote']") == nil {
		t.Error("frame style class not rendered")
	}
}
