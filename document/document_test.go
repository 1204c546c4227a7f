package document

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"bookforge/common"
	"bookforge/config"
)

func TestNewDefault(t *testing.T) {
	doc := NewDefault()

	if len(doc.Pages) != 4 {
		t.Fatalf("Expected 4 pages, got %d", len(doc.Pages))
	}
	if len(doc.Sections) != 1 || len(doc.Masters) != 1 {
		t.Fatalf("Expected one section and one master, got %d and %d", len(doc.Sections), len(doc.Masters))
	}
	if doc.Masters[0].ID != DefaultMasterID {
		t.Errorf("Expected default master id %q, got %q", DefaultMasterID, doc.Masters[0].ID)
	}
	for i, p := range doc.Pages {
		if p.SectionID != doc.Sections[0].ID {
			t.Errorf("Page %d is not in default section", i)
		}
		if !strings.HasPrefix(p.ID, "page-") {
			t.Errorf("Unexpected page id %q", p.ID)
		}
	}
	if got := doc.Sections[0].PageIDs; len(got) != 4 {
		t.Errorf("Expected section to list 4 pages, got %v", got)
	}
	if !doc.Settings.Spreads || doc.Settings.StartOnRight {
		t.Errorf("Unexpected spread settings %+v", doc.Settings)
	}
	if doc.Settings.Margins.Inside != 18 || doc.Settings.Margins.Spine != 4 {
		t.Errorf("Unexpected margins %+v", doc.Settings.Margins)
	}
}

func TestNewFromConfig(t *testing.T) {
	if doc := New(nil); len(doc.Pages) != 4 {
		t.Fatalf("New(nil) should match default document, got %d pages", len(doc.Pages))
	}

	cfg := &config.DocumentConfig{
		Title:        "Atlas",
		Pages:        6,
		Format:       common.PageFormatA5,
		Orientation:  common.OrientationLandscape,
		DPI:          72,
		Spreads:      true,
		StartOnRight: true,
		Margins:      config.MarginsConfig{Top: 10, Bottom: 12, Inside: 20, Outside: 9, Spine: 2},
		Bleed:        2,
		SafeArea:     4,
		Pagination:   common.PaginationStyleRoman,
		MarginPreset: common.VisualPresetDebug,
	}
	doc := New(cfg)

	if doc.Title != "Atlas" {
		t.Errorf("Title = %q", doc.Title)
	}
	if len(doc.Pages) != 6 || len(doc.Sections[0].PageIDs) != 6 {
		t.Fatalf("Expected 6 pages, got %d (section lists %d)", len(doc.Pages), len(doc.Sections[0].PageIDs))
	}
	for i, p := range doc.Pages {
		if doc.Sections[0].PageIDs[i] != p.ID {
			t.Errorf("section order differs from page order at %d", i)
		}
		if len(p.Frames) != 0 {
			t.Errorf("page %d should be empty", i)
		}
	}
	s := doc.Settings
	if s.Format != common.PageFormatA5 || s.Orientation != common.OrientationLandscape || s.DPI != 72 {
		t.Errorf("settings = %s %s %v", s.Format, s.Orientation, s.DPI)
	}
	if !s.StartOnRight || s.Margins.Inside != 20 || s.Margins.Spine != 2 {
		t.Errorf("margins/flags not applied: %+v", s.Margins)
	}
	if s.Margins.Visual.Preset != common.VisualPresetDebug {
		t.Errorf("preset = %s", s.Margins.Visual.Preset)
	}
	if doc.Sections[0].Pagination.Style != common.PaginationStyleRoman {
		t.Errorf("pagination = %s", doc.Sections[0].Pagination.Style)
	}
	if size := doc.PageSizeMm(); size.Width != 210 || size.Height != 148 {
		t.Errorf("A5 landscape = %vx%v, want 210x148", size.Width, size.Height)
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 1000 {
		id := NewID("x")
		if seen[id] {
			t.Fatalf("Duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestNewPageSeedsFrame(t *testing.T) {
	p := NewPage("s", "", 3, nil)
	if p.MasterID != DefaultMasterID {
		t.Errorf("Expected default master, got %q", p.MasterID)
	}
	if p.Name != "Page 3" {
		t.Errorf("Unexpected name %q", p.Name)
	}
	if len(p.Frames) != 1 {
		t.Fatalf("Expected seeded frame, got %d frames", len(p.Frames))
	}
	f := p.Frames[0]
	if f.X != 8 || f.Y != 15 || f.W != 84 || f.H != 68 || f.Type != common.FrameTypeText {
		t.Errorf("Unexpected default frame %+v", f)
	}
}

func TestFormatDimensions(t *testing.T) {
	tests := []struct {
		format      common.PageFormat
		custom      Size
		orientation common.Orientation
		want        Size
	}{
		{common.PageFormatA4, Size{}, common.OrientationPortrait, Size{210, 297}},
		{common.PageFormatA4, Size{}, common.OrientationLandscape, Size{297, 210}},
		{common.PageFormatA5, Size{}, common.OrientationPortrait, Size{148, 210}},
		{common.PageFormatLetter, Size{}, common.OrientationPortrait, Size{216, 279}},
		{common.PageFormatCustom, Size{100, 150}, common.OrientationPortrait, Size{100, 150}},
		{common.PageFormatCustom, Size{100, 150}, common.OrientationLandscape, Size{150, 100}},
		{common.PageFormatCustom, Size{}, common.OrientationPortrait, Size{210, 297}},
	}
	for _, tt := range tests {
		t.Run(string(tt.format)+"/"+string(tt.orientation), func(t *testing.T) {
			if got := FormatDimensions(tt.format, tt.custom, tt.orientation); got != tt.want {
				t.Errorf("FormatDimensions() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchFormat(t *testing.T) {
	if f, ok := MatchFormat(210.05, 297, common.OrientationPortrait, FormatTolerance); !ok || f != common.PageFormatA4 {
		t.Errorf("Expected A4, got %v %v", f, ok)
	}
	if f, ok := MatchFormat(210, 148, common.OrientationLandscape, FormatTolerance); !ok || f != common.PageFormatA5 {
		t.Errorf("Expected A5, got %v %v", f, ok)
	}
	if f, ok := MatchFormat(211, 297, common.OrientationPortrait, FormatTolerance); ok || f != common.PageFormatCustom {
		t.Errorf("Expected no match, got %v %v", f, ok)
	}
}

func TestMmToPx(t *testing.T) {
	if got := MmToPx(25.4, 96); got != 96 {
		t.Errorf("MmToPx(25.4, 96) = %v", got)
	}
	if got := MmToPx(22, 96); math.Abs(got-83.15) > 0.01 {
		t.Errorf("MmToPx(22, 96) = %v", got)
	}
	if got := PxToMm(MmToPx(15, 300), 300); math.Abs(got-15) > 1e-9 {
		t.Errorf("round trip gives %v", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	doc := NewDefault()
	op := 0.3
	doc.Settings.Margins.Visual.Opacity = &op
	doc.Settings.Margins.Visual.Colors = map[common.MarginType]string{common.MarginTypeTop: "#000000"}
	doc.Pages[0].Frames = append(doc.Pages[0].Frames, DefaultTextFrame())
	doc.Pages[0].BackgroundReference = &BackgroundReference{ID: "bg", Opacity: 0.5}

	clone := doc.Clone()
	if !reflect.DeepEqual(doc, clone) {
		t.Fatal("Clone is not equal to source")
	}

	clone.Pages[0].Frames[0].X = 42
	clone.Pages[0].BackgroundReference.Opacity = 1
	clone.Sections[0].PageIDs[0] = "changed"
	*clone.Settings.Margins.Visual.Opacity = 0.1
	clone.Settings.Margins.Visual.Colors[common.MarginTypeTop] = "#ffffff"
	clone.Grids.Presets[0].Columns = 9

	if doc.Pages[0].Frames[0].X == 42 {
		t.Error("Frames are shared")
	}
	if doc.Pages[0].BackgroundReference.Opacity != 0.5 {
		t.Error("Background reference is shared")
	}
	if doc.Sections[0].PageIDs[0] == "changed" {
		t.Error("Section page ids are shared")
	}
	if *doc.Settings.Margins.Visual.Opacity != 0.3 {
		t.Error("Visual opacity is shared")
	}
	if doc.Settings.Margins.Visual.Colors[common.MarginTypeTop] != "#000000" {
		t.Error("Visual colors are shared")
	}
	if doc.Grids.Presets[0].Columns == 9 {
		t.Error("Grid presets are shared")
	}
}

func TestNormalize(t *testing.T) {
	t.Run("nil document", func(t *testing.T) {
		doc := Normalize(nil)
		if doc == nil || len(doc.Pages) != 4 {
			t.Fatal("Expected default document")
		}
	})

	t.Run("empty document", func(t *testing.T) {
		doc := Normalize(&Document{})
		if len(doc.Sections) == 0 || len(doc.Masters) == 0 || len(doc.Pages) == 0 {
			t.Fatalf("Structure not guaranteed: %d sections, %d masters, %d pages", len(doc.Sections), len(doc.Masters), len(doc.Pages))
		}
		for _, p := range doc.Pages {
			if doc.FindSection(p.SectionID) == nil {
				t.Errorf("Page %s references missing section", p.ID)
			}
		}
		if doc.Settings.DPI != 96 || doc.Settings.Format != common.PageFormatA4 {
			t.Errorf("Settings not defaulted: %+v", doc.Settings)
		}
	})

	t.Run("clamping", func(t *testing.T) {
		doc := NewDefault()
		doc.Settings.Margins.Top = -3
		doc.Settings.Bleed = -1
		doc.Settings.SafeArea = math.NaN()
		doc.Settings.DPI = -10
		doc.Sections[0].Pagination.StartAt = 0
		doc.Sections[0].Pagination.Style = "greek"
		doc.Pages[0].SectionID = "gone"
		doc.Pages[1].Frames = []Frame{{X: -5, Y: 120, W: 0, H: 300}}

		Normalize(doc)

		if doc.Settings.Margins.Top != 0 || doc.Settings.Bleed != 0 || doc.Settings.SafeArea != 0 {
			t.Errorf("Negative values not clamped: %+v", doc.Settings)
		}
		if doc.Settings.DPI != 96 {
			t.Errorf("DPI not restored, got %v", doc.Settings.DPI)
		}
		if doc.Sections[0].Pagination.StartAt != 1 || doc.Sections[0].Pagination.Style != common.PaginationStyleArabic {
			t.Errorf("Pagination not normalized: %+v", doc.Sections[0].Pagination)
		}
		if doc.Pages[0].SectionID != doc.Sections[0].ID {
			t.Error("Dangling section reference not repaired")
		}
		f := doc.Pages[1].Frames[0]
		if f.X != 0 || f.Y != 100 || f.W != 1 || f.H != 100 {
			t.Errorf("Frame not clamped: %+v", f)
		}
		if f.ID == "" || f.Layer != "text" || f.Crop.Zoom != 1 {
			t.Errorf("Frame defaults not filled: %+v", f)
		}
	})

	t.Run("master cycle is broken", func(t *testing.T) {
		doc := NewDefault()
		doc.Masters = append(doc.Masters, Master{ID: "b", ParentID: DefaultMasterID})
		doc.Masters[0].ParentID = "b"
		Normalize(doc)
		if len(doc.MasterChain("b")) > 2 {
			t.Errorf("Unexpected chain length %d", len(doc.MasterChain("b")))
		}
		if doc.Masters[0].ParentID != "" && doc.Masters[1].ParentID != "" {
			t.Error("Cycle was not broken")
		}
	})

	t.Run("grids", func(t *testing.T) {
		doc := NewDefault()
		doc.Grids = Grids{Columns: 30, Gutter: math.NaN(), Baseline: -1}
		Normalize(doc)
		g := doc.Grids
		if g.Columns != MaxColumns || g.Gutter != 12 || g.Baseline != 14 {
			t.Errorf("Grid not normalized: %+v", g)
		}
		if len(g.Presets) != len(DefaultGridPresets()) || g.FindPreset("MAGAZINE") == nil {
			t.Errorf("Presets not restored: %+v", g.Presets)
		}
	})

	t.Run("visual overrides clamped", func(t *testing.T) {
		doc := NewDefault()
		op, st := 0.9, 12.0
		doc.Settings.Margins.Visual.Opacity = &op
		doc.Settings.Margins.Visual.Stroke = &st
		doc.Settings.Margins.Visual.Preset = "neon"
		Normalize(doc)
		v := doc.Settings.Margins.Visual
		if *v.Opacity != MaxOpacity || *v.Stroke != MaxStroke || v.Preset != common.VisualPresetEdition {
			t.Errorf("Unexpected visual %+v", v)
		}
	})
}

func TestMasters(t *testing.T) {
	doc := NewDefault()
	child := NewMaster("Child", DefaultMasterID)
	child.Footer = "footer"
	grandchild := NewMaster("Grandchild", child.ID)
	doc.Masters = append(doc.Masters, child, grandchild)

	chain := doc.MasterChain(grandchild.ID)
	if len(chain) != 3 {
		t.Fatalf("Expected chain of 3, got %d", len(chain))
	}
	res := doc.ResolveMaster(grandchild.ID)
	if res.Header != "BOOK FORGE" || res.Footer != "footer" || res.Name != "Grandchild" {
		t.Errorf("Unexpected resolution %+v", res)
	}
	if !doc.CreatesCycle(DefaultMasterID, grandchild.ID) {
		t.Error("Expected cycle to be detected")
	}
	if doc.CreatesCycle(grandchild.ID, DefaultMasterID) {
		t.Error("Unexpected cycle")
	}
	if doc.MasterName("missing") != "No master" {
		t.Error("Unexpected name for missing master")
	}
}

func TestDecodeKeepsDefaults(t *testing.T) {
	doc, err := Decode([]byte(`{"title":"Book","settings":{"startOnRight":true,"margins":{"inside":20}},"pages":[{"id":"p1","frames":[{"id":"f","src":""}]}]}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if doc.Title != "Book" || !doc.Settings.StartOnRight {
		t.Errorf("Decoded values lost: %+v", doc.Settings)
	}
	if doc.Settings.Margins.Inside != 20 || doc.Settings.Margins.Outside != 15 {
		t.Errorf("Margins not merged with defaults: %+v", doc.Settings.Margins)
	}
	if len(doc.Pages) != 1 || doc.Pages[0].SectionID != doc.Sections[0].ID {
		t.Errorf("Pages not normalized: %+v", doc.Pages)
	}

	data, err := Encode(doc, false)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	again, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !reflect.DeepEqual(doc.Pages, again.Pages) {
		t.Error("Pages differ after round trip")
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, err := Decode([]byte(`{"settings":{"format":"B5"}}`)); err == nil {
		t.Error("Expected error for unknown format")
	}
	if _, err := Decode([]byte(`not json`)); err == nil {
		t.Error("Expected error for broken input")
	}
}

func TestNormalizeCrop(t *testing.T) {
	tests := []struct {
		name string
		in   Crop
		want Crop
	}{
		{"empty shows whole image", Crop{}, Crop{W: 100, H: 100, Zoom: 1}},
		{"in range", Crop{X: 10, Y: 20, W: 50, H: 40, Zoom: 1.5}, Crop{X: 10, Y: 20, W: 50, H: 40, Zoom: 1.5}},
		{"position clamped", Crop{X: -10, Y: 140, W: 50, H: 50, Zoom: 1}, Crop{X: 0, Y: 100, W: 50, H: 50, Zoom: 1}},
		{"size clamped", Crop{W: 0.2, H: 300, Zoom: 1}, Crop{W: 1, H: 100, Zoom: 1}},
		{"zoom too large", Crop{W: 100, H: 100, Zoom: 5}, Crop{W: 100, H: 100, Zoom: MaxCropZoom}},
		{"zoom too small", Crop{W: 100, H: 100, Zoom: 0.1}, Crop{W: 100, H: 100, Zoom: MinCropZoom}},
		{"zoom not a number", Crop{W: 100, H: 100, Zoom: math.NaN()}, Crop{W: 100, H: 100, Zoom: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.in
			NormalizeCrop(&c)
			if c != tt.want {
				t.Errorf("NormalizeCrop(%+v) = %+v, want %+v", tt.in, c, tt.want)
			}
		})
	}
}
