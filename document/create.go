package document

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"bookforge/common"
	"bookforge/config"
)

// DefaultMasterID is identifier of the master every fresh document starts with.
const DefaultMasterID = "master-default"

// NewID returns unique identifier with given prefix. Identifiers are time
// ordered so pages created in a batch sort naturally.
func NewID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return prefix + "-" + id.String()
}

// NewDefault creates a ready to use document: A4 portrait at 96 dpi, one
// section with four empty pages and a single master.
func NewDefault() *Document {
	now := time.Now().UTC()
	section := NewSection("Section 1", DefaultMasterID)
	master := Master{
		ID:            DefaultMasterID,
		Name:          "Master A",
		LockedColumns: true,
		FixedGuides:   true,
		Header:        "BOOK FORGE",
		Background:    "transparent",
	}

	doc := &Document{
		ID:        NewID("doc"),
		Title:     "Untitled Book",
		CreatedAt: now,
		UpdatedAt: now,
		Settings:  DefaultSettings(),
		Grids: Grids{
			Columns:  2,
			Gutter:   12,
			Baseline: 14,
			Snap:     true,
			Rulers:   true,
			Guides:   true,
			Presets:  DefaultGridPresets(),
		},
		Sections: []Section{section},
		Masters:  []Master{master},
		Styles:   DefaultStyles(),
		Assets:   []Asset{},
	}
	for i := range 4 {
		doc.Pages = append(doc.Pages, NewPage(section.ID, master.ID, i+1, []Frame{}))
	}
	for _, p := range doc.Pages {
		doc.Sections[0].PageIDs = append(doc.Sections[0].PageIDs, p.ID)
	}
	return doc
}

func DefaultSettings() Settings {
	a4 := formatSizes[common.PageFormatA4]
	return Settings{
		Format:      common.PageFormatA4,
		Orientation: common.OrientationPortrait,
		CustomSize:  a4,
		Unit:        "mm",
		DPI:         96,
		Spreads:     true,
		Margins: Margins{
			Top:     15,
			Bottom:  20,
			Inside:  18,
			Outside: 15,
			Spine:   4,
			Visible: true,
			Stroke:  1,
			Visual:  MarginVisual{Preset: common.VisualPresetEdition},
		},
		Bleed:        3,
		SafeArea:     5,
		SafeVisible:  true,
		BleedVisible: true,
		Preview:      Preview{PaperSimulation: true},
	}
}

func DefaultStyles() Styles {
	return Styles{
		Paragraph: []ParagraphStyle{
			{ID: "p-body", Name: "Body", Font: "Palatino Linotype", Size: 11, Leading: 15, Align: "justify", Hyphenation: true, WidowsOrphans: true},
			{ID: "p-title", Name: "Title", Font: "Avenir Next", Size: 28, Leading: 30, Align: "left", WidowsOrphans: true},
			{ID: "p-subtitle", Name: "Subtitle", Font: "Avenir Next", Size: 18, Leading: 22, Align: "left", WidowsOrphans: true},
			{ID: "p-quote", Name: "Quote", Font: "Palatino Linotype", Size: 12, Leading: 16, Align: "left", Hyphenation: true, WidowsOrphans: true},
			{ID: "p-caption", Name: "Caption", Font: "Avenir Next", Size: 9, Leading: 11, Align: "left"},
			{ID: "p-note", Name: "Note", Font: "Palatino Linotype", Size: 9, Leading: 11, Align: "left", Hyphenation: true},
			{ID: "p-list", Name: "List", Font: "Palatino Linotype", Size: 11, Leading: 15, Align: "left", Hyphenation: true, WidowsOrphans: true},
		},
		Character: []CharacterStyle{
			{ID: "c-bold", Name: "Bold", Weight: 700, Style: "normal", Color: "#343434"},
			{ID: "c-italic", Name: "Italic", Weight: 400, Style: "italic", Color: "#343434"},
		},
		Object: []ObjectStyle{
			{ID: "o-text", Name: "Text frame", Type: common.FrameTypeText, Fill: "transparent", Padding: 8, Wrap: "none"},
			{ID: "o-image", Name: "Image frame", Type: common.FrameTypeImage, Fill: "#e9e9e9", Wrap: "around"},
		},
	}
}

// NewPage creates a page. When frames is nil the page is seeded with one
// default text frame, pass empty slice to get a page without content.
func NewPage(sectionID, masterID string, number int, frames []Frame) Page {
	if masterID == "" {
		masterID = DefaultMasterID
	}
	if frames == nil {
		frames = []Frame{DefaultTextFrame()}
	}
	return Page{
		ID:        NewID("page"),
		Name:      fmt.Sprintf("Page %d", max(number, 1)),
		SectionID: sectionID,
		MasterID:  masterID,
		Frames:    frames,
	}
}

// DefaultTextFrame is the content frame seeded into freshly added pages.
func DefaultTextFrame() Frame {
	f := NewFrame(common.FrameTypeText)
	f.X, f.Y, f.W, f.H = 8, 15, 84, 68
	return f
}

// NewFrame creates a frame of given type with default geometry.
func NewFrame(typ common.FrameType) Frame {
	if !typ.IsValid() {
		typ = common.FrameTypeText
	}
	return Frame{
		ID:    NewID("frame"),
		Type:  typ,
		X:     defaultFrameXY,
		Y:     defaultFrameXY,
		W:     defaultFrameW,
		H:     defaultFrameH,
		Layer: layerFor(typ),
		Crop:  defaultCrop(),
	}
}

func NewSection(name, masterID string) Section {
	if name == "" {
		name = "New section"
	}
	if masterID == "" {
		masterID = DefaultMasterID
	}
	return Section{
		ID:         NewID("section"),
		Name:       name,
		PageIDs:    []string{},
		Pagination: Pagination{Style: common.PaginationStyleArabic, StartAt: 1},
		Bookmark:   true,
		TOC:        true,
		MasterID:   masterID,
	}
}

func NewMaster(name, parentID string) Master {
	if name == "" {
		name = "New master"
	}
	return Master{
		ID:            NewID("master"),
		Name:          name,
		ParentID:      parentID,
		LockedColumns: true,
		FixedGuides:   true,
		Background:    "transparent",
	}
}

func NewAsset(name, mime string, size int64) Asset {
	if mime == "" {
		mime = "application/octet-stream"
	}
	return Asset{
		ID:        NewID("asset"),
		Name:      name,
		Type:      mime,
		Size:      size,
		CreatedAt: time.Now().UTC(),
	}
}

func layerFor(typ common.FrameType) string {
	if typ == common.FrameTypeImage {
		return "images"
	}
	return "text"
}

// DefaultGridPresets are offered in every new book.
func DefaultGridPresets() []GridPreset {
	return []GridPreset{
		{Name: "Roman", Columns: 2, Gutter: 12, Baseline: 14},
		{Name: "Magazine", Columns: 3, Gutter: 10, Baseline: 12},
	}
}

func defaultCrop() Crop {
	return Crop{W: 100, H: 100, Zoom: 1}
}

// New creates a document from configured defaults. Nil configuration gives the
// same result as NewDefault.
func New(cfg *config.DocumentConfig) *Document {
	doc := NewDefault()
	if cfg == nil {
		return doc
	}

	doc.Title = cfg.Title
	s := &doc.Settings
	s.Format = cfg.Format
	s.Orientation = cfg.Orientation
	if cfg.Width > 0 && cfg.Height > 0 {
		s.CustomSize = Size{Width: cfg.Width, Height: cfg.Height}
	}
	s.DPI = cfg.DPI
	s.Spreads = cfg.Spreads
	s.StartOnRight = cfg.StartOnRight
	s.Margins.Top = cfg.Margins.Top
	s.Margins.Bottom = cfg.Margins.Bottom
	s.Margins.Inside = cfg.Margins.Inside
	s.Margins.Outside = cfg.Margins.Outside
	s.Margins.Spine = cfg.Margins.Spine
	s.Margins.OddEvenCompensation = cfg.Margins.OddEvenCompensation
	s.Margins.Visual = MarginVisual{Preset: cfg.MarginPreset}
	s.Bleed = cfg.Bleed
	s.SafeArea = cfg.SafeArea

	sec := &doc.Sections[0]
	sec.Pagination.Style = cfg.Pagination

	doc.Pages = doc.Pages[:0]
	sec.PageIDs = sec.PageIDs[:0]
	for i := range max(cfg.Pages, 1) {
		p := NewPage(sec.ID, sec.MasterID, i+1, []Frame{})
		doc.Pages = append(doc.Pages, p)
		sec.PageIDs = append(sec.PageIDs, p.ID)
	}
	return Normalize(doc)
}
