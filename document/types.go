// Package document defines canonical in-memory representation of a book:
// settings, sections, masters, pages with their frames, styles and assets.
//
// Every structure is plain data and serializes to JSON using the same field
// names the browser editor used, so stored documents stay interchangeable.
// Fields marked as derived are rewritten by the layout package on every
// recalculation and must never be edited by hand.
package document

import (
	"strings"
	"time"

	"bookforge/common"
)

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// MarginVisual keeps selected overlay preset and explicit user overrides.
// Nil or missing values mean "take it from the preset". Effective style is
// resolved by layout.ResolveVisual.
type MarginVisual struct {
	Preset    common.VisualPreset          `json:"preset,omitempty"`
	Mode      common.VisualMode            `json:"mode,omitempty"`
	Opacity   *float64                     `json:"opacity,omitempty"`
	Stroke    *float64                     `json:"stroke,omitempty"`
	LineStyle common.LineStyle             `json:"lineStyle,omitempty"`
	Legend    *bool                        `json:"legend,omitempty"`
	Colors    map[common.MarginType]string `json:"colors,omitempty"`
	Show      map[common.MarginType]bool   `json:"show,omitempty"`
}

// Margins are expressed in millimeters. Inside is the gutter side, spine is
// added to it, odd/even compensation moves width between inside and outside.
type Margins struct {
	Top                 float64      `json:"top"`
	Bottom              float64      `json:"bottom"`
	Inside              float64      `json:"inside"`
	Outside             float64      `json:"outside"`
	Spine               float64      `json:"spine"`
	OddEvenCompensation float64      `json:"oddEvenCompensation"`
	Visible             bool         `json:"visible"`
	Stroke              float64      `json:"stroke"`
	Visual              MarginVisual `json:"visual"`
}

type Preview struct {
	Enabled         bool `json:"enabled"`
	CMYK            bool `json:"cmyk"`
	BW              bool `json:"bw"`
	PaperSimulation bool `json:"paperSimulation"`
}

type Settings struct {
	Format       common.PageFormat  `json:"format,omitempty"`
	Orientation  common.Orientation `json:"orientation,omitempty"`
	CustomSize   Size               `json:"customSize"`
	Unit         string             `json:"unit"`
	DPI          float64            `json:"dpi"`
	Spreads      bool               `json:"spreads"`
	StartOnRight bool               `json:"startOnRight"`
	Margins      Margins            `json:"margins"`
	Bleed        float64            `json:"bleed"`
	SafeArea     float64            `json:"safeArea"`
	SafeVisible  bool               `json:"safeVisible"`
	BleedVisible bool               `json:"bleedVisible"`
	Preview      Preview            `json:"preview"`
}

type GridPreset struct {
	Name     string  `json:"name"`
	Columns  int     `json:"columns"`
	Gutter   float64 `json:"gutter"`
	Baseline float64 `json:"baseline"`
}

// Grids describe column and baseline grid, gutter and baseline are in
// millimeters.
type Grids struct {
	Columns  int          `json:"columns"`
	Gutter   float64      `json:"gutter"`
	Baseline float64      `json:"baseline"`
	Snap     bool         `json:"snap"`
	Rulers   bool         `json:"rulers"`
	Guides   bool         `json:"guides"`
	Presets  []GridPreset `json:"presets"`
}

// FindPreset looks grid preset up by name ignoring case.
func (g *Grids) FindPreset(name string) *GridPreset {
	for i := range g.Presets {
		if strings.EqualFold(g.Presets[i].Name, name) {
			return &g.Presets[i]
		}
	}
	return nil
}

type Pagination struct {
	Style   common.PaginationStyle `json:"style,omitempty"`
	StartAt int                    `json:"startAt"`
	// Independent is advisory, numbering restarts in every section.
	Independent bool `json:"independent"`
}

type Section struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// PageIDs is derived: pages whose SectionID matches, in document order.
	PageIDs    []string   `json:"pageIds"`
	Pagination Pagination `json:"pagination"`
	StartOnOdd bool       `json:"startOnOdd"`
	Bookmark   bool       `json:"bookmark"`
	TOC        bool       `json:"toc"`
	MasterID   string     `json:"masterId"`
}

// Master is a page template. ParentID is a non-owning back reference.
type Master struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ParentID      string `json:"parentId,omitempty"`
	LockedColumns bool   `json:"lockedColumns"`
	FixedGuides   bool   `json:"fixedGuides"`
	Header        string `json:"header"`
	Footer        string `json:"footer"`
	Background    string `json:"background"`
	Logo          string `json:"logo"`
}

type Crop struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	W    float64 `json:"w"`
	H    float64 `json:"h"`
	Zoom float64 `json:"zoom"`
}

// Frame is a placed content object. Geometry is in page relative percents.
type Frame struct {
	ID           string           `json:"id"`
	Type         common.FrameType `json:"type,omitempty"`
	X            float64          `json:"x"`
	Y            float64          `json:"y"`
	W            float64          `json:"w"`
	H            float64          `json:"h"`
	Rotation     float64          `json:"rotation"`
	Locked       bool             `json:"locked"`
	Hidden       bool             `json:"hidden"`
	Layer        string           `json:"layer"`
	Content      string           `json:"content"`
	StyleID      string           `json:"styleId,omitempty"`
	Crop         Crop             `json:"crop"`
	Src          string           `json:"src"`
	Imported     bool             `json:"imported"`
	ImportedFrom string           `json:"importedFrom"`
	NonPrintable bool             `json:"nonPrintable"`
	DPI          float64          `json:"dpi,omitempty"`
	Missing      bool             `json:"missing,omitempty"`
	NextFrameID  string           `json:"nextFrameId,omitempty"`
}

// BackgroundReference is a non printable image of an imported source page.
// DataURL may be empty after storage dropped it under quota pressure.
type BackgroundReference struct {
	ID           string  `json:"id"`
	Mode         string  `json:"mode"`
	SourceName   string  `json:"sourceName"`
	SourceType   string  `json:"sourceType"`
	PageNumber   int     `json:"pageNumber"`
	Locked       bool    `json:"locked"`
	Visible      bool    `json:"visible"`
	NonPrintable bool    `json:"nonPrintable"`
	Opacity      float64 `json:"opacity"`
	Rotation     float64 `json:"rotation"`
	DataURL      string  `json:"dataUrl"`
	IsRasterized bool    `json:"isRasterized"`
}

type ImportInfo struct {
	Source     common.SourceKind `json:"source,omitempty"`
	FileName   string            `json:"fileName"`
	SourcePage int               `json:"sourcePage"`
	Mode       string            `json:"mode"`
	Rotation   float64           `json:"rotation"`
	Zoom       float64           `json:"zoom"`
}

type Page struct {
	ID                  string               `json:"id"`
	Name                string               `json:"name"`
	SectionID           string               `json:"sectionId"`
	MasterID            string               `json:"masterId"`
	Frames              []Frame              `json:"frames"`
	Notes               string               `json:"notes"`
	BackgroundReference *BackgroundReference `json:"backgroundReference,omitempty"`
	Imported            *ImportInfo          `json:"imported,omitempty"`

	// derived
	Index         int         `json:"index"`
	AutoNumber    int         `json:"autoNumber"`
	DisplayNumber string      `json:"displayNumber"`
	BindingSide   common.Side `json:"bindingSide,omitempty"`
	BindingEdge   common.Side `json:"bindingEdge,omitempty"`
	SpreadIndex   int         `json:"spreadIndex"`
}

type ParagraphStyle struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Font          string  `json:"font"`
	Size          float64 `json:"size"`
	Leading       float64 `json:"leading"`
	Align         string  `json:"align"`
	Hyphenation   bool    `json:"hyphenation"`
	WidowsOrphans bool    `json:"widowsOrphans"`
}

type CharacterStyle struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Weight   int     `json:"weight"`
	Style    string  `json:"style"`
	Color    string  `json:"color"`
	Tracking float64 `json:"tracking"`
}

type ObjectStyle struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Type    common.FrameType `json:"type,omitempty"`
	Fill    string           `json:"fill"`
	Padding float64          `json:"padding"`
	Wrap    string           `json:"wrap"`
	Radius  float64          `json:"radius"`
}

// Styles are metadata only, no text layout is performed with them.
type Styles struct {
	Paragraph []ParagraphStyle `json:"paragraph"`
	Character []CharacterStyle `json:"character"`
	Object    []ObjectStyle    `json:"object"`
}

type Asset struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// Document is the root aggregate. Order of Pages is reading order of the book.
type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Settings  Settings  `json:"settings"`
	Grids     Grids     `json:"grids"`
	Sections  []Section `json:"sections"`
	Masters   []Master  `json:"masters"`
	Pages     []Page    `json:"pages"`
	Styles    Styles    `json:"styles"`
	Assets    []Asset   `json:"assets"`
}
