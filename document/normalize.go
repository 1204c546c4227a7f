package document

import (
	"math"

	"bookforge/common"
)

const (
	defaultFrameXY = 8
	defaultFrameW  = 50
	defaultFrameH  = 20

	// MinOpacity and MaxOpacity bound margin overlay zone opacity.
	MinOpacity = 0.05
	MaxOpacity = 0.45
	// MinStroke and MaxStroke bound overlay line width in pixels.
	MinStroke = 1
	MaxStroke = 5
	// MinCropZoom and MaxCropZoom bound image scale inside its frame.
	MinCropZoom = 0.3
	MaxCropZoom = 3
	MaxColumns  = 12
)

// Clamp limits v to [lo, hi]. NaN is mapped to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func finiteOr(v, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// Normalize makes document well formed in place and returns it: it fills
// missing parts from defaults, guarantees at least one section, master and
// page, repairs dangling references and clamps out of range numbers. Nil
// document is replaced with a fresh default one.
func Normalize(d *Document) *Document {
	if d == nil {
		return NewDefault()
	}
	fresh := NewDefault()

	if d.ID == "" {
		d.ID = fresh.ID
	}
	if d.Title == "" {
		d.Title = fresh.Title
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = fresh.CreatedAt
	}
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = d.CreatedAt
	}

	normalizeSettings(&d.Settings)
	normalizeGrids(&d.Grids, &fresh.Grids)

	if len(d.Masters) == 0 {
		d.Masters = fresh.Masters
	}
	for i := range d.Masters {
		m := &d.Masters[i]
		if m.ID == "" {
			m.ID = NewID("master")
		}
		if m.ParentID != "" && (d.FindMaster(m.ParentID) == nil || d.CreatesCycle(m.ID, m.ParentID)) {
			m.ParentID = ""
		}
	}
	fallbackMaster := d.Masters[0].ID

	if len(d.Sections) == 0 {
		d.Sections = []Section{NewSection("Section 1", fallbackMaster)}
	}
	for i := range d.Sections {
		s := &d.Sections[i]
		if s.ID == "" {
			s.ID = NewID("section")
		}
		if !s.Pagination.Style.IsValid() {
			s.Pagination.Style = common.PaginationStyleArabic
		}
		s.Pagination.StartAt = max(s.Pagination.StartAt, 1)
		if d.FindMaster(s.MasterID) == nil {
			s.MasterID = fallbackMaster
		}
	}

	if len(d.Pages) == 0 {
		for i := range fresh.Pages {
			p := fresh.Pages[i]
			p.SectionID = d.Sections[0].ID
			p.MasterID = d.Sections[0].MasterID
			d.Pages = append(d.Pages, p)
		}
	}
	for i := range d.Pages {
		p := &d.Pages[i]
		if p.ID == "" {
			p.ID = NewID("page")
		}
		if d.FindSection(p.SectionID) == nil {
			p.SectionID = d.Sections[0].ID
		}
		if d.FindMaster(p.MasterID) == nil {
			p.MasterID = d.FindSection(p.SectionID).MasterID
		}
		if p.Frames == nil {
			p.Frames = []Frame{}
		}
		for j := range p.Frames {
			NormalizeFrame(&p.Frames[j])
		}
		if p.BackgroundReference != nil {
			normalizeBackground(p.BackgroundReference)
		}
	}

	if len(d.Styles.Paragraph) == 0 {
		d.Styles.Paragraph = fresh.Styles.Paragraph
	}
	if len(d.Styles.Character) == 0 {
		d.Styles.Character = fresh.Styles.Character
	}
	if len(d.Styles.Object) == 0 {
		d.Styles.Object = fresh.Styles.Object
	}
	if d.Assets == nil {
		d.Assets = []Asset{}
	}
	return d
}

func normalizeSettings(s *Settings) {
	def := DefaultSettings()

	if !s.Format.IsValid() {
		s.Format = def.Format
	}
	if !s.Orientation.IsValid() {
		s.Orientation = def.Orientation
	}
	if s.CustomSize.Width <= 0 || s.CustomSize.Height <= 0 {
		s.CustomSize = FormatDimensions(s.Format, def.CustomSize, common.OrientationPortrait)
	}
	if s.Unit == "" {
		s.Unit = def.Unit
	}
	if s.DPI = finiteOr(s.DPI, def.DPI); s.DPI <= 0 {
		s.DPI = def.DPI
	}

	m := &s.Margins
	m.Top = math.Max(0, finiteOr(m.Top, 0))
	m.Bottom = math.Max(0, finiteOr(m.Bottom, 0))
	m.Inside = math.Max(0, finiteOr(m.Inside, 0))
	m.Outside = math.Max(0, finiteOr(m.Outside, 0))
	m.Spine = math.Max(0, finiteOr(m.Spine, 0))
	m.OddEvenCompensation = finiteOr(m.OddEvenCompensation, 0)
	m.Stroke = Clamp(finiteOr(m.Stroke, def.Margins.Stroke), MinStroke, MaxStroke)
	NormalizeVisual(&m.Visual)

	s.Bleed = math.Max(0, finiteOr(s.Bleed, 0))
	s.SafeArea = math.Max(0, finiteOr(s.SafeArea, 0))
}

// NormalizeVisual drops invalid enumerations and clamps numeric overrides.
func NormalizeVisual(v *MarginVisual) {
	if !v.Preset.IsValid() {
		v.Preset = common.VisualPresetEdition
	}
	if v.Mode != "" && !v.Mode.IsValid() {
		v.Mode = ""
	}
	if v.LineStyle != "" && !v.LineStyle.IsValid() {
		v.LineStyle = ""
	}
	if v.Opacity != nil {
		o := Clamp(*v.Opacity, MinOpacity, MaxOpacity)
		v.Opacity = &o
	}
	if v.Stroke != nil {
		w := Clamp(*v.Stroke, MinStroke, MaxStroke)
		v.Stroke = &w
	}
}

func normalizeGrids(g, def *Grids) {
	if g.Columns <= 0 {
		g.Columns = def.Columns
	}
	g.Columns = min(g.Columns, MaxColumns)
	if g.Gutter < 0 || math.IsNaN(g.Gutter) {
		g.Gutter = def.Gutter
	}
	if g.Baseline <= 0 || math.IsNaN(g.Baseline) {
		g.Baseline = def.Baseline
	}
	if len(g.Presets) == 0 {
		g.Presets = def.Presets
	}
}

// NormalizeFrame fills frame defaults and clamps geometry into page percent
// space: position to [0,100], size to [1,100].
func NormalizeFrame(f *Frame) {
	if f.ID == "" {
		f.ID = NewID("frame")
	}
	if !f.Type.IsValid() {
		f.Type = common.FrameTypeText
	}
	f.X = Clamp(finiteOr(f.X, defaultFrameXY), 0, 100)
	f.Y = Clamp(finiteOr(f.Y, defaultFrameXY), 0, 100)
	f.W = Clamp(finiteOr(f.W, defaultFrameW), 1, 100)
	f.H = Clamp(finiteOr(f.H, defaultFrameH), 1, 100)
	f.Rotation = finiteOr(f.Rotation, 0)
	if f.Layer == "" {
		f.Layer = layerFor(f.Type)
	}
	NormalizeCrop(&f.Crop)
}

// NormalizeCrop clamps visible part of an image into percent space and zoom
// into [MinCropZoom, MaxCropZoom]. Empty crop shows the whole image.
func NormalizeCrop(c *Crop) {
	if c.W <= 0 || c.H <= 0 {
		c.W, c.H = 100, 100
	}
	c.X = Clamp(finiteOr(c.X, 0), 0, 100)
	c.Y = Clamp(finiteOr(c.Y, 0), 0, 100)
	c.W = Clamp(finiteOr(c.W, 100), 1, 100)
	c.H = Clamp(finiteOr(c.H, 100), 1, 100)
	if c.Zoom <= 0 || math.IsNaN(c.Zoom) {
		c.Zoom = 1
	}
	c.Zoom = Clamp(finiteOr(c.Zoom, 1), MinCropZoom, MaxCropZoom)
}

func normalizeBackground(b *BackgroundReference) {
	if b.ID == "" {
		b.ID = NewID("bgref")
	}
	if b.Mode == "" {
		b.Mode = "reference"
	}
	b.Opacity = Clamp(finiteOr(b.Opacity, 0.35), 0.05, 1)
	b.Rotation = finiteOr(b.Rotation, 0)
	b.PageNumber = max(b.PageNumber, 1)
}
