package layout

import (
	"math"

	"bookforge/common"
	"bookforge/document"
)

// MarginsMm are page margins in millimeters after spine and odd/even
// compensation are applied.
type MarginsMm struct {
	Top     float64 `json:"top"`
	Bottom  float64 `json:"bottom"`
	Inside  float64 `json:"inside"`
	Outside float64 `json:"outside"`
}

// MarginsPx are margins in pixels. Left and Right are physical edges, Inside
// and Outside are the same values named relative to the binding.
type MarginsPx struct {
	Top     float64 `json:"top"`
	Bottom  float64 `json:"bottom"`
	Left    float64 `json:"left"`
	Right   float64 `json:"right"`
	Inside  float64 `json:"inside"`
	Outside float64 `json:"outside"`
	Bleed   float64 `json:"bleed"`
	Safe    float64 `json:"safe"`
}

type MarginGeometry struct {
	Mm MarginsMm `json:"mm"`
	Px MarginsPx `json:"px"`
}

// Value returns millimeter value of a margin type, bleed and safe included.
func (g MarginGeometry) Value(typ common.MarginType, s *document.Settings) float64 {
	switch typ {
	case common.MarginTypeTop:
		return g.Mm.Top
	case common.MarginTypeBottom:
		return g.Mm.Bottom
	case common.MarginTypeInside:
		return g.Mm.Inside
	case common.MarginTypeOutside:
		return g.Mm.Outside
	case common.MarginTypeBleed:
		return s.Bleed
	case common.MarginTypeSafe:
		return s.SafeArea
	}
	return 0
}

// Geometry computes margins of page placed on given side. Page AutoNumber has
// to be current. Inside margin (inside plus spine) always faces the binding:
// it is on the right edge of a left page and on the left edge otherwise.
func Geometry(doc *document.Document, page *document.Page, side common.Side) MarginGeometry {
	s := &doc.Settings
	m := &s.Margins

	odd := max(page.AutoNumber, 1)%2 == 1
	comp := m.OddEvenCompensation
	if !odd {
		comp = -comp
	}

	g := MarginGeometry{
		Mm: MarginsMm{
			Top:     math.Max(0, m.Top),
			Bottom:  math.Max(0, m.Bottom),
			Inside:  math.Max(0, m.Inside+m.Spine+comp),
			Outside: math.Max(0, m.Outside-comp),
		},
	}

	px := func(mm float64) float64 { return document.MmToPx(mm, s.DPI) }
	g.Px = MarginsPx{
		Top:     px(g.Mm.Top),
		Bottom:  px(g.Mm.Bottom),
		Inside:  px(g.Mm.Inside),
		Outside: px(g.Mm.Outside),
		Bleed:   px(s.Bleed),
		Safe:    px(s.SafeArea),
	}
	if side == common.SideLeft {
		g.Px.Left, g.Px.Right = g.Px.Outside, g.Px.Inside
	} else {
		g.Px.Left, g.Px.Right = g.Px.Inside, g.Px.Outside
	}
	return g
}

// ContentBox returns page area inside margins in pixels.
func (g MarginGeometry) ContentBox(size document.Size) Rect {
	return Rect{
		X: g.Px.Left,
		Y: g.Px.Top,
		W: math.Max(0, size.Width-g.Px.Left-g.Px.Right),
		H: math.Max(0, size.Height-g.Px.Top-g.Px.Bottom),
	}
}
