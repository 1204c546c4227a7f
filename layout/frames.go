package layout

import (
	"math"

	"bookforge/common"
	"bookforge/document"
)

// SnapThreshold is distance in pixels at which frame edges stick to page
// edges and margin lines.
const SnapThreshold = 8.0

// minimal frame size in pixels after snapping
const minSnapSize = 10.0

// Rect is a rectangle either in page pixels or in page percents.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// FrameRect returns frame geometry in percents.
func FrameRect(f *document.Frame) Rect {
	return Rect{X: f.X, Y: f.Y, W: f.W, H: f.H}
}

func PercentToPx(r Rect, size document.Size) Rect {
	return Rect{
		X: r.X / 100 * size.Width,
		Y: r.Y / 100 * size.Height,
		W: r.W / 100 * size.Width,
		H: r.H / 100 * size.Height,
	}
}

// PxToPercent converts pixel rectangle into page percents clamped the same
// way frames are.
func PxToPercent(r Rect, size document.Size) Rect {
	if size.Width <= 0 || size.Height <= 0 {
		return Rect{W: 1, H: 1}
	}
	return Rect{
		X: document.Clamp(r.X/size.Width*100, 0, 100),
		Y: document.Clamp(r.Y/size.Height*100, 0, 100),
		W: document.Clamp(r.W/size.Width*100, 1, 100),
		H: document.Clamp(r.H/size.Height*100, 1, 100),
	}
}

// ClampFrame keeps frame inside page percent space.
func ClampFrame(f *document.Frame) {
	f.X = document.Clamp(f.X, 0, 100)
	f.Y = document.Clamp(f.Y, 0, 100)
	f.W = document.Clamp(f.W, 1, 100)
	f.H = document.Clamp(f.H, 1, 100)
}

func snap(v float64, targets ...float64) float64 {
	for _, t := range targets {
		if math.Abs(v-t) <= SnapThreshold {
			return t
		}
	}
	return v
}

// SnapRectPx aligns pixel rectangle to page edges and margin lines of page
// placed on side. Result is kept inside the page and is at least 10px wide
// and high.
func SnapRectPx(doc *document.Document, page *document.Page, side common.Side, r Rect) Rect {
	size := doc.PageSizePx()
	g := Geometry(doc, page, side)

	marginLeft := g.Px.Left
	marginRight := size.Width - g.Px.Right
	marginTop := g.Px.Top
	marginBottom := size.Height - g.Px.Bottom

	left := snap(r.X, 0, marginLeft, marginRight-r.W, size.Width-r.W)
	top := snap(r.Y, 0, marginTop, marginBottom-r.H, size.Height-r.H)
	right := snap(left+r.W, marginLeft, marginRight, size.Width)
	bottom := snap(top+r.H, marginTop, marginBottom, size.Height)

	w := document.Clamp(right-left, minSnapSize, size.Width-left)
	h := document.Clamp(bottom-top, minSnapSize, size.Height-top)
	return Rect{
		X: document.Clamp(left, 0, size.Width-w),
		Y: document.Clamp(top, 0, size.Height-h),
		W: w,
		H: h,
	}
}

// FrameOverflowsMargins reports whether frame crosses any margin line of the
// page placed on side.
func FrameOverflowsMargins(doc *document.Document, page *document.Page, side common.Side, f *document.Frame) bool {
	size := doc.PageSizePx()
	g := Geometry(doc, page, side)
	r := PercentToPx(FrameRect(f), size)

	return r.X < g.Px.Left || r.Y < g.Px.Top ||
		r.X+r.W > size.Width-g.Px.Right || r.Y+r.H > size.Height-g.Px.Bottom
}
