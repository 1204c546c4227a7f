package document

import (
	"math"

	"bookforge/common"
)

// MmPerInch is used for all unit conversions.
const MmPerInch = 25.4

// FormatTolerance is maximum difference in millimeters for page size to be
// recognized as a named format.
const FormatTolerance = 0.1

var formatSizes = map[common.PageFormat]Size{
	common.PageFormatA4:     {Width: 210, Height: 297},
	common.PageFormatA5:     {Width: 148, Height: 210},
	common.PageFormatLetter: {Width: 216, Height: 279},
}

// order of lookup when matching sizes
var namedFormats = []common.PageFormat{common.PageFormatA4, common.PageFormatA5, common.PageFormatLetter}

// MmToPx converts millimeters to pixels at given resolution.
func MmToPx(mm, dpi float64) float64 {
	return mm / MmPerInch * dpi
}

// PxToMm is reverse of MmToPx.
func PxToMm(px, dpi float64) float64 {
	if dpi <= 0 {
		return 0
	}
	return px / dpi * MmPerInch
}

// FormatSize returns portrait size of a named format.
func FormatSize(format common.PageFormat) (Size, bool) {
	s, ok := formatSizes[format]
	return s, ok
}

// FormatDimensions returns page size in millimeters. Unknown or custom formats
// use custom size, and A4 is used when custom size is not set. Landscape
// swaps dimensions.
func FormatDimensions(format common.PageFormat, custom Size, orientation common.Orientation) Size {
	base, ok := formatSizes[format]
	if !ok {
		base = custom
		if base.Width <= 0 || base.Height <= 0 {
			base = formatSizes[common.PageFormatA4]
		}
	}
	if orientation == common.OrientationLandscape {
		return Size{Width: base.Height, Height: base.Width}
	}
	return base
}

// MatchFormat finds named format with given dimensions in given orientation.
func MatchFormat(width, height float64, orientation common.Orientation, tolerance float64) (common.PageFormat, bool) {
	for _, f := range namedFormats {
		s := FormatDimensions(f, Size{}, orientation)
		if math.Abs(s.Width-width) <= tolerance && math.Abs(s.Height-height) <= tolerance {
			return f, true
		}
	}
	return common.PageFormatCustom, false
}

// PageSizeMm returns document page size in millimeters.
func (d *Document) PageSizeMm() Size {
	return FormatDimensions(d.Settings.Format, d.Settings.CustomSize, d.Settings.Orientation)
}

// PageSizePx returns document page size in pixels at document resolution.
func (d *Document) PageSizePx() Size {
	s := d.PageSizeMm()
	return Size{
		Width:  MmToPx(s.Width, d.Settings.DPI),
		Height: MmToPx(s.Height, d.Settings.DPI),
	}
}
