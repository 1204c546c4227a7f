// Package common keeps enumerations shared between document model, layout
// engine, collaborators and configuration. Keeping them here avoids import
// cycles between config and the rest of the program.
package common

//go:generate go tool go-enum --marshal --names

// Numbering style of a section.
// ENUM(arabic, roman)
type PaginationStyle string

// Position of a slot inside a spread. Single is used when spread mode is off.
// ENUM(left, right, single)
type Side string

// BindingEdge returns physical edge nearest to the spine for a page placed on
// side s. Single pages are bound on the left.
func (s Side) BindingEdge() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

// Named page format.
// ENUM(A4, A5, Letter, custom)
type PageFormat string

// ENUM(portrait, landscape)
type Orientation string

// Named margin overlay visual preset.
// ENUM(edition, printPreview, debug)
type VisualPreset string

// In simple mode every margin type is drawn with the "all" colour.
// ENUM(simple, advanced)
type VisualMode string

// ENUM(solid, dashed, dotted)
type LineStyle string

// Keys used by margin overlay colours and visibility switches.
// ENUM(all, top, bottom, inside, outside, bleed, safe)
type MarginType string

// ENUM(text, image, table)
type FrameType string

// Kind of flow slot. Virtual blank is never stored in the document.
// ENUM(page, virtual-blank)
type SlotKind string

// Export profile, digital forces screen friendly options.
// ENUM(print, digital)
type ExportProfile string

// ENUM(CMYK, RGB)
type ColorMode string

// ENUM(none, medium, high)
type Compression string

// Severity of an export checklist entry.
// ENUM(ok, warning, error)
type CheckStatus string

// Detected kind of import source.
// ENUM(text, markdown, html, docx, image, svg, pdf)
type SourceKind string
