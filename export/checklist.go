package export

import (
	"fmt"
	"strings"

	"bookforge/common"
	"bookforge/document"
	"bookforge/layout"
)

// Fix names automatic correction available for a check.
type Fix string

const (
	FixNone        Fix = ""
	FixBleed       Fix = "bleed"
	FixShowMargins Fix = "show-margins"
)

// DefaultBleed is applied by FixBleed, in millimeters.
const DefaultBleed = 3

// Check is single checklist entry.
type Check struct {
	Category   string             `json:"category"`
	Status     common.CheckStatus `json:"status"`
	Label      string             `json:"label"`
	Suggestion string             `json:"suggestion,omitempty"`
	PageID     string             `json:"pageId,omitempty"`
	Fix        Fix                `json:"fix,omitempty"`
}

func check(category string, status common.CheckStatus, label string) Check {
	return Check{Category: category, Status: status, Label: label}
}

// Checklist runs pre-flight checks over recalculated document. Snapshot must
// be the one produced together with doc.
func Checklist(doc *document.Document, snap *layout.Snapshot, opts Options) []Check {
	opts = opts.Effective()
	var checks []Check

	// geometry
	if doc.Settings.Bleed > 0 {
		checks = append(checks, check("Geometry", common.CheckStatusOk, "Bleed configured"))
	} else {
		c := check("Geometry", common.CheckStatusError, "Bleed missing")
		c.Fix = FixBleed
		checks = append(checks, c)
	}
	if doc.Settings.Margins.Visible {
		checks = append(checks, check("Geometry", common.CheckStatusOk, "Margin overlays visible"))
	} else {
		c := check("Geometry", common.CheckStatusWarning, "Margin overlays hidden")
		c.Fix = FixShowMargins
		checks = append(checks, c)
	}
	empty := 0
	for i := range doc.Pages {
		p := &doc.Pages[i]
		if len(p.Frames) > 0 {
			continue
		}
		empty++
		c := check("Geometry", common.CheckStatusWarning, fmt.Sprintf("Empty page detected (%s)", p.Name))
		c.PageID, c.Suggestion = p.ID, "Add text or image frame"
		checks = append(checks, c)
	}
	if empty == 0 {
		checks = append(checks, check("Geometry", common.CheckStatusOk, "No unintended empty pages"))
	}

	checks = append(checks, imageChecks(doc, opts.MinImageDPI)...)

	// colours
	rgb := false
	for _, s := range doc.Styles.Character {
		if strings.HasPrefix(s.Color, "#") {
			rgb = true
			break
		}
	}
	if rgb && opts.ColorMode == common.ColorModeCMYK {
		c := check("Colors", common.CheckStatusWarning, "Character styles use RGB colours")
		c.Suggestion = "Plan CMYK conversion for print export"
		checks = append(checks, c)
	} else {
		checks = append(checks, check("Colors", common.CheckStatusOk, "Neutral palette"))
	}
	if opts.Profile == common.ExportProfilePrint {
		c := check("Colors", common.CheckStatusWarning, "ICC profile not defined")
		c.Suggestion = "Set press ICC profile before printing"
		checks = append(checks, c)
	}

	// typography
	missingGlyph := false
	for i := range doc.Pages {
		for _, f := range doc.Pages[i].Frames {
			if strings.ContainsRune(f.Content, '�') {
				missingGlyph = true
			}
		}
	}
	if missingGlyph {
		checks = append(checks, check("Typography", common.CheckStatusError, "Missing glyphs detected"))
	} else {
		checks = append(checks, check("Typography", common.CheckStatusOk, "Glyphs valid"))
	}
	if !opts.EmbedFonts {
		c := check("Typography", common.CheckStatusWarning, "Fonts are not embedded")
		c.Suggestion = "Enable full font embedding"
		checks = append(checks, c)
	}

	checks = append(checks, paginationChecks(doc, snap)...)

	// starting on the right implies spreads even when the flag is off
	if snap.SpreadMode {
		checks = append(checks, check("Export", common.CheckStatusOk, "Spreads enabled"))
	} else {
		c := check("Export", common.CheckStatusWarning, "Export in single pages")
		c.Suggestion = "Enable spreads for printer proof"
		checks = append(checks, c)
	}
	return checks
}

func imageChecks(doc *document.Document, minDPI float64) []Check {
	var checks []Check
	images := 0
	for i := range doc.Pages {
		p := &doc.Pages[i]
		for _, f := range p.Frames {
			if f.Type != common.FrameTypeImage {
				continue
			}
			images++
			dpi := f.DPI
			if dpi <= 0 {
				dpi = DefaultMinImageDPI
			}
			if dpi < minDPI {
				c := check("Images", common.CheckStatusWarning, fmt.Sprintf("Resolution %.0f DPI (< %.0f)", dpi, minDPI))
				c.PageID, c.Suggestion = p.ID, "Replace image with high resolution version"
				checks = append(checks, c)
			}
			if f.Missing {
				c := check("Images", common.CheckStatusError, fmt.Sprintf("Missing image on %s", p.Name))
				c.PageID, c.Suggestion = p.ID, "Relink source file"
				checks = append(checks, c)
			}
		}
	}
	if images == 0 {
		checks = append(checks, check("Images", common.CheckStatusOk, "No image frames to check"))
	}
	return checks
}

// paginationChecks reports empty sections and sections which must start on
// an odd page but do not. In spread mode odd pages are right hand pages.
func paginationChecks(doc *document.Document, snap *layout.Snapshot) []Check {
	var checks []Check
	for _, sec := range doc.Sections {
		if len(sec.PageIDs) == 0 {
			checks = append(checks, check("Pagination", common.CheckStatusWarning, "Section without pages: "+sec.Name))
			continue
		}
		if !sec.StartOnOdd {
			continue
		}
		first := sec.PageIDs[0]
		even := false
		if slot, ok := snap.SlotFor(first); ok && snap.SpreadMode {
			even = slot.Side != common.SideRight
		} else if p := doc.FindPage(first); p != nil {
			even = p.AutoNumber%2 == 0
		}
		if even {
			c := check("Pagination", common.CheckStatusWarning, sec.Name+" should start on odd page")
			c.PageID, c.Suggestion = first, "Insert blank page before the section"
			checks = append(checks, c)
		}
	}
	return checks
}

// Counts returns number of warnings and errors.
func Counts(checks []Check) (warnings, errors int) {
	for _, c := range checks {
		switch c.Status {
		case common.CheckStatusWarning:
			warnings++
		case common.CheckStatusError:
			errors++
		}
	}
	return warnings, errors
}

// CanExport is false when blocking is on and checklist has errors.
func CanExport(checks []Check, opts Options) bool {
	if !opts.BlockOnErrors {
		return true
	}
	_, errs := Counts(checks)
	return errs == 0
}
