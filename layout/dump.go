package layout

import (
	"fmt"

	"bookforge/document"
	"bookforge/utils/debug"
)

// Dump renders layout of the document as an indented tree: settings, sections
// with their pages, and spreads with page geometry.
func (s *Snapshot) Dump(doc *document.Document) string {
	tw := debug.NewTreeWriter()

	size := doc.PageSizeMm()
	tw.Line(0, "Document %q (%s)", doc.Title, doc.ID)
	tw.Field(1, "format", fmt.Sprintf("%s %s %gx%g mm @ %g dpi", doc.Settings.Format, doc.Settings.Orientation, size.Width, size.Height, doc.Settings.DPI))
	tw.Field(1, "startOnRight", s.StartOnRight)
	tw.Field(1, "spreads", doc.Settings.Spreads)
	tw.Field(1, "spreadMode", s.SpreadMode)

	m := doc.Settings.Margins
	tw.Line(1, "margins top=%g bottom=%g inside=%g outside=%g spine=%g compensation=%g bleed=%g safe=%g",
		m.Top, m.Bottom, m.Inside, m.Outside, m.Spine, m.OddEvenCompensation, doc.Settings.Bleed, doc.Settings.SafeArea)

	tw.Line(1, "Sections (%d)", len(doc.Sections))
	for i := range doc.Sections {
		sec := &doc.Sections[i]
		tw.Line(2, "%s %q style=%s startAt=%d master=%s", sec.ID, sec.Name, sec.Pagination.Style, sec.Pagination.StartAt, doc.MasterName(sec.MasterID))
		numbers := make([]string, 0, len(sec.PageIDs))
		for _, id := range sec.PageIDs {
			if p := doc.FindPage(id); p != nil {
				numbers = append(numbers, p.DisplayNumber)
			}
		}
		tw.List(3, "pages", numbers)
	}

	tw.Line(1, "Spreads (%d)", len(s.Spreads))
	for _, spread := range s.Spreads {
		tw.Line(2, "Spread %d", spread.Index)
		for _, slot := range spread.Slots {
			if slot.IsVirtualBlank() {
				tw.Line(3, "[%d] %s virtual blank", slot.Index, slot.Side)
				continue
			}
			p := doc.FindPage(slot.PageID)
			if p == nil {
				tw.Line(3, "[%d] %s missing page %s", slot.Index, slot.Side, slot.PageID)
				continue
			}
			g := Geometry(doc, p, slot.Side)
			tw.Line(3, "[%d] %s #%d %q display=%s frames=%d left=%.2fpx right=%.2fpx",
				slot.Index, slot.Side, p.AutoNumber, p.Name, p.DisplayNumber, len(p.Frames), g.Px.Left, g.Px.Right)
		}
	}
	return tw.String()
}
