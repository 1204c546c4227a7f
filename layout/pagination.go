// Package layout derives everything about a book which depends on page order
// and book settings: page numbering, flow of pages into spreads, page
// relative margin geometry with overlay drawing model, and frame geometry.
//
// Functions here never perform I/O and never fail on a normalized document.
// Recalculate is the only entry point which refreshes derived page fields.
package layout

import (
	"fmt"
	"strconv"
	"strings"

	"bookforge/common"
	"bookforge/document"
)

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

// Romanize returns lowercase roman numeral for n. Values below 1 are
// treated as 1.
func Romanize(n int) string {
	n = max(n, 1)
	var b strings.Builder
	for _, r := range romanTable {
		for n >= r.value {
			b.WriteString(r.symbol)
			n -= r.value
		}
	}
	return b.String()
}

// FormatNumber renders page counter according to section pagination style.
func FormatNumber(style common.PaginationStyle, n int) string {
	if style == common.PaginationStyleRoman {
		return Romanize(n)
	}
	return strconv.Itoa(n)
}

// Paginate recomputes page positions, section membership and display numbers
// of doc in place. Pages referencing missing sections are moved to the first
// section. Every section restarts its counter at its own StartAt.
//
// Document without sections is not valid and Paginate panics on it.
func Paginate(doc *document.Document) {
	if len(doc.Sections) == 0 {
		panic("layout: document has no sections")
	}

	known := make(map[string]int, len(doc.Sections))
	for i := range doc.Sections {
		known[doc.Sections[i].ID] = i
	}

	members := make([][]int, len(doc.Sections))
	for i := range doc.Pages {
		p := &doc.Pages[i]
		p.Index = i
		p.AutoNumber = i + 1
		p.Name = fmt.Sprintf("Page %d", i+1)
		si, ok := known[p.SectionID]
		if !ok {
			p.SectionID = doc.Sections[0].ID
			si = 0
		}
		members[si] = append(members[si], i)
	}

	for si := range doc.Sections {
		s := &doc.Sections[si]
		s.PageIDs = make([]string, 0, len(members[si]))
		counter := max(s.Pagination.StartAt, 1)
		for _, pi := range members[si] {
			p := &doc.Pages[pi]
			s.PageIDs = append(s.PageIDs, p.ID)
			p.DisplayNumber = FormatNumber(s.Pagination.Style, counter)
			counter++
		}
	}
}
