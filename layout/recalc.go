package layout

import (
	"bookforge/common"
	"bookforge/document"
)

// Snapshot is derived flow of a document at the moment of recalculation. It
// is a pure function of page order and settings and carries no timestamps,
// so recalculating unchanged document gives deep equal snapshot.
type Snapshot struct {
	StartOnRight bool     `json:"startOnRight"`
	SpreadMode   bool     `json:"spreadMode"`
	Flow         []Slot   `json:"flow"`
	Spreads      []Spread `json:"spreads"`
}

// Recalculate is the single entry point refreshing derived state after any
// structural change. Source document is not modified: returned copy has
// pagination applied, frames clamped into page, binding side, binding edge
// and spread index set for every page. Settings are not touched, spreads and
// start on right flags stay independent.
func Recalculate(doc *document.Document) (*document.Document, *Snapshot) {
	out := doc.Clone()

	Paginate(out)

	for i := range out.Pages {
		for j := range out.Pages[i].Frames {
			ClampFrame(&out.Pages[i].Frames[j])
		}
	}

	opts := FlowOptions{IncludeVirtualFrontBlank: Bool(out.Settings.StartOnRight)}
	flow := BuildFlow(out, opts)

	slots := make(map[string]Slot, len(flow))
	for _, slot := range flow {
		if !slot.IsVirtualBlank() {
			slots[slot.PageID] = slot
		}
	}
	for i := range out.Pages {
		p := &out.Pages[i]
		slot, ok := slots[p.ID]
		if !ok {
			p.BindingSide, p.BindingEdge, p.SpreadIndex = common.SideSingle, common.SideLeft, 0
			continue
		}
		p.BindingSide = slot.Side
		p.BindingEdge = slot.Side.BindingEdge()
		p.SpreadIndex = slot.SpreadIndex
	}

	return out, &Snapshot{
		StartOnRight: out.Settings.StartOnRight,
		SpreadMode:   SpreadModeEnabled(&out.Settings, opts),
		Flow:         flow,
		Spreads:      BuildSpreads(out, opts),
	}
}

// SlotFor returns flow slot of the page.
func (s *Snapshot) SlotFor(pageID string) (Slot, bool) {
	for _, slot := range s.Flow {
		if !slot.IsVirtualBlank() && slot.PageID == pageID {
			return slot, true
		}
	}
	return Slot{}, false
}

// SpreadOf returns index of spread holding the page, 0 when page is unknown.
func (s *Snapshot) SpreadOf(pageID string) int {
	if slot, ok := s.SlotFor(pageID); ok {
		return slot.SpreadIndex
	}
	return 0
}
