package layout

import (
	"encoding/json"

	"bookforge/common"
	"bookforge/document"
)

// VirtualBlankID identifies virtual front blank in serialized flows. It never
// appears in document page list.
const VirtualBlankID = "virtual-front-blank"

// Slot is a position in the page flow. It holds either a real page (Kind is
// page, PageID set) or the virtual front blank which pushes first page to the
// right hand side.
type Slot struct {
	Kind        common.SlotKind `json:"kind"`
	Index       int             `json:"slotIndex"`
	Side        common.Side     `json:"side"`
	SpreadIndex int             `json:"spreadIndex"`
	PageID      string          `json:"-"`
}

func (s Slot) IsVirtualBlank() bool {
	return s.Kind == common.SlotKindVirtualBlank
}

// ID returns page id of the slot or VirtualBlankID.
func (s Slot) ID() string {
	if s.IsVirtualBlank() {
		return VirtualBlankID
	}
	return s.PageID
}

func (s Slot) MarshalJSON() ([]byte, error) {
	type plain Slot
	return json.Marshal(struct {
		plain
		PageID string `json:"pageId"`
	}{plain(s), s.ID()})
}

// Spread is one or two slots displayed or printed together.
type Spread struct {
	Index int    `json:"index"`
	Slots []Slot `json:"slots"`
}

// FlowOptions alter flow construction. Nil fields take values from document
// settings.
type FlowOptions struct {
	IncludeVirtualFrontBlank *bool
	ForceSpreadMode          *bool
}

// Bool is a helper to fill FlowOptions.
func Bool(v bool) *bool {
	return &v
}

// SpreadModeEnabled reports whether pages are paired into facing spreads.
// Starting on the right always implies spreads.
func SpreadModeEnabled(s *document.Settings, opts FlowOptions) bool {
	if opts.ForceSpreadMode != nil {
		return *opts.ForceSpreadMode
	}
	return s.StartOnRight || s.Spreads
}

// BuildFlow returns ordered slots for all pages of the document. In spread
// mode sides alternate left/right starting with left at slot 0, otherwise
// every slot is single and forms its own spread.
func BuildFlow(doc *document.Document, opts FlowOptions) []Slot {
	spreadMode := SpreadModeEnabled(&doc.Settings, opts)
	includeBlank := spreadMode && doc.Settings.StartOnRight
	if opts.IncludeVirtualFrontBlank != nil {
		includeBlank = *opts.IncludeVirtualFrontBlank
	}

	slots := make([]Slot, 0, len(doc.Pages)+1)
	if includeBlank {
		slots = append(slots, Slot{
			Kind: common.SlotKindVirtualBlank,
			Side: common.SideLeft,
		})
	}
	for i := range doc.Pages {
		idx := len(slots)
		slot := Slot{
			Kind:        common.SlotKindPage,
			Index:       idx,
			Side:        common.SideSingle,
			SpreadIndex: idx,
			PageID:      doc.Pages[i].ID,
		}
		if spreadMode {
			slot.Side = common.SideLeft
			if idx%2 == 1 {
				slot.Side = common.SideRight
			}
			slot.SpreadIndex = idx / 2
		}
		slots = append(slots, slot)
	}
	return slots
}

// BuildSpreads groups flow into spreads: pairs in spread mode, single slots
// otherwise. Last spread may hold one slot.
func BuildSpreads(doc *document.Document, opts FlowOptions) []Spread {
	spreadMode := SpreadModeEnabled(&doc.Settings, opts)
	opts.ForceSpreadMode = &spreadMode
	flow := BuildFlow(doc, opts)

	if !spreadMode {
		spreads := make([]Spread, len(flow))
		for i, slot := range flow {
			spreads[i] = Spread{Index: i, Slots: []Slot{slot}}
		}
		return spreads
	}

	spreads := make([]Spread, 0, (len(flow)+1)/2)
	for i := 0; i < len(flow); i += 2 {
		idx := len(spreads)
		group := make([]Slot, 0, 2)
		for _, slot := range flow[i:min(i+2, len(flow))] {
			slot.SpreadIndex = idx
			group = append(group, slot)
		}
		spreads = append(spreads, Spread{Index: idx, Slots: group})
	}
	return spreads
}

// PageSlotInfo finds slot of the page in the flow. False is returned for
// pages which are not in the document.
func PageSlotInfo(doc *document.Document, pageID string, opts FlowOptions) (Slot, bool) {
	for _, slot := range BuildFlow(doc, opts) {
		if !slot.IsVirtualBlank() && slot.PageID == pageID {
			return slot, true
		}
	}
	return Slot{}, false
}

// PrintableSequence returns flow for export. Spread mode is forced to the
// requested value, virtual blank is present whenever book starts on the right.
func PrintableSequence(doc *document.Document, spreads bool) []Slot {
	return BuildFlow(doc, FlowOptions{
		ForceSpreadMode:          Bool(spreads),
		IncludeVirtualFrontBlank: Bool(doc.Settings.StartOnRight),
	})
}
