package editor

// entry keeps complete states around a tracked commit. States are immutable
// so keeping references is enough.
type entry struct {
	label  string
	before State
	after  State
}

// history is bounded undo stack with redo stack, new entry clears redo.
type history struct {
	limit  int
	done   []entry
	undone []entry
}

func newHistory(limit int) *history {
	return &history{limit: limit}
}

func (h *history) push(e entry) {
	h.done = append(h.done, e)
	if len(h.done) > h.limit {
		h.done = h.done[len(h.done)-h.limit:]
	}
	h.undone = nil
}

func (h *history) undo() (entry, bool) {
	if len(h.done) == 0 {
		return entry{}, false
	}
	e := h.done[len(h.done)-1]
	h.done = h.done[:len(h.done)-1]
	h.undone = append(h.undone, e)
	return e, true
}

func (h *history) redo() (entry, bool) {
	if len(h.undone) == 0 {
		return entry{}, false
	}
	e := h.undone[len(h.undone)-1]
	h.undone = h.undone[:len(h.undone)-1]
	h.done = append(h.done, e)
	return e, true
}

func (h *history) canUndo() bool { return len(h.done) > 0 }
func (h *history) canRedo() bool { return len(h.undone) > 0 }

// labels returns labels of undoable commits, oldest first.
func (h *history) labels() []string {
	out := make([]string, len(h.done))
	for i, e := range h.done {
		out[i] = e.label
	}
	return out
}
