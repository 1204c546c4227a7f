package editor

import (
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"

	"bookforge/document"
)

func newTestSession(t *testing.T, limit int) *Session {
	t.Helper()
	return New(document.NewDefault(), limit, zaptest.NewLogger(t))
}

func pageIDs(doc *document.Document) []string {
	ids := make([]string, len(doc.Pages))
	for i, p := range doc.Pages {
		ids[i] = p.ID
	}
	return ids
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t, 0)
	st := s.State()

	if st.View.SelectedPageID != st.Doc.Pages[0].ID {
		t.Errorf("selected = %q, want first page", st.View.SelectedPageID)
	}
	if len(st.View.PageSelection) != 1 || st.View.PageSelection[0] != st.View.SelectedPageID {
		t.Errorf("selection = %v", st.View.PageSelection)
	}
	if st.View.SpreadIndex != 0 {
		t.Errorf("spread index = %d", st.View.SpreadIndex)
	}
	if st.Layout == nil || len(st.Layout.Spreads) != 2 {
		t.Fatalf("expected 2 spreads for 4 pages, got %+v", st.Layout)
	}
	if s.CanUndo() || s.CanRedo() {
		t.Error("fresh session must have empty history")
	}
	if st.Doc.Pages[1].AutoNumber != 2 || st.Doc.Pages[1].DisplayNumber != "2" {
		t.Errorf("pagination not applied: %+v", st.Doc.Pages[1])
	}
}

func TestNewSessionNilDocument(t *testing.T) {
	s := New(nil, 0, nil)
	if len(s.Document().Pages) == 0 {
		t.Fatal("nil document must be replaced by default one")
	}
}

func TestUndoRedo(t *testing.T) {
	s := newTestSession(t, 0)

	id, err := s.AddPage("")
	if err != nil {
		t.Fatalf("AddPage() error: %v", err)
	}
	if got := len(s.Document().Pages); got != 5 {
		t.Fatalf("pages = %d, want 5", got)
	}
	if !s.CanUndo() {
		t.Fatal("AddPage should be undoable")
	}

	if err := s.Undo(); err != nil {
		t.Fatalf("Undo() error: %v", err)
	}
	if got := len(s.Document().Pages); got != 4 {
		t.Errorf("pages after undo = %d, want 4", got)
	}
	if s.Document().FindPage(id) != nil {
		t.Error("added page still present after undo")
	}
	if !s.CanRedo() {
		t.Fatal("redo must be available after undo")
	}

	if err := s.Redo(); err != nil {
		t.Fatalf("Redo() error: %v", err)
	}
	if s.Document().FindPage(id) == nil {
		t.Error("redo did not restore the page")
	}

	// new commit drops redo stack
	if err := s.Undo(); err != nil {
		t.Fatalf("Undo() error: %v", err)
	}
	if _, err := s.AddSection("", false); err != nil {
		t.Fatalf("AddSection() error: %v", err)
	}
	if s.CanRedo() {
		t.Error("redo must be cleared by new commit")
	}
	if err := s.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo() error = %v, want ErrNothingToRedo", err)
	}
}

func TestHistoryLimit(t *testing.T) {
	s := newTestSession(t, 3)
	for range 5 {
		if _, err := s.AddPage(""); err != nil {
			t.Fatalf("AddPage() error: %v", err)
		}
	}
	if got := s.History(); len(got) != 3 || got[0] != "add-page" {
		t.Fatalf("History() = %v", got)
	}
	for range 3 {
		if err := s.Undo(); err != nil {
			t.Fatalf("Undo() error: %v", err)
		}
	}
	if err := s.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo() error = %v, want ErrNothingToUndo", err)
	}
	if got := len(s.Document().Pages); got != 6 {
		t.Errorf("pages = %d, want 6 (two adds fell out of history)", got)
	}
}

func TestRefusedMutation(t *testing.T) {
	s := newTestSession(t, 0)
	before := s.State()

	if err := s.DeletePages("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("DeletePages() error = %v, want ErrNotFound", err)
	}
	after := s.State()
	if after.Doc != before.Doc || s.CanUndo() {
		t.Error("refused mutation must leave state and history untouched")
	}
}

func TestStateIsImmutable(t *testing.T) {
	s := newTestSession(t, 0)
	old := s.State()
	oldIDs := pageIDs(old.Doc)

	if _, err := s.AddPage(""); err != nil {
		t.Fatalf("AddPage() error: %v", err)
	}
	if len(old.Doc.Pages) != 4 || len(old.Layout.Flow) != 4 {
		t.Error("commit changed previously returned state")
	}
	for i, id := range pageIDs(old.Doc) {
		if id != oldIDs[i] {
			t.Errorf("page %d changed: %s != %s", i, id, oldIDs[i])
		}
	}
}

func TestSelectAndShowSpread(t *testing.T) {
	s := newTestSession(t, 0)
	ids := pageIDs(s.Document())

	if err := s.Select(ids[2], ids[3], ids[2]); err != nil {
		t.Fatalf("Select() error: %v", err)
	}
	st := s.State()
	if st.View.SelectedPageID != ids[2] || len(st.View.PageSelection) != 2 {
		t.Errorf("view = %+v", st.View)
	}
	if st.View.SpreadIndex != 1 {
		t.Errorf("spread = %d, want 1", st.View.SpreadIndex)
	}
	if s.CanUndo() {
		t.Error("selection must not be recorded in history")
	}

	if err := s.Select("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Select(missing) error = %v", err)
	}

	if err := s.ShowSpread(10); err != nil {
		t.Fatalf("ShowSpread() error: %v", err)
	}
	if got := s.State().View.SpreadIndex; got != 1 {
		t.Errorf("spread = %d, want clamped 1", got)
	}
	if err := s.ShowSpread(0); err != nil {
		t.Fatalf("ShowSpread() error: %v", err)
	}
	if got := s.State().View; got.SpreadIndex != 0 || got.SelectedPageID != ids[2] {
		t.Errorf("ShowSpread must only move the view: %+v", got)
	}
}

func TestStartOnRightFollowsSelection(t *testing.T) {
	s := newTestSession(t, 0)
	on := true
	if err := s.UpdateSettings(SettingsPatch{StartOnRight: &on}); err != nil {
		t.Fatalf("UpdateSettings() error: %v", err)
	}
	st := s.State()
	if !st.Layout.Flow[0].IsVirtualBlank() {
		t.Fatal("flow must start with virtual blank")
	}
	if len(st.Layout.Spreads) != 3 {
		t.Errorf("spreads = %d, want 3", len(st.Layout.Spreads))
	}

	ids := pageIDs(st.Doc)
	if err := s.Select(ids[3]); err != nil {
		t.Fatalf("Select() error: %v", err)
	}
	if got := s.State().View.SpreadIndex; got != 2 {
		t.Errorf("spread of last page = %d, want 2", got)
	}
}
