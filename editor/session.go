// Package editor is the only place where documents change. A Session owns one
// document and applies named mutations to it: every commit works on a deep
// copy, runs layout recalculation and only then replaces current state, so
// readers never observe partially applied changes.
package editor

import (
	"errors"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"bookforge/document"
	"bookforge/layout"
)

// DefaultHistoryLimit is number of undo steps kept when limit is not set.
const DefaultHistoryLimit = 120

var (
	ErrLastPage        = errors.New("document must keep at least one page")
	ErrLastSection     = errors.New("document must keep at least one section")
	ErrLastMaster      = errors.New("document must keep at least one master")
	ErrNotFound        = errors.New("object not found")
	ErrMasterCycle     = errors.New("master inheritance would form a cycle")
	ErrFrameLocked     = errors.New("frame is locked")
	ErrNothingToUndo   = errors.New("nothing to undo")
	ErrNothingToRedo   = errors.New("nothing to redo")
	ErrNothingToImport = errors.New("nothing to import")
	ErrNotImage        = errors.New("frame is not an image")
	ErrNoImported      = errors.New("page has no imported content")
)

// View is editing position kept together with the document.
type View struct {
	SelectedPageID string   `json:"selectedPageId"`
	PageSelection  []string `json:"pageSelectionIds"`
	SpreadIndex    int      `json:"spreadIndex"`
}

func (v View) clone() View {
	v.PageSelection = slices.Clone(v.PageSelection)
	return v
}

// State is immutable result of a commit. Document and snapshot are shared
// between readers and must not be modified.
type State struct {
	Doc    *document.Document
	Layout *layout.Snapshot
	View   View
}

// mutator changes draft document and view, returning error refuses the
// mutation and leaves session untouched.
type mutator func(doc *document.Document, view *View) error

type commitOptions struct {
	// history is false for view only changes
	history bool
	// keepSpread leaves spread index as set by mutator instead of following
	// selected page
	keepSpread bool
}

// Session serializes mutations of a single document. Reads are concurrent.
type Session struct {
	mu      sync.RWMutex
	state   State
	history *history
	log     *zap.Logger
}

// New starts session on a copy of doc. Non positive limit selects
// DefaultHistoryLimit.
func New(doc *document.Document, limit int, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if doc == nil {
		doc = document.NewDefault()
	}
	s := &Session{
		history: newHistory(limit),
		log:     log.Named("editor"),
	}
	s.state = settle(document.Normalize(doc.Clone()), View{}, commitOptions{})
	return s
}

// State returns current state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Document is a shortcut for State().Doc.
func (s *Session) Document() *document.Document {
	return s.State().Doc
}

func (s *Session) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.canUndo()
}

func (s *Session) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.canRedo()
}

func (s *Session) commit(label string, opts commitOptions, fn mutator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.state.Doc.Clone()
	view := s.state.View.clone()
	if err := fn(doc, &view); err != nil {
		s.log.Debug("Mutation refused", zap.String("label", label), zap.Error(err))
		return err
	}
	if opts.history {
		doc.UpdatedAt = time.Now().UTC()
	}

	next := settle(doc, view, opts)
	if opts.history {
		s.history.push(entry{label: label, before: s.state, after: next})
	}
	s.state = next

	s.log.Debug("Committed",
		zap.String("label", label),
		zap.Int("pages", len(next.Doc.Pages)),
		zap.Int("spreads", len(next.Layout.Spreads)),
		zap.String("selected", next.View.SelectedPageID))
	return nil
}

// settle recalculates layout and brings view in line with the result.
func settle(doc *document.Document, view View, opts commitOptions) State {
	out, snap := layout.Recalculate(doc)

	if out.FindPage(view.SelectedPageID) == nil {
		view.SelectedPageID = out.Pages[0].ID
	}
	view.PageSelection = slices.DeleteFunc(view.PageSelection, func(id string) bool {
		return out.FindPage(id) == nil
	})
	if len(view.PageSelection) == 0 {
		view.PageSelection = []string{view.SelectedPageID}
	}

	if opts.keepSpread {
		view.SpreadIndex = min(max(view.SpreadIndex, 0), max(len(snap.Spreads)-1, 0))
	} else {
		view.SpreadIndex = snap.SpreadOf(view.SelectedPageID)
	}
	return State{Doc: out, Layout: snap, View: view}
}

// Undo restores state before the last tracked commit.
func (s *Session) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.history.undo()
	if !ok {
		return ErrNothingToUndo
	}
	s.state = settle(e.before.Doc, e.before.View, commitOptions{keepSpread: true})
	s.log.Debug("Undo", zap.String("label", e.label))
	return nil
}

// Redo applies again last undone commit.
func (s *Session) Redo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.history.redo()
	if !ok {
		return ErrNothingToRedo
	}
	s.state = settle(e.after.Doc, e.after.View, commitOptions{keepSpread: true})
	s.log.Debug("Redo", zap.String("label", e.label))
	return nil
}

// Select makes page current and moves view to its spread. Selection is not
// recorded in history.
func (s *Session) Select(pageIDs ...string) error {
	return s.commit("select-page", commitOptions{}, func(doc *document.Document, view *View) error {
		var ids []string
		for _, id := range pageIDs {
			if doc.FindPage(id) == nil {
				return ErrNotFound
			}
			if !slices.Contains(ids, id) {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			return ErrNotFound
		}
		view.SelectedPageID = ids[0]
		view.PageSelection = ids
		return nil
	})
}

// ShowSpread moves view to spread index, clamped to existing spreads.
func (s *Session) ShowSpread(index int) error {
	return s.commit("show-spread", commitOptions{keepSpread: true}, func(_ *document.Document, view *View) error {
		view.SpreadIndex = index
		return nil
	})
}

// History returns labels of commits which can be undone, oldest first.
func (s *Session) History() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.labels()
}
