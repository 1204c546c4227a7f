package editor

import (
	"fmt"
	"slices"

	"bookforge/document"
)

// AddPage inserts new page after page with id after, after selected page when
// after is empty, or at the end when neither exists. New page inherits
// section and master of its predecessor and becomes selected.
func (s *Session) AddPage(after string) (string, error) {
	var id string
	err := s.commit("add-page", commitOptions{history: true}, func(doc *document.Document, view *View) error {
		if after == "" {
			after = view.SelectedPageID
		}
		at := len(doc.Pages)
		sectionID, masterID := doc.Sections[0].ID, ""
		if idx := doc.PageIndex(after); idx >= 0 {
			at = idx + 1
			sectionID, masterID = doc.Pages[idx].SectionID, doc.Pages[idx].MasterID
		}

		page := document.NewPage(sectionID, masterID, len(doc.Pages)+1, nil)
		doc.Pages = slices.Insert(doc.Pages, at, page)
		id = page.ID
		view.SelectedPageID, view.PageSelection = page.ID, []string{page.ID}
		return nil
	})
	return id, err
}

func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// existingPages filters ids down to pages present in the document.
func existingPages(doc *document.Document, ids []string) []string {
	return slices.DeleteFunc(uniqueIDs(ids), func(id string) bool {
		return doc.FindPage(id) == nil
	})
}

// CanDelete reports whether deleting pages would leave document with at least
// one page. Empty ids means current selection.
func (s *Session) CanDelete(ids ...string) bool {
	st := s.State()
	if len(ids) == 0 {
		ids = st.View.PageSelection
	}
	existing := existingPages(st.Doc, ids)
	return len(existing) > 0 && len(st.Doc.Pages)-len(existing) >= 1
}

// DeletePages removes pages, current selection when ids is empty. Selected
// page is kept when it survives, otherwise page which took place of the first
// removed one is selected.
func (s *Session) DeletePages(ids ...string) error {
	return s.commit("delete-pages", commitOptions{history: true}, func(doc *document.Document, view *View) error {
		if len(ids) == 0 {
			ids = view.PageSelection
		}
		existing := existingPages(doc, ids)
		if len(existing) == 0 {
			return fmt.Errorf("%w: pages %v", ErrNotFound, ids)
		}
		if len(doc.Pages)-len(existing) < 1 {
			return ErrLastPage
		}

		first := len(doc.Pages)
		for _, id := range existing {
			first = min(first, doc.PageIndex(id))
		}
		doc.Pages = slices.DeleteFunc(doc.Pages, func(p document.Page) bool {
			return slices.Contains(existing, p.ID)
		})

		if slices.Contains(existing, view.SelectedPageID) {
			view.SelectedPageID = doc.Pages[min(first, len(doc.Pages)-1)].ID
		}
		view.PageSelection = []string{view.SelectedPageID}
		return nil
	})
}

// MovePage moves page to position target of the page list with page removed,
// target is clamped into the list.
func (s *Session) MovePage(id string, target int) error {
	return s.commit("reorder-page", commitOptions{history: true}, func(doc *document.Document, view *View) error {
		from := doc.PageIndex(id)
		if from < 0 {
			return fmt.Errorf("%w: page %s", ErrNotFound, id)
		}
		page := doc.Pages[from]
		doc.Pages = slices.Delete(doc.Pages, from, from+1)
		target = min(max(target, 0), len(doc.Pages))
		doc.Pages = slices.Insert(doc.Pages, target, page)
		view.SelectedPageID = id
		return nil
	})
}
