package editor

import (
	"fmt"
	"strconv"
	"strings"

	"bookforge/document"
)

// AddMaster appends master inheriting from the last one. Empty name gives
// "Master B", "Master C" and so on, after "Master Z" letters start over with a
// number: "Master A2".
func (s *Session) AddMaster(name string) (string, error) {
	var id string
	err := s.commit("add-master", commitOptions{history: true}, func(doc *document.Document, _ *View) error {
		if name = strings.TrimSpace(name); name == "" {
			name = masterName(doc.Masters)
		}
		m := document.NewMaster(name, doc.Masters[len(doc.Masters)-1].ID)
		doc.Masters = append(doc.Masters, m)
		id = m.ID
		return nil
	})
	return id, err
}

// masterName returns first free default name starting at the position of the
// next master.
func masterName(masters []document.Master) string {
	taken := make(map[string]bool, len(masters))
	for _, m := range masters {
		taken[strings.ToLower(m.Name)] = true
	}
	for n := len(masters); ; n++ {
		name := fmt.Sprintf("Master %c", 'A'+n%26)
		if round := n / 26; round > 0 {
			name += strconv.Itoa(round + 1)
		}
		if !taken[strings.ToLower(name)] {
			return name
		}
	}
}

// RemoveMaster deletes master. Pages, sections and child masters which
// referenced it switch to the first remaining master, children which would
// end up in a loop become roots.
func (s *Session) RemoveMaster(id string) error {
	return s.commit("remove-master", commitOptions{history: true}, func(doc *document.Document, _ *View) error {
		idx := doc.MasterIndex(id)
		if idx < 0 {
			return fmt.Errorf("%w: master %s", ErrNotFound, id)
		}
		if len(doc.Masters) <= 1 {
			return ErrLastMaster
		}
		doc.Masters = append(doc.Masters[:idx], doc.Masters[idx+1:]...)
		fallback := doc.Masters[0].ID

		for i := range doc.Pages {
			if doc.Pages[i].MasterID == id {
				doc.Pages[i].MasterID = fallback
			}
		}
		for i := range doc.Sections {
			if doc.Sections[i].MasterID == id {
				doc.Sections[i].MasterID = fallback
			}
		}
		for i := range doc.Masters {
			m := &doc.Masters[i]
			if m.ParentID != id {
				continue
			}
			m.ParentID = fallback
			if doc.CreatesCycle(m.ID, fallback) {
				m.ParentID = ""
			}
		}
		return nil
	})
}

// SetMasterParent changes inheritance, empty parent makes master a root.
func (s *Session) SetMasterParent(id, parentID string) error {
	return s.commit("master-parent", commitOptions{history: true}, func(doc *document.Document, _ *View) error {
		m := doc.FindMaster(id)
		if m == nil || parentID != "" && doc.FindMaster(parentID) == nil {
			return fmt.Errorf("%w: master %s or parent %s", ErrNotFound, id, parentID)
		}
		if doc.CreatesCycle(id, parentID) {
			return fmt.Errorf("%w: %s -> %s", ErrMasterCycle, id, parentID)
		}
		m.ParentID = parentID
		return nil
	})
}

// MasterPatch lists master fields to change, nil fields are kept.
type MasterPatch struct {
	Name          *string
	Header        *string
	Footer        *string
	Background    *string
	Logo          *string
	LockedColumns *bool
	FixedGuides   *bool
}

func (s *Session) UpdateMaster(id string, patch MasterPatch) error {
	return s.commit("update-master", commitOptions{history: true}, func(doc *document.Document, _ *View) error {
		m := doc.FindMaster(id)
		if m == nil {
			return fmt.Errorf("%w: master %s", ErrNotFound, id)
		}
		if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
			m.Name = strings.TrimSpace(*patch.Name)
		}
		set(&m.Header, patch.Header)
		set(&m.Footer, patch.Footer)
		set(&m.Background, patch.Background)
		set(&m.Logo, patch.Logo)
		set(&m.LockedColumns, patch.LockedColumns)
		set(&m.FixedGuides, patch.FixedGuides)
		return nil
	})
}

// ApplyMasterToPage assigns master to page, selected page when pageID is
// empty.
func (s *Session) ApplyMasterToPage(masterID, pageID string) error {
	return s.commit("apply-master-page", commitOptions{history: true}, func(doc *document.Document, view *View) error {
		if pageID == "" {
			pageID = view.SelectedPageID
		}
		p := doc.FindPage(pageID)
		if p == nil || doc.FindMaster(masterID) == nil {
			return fmt.Errorf("%w: master %s or page %s", ErrNotFound, masterID, pageID)
		}
		p.MasterID = masterID
		return nil
	})
}

// ApplyMasterToSection assigns master to section and all its pages. Empty
// sectionID means section of selected page.
func (s *Session) ApplyMasterToSection(masterID, sectionID string) error {
	return s.commit("apply-master-section", commitOptions{history: true}, func(doc *document.Document, view *View) error {
		if sectionID == "" {
			if p := doc.FindPage(view.SelectedPageID); p != nil {
				sectionID = p.SectionID
			}
		}
		sec := doc.FindSection(sectionID)
		if sec == nil || doc.FindMaster(masterID) == nil {
			return fmt.Errorf("%w: master %s or section %s", ErrNotFound, masterID, sectionID)
		}
		sec.MasterID = masterID
		for _, p := range doc.SectionPages(sec.ID) {
			p.MasterID = masterID
		}
		return nil
	})
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
