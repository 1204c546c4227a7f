package editor

import (
	"fmt"
	"strings"

	"bookforge/common"
	"bookforge/document"
)

const defaultSectionPrefix = "Section "

// AddSection appends section. Empty name gives "Section N". When
// assignSelected is set selected page is moved into the new section.
func (s *Session) AddSection(name string, assignSelected bool) (string, error) {
	var id string
	err := s.commit("add-section", commitOptions{history: true}, func(doc *document.Document, view *View) error {
		if name = strings.TrimSpace(name); name == "" {
			name = fmt.Sprintf("%s%d", defaultSectionPrefix, len(doc.Sections)+1)
		}
		section := document.NewSection(name, doc.Masters[0].ID)
		doc.Sections = append(doc.Sections, section)
		id = section.ID
		if assignSelected {
			if p := doc.FindPage(view.SelectedPageID); p != nil {
				p.SectionID = section.ID
			}
		}
		return nil
	})
	return id, err
}

// DeleteSection removes section moving its pages into the first remaining
// one. Sections with default names are renumbered.
func (s *Session) DeleteSection(id string) error {
	return s.commit("delete-section", commitOptions{history: true}, func(doc *document.Document, _ *View) error {
		idx := doc.SectionIndex(id)
		if idx < 0 {
			return fmt.Errorf("%w: section %s", ErrNotFound, id)
		}
		if len(doc.Sections) <= 1 {
			return ErrLastSection
		}
		doc.Sections = append(doc.Sections[:idx], doc.Sections[idx+1:]...)
		fallback := doc.Sections[0].ID
		for i := range doc.Pages {
			if doc.Pages[i].SectionID == id {
				doc.Pages[i].SectionID = fallback
			}
		}
		for i := range doc.Sections {
			sec := &doc.Sections[i]
			if sec.Name == "" || strings.HasPrefix(sec.Name, defaultSectionPrefix) {
				sec.Name = fmt.Sprintf("%s%d", defaultSectionPrefix, i+1)
			}
		}
		return nil
	})
}

// AssignPage moves page into section.
func (s *Session) AssignPage(pageID, sectionID string) error {
	return s.commit("assign-page-to-section", commitOptions{history: true}, func(doc *document.Document, _ *View) error {
		p, sec := doc.FindPage(pageID), doc.FindSection(sectionID)
		if p == nil || sec == nil {
			return fmt.Errorf("%w: page %s or section %s", ErrNotFound, pageID, sectionID)
		}
		p.SectionID = sec.ID
		return nil
	})
}

// SetSectionPagination changes numbering of section, start is at least 1.
func (s *Session) SetSectionPagination(id string, style common.PaginationStyle, startAt int, independent bool) error {
	if !style.IsValid() {
		return fmt.Errorf("%s is %w", style, common.ErrInvalidPaginationStyle)
	}
	return s.updateSection("section-pagination", id, func(sec *document.Section) {
		sec.Pagination = document.Pagination{Style: style, StartAt: max(startAt, 1), Independent: independent}
	})
}

func (s *Session) SetSectionFlags(id string, startOnOdd, bookmark, toc bool) error {
	return s.updateSection("section-flags", id, func(sec *document.Section) {
		sec.StartOnOdd, sec.Bookmark, sec.TOC = startOnOdd, bookmark, toc
	})
}

// RenameSection sets section name, blank names are ignored.
func (s *Session) RenameSection(id, name string) error {
	name = strings.TrimSpace(name)
	return s.updateSection("rename-section", id, func(sec *document.Section) {
		if name != "" {
			sec.Name = name
		}
	})
}

func (s *Session) updateSection(label, id string, fn func(*document.Section)) error {
	return s.commit(label, commitOptions{history: true}, func(doc *document.Document, _ *View) error {
		sec := doc.FindSection(id)
		if sec == nil {
			return fmt.Errorf("%w: section %s", ErrNotFound, id)
		}
		fn(sec)
		return nil
	})
}
