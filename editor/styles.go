package editor

import (
	"fmt"

	"bookforge/css"
	"bookforge/document"
)

// ApplyStylesheet merges stylesheet rules into book styles, see css.Apply.
// Returns number of rules applied, stylesheet without usable rules is
// refused with ErrNothingToImport.
func (s *Session) ApplyStylesheet(sheet *css.Stylesheet) (int, error) {
	var applied int
	err := s.commit("styles-import", commitOptions{history: true, keepSpread: true}, func(doc *document.Document, _ *View) error {
		if applied = css.Apply(&doc.Styles, sheet); applied == 0 {
			return ErrNothingToImport
		}
		return nil
	})
	return applied, err
}

// SetFrameStyle assigns paragraph or object style to a frame, empty id
// clears it.
func (s *Session) SetFrameStyle(pageID, frameID, styleID string) error {
	if styleID != "" && !hasStyle(s.Document().Styles, styleID) {
		return fmt.Errorf("%w: style %s", ErrNotFound, styleID)
	}
	return s.frameOp("frame-style", pageID, frameID, func(_ *document.Document, _ *document.Page, f *document.Frame) {
		f.StyleID = styleID
	})
}

func hasStyle(styles document.Styles, id string) bool {
	for _, ps := range styles.Paragraph {
		if ps.ID == id {
			return true
		}
	}
	for _, obj := range styles.Object {
		if obj.ID == id {
			return true
		}
	}
	return false
}
