package editor

import (
	"fmt"

	"bookforge/document"
)

// pasteOffset shifts pasted frames away from the copied position, in page
// percents. Every following frame moves a bit further.
const (
	pasteOffset = 2
	pasteStep   = 0.4
)

// ImportedContent is a copy of what importer placed on a page: imported
// frames and background reference.
type ImportedContent struct {
	SourcePageID        string
	FileName            string
	Frames              []document.Frame
	BackgroundReference *document.BackgroundReference
}

func (c *ImportedContent) empty() bool {
	return c == nil || (len(c.Frames) == 0 && c.BackgroundReference == nil)
}

// CopyImportedContent returns imported frames and background reference of
// the page. Returned value does not share anything with the document.
func (s *Session) CopyImportedContent(pageID string) (*ImportedContent, error) {
	p := s.Document().FindPage(pageID)
	if p == nil {
		return nil, fmt.Errorf("%w: page %s", ErrNotFound, pageID)
	}
	c := &ImportedContent{SourcePageID: p.ID}
	for _, f := range p.Frames {
		if f.Imported {
			c.Frames = append(c.Frames, f)
		}
	}
	if p.BackgroundReference != nil {
		ref := *p.BackgroundReference
		c.BackgroundReference = &ref
	}
	switch {
	case p.Imported != nil:
		c.FileName = p.Imported.FileName
	case c.BackgroundReference != nil:
		c.FileName = c.BackgroundReference.SourceName
	}
	if c.empty() {
		return nil, fmt.Errorf("%w: %s", ErrNoImported, pageID)
	}
	return c, nil
}

// PasteImportedContent places copies of imported frames on a page. Copies
// get new ids, are unlocked and visible and are shifted a little so they do
// not cover the originals. Background reference is taken only when page has
// none. Returns number of pasted frames.
func (s *Session) PasteImportedContent(pageID string, content *ImportedContent) (int, error) {
	if content.empty() {
		return 0, ErrNothingToImport
	}
	pasted := 0
	err := s.commit("context-paste-imported-content", commitOptions{history: true}, func(doc *document.Document, view *View) error {
		p := doc.FindPage(pageID)
		if p == nil {
			return fmt.Errorf("%w: page %s", ErrNotFound, pageID)
		}
		for i, src := range content.Frames {
			f := src
			f.ID = document.NewID("frame")
			f.X = document.Clamp(src.X+pasteOffset+float64(i)*pasteStep, 0, 99)
			f.Y = document.Clamp(src.Y+pasteOffset+float64(i)*pasteStep, 0, 99)
			f.Locked, f.Hidden, f.NextFrameID = false, false, ""
			document.NormalizeFrame(&f)
			p.Frames = append(p.Frames, f)
		}
		if p.BackgroundReference == nil && content.BackgroundReference != nil {
			ref := *content.BackgroundReference
			p.BackgroundReference = &ref
		}
		pasted = len(content.Frames)
		view.SelectedPageID = p.ID
		return nil
	})
	return pasted, err
}

// CenterImportedContent centers unlocked imported frames on the page and
// returns how many were moved.
func (s *Session) CenterImportedContent(pageID string) (int, error) {
	moved := 0
	err := s.commit("context-center-imported-content", commitOptions{history: true}, func(doc *document.Document, _ *View) error {
		p := doc.FindPage(pageID)
		if p == nil {
			return fmt.Errorf("%w: page %s", ErrNotFound, pageID)
		}
		moved = 0
		for i := range p.Frames {
			f := &p.Frames[i]
			if !f.Imported || f.Locked {
				continue
			}
			w, h := document.Clamp(f.W, 1, 100), document.Clamp(f.H, 1, 100)
			f.X, f.Y = (100-w)/2, (100-h)/2
			moved++
		}
		if moved == 0 {
			return fmt.Errorf("%w: %s", ErrNoImported, pageID)
		}
		return nil
	})
	return moved, err
}

// RemoveImportedContent deletes imported frames and background reference of
// the page, locked frames included. Import information is dropped once page
// keeps nothing imported.
func (s *Session) RemoveImportedContent(pageID string) (frames int, reference bool, err error) {
	err = s.commit("context-remove-imported-content", commitOptions{history: true}, func(doc *document.Document, _ *View) error {
		p := doc.FindPage(pageID)
		if p == nil {
			return fmt.Errorf("%w: page %s", ErrNotFound, pageID)
		}
		removed := make(map[string]bool)
		kept := p.Frames[:0:0]
		for _, f := range p.Frames {
			if f.Imported {
				removed[f.ID] = true
				continue
			}
			kept = append(kept, f)
		}
		frames, reference = len(removed), p.BackgroundReference != nil
		if frames == 0 && !reference {
			return fmt.Errorf("%w: %s", ErrNoImported, pageID)
		}
		p.Frames = kept
		p.BackgroundReference = nil
		if len(p.Frames) == 0 {
			p.Imported = nil
		}
		for i := range doc.Pages {
			for j := range doc.Pages[i].Frames {
				if f := &doc.Pages[i].Frames[j]; removed[f.NextFrameID] {
					f.NextFrameID = ""
				}
			}
		}
		return nil
	})
	return frames, reference, err
}
