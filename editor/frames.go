package editor

import (
	"fmt"
	"math"

	"bookforge/common"
	"bookforge/document"
	"bookforge/layout"
)

// AddFrame places new frame of given type on a page and returns its id.
func (s *Session) AddFrame(pageID string, typ common.FrameType) (string, error) {
	var id string
	err := s.commit("add-frame", commitOptions{history: true}, func(doc *document.Document, _ *View) error {
		p := doc.FindPage(pageID)
		if p == nil {
			return fmt.Errorf("%w: page %s", ErrNotFound, pageID)
		}
		f := document.NewFrame(typ)
		p.Frames = append(p.Frames, f)
		id = f.ID
		return nil
	})
	return id, err
}

func findFrame(doc *document.Document, pageID, frameID string) (*document.Page, *document.Frame, error) {
	p := doc.FindPage(pageID)
	if p == nil {
		return nil, nil, fmt.Errorf("%w: page %s", ErrNotFound, pageID)
	}
	f := p.FindFrame(frameID)
	if f == nil {
		return nil, nil, fmt.Errorf("%w: frame %s", ErrNotFound, frameID)
	}
	return p, f, nil
}

// frameOp runs fn on unlocked frame of a page.
func (s *Session) frameOp(label, pageID, frameID string, fn func(doc *document.Document, p *document.Page, f *document.Frame)) error {
	return s.commit(label, commitOptions{history: true}, func(doc *document.Document, _ *View) error {
		p, f, err := findFrame(doc, pageID, frameID)
		if err != nil {
			return err
		}
		if f.Locked {
			return fmt.Errorf("%w: %s", ErrFrameLocked, frameID)
		}
		fn(doc, p, f)
		return nil
	})
}

// MoveFrame moves frame top left corner to x, y page pixels. Position snaps
// to page edges and margin lines of the side page is placed on.
func (s *Session) MoveFrame(pageID, frameID string, x, y float64) error {
	return s.frameOp("move-frame", pageID, frameID, func(doc *document.Document, p *document.Page, f *document.Frame) {
		size := doc.PageSizePx()
		r := layout.PercentToPx(layout.FrameRect(f), size)
		r.X, r.Y = x, y
		snapped := layout.PxToPercent(layout.SnapRectPx(doc, p, p.BindingSide, r), size)
		f.X, f.Y = snapped.X, snapped.Y
	})
}

// ResizeFrame sets frame size to w by h page pixels, edges snap the same way
// MoveFrame does.
func (s *Session) ResizeFrame(pageID, frameID string, w, h float64) error {
	return s.frameOp("resize-frame", pageID, frameID, func(doc *document.Document, p *document.Page, f *document.Frame) {
		size := doc.PageSizePx()
		r := layout.PercentToPx(layout.FrameRect(f), size)
		r.W, r.H = w, h
		snapped := layout.PxToPercent(layout.SnapRectPx(doc, p, p.BindingSide, r), size)
		f.X, f.Y, f.W, f.H = snapped.X, snapped.Y, snapped.W, snapped.H
	})
}

// RotateFrame sets frame rotation in degrees, normalized into [0, 360).
func (s *Session) RotateFrame(pageID, frameID string, degrees float64) error {
	return s.frameOp("rotate-frame", pageID, frameID, func(_ *document.Document, _ *document.Page, f *document.Frame) {
		if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
			degrees = 0
		}
		f.Rotation = math.Mod(math.Mod(degrees, 360)+360, 360)
	})
}

// SetFrameContent replaces text (or caption) of a frame.
func (s *Session) SetFrameContent(pageID, frameID, content string) error {
	return s.frameOp("frame-content", pageID, frameID, func(_ *document.Document, _ *document.Page, f *document.Frame) {
		f.Content = content
	})
}

// RemoveFrame deletes frame, frames chained to it are unlinked.
func (s *Session) RemoveFrame(pageID, frameID string) error {
	return s.frameOp("remove-frame", pageID, frameID, func(doc *document.Document, p *document.Page, _ *document.Frame) {
		p.RemoveFrame(frameID)
		for i := range doc.Pages {
			for j := range doc.Pages[i].Frames {
				if f := &doc.Pages[i].Frames[j]; f.NextFrameID == frameID {
					f.NextFrameID = ""
				}
			}
		}
	})
}

// SetFrameLocked locks or unlocks frame, it is allowed on locked frames.
func (s *Session) SetFrameLocked(pageID, frameID string, locked bool) error {
	return s.commit("frame-lock", commitOptions{history: true}, func(doc *document.Document, _ *View) error {
		_, f, err := findFrame(doc, pageID, frameID)
		if err != nil {
			return err
		}
		f.Locked = locked
		return nil
	})
}

// SetFrameHidden hides frame from page and export or shows it again. Like
// locking it is allowed on locked frames.
func (s *Session) SetFrameHidden(pageID, frameID string, hidden bool) error {
	return s.commit("frame-hide", commitOptions{history: true}, func(doc *document.Document, _ *View) error {
		_, f, err := findFrame(doc, pageID, frameID)
		if err != nil {
			return err
		}
		f.Hidden = hidden
		return nil
	})
}

// SetFrameCrop sets visible part and zoom of the image in an image frame.
// Values are clamped, see document.NormalizeCrop.
func (s *Session) SetFrameCrop(pageID, frameID string, crop document.Crop) error {
	return s.commit("frame-crop", commitOptions{history: true}, func(doc *document.Document, _ *View) error {
		_, f, err := findFrame(doc, pageID, frameID)
		if err != nil {
			return err
		}
		if f.Type != common.FrameTypeImage {
			return fmt.Errorf("%w: %s", ErrNotImage, frameID)
		}
		if f.Locked {
			return fmt.Errorf("%w: %s", ErrFrameLocked, frameID)
		}
		document.NormalizeCrop(&crop)
		f.Crop = crop
		return nil
	})
}
