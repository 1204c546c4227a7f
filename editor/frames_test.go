package editor

import (
	"errors"
	"math"
	"testing"

	"bookforge/common"
	"bookforge/document"
)

const eps = 1e-9

func TestFrames(t *testing.T) {
	s := newTestSession(t, 0)
	page := pageIDs(s.Document())[0]

	id, err := s.AddFrame(page, common.FrameTypeText)
	if err != nil {
		t.Fatalf("AddFrame() error: %v", err)
	}
	if _, err := s.AddFrame("missing", common.FrameTypeText); !errors.Is(err, ErrNotFound) {
		t.Errorf("AddFrame(missing) error = %v", err)
	}

	t.Run("move snaps to margin", func(t *testing.T) {
		// first page is left hand page, outside margin of 15mm is on the left
		if err := s.MoveFrame(page, id, 60, 300); err != nil {
			t.Fatalf("MoveFrame() error: %v", err)
		}
		doc := s.Document()
		f := doc.FindPage(page).FindFrame(id)
		if want := 100 * 15.0 / 210; math.Abs(f.X-want) > eps {
			t.Errorf("x = %v, want %v", f.X, want)
		}
		if want := 100 * 300 / doc.PageSizePx().Height; math.Abs(f.Y-want) > eps {
			t.Errorf("y = %v, want %v", f.Y, want)
		}
		if math.Abs(f.W-50) > 1e-6 || math.Abs(f.H-20) > 1e-6 {
			t.Errorf("move changed size: %v x %v", f.W, f.H)
		}
	})

	t.Run("resize keeps minimum", func(t *testing.T) {
		if err := s.ResizeFrame(page, id, 2, 2); err != nil {
			t.Fatalf("ResizeFrame() error: %v", err)
		}
		doc := s.Document()
		f := doc.FindPage(page).FindFrame(id)
		size := doc.PageSizePx()
		if w := f.W * size.Width / 100; math.Abs(w-10) > 1e-6 {
			t.Errorf("width = %vpx, want 10px", w)
		}
	})

	t.Run("rotate", func(t *testing.T) {
		if err := s.RotateFrame(page, id, -90); err != nil {
			t.Fatalf("RotateFrame() error: %v", err)
		}
		if got := s.Document().FindPage(page).FindFrame(id).Rotation; got != 270 {
			t.Errorf("rotation = %v, want 270", got)
		}
	})

	t.Run("locked", func(t *testing.T) {
		if err := s.SetFrameLocked(page, id, true); err != nil {
			t.Fatalf("SetFrameLocked() error: %v", err)
		}
		if err := s.SetFrameContent(page, id, "text"); !errors.Is(err, ErrFrameLocked) {
			t.Errorf("SetFrameContent() error = %v, want ErrFrameLocked", err)
		}
		if err := s.MoveFrame(page, id, 0, 0); !errors.Is(err, ErrFrameLocked) {
			t.Errorf("MoveFrame() error = %v, want ErrFrameLocked", err)
		}
		if err := s.SetFrameLocked(page, id, false); err != nil {
			t.Fatalf("SetFrameLocked() error: %v", err)
		}
		if err := s.SetFrameContent(page, id, "text"); err != nil {
			t.Errorf("SetFrameContent() error: %v", err)
		}
		if got := s.Document().FindPage(page).FindFrame(id).Content; got != "text" {
			t.Errorf("content = %q", got)
		}
	})
}

func TestRemoveFrameUnlinksChain(t *testing.T) {
	s := newTestSession(t, 0)
	ids := pageIDs(s.Document())

	first, _ := s.AddFrame(ids[0], common.FrameTypeText)
	second, _ := s.AddFrame(ids[1], common.FrameTypeText)

	err := s.commit("link", commitOptions{history: true}, func(doc *document.Document, _ *View) error {
		doc.FindPage(ids[0]).FindFrame(first).NextFrameID = second
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := s.RemoveFrame(ids[1], second); err != nil {
		t.Fatalf("RemoveFrame() error: %v", err)
	}
	doc := s.Document()
	if doc.FindPage(ids[1]).FindFrame(second) != nil {
		t.Error("frame not removed")
	}
	if got := doc.FindPage(ids[0]).FindFrame(first).NextFrameID; got != "" {
		t.Errorf("dangling chain link %q", got)
	}
	if err := s.RemoveFrame(ids[1], second); !errors.Is(err, ErrNotFound) {
		t.Errorf("RemoveFrame() twice error = %v", err)
	}
}

func TestFrameHiddenAndCrop(t *testing.T) {
	s := newTestSession(t, 0)
	page := pageIDs(s.Document())[0]

	text, _ := s.AddFrame(page, common.FrameTypeText)
	img, err := s.AddFrame(page, common.FrameTypeImage)
	if err != nil {
		t.Fatalf("AddFrame() error: %v", err)
	}

	if err := s.SetFrameCrop(page, text, document.Crop{Zoom: 2}); !errors.Is(err, ErrNotImage) {
		t.Errorf("SetFrameCrop(text) error = %v, want ErrNotImage", err)
	}

	if err := s.SetFrameCrop(page, img, document.Crop{X: -5, Y: 10, W: 50, H: 0, Zoom: 5}); err != nil {
		t.Fatalf("SetFrameCrop() error: %v", err)
	}
	crop := s.Document().FindPage(page).FindFrame(img).Crop
	// zero height means whole image
	if crop != (document.Crop{X: 0, Y: 10, W: 100, H: 100, Zoom: document.MaxCropZoom}) {
		t.Errorf("crop = %+v", crop)
	}
	if err := s.SetFrameCrop(page, img, document.Crop{W: 40, H: 40, Zoom: 0.1}); err != nil {
		t.Fatalf("SetFrameCrop() error: %v", err)
	}
	if got := s.Document().FindPage(page).FindFrame(img).Crop.Zoom; got != document.MinCropZoom {
		t.Errorf("zoom = %v, want %v", got, document.MinCropZoom)
	}

	if err := s.SetFrameLocked(page, img, true); err != nil {
		t.Fatal(err)
	}
	if err := s.SetFrameCrop(page, img, document.Crop{Zoom: 1}); !errors.Is(err, ErrFrameLocked) {
		t.Errorf("SetFrameCrop(locked) error = %v, want ErrFrameLocked", err)
	}
	if err := s.SetFrameHidden(page, img, true); err != nil {
		t.Fatalf("SetFrameHidden(locked) error: %v", err)
	}
	if f := s.Document().FindPage(page).FindFrame(img); !f.Hidden || !f.Locked {
		t.Errorf("hidden = %v, locked = %v", f.Hidden, f.Locked)
	}
	if err := s.SetFrameHidden(page, "missing", true); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetFrameHidden(missing) error = %v", err)
	}

	if err := s.Undo(); err != nil {
		t.Fatalf("Undo() error: %v", err)
	}
	if s.Document().FindPage(page).FindFrame(img).Hidden {
		t.Error("undo did not show frame again")
	}
}
