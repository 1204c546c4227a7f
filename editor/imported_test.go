package editor

import (
	"errors"
	"math"
	"testing"

	"go.uber.org/zap/zaptest"

	"bookforge/common"
	"bookforge/document"
)

// importedSession returns session whose first page carries two imported
// frames, one locked, a plain frame and a background reference. Plain frame
// on the second page continues into the first imported one.
func importedSession(t *testing.T) *Session {
	t.Helper()
	doc := document.NewDefault()
	p := &doc.Pages[0]
	p.Frames = []document.Frame{
		{ID: "imp-1", Type: common.FrameTypeText, X: 10, Y: 10, W: 40, H: 20, Content: "Heading", Imported: true, ImportedFrom: "docx"},
		{ID: "imp-2", Type: common.FrameTypeImage, X: 5, Y: 50, W: 60, H: 30, Imported: true, ImportedFrom: "docx", Locked: true},
		{ID: "own", Type: common.FrameTypeText, X: 70, Y: 70, W: 20, H: 10},
	}
	p.Imported = &document.ImportInfo{Source: common.SourceKindDocx, FileName: "report.docx", SourcePage: 1}
	p.BackgroundReference = &document.BackgroundReference{ID: "bg", Mode: "reference", SourceName: "report.docx", Opacity: 0.35, PageNumber: 1}
	doc.Pages[1].Frames = []document.Frame{
		{ID: "prev", Type: common.FrameTypeText, X: 10, Y: 10, W: 50, H: 50, NextFrameID: "imp-1"},
	}
	return New(doc, 0, zaptest.NewLogger(t))
}

func TestCopyPasteImportedContent(t *testing.T) {
	s := importedSession(t)
	ids := pageIDs(s.Document())

	content, err := s.CopyImportedContent(ids[0])
	if err != nil {
		t.Fatalf("CopyImportedContent() error: %v", err)
	}
	if len(content.Frames) != 2 || content.FileName != "report.docx" || content.BackgroundReference == nil {
		t.Fatalf("content = %+v", content)
	}
	if _, err := s.CopyImportedContent(ids[2]); !errors.Is(err, ErrNoImported) {
		t.Errorf("CopyImportedContent(empty) error = %v, want ErrNoImported", err)
	}

	// copy must not alias the document
	content.Frames[0].Content = "changed"
	if got := s.Document().FindPage(ids[0]).FindFrame("imp-1").Content; got != "Heading" {
		t.Errorf("source frame content = %q", got)
	}
	content.Frames[0].Content = "Heading"

	n, err := s.PasteImportedContent(ids[2], content)
	if err != nil {
		t.Fatalf("PasteImportedContent() error: %v", err)
	}
	if n != 2 {
		t.Errorf("pasted = %d, want 2", n)
	}
	p := s.Document().FindPage(ids[2])
	if len(p.Frames) != 2 {
		t.Fatalf("frames = %d, want 2", len(p.Frames))
	}
	for i, f := range p.Frames {
		src := content.Frames[i]
		if f.ID == src.ID {
			t.Errorf("frame %d kept source id %s", i, f.ID)
		}
		if f.Locked || f.Hidden || f.NextFrameID != "" {
			t.Errorf("frame %d locked=%v hidden=%v next=%q", i, f.Locked, f.Hidden, f.NextFrameID)
		}
		if want := src.X + pasteOffset + float64(i)*pasteStep; math.Abs(f.X-want) > eps {
			t.Errorf("frame %d x = %v, want %v", i, f.X, want)
		}
		if !f.Imported {
			t.Errorf("frame %d lost imported mark", i)
		}
	}
	if p.BackgroundReference == nil || p.BackgroundReference.SourceName != "report.docx" {
		t.Errorf("background reference = %+v", p.BackgroundReference)
	}

	// existing reference is kept
	other := &document.BackgroundReference{SourceName: "other.pdf"}
	content.BackgroundReference = other
	if _, err := s.PasteImportedContent(ids[2], content); err != nil {
		t.Fatal(err)
	}
	if got := s.Document().FindPage(ids[2]).BackgroundReference.SourceName; got != "report.docx" {
		t.Errorf("background reference replaced by %s", got)
	}

	if _, err := s.PasteImportedContent(ids[3], nil); !errors.Is(err, ErrNothingToImport) {
		t.Errorf("PasteImportedContent(nil) error = %v", err)
	}
	if _, err := s.PasteImportedContent(ids[3], &ImportedContent{}); !errors.Is(err, ErrNothingToImport) {
		t.Errorf("PasteImportedContent(empty) error = %v", err)
	}
	if _, err := s.PasteImportedContent("missing", content); !errors.Is(err, ErrNotFound) {
		t.Errorf("PasteImportedContent(missing) error = %v", err)
	}
}

func TestCenterImportedContent(t *testing.T) {
	s := importedSession(t)
	ids := pageIDs(s.Document())

	moved, err := s.CenterImportedContent(ids[0])
	if err != nil {
		t.Fatalf("CenterImportedContent() error: %v", err)
	}
	if moved != 1 {
		t.Errorf("moved = %d, want 1", moved)
	}
	p := s.Document().FindPage(ids[0])
	if f := p.FindFrame("imp-1"); f.X != 30 || f.Y != 40 {
		t.Errorf("centered frame at %v,%v, want 30,40", f.X, f.Y)
	}
	if f := p.FindFrame("imp-2"); f.X != 5 || f.Y != 50 {
		t.Errorf("locked frame moved to %v,%v", f.X, f.Y)
	}
	if f := p.FindFrame("own"); f.X != 70 {
		t.Errorf("own frame moved to %v", f.X)
	}

	if _, err := s.CenterImportedContent(ids[2]); !errors.Is(err, ErrNoImported) {
		t.Errorf("CenterImportedContent(empty) error = %v, want ErrNoImported", err)
	}
}

func TestRemoveImportedContent(t *testing.T) {
	s := importedSession(t)
	ids := pageIDs(s.Document())

	frames, reference, err := s.RemoveImportedContent(ids[0])
	if err != nil {
		t.Fatalf("RemoveImportedContent() error: %v", err)
	}
	if frames != 2 || !reference {
		t.Errorf("removed frames = %d, reference = %v", frames, reference)
	}
	doc := s.Document()
	p := doc.FindPage(ids[0])
	if len(p.Frames) != 1 || p.Frames[0].ID != "own" {
		t.Errorf("frames = %+v", p.Frames)
	}
	if p.BackgroundReference != nil {
		t.Error("background reference kept")
	}
	// page still has own content, import info stays
	if p.Imported == nil {
		t.Error("import info dropped")
	}
	if got := doc.FindPage(ids[1]).FindFrame("prev").NextFrameID; got != "" {
		t.Errorf("dangling chain link %q", got)
	}

	if _, _, err := s.RemoveImportedContent(ids[0]); !errors.Is(err, ErrNoImported) {
		t.Errorf("second RemoveImportedContent() error = %v, want ErrNoImported", err)
	}

	if err := s.Undo(); err != nil {
		t.Fatalf("Undo() error: %v", err)
	}
	if got := len(s.Document().FindPage(ids[0]).Frames); got != 3 {
		t.Errorf("frames after undo = %d, want 3", got)
	}
}

func TestRemoveImportedContentDropsImportInfo(t *testing.T) {
	s := importedSession(t)
	page := pageIDs(s.Document())[0]
	if err := s.RemoveFrame(page, "own"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.RemoveImportedContent(page); err != nil {
		t.Fatalf("RemoveImportedContent() error: %v", err)
	}
	if p := s.Document().FindPage(page); p.Imported != nil {
		t.Errorf("import info = %+v", p.Imported)
	}
}
