package editor

import (
	"errors"
	"testing"

	"bookforge/document"
)

func TestMasters(t *testing.T) {
	s := newTestSession(t, 0)

	b, err := s.AddMaster("")
	if err != nil {
		t.Fatalf("AddMaster() error: %v", err)
	}
	c, err := s.AddMaster("Chapter")
	if err != nil {
		t.Fatalf("AddMaster() error: %v", err)
	}
	doc := s.Document()
	if m := doc.FindMaster(b); m.Name != "Master B" || m.ParentID != document.DefaultMasterID {
		t.Errorf("master B = %+v", m)
	}
	if m := doc.FindMaster(c); m.ParentID != b {
		t.Errorf("master C parent = %q, want %q", m.ParentID, b)
	}

	if err := s.SetMasterParent(document.DefaultMasterID, c); !errors.Is(err, ErrMasterCycle) {
		t.Errorf("SetMasterParent() error = %v, want ErrMasterCycle", err)
	}
	if err := s.SetMasterParent(c, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetMasterParent(missing) error = %v", err)
	}

	if err := s.ApplyMasterToSection(b, ""); err != nil {
		t.Fatalf("ApplyMasterToSection() error: %v", err)
	}
	for _, p := range s.Document().Pages {
		if p.MasterID != b {
			t.Fatalf("page %s master = %s, want %s", p.ID, p.MasterID, b)
		}
	}

	ids := pageIDs(s.Document())
	if err := s.ApplyMasterToPage(c, ids[1]); err != nil {
		t.Fatalf("ApplyMasterToPage() error: %v", err)
	}

	if err := s.RemoveMaster(b); err != nil {
		t.Fatalf("RemoveMaster() error: %v", err)
	}
	doc = s.Document()
	if m := doc.FindMaster(c); m.ParentID != document.DefaultMasterID {
		t.Errorf("orphaned child parent = %q", m.ParentID)
	}
	if doc.Pages[0].MasterID != document.DefaultMasterID || doc.Sections[0].MasterID != document.DefaultMasterID {
		t.Error("references to removed master must switch to fallback")
	}
	if doc.Pages[1].MasterID != c {
		t.Error("unrelated master assignment changed")
	}
}

func TestRemoveMasterCycleFallback(t *testing.T) {
	s := newTestSession(t, 0)
	b, _ := s.AddMaster("")
	c, _ := s.AddMaster("")

	// default -> B -> C
	for _, step := range [][2]string{{b, ""}, {c, ""}, {document.DefaultMasterID, b}, {b, c}} {
		if err := s.SetMasterParent(step[0], step[1]); err != nil {
			t.Fatalf("SetMasterParent(%s, %s) error: %v", step[0], step[1], err)
		}
	}
	if err := s.RemoveMaster(c); err != nil {
		t.Fatalf("RemoveMaster() error: %v", err)
	}
	// fallback is default master which already inherits from B
	if m := s.Document().FindMaster(b); m.ParentID != "" {
		t.Errorf("parent = %q, want root", m.ParentID)
	}
}

func TestLastMaster(t *testing.T) {
	s := newTestSession(t, 0)
	if err := s.RemoveMaster(document.DefaultMasterID); !errors.Is(err, ErrLastMaster) {
		t.Errorf("RemoveMaster() error = %v, want ErrLastMaster", err)
	}
	if err := s.RemoveMaster("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("RemoveMaster(missing) error = %v", err)
	}
}

func TestUpdateMaster(t *testing.T) {
	s := newTestSession(t, 0)
	header, blank, off := "CHAPTER", " ", false
	err := s.UpdateMaster(document.DefaultMasterID, MasterPatch{Name: &blank, Header: &header, FixedGuides: &off})
	if err != nil {
		t.Fatalf("UpdateMaster() error: %v", err)
	}
	m := s.Document().FindMaster(document.DefaultMasterID)
	if m.Name != "Master A" || m.Header != "CHAPTER" || m.FixedGuides || !m.LockedColumns {
		t.Errorf("master = %+v", m)
	}
}

func TestAddMasterDefaultNames(t *testing.T) {
	s := newTestSession(t, 0)

	seen := map[string]bool{"Master A": true}
	var ids []string
	for range 30 {
		id, err := s.AddMaster("")
		if err != nil {
			t.Fatalf("AddMaster() error: %v", err)
		}
		name := s.Document().FindMaster(id).Name
		if seen[name] {
			t.Fatalf("duplicate master name %q", name)
		}
		seen[name] = true
		ids = append(ids, id)
	}
	doc := s.Document()
	if got := doc.FindMaster(ids[24]).Name; got != "Master Z" {
		t.Errorf("26th master = %q, want Master Z", got)
	}
	if got := doc.FindMaster(ids[25]).Name; got != "Master A2" {
		t.Errorf("27th master = %q, want Master A2", got)
	}

	// with "Master B" gone the next position is taken by "Master E2"
	if err := s.RemoveMaster(ids[0]); err != nil {
		t.Fatal(err)
	}
	id, err := s.AddMaster("")
	if err != nil {
		t.Fatal(err)
	}
	if name := s.Document().FindMaster(id).Name; name != "Master F2" {
		t.Errorf("master after removal = %q, want Master F2", name)
	}
}
