package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func writeZip(t *testing.T, names ...string) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	for _, name := range names {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
		if strings.HasSuffix(name, "/") {
			continue
		}
		if _, err := fw.Write([]byte("content of " + name)); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return buf.Bytes()
}

func writeZipFile(t *testing.T, names ...string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "bundle.zip")
	if err := os.WriteFile(name, writeZip(t, names...), 0644); err != nil {
		t.Fatalf("Failed to write archive: %v", err)
	}
	return name
}

func TestWalk(t *testing.T) {
	bundle := writeZipFile(t,
		"pages/page2.md", "pages/page1.md", "images/cover.png", "pages/", "Pages/page3.md", "book.json")

	for _, tc := range []struct {
		pattern string
		want    []string
	}{
		{"pages/", []string{"pages/page1.md", "pages/page2.md"}},
		{"images/", []string{"images/cover.png"}},
		{"Pages/", []string{"Pages/page3.md"}},
		{"fonts/", nil},
		{"", []string{"Pages/page3.md", "book.json", "images/cover.png", "pages/page1.md", "pages/page2.md"}},
	} {
		t.Run("prefix "+tc.pattern, func(t *testing.T) {
			var visited []string
			err := Walk(bundle, tc.pattern, func(archive string, file *zip.File) error {
				if archive != bundle {
					t.Errorf("archive = %s, want %s", archive, bundle)
				}
				if file.FileInfo().IsDir() {
					t.Errorf("directory %s visited", file.Name)
				}
				visited = append(visited, file.Name)
				return nil
			})
			if err != nil {
				t.Fatalf("Walk() error = %v", err)
			}
			if !slices.Equal(visited, tc.want) {
				t.Errorf("visited %v, want %v", visited, tc.want)
			}
		})
	}
}

func TestWalk_Errors(t *testing.T) {
	t.Run("nonexistent file", func(t *testing.T) {
		if err := Walk(filepath.Join(t.TempDir(), "absent.zip"), "", func(string, *zip.File) error { return nil }); err == nil {
			t.Error("Expected error for nonexistent archive")
		}
	})

	t.Run("invalid zip file", func(t *testing.T) {
		name := filepath.Join(t.TempDir(), "broken.zip")
		if err := os.WriteFile(name, []byte("this is not a zip"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := Walk(name, "", func(string, *zip.File) error { return nil }); err == nil {
			t.Error("Expected error for invalid archive")
		}
	})

	t.Run("walkFn error stops walking", func(t *testing.T) {
		stop := errors.New("stop")
		var visited int
		err := Walk(writeZipFile(t, "a.txt", "b.txt", "c.txt"), "", func(string, *zip.File) error {
			visited++
			if visited == 2 {
				return stop
			}
			return nil
		})
		if !errors.Is(err, stop) || visited != 2 {
			t.Errorf("Walk() = %v after %d files, want stop after 2", err, visited)
		}
	})

	t.Run("absolute entry", func(t *testing.T) {
		data := writeZip(t, "/etc/passwd")
		if err := WalkBytes("abs.zip", data, "", func(string, *zip.File) error { return nil }); err == nil {
			t.Error("Expected error for absolute entry")
		}
	})
}

func TestWalk_NaturalOrder(t *testing.T) {
	data := writeZip(t, "chapter10.txt", "chapter2.txt", "chapter1.txt")

	var visited []string
	err := WalkBytes("bundle.zip", data, "", func(archive string, file *zip.File) error {
		if archive != "bundle.zip" {
			t.Errorf("archive = %s, want bundle.zip", archive)
		}
		visited = append(visited, file.Name)
		return nil
	})
	if err != nil {
		t.Fatalf("WalkBytes() error = %v", err)
	}

	want := []string{"chapter1.txt", "chapter2.txt", "chapter10.txt"}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visited[%d] = %s, want %s", i, visited[i], want[i])
		}
	}
}

func TestWalk_UnsafePath(t *testing.T) {
	data := writeZip(t, "ok.txt", "../evil.txt")
	err := WalkBytes("bad.zip", data, "", func(string, *zip.File) error { return nil })
	if err == nil {
		t.Error("Expected error for path traversal entry")
	}
}

func TestReadEntry(t *testing.T) {
	data := writeZip(t, "word/document.xml", "word/styles.xml")

	got, err := ReadEntry(data, "word/document.xml")
	if err != nil {
		t.Fatalf("ReadEntry() error = %v", err)
	}
	if string(got) != "content of word/document.xml" {
		t.Errorf("ReadEntry() = %q", got)
	}

	if _, err := ReadEntry(data, "word/missing.xml"); !errors.Is(err, ErrNoEntry) {
		t.Errorf("ReadEntry() missing error = %v, want ErrNoEntry", err)
	}
	if _, err := ReadEntry([]byte("not a zip"), "x"); err == nil {
		t.Error("Expected error for invalid archive")
	}
}

func TestStripDataDescriptors(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "src.zip")
	dst := filepath.Join(tmpDir, "dst.zip")

	if err := os.WriteFile(src, writeZip(t, "index.html", "book.json"), 0644); err != nil {
		t.Fatalf("Failed to write source archive: %v", err)
	}
	if err := StripDataDescriptors(src, dst); err != nil {
		t.Fatalf("StripDataDescriptors() error = %v", err)
	}

	r, err := zip.OpenReader(dst)
	if err != nil {
		t.Fatalf("Failed to open result: %v", err)
	}
	defer r.Close()

	if len(r.File) != 2 {
		t.Fatalf("result has %d entries, want 2", len(r.File))
	}
	for _, f := range r.File {
		if f.Flags&0x8 != 0 {
			t.Errorf("%s still has data descriptor flag", f.Name)
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Failed to open %s: %v", f.Name, err)
		}
		buf := new(bytes.Buffer)
		if _, err := buf.ReadFrom(rc); err != nil {
			t.Fatalf("Failed to read %s: %v", f.Name, err)
		}
		rc.Close()
		if buf.String() != "content of "+f.Name {
			t.Errorf("%s content = %q", f.Name, buf.String())
		}
	}
}
