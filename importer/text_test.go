package importer

import (
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"bookforge/common"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name  string
		input string
		total int
		want  []int
	}{
		{"empty selects all", "", 3, []int{1, 2, 3}},
		{"ranges and singles", "1-3,6", 10, []int{1, 2, 3, 6}},
		{"range clamped", "5-20", 7, []int{5, 6, 7}},
		{"low single clamped", "0", 5, []int{1}},
		{"high single clamped", "9", 5, []int{5}},
		{"duplicates", "3, 1,3", 5, []int{1, 3}},
		{"garbage selects all", "x,y-z", 3, []int{1, 2, 3}},
		{"reversed range selects all", "2-1", 3, []int{1, 2, 3}},
		{"nothing available", "1", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRange(tt.input, tt.total)
			if !slices.Equal(got, tt.want) {
				t.Errorf("ParseRange(%q, %d) = %v, want %v", tt.input, tt.total, got, tt.want)
			}
		})
	}
}

func TestSplitParagraphs(t *testing.T) {
	got := splitParagraphs("a\n\nb\r\n\r\nc\n d\n \n\n")
	want := []string{"a", "b", "c\n d"}
	if !slices.Equal(got, want) {
		t.Errorf("splitParagraphs() = %q, want %q", got, want)
	}
}

func TestDecodeText(t *testing.T) {
	t.Run("utf8 with bom", func(t *testing.T) {
		got, err := decodeText(append([]byte{0xEF, 0xBB, 0xBF}, "cafe\u0301"...), nil)
		if err != nil {
			t.Fatalf("decodeText() error: %v", err)
		}
		if got != "caf\u00e9" {
			t.Errorf("decodeText() = %q, want NFC composed form", got)
		}
	})
	t.Run("legacy single byte", func(t *testing.T) {
		// "café" in windows-1252
		got, err := decodeText([]byte{'c', 'a', 'f', 0xE9}, nil)
		if err != nil {
			t.Fatalf("decodeText() error: %v", err)
		}
		if got != "caf\u00e9" {
			t.Errorf("decodeText() = %q", got)
		}
	})
}

func TestChunkParagraphs(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		got := chunkParagraphs(nil, 100, nil)
		if len(got) != 1 || got[0][0] != emptyPageText {
			t.Errorf("chunkParagraphs(nil) = %q", got)
		}
	})

	t.Run("grouping", func(t *testing.T) {
		p := strings.Repeat("x", 100)
		got := chunkParagraphs([]string{p, p, p, p, p}, 250, nil)
		sizes := make([]int, len(got))
		for i := range got {
			sizes[i] = len(got[i])
		}
		if !slices.Equal(sizes, []int{2, 2, 1}) {
			t.Errorf("page sizes = %v, want [2 2 1]", sizes)
		}
	})

	t.Run("oversized paragraph", func(t *testing.T) {
		got := chunkParagraphs([]string{"aaaa bbbb cccc"}, 5, nil)
		var flat []string
		for _, page := range got {
			flat = append(flat, page...)
		}
		if !slices.Equal(flat, []string{"aaaa", "bbbb", "cccc"}) {
			t.Errorf("chunks = %q", flat)
		}
	})
}

func TestSplitterPack(t *testing.T) {
	s := NewSplitter(zaptest.NewLogger(t))
	if s == nil {
		t.Fatal("NewSplitter() returned nil")
	}

	text := "First sentence is here. Second sentence follows it. Third one closes."
	got := s.Pack(text, 30)
	if len(got) < 2 {
		t.Fatalf("Pack() = %q, expected several pieces", got)
	}
	for _, piece := range got {
		if runeLen(piece) > 30 {
			t.Errorf("piece %q is longer than limit", piece)
		}
	}
	if strings.Join(got, " ") != text {
		t.Errorf("pieces do not reassemble: %q", got)
	}

	if short := s.Pack("short", 30); !slices.Equal(short, []string{"short"}) {
		t.Errorf("Pack(short) = %q", short)
	}
}

func TestHardSplitLongWord(t *testing.T) {
	got := hardSplit("abcdefgh ij", 3)
	want := []string{"abc", "def", "gh ", "ij"}
	if !slices.Equal(got, want) {
		t.Errorf("hardSplit() = %q, want %q", got, want)
	}
}

func TestBuildTextFrames(t *testing.T) {
	t.Run("placeholders", func(t *testing.T) {
		frames := buildTextFrames([]string{"Title", "a | b", "![x](y.png) and [IMAGE] and [image]"}, common.SourceKindText, "p-body", 1)
		if len(frames) != 5 {
			t.Fatalf("got %d frames, want 5", len(frames))
		}
		title, body, table := frames[0], frames[1], frames[2]
		if title.Content != "Title" || title.X != 8 || title.Y != 8 || title.W != 84 || title.H != 12 {
			t.Errorf("title frame = %+v", title)
		}
		if body.Y != 22 || body.H != 66 || !strings.Contains(body.Content, "a | b") {
			t.Errorf("body frame = %+v", body)
		}
		if body.NextFrameID != table.ID {
			t.Errorf("body is chained to %q, want %q", body.NextFrameID, table.ID)
		}
		if table.Type != common.FrameTypeTable || table.Layer != "tables" || table.Y != 76 {
			t.Errorf("table frame = %+v", table)
		}
		if frames[3].X != 58 || frames[4].X != 76 || frames[4].Content != "Image 2" {
			t.Errorf("image placeholders at %v and %v", frames[3].X, frames[4].X)
		}
		for _, f := range frames {
			if !f.Imported || f.ImportedFrom != "text" {
				t.Errorf("frame %s not marked imported", f.ID)
			}
		}
		if table.StyleID != "" || body.StyleID != "p-body" {
			t.Errorf("style ids: body=%q table=%q", body.StyleID, table.StyleID)
		}
	})

	t.Run("plain", func(t *testing.T) {
		frames := buildTextFrames([]string{"Only"}, common.SourceKindText, "", 4)
		if len(frames) != 2 || frames[1].NextFrameID != "" {
			t.Errorf("frames = %+v", frames)
		}
	})

	t.Run("markdown heading", func(t *testing.T) {
		frames := buildTextFrames([]string{"## Hello"}, common.SourceKindMarkdown, "", 1)
		if frames[0].Content != "Hello" {
			t.Errorf("title = %q", frames[0].Content)
		}
	})

	t.Run("empty page title", func(t *testing.T) {
		frames := buildTextFrames(nil, common.SourceKindText, "", 3)
		if frames[0].Content != "Import page 3" {
			t.Errorf("title = %q", frames[0].Content)
		}
	})
}
