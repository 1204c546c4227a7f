package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeWriter accumulates indented human readable dumps.
type TreeWriter struct {
	w      *strings.Builder
	indent string
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w:      &strings.Builder{},
		indent: "  ",
	}
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

func (tw *TreeWriter) pad(depth int) {
	for range depth {
		tw.w.WriteString(tw.indent)
	}
}

func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// Field writes "label: value". Strings are quoted, empty strings are not.
func (tw *TreeWriter) Field(depth int, label string, value any) {
	tw.pad(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	switch v := value.(type) {
	case string:
		tw.w.WriteString(encodeText(v))
	case float64:
		tw.w.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	case fmt.Stringer:
		tw.w.WriteString(v.String())
	default:
		fmt.Fprint(tw.w, v)
	}
	tw.w.WriteByte('\n')
}

// List writes "label: [a b c]" on one line.
func (tw *TreeWriter) List(depth int, label string, values []string) {
	tw.pad(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": [")
	tw.w.WriteString(strings.Join(values, " "))
	tw.w.WriteString("]\n")
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
