package css

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode"
)

const (
	ptPerInch = 72.0
	mmPerInch = 25.4
	pxPerPt   = 96.0 / 72.0
)

// Value represents a parsed CSS property value.
type Value struct {
	Raw     string  // Original CSS value string (e.g., "1.2em", "bold", "#ff0000")
	Value   float64 // Numeric value if applicable
	Unit    string  // Unit if applicable: "em", "px", "%", "pt", etc.
	Keyword string  // Keyword if applicable: "bold", "italic", "center", etc.
}

// IsNumeric returns true if the value has a numeric component.
// This includes explicit zero values like "0" or "0px".
func (v Value) IsNumeric() bool {
	if v.Unit != "" {
		return true
	}
	if v.Value != 0 && v.Keyword == "" {
		return true
	}
	// "0" has neither unit nor value
	if v.Raw != "" && v.Keyword == "" {
		first := rune(v.Raw[0])
		if unicode.IsDigit(first) || first == '.' || first == '-' || first == '+' {
			return true
		}
	}
	return false
}

// IsKeyword returns true if the value is a keyword (no numeric component).
func (v Value) IsKeyword() bool {
	return v.Keyword != "" && v.Unit == ""
}

// Points converts length to typographic points. Relative units (em, rem, %)
// are resolved against base, given in points. Unitless numbers are treated as
// multipliers of base, the way line-height does.
func (v Value) Points(base float64) (float64, bool) {
	if !v.IsNumeric() {
		return 0, false
	}
	switch v.Unit {
	case "pt":
		return v.Value, true
	case "px":
		return v.Value / pxPerPt, true
	case "mm":
		return v.Value * ptPerInch / mmPerInch, true
	case "cm":
		return v.Value * 10 * ptPerInch / mmPerInch, true
	case "in":
		return v.Value * ptPerInch, true
	case "pc":
		return v.Value * 12, true
	case "em", "rem":
		return v.Value * base, true
	case "%":
		return v.Value * base / 100, true
	case "":
		return v.Value * base, true
	}
	return 0, false
}

// Selector represents a parsed CSS selector. Only element, class and
// element.class selectors are kept by the parser.
type Selector struct {
	Raw     string // Original selector string
	Element string // Element name (e.g., "p", "span") or empty for class-only
	Class   string // Class name without dot (e.g., "p-body") or empty
}

// IsSimple returns true if this is a simple selector (element, class, or element.class).
func (s Selector) IsSimple() bool {
	return s.Element != "" || s.Class != ""
}

// Rule represents a single CSS rule (selector + properties).
type Rule struct {
	Selector   Selector
	Properties map[string]Value
}

// GetProperty returns the value for a property, or empty Value if not found.
func (r Rule) GetProperty(name string) (Value, bool) {
	v, ok := r.Properties[name]
	return v, ok
}

// FontFace represents an @font-face declaration.
type FontFace struct {
	Family string // font-family value
	Src    string // src value (URL or local reference)
	Style  string // font-style: normal, italic
	Weight string // font-weight: normal, bold, 400, 700
}

// Stylesheet represents a parsed CSS stylesheet. Rules of @media blocks
// applicable to print are merged into Rules in source order.
type Stylesheet struct {
	Rules     []Rule
	FontFaces []FontFace
	Warnings  []string // Warnings for unsupported features
}

// RulesBySelector returns all rules matching the given selector string.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, r := range s.Rules {
		if r.Selector.Raw == selector {
			matches = append(matches, r)
		}
	}
	return matches
}

// WriteTo serializes stylesheet as CSS. Properties are written in name
// order so output is stable.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i := range s.FontFaces {
		n, err := writeFontFace(w, &s.FontFaces[i])
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	for i := range s.Rules {
		n, err := writeRule(w, &s.Rules[i])
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (s *Stylesheet) String() string {
	var b strings.Builder
	_, _ = s.WriteTo(&b)
	return b.String()
}

func writeRule(w io.Writer, rule *Rule) (int, error) {
	names := make([]string, 0, len(rule.Properties))
	for name := range rule.Properties {
		names = append(names, name)
	}
	slices.Sort(names)

	var b strings.Builder
	b.WriteString(rule.Selector.Raw)
	b.WriteString(" {")
	for _, name := range names {
		fmt.Fprintf(&b, " %s: %s;", name, rule.Properties[name].Raw)
	}
	b.WriteString(" }\n")
	return io.WriteString(w, b.String())
}

func writeFontFace(w io.Writer, ff *FontFace) (int, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "@font-face { font-family: %s;", FamilyName(ff.Family))
	if ff.Src != "" {
		fmt.Fprintf(&b, " src: %s;", ff.Src)
	}
	if ff.Style != "" {
		fmt.Fprintf(&b, " font-style: %s;", ff.Style)
	}
	if ff.Weight != "" {
		fmt.Fprintf(&b, " font-weight: %s;", ff.Weight)
	}
	b.WriteString(" }\n")
	return io.WriteString(w, b.String())
}

// FamilyName returns font family as CSS value. Names made of identifiers are
// left unquoted, anything else is double quoted and escaped.
func FamilyName(name string) string {
	plain := name != ""
	for word := range strings.FieldsSeq(name) {
		if !isIdent(word) {
			plain = false
			break
		}
	}
	if plain {
		return strings.Join(strings.Fields(name), " ")
	}
	return `"` + escapeDoubleQuoted(name) + `"`
}

func isIdent(s string) bool {
	for i, r := range s {
		switch {
		case unicode.IsLetter(r), r == '_', r == '-' && i == 0:
		case unicode.IsDigit(r), r == '-':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return s != ""
}

// escapeDoubleQuoted escapes a string for use inside CSS double quotes.
func escapeDoubleQuoted(s string) string {
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
