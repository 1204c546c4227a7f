package css

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bookforge/common"
	"bookforge/document"
)

const bodyStyleID = "p-body"

type styleKind int

const (
	kindParagraph styleKind = iota
	kindCharacter
	kindObject
)

// Apply merges class rules of the stylesheet into book styles. Rules are
// matched to styles by class name which is style id. Unknown classes create
// new styles: "span" selectors and "c-" classes become character styles,
// "div" selectors and "o-" classes object styles, anything else paragraph
// style seeded from body style. Element-only "p" and "body" rules update body
// style. Returns number of rules applied.
func Apply(styles *document.Styles, sheet *Stylesheet) int {
	applied := 0
	for _, rule := range sheet.Rules {
		id := rule.Selector.Class
		if id == "" {
			switch rule.Selector.Element {
			case "p", "body":
				id = bodyStyleID
			default:
				sheet.Warnings = append(sheet.Warnings, "no style for selector: "+rule.Selector.Raw)
				continue
			}
		}

		switch kindOf(styles, rule.Selector, id) {
		case kindCharacter:
			i := indexOf(styles.Character, func(s document.CharacterStyle) string { return s.ID }, id)
			if i < 0 {
				styles.Character = append(styles.Character, document.CharacterStyle{ID: id, Name: styleName(id), Weight: 400, Style: "normal"})
				i = len(styles.Character) - 1
			}
			applyCharacter(&styles.Character[i], rule)
		case kindObject:
			i := indexOf(styles.Object, func(s document.ObjectStyle) string { return s.ID }, id)
			if i < 0 {
				styles.Object = append(styles.Object, document.ObjectStyle{ID: id, Name: styleName(id), Type: common.FrameTypeText, Fill: "transparent", Wrap: "none"})
				i = len(styles.Object) - 1
			}
			applyObject(&styles.Object[i], rule)
		default:
			i := indexOf(styles.Paragraph, func(s document.ParagraphStyle) string { return s.ID }, id)
			if i < 0 {
				ps := document.ParagraphStyle{ID: id, Size: 11, Leading: 15, Align: "left"}
				if b := indexOf(styles.Paragraph, func(s document.ParagraphStyle) string { return s.ID }, bodyStyleID); b >= 0 {
					ps = styles.Paragraph[b]
					ps.ID = id
				}
				ps.Name = styleName(id)
				styles.Paragraph = append(styles.Paragraph, ps)
				i = len(styles.Paragraph) - 1
			}
			applyParagraph(&styles.Paragraph[i], rule)
		}
		applied++
	}
	return applied
}

func kindOf(styles *document.Styles, sel Selector, id string) styleKind {
	switch {
	case indexOf(styles.Paragraph, func(s document.ParagraphStyle) string { return s.ID }, id) >= 0:
		return kindParagraph
	case indexOf(styles.Character, func(s document.CharacterStyle) string { return s.ID }, id) >= 0:
		return kindCharacter
	case indexOf(styles.Object, func(s document.ObjectStyle) string { return s.ID }, id) >= 0:
		return kindObject
	case sel.Element == "span" || strings.HasPrefix(id, "c-"):
		return kindCharacter
	case sel.Element == "div" || strings.HasPrefix(id, "o-"):
		return kindObject
	}
	return kindParagraph
}

func indexOf[T any](list []T, id func(T) string, want string) int {
	for i := range list {
		if id(list[i]) == want {
			return i
		}
	}
	return -1
}

// styleName makes display name out of style id: "p-block-quote" becomes
// "Block Quote".
func styleName(id string) string {
	name := id
	if len(name) > 2 && name[1] == '-' {
		name = name[2:]
	}
	name = strings.Join(strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == '_' }), " ")
	return cases.Title(language.Und).String(name)
}

func applyParagraph(ps *document.ParagraphStyle, rule Rule) {
	if v, ok := rule.GetProperty("font-family"); ok {
		if family := firstFamily(v.Raw); family != "" {
			ps.Font = family
		}
	}
	if v, ok := rule.GetProperty("font-size"); ok {
		if pt, ok := v.Points(ps.Size); ok && pt > 0 {
			ps.Size = pt
		}
	}
	if v, ok := rule.GetProperty("line-height"); ok {
		if pt, ok := v.Points(ps.Size); ok && pt > 0 {
			ps.Leading = pt
		} else if v.Keyword == "normal" {
			ps.Leading = ps.Size * 1.2
		}
	}
	if v, ok := rule.GetProperty("text-align"); ok {
		switch v.Keyword {
		case "left", "right", "center", "justify":
			ps.Align = v.Keyword
		case "start":
			ps.Align = "left"
		case "end":
			ps.Align = "right"
		}
	}
	if v, ok := rule.GetProperty("hyphens"); ok {
		ps.Hyphenation = v.Keyword == "auto"
	}
	for _, name := range []string{"widows", "orphans"} {
		if v, ok := rule.GetProperty(name); ok && v.IsNumeric() {
			ps.WidowsOrphans = v.Value > 1
		}
	}
}

func applyCharacter(cs *document.CharacterStyle, rule Rule) {
	if v, ok := rule.GetProperty("font-weight"); ok {
		switch {
		case v.Keyword == "bold" || v.Keyword == "bolder":
			cs.Weight = 700
		case v.Keyword == "normal" || v.Keyword == "lighter":
			cs.Weight = 400
		case v.IsNumeric() && v.Value >= 100 && v.Value <= 900:
			cs.Weight = int(v.Value)
		}
	}
	if v, ok := rule.GetProperty("font-style"); ok {
		switch v.Keyword {
		case "normal", "italic":
			cs.Style = v.Keyword
		case "oblique":
			cs.Style = "italic"
		}
	}
	if v, ok := rule.GetProperty("color"); ok && v.Raw != "" {
		cs.Color = v.Raw
	}
	if v, ok := rule.GetProperty("letter-spacing"); ok {
		switch {
		case v.Keyword == "normal":
			cs.Tracking = 0
		case v.Unit == "em":
			cs.Tracking = v.Value * 1000
		}
	}
}

func applyObject(obj *document.ObjectStyle, rule Rule) {
	for _, name := range []string{"background-color", "background"} {
		if v, ok := rule.GetProperty(name); ok && v.Raw != "" {
			obj.Fill = v.Raw
			break
		}
	}
	if v, ok := rule.GetProperty("padding"); ok {
		if pt, ok := v.Points(0); ok && pt >= 0 && v.Unit != "" {
			obj.Padding = pt
		} else if v.Raw == "0" {
			obj.Padding = 0
		}
	}
	if v, ok := rule.GetProperty("border-radius"); ok {
		if pt, ok := v.Points(0); ok && pt >= 0 && v.Unit != "" {
			obj.Radius = pt
		} else if v.Raw == "0" {
			obj.Radius = 0
		}
	}
	if v, ok := rule.GetProperty("float"); ok {
		switch v.Keyword {
		case "left", "right":
			obj.Wrap = "around"
		case "none":
			obj.Wrap = "none"
		}
	}
}

// firstFamily returns first family of font-family list.
func firstFamily(list string) string {
	first, _, _ := strings.Cut(list, ",")
	return unquote(first)
}

func length(pt float64) Value {
	v := math.Round(pt*100) / 100
	return Value{Raw: strconv.FormatFloat(v, 'f', -1, 64) + "pt", Value: v, Unit: "pt"}
}

func keyword(k string) Value {
	return Value{Raw: k, Keyword: k}
}

func class(id string) Selector {
	return Selector{Raw: "." + id, Class: id}
}

// FromStyles converts book styles to stylesheet with rule per style. Classes
// are style ids.
func FromStyles(styles document.Styles) *Stylesheet {
	sheet := &Stylesheet{}
	for _, ps := range styles.Paragraph {
		hyphens := "manual"
		if ps.Hyphenation {
			hyphens = "auto"
		}
		keep := "1"
		if ps.WidowsOrphans {
			keep = "2"
		}
		props := map[string]Value{
			"font-size":   length(ps.Size),
			"line-height": length(ps.Leading),
			"hyphens":     keyword(hyphens),
			"widows":      {Raw: keep},
			"orphans":     {Raw: keep},
		}
		if ps.Font != "" {
			props["font-family"] = Value{Raw: FamilyName(ps.Font)}
		}
		if ps.Align != "" {
			props["text-align"] = keyword(ps.Align)
		}
		sheet.Rules = append(sheet.Rules, Rule{Selector: class(ps.ID), Properties: props})
	}
	for _, cs := range styles.Character {
		props := map[string]Value{
			"font-weight": {Raw: strconv.Itoa(cs.Weight), Value: float64(cs.Weight)},
		}
		if cs.Style != "" {
			props["font-style"] = keyword(cs.Style)
		}
		if cs.Color != "" {
			props["color"] = keyword(cs.Color)
		}
		if cs.Tracking != 0 {
			em := cs.Tracking / 1000
			props["letter-spacing"] = Value{Raw: fmt.Sprintf("%gem", em), Value: em, Unit: "em"}
		}
		sheet.Rules = append(sheet.Rules, Rule{Selector: class(cs.ID), Properties: props})
	}
	for _, ob := range styles.Object {
		props := map[string]Value{
			"padding":       length(ob.Padding),
			"border-radius": length(ob.Radius),
		}
		if ob.Fill != "" {
			props["background-color"] = keyword(ob.Fill)
		}
		sheet.Rules = append(sheet.Rules, Rule{Selector: class(ob.ID), Properties: props})
	}
	return sheet
}
