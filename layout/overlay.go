package layout

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	"bookforge/common"
	"bookforge/document"
)

// VisualStyle is effective margin overlay style.
type VisualStyle struct {
	Preset    common.VisualPreset          `json:"preset"`
	Mode      common.VisualMode            `json:"mode"`
	Opacity   float64                      `json:"opacity"`
	Stroke    float64                      `json:"stroke"`
	LineStyle common.LineStyle             `json:"lineStyle"`
	Legend    bool                         `json:"legend"`
	Colors    map[common.MarginType]string `json:"colors"`
	Show      map[common.MarginType]bool   `json:"show"`
}

var defaultColors = map[common.MarginType]string{
	common.MarginTypeAll:     "#c9793b",
	common.MarginTypeTop:     "#c9793b",
	common.MarginTypeBottom:  "#b86f37",
	common.MarginTypeInside:  "#9d5c2f",
	common.MarginTypeOutside: "#d4975f",
	common.MarginTypeBleed:   "#b96767",
	common.MarginTypeSafe:    "#4f8d6f",
}

var defaultShow = map[common.MarginType]bool{
	common.MarginTypeInside:  true,
	common.MarginTypeOutside: true,
	common.MarginTypeTop:     true,
	common.MarginTypeBottom:  true,
	common.MarginTypeBleed:   true,
	common.MarginTypeSafe:    true,
}

var visualPresets = map[common.VisualPreset]VisualStyle{
	common.VisualPresetEdition: {
		Mode:      common.VisualModeSimple,
		Opacity:   0.2,
		Stroke:    1,
		LineStyle: common.LineStyleSolid,
		Legend:    true,
		Colors: map[common.MarginType]string{
			common.MarginTypeAll: "#c9793b",
		},
		Show: map[common.MarginType]bool{
			common.MarginTypeInside:  true,
			common.MarginTypeOutside: true,
			common.MarginTypeTop:     true,
			common.MarginTypeBottom:  true,
			common.MarginTypeBleed:   false,
			common.MarginTypeSafe:    true,
		},
	},
	common.VisualPresetPrintPreview: {
		Mode:      common.VisualModeAdvanced,
		Opacity:   0.15,
		Stroke:    1,
		LineStyle: common.LineStyleDashed,
		Legend:    true,
		Colors: map[common.MarginType]string{
			common.MarginTypeTop:     "#c9793b",
			common.MarginTypeBottom:  "#c9793b",
			common.MarginTypeInside:  "#9d5c2f",
			common.MarginTypeOutside: "#d4975f",
			common.MarginTypeBleed:   "#b96767",
			common.MarginTypeSafe:    "#4f8d6f",
		},
		Show: defaultShow,
	},
	common.VisualPresetDebug: {
		Mode:      common.VisualModeAdvanced,
		Opacity:   0.24,
		Stroke:    2,
		LineStyle: common.LineStyleSolid,
		Legend:    true,
		Colors: map[common.MarginType]string{
			common.MarginTypeTop:     "#ff7a7a",
			common.MarginTypeBottom:  "#f9a052",
			common.MarginTypeInside:  "#6a8aff",
			common.MarginTypeOutside: "#23b08f",
			common.MarginTypeBleed:   "#ff4e4e",
			common.MarginTypeSafe:    "#25a35f",
		},
		Show: defaultShow,
	},
}

// Preset returns copy of named preset style. Unknown names give edition.
func Preset(name common.VisualPreset) VisualStyle {
	p, ok := visualPresets[name]
	if !ok {
		name = common.VisualPresetEdition
		p = visualPresets[name]
	}
	p.Preset = name
	p.Colors = maps.Clone(p.Colors)
	p.Show = maps.Clone(p.Show)
	return p
}

// ResolveVisual computes effective overlay style. Merge order is built-in
// defaults, then preset, then explicit overrides, later wins on collisions.
// Numeric values are clamped.
func ResolveVisual(v *document.MarginVisual) VisualStyle {
	preset := Preset(v.Preset)

	res := preset
	res.Colors = maps.Clone(defaultColors)
	maps.Copy(res.Colors, preset.Colors)
	maps.Copy(res.Colors, v.Colors)
	res.Show = maps.Clone(defaultShow)
	maps.Copy(res.Show, preset.Show)
	maps.Copy(res.Show, v.Show)

	if v.Mode.IsValid() {
		res.Mode = v.Mode
	}
	if v.LineStyle.IsValid() {
		res.LineStyle = v.LineStyle
	}
	if v.Opacity != nil {
		res.Opacity = *v.Opacity
	}
	if v.Stroke != nil {
		res.Stroke = *v.Stroke
	}
	if v.Legend != nil {
		res.Legend = *v.Legend
	}
	res.Opacity = document.Clamp(res.Opacity, document.MinOpacity, document.MaxOpacity)
	res.Stroke = document.Clamp(res.Stroke, document.MinStroke, document.MaxStroke)
	return res
}

// ApplyPreset selects preset and drops all overrides so that resolved style
// equals the preset.
func ApplyPreset(name common.VisualPreset) document.MarginVisual {
	if !name.IsValid() {
		name = common.VisualPresetEdition
	}
	return document.MarginVisual{Preset: name}
}

// ColorFor returns colour used to draw margin type. Simple mode draws
// everything with the "all" colour.
func (v VisualStyle) ColorFor(typ common.MarginType) string {
	if v.Mode == common.VisualModeSimple {
		if c := v.Colors[common.MarginTypeAll]; c != "" {
			return c
		}
		return defaultColors[common.MarginTypeAll]
	}
	if c := v.Colors[typ]; c != "" {
		return c
	}
	if c := v.Colors[common.MarginTypeAll]; c != "" {
		return c
	}
	if c := defaultColors[typ]; c != "" {
		return c
	}
	return defaultColors[common.MarginTypeAll]
}

// Overlay drawing primitives, all coordinates are page pixels.
type (
	Zone struct {
		Type    common.MarginType `json:"type"`
		X       float64           `json:"x"`
		Y       float64           `json:"y"`
		W       float64           `json:"w"`
		H       float64           `json:"h"`
		Color   string            `json:"color"`
		Opacity float64           `json:"opacity"`
	}
	Line struct {
		Type   common.MarginType `json:"type"`
		Axis   string            `json:"axis"`
		X      float64           `json:"x"`
		Y      float64           `json:"y"`
		Length float64           `json:"length"`
		Color  string            `json:"color"`
	}
	Label struct {
		Type  common.MarginType `json:"type"`
		X     float64           `json:"x"`
		Y     float64           `json:"y"`
		Text  string            `json:"text"`
		Color string            `json:"color"`
	}
	// Box is drawn inset from page edges, negative inset goes outside.
	Box struct {
		Type      common.MarginType `json:"type"`
		Inset     float64           `json:"inset"`
		Color     string            `json:"color"`
		LineStyle common.LineStyle  `json:"lineStyle"`
	}
	LegendEntry struct {
		Type  common.MarginType `json:"type"`
		Color string            `json:"color"`
	}
)

// Overlay is renderer agnostic description of margin guides for one page.
type Overlay struct {
	Enabled   bool             `json:"enabled"`
	Zones     []Zone           `json:"zones"`
	Lines     []Line           `json:"lines"`
	Labels    []Label          `json:"labels"`
	Boxes     []Box            `json:"boxes"`
	Legend    []LegendEntry    `json:"legend"`
	Stroke    float64          `json:"stroke"`
	LineStyle common.LineStyle `json:"lineStyle"`
}

const (
	labelWidth  = 108
	labelHeight = 16
)

var legendOrder = []common.MarginType{
	common.MarginTypeInside,
	common.MarginTypeOutside,
	common.MarginTypeTop,
	common.MarginTypeBottom,
	common.MarginTypeBleed,
	common.MarginTypeSafe,
}

// OverlayModel builds margin guides for page placed on side. Vertical zones
// are named after the margin they show, so on a left page the left zone is
// outside and on a right or single page it is inside.
func OverlayModel(doc *document.Document, page *document.Page, side common.Side) Overlay {
	s := &doc.Settings
	if !s.Margins.Visible {
		return Overlay{
			Zones:  []Zone{},
			Lines:  []Line{},
			Labels: []Label{},
			Boxes:  []Box{},
			Legend: []LegendEntry{},
		}
	}

	style := ResolveVisual(&s.Margins.Visual)
	g := Geometry(doc, page, side)
	size := doc.PageSizePx()
	width, height := size.Width, size.Height

	model := Overlay{
		Enabled:   true,
		Zones:     []Zone{},
		Lines:     []Line{},
		Labels:    []Label{},
		Boxes:     []Box{},
		Legend:    []LegendEntry{},
		Stroke:    style.Stroke,
		LineStyle: style.LineStyle,
	}

	horizontal := func(typ common.MarginType, y, h float64) {
		color := style.ColorFor(typ)
		model.Zones = append(model.Zones, Zone{Type: typ, X: 0, Y: y, W: width, H: h, Color: color, Opacity: style.Opacity})
		model.Lines = append(model.Lines, Line{Type: typ, Axis: "h", X: 0, Y: y + h, Length: width, Color: color})
		model.Labels = append(model.Labels, Label{
			Type:  typ,
			X:     width - labelWidth,
			Y:     document.Clamp(y+h+3, 4, height-labelHeight),
			Text:  marginLabel(typ, g.Value(typ, s)),
			Color: color,
		})
	}
	vertical := func(typ common.MarginType, x, w, labelY float64) {
		color := style.ColorFor(typ)
		model.Zones = append(model.Zones, Zone{Type: typ, X: x, Y: 0, W: w, H: height, Color: color, Opacity: style.Opacity})
		model.Lines = append(model.Lines, Line{Type: typ, Axis: "v", X: x + w, Y: 0, Length: height, Color: color})
		model.Labels = append(model.Labels, Label{
			Type:  typ,
			X:     document.Clamp(x+w+4, 4, width-labelWidth),
			Y:     labelY,
			Text:  marginLabel(typ, g.Value(typ, s)),
			Color: color,
		})
	}

	leftType, rightType := common.MarginTypeInside, common.MarginTypeOutside
	if side == common.SideLeft {
		leftType, rightType = rightType, leftType
	}

	if style.Show[common.MarginTypeTop] {
		horizontal(common.MarginTypeTop, 0, g.Px.Top)
	}
	if style.Show[common.MarginTypeBottom] {
		horizontal(common.MarginTypeBottom, height-g.Px.Bottom, g.Px.Bottom)
	}
	if style.Show[leftType] {
		vertical(leftType, 0, g.Px.Left, 14)
	}
	if style.Show[rightType] {
		vertical(rightType, width-g.Px.Right, g.Px.Right, 30)
	}

	if style.Show[common.MarginTypeBleed] && s.BleedVisible {
		model.Boxes = append(model.Boxes, Box{
			Type:      common.MarginTypeBleed,
			Inset:     -g.Px.Bleed,
			Color:     style.ColorFor(common.MarginTypeBleed),
			LineStyle: style.LineStyle,
		})
	}
	if style.Show[common.MarginTypeSafe] && s.SafeVisible {
		model.Boxes = append(model.Boxes, Box{
			Type:      common.MarginTypeSafe,
			Inset:     g.Px.Safe,
			Color:     style.ColorFor(common.MarginTypeSafe),
			LineStyle: style.LineStyle,
		})
	}

	if style.Legend {
		for _, typ := range legendOrder {
			if style.Show[typ] {
				model.Legend = append(model.Legend, LegendEntry{Type: typ, Color: style.ColorFor(typ)})
			}
		}
	}
	return model
}

func marginLabel(typ common.MarginType, mm float64) string {
	text := strings.TrimSuffix(strconv.FormatFloat(mm, 'f', 1, 64), ".0")
	return fmt.Sprintf("%s %s mm", typ, text)
}

// RGBA converts "#rgb" or "#rrggbb" colour into CSS rgba() with alpha
// clamped to [0,1]. Unparsable colours fall back to default overlay colour.
func RGBA(hex string, alpha float64) string {
	src := strings.TrimPrefix(hex, "#")
	if len(src) == 3 {
		src = string([]byte{src[0], src[0], src[1], src[1], src[2], src[2]})
	}
	v, err := strconv.ParseUint(src, 16, 32)
	if err != nil || len(src) != 6 {
		v, _ = strconv.ParseUint(strings.TrimPrefix(defaultColors[common.MarginTypeAll], "#"), 16, 32)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", (v>>16)&0xff, (v>>8)&0xff, v&0xff,
		strconv.FormatFloat(document.Clamp(alpha, 0, 1), 'f', -1, 64))
}
