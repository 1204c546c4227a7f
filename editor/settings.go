package editor

import (
	"fmt"

	"bookforge/common"
	"bookforge/document"
	"bookforge/layout"
)

// MarginsPatch lists margin values to change in millimeters.
type MarginsPatch struct {
	Top                 *float64
	Bottom              *float64
	Inside              *float64
	Outside             *float64
	Spine               *float64
	OddEvenCompensation *float64
	Visible             *bool
}

// VisualPatch selects overlay preset and overrides. Selecting preset drops
// previous overrides, overrides given together with it are applied after.
type VisualPatch struct {
	Preset    *common.VisualPreset
	Mode      *common.VisualMode
	LineStyle *common.LineStyle
	Opacity   *float64
	Stroke    *float64
	Legend    *bool
	Colors    map[common.MarginType]string
	Show      map[common.MarginType]bool
}

// GridPatch changes column and baseline grid. Named preset is applied first,
// explicit values given together with it win.
type GridPatch struct {
	Preset   *string
	Columns  *int
	Gutter   *float64
	Baseline *float64
	Snap     *bool
	Rulers   *bool
	Guides   *bool
}

// SettingsPatch lists book settings to change, nil fields are kept. Width and
// Height are page dimensions in millimeters as displayed, in the current
// orientation.
type SettingsPatch struct {
	Format       *common.PageFormat
	Orientation  *common.Orientation
	Width        *float64
	Height       *float64
	DPI          *float64
	Spreads      *bool
	StartOnRight *bool
	Margins      MarginsPatch
	Visual       VisualPatch
	Bleed        *float64
	SafeArea     *float64
	BleedVisible *bool
	SafeVisible  *bool
	Grid         GridPatch
}

// UpdateSettings applies patch to book settings. Page format and size are
// reconciled: choosing named format sets its size, editing size to
// dimensions of a named format selects that format, any other size switches
// to custom format.
func (s *Session) UpdateSettings(patch SettingsPatch) error {
	return s.commit("book-settings-apply", commitOptions{history: true}, func(doc *document.Document, _ *View) error {
		st := &doc.Settings
		if patch.Format != nil && !patch.Format.IsValid() {
			return fmt.Errorf("%s is %w", *patch.Format, common.ErrInvalidPageFormat)
		}
		if patch.Orientation != nil && !patch.Orientation.IsValid() {
			return fmt.Errorf("%s is %w", *patch.Orientation, common.ErrInvalidOrientation)
		}
		if patch.Visual.Preset != nil && !patch.Visual.Preset.IsValid() {
			return fmt.Errorf("%s is %w", *patch.Visual.Preset, common.ErrInvalidVisualPreset)
		}

		if err := applyGrid(&doc.Grids, patch.Grid); err != nil {
			return err
		}
		reconcileFormat(st, patch)

		set(&st.DPI, patch.DPI)
		set(&st.Spreads, patch.Spreads)
		set(&st.StartOnRight, patch.StartOnRight)
		set(&st.Bleed, patch.Bleed)
		set(&st.SafeArea, patch.SafeArea)
		set(&st.BleedVisible, patch.BleedVisible)
		set(&st.SafeVisible, patch.SafeVisible)

		m := &st.Margins
		set(&m.Top, patch.Margins.Top)
		set(&m.Bottom, patch.Margins.Bottom)
		set(&m.Inside, patch.Margins.Inside)
		set(&m.Outside, patch.Margins.Outside)
		set(&m.Spine, patch.Margins.Spine)
		set(&m.OddEvenCompensation, patch.Margins.OddEvenCompensation)
		set(&m.Visible, patch.Margins.Visible)

		applyVisual(&m.Visual, patch.Visual)

		// clamps negative values and bad resolution
		document.Normalize(doc)
		return nil
	})
}

func applyGrid(g *document.Grids, patch GridPatch) error {
	if patch.Preset != nil {
		p := g.FindPreset(*patch.Preset)
		if p == nil {
			return fmt.Errorf("%w: grid preset %s", ErrNotFound, *patch.Preset)
		}
		g.Columns, g.Gutter, g.Baseline = p.Columns, p.Gutter, p.Baseline
	}
	if patch.Columns != nil {
		g.Columns = min(max(*patch.Columns, 1), document.MaxColumns)
	}
	set(&g.Gutter, patch.Gutter)
	set(&g.Baseline, patch.Baseline)
	set(&g.Snap, patch.Snap)
	set(&g.Rulers, patch.Rulers)
	set(&g.Guides, patch.Guides)
	return nil
}

// SaveGridPreset stores current grid under name, an existing preset with the
// same name is replaced. Empty name gives "Custom N".
func (s *Session) SaveGridPreset(name string) error {
	return s.commit("save-grid-preset", commitOptions{history: true}, func(doc *document.Document, _ *View) error {
		g := &doc.Grids
		if name == "" {
			name = fmt.Sprintf("Custom %d", len(g.Presets)+1)
		}
		preset := document.GridPreset{Name: name, Columns: g.Columns, Gutter: g.Gutter, Baseline: g.Baseline}
		if p := g.FindPreset(name); p != nil {
			*p = preset
			return nil
		}
		g.Presets = append(g.Presets, preset)
		return nil
	})
}

func reconcileFormat(st *document.Settings, patch SettingsPatch) {
	set(&st.Orientation, patch.Orientation)

	if patch.Format != nil {
		st.Format = *patch.Format
	}
	if st.Format != common.PageFormatCustom {
		if size, ok := document.FormatSize(st.Format); ok {
			st.CustomSize = size
		}
	}

	if patch.Width == nil && patch.Height == nil {
		if st.Format == common.PageFormatCustom && (patch.Format != nil || patch.Orientation != nil) {
			cur := document.FormatDimensions(st.Format, st.CustomSize, st.Orientation)
			if f, ok := document.MatchFormat(cur.Width, cur.Height, st.Orientation, document.FormatTolerance); ok {
				st.Format = f
			}
		}
		return
	}

	cur := document.FormatDimensions(st.Format, st.CustomSize, st.Orientation)
	if patch.Width != nil {
		cur.Width = *patch.Width
	}
	if patch.Height != nil {
		cur.Height = *patch.Height
	}
	if f, ok := document.MatchFormat(cur.Width, cur.Height, st.Orientation, document.FormatTolerance); ok {
		st.Format = f
		st.CustomSize, _ = document.FormatSize(f)
		return
	}
	st.Format = common.PageFormatCustom
	// custom size is kept in portrait terms, orientation swaps it
	if st.Orientation == common.OrientationLandscape {
		cur.Width, cur.Height = cur.Height, cur.Width
	}
	st.CustomSize = cur
}

func applyVisual(v *document.MarginVisual, patch VisualPatch) {
	if patch.Preset != nil {
		*v = layout.ApplyPreset(*patch.Preset)
	}
	set(&v.Mode, patch.Mode)
	set(&v.LineStyle, patch.LineStyle)
	if patch.Opacity != nil {
		o := *patch.Opacity
		v.Opacity = &o
	}
	if patch.Stroke != nil {
		w := *patch.Stroke
		v.Stroke = &w
	}
	if patch.Legend != nil {
		l := *patch.Legend
		v.Legend = &l
	}
	for k, c := range patch.Colors {
		if v.Colors == nil {
			v.Colors = make(map[common.MarginType]string)
		}
		v.Colors[k] = c
	}
	for k, show := range patch.Show {
		if v.Show == nil {
			v.Show = make(map[common.MarginType]bool)
		}
		v.Show[k] = show
	}
}
