package commands

import (
	"context"
	"fmt"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"bookforge/common"
	"bookforge/editor"
	"bookforge/state"
)

func floatFlag(cmd *cli.Command, name string) *float64 {
	if !cmd.IsSet(name) {
		return nil
	}
	v := cmd.Float(name)
	return &v
}

func boolFlag(cmd *cli.Command, name string) *bool {
	if !cmd.IsSet(name) {
		return nil
	}
	v := cmd.Bool(name)
	return &v
}

func intFlag(cmd *cli.Command, name string) *int {
	if !cmd.IsSet(name) {
		return nil
	}
	v := int(cmd.Int(name))
	return &v
}

func stringFlag(cmd *cli.Command, name string) *string {
	if !cmd.IsSet(name) {
		return nil
	}
	v := cmd.String(name)
	return &v
}

func enumFlag[T any](cmd *cli.Command, name string, parse func(string) (T, error)) (*T, error) {
	if !cmd.IsSet(name) {
		return nil, nil
	}
	v, err := parse(cmd.String(name))
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return &v, nil
}

// settingsPatch builds patch from flags present on command line.
func settingsPatch(cmd *cli.Command) (patch editor.SettingsPatch, err error) {
	if patch.Format, err = enumFlag(cmd, "format", common.ParsePageFormat); err != nil {
		return patch, err
	}
	if patch.Orientation, err = enumFlag(cmd, "orientation", common.ParseOrientation); err != nil {
		return patch, err
	}
	if patch.Visual.Preset, err = enumFlag(cmd, "preset", common.ParseVisualPreset); err != nil {
		return patch, err
	}
	if patch.Visual.Mode, err = enumFlag(cmd, "mode", common.ParseVisualMode); err != nil {
		return patch, err
	}
	if patch.Visual.LineStyle, err = enumFlag(cmd, "line", common.ParseLineStyle); err != nil {
		return patch, err
	}

	patch.Width = floatFlag(cmd, "width")
	patch.Height = floatFlag(cmd, "height")
	patch.DPI = floatFlag(cmd, "dpi")
	patch.Spreads = boolFlag(cmd, "spreads")
	patch.StartOnRight = boolFlag(cmd, "start-on-right")
	patch.Bleed = floatFlag(cmd, "bleed")
	patch.SafeArea = floatFlag(cmd, "safe")
	patch.BleedVisible = boolFlag(cmd, "show-bleed")
	patch.SafeVisible = boolFlag(cmd, "show-safe")

	patch.Margins = editor.MarginsPatch{
		Top:                 floatFlag(cmd, "top"),
		Bottom:              floatFlag(cmd, "bottom"),
		Inside:              floatFlag(cmd, "inside"),
		Outside:             floatFlag(cmd, "outside"),
		Spine:               floatFlag(cmd, "spine"),
		OddEvenCompensation: floatFlag(cmd, "compensation"),
		Visible:             boolFlag(cmd, "show-margins"),
	}
	patch.Visual.Opacity = floatFlag(cmd, "opacity")
	patch.Visual.Stroke = floatFlag(cmd, "stroke")
	patch.Visual.Legend = boolFlag(cmd, "legend")

	patch.Grid = editor.GridPatch{
		Preset:   stringFlag(cmd, "grid-preset"),
		Columns:  intFlag(cmd, "columns"),
		Gutter:   floatFlag(cmd, "gutter"),
		Baseline: floatFlag(cmd, "baseline"),
		Snap:     boolFlag(cmd, "snap"),
		Rulers:   boolFlag(cmd, "rulers"),
		Guides:   boolFlag(cmd, "grid-guides"),
	}

	// TYPE=#RRGGBB
	for _, spec := range cmd.StringSlice("color") {
		name, value, ok := strings.Cut(spec, "=")
		if !ok {
			return patch, fmt.Errorf("--color: expected TYPE=COLOR, got %q", spec)
		}
		typ, err := common.ParseMarginType(name)
		if err != nil {
			return patch, fmt.Errorf("--color: %w", err)
		}
		if patch.Visual.Colors == nil {
			patch.Visual.Colors = make(map[common.MarginType]string)
		}
		patch.Visual.Colors[typ] = value
	}
	for flag, show := range map[string]bool{"show": true, "hide": false} {
		for _, name := range cmd.StringSlice(flag) {
			typ, err := common.ParseMarginType(name)
			if err != nil {
				return patch, fmt.Errorf("--%s: %w", flag, err)
			}
			if patch.Visual.Show == nil {
				patch.Visual.Show = make(map[common.MarginType]bool)
			}
			patch.Visual.Show[typ] = show
		}
	}
	return patch, nil
}

// Settings changes book settings.
func Settings(ctx context.Context, cmd *cli.Command) error {
	patch, err := settingsPatch(cmd)
	if err != nil {
		return err
	}
	return editBook(ctx, cmd, func(env *state.LocalEnv, s *editor.Session, _ cli.Args) error {
		if err := s.UpdateSettings(patch); err != nil {
			return err
		}
		if cmd.IsSet("save-grid-preset") {
			if err := s.SaveGridPreset(cmd.String("save-grid-preset")); err != nil {
				return err
			}
		}
		st := s.State()
		size := st.Doc.PageSizeMm()
		env.Log.Info("Settings applied",
			zap.Stringer("format", st.Doc.Settings.Format), zap.Stringer("orientation", st.Doc.Settings.Orientation),
			zap.Float64("width", size.Width), zap.Float64("height", size.Height),
			zap.Bool("spreadMode", st.Layout.SpreadMode), zap.Int("spreads", len(st.Layout.Spreads)),
			zap.Int("columns", st.Doc.Grids.Columns), zap.Int("gridPresets", len(st.Doc.Grids.Presets)))
		return nil
	})
}
