package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"bookforge/common"
	"bookforge/editor"
	"bookforge/export"
	"bookforge/state"
)

// exportOptions starts from configuration and applies flags present on
// command line.
func exportOptions(env *state.LocalEnv, cmd *cli.Command) (export.Options, error) {
	opts := export.OptionsFromConfig(&env.Cfg.Export)
	opts.MissingImage = env.MissingImage

	profile, err := enumFlag(cmd, "profile", common.ParseExportProfile)
	if profile != nil {
		opts.Profile = *profile
	}
	color, cerr := enumFlag(cmd, "color", common.ParseColorMode)
	if color != nil {
		opts.ColorMode = *color
	}
	compression, zerr := enumFlag(cmd, "compression", common.ParseCompression)
	if compression != nil {
		opts.Compression = *compression
	}
	err = multierr.Combine(err, cerr, zerr)

	for name, dst := range map[string]*bool{
		"spreads":     &opts.Spreads,
		"bleed":       &opts.Bleed,
		"crop-marks":  &opts.CropMarks,
		"embed-fonts": &opts.EmbedFonts,
		"bookmarks":   &opts.Bookmarks,
		"guides":      &opts.Guides,
		"block":       &opts.BlockOnErrors,
	} {
		if cmd.IsSet(name) {
			*dst = cmd.Bool(name)
		}
	}
	if cmd.IsSet("min-dpi") {
		opts.MinImageDPI = cmd.Float("min-dpi")
	}
	return opts, err
}

func printChecks(w io.Writer, checks []export.Check) {
	for _, c := range checks {
		fmt.Fprintf(w, "[%-7s] %-10s %s", c.Status, c.Category, c.Label)
		if len(c.Suggestion) > 0 {
			fmt.Fprintf(w, " (%s)", c.Suggestion)
		}
		if len(c.Fix) > 0 {
			fmt.Fprintf(w, " [fix: %s]", c.Fix)
		}
		fmt.Fprintln(w)
	}
}

// fixPatch collects automatic corrections offered by the checklist.
func fixPatch(checks []export.Check) (patch editor.SettingsPatch, fixes int) {
	for _, c := range checks {
		switch c.Fix {
		case export.FixBleed:
			if patch.Bleed == nil {
				bleed := float64(export.DefaultBleed)
				patch.Bleed = &bleed
				fixes++
			}
		case export.FixShowMargins:
			if patch.Margins.Visible == nil {
				visible := true
				patch.Margins.Visible = &visible
				fixes++
			}
		}
	}
	return patch, fixes
}

// Check runs export checklist and prints it. With --fix available
// corrections are applied and saved.
func Check(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	opts, err := exportOptions(env, cmd)
	if err != nil {
		return err
	}
	return editBook(ctx, cmd, func(env *state.LocalEnv, s *editor.Session, _ cli.Args) error {
		st := s.State()
		checks := export.Checklist(st.Doc, st.Layout, opts)

		if cmd.Bool("fix") {
			if patch, n := fixPatch(checks); n > 0 {
				if err := s.UpdateSettings(patch); err != nil {
					return err
				}
				env.Log.Info("Checklist fixes applied", zap.Int("count", n))
				st = s.State()
				checks = export.Checklist(st.Doc, st.Layout, opts)
			}
		}

		printChecks(os.Stdout, checks)
		if env.Rpt != nil {
			if data, err := json.MarshalIndent(checks, "", "  "); err == nil {
				env.Rpt.StoreData(fmt.Sprintf("checklist/%s.json", st.Doc.ID), data)
			}
		}
		warnings, errs := export.Counts(checks)
		env.Log.Info("Checklist completed", zap.Int("warnings", warnings), zap.Int("errors", errs), zap.Bool("exportable", export.CanExport(checks, opts)))
		return nil
	})
}

// Export writes export bundle of the book: BOOK [DESTINATION].
func Export(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("export")

	if path := cmd.String("missing-image"); len(path) > 0 {
		if err := env.LoadMissingImage(path); err != nil {
			return err
		}
	}

	opts, err := exportOptions(env, cmd)
	if err != nil {
		return err
	}
	env.Overwrite = cmd.Bool("overwrite")

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
		dst += string(filepath.Separator)
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	return editBook(ctx, cmd, func(env *state.LocalEnv, s *editor.Session, _ cli.Args) error {
		defer func(start time.Time) {
			log.Debug("Export completed", zap.Duration("elapsed", time.Since(start)))
		}(time.Now())

		res, err := export.Write(ctx, s.Document(), opts, dst, env.Overwrite, env.Log)
		if res != nil && (err != nil || env.Rpt != nil) {
			printChecks(os.Stderr, res.Checks)
		}
		if err != nil {
			return err
		}
		if env.Rpt != nil {
			if err := env.Rpt.StoreCopy("export", res.Path); err != nil {
				log.Warn("Unable to store export bundle in report", zap.Error(err))
			}
		}
		fmt.Fprintln(os.Stdout, res.Path)
		return nil
	})
}
