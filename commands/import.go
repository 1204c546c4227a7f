package commands

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"bookforge/editor"
	"bookforge/importer"
	"bookforge/state"
)

// Import adds pages produced from source files: BOOK SOURCE... Sources which
// failed to import are reported, pages from the rest are still placed.
func Import(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() < 2 {
		return errors.New("no input source has been specified")
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("import")

	// Since neither zip nor plain text carry encoding we may need to force
	// archaic code page
	if cp := cmd.String("force-cp"); len(cp) > 0 {
		if err := env.ForceCodePage(cp); err != nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
		} else {
			log.Debug("Forcefully decoding all non UTF-8 sources", zap.String("charset", env.CodePageName()))
		}
	}

	return editBook(ctx, cmd, func(env *state.LocalEnv, s *editor.Session, args cli.Args) (err error) {
		doc := s.Document()

		opts := importer.OptionsFromConfig(&env.Cfg.Import)
		opts.CodePage = env.CodePage
		opts.PageWidthMm = doc.PageSizeMm().Width
		opts.Range = cmd.String("range")
		if cmd.IsSet("reference") {
			opts.PlaceAsReference = cmd.Bool("reference")
		}
		if cmd.IsSet("max-chars") {
			opts.MaxCharsPerPage = cmd.Int("max-chars")
		}

		placement := editor.ImportPlacement{
			SectionPerFile: env.Cfg.Import.SectionPerFile,
			StyleID:        cmd.String("style"),
		}
		if cmd.IsSet("section-per-file") {
			placement.SectionPerFile = cmd.Bool("section-per-file")
		}
		if ref := cmd.String("master"); len(ref) > 0 {
			if placement.MasterID, err = masterRef(doc, ref); err != nil {
				return err
			}
		}
		if ref := cmd.String("after"); len(ref) > 0 {
			id, err := pageRef(doc, ref)
			if err != nil {
				return err
			}
			if err := s.Select(id); err != nil {
				return err
			}
			placement.AfterSelected = true
		}

		log.Info("Import starting", zap.Strings("sources", args.Slice()[1:]))
		defer func(start time.Time) {
			log.Info("Import completed", zap.Duration("elapsed", time.Since(start)))
		}(time.Now())

		im := importer.New(opts, env.Log)
		var (
			batches []importer.Batch
			failed  error
		)
		for _, src := range args.Slice()[1:] {
			if err := ctx.Err(); err != nil {
				return err
			}
			if src, err = filepath.Abs(src); err != nil {
				return err
			}
			res, ferr := im.ImportFile(ctx, src)
			batches = append(batches, res...)
			failed = multierr.Append(failed, ferr)
		}
		for _, ferr := range multierr.Errors(failed) {
			log.Warn("Source skipped", zap.Error(ferr))
		}

		ids, err := s.ImportPages(batches, placement)
		if err != nil {
			return multierr.Append(err, failed)
		}
		log.Info("Pages imported", zap.Int("files", len(batches)), zap.Int("pages", len(ids)), zap.Int("errors", len(multierr.Errors(failed))))
		return nil
	})
}
