package commands

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"bookforge/css"
	"bookforge/editor"
	"bookforge/state"
)

// Styles merges CSS stylesheet into book styles: BOOK [FILE.css]. Without
// stylesheet book styles are written to stdout as CSS.
func Styles(ctx context.Context, cmd *cli.Command) error {
	return editBook(ctx, cmd, func(env *state.LocalEnv, s *editor.Session, args cli.Args) error {
		src := args.Get(1)
		if len(src) == 0 {
			_, err := css.FromStyles(s.Document().Styles).WriteTo(os.Stdout)
			return err
		}

		data, err := os.ReadFile(src)
		if err != nil {
			return fmt.Errorf("unable to read stylesheet %q: %w", src, err)
		}
		sheet := css.NewParser(env.Log).Parse(data, src)
		for _, w := range sheet.Warnings {
			env.Log.Warn("Stylesheet", zap.String("source", src), zap.String("problem", w))
		}

		n, err := s.ApplyStylesheet(sheet)
		if err != nil {
			return fmt.Errorf("stylesheet %q: %w", src, err)
		}
		styles := s.Document().Styles
		env.Log.Info("Stylesheet applied", zap.String("source", src), zap.Int("rules", n),
			zap.Int("paragraph", len(styles.Paragraph)), zap.Int("character", len(styles.Character)), zap.Int("object", len(styles.Object)))
		return nil
	})
}
