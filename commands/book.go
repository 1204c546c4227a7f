// Package commands implements program subcommands. Every command works on a
// book kept in local storage, books are addressed by name.
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"bookforge/document"
	"bookforge/editor"
	"bookforge/state"
	"bookforge/storage"
)

var errNoBook = errors.New("no book name has been specified")

func bookName(cmd *cli.Command) (string, error) {
	name := strings.TrimSpace(cmd.Args().Get(0))
	if len(name) == 0 {
		return "", errNoBook
	}
	return name, nil
}

func openStore(env *state.LocalEnv) (*storage.Store, error) {
	st, err := storage.Open(env.Cfg.Storage.Path, env.Cfg.Storage.MaxDocumentBytes, env.Log)
	if err != nil {
		return nil, fmt.Errorf("unable to open storage: %w", err)
	}
	return st, nil
}

// withStore opens storage for the duration of fn.
func withStore(ctx context.Context, fn func(env *state.LocalEnv, st *storage.Store) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	st, err := openStore(env)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, st.Close())
	}()
	return fn(env, st)
}

// editBook loads named book into editing session, runs fn and saves result
// when session history recorded any change.
func editBook(ctx context.Context, cmd *cli.Command, fn func(env *state.LocalEnv, s *editor.Session, args cli.Args) error) error {
	name, err := bookName(cmd)
	if err != nil {
		return err
	}
	return withStore(ctx, func(env *state.LocalEnv, st *storage.Store) error {
		doc, err := st.Load(ctx, name)
		if err != nil {
			return err
		}
		s := editor.New(doc, env.Cfg.History.Limit, env.Log)
		if err := fn(env, s, cmd.Args()); err != nil {
			return err
		}
		if !s.CanUndo() {
			env.Log.Debug("Nothing changed", zap.String("book", name))
			return nil
		}
		return save(ctx, env, st, name, s.Document(), s.History())
	})
}

func save(ctx context.Context, env *state.LocalEnv, st *storage.Store, name string, doc *document.Document, history []string) error {
	res, err := st.Save(ctx, name, doc)
	if err != nil {
		return err
	}
	if res.Degraded {
		env.Log.Warn("Book was saved without inline images", zap.String("book", name), zap.Int("stripped", res.Stripped))
	}
	env.Log.Info("Book saved", zap.String("book", name), zap.Int("bytes", res.Bytes), zap.Strings("changes", history))
	return nil
}

// pageRef resolves 1-based page number or page id.
func pageRef(doc *document.Document, ref string) (string, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(doc.Pages) {
			return "", fmt.Errorf("%w: page number %d (book has %d pages)", editor.ErrNotFound, n, len(doc.Pages))
		}
		return doc.Pages[n-1].ID, nil
	}
	if doc.FindPage(ref) != nil {
		return ref, nil
	}
	return "", fmt.Errorf("%w: page %s", editor.ErrNotFound, ref)
}

// sectionRef resolves section id or name, names are compared ignoring case.
func sectionRef(doc *document.Document, ref string) (string, error) {
	for _, sec := range doc.Sections {
		if sec.ID == ref || strings.EqualFold(sec.Name, ref) {
			return sec.ID, nil
		}
	}
	return "", fmt.Errorf("%w: section %s", editor.ErrNotFound, ref)
}

func masterRef(doc *document.Document, ref string) (string, error) {
	for _, m := range doc.Masters {
		if m.ID == ref || strings.EqualFold(m.Name, ref) {
			return m.ID, nil
		}
	}
	return "", fmt.Errorf("%w: master %s", editor.ErrNotFound, ref)
}

// NewBook creates book from configured defaults.
func NewBook(ctx context.Context, cmd *cli.Command) error {
	name, err := bookName(cmd)
	if err != nil {
		return err
	}
	return withStore(ctx, func(env *state.LocalEnv, st *storage.Store) error {
		exists, err := st.Exists(ctx, name)
		if err != nil {
			return err
		}
		if exists && !cmd.Bool("overwrite") {
			return fmt.Errorf("book %q already exists", name)
		}

		cfg := env.Cfg.Document
		if title := cmd.String("title"); len(title) > 0 {
			cfg.Title = title
		}
		if pages := cmd.Int("pages"); pages > 0 {
			cfg.Pages = pages
		}
		doc := document.New(&cfg)
		env.Log.Info("Creating book", zap.String("book", name), zap.String("title", doc.Title), zap.Int("pages", len(doc.Pages)))
		return save(ctx, env, st, name, doc, nil)
	})
}

// Info prints layout of the book.
func Info(ctx context.Context, cmd *cli.Command) error {
	return editBook(ctx, cmd, func(env *state.LocalEnv, s *editor.Session, _ cli.Args) error {
		st := s.State()
		dump := st.Layout.Dump(st.Doc)
		if env.Rpt != nil {
			env.Rpt.StoreText(fmt.Sprintf("layout/%s.txt", st.Doc.ID), dump)
		}
		_, err := fmt.Fprint(os.Stdout, dump)
		return err
	})
}

// List prints stored books.
func List(ctx context.Context, _ *cli.Command) error {
	return withStore(ctx, func(env *state.LocalEnv, st *storage.Store) error {
		entries, err := st.List(ctx)
		if err != nil {
			return err
		}
		for _, e := range entries {
			mark := ""
			if e.Degraded {
				mark = " (images dropped)"
			}
			fmt.Fprintf(os.Stdout, "%-24s %10d bytes  %s%s\n", e.Name, e.Bytes, e.UpdatedAt.Local().Format("2006-01-02 15:04:05"), mark)
		}
		env.Log.Debug("Books listed", zap.Int("count", len(entries)))
		return nil
	})
}

// Remove deletes book from storage.
func Remove(ctx context.Context, cmd *cli.Command) error {
	name, err := bookName(cmd)
	if err != nil {
		return err
	}
	return withStore(ctx, func(env *state.LocalEnv, st *storage.Store) error {
		if err := st.Delete(ctx, name); err != nil {
			return err
		}
		env.Log.Info("Book removed", zap.String("book", name))
		return nil
	})
}

// DumpJSON writes recalculated book as JSON to file or STDOUT.
func DumpJSON(ctx context.Context, cmd *cli.Command) error {
	name, err := bookName(cmd)
	if err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	env.Overwrite = cmd.Bool("overwrite")

	fname := cmd.Args().Get(1)
	if cmd.Args().Len() > 2 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	return withStore(ctx, func(env *state.LocalEnv, st *storage.Store) error {
		doc, err := st.Load(ctx, name)
		if err != nil {
			return err
		}
		data, err := document.Encode(editor.New(doc, 1, env.Log).Document(), true)
		if err != nil {
			return err
		}
		if len(fname) == 0 {
			_, err = os.Stdout.Write(data)
			return err
		}
		if _, err := os.Stat(fname); err == nil && !env.Overwrite {
			return fmt.Errorf("destination file '%s' already exists", fname)
		}
		if err := os.WriteFile(fname, data, 0644); err != nil {
			return fmt.Errorf("unable to write '%s': %w", fname, err)
		}
		env.Log.Info("Book written", zap.String("book", name), zap.String("file", fname))
		return nil
	})
}
