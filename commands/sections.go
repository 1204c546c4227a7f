package commands

import (
	"context"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"bookforge/common"
	"bookforge/editor"
	"bookforge/state"
)

// SectionAdd appends section, with --page the page is moved into it.
func SectionAdd(ctx context.Context, cmd *cli.Command) error {
	return editBook(ctx, cmd, func(env *state.LocalEnv, s *editor.Session, args cli.Args) error {
		assign := false
		if ref := cmd.String("page"); len(ref) > 0 {
			id, err := pageRef(s.Document(), ref)
			if err != nil {
				return err
			}
			if err := s.Select(id); err != nil {
				return err
			}
			assign = true
		}
		id, err := s.AddSection(args.Get(1), assign)
		if err != nil {
			return err
		}
		env.Log.Info("Section added", zap.String("section", s.Document().FindSection(id).Name), zap.Bool("assigned", assign))
		return nil
	})
}

func SectionDelete(ctx context.Context, cmd *cli.Command) error {
	return editBook(ctx, cmd, func(env *state.LocalEnv, s *editor.Session, args cli.Args) error {
		id, err := sectionRef(s.Document(), args.Get(1))
		if err != nil {
			return err
		}
		if err := s.DeleteSection(id); err != nil {
			return err
		}
		env.Log.Info("Section deleted", zap.Int("left", len(s.Document().Sections)))
		return nil
	})
}

// SectionAssign moves pages into section: BOOK SECTION PAGE...
func SectionAssign(ctx context.Context, cmd *cli.Command) error {
	return editBook(ctx, cmd, func(env *state.LocalEnv, s *editor.Session, args cli.Args) error {
		doc := s.Document()
		secID, err := sectionRef(doc, args.Get(1))
		if err != nil {
			return err
		}
		if args.Len() < 3 {
			return errNoPage
		}
		for _, ref := range args.Slice()[2:] {
			id, err := pageRef(doc, ref)
			if err != nil {
				return err
			}
			if err := s.AssignPage(id, secID); err != nil {
				return err
			}
		}
		env.Log.Info("Pages assigned", zap.String("section", doc.FindSection(secID).Name), zap.Int("count", args.Len()-2))
		return nil
	})
}

// SectionUpdate changes numbering, flags and name of a section. Only flags
// present on command line are applied.
func SectionUpdate(ctx context.Context, cmd *cli.Command) error {
	return editBook(ctx, cmd, func(env *state.LocalEnv, s *editor.Session, args cli.Args) error {
		id, err := sectionRef(s.Document(), args.Get(1))
		if err != nil {
			return err
		}
		sec := *s.Document().FindSection(id)

		if cmd.IsSet("style") || cmd.IsSet("start") || cmd.IsSet("independent") {
			style := sec.Pagination.Style
			if cmd.IsSet("style") {
				if style, err = common.ParsePaginationStyle(cmd.String("style")); err != nil {
					return err
				}
			}
			start := sec.Pagination.StartAt
			if cmd.IsSet("start") {
				start = cmd.Int("start")
			}
			independent := sec.Pagination.Independent
			if cmd.IsSet("independent") {
				independent = cmd.Bool("independent")
			}
			if err := s.SetSectionPagination(id, style, start, independent); err != nil {
				return err
			}
		}
		if cmd.IsSet("odd") || cmd.IsSet("bookmark") || cmd.IsSet("toc") {
			odd, bookmark, toc := sec.StartOnOdd, sec.Bookmark, sec.TOC
			if cmd.IsSet("odd") {
				odd = cmd.Bool("odd")
			}
			if cmd.IsSet("bookmark") {
				bookmark = cmd.Bool("bookmark")
			}
			if cmd.IsSet("toc") {
				toc = cmd.Bool("toc")
			}
			if err := s.SetSectionFlags(id, odd, bookmark, toc); err != nil {
				return err
			}
		}
		if name := cmd.String("name"); len(name) > 0 {
			if err := s.RenameSection(id, name); err != nil {
				return err
			}
		}
		upd := s.Document().FindSection(id)
		env.Log.Info("Section updated", zap.String("section", upd.Name),
			zap.Stringer("style", upd.Pagination.Style), zap.Int("start", upd.Pagination.StartAt))
		return nil
	})
}
