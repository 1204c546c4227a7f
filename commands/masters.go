package commands

import (
	"context"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"bookforge/editor"
	"bookforge/state"
)

// MasterAdd creates master, optionally inheriting from --parent.
func MasterAdd(ctx context.Context, cmd *cli.Command) error {
	return editBook(ctx, cmd, func(env *state.LocalEnv, s *editor.Session, args cli.Args) error {
		id, err := s.AddMaster(args.Get(1))
		if err != nil {
			return err
		}
		if ref := cmd.String("parent"); len(ref) > 0 {
			parent, err := masterRef(s.Document(), ref)
			if err != nil {
				return err
			}
			if err := s.SetMasterParent(id, parent); err != nil {
				return err
			}
		}
		m := s.Document().FindMaster(id)
		env.Log.Info("Master added", zap.String("master", m.Name), zap.String("parent", s.Document().MasterName(m.ParentID)))
		return nil
	})
}

// MasterRemove deletes master, pages and sections using it fall back to its
// parent or to the first master.
func MasterRemove(ctx context.Context, cmd *cli.Command) error {
	return editBook(ctx, cmd, func(env *state.LocalEnv, s *editor.Session, args cli.Args) error {
		id, err := masterRef(s.Document(), args.Get(1))
		if err != nil {
			return err
		}
		if err := s.RemoveMaster(id); err != nil {
			return err
		}
		env.Log.Info("Master removed", zap.Int("left", len(s.Document().Masters)))
		return nil
	})
}

// MasterApply assigns master to --section and to listed pages.
func MasterApply(ctx context.Context, cmd *cli.Command) error {
	return editBook(ctx, cmd, func(env *state.LocalEnv, s *editor.Session, args cli.Args) error {
		doc := s.Document()
		id, err := masterRef(doc, args.Get(1))
		if err != nil {
			return err
		}
		if ref := cmd.String("section"); len(ref) > 0 {
			secID, err := sectionRef(doc, ref)
			if err != nil {
				return err
			}
			if err := s.ApplyMasterToSection(id, secID); err != nil {
				return err
			}
		}
		for _, ref := range args.Slice()[min(2, args.Len()):] {
			pageID, err := pageRef(doc, ref)
			if err != nil {
				return err
			}
			if err := s.ApplyMasterToPage(id, pageID); err != nil {
				return err
			}
		}
		env.Log.Info("Master applied", zap.String("master", doc.MasterName(id)), zap.Strings("changes", s.History()))
		return nil
	})
}

// MasterUpdate changes master fields given on command line.
func MasterUpdate(ctx context.Context, cmd *cli.Command) error {
	return editBook(ctx, cmd, func(env *state.LocalEnv, s *editor.Session, args cli.Args) error {
		doc := s.Document()
		id, err := masterRef(doc, args.Get(1))
		if err != nil {
			return err
		}
		var patch editor.MasterPatch
		for name, dst := range map[string]**string{
			"name":       &patch.Name,
			"header":     &patch.Header,
			"footer":     &patch.Footer,
			"background": &patch.Background,
			"logo":       &patch.Logo,
		} {
			if cmd.IsSet(name) {
				v := cmd.String(name)
				*dst = &v
			}
		}
		if cmd.IsSet("locked-columns") {
			v := cmd.Bool("locked-columns")
			patch.LockedColumns = &v
		}
		if cmd.IsSet("fixed-guides") {
			v := cmd.Bool("fixed-guides")
			patch.FixedGuides = &v
		}
		if ref := cmd.String("parent"); len(ref) > 0 {
			parent := ""
			if ref != "none" {
				if parent, err = masterRef(doc, ref); err != nil {
					return err
				}
			}
			if err := s.SetMasterParent(id, parent); err != nil {
				return err
			}
		}
		if err := s.UpdateMaster(id, patch); err != nil {
			return err
		}
		env.Log.Info("Master updated", zap.String("master", s.Document().MasterName(id)))
		return nil
	})
}
