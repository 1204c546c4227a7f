package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"bookforge/common"
	"bookforge/document"
	"bookforge/editor"
	"bookforge/state"
)

var errNoPage = errors.New("no page has been specified")

// PageAdd inserts page after given page, at the end of the book otherwise.
func PageAdd(ctx context.Context, cmd *cli.Command) error {
	return editBook(ctx, cmd, func(env *state.LocalEnv, s *editor.Session, args cli.Args) error {
		var after string
		if ref := args.Get(1); len(ref) > 0 {
			id, err := pageRef(s.Document(), ref)
			if err != nil {
				return err
			}
			after = id
		}
		for range max(cmd.Int("count"), 1) {
			id, err := s.AddPage(after)
			if err != nil {
				return err
			}
			after = id
		}
		p := s.Document().FindPage(after)
		env.Log.Info("Page added", zap.String("page", p.Name), zap.Int("number", p.AutoNumber), zap.String("display", p.DisplayNumber))
		return nil
	})
}

// PageDelete removes listed pages, refusing to remove the last one.
func PageDelete(ctx context.Context, cmd *cli.Command) error {
	return editBook(ctx, cmd, func(env *state.LocalEnv, s *editor.Session, args cli.Args) error {
		if args.Len() < 2 {
			return errNoPage
		}
		doc := s.Document()
		ids := make([]string, 0, args.Len()-1)
		for _, ref := range args.Slice()[1:] {
			id, err := pageRef(doc, ref)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		if err := s.DeletePages(ids...); err != nil {
			return err
		}
		env.Log.Info("Pages deleted", zap.Int("count", len(ids)), zap.Int("left", len(s.Document().Pages)))
		return nil
	})
}

// PageMove moves page to 1-based position.
func PageMove(ctx context.Context, cmd *cli.Command) error {
	return editBook(ctx, cmd, func(env *state.LocalEnv, s *editor.Session, args cli.Args) error {
		id, err := pageRef(s.Document(), args.Get(1))
		if err != nil {
			return err
		}
		pos, err := strconv.Atoi(args.Get(2))
		if err != nil {
			return fmt.Errorf("bad target position %q: %w", args.Get(2), err)
		}
		if err := s.MovePage(id, pos-1); err != nil {
			return err
		}
		p := s.Document().FindPage(id)
		env.Log.Info("Page moved", zap.String("page", p.Name), zap.Int("number", p.AutoNumber), zap.Stringer("side", p.BindingSide))
		return nil
	})
}

// frameRef resolves 1-based frame index or frame id on page.
func frameRef(p *document.Page, ref string) (string, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(p.Frames) {
			return "", fmt.Errorf("%w: frame number %d (page has %d frames)", editor.ErrNotFound, n, len(p.Frames))
		}
		return p.Frames[n-1].ID, nil
	}
	if p.FindFrame(ref) != nil {
		return ref, nil
	}
	return "", fmt.Errorf("%w: frame %s", editor.ErrNotFound, ref)
}

// frameArgs resolves "BOOK PAGE FRAME" arguments.
func frameArgs(s *editor.Session, args cli.Args) (pageID, frameID string, err error) {
	doc := s.Document()
	if pageID, err = pageRef(doc, args.Get(1)); err != nil {
		return "", "", err
	}
	if frameID, err = frameRef(doc.FindPage(pageID), args.Get(2)); err != nil {
		return "", "", err
	}
	return pageID, frameID, nil
}

// FrameAdd places new frame of requested type on page.
func FrameAdd(ctx context.Context, cmd *cli.Command) error {
	typ, err := common.ParseFrameType(cmd.String("type"))
	if err != nil {
		return err
	}
	return editBook(ctx, cmd, func(env *state.LocalEnv, s *editor.Session, args cli.Args) error {
		pageID, err := pageRef(s.Document(), args.Get(1))
		if err != nil {
			return err
		}
		id, err := s.AddFrame(pageID, typ)
		if err != nil {
			return err
		}
		if text := cmd.String("content"); len(text) > 0 {
			if err := s.SetFrameContent(pageID, id, text); err != nil {
				return err
			}
		}
		env.Log.Info("Frame added", zap.String("frame", id), zap.Stringer("type", typ))
		return nil
	})
}

// FrameEdit changes geometry, content, image crop, visibility and lock state of
// a frame. Position and size are in pixels of the page at book resolution,
// position is snapped to margins. Crop values are percents of the image.
func FrameEdit(ctx context.Context, cmd *cli.Command) error {
	return editBook(ctx, cmd, func(env *state.LocalEnv, s *editor.Session, args cli.Args) error {
		pageID, frameID, err := frameArgs(s, args)
		if err != nil {
			return err
		}
		if cmd.IsSet("x") || cmd.IsSet("y") {
			if err := s.MoveFrame(pageID, frameID, cmd.Float("x"), cmd.Float("y")); err != nil {
				return err
			}
		}
		if cmd.IsSet("width") || cmd.IsSet("height") {
			if err := s.ResizeFrame(pageID, frameID, cmd.Float("width"), cmd.Float("height")); err != nil {
				return err
			}
		}
		if cmd.IsSet("rotate") {
			if err := s.RotateFrame(pageID, frameID, cmd.Float("rotate")); err != nil {
				return err
			}
		}
		if cmd.IsSet("content") {
			if err := s.SetFrameContent(pageID, frameID, cmd.String("content")); err != nil {
				return err
			}
		}
		if cmd.IsSet("style") {
			if err := s.SetFrameStyle(pageID, frameID, cmd.String("style")); err != nil {
				return err
			}
		}
		if cropSet(cmd) {
			crop := s.Document().FindPage(pageID).FindFrame(frameID).Crop
			for name, dst := range map[string]*float64{"crop-x": &crop.X, "crop-y": &crop.Y, "crop-width": &crop.W, "crop-height": &crop.H, "zoom": &crop.Zoom} {
				set(dst, floatFlag(cmd, name))
			}
			if err := s.SetFrameCrop(pageID, frameID, crop); err != nil {
				return err
			}
		}
		if cmd.IsSet("hide") {
			if err := s.SetFrameHidden(pageID, frameID, cmd.Bool("hide")); err != nil {
				return err
			}
		}
		if cmd.IsSet("lock") {
			if err := s.SetFrameLocked(pageID, frameID, cmd.Bool("lock")); err != nil {
				return err
			}
		}
		f := s.Document().FindPage(pageID).FindFrame(frameID)
		env.Log.Info("Frame updated", zap.String("frame", frameID),
			zap.Float64("x", f.X), zap.Float64("y", f.Y), zap.Float64("w", f.W), zap.Float64("h", f.H), zap.Float64("rotation", f.Rotation),
			zap.Bool("hidden", f.Hidden), zap.Float64("zoom", f.Crop.Zoom))
		return nil
	})
}

func cropSet(cmd *cli.Command) bool {
	for _, name := range []string{"crop-x", "crop-y", "crop-width", "crop-height", "zoom"} {
		if cmd.IsSet(name) {
			return true
		}
	}
	return false
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func FrameRemove(ctx context.Context, cmd *cli.Command) error {
	return editBook(ctx, cmd, func(env *state.LocalEnv, s *editor.Session, args cli.Args) error {
		pageID, frameID, err := frameArgs(s, args)
		if err != nil {
			return err
		}
		if err := s.RemoveFrame(pageID, frameID); err != nil {
			return err
		}
		env.Log.Info("Frame removed", zap.String("frame", frameID))
		return nil
	})
}

// ImportedRemove deletes imported frames and background reference of a page.
func ImportedRemove(ctx context.Context, cmd *cli.Command) error {
	return editBook(ctx, cmd, func(env *state.LocalEnv, s *editor.Session, args cli.Args) error {
		pageID, err := pageRef(s.Document(), args.Get(1))
		if err != nil {
			return err
		}
		frames, reference, err := s.RemoveImportedContent(pageID)
		if err != nil {
			return err
		}
		env.Log.Info("Imported content removed", zap.Int("frames", frames), zap.Bool("reference", reference))
		return nil
	})
}

// ImportedCenter centers imported frames on a page.
func ImportedCenter(ctx context.Context, cmd *cli.Command) error {
	return editBook(ctx, cmd, func(env *state.LocalEnv, s *editor.Session, args cli.Args) error {
		pageID, err := pageRef(s.Document(), args.Get(1))
		if err != nil {
			return err
		}
		moved, err := s.CenterImportedContent(pageID)
		if err != nil {
			return err
		}
		env.Log.Info("Imported content centered", zap.Int("frames", moved))
		return nil
	})
}

// ImportedCopy copies imported content of one page onto other pages:
// BOOK FROM TO...
func ImportedCopy(ctx context.Context, cmd *cli.Command) error {
	return editBook(ctx, cmd, func(env *state.LocalEnv, s *editor.Session, args cli.Args) error {
		if args.Len() < 3 {
			return errNoPage
		}
		doc := s.Document()
		from, err := pageRef(doc, args.Get(1))
		if err != nil {
			return err
		}
		content, err := s.CopyImportedContent(from)
		if err != nil {
			return err
		}
		for _, ref := range args.Slice()[2:] {
			to, err := pageRef(doc, ref)
			if err != nil {
				return err
			}
			n, err := s.PasteImportedContent(to, content)
			if err != nil {
				return err
			}
			env.Log.Info("Imported content pasted", zap.String("file", content.FileName), zap.String("page", ref), zap.Int("frames", n))
		}
		return nil
	})
}
