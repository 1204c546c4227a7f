// Package importer turns external sources (plain text, markdown, HTML, DOCX,
// raster and SVG images, zip bundles and directories of those) into pages
// ready to be spliced into a document by the editor.
package importer

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/h2non/filetype"
	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"bookforge/archive"
	"bookforge/assets"
	"bookforge/common"
	"bookforge/config"
	"bookforge/document"
)

// ErrUnsupported is returned for sources which are recognized but cannot be
// imported.
var ErrUnsupported = errors.New("unsupported import source")

func unsupported(name, kind string) error {
	return fmt.Errorf("%w: %s (%s)", ErrUnsupported, name, kind)
}

// Options control import.
type Options struct {
	MaxCharsPerPage  int
	PlaceAsReference bool
	ReferenceOpacity float64
	// MinImageDPI only produces warnings, images are imported anyway.
	MinImageDPI float64
	// Range selects pages of every source, "1-3,6". Empty means all.
	Range string
	// StyleID is paragraph style assigned to imported text frames.
	StyleID string
	// PageWidthMm of the target document, used to compute effective image
	// resolution.
	PageWidthMm float64
	Image       assets.Options
	// CodePage is used for non UTF-8 text and zip entry names.
	CodePage encoding.Encoding
}

func OptionsFromConfig(cfg *config.ImportConfig) Options {
	return Options{
		MaxCharsPerPage:  cfg.MaxCharsPerPage,
		PlaceAsReference: cfg.PlaceAsReference,
		ReferenceOpacity: cfg.ReferenceOpacity,
		MinImageDPI:      cfg.MinImageDPI,
		StyleID:          "p-body",
		Image: assets.Options{
			MaxSize:     cfg.ThumbnailSize,
			JPEGQuality: cfg.JPEGQuality,
		},
	}
}

// Page is one imported page before it becomes part of a document.
type Page struct {
	Source     common.SourceKind
	PageNumber int
	// Mode is "structured" for text sources, "image" or "reference" for
	// images.
	Mode       string
	Frames     []document.Frame
	Background *document.BackgroundReference
}

// Batch is result of importing single source file.
type Batch struct {
	FileName string
	Kind     common.SourceKind
	// Estimated is number of pages source produced before range selection.
	Estimated int
	Pages     []Page
	Asset     document.Asset
}

type Importer struct {
	opts  Options
	split *Splitter
	log   *zap.Logger
}

func New(opts Options, log *zap.Logger) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("import")
	if opts.MaxCharsPerPage <= 0 {
		opts.MaxCharsPerPage = DefaultMaxCharsPerPage
	}
	if opts.ReferenceOpacity <= 0 {
		opts.ReferenceOpacity = 0.35
	}
	return &Importer{opts: opts, split: NewSplitter(log), log: log}
}

// ImportFile imports file, zip bundle or every file of directory tree.
// Sources are processed in natural order of their names. Failure of single
// source does not stop processing, all errors are returned together with
// successfully imported batches.
func (im *Importer) ImportFile(ctx context.Context, path string) ([]Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("input source was not found: %w", err)
	}
	if fi.IsDir() {
		return im.importDir(ctx, path)
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("unexpected path mode for %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if IsBundle(data) {
		return im.importBundle(ctx, filepath.Base(path), data)
	}
	b, err := im.ImportData(filepath.Base(path), data)
	if err != nil {
		return nil, err
	}
	return []Batch{*b}, nil
}

func (im *Importer) importDir(ctx context.Context, dir string) (batches []Batch, err error) {
	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, werr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if werr != nil {
			im.log.Warn("Skipping path", zap.String("path", path), zap.Error(werr))
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(files, func(a, b string) int {
		switch {
		case a == b:
			return 0
		case natural.Less(a, b):
			return -1
		default:
			return 1
		}
	})

	if len(files) == 0 {
		im.log.Debug("Nothing to import", zap.String("dir", dir))
	}
	for _, path := range files {
		if cerr := ctx.Err(); cerr != nil {
			return batches, multierr.Append(err, cerr)
		}
		res, ferr := im.ImportFile(ctx, path)
		batches = append(batches, res...)
		err = multierr.Append(err, ferr)
	}
	return batches, err
}

func (im *Importer) importBundle(ctx context.Context, name string, data []byte) (batches []Batch, err error) {
	werr := archive.WalkBytes(name, data, "", func(archive string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		entryName := f.FileHeader.Name
		if im.opts.CodePage != nil && f.FileHeader.NonUTF8 {
			// forcing zip file name encoding
			if n, err := im.opts.CodePage.NewDecoder().String(entryName); err == nil {
				entryName = n
			} else {
				cp, _ := ianaindex.IANA.Name(im.opts.CodePage)
				im.log.Warn("Unable to convert archive name from specified encoding",
					zap.String("charset", cp), zap.String("path", entryName), zap.Error(err))
			}
		}

		r, ferr := f.Open()
		if ferr != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %s: %w", archive, entryName, ferr))
			return nil
		}
		defer r.Close()
		content, ferr := io.ReadAll(r)
		if ferr != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %s: %w", archive, entryName, ferr))
			return nil
		}

		b, ferr := im.ImportData(filepath.Base(entryName), content)
		if ferr != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", archive, ferr))
			return nil
		}
		batches = append(batches, *b)
		return nil
	})
	return batches, multierr.Append(werr, err)
}

// ImportData imports single in-memory source. Name is used for format
// detection by extension and becomes file name of the batch.
func (im *Importer) ImportData(name string, data []byte) (batch *Batch, rerr error) {
	start := time.Now()
	defer func() {
		// NOTE: image decoders may panic on malformed input, we do not want
		// single broken file to abort whole import
		if r := recover(); r != nil {
			im.log.Error("Import ended with panic",
				zap.String("file", name), zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			batch, rerr = nil, fmt.Errorf("import panic: %s: %v", name, r)
		}
	}()

	if len(data) == 0 {
		return nil, fmt.Errorf("%s: empty file", name)
	}
	kind, err := Detect(name, data)
	if err != nil {
		return nil, err
	}

	var pages []Page
	switch kind {
	case common.SourceKindPdf:
		return nil, unsupported(name, string(kind))
	case common.SourceKindImage, common.SourceKindSvg:
		page, err := im.imagePage(name, kind, data)
		if err != nil {
			return nil, err
		}
		pages = []Page{page}
	default:
		text, err := im.extractText(name, kind, data)
		if err != nil {
			return nil, err
		}
		pages = im.textPages(name, kind, text)
	}

	estimated := len(pages)
	selected := ParseRange(im.opts.Range, estimated)
	picked := make([]Page, 0, len(selected))
	for _, n := range selected {
		picked = append(picked, pages[n-1])
	}

	batch = &Batch{
		FileName:  name,
		Kind:      kind,
		Estimated: estimated,
		Pages:     picked,
		Asset:     document.NewAsset(name, mimeType(name, data), int64(len(data))),
	}
	im.log.Debug("Source imported",
		zap.String("file", name), zap.Stringer("kind", kind),
		zap.Int("pages", len(picked)), zap.Int("estimated", estimated), zap.Duration("elapsed", time.Since(start)))
	return batch, nil
}

func (im *Importer) extractText(name string, kind common.SourceKind, data []byte) (string, error) {
	switch kind {
	case common.SourceKindDocx:
		text, err := extractDOCX(data)
		if err != nil {
			return "", err
		}
		return decodeText([]byte(text), nil)
	case common.SourceKindHtml:
		text, err := decodeText(data, im.opts.CodePage)
		if err != nil {
			return "", err
		}
		return extractHTML([]byte(text), im.log), nil
	default:
		return decodeText(data, im.opts.CodePage)
	}
}

func (im *Importer) textPages(name string, kind common.SourceKind, text string) []Page {
	if strings.TrimSpace(text) == "" {
		text = fmt.Sprintf("Content imported from %s.", name)
	}
	chunks := chunkParagraphs(splitParagraphs(text), im.opts.MaxCharsPerPage, im.split)
	pages := make([]Page, 0, len(chunks))
	for i, chunk := range chunks {
		pages = append(pages, Page{
			Source:     kind,
			PageNumber: i + 1,
			Mode:       pageModeStructured,
			Frames:     buildTextFrames(chunk, kind, im.opts.StyleID, i+1),
		})
	}
	return pages
}

func mimeType(name string, data []byte) string {
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}
