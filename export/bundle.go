package export

import (
	"archive/zip"
	"compress/flate"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"bookforge/archive"
	"bookforge/common"
	"bookforge/document"
	"bookforge/layout"
)

const (
	IndexName     = "index.html"
	BookName      = "book.json"
	ChecklistName = "checklist.json"
)

var (
	ErrBlocked = errors.New("export blocked by checklist errors")
	ErrExists  = errors.New("output file already exists")
)

// Result describes produced bundle.
type Result struct {
	Path   string
	Checks []Check
	Sheets int
}

// Write runs checklist and writes export bundle (paginated HTML, document
// JSON and checklist) to destination. Destination which is an existing
// directory, ends with separator or is empty gets generated file name.
func Write(ctx context.Context, doc *document.Document, opts Options, destination string, overwrite bool, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("export")
	opts = opts.Effective()

	doc, snap := layout.Recalculate(doc)
	res := &Result{Checks: Checklist(doc, snap, opts)}
	if !CanExport(res.Checks, opts) {
		_, errs := Counts(res.Checks)
		return res, fmt.Errorf("%w: %d critical", ErrBlocked, errs)
	}

	res.Path = outputPath(doc, opts, destination, log)
	if _, err := os.Stat(res.Path); err == nil {
		if !overwrite {
			return res, fmt.Errorf("%w: %s", ErrExists, res.Path)
		}
	} else if !os.IsNotExist(err) {
		return res, err
	}
	if err := os.MkdirAll(filepath.Dir(res.Path), 0755); err != nil {
		return res, fmt.Errorf("unable to create output directory: %w", err)
	}

	page, err := RenderHTML(doc, opts)
	if err != nil {
		return res, err
	}
	book, err := document.Encode(doc, true)
	if err != nil {
		return res, err
	}
	checks, err := json.MarshalIndent(res.Checks, "", "  ")
	if err != nil {
		return res, err
	}

	workDir, err := os.MkdirTemp("", "bookforge-export-")
	if err != nil {
		return res, fmt.Errorf("unable to create working directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	tmpName := filepath.Join(workDir, filepath.Base(res.Path))
	entries := []struct {
		name string
		data []byte
	}{
		{IndexName, page},
		{BookName, book},
		{ChecklistName, checks},
	}

	f, err := os.Create(tmpName)
	if err != nil {
		return res, fmt.Errorf("unable to create output file: %w", err)
	}
	defer f.Close()

	zw := newZipWriter(f, opts.Compression)
	defer zw.Close()
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := writeDataToZip(zw, e.name, e.data, opts.Compression); err != nil {
			return res, fmt.Errorf("unable to write %s: %w", e.name, err)
		}
	}
	// make sure buffers are flushed before continuing
	if err := zw.Close(); err != nil {
		return res, fmt.Errorf("unable to close output archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return res, fmt.Errorf("unable to finalize output file: %w", err)
	}
	if err := archive.StripDataDescriptors(tmpName, res.Path); err != nil {
		return res, err
	}

	res.Sheets = len(layout.PrintableSequence(doc, opts.Spreads))
	if opts.Spreads {
		res.Sheets = (res.Sheets + 1) / 2
	}
	log.Info("Export bundle written",
		zap.String("output", res.Path),
		zap.Stringer("profile", opts.Profile),
		zap.Int("sheets", res.Sheets),
		zap.Int("checks", len(res.Checks)))
	return res, nil
}

func outputPath(doc *document.Document, opts Options, destination string, log *zap.Logger) string {
	name := OutputName(doc, opts, log)
	if destination == "" {
		return name
	}
	if strings.HasSuffix(destination, string(os.PathSeparator)) || strings.HasSuffix(destination, "/") {
		return filepath.Join(destination, name)
	}
	if fi, err := os.Stat(destination); err == nil && fi.IsDir() {
		return filepath.Join(destination, name)
	}
	return destination
}

func newZipWriter(w io.Writer, c common.Compression) *zip.Writer {
	zw := zip.NewWriter(w)
	if c == common.CompressionHigh {
		zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(out, flate.BestCompression)
		})
	}
	return zw
}

func writeDataToZip(zw *zip.Writer, name string, data []byte, c common.Compression) error {
	method := zip.Deflate
	if c == common.CompressionNone {
		method = zip.Store
	}
	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: method})
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
