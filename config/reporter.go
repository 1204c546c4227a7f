package config

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"bookforge/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates empty report. When destination cannot be created report
// goes into temporary file.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	f, err := os.Create(conf.Destination)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err != nil {
			return nil, fmt.Errorf("unable to create report: %w", err)
		}
	}
	return &Report{entries: make(map[string]entry), file: f}, nil
}

// entry is either in-memory data or a path to file or directory which is
// read when report is finalized.
type entry struct {
	source string
	path   string
	stamp  time.Time
	data   []byte
}

// Report accumulates everything needed to investigate a run: logs, book
// dumps, checklists and copies of produced files. All methods are no-ops on
// nil report so callers never check whether report was requested.
// Not safe for concurrent use.
type Report struct {
	entries map[string]entry
	// scratch directories hold copies made by StoreCopy, removed on Close
	scratch []string
	file    *os.File
}

// Close writes report archive and removes scratch copies.
func (r *Report) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	defer func() {
		for _, dir := range r.scratch {
			os.RemoveAll(dir)
		}
		r.scratch = nil
	}()
	defer r.file.Close()
	return r.finalize()
}

// Name returns absolute name of the report archive.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

func (r *Report) add(name string, e entry, replaceSame bool) {
	if old, exists := r.entries[name]; exists && !(replaceSame && old.source == e.source) {
		panic(fmt.Sprintf("report entry [%s] stored twice: was %q, now %q", name, old.source, e.source))
	}
	r.entries[name] = e
}

// Store remembers file or directory to be put into report as is at the time
// report is closed.
func (r *Report) Store(name, path string) {
	if r == nil {
		return
	}
	e := entry{source: path, path: path}
	if p, err := filepath.Abs(path); err == nil {
		e.path = p
	}
	r.add(name, e, true)
}

// StoreData puts data into report under requested name.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}
	r.add(name, entry{data: data, stamp: time.Now()}, false)
}

// StoreText is StoreData for textual dumps (layout trees, configuration).
func (r *Report) StoreText(name, text string) {
	r.StoreData(name, []byte(text))
}

// StoreCopy copies file or directory right away, report gets it as directory
// named name. Repeated names are versioned, so the same file could be
// stored at different moments.
func (r *Report) StoreCopy(name, path string) error {
	if r == nil {
		return nil
	}

	src, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	dir, err := os.MkdirTemp("", misc.GetAppName()+"-r-")
	if err != nil {
		return err
	}
	r.scratch = append(r.scratch, dir)

	switch {
	case info.Mode().IsRegular():
		err = copyFile(filepath.Join(dir, filepath.Base(src)), src, info.ModTime())
	case info.IsDir():
		err = os.CopyFS(dir, os.DirFS(src))
	default:
		err = fmt.Errorf("unable to copy %s into report: not a file or directory", src)
	}
	if err != nil {
		return err
	}

	now := time.Now()
	if _, exists := r.entries[name]; exists {
		name = fmt.Sprintf("%s-%d", name, now.UnixNano())
	}
	r.add(name, entry{source: path, path: dir, stamp: now}, false)
	return nil
}

func copyFile(dst, src string, modTime time.Time) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, modTime, modTime)
}

// finalize writes MANIFEST followed by all entries in name order. Entries
// whose files disappeared are skipped.
func (r *Report) finalize() error {
	arc := zip.NewWriter(r.file)

	names, manifest := prepareManifest(r.entries)
	if err := saveFile(arc, "MANIFEST", time.Now(), bytes.NewReader(manifest)); err != nil {
		return err
	}

	for _, name := range names {
		e := r.entries[name]
		if e.data != nil {
			if err := saveFile(arc, name, e.stamp, bytes.NewReader(e.data)); err != nil {
				return err
			}
			continue
		}

		info, err := os.Stat(e.path)
		if err != nil {
			continue
		}
		if info.IsDir() {
			err = saveDir(arc, name, e.path)
		} else if info.Mode().IsRegular() {
			err = savePath(arc, name, e.path, info.ModTime())
		}
		if err != nil {
			return err
		}
	}
	return arc.Close()
}

func prepareManifest(entries map[string]entry) ([]string, []byte) {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	slices.Sort(names)

	now := time.Now()
	var buf bytes.Buffer
	for _, name := range names {
		e := entries[name]
		stamp := e.stamp
		if stamp.IsZero() {
			stamp = now
		}
		source := e.source
		if e.data != nil {
			source = fmt.Sprintf("<%d bytes>", len(e.data))
		}
		fmt.Fprintf(&buf, "%s\t%s\t%s : %s\n", stamp.UTC().Format(time.UnixDate), name, source, e.path)
	}
	return names, buf.Bytes()
}

func saveFile(dst *zip.Writer, name string, t time.Time, src io.Reader) error {
	w, err := dst.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: t})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}

func savePath(dst *zip.Writer, name, path string, t time.Time) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return saveFile(dst, name, t, f)
}

// saveDir stores regular files of the tree under name, links and special
// files are skipped.
func saveDir(dst *zip.Writer, name, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.Type().IsRegular() {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		return savePath(dst, filepath.ToSlash(filepath.Join(name, rel)), path, info.ModTime())
	})
}
