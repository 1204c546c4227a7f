package export

import (
	"bytes"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"bookforge/config"
	"bookforge/document"
)

// BundleExt is extension of export bundles.
const BundleExt = ".zip"

// Values are made available to output name template.
type Values struct {
	Title   string
	Profile string
	Pages   int
	Format  string
	Spreads bool
	ID      string
}

func expandTemplate(field string, v Values) (string, error) {
	tmpl, err := template.New(string(config.OutputNameTemplateFieldName)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", config.OutputNameTemplateFieldName, err)
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// OutputName returns relative bundle file name for the document. Name
// template may produce subdirectories with "/", every segment is cleaned.
// When template is empty or fails slug of the title is used.
func OutputName(doc *document.Document, opts Options, log *zap.Logger) string {
	if log == nil {
		log = zap.NewNop()
	}
	opts = opts.Effective()
	def := slug.Make(doc.Title)
	if def == "" {
		def = "book"
	}
	def = config.CleanFileName(def) + BundleExt

	if opts.NameTemplate == "" {
		return def
	}
	expanded, err := expandTemplate(opts.NameTemplate, Values{
		Title:   doc.Title,
		Profile: opts.Profile.String(),
		Pages:   len(doc.Pages),
		Format:  doc.Settings.Format.String(),
		Spreads: opts.Spreads,
		ID:      doc.ID,
	})
	if err != nil {
		log.Warn("Unable to prepare output filename", zap.Error(err))
		return def
	}

	var segments []string
	for seg := range strings.SplitSeq(path.Clean(filepath.ToSlash(expanded)), "/") {
		if seg = strings.TrimSpace(seg); seg != "" && seg != "." && seg != ".." {
			segments = append(segments, config.CleanFileName(seg))
		}
	}
	if len(segments) == 0 {
		return def
	}
	segments[len(segments)-1] += BundleExt
	return filepath.Join(segments...)
}
