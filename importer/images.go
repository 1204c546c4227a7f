package importer

import (
	"fmt"

	"go.uber.org/zap"

	"bookforge/assets"
	"bookforge/common"
	"bookforge/document"
)

const (
	pageModeStructured = "structured"
	pageModeReference  = "reference"
	pageModeImage      = "image"

	// geometry of imported image frame in page percents
	imageFrameInset = 4.0
	imageFrameSize  = 92.0
)

// imagePage prepares single page carrying the image. In reference mode the
// image becomes locked non printable background and page gets default text
// frame to type over it, otherwise it is placed into image frame covering
// the page.
func (im *Importer) imagePage(name string, kind common.SourceKind, data []byte) (Page, error) {
	img, err := assets.Prepare(data, im.opts.Image, im.log)
	if err != nil {
		return Page{}, fmt.Errorf("unable to prepare image %s: %w", name, err)
	}

	page := Page{Source: kind, PageNumber: 1}

	if im.opts.PlaceAsReference {
		page.Mode = pageModeReference
		page.Background = &document.BackgroundReference{
			ID:           document.NewID("bgref"),
			Mode:         pageModeReference,
			SourceName:   name,
			SourceType:   string(kind),
			PageNumber:   1,
			Locked:       true,
			Visible:      true,
			NonPrintable: true,
			Opacity:      im.opts.ReferenceOpacity,
			DataURL:      img.DataURL(),
			IsRasterized: kind == common.SourceKindSvg,
		}
		page.Frames = []document.Frame{document.DefaultTextFrame()}
		return page, nil
	}

	f := document.NewFrame(common.FrameTypeImage)
	f.X, f.Y, f.W, f.H = imageFrameInset, imageFrameInset, imageFrameSize, imageFrameSize
	f.Layer = "imported-image"
	f.Content = name
	f.Src = img.DataURL()
	f.Imported = true
	f.ImportedFrom = string(kind)

	if im.opts.PageWidthMm > 0 {
		f.DPI = img.EffectiveDPI(im.opts.PageWidthMm * imageFrameSize / 100)
		if im.opts.MinImageDPI > 0 && f.DPI < im.opts.MinImageDPI {
			im.log.Warn("Imported image resolution is low",
				zap.String("file", name), zap.Float64("dpi", f.DPI), zap.Float64("required", im.opts.MinImageDPI))
		}
	}

	page.Mode = pageModeImage
	page.Frames = []document.Frame{f}
	return page, nil
}
