// Package assets prepares images placed into book pages: decoding of raster
// and SVG sources, bounded thumbnails re-encoded as JPEG, effective resolution
// and colour checks.
package assets

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	mmPerInch = 25.4

	DefaultMaxSize = 1600
	DefaultQuality = 85
	// density stamped into re-encoded JPEGs
	defaultDensity = 300
)

var ErrEmpty = errors.New("empty image data")

// Options control image preparation.
type Options struct {
	// MaxSize bounds larger thumbnail dimension in pixels.
	MaxSize int
	// JPEGQuality is used when re-encoding.
	JPEGQuality int
}

func (o Options) normalized() Options {
	if o.MaxSize <= 0 {
		o.MaxSize = DefaultMaxSize
	}
	if o.JPEGQuality <= 0 || o.JPEGQuality > 100 {
		o.JPEGQuality = DefaultQuality
	}
	return o
}

// Image is a prepared image ready to be referenced from a frame.
type Image struct {
	// Format of the source as reported by decoder ("jpeg", "png", "svg", ...).
	Format string
	// Source dimensions in pixels, before any scaling.
	SourceWidth  int
	SourceHeight int
	// Dimensions of Data.
	Width  int
	Height int
	// JPEG encoded thumbnail.
	Data      []byte
	Grayscale bool
}

// MIME type of prepared data.
func (img *Image) MIME() string {
	return "image/jpeg"
}

// DataURL returns prepared image as inline data URL.
func (img *Image) DataURL() string {
	return DataURL(img.MIME(), img.Data)
}

// EffectiveDPI reports resolution of the source image when placed into a
// frame widthMm wide.
func (img *Image) EffectiveDPI(widthMm float64) float64 {
	return EffectiveDPI(img.SourceWidth, widthMm)
}

// Prepare decodes image data (any registered raster format or SVG), scales it
// down to fit opts.MaxSize, flattens transparency on white and re-encodes it
// as JPEG.
func Prepare(data []byte, opts Options, log *zap.Logger) (*Image, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	opts = opts.normalized()

	var (
		src    image.Image
		format string
		err    error
	)
	if IsSVG(data) {
		format = "svg"
		// rasterize directly into requested box, there is no point in
		// producing full size bitmap first
		if src, err = RasterizeSVG(data, opts.MaxSize, opts.MaxSize); err != nil {
			return nil, fmt.Errorf("unable to rasterize svg: %w", err)
		}
	} else {
		if _, format, err = image.DecodeConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("unable to detect image format: %w", err)
		}
		if src, err = imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true)); err != nil {
			return nil, fmt.Errorf("unable to decode %s image: %w", format, err)
		}
	}

	res := &Image{
		Format:       format,
		SourceWidth:  src.Bounds().Dx(),
		SourceHeight: src.Bounds().Dy(),
	}

	img := src
	if res.SourceWidth > opts.MaxSize || res.SourceHeight > opts.MaxSize {
		img = imaging.Fit(src, opts.MaxSize, opts.MaxSize, imaging.Lanczos)
		log.Debug("Image scaled down",
			zap.String("format", format),
			zap.Int("width", res.SourceWidth), zap.Int("height", res.SourceHeight),
			zap.Int("new width", img.Bounds().Dx()), zap.Int("new height", img.Bounds().Dy()))
	}
	img = flatten(img)

	res.Width = img.Bounds().Dx()
	res.Height = img.Bounds().Dy()
	res.Grayscale = IsGrayscale(img)

	if res.Data, err = EncodeJPEG(img, opts.JPEGQuality, defaultDensity); err != nil {
		return nil, fmt.Errorf("unable to encode jpeg: %w", err)
	}
	return res, nil
}

// flatten draws images with transparency over white background.
func flatten(img image.Image) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.RGBA{255, 255, 255, 255}}, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

// DataURL encodes data as base64 data URL.
func DataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// MimeType sniffs image type from content. SVG is recognised by its root
// element, anything filetype does not know is reported as octet stream.
func MimeType(data []byte) string {
	if IsSVG(data) {
		return "image/svg+xml"
	}
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	return "application/octet-stream"
}

// IsDataURL reports whether s carries inline payload.
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// EffectiveDPI returns resolution of an image pixelWidth pixels wide placed
// into widthMm millimeters. Zero when either is not positive.
func EffectiveDPI(pixelWidth int, widthMm float64) float64 {
	if pixelWidth <= 0 || widthMm <= 0 {
		return 0
	}
	return float64(pixelWidth) / (widthMm / mmPerInch)
}
