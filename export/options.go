// Package export renders a book into printable paginated HTML following the
// printable page sequence, runs pre-flight checklist and packs results into
// an export bundle.
package export

import (
	"bookforge/common"
	"bookforge/config"
)

// DefaultMinImageDPI is resolution below which image frames are reported.
const DefaultMinImageDPI = 300

// Options select export profile and rendering switches.
type Options struct {
	Profile     common.ExportProfile
	Spreads     bool
	Bleed       bool
	CropMarks   bool
	EmbedFonts  bool
	Bookmarks   bool
	Guides      bool
	ColorMode   common.ColorMode
	Compression common.Compression
	MinImageDPI float64
	// NameTemplate is Go template for output file name, empty means slug of
	// the title.
	NameTemplate  string
	BlockOnErrors bool
	// MissingImage is SVG or raster image drawn in place of image frames
	// without source.
	MissingImage []byte
}

func DefaultOptions() Options {
	return Options{
		Profile:       common.ExportProfilePrint,
		Spreads:       true,
		Bleed:         true,
		CropMarks:     true,
		EmbedFonts:    true,
		Bookmarks:     true,
		ColorMode:     common.ColorModeCMYK,
		Compression:   common.CompressionHigh,
		MinImageDPI:   DefaultMinImageDPI,
		BlockOnErrors: true,
	}
}

func OptionsFromConfig(cfg *config.ExportConfig) Options {
	return Options{
		Profile:       cfg.Profile,
		Spreads:       cfg.Spreads,
		Bleed:         cfg.Bleed,
		CropMarks:     cfg.CropMarks,
		EmbedFonts:    cfg.EmbedFonts,
		Bookmarks:     cfg.Bookmarks,
		Guides:        cfg.Guides,
		ColorMode:     cfg.ColorMode,
		Compression:   cfg.Compression,
		MinImageDPI:   cfg.MinImageDPI,
		NameTemplate:  cfg.OutputNameTemplate,
		BlockOnErrors: cfg.BlockOnErrors,
	}
}

// Effective returns options actually used for rendering: digital profile
// never has bleed or crop marks and is always RGB. Invalid enumerations fall
// back to defaults.
func (o Options) Effective() Options {
	def := DefaultOptions()
	if !o.Profile.IsValid() {
		o.Profile = def.Profile
	}
	if !o.ColorMode.IsValid() {
		o.ColorMode = def.ColorMode
	}
	if !o.Compression.IsValid() {
		o.Compression = def.Compression
	}
	if o.MinImageDPI <= 0 {
		o.MinImageDPI = def.MinImageDPI
	}
	if o.Profile == common.ExportProfileDigital {
		o.Bleed = false
		o.CropMarks = false
		o.ColorMode = common.ColorModeRGB
	}
	return o
}
