package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"bookforge/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	MarginsConfig struct {
		Top                 float64 `yaml:"top" validate:"gte=0"`
		Bottom              float64 `yaml:"bottom" validate:"gte=0"`
		Inside              float64 `yaml:"inside" validate:"gte=0"`
		Outside             float64 `yaml:"outside" validate:"gte=0"`
		Spine               float64 `yaml:"spine" validate:"gte=0"`
		OddEvenCompensation float64 `yaml:"odd_even_compensation"`
	}

	// DocumentConfig has defaults for newly created books.
	DocumentConfig struct {
		Title        string                 `yaml:"title" validate:"required"`
		Pages        int                    `yaml:"pages" validate:"min=1,max=2000"`
		Format       common.PageFormat      `yaml:"format" validate:"required"`
		Orientation  common.Orientation     `yaml:"orientation" validate:"required"`
		Width        float64                `yaml:"width" validate:"gte=0"`
		Height       float64                `yaml:"height" validate:"gte=0"`
		DPI          float64                `yaml:"dpi" validate:"gt=0"`
		Spreads      bool                   `yaml:"spreads"`
		StartOnRight bool                   `yaml:"start_on_right"`
		Margins      MarginsConfig          `yaml:"margins"`
		Bleed        float64                `yaml:"bleed" validate:"gte=0"`
		SafeArea     float64                `yaml:"safe_area" validate:"gte=0"`
		Pagination   common.PaginationStyle `yaml:"pagination" validate:"required"`
		MarginPreset common.VisualPreset    `yaml:"margin_preset" validate:"required"`
	}

	HistoryConfig struct {
		Limit int `yaml:"limit" validate:"min=1,max=10000"`
	}

	StorageConfig struct {
		Path             string `yaml:"path" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
		MaxDocumentBytes int    `yaml:"max_document_bytes" validate:"min=1024"`
	}

	ImportConfig struct {
		MaxCharsPerPage  int     `yaml:"max_chars_per_page" validate:"min=200"`
		SectionPerFile   bool    `yaml:"section_per_file"`
		PlaceAsReference bool    `yaml:"place_as_reference"`
		ReferenceOpacity float64 `yaml:"reference_opacity" validate:"gte=0.05,lte=1"`
		MinImageDPI      float64 `yaml:"min_image_dpi" validate:"gte=0"`
		ThumbnailSize    int     `yaml:"thumbnail_size" validate:"min=64"`
		JPEGQuality      int     `yaml:"jpeg_quality_level" validate:"min=40,max=100"`
	}

	ExportConfig struct {
		Profile            common.ExportProfile `yaml:"profile" validate:"required"`
		Spreads            bool                 `yaml:"spreads"`
		Bleed              bool                 `yaml:"bleed"`
		CropMarks          bool                 `yaml:"crop_marks"`
		EmbedFonts         bool                 `yaml:"embed_fonts"`
		Bookmarks          bool                 `yaml:"bookmarks"`
		Guides             bool                 `yaml:"guides"`
		ColorMode          common.ColorMode     `yaml:"color_mode" validate:"required"`
		Compression        common.Compression   `yaml:"compression" validate:"required"`
		MinImageDPI        float64              `yaml:"min_image_dpi" validate:"gte=0"`
		OutputNameTemplate string               `yaml:"output_name_template"`
		BlockOnErrors      bool                 `yaml:"block_on_errors"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Document  DocumentConfig `yaml:"document"`
		History   HistoryConfig  `yaml:"history"`
		Storage   StorageConfig  `yaml:"storage"`
		Import    ImportConfig   `yaml:"import"`
		Export    ExportConfig   `yaml:"export"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, output name template is
	// expanded at export time with document values
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("failed to sanitize configuration: %w", err)
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("failed to validate configuration: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to
// provide sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
