package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	validator "github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	FontConfig struct {
		// empty path selects embedded font
		Path    string  `yaml:"path" sanitize:"assure_file_access"`
		Size    float64 `yaml:"size" validate:"gt=0"`
		Spacing float64 `yaml:"spacing" validate:"gte=1,lte=4"`
	}

	ContainerConfig struct {
		Name     string  `yaml:"name" validate:"required,excludesall=/\\"`
		Width    float64 `yaml:"width" validate:"gt=0"`
		Height   float64 `yaml:"height" validate:"gte=0"`
		Template bool    `yaml:"template,omitempty"`
	}

	LayoutConfig struct {
		Oracle                 OracleKind        `yaml:"oracle" validate:"gte=0"`
		Font                   FontConfig        `yaml:"font"`
		Containers             []ContainerConfig `yaml:"containers" validate:"required,min=1,unique=Name,dive"`
		RemoveUnusedTemplate   bool              `yaml:"remove_unused_template"`
		RemoveUnusedContainers bool              `yaml:"remove_unused_containers"`
		Marker                 string            `yaml:"marker"`
		StrictTags             bool              `yaml:"strict_tags"`
		MaxClones              int               `yaml:"max_clones" validate:"gte=0"`
	}

	SourceConfig struct {
		Element            string `yaml:"element" validate:"required"`
		CollapseWhitespace bool   `yaml:"collapse_whitespace"`
	}

	PreviewConfig struct {
		Width  int `yaml:"width" validate:"min=16"`
		Height int `yaml:"height" validate:"min=16"`
	}

	OutputConfig struct {
		NameTemplate  string        `yaml:"name_template"`
		Transliterate bool          `yaml:"transliterate"`
		Manifest      bool          `yaml:"manifest"`
		Console       ConsoleMode   `yaml:"console" validate:"gte=0"`
		Preview       PreviewConfig `yaml:"preview"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Layout    LayoutConfig   `yaml:"layout"`
		Source    SourceConfig   `yaml:"source"`
		Output    OutputConfig   `yaml:"output"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above
	NameTemplateFieldName TemplateFieldName = "name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(NameTemplateFieldName)),
)

// checkContainers makes sure sheet could be built from configuration: at most
// one template, which cannot be the only container with zero height.
func checkContainers(sl validator.StructLevel) {
	cfg, ok := sl.Current().Interface().(Config)
	if !ok {
		return
	}
	templates := 0
	for _, c := range cfg.Layout.Containers {
		if c.Template {
			templates++
			if c.Height < 1 {
				sl.ReportError(c.Height, "Height", "Height", "template_height", c.Name)
			}
		}
	}
	if templates > 1 {
		sl.ReportError(cfg.Layout.Containers, "Containers", "Containers", "single_template", "")
	}
}

// Template returns configuration of template container or nil.
func (conf *LayoutConfig) Template() *ContainerConfig {
	for i := range conf.Containers {
		if conf.Containers[i].Template {
			return &conf.Containers[i]
		}
	}
	return nil
}

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
			return nil, fmt.Errorf("configuration sanitation failed: %w", err)
		}
		if err := gencfg.Validate(*cfg, gencfg.WithAdditionalChecks(checkContainers)); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation.
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

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// NOTE: sequences are not merged, containers from file replace defaults
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
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
