// internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Tag names (plus "none") visible when a document is first opened.
	DefaultFilter []string `yaml:"default_filter"`
	// Save the sidecar after every tag mutation. Off means save on exit
	// and on explicit request only.
	Autosave *bool `yaml:"autosave"`
	// Resolution for page rendering in the viewer.
	RenderDPI float64 `yaml:"render_dpi"`
	// Suffix for the default filtered-export file name.
	ExportSuffix string `yaml:"export_suffix"`
}

func Default() *Config {
	autosave := true
	return &Config{
		DefaultFilter: []string{"known", "review", "hard", "none"},
		Autosave:      &autosave,
		RenderDPI:     96,
		ExportSuffix:  "_filtered",
	}
}

// Load reads a YAML config from path, filling unset fields with defaults.
// A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if len(cfg.DefaultFilter) == 0 {
		cfg.DefaultFilter = Default().DefaultFilter
	}
	if cfg.Autosave == nil {
		cfg.Autosave = Default().Autosave
	}
	if cfg.RenderDPI <= 0 {
		cfg.RenderDPI = Default().RenderDPI
	}
	if cfg.ExportSuffix == "" {
		cfg.ExportSuffix = Default().ExportSuffix
	}

	return cfg, nil
}

// AutosaveEnabled reports the effective autosave setting.
func (c *Config) AutosaveEnabled() bool {
	return c.Autosave == nil || *c.Autosave
}
