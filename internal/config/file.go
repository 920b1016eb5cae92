package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileConfig represents the configuration file. TOML keys use dashes and
// YAML keys use underscores.
type FileConfig struct {
	NamePath    *string `toml:"name-path" yaml:"name_path"`
	Normalize   *bool   `toml:"normalize" yaml:"normalize"`
	LabelPeriod *int    `toml:"label-period" yaml:"label_period"`
	Top         *int    `toml:"top" yaml:"top"`
	Workers     *int    `toml:"workers" yaml:"workers"`
}

// LoadConfig reads a TOML or YAML config from the given path, picking the
// format from the extension. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return FileConfig{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
		}
	default:
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
		}
	}
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

// resolvePaths makes a relative name path relative to the config file.
func (c *FileConfig) resolvePaths(base string) {
	if c.NamePath == nil || *c.NamePath == "" {
		return
	}
	p := *c.NamePath
	if strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(base, p)
	}
	c.NamePath = &p
}
