package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/abdidvp/wflint/internal/domain"
)

// FileName is the optional project configuration file, looked up in the
// repository root.
const FileName = ".wflint.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .wflint.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .wflint.yaml from root and overlays it on domain.DefaultConfig.
// A missing file is not an error.
func (l *YAMLLoader) Load(root string) (domain.Config, error) {
	data, err := os.ReadFile(filepath.Join(root, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	// Validate before merging so typos in the user's file are reported as written.
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}

	cfg.Schema = resolve(root, cfg.Schema)
	for i, m := range cfg.MetaSchemas {
		cfg.MetaSchemas[i] = resolve(root, m)
	}

	return domain.DefaultConfig().Merge(cfg), nil
}

// resolve makes file references in the config relative to the file itself.
func resolve(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
