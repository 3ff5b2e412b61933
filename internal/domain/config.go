package domain

import (
	"fmt"
	"slices"
	"strings"
)

// OutputMode selects how an outcome is reported.
type OutputMode string

const (
	OutputAuto    OutputMode = "auto"
	OutputActions OutputMode = "actions"
	OutputConsole OutputMode = "console"
	OutputJSON    OutputMode = "json"
)

// ValidOutputModes enumerates all recognized output modes.
var ValidOutputModes = []OutputMode{OutputAuto, OutputActions, OutputConsole, OutputJSON}

// DefaultWorkflowDir is validated when nothing else is configured. Relative
// paths are resolved against the repository root.
const DefaultWorkflowDir = ".github/workflows"

// DefaultSkipPrefix marks support files (shared fragments) that are not workflows.
const DefaultSkipPrefix = "_"

var validLogLevels = []string{"", "debug", "info", "warn", "error"}

var validLogFormats = []string{"", "console", "json"}

// Config holds run configuration loaded from .wflint.yaml and flags.
type Config struct {
	WorkflowDir string     `yaml:"workflow_dir" json:"workflow_dir,omitempty"`
	SkipPrefix  string     `yaml:"skip_prefix"  json:"skip_prefix,omitempty"`
	Schema      string     `yaml:"schema"       json:"schema,omitempty"`
	MetaSchemas []string   `yaml:"meta_schemas" json:"meta_schemas,omitempty"`
	Jobs        int        `yaml:"jobs"         json:"jobs,omitempty"`
	Output      OutputMode `yaml:"output"       json:"output,omitempty"`
	LogLevel    string     `yaml:"log_level"    json:"log_level,omitempty"`
	LogFormat   string     `yaml:"log_format"   json:"log_format,omitempty"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		WorkflowDir: DefaultWorkflowDir,
		SkipPrefix:  DefaultSkipPrefix,
		Jobs:        1,
		Output:      OutputAuto,
		LogLevel:    "warn",
		LogFormat:   "console",
	}
}

// Merge overlays non-zero values from override on top of c.
func (c Config) Merge(override Config) Config {
	result := c
	if override.WorkflowDir != "" {
		result.WorkflowDir = override.WorkflowDir
	}
	if override.SkipPrefix != "" {
		result.SkipPrefix = override.SkipPrefix
	}
	if override.Schema != "" {
		result.Schema = override.Schema
	}
	if len(override.MetaSchemas) > 0 {
		result.MetaSchemas = override.MetaSchemas
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.LogFormat != "" {
		result.LogFormat = override.LogFormat
	}
	return result
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c Config) Validate() error {
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must be >= 0 (got %d)", c.Jobs)
	}

	if c.Output != "" && !slices.Contains(ValidOutputModes, c.Output) {
		return fmt.Errorf("unknown output %q (valid: auto, actions, console, json)", c.Output)
	}

	if !slices.Contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel)
	}

	if !slices.Contains(validLogFormats, c.LogFormat) {
		return fmt.Errorf("unknown log_format %q (valid: console, json)", c.LogFormat)
	}

	if strings.ContainsAny(c.SkipPrefix, `/\`) {
		return fmt.Errorf("skip_prefix %q must not contain a path separator", c.SkipPrefix)
	}

	for i, m := range c.MetaSchemas {
		if strings.TrimSpace(m) == "" {
			return fmt.Errorf("meta_schemas[%d] is empty", i)
		}
	}

	return nil
}
