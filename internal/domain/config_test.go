package domain_test

import (
	"testing"

	"github.com/abdidvp/wflint/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.Equal(t, ".github/workflows", cfg.WorkflowDir)
	assert.Equal(t, "_", cfg.SkipPrefix)
	assert.Equal(t, 1, cfg.Jobs)
	assert.Equal(t, domain.OutputAuto, cfg.Output)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_MergeExplicitValuesWin(t *testing.T) {
	base := domain.DefaultConfig()
	merged := base.Merge(domain.Config{
		WorkflowDir: "workflows",
		Jobs:        4,
		MetaSchemas: []string{"draft-06.json"},
	})

	assert.Equal(t, "workflows", merged.WorkflowDir)
	assert.Equal(t, 4, merged.Jobs)
	assert.Equal(t, []string{"draft-06.json"}, merged.MetaSchemas)
	assert.Equal(t, "_", merged.SkipPrefix, "unset values keep the base")
	assert.Equal(t, domain.OutputAuto, merged.Output)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     domain.Config
		wantErr string
	}{
		{"zero value", domain.Config{}, ""},
		{"negative jobs", domain.Config{Jobs: -1}, "jobs must be >= 0"},
		{"bad output", domain.Config{Output: "xml"}, `unknown output "xml"`},
		{"bad log level", domain.Config{LogLevel: "trace"}, `unknown log_level "trace"`},
		{"upper log level", domain.Config{LogLevel: "DEBUG"}, ""},
		{"bad log format", domain.Config{LogFormat: "pretty"}, `unknown log_format "pretty"`},
		{"prefix with slash", domain.Config{SkipPrefix: "a/"}, "must not contain a path separator"},
		{"empty meta schema", domain.Config{MetaSchemas: []string{" "}}, "meta_schemas[0] is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
