package application_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/wflint/internal/adapters/outbound/parser"
	"github.com/abdidvp/wflint/internal/adapters/outbound/report"
	"github.com/abdidvp/wflint/internal/adapters/outbound/scanner"
	"github.com/abdidvp/wflint/internal/adapters/outbound/schema"
	"github.com/abdidvp/wflint/internal/application"
	"github.com/abdidvp/wflint/internal/domain"
)

func pipelineFor(src schema.Source, dir string) application.Pipeline {
	return func() (domain.Outcome, error) {
		v, err := schema.Compile(src, zerolog.Nop())
		if err != nil {
			return nil, err
		}
		svc := application.NewLintService(scanner.New("_"), parser.New(), v, 1, zerolog.Nop())
		return svc.ValidateDir(dir)
	}
}

func TestRun_CleanPass(t *testing.T) {
	rec := report.NewRecorder()

	outcome, err := application.Run(rec, zerolog.Nop(), pipelineFor(schema.Embedded(), filepath.Join(fixtures, "clean")))

	require.NoError(t, err)
	assert.Empty(t, outcome)
	require.Len(t, rec.Entries, 1)
	assert.Equal(t, []string{application.MsgNoErrors}, rec.Messages(report.EntryInfo))
	assert.False(t, rec.Failed())
}

func TestRun_ExampleScenarioSignalsFailure(t *testing.T) {
	rec := report.NewRecorder()

	outcome, err := application.Run(rec, zerolog.Nop(), pipelineFor(schema.Embedded(), filepath.Join(fixtures, "mixed")))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrWorkflowsInvalid)
	assert.NotErrorIs(t, err, domain.ErrUnhandled)
	require.Len(t, outcome, 1)

	lines := rec.Messages(report.EntryError)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "b.yml - ")
	assert.Contains(t, lines[0], "jobs")
	assert.True(t, rec.Failed())
}

func TestRun_FatalSetupProducesNoResults(t *testing.T) {
	broken := schema.Source{Resource: schema.Resource{
		URL:  "file:///broken.json",
		Data: []byte(`{"$schema": "http://json-schema.org/draft-07/schema#", "$ref": "https://example.invalid/missing-meta.json"}`),
	}}
	rec := report.NewRecorder()
	var validated bool
	pipeline := func() (domain.Outcome, error) {
		out, err := pipelineFor(broken, filepath.Join(fixtures, "mixed"))()
		validated = err == nil
		return out, err
	}

	outcome, err := application.Run(rec, zerolog.Nop(), pipeline)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnhandled)
	assert.ErrorIs(t, err, domain.ErrSetup)
	assert.Nil(t, outcome)
	assert.False(t, validated)
	assert.Empty(t, rec.Messages(report.EntryStartGroup), "no per-file report")
	assert.Equal(t, []string{application.MsgUnhandledError}, rec.Messages(report.EntryFailed))
	assert.True(t, rec.Failed())
}

func TestRun_ListingFailureIsUnhandled(t *testing.T) {
	rec := report.NewRecorder()

	_, err := application.Run(rec, zerolog.Nop(), pipelineFor(schema.Embedded(), filepath.Join(t.TempDir(), "nope")))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnhandled)
	assert.ErrorIs(t, err, domain.ErrFilesystem)
	assert.True(t, rec.Failed())
}

func TestRun_PanicBecomesUnhandledError(t *testing.T) {
	rec := report.NewRecorder()

	outcome, err := application.Run(rec, zerolog.Nop(), func() (domain.Outcome, error) {
		panic("validator exploded")
	})

	require.Error(t, err)
	var ue *domain.UnhandledError
	require.ErrorAs(t, err, &ue)
	assert.Contains(t, err.Error(), "validator exploded")
	assert.Nil(t, outcome)
	require.Len(t, rec.Messages(report.EntryError), 1)
	assert.Contains(t, rec.Messages(report.EntryError)[0], "validator exploded")
}

func TestRun_ErrorIsWrappedOnce(t *testing.T) {
	rec := report.NewRecorder()
	inner := &domain.UnhandledError{Err: errors.New("already wrapped")}

	_, err := application.Run(rec, zerolog.Nop(), func() (domain.Outcome, error) {
		return nil, inner
	})

	assert.Same(t, inner, err)
}
