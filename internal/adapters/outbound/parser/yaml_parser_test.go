package parser_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/wflint/internal/adapters/outbound/parser"
	"github.com/abdidvp/wflint/internal/domain"
)

const ciWorkflow = `name: CI
on: push
jobs:
  build:
    runs-on: ubuntu-latest
    timeout-minutes: 15
    steps:
      - uses: actions/checkout@v4
      - run: make
`

func TestYAMLParser_Parse(t *testing.T) {
	doc, err := parser.New().Parse([]byte(ciWorkflow))
	require.NoError(t, err)

	root, ok := doc.Value.(map[string]any)
	require.True(t, ok, "root should be a string-keyed map, got %T", doc.Value)
	assert.Equal(t, "CI", root["name"])
	assert.Equal(t, "push", root["on"], "on is a plain string key, not a boolean")

	jobs := root["jobs"].(map[string]any)
	build := jobs["build"].(map[string]any)
	assert.Equal(t, json.Number("15"), build["timeout-minutes"])

	steps := build["steps"].([]any)
	assert.Len(t, steps, 2)
}

func TestYAMLParser_NumbersBecomeJSONNumbers(t *testing.T) {
	doc, err := parser.New().Parse([]byte("a: 1\nb: -2\nc: 1.5\n"))
	require.NoError(t, err)

	root := doc.Value.(map[string]any)
	assert.Equal(t, json.Number("1"), root["a"])
	assert.Equal(t, json.Number("-2"), root["b"])
	assert.Equal(t, json.Number("1.5"), root["c"])
}

func TestYAMLParser_EmptyDocumentIsNull(t *testing.T) {
	for _, input := range []string{"", "# only a comment\n", "---\n"} {
		doc, err := parser.New().Parse([]byte(input))
		require.NoError(t, err, "input %q", input)
		assert.Nil(t, doc.Value, "input %q", input)
	}
}

func TestYAMLParser_SyntaxError(t *testing.T) {
	_, err := parser.New().Parse([]byte("on: push\njobs: [unterminated\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrParse)

	var pe *domain.ParseError
	require.ErrorAs(t, err, &pe)
	assert.NotEmpty(t, pe.Msg)
	assert.False(t, strings.Contains(pe.Msg, "\n"), "message is a single line: %q", pe.Msg)
}

func TestYAMLParser_MultipleDocumentsRejected(t *testing.T) {
	_, err := parser.New().Parse([]byte("on: push\n---\non: pull_request\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrParse)
	assert.Contains(t, err.Error(), "single document")
}

func TestYAMLParser_LocateNestedKey(t *testing.T) {
	doc, err := parser.New().Parse([]byte(ciWorkflow))
	require.NoError(t, err)
	require.NotNil(t, doc.Locator)

	pos, ok := doc.Locator.Locate([]string{"jobs", "build", "steps"})
	require.True(t, ok)
	assert.Equal(t, domain.Position{Line: 7, Column: 5}, pos)
}

func TestYAMLParser_LocateSequenceItem(t *testing.T) {
	doc, err := parser.New().Parse([]byte(ciWorkflow))
	require.NoError(t, err)

	pos, ok := doc.Locator.Locate([]string{"jobs", "build", "steps", "1"})
	require.True(t, ok)
	assert.Equal(t, 9, pos.Line)
}

func TestYAMLParser_LocateFallsBackToDeepestParent(t *testing.T) {
	doc, err := parser.New().Parse([]byte(ciWorkflow))
	require.NoError(t, err)

	pos, ok := doc.Locator.Locate([]string{"jobs", "deploy", "runs-on"})
	require.True(t, ok)
	assert.Equal(t, 3, pos.Line, "points at the jobs key")
}

func TestYAMLParser_LocateRoot(t *testing.T) {
	doc, err := parser.New().Parse([]byte(ciWorkflow))
	require.NoError(t, err)

	_, ok := doc.Locator.Locate(nil)
	assert.False(t, ok)
}
