package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMCPCommandExists(t *testing.T) {
	_, _, err := run(t, "mcp", "--help")
	assert.NoError(t, err)
}

func TestMCPServeCommandExists(t *testing.T) {
	_, _, err := run(t, "mcp", "serve", "--help")
	assert.NoError(t, err)
}
