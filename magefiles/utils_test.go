//go:build mage

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithEnvMerges(t *testing.T) {
	opts := &cmdOptions{}
	withEnv(map[string]string{"A": "1", "B": "2"})(opts)
	withEnv(map[string]string{"B": "3"})(opts)
	assert.Equal(t, map[string]string{"A": "1", "B": "3"}, opts.env)
}

func TestExecuteCmdPassesEnv(t *testing.T) {
	out, err := executeCmd("go", withArgs("env", "CGO_ENABLED"), withEnv(cgoEnv))
	require.NoError(t, err)
	assert.Equal(t, "1", strings.TrimSpace(out))
}

func TestExecuteCmdUnknownCommand(t *testing.T) {
	_, err := executeCmd("glengine-no-such-command")
	assert.Error(t, err)
}
