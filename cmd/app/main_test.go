package main

import (
	"testing"
	"time"
	"uploads/base"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFlags(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--out", "/tmp/out", "--timeout", "5s", "--max-pages", "3", "--resolver", "api"}))

	config := base.DefaultConfig()
	require.NoError(t, applyFlags(cmd, config))

	assert.Equal(t, "/tmp/out", config.OutputDir)
	assert.Equal(t, 5*time.Second, config.RequestTimeout)
	assert.Equal(t, 3, config.MaxPages)
	assert.Equal(t, base.ResolverAPI, config.Resolver)
}

func TestApplyFlags_DefaultsUntouched(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags(nil))

	config := base.DefaultConfig()
	require.NoError(t, applyFlags(cmd, config))

	assert.Equal(t, base.DefaultConfig(), config)
}

func TestApplyFlags_UnknownResolver(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--resolver", "guess"}))

	err := applyFlags(cmd, base.DefaultConfig())

	var cerr *base.ConfigurationError
	require.ErrorAs(t, err, &cerr)
}

func TestRootCmd_RequiresHandle(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{})
	assert.Error(t, cmd.Execute())
}
