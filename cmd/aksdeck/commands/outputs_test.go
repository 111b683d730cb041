package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputs(t *testing.T) {
	cmd := Outputs()

	require.NotNil(t, cmd)
	assert.Equal(t, "outputs", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}

func TestOutputs_Flags(t *testing.T) {
	cmd := Outputs()

	config := cmd.Flags().Lookup("config")
	require.NotNil(t, config)
	assert.Equal(t, "c", config.Shorthand)

	jsonFlag := cmd.Flags().Lookup("json")
	require.NotNil(t, jsonFlag)
	assert.Equal(t, "false", jsonFlag.DefValue)
}
