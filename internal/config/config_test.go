package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadVMDefaults(t *testing.T) {
	c, err := LoadVM()
	require.NoError(t, err)
	require.Equal(t, 1024, c.StackSize)
	require.Equal(t, 1024, c.CallFrames)
	require.Equal(t, 0, c.MaxSteps)
}

func TestLoadVMFromEnv(t *testing.T) {
	t.Setenv("SLOTH_STACK_SIZE", "2048")
	os.Unsetenv("SLOTH_MAX_STEPS")
	c, err := LoadVM()
	require.NoError(t, err)
	require.Equal(t, 2048, c.StackSize)
}
