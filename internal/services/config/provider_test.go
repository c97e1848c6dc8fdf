package config_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adpasswd/internal/mocks"
	"adpasswd/internal/services/config"
)

func TestProvider_Paths(t *testing.T) {
	fs := mocks.NewMockFileSystemAdapter(t)
	fs.On("UserHomeDir").Return("/home/alice", nil).Twice()

	provider := config.NewProvider(fs)

	path, err := provider.GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/home/alice/.config/adpasswd/config.yaml", path)

	legacy, err := provider.GetLegacyConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/home/alice/.adpasswd/config.json", legacy)
}

func TestProvider_HomeDirError(t *testing.T) {
	fs := mocks.NewMockFileSystemAdapter(t)
	fs.On("UserHomeDir").Return("", errors.New("$HOME is not defined")).Once()

	_, err := config.NewProvider(fs).GetConfigPath()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get home directory")
}
