package terminal

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPassword_FromEnvironment(t *testing.T) {
	t.Setenv(PasswordEnvVar, "s3cret")
	var stderr bytes.Buffer
	adapter := NewAdapter(strings.NewReader(""), &stderr)

	password, err := adapter.ReadPassword(context.Background(), "Password: ")

	require.NoError(t, err)
	assert.Equal(t, "s3cret", password)
	assert.Empty(t, stderr.String(), "no prompt expected when the environment supplies the password")
}

func TestReadPassword_NonInteractive(t *testing.T) {
	t.Setenv(PasswordEnvVar, "")
	adapter := NewAdapter(strings.NewReader("typed\n"), &bytes.Buffer{})

	_, err := adapter.ReadPassword(context.Background(), "Password: ")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-interactive")
	assert.False(t, adapter.IsInteractive())
}

func TestReadPassword_CancelledContext(t *testing.T) {
	t.Setenv(PasswordEnvVar, "s3cret")
	adapter := NewAdapter(strings.NewReader(""), &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := adapter.ReadPassword(ctx, "Password: ")
	require.ErrorIs(t, err, context.Canceled)
}
