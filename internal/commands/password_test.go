package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"adpasswd/internal/domain"
	"adpasswd/internal/mocks"
	"adpasswd/internal/testutil"
)

const testPrincipal = "jdoe@CORP.EXAMPLE.COM"

func TestPasswordPrompt_Resolve_TGTPresent(t *testing.T) {
	reader := mocks.NewMockPasswordReader(t)
	tickets := mocks.NewMockTicketCacheReader(t)
	tickets.On("ListTickets", mock.Anything).Return(domain.TicketSnapshot{
		{Expires: time.Now().Add(time.Hour), Principal: "krbtgt/CORP.EXAMPLE.COM@CORP.EXAMPLE.COM"},
	}, nil)

	password, err := NewPasswordPrompt(reader, testutil.Logger()).Resolve(context.Background(), testPrincipal, tickets)

	require.NoError(t, err)
	assert.Empty(t, password)
	reader.AssertNotCalled(t, "ReadPassword", mock.Anything, mock.Anything)
}

func TestPasswordPrompt_Resolve_Prompts(t *testing.T) {
	reader := mocks.NewMockPasswordReader(t)
	tickets := mocks.NewMockTicketCacheReader(t)
	tickets.On("ListTickets", mock.Anything).Return(domain.TicketSnapshot{}, nil)
	reader.On("ReadPassword", mock.Anything, "Password for jdoe@CORP.EXAMPLE.COM: ").Return("s3cret", nil)

	password, err := NewPasswordPrompt(reader, testutil.Logger()).Resolve(context.Background(), testPrincipal, tickets)

	require.NoError(t, err)
	assert.Equal(t, "s3cret", password)
}

func TestPasswordPrompt_Resolve_AlwaysWithoutTicketReader(t *testing.T) {
	reader := mocks.NewMockPasswordReader(t)
	reader.On("ReadPassword", mock.Anything, mock.Anything).Return("s3cret", nil)

	password, err := NewPasswordPrompt(reader, testutil.Logger()).Resolve(context.Background(), testPrincipal, nil)

	require.NoError(t, err)
	assert.Equal(t, "s3cret", password)
}

func TestPasswordPrompt_Resolve_NonInteractive(t *testing.T) {
	reader := mocks.NewMockPasswordReader(t)
	reader.On("ReadPassword", mock.Anything, mock.Anything).Return("", errors.New("non-interactive terminal"))
	reader.On("IsInteractive").Return(false)

	password, err := NewPasswordPrompt(reader, testutil.Logger()).Resolve(context.Background(), testPrincipal, nil)

	require.NoError(t, err)
	assert.Empty(t, password)
}

func TestPasswordPrompt_Resolve_InteractiveError(t *testing.T) {
	reader := mocks.NewMockPasswordReader(t)
	reader.On("ReadPassword", mock.Anything, mock.Anything).Return("", errors.New("interrupted"))
	reader.On("IsInteractive").Return(true)

	_, err := NewPasswordPrompt(reader, testutil.Logger()).Resolve(context.Background(), testPrincipal, nil)

	assert.EqualError(t, err, "failed to read password: interrupted")
}
