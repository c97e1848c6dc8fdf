package kerberos

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"adpasswd/internal/domain"
	"adpasswd/internal/mocks"
	"adpasswd/internal/testutil"
)

var testCredential = domain.Credential{Realm: "CORP.EXAMPLE.COM", Username: "alice", Password: "s3cret"}

func tgt() domain.Ticket {
	return domain.Ticket{
		Issued:    listedAt.Add(-time.Hour),
		Expires:   listedAt.Add(9 * time.Hour),
		Principal: "krbtgt/CORP.EXAMPLE.COM@CORP.EXAMPLE.COM",
	}
}

func TestStore_ListTickets(t *testing.T) {
	reader := mocks.NewMockTicketCacheReader(t)
	requester := mocks.NewMockTicketRequester(t)
	reader.On("ListTickets", mock.Anything).Return(domain.TicketSnapshot{tgt()}, nil).Once()

	store := NewStore(testCredential, reader, requester, testutil.Logger())
	assert.False(t, store.HasValidTicket())
	assert.Empty(t, store.Snapshot())

	snapshot := store.ListTickets(context.Background())

	assert.Len(t, snapshot, 1)
	assert.True(t, store.HasValidTicket())
	assert.Equal(t, snapshot, store.Snapshot())
}

func TestStore_ListTickets_FailureYieldsEmptySnapshot(t *testing.T) {
	reader := mocks.NewMockTicketCacheReader(t)
	requester := mocks.NewMockTicketRequester(t)
	reader.On("ListTickets", mock.Anything).Return(domain.TicketSnapshot{tgt()}, nil).Once()
	reader.On("ListTickets", mock.Anything).Return(nil, errors.New("klist: exit status 1")).Once()

	store := NewStore(testCredential, reader, requester, testutil.Logger())
	store.ListTickets(context.Background())
	snapshot := store.ListTickets(context.Background())

	assert.NotNil(t, snapshot)
	assert.Empty(t, snapshot)
	assert.False(t, store.HasValidTicket())
}

func TestStore_HasValidTicket_IgnoresServiceTickets(t *testing.T) {
	reader := mocks.NewMockTicketCacheReader(t)
	requester := mocks.NewMockTicketRequester(t)
	reader.On("ListTickets", mock.Anything).Return(domain.TicketSnapshot{
		{Issued: listedAt, Expires: listedAt.Add(time.Hour), Principal: "host/foo@CORP.EXAMPLE.COM"},
	}, nil).Once()

	store := NewStore(testCredential, reader, requester, testutil.Logger())
	store.ListTickets(context.Background())

	assert.False(t, store.HasValidTicket())
}

func TestStore_RequestTicket(t *testing.T) {
	reader := mocks.NewMockTicketCacheReader(t)
	requester := mocks.NewMockTicketRequester(t)
	requester.On("RequestTicket", mock.Anything, "alice@CORP.EXAMPLE.COM", "s3cret").Return(nil).Once()

	store := NewStore(testCredential, reader, requester, testutil.Logger())
	store.RequestTicket(context.Background())
}

func TestStore_RequestTicket_FailureIsSwallowed(t *testing.T) {
	reader := mocks.NewMockTicketCacheReader(t)
	requester := mocks.NewMockTicketRequester(t)
	requester.On("RequestTicket", mock.Anything, "alice@CORP.EXAMPLE.COM", "s3cret").
		Return(errors.New("kinit: Preauthentication failed")).Once()

	store := NewStore(testCredential, reader, requester, testutil.Logger())

	assert.NotPanics(t, func() { store.RequestTicket(context.Background()) })
}

func TestStore_RequestTicket_WithoutPassword(t *testing.T) {
	reader := mocks.NewMockTicketCacheReader(t)
	requester := mocks.NewMockTicketRequester(t)

	credential := testCredential
	credential.Password = ""
	store := NewStore(credential, reader, requester, testutil.Logger())
	store.RequestTicket(context.Background())

	requester.AssertNotCalled(t, "RequestTicket", mock.Anything, mock.Anything, mock.Anything)
}
