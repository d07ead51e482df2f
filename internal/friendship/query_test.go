package friendship_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colekern/mutuals/internal/friendship"
)

func TestListPendingProjection(t *testing.T) {
	f := newFixture()
	alice := f.addUser(t, "Alice", "alice@example.com")
	bob := f.addUser(t, "Bob", "bob@example.com")
	carol := f.addUser(t, "Carol", "carol@example.com")
	queries := friendship.NewQueryService(f.store, f.store)

	rec, err := f.engine.SendRequest(context.Background(), alice.ID, "bob@example.com")
	require.NoError(t, err)
	_, err = f.engine.SendRequest(context.Background(), carol.ID, "bob@example.com")
	require.NoError(t, err)

	pending, err := queries.ListPending(context.Background(), bob.ID)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	first := pending[0]
	assert.Equal(t, rec.ID, first.RequestID)
	assert.Equal(t, alice.ID, first.SenderID)
	assert.Equal(t, "Alice", first.SenderName)
	assert.Equal(t, "alice@example.com", first.SenderEmail)
	assert.Equal(t, rec.CreatedAt, first.Timestamp)

	// outgoing requests are not pending for the sender
	pending, err = queries.ListPending(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestPendingDisappearsOnceAnswered(t *testing.T) {
	f := newFixture()
	alice := f.addUser(t, "Alice", "alice@example.com")
	bob := f.addUser(t, "Bob", "bob@example.com")
	queries := friendship.NewQueryService(f.store, f.store)

	_, err := f.engine.SendRequest(context.Background(), alice.ID, "bob@example.com")
	require.NoError(t, err)
	require.NoError(t, f.engine.AcceptRequest(context.Background(), bob.ID, "alice@example.com"))

	pending, err := queries.ListPending(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSearchUsersEmptyQuery(t *testing.T) {
	f := newFixture()
	queries := friendship.NewQueryService(f.store, f.store)

	_, err := queries.SearchUsers(context.Background(), "")
	assert.ErrorIs(t, err, friendship.ErrInvalidQuery)

	_, err = queries.SearchUsers(context.Background(), "   ")
	assert.ErrorIs(t, err, friendship.ErrInvalidQuery)
}

func TestSearchUsersExactEmail(t *testing.T) {
	f := newFixture()
	alice := f.addUser(t, "Alice", "alice@example.com")
	f.addUser(t, "Bob", "bob@example.com")
	queries := friendship.NewQueryService(f.store, f.store)

	results, err := queries.SearchUsers(context.Background(), "Alice@Example.COM")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, alice.ID, results[0].ID)
	assert.Equal(t, "Alice", results[0].Name)
}

func TestSearchUsersNameSubstring(t *testing.T) {
	f := newFixture()
	f.addUser(t, "Alice", "alice@example.com")
	f.addUser(t, "Alina", "alina@example.com")
	f.addUser(t, "Bob", "bob@example.com")
	queries := friendship.NewQueryService(f.store, f.store)

	results, err := queries.SearchUsers(context.Background(), "ALI")
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Contains(t, []string{"Alice", "Alina"}, r.Name)
	}
}

func TestSearchUsersCapped(t *testing.T) {
	f := newFixture()
	for i := 0; i < friendship.MaxSearchResults+3; i++ {
		f.addUser(t, fmt.Sprintf("Sam %02d", i), fmt.Sprintf("sam%02d@example.com", i))
	}
	queries := friendship.NewQueryService(f.store, f.store)

	results, err := queries.SearchUsers(context.Background(), "sam")
	require.NoError(t, err)
	assert.Len(t, results, friendship.MaxSearchResults)
}

func TestListFriendsDirectionAware(t *testing.T) {
	f := newFixture()
	alice := f.addUser(t, "Alice", "alice@example.com")
	bob := f.addUser(t, "Bob", "bob@example.com")
	carol := f.addUser(t, "Carol", "carol@example.com")
	queries := friendship.NewQueryService(f.store, f.store)

	// alice requested bob; carol requested alice
	_, err := f.engine.SendRequest(context.Background(), alice.ID, "bob@example.com")
	require.NoError(t, err)
	require.NoError(t, f.engine.AcceptRequest(context.Background(), bob.ID, "alice@example.com"))
	_, err = f.engine.SendRequest(context.Background(), carol.ID, "alice@example.com")
	require.NoError(t, err)
	require.NoError(t, f.engine.AcceptRequest(context.Background(), alice.ID, "carol@example.com"))

	friends, err := queries.ListFriends(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, friends, 2)
	assert.Equal(t, bob.ID, friends[0].ID)
	assert.Equal(t, carol.ID, friends[1].ID)
}
