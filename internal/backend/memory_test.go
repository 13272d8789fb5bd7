package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteDoc struct {
	Name string `json:"name"`
	Rank int    `json:"rank"`
}

func TestMemoryAuthFlow(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	uid := mem.SeedAccount("admin@example.com", "secret123")

	_, err := mem.SignIn(ctx, "admin@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	got, err := mem.SignIn(ctx, "ADMIN@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, uid, got, "email lookup is case-insensitive")

	require.NoError(t, mem.UpdatePassword(ctx, "changed456"))
	require.NoError(t, mem.SignOut(ctx))

	_, err = mem.SignIn(ctx, "admin@example.com", "secret123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = mem.SignIn(ctx, "admin@example.com", "changed456")
	require.NoError(t, err)
}

func TestMemoryAuthStateListener(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	mem.SeedAccount("admin@example.com", "secret123")

	var states []AuthState
	cancel := mem.OnStateChange(func(state AuthState) { states = append(states, state) })
	defer cancel()

	_, err := mem.SignIn(ctx, "admin@example.com", "secret123")
	require.NoError(t, err)
	require.NoError(t, mem.SignOut(ctx))

	require.Len(t, states, 2)
	assert.True(t, states[0].SignedIn)
	assert.False(t, states[1].SignedIn)

	cancel()
	_, err = mem.SignIn(ctx, "admin@example.com", "secret123")
	require.NoError(t, err)
	assert.Len(t, states, 2, "cancelled listener hears nothing")
}

func TestMemoryCreateAccountDuplicate(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	_, err := mem.CreateAccount(ctx, "new@example.com", "pw123456")
	require.NoError(t, err)
	assert.True(t, mem.SecondaryActive())

	_, err = mem.CreateAccount(ctx, "NEW@example.com", "pw123456")
	require.ErrorIs(t, err, ErrEmailInUse)

	require.NoError(t, mem.ReleaseSecondary(ctx))
	assert.False(t, mem.SecondaryActive())
}

func TestMemoryGetSetDelete(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	_, err := mem.Get(ctx, "notes", "a")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, mem.Set(ctx, "notes", "a", noteDoc{Name: "alpha", Rank: 1}))
	doc, err := mem.Get(ctx, "notes", "a")
	require.NoError(t, err)

	var got noteDoc
	require.NoError(t, doc.DataTo(&got))
	assert.Equal(t, "alpha", got.Name)

	require.NoError(t, mem.Delete(ctx, "notes", "a"))
	_, err = mem.Get(ctx, "notes", "a")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryMergeCreatesAndPatches(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	// Merge on a missing document creates it, like the real backend.
	require.NoError(t, mem.Merge(ctx, "notes", "a", map[string]any{"name": "alpha"}))
	require.NoError(t, mem.Merge(ctx, "notes", "a", map[string]any{"rank": 5}))

	doc, err := mem.Get(ctx, "notes", "a")
	require.NoError(t, err)
	var got noteDoc
	require.NoError(t, doc.DataTo(&got))
	assert.Equal(t, "alpha", got.Name)
	assert.Equal(t, 5, got.Rank)
}

func TestMemoryQueryEq(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, "notes", "a", noteDoc{Name: "alpha", Rank: 1}))
	require.NoError(t, mem.Set(ctx, "notes", "b", noteDoc{Name: "beta", Rank: 1}))
	require.NoError(t, mem.Set(ctx, "notes", "c", noteDoc{Name: "alpha", Rank: 2}))

	docs, err := mem.QueryEq(ctx, "notes", "name", "alpha")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "c", docs[1].ID)

	docs, err = mem.QueryEq(ctx, "notes", "name", "gamma")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestMemorySubscribeOrderAndLimit(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	for i, name := range []string{"delta", "alpha", "charlie", "bravo"} {
		require.NoError(t, mem.Set(ctx, "notes", name, noteDoc{Name: name, Rank: i}))
	}

	var last []Document
	stop, err := mem.Subscribe(ctx, "notes", Query{OrderBy: "rank", Desc: true, Limit: 2}, func(docs []Document) {
		last = docs
	})
	require.NoError(t, err)
	defer stop()

	// Initial snapshot arrives at registration time.
	require.Len(t, last, 2)
	assert.Equal(t, "bravo", last[0].ID)
	assert.Equal(t, "charlie", last[1].ID)

	require.NoError(t, mem.Set(ctx, "notes", "echo", noteDoc{Name: "echo", Rank: 9}))
	require.Len(t, last, 2)
	assert.Equal(t, "echo", last[0].ID)

	stop()
	require.NoError(t, mem.Delete(ctx, "notes", "echo"))
	assert.Equal(t, "echo", last[0].ID, "stopped subscription sees no further snapshots")
}

func TestMemoryArrayUnionDedupes(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	require.ErrorIs(t, mem.ArrayUnion(ctx, "notes", "a", "tags", "red"), ErrNotFound)

	require.NoError(t, mem.Set(ctx, "notes", "a", map[string]any{"tags": []string{}}))
	require.NoError(t, mem.ArrayUnion(ctx, "notes", "a", "tags", "red", "blue"))
	require.NoError(t, mem.ArrayUnion(ctx, "notes", "a", "tags", "red", "green"))

	doc, err := mem.Get(ctx, "notes", "a")
	require.NoError(t, err)
	var got struct {
		Tags []string `json:"tags"`
	}
	require.NoError(t, doc.DataTo(&got))
	assert.Equal(t, []string{"red", "blue", "green"}, got.Tags)
}
