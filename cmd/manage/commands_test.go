package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaughan-dsouza/yatube/internal/db/dbtest"
	"github.com/vaughan-dsouza/yatube/internal/store"
)

func run(t *testing.T, s *store.Store, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(func() (*store.Store, func(), error) {
		return s, func() {}, nil
	}, &out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestNewGroup(t *testing.T) {
	g, err := newGroup("Cats and Dogs", "", "pets")
	require.NoError(t, err)
	assert.Equal(t, "cats-and-dogs", g.Slug)

	g, err = newGroup("Cats", "my_cats", "")
	require.NoError(t, err)
	assert.Equal(t, "my_cats", g.Slug)

	_, err = newGroup("", "", "")
	assert.Error(t, err)

	_, err = newGroup("Cats", "Not A Slug", "")
	assert.Error(t, err)

	_, err = newGroup(strings.Repeat("a", 201), "", "")
	assert.Error(t, err)

	_, err = newGroup("Cats", strings.Repeat("a", 56), "")
	assert.Error(t, err)

	_, err = newGroup("Cats", "", strings.Repeat("d", 401))
	assert.Error(t, err)
}

func TestGroupCommands(t *testing.T) {
	s := store.New(dbtest.Open(t))

	out, err := run(t, s, "group", "create", "Test Group", "--description", "about")
	require.NoError(t, err)
	assert.Contains(t, out, "/group/test-group/")

	g, err := s.Groups.GetBySlug(context.Background(), "test-group")
	require.NoError(t, err)
	assert.Equal(t, "about", g.Description)

	_, err = run(t, s, "group", "create", "Test Group")
	assert.ErrorIs(t, err, store.ErrConflict)

	out, err = run(t, s, "group", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "test-group")

	_, err = run(t, s, "group", "delete", "test-group")
	require.NoError(t, err)
	_, err = run(t, s, "group", "delete", "test-group")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUserCommands(t *testing.T) {
	s := store.New(dbtest.Open(t))

	_, err := run(t, s, "user", "create", "auth", "--password", "abc")
	assert.Error(t, err)

	out, err := run(t, s, "user", "create", "auth", "--password", "password123")
	require.NoError(t, err)
	assert.Contains(t, out, "created user auth")

	_, err = run(t, s, "user", "delete", "auth")
	require.NoError(t, err)

	_, err = s.Users.GetByUsername(context.Background(), "auth")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPostList(t *testing.T) {
	s := store.New(dbtest.Open(t))
	ctx := context.Background()
	u, err := s.Users.Create(ctx, "auth", "hash")
	require.NoError(t, err)
	_, err = s.Posts.Create(ctx, "A fairly long first post text", time.Now().UTC(), nil, u.ID)
	require.NoError(t, err)
	_, err = s.Posts.Create(ctx, "second", time.Now().UTC(), nil, u.ID)
	require.NoError(t, err)

	out, err := run(t, s, "post", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "A fairly long f")
	assert.NotContains(t, out, "A fairly long first")
	assert.Contains(t, out, "second")
	assert.Contains(t, out, "-empty-")

	out, err = run(t, s, "post", "list", "--search", "SECOND")
	require.NoError(t, err)
	assert.Contains(t, out, "second")
	assert.NotContains(t, out, "A fairly")
}
