package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open("mysql", "whatever", Options{})
	assert.ErrorContains(t, err, "unsupported driver")
}

func TestMigrateSQLite(t *testing.T) {
	conn, err := Open("sqlite3", "file::memory:?_foreign_keys=1", Options{MaxOpen: 1})
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, Migrate(conn))
	// running twice is a no-op
	require.NoError(t, Migrate(conn))

	for _, table := range []string{"users", "post_groups", "posts"} {
		var n int
		err := conn.Get(&n, `SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, table)
		require.NoError(t, err)
		assert.Equal(t, 1, n, table)
	}
}

func TestSQLiteEnforcesForeignKeys(t *testing.T) {
	conn, err := Open("sqlite3", t.TempDir()+"/dev.db", Options{MaxOpen: 2})
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, Migrate(conn))

	now := time.Now().UTC()
	res, err := conn.Exec(`INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`, "auth", "x", now)
	require.NoError(t, err)
	uid, err := res.LastInsertId()
	require.NoError(t, err)
	res, err = conn.Exec(`INSERT INTO post_groups (title, slug, description) VALUES (?, ?, ?)`, "Group", "group", "")
	require.NoError(t, err)
	gid, err := res.LastInsertId()
	require.NoError(t, err)

	_, err = conn.Exec(`INSERT INTO posts (text, pub_date, group_id, author_id) VALUES (?, ?, ?, ?)`, "in group", now, gid, uid)
	require.NoError(t, err)

	_, err = conn.Exec(`DELETE FROM post_groups WHERE id = ?`, gid)
	require.NoError(t, err)
	var grouped int
	require.NoError(t, conn.Get(&grouped, `SELECT COUNT(*) FROM posts WHERE group_id IS NOT NULL`))
	assert.Zero(t, grouped)

	_, err = conn.Exec(`DELETE FROM users WHERE id = ?`, uid)
	require.NoError(t, err)
	var n int
	require.NoError(t, conn.Get(&n, `SELECT COUNT(*) FROM posts`))
	assert.Zero(t, n)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "dev.db?_foreign_keys=1", sqliteDSN("dev.db"))
	assert.Equal(t, "file:dev.db?cache=shared&_foreign_keys=1", sqliteDSN("file:dev.db?cache=shared"))
	assert.Equal(t, "dev.db?_fk=0", sqliteDSN("dev.db?_fk=0"))
}
