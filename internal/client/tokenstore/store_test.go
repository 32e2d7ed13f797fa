package tokenstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/taskboard/internal/client/localdb"
	"github.com/dmitrijs2005/taskboard/internal/client/repositories/metadata"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := localdb.Open(context.Background(), filepath.Join(t.TempDir(), "taskboard.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteStore(db)
}

func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()

	tok, err := s.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)

	require.NoError(t, s.SetToken(ctx, "first"))
	require.NoError(t, s.SetToken(ctx, "second"))
	tok, err = s.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "second", tok)

	require.NoError(t, s.Clear(ctx))
	tok, err = s.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)

	require.NoError(t, s.Clear(ctx), "clearing an empty store is fine")

	require.NoError(t, s.SetToken(ctx, "third"))
	require.NoError(t, s.SetToken(ctx, ""))
	tok, err = s.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)
}

func TestSQLiteStore(t *testing.T) {
	exerciseStore(t, newSQLiteStore(t))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(""))
	require.Equal(t, "seed", func() string { tok, _ := NewMemoryStore("seed").Token(context.Background()); return tok }())
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "taskboard.db")

	db, err := localdb.Open(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, NewSQLiteStore(db).SetToken(ctx, "persisted"))
	require.NoError(t, db.Close())

	db, err = localdb.Open(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	tok, err := NewSQLiteStore(db).Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "persisted", tok)
}

func TestSQLiteStore_ClearDropsAuthNamespaceOnly(t *testing.T) {
	ctx := context.Background()
	db, err := localdb.Open(ctx, filepath.Join(t.TempDir(), "taskboard.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := NewSQLiteStore(db)
	auth := metadata.NewSQLiteRepository(db, namespace)
	prefs := metadata.NewSQLiteRepository(db, "prefs")

	require.NoError(t, s.SetToken(ctx, "tok"))
	require.NoError(t, auth.Set(ctx, "user", []byte("u1")))
	require.NoError(t, prefs.Set(ctx, "theme", []byte("dark")))

	require.NoError(t, s.Clear(ctx))

	tok, err := s.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)
	v, err := auth.Get(ctx, "user")
	require.NoError(t, err)
	require.Nil(t, v)
	v, err = prefs.Get(ctx, "theme")
	require.NoError(t, err)
	require.Equal(t, []byte("dark"), v)
}
