package users

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/creatorlink/creatorlink/internal/dbx"

	_ "modernc.org/sqlite"
)

type stubTx struct{}

func (stubTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return nil, nil
}
func (stubTx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return nil, nil
}
func (stubTx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return nil
}

func TestPostgresInTx_OpensTransaction(t *testing.T) {
	db, err := sql.Open("sqlite", "file:usersintx?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewPostgresRepository(db)

	var handle dbx.DBTX
	require.NoError(t, repo.InTx(context.Background(), func(r Repository) error {
		handle = r.(*PostgresRepository).db
		return nil
	}))

	_, ok := handle.(*sql.Tx)
	require.True(t, ok, "section must run on a transaction handle")
}

func TestPostgresInTx_PassthroughInsideTransaction(t *testing.T) {
	repo := NewPostgresRepository(stubTx{})

	var got Repository
	require.NoError(t, repo.InTx(context.Background(), func(r Repository) error {
		got = r
		return nil
	}))
	require.Same(t, repo, got)
}
