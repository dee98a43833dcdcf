package repository_test

import (
	"context"
	"testing"

	"github.com/smallbiznis/invoiceboard/pkg/db"
	"github.com/smallbiznis/invoiceboard/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteRow struct {
	ID   int64  `gorm:"column:id"`
	Body string `gorm:"column:body"`
}

func TestStoreQueryAndExecute(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)

	store := repository.ProvideStore(conn)
	ctx := context.Background()

	_, err = store.Execute(ctx, `CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT NOT NULL)`)
	require.NoError(t, err)

	affected, err := store.Execute(ctx, `INSERT INTO notes (id, body) VALUES (?, ?), (?, ?)`, 1, "first", 2, "second")
	require.NoError(t, err)
	assert.EqualValues(t, 2, affected)

	var rows []noteRow
	require.NoError(t, store.Query(ctx, &rows, `SELECT id, body FROM notes WHERE body = ?`, "second"))
	require.Len(t, rows, 1)
	assert.EqualValues(t, 2, rows[0].ID)

	affected, err = store.Execute(ctx, `UPDATE notes SET body = ? WHERE id = ?`, "changed", 42)
	require.NoError(t, err)
	assert.Zero(t, affected)

	assert.Equal(t, "sqlite", store.Dialect())
}

func TestStoreBindsParametersVerbatim(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)

	store := repository.ProvideStore(conn)
	ctx := context.Background()

	_, err = store.Execute(ctx, `CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT NOT NULL)`)
	require.NoError(t, err)

	hostile := "x'); DROP TABLE notes; --"
	_, err = store.Execute(ctx, `INSERT INTO notes (id, body) VALUES (?, ?)`, 1, hostile)
	require.NoError(t, err)

	var rows []noteRow
	require.NoError(t, store.Query(ctx, &rows, `SELECT id, body FROM notes`))
	require.Len(t, rows, 1)
	assert.Equal(t, hostile, rows[0].Body)
}

func TestStoreQueryRequiresDestination(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)

	err = repository.ProvideStore(conn).Query(context.Background(), nil, `SELECT 1`)
	assert.Error(t, err)
}
