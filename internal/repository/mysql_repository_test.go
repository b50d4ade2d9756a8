package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/storefront-api/internal/apperror"
	"github.com/iliyamo/storefront-api/internal/model"
)

func newMockRepo(t *testing.T) (*MySQLRepo[model.MenuItem, *model.MenuItem], sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repo := NewMySQLRepo[model.MenuItem](db, model.CollectionMenuItems)
	repo.newID = func() string { return "11111111-1111-1111-1111-111111111111" }
	return repo, mock
}

func TestMySQLRepoCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO documents (collection, id, body) VALUES (?, ?, ?)")).
		WithArgs(model.CollectionMenuItems, "11111111-1111-1111-1111-111111111111", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	item, err := repo.Create(context.Background(), model.MenuItem{Name: "Lahmacun", Price: "40", Category: "Pide", Image: "x"})
	require.NoError(t, err)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", item.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLRepoGetNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT body FROM documents WHERE collection = ? AND id = ?")).
		WithArgs(model.CollectionMenuItems, "missing").
		WillReturnRows(sqlmock.NewRows([]string{"body"}))

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLRepoListWithFilter(t *testing.T) {
	repo, mock := newMockRepo(t)
	q := "SELECT body FROM documents WHERE collection = ? AND JSON_UNQUOTE(JSON_EXTRACT(body, ?)) = ? ORDER BY created_at"
	mock.ExpectQuery(regexp.QuoteMeta(q)).
		WithArgs(model.CollectionMenuItems, "$.category", "Döner").
		WillReturnRows(sqlmock.NewRows([]string{"body"}).
			AddRow([]byte(`{"id":"a","name":"Et Döner","price":"120","category":"Döner","image":"x"}`)).
			AddRow([]byte(`{"id":"b","name":"Tavuk Döner","price":"95","category":"Döner","image":"y"}`)))

	items, err := repo.List(context.Background(), Filter{"category": "Döner"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Tavuk Döner", items[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLRepoUpdate(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE documents SET body = JSON_MERGE_PATCH(body, ?) WHERE collection = ? AND id = ?")).
		WithArgs(sqlmock.AnyArg(), model.CollectionMenuItems, "a").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT body FROM documents WHERE collection = ? AND id = ?")).
		WithArgs(model.CollectionMenuItems, "a").
		WillReturnRows(sqlmock.NewRows([]string{"body"}).
			AddRow([]byte(`{"id":"a","name":"Et Döner","price":"130","category":"Döner","image":"x"}`)))

	item, err := repo.Update(context.Background(), "a", map[string]any{"price": "130"})
	require.NoError(t, err)
	assert.Equal(t, "130", item.Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLRepoUpdateMissing(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE documents SET body")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Update(context.Background(), "gone", map[string]any{"price": "1"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLRepoDelete(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM documents WHERE collection = ? AND id = ?")).
		WithArgs(model.CollectionMenuItems, "a").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM documents WHERE collection = ? AND id = ?")).
		WithArgs(model.CollectionMenuItems, "a").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "a"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "a"), apperror.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLRepoUpstreamError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM documents WHERE collection = ?")).
		WillReturnError(assert.AnError)

	_, err := repo.Count(context.Background())
	assert.ErrorIs(t, err, apperror.ErrUpstream)
}
