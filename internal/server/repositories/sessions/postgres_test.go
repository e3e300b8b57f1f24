package sessions

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewPostgresRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	exp := time.Now().Add(time.Hour)

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+sessions\s*\(id,\s*user_id,\s*expires_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)$`).
		WithArgs("hash", "u-1", exp).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), "hash", "u-1", exp))
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`INSERT\s+INTO\s+sessions`).WillReturnError(errors.New("fk"))

	err := repo.Create(context.Background(), "hash", "u-1", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}

const qFindUser = `(?s)^SELECT\s+u\.id,\s*u\.email,\s*u\.created_at,\s*u\.updated_at\s+FROM\s+sessions\s+s\s+JOIN\s+users\s+u\s+ON\s+u\.id\s*=\s*s\.user_id\s+WHERE\s+s\.id\s*=\s*\$1\s+AND\s+s\.expires_at\s*>\s*NOW\(\)$`

func TestFindUser(t *testing.T) {
	now := time.Now()

	t.Run("valid session", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(qFindUser).
			WithArgs("hash").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "created_at", "updated_at"}).
				AddRow("u-1", "a@b.com", now, now))

		u, err := repo.FindUser(context.Background(), "hash")
		require.NoError(t, err)
		assert.Equal(t, "u-1", u.ID)
		assert.Equal(t, "a@b.com", u.Email)
	})

	t.Run("missing or expired", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(qFindUser).WithArgs("old").WillReturnError(sql.ErrNoRows)

		_, err := repo.FindUser(context.Background(), "old")
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(qFindUser).WithArgs("hash").WillReturnError(errors.New("boom"))

		_, err := repo.FindUser(context.Background(), "hash")
		require.Error(t, err)
		assert.NotErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestDelete(t *testing.T) {
	q := `^DELETE\s+FROM\s+sessions\s+WHERE\s+id\s*=\s*\$1$`

	t.Run("removed", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).WithArgs("hash").WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.Delete(context.Background(), "hash")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("nothing to remove", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).WithArgs("hash").WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.Delete(context.Background(), "hash")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestDeleteForUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(`^DELETE\s+FROM\s+sessions\s+WHERE\s+user_id\s*=\s*\$1$`).
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteForUser(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
