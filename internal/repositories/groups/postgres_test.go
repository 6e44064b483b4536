package groups

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/roomboard/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const selectGroup = `(?s)^SELECT id, building_name, apartment_number, created_at FROM groups\s+WHERE id = \$1`

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock, db
}

func TestGetByID_Success(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	created := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(selectGroup).WithArgs("g1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "building_name", "apartment_number", "created_at"}).
			AddRow("g1", "Maple House", "4B", created))

	g, err := repo.GetByID(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, "g1", g.ID)
	assert.Equal(t, "Maple House", g.BuildingName)
	assert.Equal(t, "4B", g.ApartmentNumber)
	assert.True(t, created.Equal(g.CreatedAt))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NoRows_IsGroupNotFound(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(selectGroup).WithArgs("missing").WillReturnError(sql.ErrNoRows)

	g, err := repo.GetByID(context.Background(), "missing")
	require.Nil(t, g)
	require.ErrorIs(t, err, common.ErrGroupNotFound)
}

func TestGetByID_DBError(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(selectGroup).WithArgs("g1").WillReturnError(errors.New("conn reset"))

	_, err := repo.GetByID(context.Background(), "g1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: conn reset")
	assert.NotErrorIs(t, err, common.ErrGroupNotFound)
}
