package images

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/roomboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var imageCols = []string{"id", "url", "title", "category", "group_id", "created_by", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestListByGroup_NewestFirst(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	newer := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	older := newer.Add(-24 * time.Hour)

	mock.ExpectQuery(`(?s)FROM images\s+WHERE group_id = \$1\s+ORDER BY created_at DESC`).
		WithArgs("g1").
		WillReturnRows(sqlmock.NewRows(imageCols).
			AddRow("i2", "gallery/i2.jpg", "Party", "events", "g1", "1", newer).
			AddRow("i1", "gallery/i1.jpg", "Fridge", "kitchen", "g1", "99", older))

	got, err := repo.ListByGroup(context.Background(), "g1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "i2", got[0].ID)
	assert.Equal(t, "99", got[1].CreatedBy)
	assert.Equal(t, "kitchen", got[1].Category)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByGroup_Error(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`FROM images`).WithArgs("g1").WillReturnError(errors.New("boom"))

	_, err := repo.ListByGroup(context.Background(), "g1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to select images: boom")
}

func TestCreate_FillsIDAndTimestamp(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`^INSERT INTO images \(id, url, title, category, group_id, created_by, created_at\)`).
		WithArgs(sqlmock.AnyArg(), "gallery/x.jpg", "Sunset", "roof", "g1", "1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	img := &models.Image{URL: "gallery/x.jpg", Title: "Sunset", Category: "roof", GroupID: "g1", CreatedBy: "1"}
	require.NoError(t, repo.Create(context.Background(), img))

	assert.NotEmpty(t, img.ID)
	assert.False(t, img.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(`INSERT INTO images`).WillReturnError(errors.New("fk violation"))

	err := repo.Create(context.Background(), &models.Image{ID: "i1", GroupID: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert image")
}
