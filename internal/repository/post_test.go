package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{Title: "Test Post", Content: "Content", AuthorID: 1}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, post)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(ctx, 42)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_List_NewestFirst(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t1 := time.Now().Add(-3 * time.Hour)
	t2 := time.Now().Add(-2 * time.Hour)
	t3 := time.Now().Add(-1 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" ORDER BY created_at DESC LIMIT $1`)).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "author_id", "created_at"}).
			AddRow(3, "P3", 1, t3).
			AddRow(2, "P2", 1, t2).
			AddRow(1, "P1", 1, t1))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(1, "alice"))

	posts, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "P3", posts[0].Title)
	assert.Equal(t, "P2", posts[1].Title)
	assert.Equal(t, "P1", posts[2].Title)
	assert.Equal(t, "alice", posts[0].Author.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_UpdateOwned(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		rowsAffected int64
	}{
		{"Owner Match", 1},
		{"Absent Or Not Owned", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewPostRepository(db)

			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET`)).
				WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))
			mock.ExpectCommit()

			affected, err := repo.UpdateOwned(ctx, 1, 7, "New Title", "New Content")
			require.NoError(t, err)
			assert.Equal(t, tt.rowsAffected, affected)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// The ownership check and the mutation must be one statement: the author
// appears in the WHERE clause of the UPDATE itself.
func TestPostRepository_UpdateOwned_FilterIncludesAuthor(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "posts" SET .+ WHERE id = \$\d+ AND author_id = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err := repo.UpdateOwned(ctx, 1, 7, "T", "C")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_DeleteOwned(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		rowsAffected int64
	}{
		{"Owner Match", 1},
		{"Absent Or Not Owned", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewPostRepository(db)

			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "posts" WHERE id = $1 AND author_id = $2`)).
				WithArgs(1, 7).
				WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))
			mock.ExpectCommit()

			affected, err := repo.DeleteOwned(ctx, 1, 7)
			require.NoError(t, err)
			assert.Equal(t, tt.rowsAffected, affected)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
