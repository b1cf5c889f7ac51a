package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), GormConfig())
	require.NoError(t, err)
	return db, mock
}

func TestAccountRepository_DebitDatabaseError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts"`).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := NewAccountRepository(db).Debit(context.Background(), "a1", 10)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInsufficientBalance)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTipRepository_SummaryDatabaseError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\)`).WillReturnError(errors.New("timeout"))

	_, err := NewTipRepository(db).SummarizeByVideo(context.Background(), "v1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to summarize tips")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_IncrementReturnsValueFromUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE "videos" SET "like_count"=.* RETURNING "like_count"`).
		WillReturnRows(sqlmock.NewRows([]string{"like_count"}).AddRow(5))
	mock.ExpectCommit()

	// no follow-up SELECT is expected: the value comes from the UPDATE itself
	likes, err := NewVideoRepository(db).IncrementLikeCount(context.Background(), "v1", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), likes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_IncrementMissingVideo(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE "videos" SET "comment_count"=.* RETURNING "comment_count"`).
		WillReturnRows(sqlmock.NewRows([]string{"comment_count"}))
	mock.ExpectCommit()

	_, err := NewVideoRepository(db).IncrementCommentCount(context.Background(), "missing", -1)
	assert.ErrorIs(t, err, ErrVideoNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
