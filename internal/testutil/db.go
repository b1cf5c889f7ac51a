// Package testutil provides a migrated SQLite database and fixtures for
// package tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"piclips/internal/models"
	"piclips/internal/repositories"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB opens a fresh SQLite database in the test's temp dir and applies
// the schema. A single connection is used, so transactions are serialized
// and code running inside one must only use the transaction handle.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "piclips.db")
	db, err := gorm.Open(sqlite.Open(path), repositories.GormConfig())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repositories.Migrate(db))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// NewStore is NewDB wrapped in a repositories.Store.
func NewStore(t testing.TB) (repositories.Store, *gorm.DB) {
	db := NewDB(t)
	return repositories.NewStore(db), db
}

func CreateAccount(t testing.TB, db *gorm.DB, username string, balance int64) *models.Account {
	t.Helper()
	account := &models.Account{
		Username:     username,
		DisplayName:  username,
		PasswordHash: "x",
		TokenBalance: balance,
	}
	require.NoError(t, db.Create(account).Error)
	return account
}

func CreateVideo(t testing.TB, db *gorm.DB, ownerID, title, privacy string) *models.Video {
	t.Helper()
	video := &models.Video{
		OwnerID:    ownerID,
		Title:      title,
		URL:        "/uploads/" + title + ".mp4",
		StorageKey: title + ".mp4",
		Privacy:    privacy,
	}
	require.NoError(t, db.Create(video).Error)
	return video
}

// CreateVideoAt inserts a video with an explicit creation time, for ordering tests.
func CreateVideoAt(t testing.TB, db *gorm.DB, ownerID, title string, at time.Time) *models.Video {
	t.Helper()
	video := &models.Video{
		OwnerID:   ownerID,
		Title:     title,
		URL:       "/uploads/" + title + ".mp4",
		CreatedAt: at,
	}
	require.NoError(t, db.Create(video).Error)
	return video
}

func Balance(t testing.TB, db *gorm.DB, accountID string) int64 {
	t.Helper()
	var account models.Account
	require.NoError(t, db.First(&account, "id = ?", accountID).Error)
	return account.TokenBalance
}

func CountRows(t testing.TB, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
