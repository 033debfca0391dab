// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aebalz/mindful-journal/internal/config"
	"github.com/aebalz/mindful-journal/internal/model"
	"github.com/aebalz/mindful-journal/pkg/database"
	"github.com/aebalz/mindful-journal/pkg/logger"
)

// NewDB opens a migrated sqlite database in a temp dir. Foreign keys are
// enforced, so cascade and set-null deletes behave as they do in production.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.AppConfig{
		DBDriver: "sqlite",
		DBPath:   filepath.Join(t.TempDir(), "test.db"),
		AppEnv:   "test",
	}
	db, err := database.ConnectDB(cfg, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, database.MigrateDB(context.Background(), db))
	t.Cleanup(func() { _ = database.CloseDB(db) })
	return db
}

// CreateUser inserts a user with the given email.
func CreateUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	u := &model.User{Email: email, HashedPassword: "x", IsActive: true}
	require.NoError(t, db.Create(u).Error)
	return u
}

// CreateEntry inserts a pending journal entry for the user.
func CreateEntry(t *testing.T, db *gorm.DB, userID uuid.UUID, mood, content string) *model.JournalEntry {
	t.Helper()
	e := &model.JournalEntry{UserID: userID, Mood: mood, Content: content}
	require.NoError(t, db.Create(e).Error)
	return e
}
