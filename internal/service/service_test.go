package service

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/blog-platform/internal/db"
	"github.com/example/blog-platform/internal/models"
)

var dbSeq int64

// setupTestDB opens a fresh in-memory sqlite database with foreign key
// enforcement on, so cascade deletes behave like the real schema.
func setupTestDB(t *testing.T) *db.Database {
	t.Helper()
	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared&_foreign_keys=on", atomic.AddInt64(&dbSeq, 1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&models.User{}, &models.Post{}, &models.Comment{}, &models.Tag{}, &models.PostTag{},
	))
	return &db.Database{Gorm: gdb}
}

func seedUser(t *testing.T, database *db.Database, username, email, role string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, database.Gorm.Create(user).Error)
	return user
}
