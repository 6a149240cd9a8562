package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"chatlink_backend/database"
	"chatlink_backend/internal/config"
	"chatlink_backend/internal/models"
	"chatlink_backend/internal/storage"
)

func init() {
	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	cfg.Upload.MaxAvatarSize = 2 * 1024 * 1024
	cfg.Upload.AllowedTypes = []string{"image/png", "image/jpeg"}
	config.AppConfig = cfg
}

// setupTestDB opens a fresh in-memory database with the full schema.
// MaxOpenConns(1) keeps every connection on the same memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&models.Profile{UserID: user.ID}).Error)
	return user
}

func newTestServices(t *testing.T) (*gorm.DB, *ServiceContainer) {
	t.Helper()
	db := setupTestDB(t)

	store, err := storage.NewStorage(storage.Config{
		BasePath: t.TempDir(),
		BaseURL:  "/media",
	})
	require.NoError(t, err)

	return db, NewServiceContainer(store)
}
