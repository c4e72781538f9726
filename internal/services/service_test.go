package services

import (
	"testing"
	"time"

	"github.com/Scoheart/lostfound-backend/internal/config"
	"github.com/Scoheart/lostfound-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.LostItem{},
		&models.FoundItem{},
		&models.ClaimApplication{},
		&models.Report{},
		&models.ItemComment{},
		&models.PostComment{},
		&models.Post{},
		&models.Announcement{},
		&models.SystemLog{},
	))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	}
}

func createUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  string(hash),
		Role:      role,
		IsEnabled: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createFoundItem(t *testing.T, db *gorm.DB, ownerID uuid.UUID, status string) *models.FoundItem {
	t.Helper()

	if status == "" {
		status = models.FoundStatusPending
	}
	item := models.FoundItem{
		Title:         "黑色钱包",
		Description:   "在小区门口捡到一个黑色钱包",
		FoundLocation: "小区北门",
		Category:      "wallet",
		Status:        status,
		UserID:        ownerID,
	}
	require.NoError(t, db.Create(&item).Error)
	return &item
}

func createLostItem(t *testing.T, db *gorm.DB, ownerID uuid.UUID) *models.LostItem {
	t.Helper()

	item := models.LostItem{
		Title:        "丢失的钥匙",
		Description:  "一串带蓝色挂饰的钥匙",
		LostLocation: "三号楼附近",
		Category:     "keys",
		Status:       models.LostStatusPending,
		UserID:       ownerID,
	}
	require.NoError(t, db.Create(&item).Error)
	return &item
}
