package database

import (
	"fmt"
	"log/slog"

	"github.com/Scoheart/lostfound-backend/internal/config"
	"github.com/Scoheart/lostfound-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EnsureSysadmin creates the bootstrap sysadmin account when the system has
// none, so the admin panel is never unreachable on a fresh install.
func EnsureSysadmin(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleSysadmin).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count sysadmin accounts: %w", err)
	}
	if count > 0 {
		return nil
	}

	if cfg.SysadminPassword == "" {
		slog.Warn("no sysadmin account exists and SYSADMIN_PASSWORD is unset, skipping bootstrap")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SysadminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap password: %w", err)
	}

	admin := models.User{
		Username:  cfg.SysadminUsername,
		Email:     cfg.SysadminEmail,
		Password:  string(hash),
		Role:      models.RoleSysadmin,
		IsEnabled: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create bootstrap sysadmin: %w", err)
	}

	slog.Info("bootstrap sysadmin created", "username", admin.Username)
	return nil
}
