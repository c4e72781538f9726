package services

import (
	"testing"
	"time"

	"github.com/Scoheart/lostfound-backend/internal/dto"
	"github.com/Scoheart/lostfound-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	user, err := svc.Register(&dto.RegisterRequest{
		Username: "zhangsan",
		Email:    "zhangsan@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleResident, user.Role)
	assert.True(t, user.IsEnabled)
	assert.NotEqual(t, "secret123", user.Password)

	// duplicate username
	_, err = svc.Register(&dto.RegisterRequest{
		Username: "zhangsan",
		Email:    "other@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrConflict)

	// duplicate email
	_, err = svc.Register(&dto.RegisterRequest{
		Username: "lisi",
		Email:    "zhangsan@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegister_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	cases := []dto.RegisterRequest{
		{Username: "ab", Email: "a@example.com", Password: "secret123"},
		{Username: "valid", Email: "not-an-email", Password: "secret123"},
		{Username: "valid", Email: "a@example.com", Password: "short"},
	}
	for _, req := range cases {
		_, err := svc.Register(&req)
		assert.ErrorIs(t, err, ErrBadRequest)
	}
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())
	user := createUser(t, db, "wangwu", models.RoleResident)

	// by username
	resp, err := svc.Login(&dto.LoginRequest{UsernameOrEmail: "wangwu", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.ID)
	assert.Equal(t, models.RoleResident, resp.Role)

	// by email
	_, err = svc.Login(&dto.LoginRequest{UsernameOrEmail: "wangwu@example.com", Password: "password123"})
	require.NoError(t, err)

	// wrong password
	_, err = svc.Login(&dto.LoginRequest{UsernameOrEmail: "wangwu", Password: "wrong"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	// unknown user
	_, err = svc.Login(&dto.LoginRequest{UsernameOrEmail: "nobody", Password: "password123"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogin_BlockedAccounts(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	locked := createUser(t, db, "locked", models.RoleResident)
	end := time.Now().Add(24 * time.Hour)
	require.NoError(t, db.Model(locked).Updates(map[string]interface{}{
		"is_locked":     true,
		"lock_end_time": end,
	}).Error)

	_, err := svc.Login(&dto.LoginRequest{UsernameOrEmail: "locked", Password: "password123"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	// an expired lock no longer blocks login
	expired := createUser(t, db, "expired", models.RoleResident)
	past := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(expired).Updates(map[string]interface{}{
		"is_locked":     true,
		"lock_end_time": past,
	}).Error)

	_, err = svc.Login(&dto.LoginRequest{UsernameOrEmail: "expired", Password: "password123"})
	require.NoError(t, err)

	banned := createUser(t, db, "banned", models.RoleResident)
	banEnd := time.Now().Add(7 * 24 * time.Hour)
	require.NoError(t, db.Model(banned).Updates(map[string]interface{}{
		"is_banned":    true,
		"ban_end_time": banEnd,
	}).Error)

	_, err = svc.Login(&dto.LoginRequest{UsernameOrEmail: "banned", Password: "password123"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	disabled := createUser(t, db, "disabled", models.RoleResident)
	require.NoError(t, db.Model(disabled).Update("is_enabled", false).Error)

	_, err = svc.Login(&dto.LoginRequest{UsernameOrEmail: "disabled", Password: "password123"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}
