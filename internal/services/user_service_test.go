package services

import (
	"testing"

	"github.com/Scoheart/lostfound-backend/internal/dto"
	"github.com/Scoheart/lostfound-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := createUser(t, db, "resident1", models.RoleResident)

	err := svc.ChangePassword(user.ID, &dto.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "newsecret",
	})
	assert.ErrorIs(t, err, ErrBadRequest)

	err = svc.ChangePassword(user.ID, &dto.ChangePasswordRequest{
		OldPassword: "password123",
		NewPassword: "newsecret",
	})
	require.NoError(t, err)

	// the new password works for login afterwards
	auth := NewAuthService(db, testConfig())
	_, err = auth.Login(&dto.LoginRequest{UsernameOrEmail: "resident1", Password: "newsecret"})
	require.NoError(t, err)
}

func TestSysadminImmunity(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	sysadmin := createUser(t, db, "root", models.RoleSysadmin)

	_, err := svc.SetEnabled(sysadmin.ID, false)
	assert.ErrorIs(t, err, ErrBadRequest)

	err = svc.Lock(nil, sysadmin.ID, 7, "test")
	assert.ErrorIs(t, err, ErrBadRequest)

	err = svc.Delete(sysadmin.ID)
	assert.ErrorIs(t, err, ErrBadRequest)

	role := models.RoleResident
	_, err = svc.UpdateAccount(sysadmin.ID, &dto.UpdateUserRequest{Role: &role})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestLockUnlock(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := createUser(t, db, "resident2", models.RoleResident)

	require.NoError(t, svc.Lock(nil, user.ID, 3, "发布违规内容"))

	got, err := svc.GetByID(user.ID)
	require.NoError(t, err)
	assert.True(t, got.Locked())
	assert.Equal(t, "发布违规内容", got.LockReason)
	require.NotNil(t, got.LockEndTime)

	require.NoError(t, svc.Unlock(user.ID))

	got, err = svc.GetByID(user.ID)
	require.NoError(t, err)
	assert.False(t, got.Locked())
	assert.Nil(t, got.LockEndTime)
}

func TestDeleteUserCascades(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := createUser(t, db, "resident3", models.RoleResident)
	other := createUser(t, db, "resident4", models.RoleResident)

	lost := createLostItem(t, db, user.ID)
	found := createFoundItem(t, db, other.ID, models.FoundStatusPending)
	require.NoError(t, db.Create(&models.ClaimApplication{
		FoundItemID: found.ID,
		ApplicantID: user.ID,
		Description: "这是我的钱包，里面有我的身份证",
		Status:      models.ClaimStatusPending,
	}).Error)
	require.NoError(t, db.Create(&models.Post{
		Title: "测试帖子", Content: "内容", UserID: user.ID,
	}).Error)

	require.NoError(t, svc.Delete(user.ID))

	var count int64
	db.Model(&models.User{}).Where("id = ?", user.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.LostItem{}).Where("id = ?", lost.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.ClaimApplication{}).Where("applicant_id = ?", user.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Post{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Zero(t, count)

	// the other user's found item is untouched
	db.Model(&models.FoundItem{}).Where("id = ?", found.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestDeleteRestrictedToRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	resident := createUser(t, db, "resident5", models.RoleResident)

	// the admin panel only deletes community admin accounts
	err := svc.Delete(resident.ID, models.RoleAdmin)
	assert.ErrorIs(t, err, ErrBadRequest)

	admin := createUser(t, db, "admin1", models.RoleAdmin)
	require.NoError(t, svc.Delete(admin.ID, models.RoleAdmin))
}

func TestListUsersFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	createUser(t, db, "alice", models.RoleResident)
	createUser(t, db, "bob", models.RoleResident)
	createUser(t, db, "carol", models.RoleAdmin)

	users, total, err := svc.List([]string{models.RoleResident}, "", nil, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, users, 2)

	users, total, err = svc.List(nil, "ali", nil, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "alice", users[0].Username)
}
