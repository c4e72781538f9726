package services

import (
	"testing"

	"github.com/Scoheart/lostfound-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLostItemCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	svc := NewLostItemService(db)
	user := createUser(t, db, "owner", models.RoleResident)

	err := svc.Create(&models.LostItem{UserID: user.ID})
	assert.ErrorIs(t, err, ErrBadRequest)

	item := &models.LostItem{
		Title:  "丢失的手表",
		UserID: user.ID,
		Status: "closed", // callers cannot pick the initial status
	}
	require.NoError(t, svc.Create(item))
	assert.Equal(t, models.LostStatusPending, item.Status)

	got, err := svc.GetByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner", got.Username)
}

func TestLostItemList(t *testing.T) {
	db := newTestDB(t)
	svc := NewLostItemService(db)
	user := createUser(t, db, "owner", models.RoleResident)
	createLostItem(t, db, user.ID)
	require.NoError(t, svc.Create(&models.LostItem{
		Title:       "蓝色雨伞",
		Description: "长柄蓝色雨伞",
		Category:    "umbrella",
		UserID:      user.ID,
	}))

	items, total, err := svc.List("", "", "雨伞", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "蓝色雨伞", items[0].Title)

	_, total, err = svc.List("keys", "", "", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestLostItemUpdateOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewLostItemService(db)
	owner := createUser(t, db, "owner", models.RoleResident)
	stranger := createUser(t, db, "stranger", models.RoleResident)
	item := createLostItem(t, db, owner.ID)

	updated := &models.LostItem{Title: "改过的标题"}
	_, err := svc.Update(item.ID, updated, stranger.ID, false)
	assert.ErrorIs(t, err, ErrForbidden)

	// an admin may edit someone else's notice
	got, err := svc.Update(item.ID, updated, stranger.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "改过的标题", got.Title)
}

func TestLostItemUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewLostItemService(db)
	owner := createUser(t, db, "owner", models.RoleResident)
	item := createLostItem(t, db, owner.ID)

	_, err := svc.UpdateStatus(item.ID, "bogus", owner.ID)
	assert.ErrorIs(t, err, ErrBadRequest)

	got, err := svc.UpdateStatus(item.ID, models.LostStatusFound, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LostStatusFound, got.Status)
}

func TestFoundItemStatusExcludesProcessing(t *testing.T) {
	db := newTestDB(t)
	svc := NewFoundItemService(db)
	owner := createUser(t, db, "owner", models.RoleResident)
	item := createFoundItem(t, db, owner.ID, models.FoundStatusPending)

	// "processing" is owned by the claim workflow
	_, err := svc.UpdateStatus(item.ID, models.FoundStatusProcessing, owner.ID)
	assert.ErrorIs(t, err, ErrBadRequest)

	got, err := svc.UpdateStatus(item.ID, models.FoundStatusClosed, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FoundStatusClosed, got.Status)
}

func TestFoundItemDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	svc := NewFoundItemService(db)
	claims := NewClaimService(db)
	owner := createUser(t, db, "owner", models.RoleResident)
	applicant := createUser(t, db, "applicant", models.RoleResident)
	item := createFoundItem(t, db, owner.ID, models.FoundStatusPending)

	_, err := claims.Apply(item.ID, applicant.ID, claimDescription)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.ItemComment{
		ItemID: item.ID, ItemType: models.ItemKindFound, Content: "还在吗", UserID: applicant.ID,
	}).Error)

	require.NoError(t, svc.Delete(item.ID, owner.ID, false))

	var count int64
	db.Model(&models.ClaimApplication{}).Where("found_item_id = ?", item.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.ItemComment{}).Where("item_id = ?", item.ID).Count(&count)
	assert.Zero(t, count)
}
