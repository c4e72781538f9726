package services

import (
	"testing"

	"github.com/Scoheart/lostfound-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const claimDescription = "这是我的钱包，里面有我的身份证和银行卡"

func TestClaimApply(t *testing.T) {
	db := newTestDB(t)
	svc := NewClaimService(db)
	owner := createUser(t, db, "owner", models.RoleResident)
	applicant := createUser(t, db, "applicant", models.RoleResident)
	item := createFoundItem(t, db, owner.ID, models.FoundStatusPending)

	application, err := svc.Apply(item.ID, applicant.ID, claimDescription)
	require.NoError(t, err)
	assert.Equal(t, models.ClaimStatusPending, application.Status)
	assert.Equal(t, owner.ID, application.OwnerID)
	assert.Equal(t, "applicant", application.ApplicantName)

	// the item moves to processing with the application
	var got models.FoundItem
	require.NoError(t, db.First(&got, "id = ?", item.ID).Error)
	assert.Equal(t, models.FoundStatusProcessing, got.Status)
}

func TestClaimApply_Preconditions(t *testing.T) {
	db := newTestDB(t)
	svc := NewClaimService(db)
	owner := createUser(t, db, "owner", models.RoleResident)
	applicant := createUser(t, db, "applicant", models.RoleResident)

	// owner cannot claim their own item
	item := createFoundItem(t, db, owner.ID, models.FoundStatusPending)
	_, err := svc.Apply(item.ID, owner.ID, claimDescription)
	assert.ErrorIs(t, err, ErrBadRequest)

	// short description
	_, err = svc.Apply(item.ID, applicant.ID, "太短")
	assert.ErrorIs(t, err, ErrBadRequest)

	// item not claimable
	closed := createFoundItem(t, db, owner.ID, models.FoundStatusClosed)
	_, err = svc.Apply(closed.ID, applicant.ID, claimDescription)
	assert.ErrorIs(t, err, ErrBadRequest)

	// duplicate active application
	_, err = svc.Apply(item.ID, applicant.ID, claimDescription)
	require.NoError(t, err)
	_, err = svc.Apply(item.ID, applicant.ID, claimDescription)
	assert.ErrorIs(t, err, ErrBadRequest) // item already processing
}

func TestClaimApprove(t *testing.T) {
	db := newTestDB(t)
	svc := NewClaimService(db)
	owner := createUser(t, db, "owner", models.RoleResident)
	applicant := createUser(t, db, "applicant", models.RoleResident)
	stranger := createUser(t, db, "stranger", models.RoleResident)
	item := createFoundItem(t, db, owner.ID, models.FoundStatusPending)

	application, err := svc.Apply(item.ID, applicant.ID, claimDescription)
	require.NoError(t, err)

	// only the item owner can process
	_, err = svc.Approve(application.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	approved, err := svc.Approve(application.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ClaimStatusApproved, approved.Status)
	assert.NotNil(t, approved.ProcessedAt)

	var got models.FoundItem
	require.NoError(t, db.First(&got, "id = ?", item.ID).Error)
	assert.Equal(t, models.FoundStatusClaimed, got.Status)

	// cannot process twice
	_, err = svc.Approve(application.ID, owner.ID)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestClaimReject_AllowsResubmission(t *testing.T) {
	db := newTestDB(t)
	svc := NewClaimService(db)
	owner := createUser(t, db, "owner", models.RoleResident)
	applicant := createUser(t, db, "applicant", models.RoleResident)
	item := createFoundItem(t, db, owner.ID, models.FoundStatusPending)

	application, err := svc.Apply(item.ID, applicant.ID, claimDescription)
	require.NoError(t, err)

	rejected, err := svc.Reject(application.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ClaimStatusRejected, rejected.Status)

	// the item returns to pending and the same applicant may try again
	var got models.FoundItem
	require.NoError(t, db.First(&got, "id = ?", item.ID).Error)
	assert.Equal(t, models.FoundStatusPending, got.Status)

	second, err := svc.Apply(item.ID, applicant.ID, claimDescription)
	require.NoError(t, err)
	assert.Equal(t, models.ClaimStatusPending, second.Status)
}

func TestClaimDelete_RevertsApprovedItem(t *testing.T) {
	db := newTestDB(t)
	svc := NewClaimService(db)
	owner := createUser(t, db, "owner", models.RoleResident)
	applicant := createUser(t, db, "applicant", models.RoleResident)
	item := createFoundItem(t, db, owner.ID, models.FoundStatusPending)

	application, err := svc.Apply(item.ID, applicant.ID, claimDescription)
	require.NoError(t, err)
	_, err = svc.Approve(application.ID, owner.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(application.ID))

	var got models.FoundItem
	require.NoError(t, db.First(&got, "id = ?", item.ID).Error)
	assert.Equal(t, models.FoundStatusPending, got.Status)

	var count int64
	db.Model(&models.ClaimApplication{}).Where("id = ?", application.ID).Count(&count)
	assert.Zero(t, count)
}

func TestClaimListings(t *testing.T) {
	db := newTestDB(t)
	svc := NewClaimService(db)
	owner := createUser(t, db, "owner", models.RoleResident)
	applicant := createUser(t, db, "applicant", models.RoleResident)
	itemA := createFoundItem(t, db, owner.ID, models.FoundStatusPending)
	itemB := createFoundItem(t, db, owner.ID, models.FoundStatusPending)

	_, err := svc.Apply(itemA.ID, applicant.ID, claimDescription)
	require.NoError(t, err)
	_, err = svc.Apply(itemB.ID, applicant.ID, claimDescription)
	require.NoError(t, err)

	mine, total, err := svc.ListByApplicant(applicant.ID, "", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, mine, 2)

	received, total, err := svc.ListForOwner(owner.ID, "", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, received, 2)

	byItem, total, err := svc.ListByFoundItem(itemA.ID, owner.ID, false, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, byItem, 1)
}

func TestClaimListByItem_OwnerOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewClaimService(db)
	owner := createUser(t, db, "owner", models.RoleResident)
	stranger := createUser(t, db, "stranger", models.RoleResident)
	item := createFoundItem(t, db, owner.ID, models.FoundStatusPending)

	// even an item without applications hides its listing from non-owners
	_, _, err := svc.ListByFoundItem(item.ID, stranger.ID, false, 1, 10)
	assert.ErrorIs(t, err, ErrForbidden)

	_, total, err := svc.ListByFoundItem(item.ID, owner.ID, false, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)

	// admins see any item's applications
	_, _, err = svc.ListByFoundItem(item.ID, stranger.ID, true, 1, 10)
	require.NoError(t, err)

	_, _, err = svc.ListByFoundItem(uuid.New(), owner.ID, false, 1, 10)
	assert.ErrorIs(t, err, ErrNotFound)
}
