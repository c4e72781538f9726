package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Claim application statuses. Approved and rejected are terminal.
const (
	ClaimStatusPending  = "pending"
	ClaimStatusApproved = "approved"
	ClaimStatusRejected = "rejected"
)

// ActiveClaimStatuses are the states that block the same applicant from
// re-applying for the same item. A rejected applicant may apply again.
var ActiveClaimStatuses = []string{ClaimStatusPending, ClaimStatusApproved}

// ClaimApplication is a resident's request to take ownership of a found item.
type ClaimApplication struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	FoundItemID uuid.UUID  `gorm:"type:uuid;not null;index" json:"foundItemId"`
	ApplicantID uuid.UUID  `gorm:"type:uuid;not null;index" json:"applicantId"`
	Description string     `gorm:"size:500;not null" json:"description"`
	Status      string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	FoundItem FoundItem `gorm:"foreignKey:FoundItemID" json:"-"`
	Applicant User      `gorm:"foreignKey:ApplicantID" json:"-"`
}

func (a *ClaimApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
