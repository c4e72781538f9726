package dto

import (
	"time"

	"github.com/google/uuid"
)

type ClaimRequest struct {
	Description string `json:"description"`
}

// ClaimApplicationDto is an application enriched with item and user context.
type ClaimApplicationDto struct {
	ID               uuid.UUID  `json:"id"`
	FoundItemID      uuid.UUID  `json:"foundItemId"`
	FoundItemTitle   string     `json:"foundItemTitle"`
	FoundItemImage   string     `json:"foundItemImage,omitempty"`
	ApplicantID      uuid.UUID  `json:"applicantId"`
	ApplicantName    string     `json:"applicantName"`
	ApplicantContact string     `json:"applicantContact,omitempty"`
	OwnerID          uuid.UUID  `json:"ownerId"`
	OwnerName        string     `json:"ownerName"`
	Description      string     `json:"description"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	ProcessedAt      *time.Time `json:"processedAt,omitempty"`
}

// ClaimListFilter narrows the admin claim listing.
type ClaimListFilter struct {
	Status        string
	StartDate     *time.Time
	EndDate       *time.Time
	ItemTitle     string
	ApplicantName string
}
