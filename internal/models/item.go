package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Item kinds used by comments and reports to address either table.
const (
	ItemKindLost  = "lost"
	ItemKindFound = "found"
)

// Lost item statuses.
const (
	LostStatusPending = "pending"
	LostStatusFound   = "found"
	LostStatusClosed  = "closed"
)

// Found item statuses. "processing" is only ever set by the claim workflow
// while an application is pending.
const (
	FoundStatusPending    = "pending"
	FoundStatusProcessing = "processing"
	FoundStatusClaimed    = "claimed"
	FoundStatusClosed     = "closed"
)

// LostItem is a resident's notice about something they lost.
type LostItem struct {
	ID           uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string                      `gorm:"size:100;not null" json:"title"`
	Description  string                      `gorm:"type:text" json:"description"`
	LostDate     *time.Time                  `json:"lostDate,omitempty"`
	LostLocation string                      `gorm:"size:255" json:"lostLocation"`
	Category     string                      `gorm:"size:50;index" json:"category"`
	Images       datatypes.JSONSlice[string] `json:"images"`
	Reward       float64                     `json:"reward"`
	ContactInfo  string                      `gorm:"size:255" json:"contactInfo"`
	Status       string                      `gorm:"size:20;not null;default:'pending';index" json:"status"`
	UserID       uuid.UUID                   `gorm:"type:uuid;not null;index" json:"userId"`
	CreatedAt    time.Time                   `json:"createdAt"`
	UpdatedAt    time.Time                   `json:"updatedAt"`

	// Filled from the owning user for responses, never persisted.
	Username string `gorm:"-" json:"username,omitempty"`
}

func (i *LostItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// FoundItem is a notice about something picked up and held for its owner.
type FoundItem struct {
	ID                uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Title             string                      `gorm:"size:100;not null" json:"title"`
	Description       string                      `gorm:"type:text" json:"description"`
	FoundDate         *time.Time                  `json:"foundDate,omitempty"`
	FoundLocation     string                      `gorm:"size:255" json:"foundLocation"`
	StorageLocation   string                      `gorm:"size:255" json:"storageLocation"`
	Category          string                      `gorm:"size:50;index" json:"category"`
	Images            datatypes.JSONSlice[string] `json:"images"`
	ContactInfo       string                      `gorm:"size:255" json:"contactInfo"`
	ClaimRequirements string                      `gorm:"size:500" json:"claimRequirements"`
	Status            string                      `gorm:"size:20;not null;default:'pending';index" json:"status"`
	UserID            uuid.UUID                   `gorm:"type:uuid;not null;index" json:"userId"`
	CreatedAt         time.Time                   `json:"createdAt"`
	UpdatedAt         time.Time                   `json:"updatedAt"`

	Username string `gorm:"-" json:"username,omitempty"`
}

func (i *FoundItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
