package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Announcement statuses.
const (
	AnnouncementStatusPublished = "published"
	AnnouncementStatusDraft     = "draft"
)

// Announcement is an admin-authored broadcast notice.
type Announcement struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"size:100;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	AdminID   uuid.UUID `gorm:"type:uuid;not null;index" json:"adminId"`
	IsSticky  bool      `gorm:"not null;default:false" json:"isSticky"`
	Status    string    `gorm:"size:20;not null;default:'published';index" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	AdminName string `gorm:"-" json:"adminName,omitempty"`
}

func (a *Announcement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
