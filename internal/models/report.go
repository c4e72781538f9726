package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reportable content types.
const (
	ReportTypeLostItem  = "LOST_ITEM"
	ReportTypeFoundItem = "FOUND_ITEM"
	ReportTypeComment   = "COMMENT"
	ReportTypePost      = "POST"
)

// Report statuses. RESOLVED and REJECTED are terminal.
const (
	ReportStatusPending  = "PENDING"
	ReportStatusResolved = "RESOLVED"
	ReportStatusRejected = "REJECTED"
)

// Resolution action types, applied only when a report is RESOLVED.
const (
	ReportActionNone          = "NONE"
	ReportActionContentDelete = "CONTENT_DELETE"
	ReportActionUserWarning   = "USER_WARNING"
	ReportActionUserBan       = "USER_BAN"
	ReportActionUserLock      = "USER_LOCK"
)

// Report is a complaint against a piece of content, adjudicated by an admin.
type Report struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ReportType        string     `gorm:"size:20;not null;index" json:"reportType"`
	ReportedItemID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"reportedItemId"`
	ReporterID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"reporterId"`
	ReportedUserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"reportedUserId"`
	Reason            string     `gorm:"size:500;not null" json:"reason"`
	Status            string     `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	ResolutionNotes   string     `gorm:"size:500" json:"resolutionNotes,omitempty"`
	ResolvedByAdminID *uuid.UUID `gorm:"type:uuid" json:"resolvedByAdminId,omitempty"`
	ResolvedAt        *time.Time `json:"resolvedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`

	Reporter User `gorm:"foreignKey:ReporterID" json:"-"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
