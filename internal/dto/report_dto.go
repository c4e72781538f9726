package dto

import (
	"time"

	"github.com/google/uuid"
)

type ReportRequest struct {
	ReportType     string    `json:"reportType"`
	ReportedItemID uuid.UUID `json:"reportedItemId"`
	Reason         string    `json:"reason"`
}

type ReportResolutionRequest struct {
	Status          string `json:"status"`
	ResolutionNotes string `json:"resolutionNotes"`
	ActionType      string `json:"actionType"`
	ActionDays      int    `json:"actionDays"`
}

// ReportDto is a report enriched with usernames and content context.
// Enrichment is best-effort: deleted content degrades to a placeholder.
type ReportDto struct {
	ID                      uuid.UUID  `json:"id"`
	ReportType              string     `json:"reportType"`
	ReportedItemID          uuid.UUID  `json:"reportedItemId"`
	ReportedItemTitle       string     `json:"reportedItemTitle,omitempty"`
	ReporterID              uuid.UUID  `json:"reporterId"`
	ReporterUsername        string     `json:"reporterUsername,omitempty"`
	ReportedUserID          uuid.UUID  `json:"reportedUserId"`
	ReportedUsername        string     `json:"reportedUsername,omitempty"`
	Reason                  string     `json:"reason"`
	Status                  string     `json:"status"`
	ResolutionNotes         string     `json:"resolutionNotes,omitempty"`
	ResolvedByAdminID       *uuid.UUID `json:"resolvedByAdminId,omitempty"`
	ResolvedByAdminUsername string     `json:"resolvedByAdminUsername,omitempty"`
	CreatedAt               time.Time  `json:"createdAt"`
	ResolvedAt              *time.Time `json:"resolvedAt,omitempty"`
}

// ReportPageDto adds the pending counter the admin dashboard shows.
type ReportPageDto struct {
	Reports             []ReportDto `json:"reports"`
	CurrentPage         int         `json:"currentPage"`
	PageSize            int         `json:"pageSize"`
	TotalItems          int64       `json:"totalItems"`
	TotalPages          int         `json:"totalPages"`
	PendingReportsCount int64       `json:"pendingReportsCount"`
}
