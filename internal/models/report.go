package models

import (
	"fmt"
	"time"
)

type ReportStatus int

const (
	ReportPending ReportStatus = iota
	ReportUnderReview
	ReportResolved
	ReportDismissed
)

func (s ReportStatus) Valid() bool {
	return s >= ReportPending && s <= ReportDismissed
}

func (s ReportStatus) String() string {
	switch s {
	case ReportPending:
		return "Pending"
	case ReportUnderReview:
		return "UnderReview"
	case ReportResolved:
		return "Resolved"
	case ReportDismissed:
		return "Dismissed"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// ReportContentType: 0 blog post, 1 comment.
type ReportContentType int

// Report is a user complaint held by BlogService.
type Report struct {
	ID               string            `json:"id"`
	ReporterID       string            `json:"reporterId"`
	ReporterName     string            `json:"reporterName,omitempty"`
	ReportedUserID   string            `json:"reportedUserId"`
	ReportedUserName string            `json:"reportedUserName,omitempty"`
	ContentType      ReportContentType `json:"contentType"`
	ContentID        string            `json:"contentId"`
	Reason           int               `json:"reason"`
	Description      string            `json:"description,omitempty"`
	Status           ReportStatus      `json:"status"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        *time.Time        `json:"updatedAt,omitempty"`
	ReviewedBy       string            `json:"reviewedBy,omitempty"`
	ReviewedAt       *time.Time        `json:"reviewedAt,omitempty"`
	AdminNotes       string            `json:"adminNotes,omitempty"`
	UserBanned       bool              `json:"userBanned"`
	ContentRemoved   bool              `json:"contentRemoved"`
	ContentTitle     string            `json:"contentTitle,omitempty"`
	ContentExcerpt   string            `json:"contentExcerpt,omitempty"`
}

type ReportSearchRequest struct {
	Status   *ReportStatus
	Page     int
	PageSize int
}

// UpdateReportRequest records a moderator's review of a report.
type UpdateReportRequest struct {
	ReportID       string       `json:"reportId"`
	Status         ReportStatus `json:"status"`
	AdminNotes     string       `json:"adminNotes,omitempty"`
	UserBanned     *bool        `json:"userBanned,omitempty"`
	ContentRemoved *bool        `json:"contentRemoved,omitempty"`
}
