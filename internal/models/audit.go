package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Audit action tags.
const (
	ActionUserBanned           = "USER_BANNED"
	ActionUserUnbanned         = "USER_UNBANNED"
	ActionUserUpdated          = "USER_UPDATED"
	ActionForcePasswordReset   = "FORCE_PASSWORD_RESET"
	ActionDeleteBlogPost       = "DELETE_BLOG_POST"
	ActionUpdateBlogPostStatus = "UPDATE_BLOG_POST_STATUS"
	ActionReportUpdated        = "REPORT_UPDATED"
	ActionReportDeleted        = "REPORT_DELETED"
	ActionConfigCreated        = "CONFIG_CREATED"
	ActionConfigUpdated        = "CONFIG_UPDATED"
	ActionConfigDeleted        = "CONFIG_DELETED"
)

// Audit target types.
const (
	TargetUser                = "User"
	TargetBlogPost            = "BlogPost"
	TargetReport              = "Report"
	TargetSystemConfiguration = "SystemConfiguration"
)

// AuditEntry is one recorded administrative action. Rows are insert-only.
type AuditEntry struct {
	ID         uuid.UUID       `json:"id"`
	ActorID    string          `json:"actorId"`
	Action     string          `json:"action"`
	TargetType string          `json:"targetType"`
	TargetID   string          `json:"targetId"`
	Details    json.RawMessage `json:"details,omitempty"`
	IPAddress  string          `json:"ipAddress"`
	UserAgent  string          `json:"userAgent"`
	Timestamp  time.Time       `json:"timestamp"`
}

type ActionCount struct {
	Action string `json:"action"`
	Count  int64  `json:"count"`
}

// PagedResult is the offset-pagination envelope shared by audit queries and peer searches.
type PagedResult[T any] struct {
	Data            []T  `json:"data"`
	CurrentPage     int  `json:"currentPage"`
	PageSize        int  `json:"pageSize"`
	TotalCount      int  `json:"totalCount"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

func NewPagedResult[T any](items []T, page, pageSize, total int) PagedResult[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return PagedResult[T]{
		Data:            items,
		CurrentPage:     page,
		PageSize:        pageSize,
		TotalCount:      total,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}
