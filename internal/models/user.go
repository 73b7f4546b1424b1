package models

import "time"

type UserOverview struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Provider       string     `json:"provider"`
	CreatedAt      time.Time  `json:"createdAt"`
	LastLoginAt    *time.Time `json:"lastLoginAt,omitempty"`
	IsActive       bool       `json:"isActive"`
	IsBanned       bool       `json:"isBanned"`
	TotalBlogPosts int        `json:"totalBlogPosts"`
	TotalComments  int        `json:"totalComments"`
	ReportsCount   int        `json:"reportsCount"`
}

type UserDetail struct {
	UserOverview
	Bio         string     `json:"bio"`
	PhoneNumber string     `json:"phoneNumber"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Image       string     `json:"image"`
}

type UserSearchRequest struct {
	SearchTerm string
	IsActive   *bool
	IsBanned   *bool
	Page       int
	PageSize   int
}

type BanUserRequest struct {
	UserID        string     `json:"userId"`
	Reason        string     `json:"reason"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
	BanEmail      bool       `json:"banEmail"`
	DeleteContent bool       `json:"deleteContent"`
}

type UnbanUserRequest struct {
	UserID string `json:"userId"`
	Reason string `json:"reason"`
}

type UpdateUserRequest struct {
	UserID      string     `json:"userId"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Bio         string     `json:"bio"`
	PhoneNumber string     `json:"phoneNumber"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	IsActive    bool       `json:"isActive"`
}

// ForcePasswordResetRequest: SendEmail defaults to true when omitted.
type ForcePasswordResetRequest struct {
	UserID    string `json:"userId"`
	Reason    string `json:"reason"`
	SendEmail bool   `json:"sendEmail"`
}

// Notification is delivered to a user through UserService.
type Notification struct {
	UserID         string `json:"userId"`
	Type           string `json:"type"`
	Title          string `json:"title"`
	Message        string `json:"message"`
	BlogTitle      string `json:"blogTitle,omitempty"`
	BlogID         string `json:"blogId,omitempty"`
	Reason         string `json:"reason"`
	Source         string `json:"source"`
	AdditionalData string `json:"additionalData,omitempty"`
}

const (
	NotificationBlogRemoved       = "BLOG_REMOVED"
	NotificationBlogStatusChanged = "BLOG_STATUS_CHANGED"
)
