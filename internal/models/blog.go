package models

import (
	"fmt"
	"time"
)

type BlogPostStatus int

const (
	BlogPostDraft BlogPostStatus = iota
	BlogPostPublished
	BlogPostDeleted
)

func (s BlogPostStatus) Valid() bool {
	return s >= BlogPostDraft && s <= BlogPostDeleted
}

func (s BlogPostStatus) String() string {
	switch s {
	case BlogPostDraft:
		return "Draft"
	case BlogPostPublished:
		return "Published"
	case BlogPostDeleted:
		return "Deleted"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

type BlogPost struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Excerpt    string         `json:"excerpt,omitempty"`
	AuthorID   string         `json:"authorId"`
	AuthorName string         `json:"authorName,omitempty"`
	Status     BlogPostStatus `json:"status"`
	Tags       []string       `json:"tags,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  *time.Time     `json:"updatedAt,omitempty"`
}

type BlogPostSearchRequest struct {
	Search    string
	AuthorID  string
	Status    *BlogPostStatus
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
	DateFrom  *time.Time
	DateTo    *time.Time
}

type DeleteBlogPostRequest struct {
	BlogPostID string `json:"blogPostId"`
	Reason     string `json:"reason"`
}

type UpdateBlogPostStatusRequest struct {
	BlogPostID string         `json:"blogPostId"`
	Status     BlogPostStatus `json:"status"`
	Reason     string         `json:"reason"`
}
