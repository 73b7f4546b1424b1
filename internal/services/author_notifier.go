package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pancakes/admin-service/internal/events"
	"github.com/pancakes/admin-service/internal/models"
	"go.uber.org/zap"
)

const notificationSource = "ADMIN_ACTION"

// AuthorNotifier turns blog moderation events into notifications for the post author.
// Delivery is best-effort and never feeds back into the admin action.
type AuthorNotifier struct {
	users   UserDirectory
	timeout time.Duration
	log     *zap.Logger
	now     func() time.Time
}

func NewAuthorNotifier(users UserDirectory, timeout time.Duration, log *zap.Logger) *AuthorNotifier {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &AuthorNotifier{users: users, timeout: timeout, log: log, now: time.Now}
}

func (n *AuthorNotifier) HandleEvent(ctx context.Context, ev events.Event) {
	notification, ok := BuildAuthorNotification(ev, n.now())
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	if err := n.users.CreateNotification(ctx, notification); err != nil {
		n.log.Error("failed to send author notification",
			zap.String("user_id", notification.UserID),
			zap.String("blog_id", notification.BlogID),
			zap.String("type", notification.Type),
			zap.Error(err),
		)
		return
	}
	n.log.Info("author notification sent",
		zap.String("user_id", notification.UserID),
		zap.String("blog_id", notification.BlogID),
		zap.String("type", notification.Type),
	)
}

// BuildAuthorNotification returns false for events that need no notification:
// non-blog actions, events without an author and status updates that kept the status.
func BuildAuthorNotification(ev events.Event, now time.Time) (models.Notification, bool) {
	if ev.Type != events.EventAdminAction {
		return models.Notification{}, false
	}
	authorID := ev.String(eventAuthorID)
	if authorID == "" {
		return models.Notification{}, false
	}

	title := ev.String(eventBlogTitle)
	n := models.Notification{
		UserID:    authorID,
		BlogTitle: title,
		BlogID:    ev.String("target_id"),
		Reason:    ev.String(eventReason),
		Source:    notificationSource,
	}

	switch ev.String("action") {
	case models.ActionDeleteBlogPost:
		n.Type = models.NotificationBlogRemoved
		n.Title = "Your Blog Post Was Removed"
		n.Message = fmt.Sprintf("Your blog post %q has been removed by an administrator.", title)
		return n, true

	case models.ActionUpdateBlogPostStatus:
		from, okFrom := payloadStatus(ev.Payload[eventPreviousStatus])
		to, okTo := payloadStatus(ev.Payload[eventNewStatus])
		if !okFrom || !okTo || from == to {
			return models.Notification{}, false
		}
		n.Type, n.Title, n.Message = statusChangeTemplate(from, to, title)
		extra, _ := json.Marshal(map[string]string{
			"previousStatus": from.String(),
			"newStatus":      to.String(),
			"timestamp":      now.UTC().Format(time.RFC3339),
		})
		n.AdditionalData = string(extra)
		return n, true
	}
	return models.Notification{}, false
}

// payloadStatus reads a status that went through JSON (float64) or not (int).
func payloadStatus(v any) (models.BlogPostStatus, bool) {
	switch x := v.(type) {
	case int:
		return models.BlogPostStatus(x), true
	case float64:
		return models.BlogPostStatus(int(x)), true
	default:
		return 0, false
	}
}

func statusChangeTemplate(from, to models.BlogPostStatus, blogTitle string) (kind, title, message string) {
	kind = models.NotificationBlogStatusChanged
	switch {
	case from == models.BlogPostDraft && to == models.BlogPostPublished:
		title = "Your Blog Post Was Published"
		message = fmt.Sprintf("Your blog post %q has been published by an administrator.", blogTitle)
	case to == models.BlogPostDeleted:
		kind = models.NotificationBlogRemoved
		title = "Your Blog Post Was Deleted"
		message = fmt.Sprintf("Your blog post %q has been deleted by an administrator.", blogTitle)
	case from == models.BlogPostPublished && to == models.BlogPostDraft:
		title = "Your Blog Post Was Changed to Draft"
		message = fmt.Sprintf("Your blog post %q has been changed from Published to Draft by an administrator.", blogTitle)
	case from == models.BlogPostDeleted && to == models.BlogPostDraft:
		title = "Your Blog Post Was Restored to Draft"
		message = fmt.Sprintf("Your blog post %q has been restored from deleted status to draft by an administrator.", blogTitle)
	case from == models.BlogPostDeleted && to == models.BlogPostPublished:
		title = "Your Blog Post Was Restored and Published"
		message = fmt.Sprintf("Your blog post %q has been restored from deleted status and published by an administrator.", blogTitle)
	default:
		title = "Your Blog Post Status Was Changed"
		message = fmt.Sprintf("Your blog post %q status has been changed from %s to %s by an administrator.", blogTitle, from, to)
	}
	return kind, title, message
}
