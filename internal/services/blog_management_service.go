package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/pancakes/admin-service/internal/models"
	"github.com/pancakes/admin-service/internal/validation"
	"github.com/pancakes/admin-service/internal/workflow"
	"go.uber.org/zap"
)

var (
	deleteBlogPostAction = workflow.Action{
		Name:            models.ActionDeleteBlogPost,
		TargetType:      models.TargetBlogPost,
		SuccessMessage:  "Blog post deleted successfully",
		FailureMessage:  "Failed to delete blog post",
		NotFoundMessage: "Blog post not found",
	}
	updateBlogPostStatusAction = workflow.Action{
		Name:            models.ActionUpdateBlogPostStatus,
		TargetType:      models.TargetBlogPost,
		SuccessMessage:  "Blog post status updated successfully",
		FailureMessage:  "Failed to update blog post status",
		NotFoundMessage: "Blog post not found",
	}
)

// Event payload keys consumed by the author notifier.
const (
	eventAuthorID       = "author_id"
	eventBlogTitle      = "blog_title"
	eventReason         = "reason"
	eventPreviousStatus = "previous_status"
	eventNewStatus      = "new_status"
)

type BlogManagementService struct {
	blogs  BlogCatalog
	runner *workflow.Runner
	log    *zap.Logger
}

func NewBlogManagementService(blogs BlogCatalog, runner *workflow.Runner, log *zap.Logger) *BlogManagementService {
	return &BlogManagementService{blogs: blogs, runner: runner, log: log}
}

func (s *BlogManagementService) SearchPosts(ctx context.Context, req models.BlogPostSearchRequest) (models.PagedResult[models.BlogPost], error) {
	req.Page, req.PageSize = normalizePage(req.Page, req.PageSize)
	if req.Status != nil && !req.Status.Valid() {
		return models.PagedResult[models.BlogPost]{}, &workflow.ValidationError{
			Errors: []string{"Invalid status value. Must be 0 (Draft), 1 (Published), or 2 (Deleted)"},
		}
	}
	return s.blogs.SearchPosts(ctx, req)
}

func (s *BlogManagementService) Statistics(ctx context.Context) (map[string]any, error) {
	return s.blogs.Statistics(ctx)
}

// lookup fetches the post for notification context. A missing post ends the
// action; any other lookup error only loses the context.
func (s *BlogManagementService) lookup(ctx context.Context, postID string) (*models.BlogPost, error) {
	post, err := s.blogs.GetPost(ctx, postID)
	if errors.Is(err, workflow.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		s.log.Warn("blog post lookup failed, continuing without author context",
			zap.String("blog_post_id", postID), zap.Error(err))
		return nil, nil
	}
	return post, nil
}

func (s *BlogManagementService) DeletePost(ctx context.Context, req models.DeleteBlogPostRequest, actor workflow.Actor) workflow.Outcome {
	return s.runner.Run(ctx, workflow.Invocation{
		Action:   deleteBlogPostAction,
		TargetID: req.BlogPostID,
		Actor:    actor,
		Validate: func() validation.Result { return validation.ValidateDeleteBlogPost(req) },
		Execute: func(ctx context.Context) (workflow.Result, error) {
			post, err := s.lookup(ctx, req.BlogPostID)
			if err != nil {
				return workflow.Result{}, err
			}
			if err := s.blogs.DeletePost(ctx, req.BlogPostID, actor.ID); err != nil {
				return workflow.Result{}, err
			}

			res := workflow.Result{Details: map[string]any{"reason": req.Reason}}
			if post != nil {
				res.Event = map[string]any{
					eventAuthorID:       post.AuthorID,
					eventBlogTitle:      post.Title,
					eventReason:         req.Reason,
					eventPreviousStatus: int(post.Status),
				}
			}
			return res, nil
		},
	})
}

func (s *BlogManagementService) UpdatePostStatus(ctx context.Context, req models.UpdateBlogPostStatusRequest, actor workflow.Actor) workflow.Outcome {
	return s.runner.Run(ctx, workflow.Invocation{
		Action:   updateBlogPostStatusAction,
		TargetID: req.BlogPostID,
		Actor:    actor,
		Validate: func() validation.Result { return validation.ValidateUpdateBlogPostStatus(req) },
		Execute: func(ctx context.Context) (workflow.Result, error) {
			post, err := s.lookup(ctx, req.BlogPostID)
			if err != nil {
				return workflow.Result{}, err
			}
			if err := s.blogs.UpdatePostStatus(ctx, req.BlogPostID, req.Status, actor.ID); err != nil {
				return workflow.Result{}, err
			}

			res := workflow.Result{
				Message: fmt.Sprintf("Blog post status updated to %s successfully", req.Status),
				Details: map[string]any{"status_changed": int(req.Status), "reason": req.Reason},
			}
			if post != nil {
				res.Event = map[string]any{
					eventAuthorID:       post.AuthorID,
					eventBlogTitle:      post.Title,
					eventReason:         req.Reason,
					eventPreviousStatus: int(post.Status),
					eventNewStatus:      int(req.Status),
				}
			}
			return res, nil
		},
	})
}
