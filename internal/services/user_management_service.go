package services

import (
	"context"
	"time"

	"github.com/pancakes/admin-service/internal/models"
	"github.com/pancakes/admin-service/internal/validation"
	"github.com/pancakes/admin-service/internal/workflow"
	"go.uber.org/zap"
)

var (
	banUserAction = workflow.Action{
		Name:            models.ActionUserBanned,
		TargetType:      models.TargetUser,
		SuccessMessage:  "User banned successfully",
		FailureMessage:  "Failed to ban user",
		NotFoundMessage: "User not found",
	}
	unbanUserAction = workflow.Action{
		Name:            models.ActionUserUnbanned,
		TargetType:      models.TargetUser,
		SuccessMessage:  "User unbanned successfully",
		FailureMessage:  "Failed to unban user",
		NotFoundMessage: "User not found",
	}
	updateUserAction = workflow.Action{
		Name:            models.ActionUserUpdated,
		TargetType:      models.TargetUser,
		SuccessMessage:  "User updated successfully",
		FailureMessage:  "Failed to update user",
		NotFoundMessage: "User not found",
	}
	forcePasswordResetAction = workflow.Action{
		Name:            models.ActionForcePasswordReset,
		TargetType:      models.TargetUser,
		SuccessMessage:  "Password reset initiated successfully",
		FailureMessage:  "Failed to initiate password reset",
		NotFoundMessage: "User not found",
	}
)

// UserManagementService runs user moderation actions against UserService.
type UserManagementService struct {
	users  UserDirectory
	runner *workflow.Runner
	log    *zap.Logger
	now    func() time.Time
}

func NewUserManagementService(users UserDirectory, runner *workflow.Runner, log *zap.Logger) *UserManagementService {
	return &UserManagementService{users: users, runner: runner, log: log, now: time.Now}
}

func (s *UserManagementService) SearchUsers(ctx context.Context, req models.UserSearchRequest) (models.PagedResult[models.UserOverview], error) {
	req.Page, req.PageSize = normalizePage(req.Page, req.PageSize)
	return s.users.SearchUsers(ctx, req)
}

func (s *UserManagementService) GetUser(ctx context.Context, userID string) (*models.UserDetail, error) {
	if msg := validation.ValidateID(userID, "UserId"); msg != "" {
		return nil, &workflow.ValidationError{Errors: []string{msg}}
	}
	return s.users.GetUser(ctx, userID)
}

func (s *UserManagementService) BanUser(ctx context.Context, req models.BanUserRequest, actor workflow.Actor) workflow.Outcome {
	return s.runner.Run(ctx, workflow.Invocation{
		Action:   banUserAction,
		TargetID: req.UserID,
		Actor:    actor,
		Validate: func() validation.Result { return validation.ValidateBanUser(req, s.now()) },
		Execute: func(ctx context.Context) (workflow.Result, error) {
			if err := s.users.BanUser(ctx, req, actor.ID); err != nil {
				return workflow.Result{}, err
			}
			return workflow.Result{Details: req}, nil
		},
	})
}

func (s *UserManagementService) UnbanUser(ctx context.Context, req models.UnbanUserRequest, actor workflow.Actor) workflow.Outcome {
	return s.runner.Run(ctx, workflow.Invocation{
		Action:   unbanUserAction,
		TargetID: req.UserID,
		Actor:    actor,
		Validate: func() validation.Result { return validation.ValidateUnbanUser(req) },
		Execute: func(ctx context.Context) (workflow.Result, error) {
			if err := s.users.UnbanUser(ctx, req, actor.ID); err != nil {
				return workflow.Result{}, err
			}
			return workflow.Result{Details: req}, nil
		},
	})
}

func (s *UserManagementService) UpdateUser(ctx context.Context, req models.UpdateUserRequest, actor workflow.Actor) workflow.Outcome {
	return s.runner.Run(ctx, workflow.Invocation{
		Action:   updateUserAction,
		TargetID: req.UserID,
		Actor:    actor,
		Validate: func() validation.Result { return validation.ValidateUpdateUser(req) },
		Execute: func(ctx context.Context) (workflow.Result, error) {
			user, err := s.users.UpdateUser(ctx, req, actor.ID)
			if err != nil {
				return workflow.Result{}, err
			}
			return workflow.Result{Data: user, Details: req}, nil
		},
	})
}

func (s *UserManagementService) ForcePasswordReset(ctx context.Context, req models.ForcePasswordResetRequest, actor workflow.Actor) workflow.Outcome {
	return s.runner.Run(ctx, workflow.Invocation{
		Action:   forcePasswordResetAction,
		TargetID: req.UserID,
		Actor:    actor,
		Validate: func() validation.Result { return validation.ValidateForcePasswordReset(req) },
		Execute: func(ctx context.Context) (workflow.Result, error) {
			if err := s.users.ForcePasswordReset(ctx, req, actor.ID); err != nil {
				return workflow.Result{}, err
			}
			return workflow.Result{Details: req}, nil
		},
	})
}

// Statistics is a read-only passthrough; it is not audited.
func (s *UserManagementService) Statistics(ctx context.Context) (map[string]any, error) {
	return s.users.Statistics(ctx)
}
