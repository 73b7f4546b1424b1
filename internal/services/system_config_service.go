package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/pancakes/admin-service/internal/models"
	"github.com/pancakes/admin-service/internal/repositories"
	"github.com/pancakes/admin-service/internal/validation"
	"github.com/pancakes/admin-service/internal/workflow"
	"go.uber.org/zap"
)

const defaultConfigCategory = "general"

var (
	createConfigAction = workflow.Action{
		Name:            models.ActionConfigCreated,
		TargetType:      models.TargetSystemConfiguration,
		SuccessMessage:  "Configuration created successfully",
		FailureMessage:  "Failed to create configuration",
		NotFoundMessage: "Configuration not found",
	}
	updateConfigAction = workflow.Action{
		Name:            models.ActionConfigUpdated,
		TargetType:      models.TargetSystemConfiguration,
		SuccessMessage:  "Configuration updated successfully",
		FailureMessage:  "Failed to update configuration",
		NotFoundMessage: "Configuration not found",
	}
	deleteConfigAction = workflow.Action{
		Name:            models.ActionConfigDeleted,
		TargetType:      models.TargetSystemConfiguration,
		SuccessMessage:  "Configuration deleted successfully",
		FailureMessage:  "Failed to delete configuration",
		NotFoundMessage: "Configuration not found",
	}
)

type SystemConfigStore interface {
	List(ctx context.Context, category string) ([]models.SystemConfiguration, error)
	Get(ctx context.Context, key string) (*models.SystemConfiguration, error)
	Create(ctx context.Context, c models.SystemConfiguration) (*models.SystemConfiguration, error)
	Update(ctx context.Context, c models.SystemConfiguration) (*models.SystemConfiguration, error)
	Delete(ctx context.Context, key string) error
}

// SystemConfigService is the local executor: it mutates this service's own store.
type SystemConfigService struct {
	store  SystemConfigStore
	runner *workflow.Runner
	log    *zap.Logger
}

func NewSystemConfigService(store SystemConfigStore, runner *workflow.Runner, log *zap.Logger) *SystemConfigService {
	return &SystemConfigService{store: store, runner: runner, log: log}
}

// storeErr maps repository sentinels onto the workflow taxonomy.
func storeErr(err error) error {
	switch {
	case errors.Is(err, repositories.ErrConfigNotFound):
		return errors.Join(err, workflow.ErrNotFound)
	case errors.Is(err, repositories.ErrConfigKeyExists):
		return errors.Join(err, workflow.ErrActionFailed)
	default:
		return err
	}
}

func (s *SystemConfigService) List(ctx context.Context, category string) ([]models.SystemConfiguration, error) {
	configs, err := s.store.List(ctx, strings.TrimSpace(category))
	if configs == nil {
		configs = []models.SystemConfiguration{}
	}
	return configs, storeErr(err)
}

func (s *SystemConfigService) Get(ctx context.Context, key string) (*models.SystemConfiguration, error) {
	if res := validation.ValidateConfigKey(key); !res.Valid {
		return nil, &workflow.ValidationError{Errors: res.Errors}
	}
	c, err := s.store.Get(ctx, key)
	return c, storeErr(err)
}

func toConfig(req models.SystemConfigRequest, actorID string) models.SystemConfiguration {
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = defaultConfigCategory
	}
	return models.SystemConfiguration{
		Key:         strings.TrimSpace(req.Key),
		Value:       req.Value,
		Description: req.Description,
		Category:    category,
		UpdatedBy:   actorID,
	}
}

func (s *SystemConfigService) Create(ctx context.Context, req models.SystemConfigRequest, actor workflow.Actor) workflow.Outcome {
	return s.runner.Run(ctx, workflow.Invocation{
		Action:   createConfigAction,
		TargetID: strings.TrimSpace(req.Key),
		Actor:    actor,
		Validate: func() validation.Result { return validation.ValidateSystemConfig(req) },
		Execute: func(ctx context.Context) (workflow.Result, error) {
			created, err := s.store.Create(ctx, toConfig(req, actor.ID))
			if err != nil {
				return workflow.Result{}, storeErr(err)
			}
			return workflow.Result{Data: created, Status: http.StatusCreated, Details: req}, nil
		},
	})
}

func (s *SystemConfigService) Update(ctx context.Context, req models.SystemConfigRequest, actor workflow.Actor) workflow.Outcome {
	return s.runner.Run(ctx, workflow.Invocation{
		Action:   updateConfigAction,
		TargetID: strings.TrimSpace(req.Key),
		Actor:    actor,
		Validate: func() validation.Result { return validation.ValidateSystemConfig(req) },
		Execute: func(ctx context.Context) (workflow.Result, error) {
			prev, err := s.store.Get(ctx, strings.TrimSpace(req.Key))
			if err != nil {
				return workflow.Result{}, storeErr(err)
			}
			updated, err := s.store.Update(ctx, toConfig(req, actor.ID))
			if err != nil {
				return workflow.Result{}, storeErr(err)
			}
			return workflow.Result{
				Data:    updated,
				Details: map[string]any{"previous_value": prev.Value, "new_value": updated.Value, "category": updated.Category},
			}, nil
		},
	})
}

func (s *SystemConfigService) Delete(ctx context.Context, key string, actor workflow.Actor) workflow.Outcome {
	return s.runner.Run(ctx, workflow.Invocation{
		Action:   deleteConfigAction,
		TargetID: key,
		Actor:    actor,
		Validate: func() validation.Result { return validation.ValidateConfigKey(key) },
		Execute: func(ctx context.Context) (workflow.Result, error) {
			prev, err := s.store.Get(ctx, key)
			if err != nil {
				return workflow.Result{}, storeErr(err)
			}
			if err := s.store.Delete(ctx, key); err != nil {
				return workflow.Result{}, storeErr(err)
			}
			return workflow.Result{Details: map[string]any{"deleted_value": prev.Value, "category": prev.Category}}, nil
		},
	})
}
