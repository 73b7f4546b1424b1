package services

import (
	"context"

	"github.com/pancakes/admin-service/internal/models"
	"github.com/pancakes/admin-service/internal/validation"
	"github.com/pancakes/admin-service/internal/workflow"
	"go.uber.org/zap"
)

var (
	updateReportAction = workflow.Action{
		Name:            models.ActionReportUpdated,
		TargetType:      models.TargetReport,
		SuccessMessage:  "Report updated successfully",
		FailureMessage:  "Failed to update report",
		NotFoundMessage: "Report not found",
	}
	deleteReportAction = workflow.Action{
		Name:            models.ActionReportDeleted,
		TargetType:      models.TargetReport,
		SuccessMessage:  "Report deleted successfully",
		FailureMessage:  "Failed to delete report",
		NotFoundMessage: "Report not found",
	}
)

// ReportManagementService reviews user reports held by BlogService.
type ReportManagementService struct {
	reports ReportCatalog
	runner  *workflow.Runner
	log     *zap.Logger
}

func NewReportManagementService(reports ReportCatalog, runner *workflow.Runner, log *zap.Logger) *ReportManagementService {
	return &ReportManagementService{reports: reports, runner: runner, log: log}
}

func (s *ReportManagementService) SearchReports(ctx context.Context, req models.ReportSearchRequest) ([]models.Report, error) {
	req.Page, req.PageSize = normalizePage(req.Page, req.PageSize)
	if req.Status != nil && !req.Status.Valid() {
		return nil, &workflow.ValidationError{
			Errors: []string{"Invalid status value. Must be 0 (Pending), 1 (UnderReview), 2 (Resolved), or 3 (Dismissed)"},
		}
	}
	return s.reports.SearchReports(ctx, req)
}

func (s *ReportManagementService) GetReport(ctx context.Context, reportID string) (*models.Report, error) {
	if msg := validation.ValidateID(reportID, "ReportId"); msg != "" {
		return nil, &workflow.ValidationError{Errors: []string{msg}}
	}
	return s.reports.GetReport(ctx, reportID)
}

func (s *ReportManagementService) Stats(ctx context.Context) (map[string]any, error) {
	return s.reports.ReportStats(ctx)
}

func (s *ReportManagementService) UpdateReport(ctx context.Context, req models.UpdateReportRequest, actor workflow.Actor) workflow.Outcome {
	return s.runner.Run(ctx, workflow.Invocation{
		Action:   updateReportAction,
		TargetID: req.ReportID,
		Actor:    actor,
		Validate: func() validation.Result { return validation.ValidateUpdateReport(req) },
		Execute: func(ctx context.Context) (workflow.Result, error) {
			report, err := s.reports.UpdateReport(ctx, req, actor.ID)
			if err != nil {
				return workflow.Result{}, err
			}
			return workflow.Result{Data: report, Details: req}, nil
		},
	})
}

func (s *ReportManagementService) DeleteReport(ctx context.Context, reportID string, actor workflow.Actor) workflow.Outcome {
	return s.runner.Run(ctx, workflow.Invocation{
		Action:   deleteReportAction,
		TargetID: reportID,
		Actor:    actor,
		Validate: func() validation.Result { return validation.ValidateDeleteReport(reportID) },
		Execute: func(ctx context.Context) (workflow.Result, error) {
			if err := s.reports.DeleteReport(ctx, reportID); err != nil {
				return workflow.Result{}, err
			}
			return workflow.Result{}, nil
		},
	})
}
