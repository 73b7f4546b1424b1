package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pancakes/admin-service/internal/auth"
	"github.com/pancakes/admin-service/internal/config"
	"github.com/pancakes/admin-service/internal/events"
	"github.com/pancakes/admin-service/internal/http/dto"
	"github.com/pancakes/admin-service/internal/http/handlers"
	"github.com/pancakes/admin-service/internal/models"
	"github.com/pancakes/admin-service/internal/rbac"
	"github.com/pancakes/admin-service/internal/repositories"
	"github.com/pancakes/admin-service/internal/services"
	"github.com/pancakes/admin-service/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUsers struct {
	mu       sync.Mutex
	banned   []string
	banErr   error
	unbanned []string
	resets   []models.ForcePasswordResetRequest
}

func (f *fakeUsers) SearchUsers(_ context.Context, req models.UserSearchRequest) (models.PagedResult[models.UserOverview], error) {
	return models.NewPagedResult([]models.UserOverview{{ID: "u-1", Name: req.SearchTerm}}, req.Page, req.PageSize, 1), nil
}

func (f *fakeUsers) GetUser(_ context.Context, userID string) (*models.UserDetail, error) {
	return nil, workflow.ErrNotFound
}

func (f *fakeUsers) BanUser(_ context.Context, req models.BanUserRequest, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.banErr != nil {
		return f.banErr
	}
	f.banned = append(f.banned, req.UserID)
	return nil
}

func (f *fakeUsers) UnbanUser(_ context.Context, req models.UnbanUserRequest, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unbanned = append(f.unbanned, req.UserID)
	return nil
}

func (f *fakeUsers) UpdateUser(_ context.Context, req models.UpdateUserRequest, _ string) (*models.UserDetail, error) {
	return &models.UserDetail{UserOverview: models.UserOverview{ID: req.UserID, Name: req.Name, Email: req.Email}}, nil
}

func (f *fakeUsers) ForcePasswordReset(_ context.Context, req models.ForcePasswordResetRequest, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets = append(f.resets, req)
	return nil
}

func (f *fakeUsers) Statistics(context.Context) (map[string]any, error) {
	return map[string]any{"totalUsers": 3}, nil
}

func (f *fakeUsers) CreateNotification(context.Context, models.Notification) error { return nil }

type fakeBlogs struct{}

func (fakeBlogs) SearchPosts(_ context.Context, req models.BlogPostSearchRequest) (models.PagedResult[models.BlogPost], error) {
	return models.NewPagedResult[models.BlogPost](nil, req.Page, req.PageSize, 0), nil
}

func (fakeBlogs) GetPost(_ context.Context, postID string) (*models.BlogPost, error) {
	return &models.BlogPost{ID: postID, Title: "Pancakes 101", AuthorID: "author-1", Status: models.BlogPostPublished}, nil
}

func (fakeBlogs) DeletePost(context.Context, string, string) error { return nil }

func (fakeBlogs) UpdatePostStatus(context.Context, string, models.BlogPostStatus, string) error {
	return nil
}

func (fakeBlogs) Statistics(context.Context) (map[string]any, error) {
	return map[string]any{"totalPosts": 12}, nil
}

type fakeReports struct {
	mu      sync.Mutex
	deleted []string
}

func (f *fakeReports) SearchReports(context.Context, models.ReportSearchRequest) ([]models.Report, error) {
	return []models.Report{{ID: "r-1", Status: models.ReportPending}}, nil
}

func (f *fakeReports) GetReport(_ context.Context, reportID string) (*models.Report, error) {
	return &models.Report{ID: reportID}, nil
}

func (f *fakeReports) UpdateReport(_ context.Context, req models.UpdateReportRequest, adminID string) (*models.Report, error) {
	return &models.Report{ID: req.ReportID, Status: req.Status, ReviewedBy: adminID, AdminNotes: req.AdminNotes}, nil
}

func (f *fakeReports) DeleteReport(_ context.Context, reportID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, reportID)
	return nil
}

func (f *fakeReports) ReportStats(context.Context) (map[string]any, error) {
	return map[string]any{"pending": 1}, nil
}

type fakeAuditStore struct {
	mu      sync.Mutex
	entries []models.AuditEntry
}

func (s *fakeAuditStore) Insert(_ context.Context, e models.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return nil
}

func (s *fakeAuditStore) List(_ context.Context, f repositories.AuditFilter) ([]models.AuditEntry, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.AuditEntry, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0; i-- {
		out = append(out, s.entries[i])
	}
	return out, len(out), nil
}

func (s *fakeAuditStore) CountByAction(context.Context, *time.Time, *time.Time) ([]models.ActionCount, error) {
	return nil, nil
}

func (s *fakeAuditStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *fakeAuditStore) last() models.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[len(s.entries)-1]
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, events.Event) error { return nil }

type testServer struct {
	app     *fiber.App
	cfg     *config.Config
	users   *fakeUsers
	reports *fakeReports
	audit   *fakeAuditStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zap.NewNop()
	cfg := &config.Config{JWTSecret: "router-secret", JWTIssuer: "pancakes-auth", CORSOrigins: "*", RateLimitPerMinute: 100}

	users := &fakeUsers{}
	reports := &fakeReports{}
	store := &fakeAuditStore{}
	auditSvc := services.NewAuditService(store, log)
	runner := workflow.NewRunner(auditSvc, nopPublisher{}, log)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(log)})
	SetupRouter(app, cfg, log, nil, Handlers{
		Users:   handlers.NewUserManagementHandler(services.NewUserManagementService(users, runner, log), log),
		Blogs:   handlers.NewBlogManagementHandler(services.NewBlogManagementService(fakeBlogs{}, runner, log), log),
		Reports: handlers.NewReportManagementHandler(services.NewReportManagementService(reports, runner, log), log),
		Config:  handlers.NewSystemConfigHandler(services.NewSystemConfigService(nil, runner, log), log),
		Audit:   handlers.NewAuditHandler(auditSvc, log),
		Meta:    handlers.NewMetaHandler(),
	})
	return &testServer{app: app, cfg: cfg, users: users, reports: reports, audit: store}
}

func (s *testServer) token(t *testing.T, adminID, role string) string {
	t.Helper()
	tok, err := auth.GenerateJWT(s.cfg.JWTSecret, s.cfg.JWTIssuer, "", adminID, role, time.Hour)
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, dto.APIResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req)
	require.NoError(t, err)

	var out dto.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestBanUser_RouteIDWins(t *testing.T) {
	s := newTestServer(t)
	routeID, bodyID := uuid.NewString(), uuid.NewString()

	status, resp := s.do(t, "POST", "/api/v1/admin/users/"+routeID+"/ban", s.token(t, "admin-1", rbac.RoleModerator),
		map[string]any{"userId": bodyID, "reason": "Repeated harassment of other users"})

	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, resp.Success)
	assert.Equal(t, "User banned successfully", resp.Message)
	assert.Equal(t, []string{routeID}, s.users.banned)
	assert.Equal(t, 1, s.audit.count())
}

func TestBanUser_Envelopes(t *testing.T) {
	s := newTestServer(t)
	userID := uuid.NewString()

	status, resp := s.do(t, "POST", "/api/v1/admin/users/ban", s.token(t, "admin-1", rbac.RoleAdmin),
		map[string]any{"userId": userID, "reason": "short"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, resp.Success)
	assert.Equal(t, "Validation failed", resp.Message)
	assert.Contains(t, resp.Errors, "Reason must be at least 10 characters")

	status, resp = s.do(t, "POST", "/api/v1/admin/users/ban", s.token(t, "", rbac.RoleAdmin),
		map[string]any{"userId": userID, "reason": "Repeated harassment of other users"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Admin ID not found in token", resp.Message)

	status, resp = s.do(t, "POST", "/api/v1/admin/users/ban", s.token(t, "admin-1", rbac.RoleViewer),
		map[string]any{"userId": userID, "reason": "Repeated harassment of other users"})
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, workflow.MessageForbidden, resp.Message)

	assert.Empty(t, s.users.banned)
	assert.Zero(t, s.audit.count())
}

func TestUnbanUser_EmptyBody(t *testing.T) {
	s := newTestServer(t)
	userID := uuid.NewString()

	status, resp := s.do(t, "POST", "/api/v1/admin/users/"+userID+"/unban", s.token(t, "admin-1", rbac.RoleAdmin), nil)

	assert.Equal(t, fiber.StatusOK, status, resp.Message)
	assert.Equal(t, []string{userID}, s.users.unbanned)
}

func TestUpdatePostStatus_MessageNamesStatus(t *testing.T) {
	s := newTestServer(t)

	status, resp := s.do(t, "PUT", "/api/v1/admin/blogs/posts/"+uuid.NewString()+"/status", s.token(t, "admin-1", rbac.RoleModerator),
		map[string]any{"status": 0, "reason": "Needs sources before publishing"})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Blog post status updated to Draft successfully", resp.Message)
}

func TestReadEndpoints(t *testing.T) {
	s := newTestServer(t)
	tok := s.token(t, "admin-1", rbac.RoleSuperAdmin)

	status, resp := s.do(t, "GET", "/api/v1/admin/users/not-a-guid", tok, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, []string{"Invalid UserId format"}, resp.Errors)

	status, resp = s.do(t, "GET", "/api/v1/admin/users/"+uuid.NewString(), tok, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "User not found", resp.Message)

	status, _ = s.do(t, "GET", "/api/v1/admin/blogs?status=abc", tok, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, resp = s.do(t, "GET", "/api/v1/admin/audit-logs?page=1&pageSize=5", tok, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, resp.Success)

	status, _ = s.do(t, "GET", "/api/v1/admin/audit-logs", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestForcePasswordReset_DefaultsToEmail(t *testing.T) {
	s := newTestServer(t)
	userID := uuid.NewString()

	status, resp := s.do(t, "POST", "/api/v1/admin/users/"+userID+"/force-password-reset", s.token(t, "admin-1", rbac.RoleAdmin),
		map[string]any{"reason": "Account credentials were leaked"})

	assert.Equal(t, fiber.StatusOK, status, resp.Errors)
	assert.Equal(t, "Password reset initiated successfully", resp.Message)
	require.Len(t, s.users.resets, 1)
	assert.Equal(t, userID, s.users.resets[0].UserID)
	assert.True(t, s.users.resets[0].SendEmail)
	assert.Equal(t, models.ActionForcePasswordReset, s.audit.last().Action)

	status, _ = s.do(t, "POST", "/api/v1/admin/users/force-password-reset", s.token(t, "admin-1", rbac.RoleModerator),
		map[string]any{"userId": userID, "reason": "Account credentials were leaked", "sendEmail": false})
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Len(t, s.users.resets, 1)
}

func TestStatisticsRoutes(t *testing.T) {
	s := newTestServer(t)
	tok := s.token(t, "admin-1", rbac.RoleViewer)

	status, resp := s.do(t, "GET", "/api/v1/admin/users/statistics", tok, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "User statistics retrieved successfully", resp.Message)

	status, resp = s.do(t, "GET", "/api/v1/admin/blogs/statistics", tok, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Content statistics retrieved successfully", resp.Message)
	assert.Zero(t, s.audit.count())
}

func TestReportRoutes(t *testing.T) {
	s := newTestServer(t)
	mod := s.token(t, "mod-1", rbac.RoleModerator)
	reportID := uuid.NewString()

	status, resp := s.do(t, "GET", "/api/v1/admin/reports?status=0", mod, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Reports retrieved successfully", resp.Message)

	status, _ = s.do(t, "GET", "/api/v1/admin/reports?status=pending", mod, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, resp = s.do(t, "GET", "/api/v1/admin/reports/stats", mod, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Report statistics retrieved successfully", resp.Message)

	status, resp = s.do(t, "PUT", "/api/v1/admin/reports/"+reportID, mod,
		map[string]any{"status": 2, "adminNotes": "Content removed", "contentRemoved": true})
	assert.Equal(t, fiber.StatusOK, status, resp.Errors)
	assert.Equal(t, "Report updated successfully", resp.Message)
	e := s.audit.last()
	assert.Equal(t, models.ActionReportUpdated, e.Action)
	assert.Equal(t, models.TargetReport, e.TargetType)
	assert.Equal(t, reportID, e.TargetID)
	assert.Equal(t, "mod-1", e.ActorID)

	status, resp = s.do(t, "DELETE", "/api/v1/admin/reports/"+reportID, mod, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Report deleted successfully", resp.Message)
	assert.Equal(t, []string{reportID}, s.reports.deleted)
	assert.Equal(t, models.ActionReportDeleted, s.audit.last().Action)

	status, _ = s.do(t, "DELETE", "/api/v1/admin/reports/"+reportID, s.token(t, "viewer-1", rbac.RoleViewer), nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, 2, s.audit.count())
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	s := newTestServer(t)
	status, resp := s.do(t, "GET", "/nowhere", "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.False(t, resp.Success)
}
