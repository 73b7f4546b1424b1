package services

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/pancakes/admin-service/internal/events"
	"github.com/pancakes/admin-service/internal/models"
	"github.com/pancakes/admin-service/internal/repositories"
	"github.com/pancakes/admin-service/internal/workflow"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockUserDirectory struct {
	mock.Mock
}

func (m *mockUserDirectory) SearchUsers(ctx context.Context, req models.UserSearchRequest) (models.PagedResult[models.UserOverview], error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.PagedResult[models.UserOverview]), args.Error(1)
}

func (m *mockUserDirectory) GetUser(ctx context.Context, userID string) (*models.UserDetail, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*models.UserDetail)
	return u, args.Error(1)
}

func (m *mockUserDirectory) BanUser(ctx context.Context, req models.BanUserRequest, adminID string) error {
	return m.Called(ctx, req, adminID).Error(0)
}

func (m *mockUserDirectory) UnbanUser(ctx context.Context, req models.UnbanUserRequest, adminID string) error {
	return m.Called(ctx, req, adminID).Error(0)
}

func (m *mockUserDirectory) UpdateUser(ctx context.Context, req models.UpdateUserRequest, adminID string) (*models.UserDetail, error) {
	args := m.Called(ctx, req, adminID)
	u, _ := args.Get(0).(*models.UserDetail)
	return u, args.Error(1)
}

func (m *mockUserDirectory) ForcePasswordReset(ctx context.Context, req models.ForcePasswordResetRequest, adminID string) error {
	return m.Called(ctx, req, adminID).Error(0)
}

func (m *mockUserDirectory) Statistics(ctx context.Context) (map[string]any, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(map[string]any)
	return stats, args.Error(1)
}

func (m *mockUserDirectory) CreateNotification(ctx context.Context, n models.Notification) error {
	return m.Called(ctx, n).Error(0)
}

type mockBlogCatalog struct {
	mock.Mock
}

func (m *mockBlogCatalog) SearchPosts(ctx context.Context, req models.BlogPostSearchRequest) (models.PagedResult[models.BlogPost], error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.PagedResult[models.BlogPost]), args.Error(1)
}

func (m *mockBlogCatalog) GetPost(ctx context.Context, postID string) (*models.BlogPost, error) {
	args := m.Called(ctx, postID)
	p, _ := args.Get(0).(*models.BlogPost)
	return p, args.Error(1)
}

func (m *mockBlogCatalog) DeletePost(ctx context.Context, postID, adminID string) error {
	return m.Called(ctx, postID, adminID).Error(0)
}

func (m *mockBlogCatalog) UpdatePostStatus(ctx context.Context, postID string, status models.BlogPostStatus, adminID string) error {
	return m.Called(ctx, postID, status, adminID).Error(0)
}

func (m *mockBlogCatalog) Statistics(ctx context.Context) (map[string]any, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(map[string]any)
	return stats, args.Error(1)
}

type mockReportCatalog struct {
	mock.Mock
}

func (m *mockReportCatalog) SearchReports(ctx context.Context, req models.ReportSearchRequest) ([]models.Report, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).([]models.Report)
	return r, args.Error(1)
}

func (m *mockReportCatalog) GetReport(ctx context.Context, reportID string) (*models.Report, error) {
	args := m.Called(ctx, reportID)
	r, _ := args.Get(0).(*models.Report)
	return r, args.Error(1)
}

func (m *mockReportCatalog) UpdateReport(ctx context.Context, req models.UpdateReportRequest, adminID string) (*models.Report, error) {
	args := m.Called(ctx, req, adminID)
	r, _ := args.Get(0).(*models.Report)
	return r, args.Error(1)
}

func (m *mockReportCatalog) DeleteReport(ctx context.Context, reportID string) error {
	return m.Called(ctx, reportID).Error(0)
}

func (m *mockReportCatalog) ReportStats(ctx context.Context) (map[string]any, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(map[string]any)
	return stats, args.Error(1)
}

// memAuditStore mirrors the ordering and filtering of AuditRepo.
type memAuditStore struct {
	mu        sync.Mutex
	entries   []models.AuditEntry
	insertErr error
}

func (s *memAuditStore) Insert(_ context.Context, e models.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return s.insertErr
	}
	s.entries = append(s.entries, e)
	return nil
}

func (s *memAuditStore) List(_ context.Context, f repositories.AuditFilter) ([]models.AuditEntry, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []models.AuditEntry
	for _, e := range s.entries {
		if f.ActorID != nil && e.ActorID != *f.ActorID {
			continue
		}
		if f.Action != nil && e.Action != *f.Action {
			continue
		}
		if f.TargetType != nil && e.TargetType != *f.TargetType {
			continue
		}
		if f.TargetID != nil && e.TargetID != *f.TargetID {
			continue
		}
		if f.From != nil && e.Timestamp.Before(*f.From) {
			continue
		}
		if f.To != nil && e.Timestamp.After(*f.To) {
			continue
		}
		matched = append(matched, e)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	total := len(matched)
	if f.Offset >= total {
		return nil, total, nil
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	return matched[f.Offset:end], total, nil
}

func (s *memAuditStore) CountByAction(_ context.Context, from, to *time.Time) ([]models.ActionCount, error) {
	entries, _, _ := s.List(context.Background(), repositories.AuditFilter{From: from, To: to, Limit: len(s.entries)})
	counts := map[string]int64{}
	for _, e := range entries {
		counts[e.Action]++
	}
	var out []models.ActionCount
	for action, n := range counts {
		out = append(out, models.ActionCount{Action: action, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Action < out[j].Action
	})
	return out, nil
}

func (s *memAuditStore) all() []models.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.AuditEntry(nil), s.entries...)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

// tickingClock returns strictly increasing times so ordering is deterministic.
func tickingClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	t := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

type harness struct {
	store     *memAuditStore
	audit     *AuditService
	publisher *recordingPublisher
	runner    *workflow.Runner
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := &memAuditStore{}
	audit := NewAuditService(store, zap.NewNop())
	audit.now = tickingClock(time.Date(2025, 7, 30, 12, 0, 0, 0, time.UTC))
	pub := &recordingPublisher{}
	return &harness{
		store:     store,
		audit:     audit,
		publisher: pub,
		runner:    workflow.NewRunner(audit, pub, zap.NewNop()),
	}
}

var testActor = workflow.Actor{ID: "admin-1", IPAddress: "203.0.113.7", UserAgent: "Mozilla/5.0"}
