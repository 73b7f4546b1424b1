package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pancakes/admin-service/internal/metrics"
	"github.com/pancakes/admin-service/internal/models"
	"github.com/pancakes/admin-service/internal/repositories"
	"go.uber.org/zap"
)

const (
	defaultAuditPageSize = 20
	maxAuditPageSize     = 100
	maxPageNumber        = 1_000_000 // bounds (page-1)*pageSize far below int overflow
	defaultRecentLimit   = 10
	unknownClientValue   = "unknown"
)

type AuditStore interface {
	Insert(ctx context.Context, e models.AuditEntry) error
	List(ctx context.Context, f repositories.AuditFilter) ([]models.AuditEntry, int, error)
	CountByAction(ctx context.Context, from, to *time.Time) ([]models.ActionCount, error)
}

// AuditService is the audit recorder and its read path.
type AuditService struct {
	store AuditStore
	log   *zap.Logger
	now   func() time.Time
}

func NewAuditService(store AuditStore, log *zap.Logger) *AuditService {
	return &AuditService{store: store, log: log, now: time.Now}
}

// Record appends one entry. The id and timestamp are always assigned here.
// A failed write is logged with the full entry and never returned: the
// action it describes has already been applied.
func (s *AuditService) Record(ctx context.Context, e models.AuditEntry) {
	e.ID = uuid.New()
	e.Timestamp = s.now().UTC()
	if strings.TrimSpace(e.IPAddress) == "" {
		e.IPAddress = unknownClientValue
	}
	if strings.TrimSpace(e.UserAgent) == "" {
		e.UserAgent = unknownClientValue
	}

	if err := s.store.Insert(ctx, e); err != nil {
		metrics.AuditWriteFailures.Inc()
		s.log.Error("failed to record audit entry",
			zap.String("audit_id", e.ID.String()),
			zap.String("actor_id", e.ActorID),
			zap.String("action", e.Action),
			zap.String("target_type", e.TargetType),
			zap.String("target_id", e.TargetID),
			zap.ByteString("details", e.Details),
			zap.String("ip", e.IPAddress),
			zap.Time("timestamp", e.Timestamp),
			zap.Error(err),
		)
	}
}

type AuditQuery struct {
	Page       int
	PageSize   int
	ActorID    string
	Action     string
	TargetType string
	TargetID   string
	From       *time.Time
	To         *time.Time
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > maxPageNumber {
		page = maxPageNumber
	}
	if pageSize < 1 {
		pageSize = defaultAuditPageSize
	}
	if pageSize > maxAuditPageSize {
		pageSize = maxAuditPageSize
	}
	return page, pageSize
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Query returns one page of entries, newest first.
func (s *AuditService) Query(ctx context.Context, q AuditQuery) (models.PagedResult[models.AuditEntry], error) {
	page, pageSize := normalizePage(q.Page, q.PageSize)
	entries, total, err := s.store.List(ctx, repositories.AuditFilter{
		ActorID:    optional(q.ActorID),
		Action:     optional(q.Action),
		TargetType: optional(q.TargetType),
		TargetID:   optional(q.TargetID),
		From:       q.From,
		To:         q.To,
		Limit:      pageSize,
		Offset:     (page - 1) * pageSize,
	})
	if err != nil {
		return models.PagedResult[models.AuditEntry]{}, err
	}
	return models.NewPagedResult(entries, page, pageSize, total), nil
}

func (s *AuditService) Recent(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	if limit < 1 {
		limit = defaultRecentLimit
	}
	if limit > maxAuditPageSize {
		limit = maxAuditPageSize
	}
	entries, _, err := s.store.List(ctx, repositories.AuditFilter{Limit: limit})
	if entries == nil {
		entries = []models.AuditEntry{}
	}
	return entries, err
}

func (s *AuditService) ActionStats(ctx context.Context, from, to *time.Time) ([]models.ActionCount, error) {
	counts, err := s.store.CountByAction(ctx, from, to)
	if counts == nil {
		counts = []models.ActionCount{}
	}
	return counts, err
}
