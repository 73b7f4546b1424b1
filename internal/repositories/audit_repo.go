package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pancakes/admin-service/internal/models"
)

type AuditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

type AuditFilter struct {
	ActorID    *string
	Action     *string
	TargetType *string
	TargetID   *string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

func (r *AuditRepo) Insert(ctx context.Context, e models.AuditEntry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO admin_audit_log (id, actor_id, action, target_type, target_id, details, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, e.ID, e.ActorID, e.Action, e.TargetType, e.TargetID, e.Details, e.IPAddress, e.UserAgent, e.Timestamp)
	return err
}

// buildAuditWhere returns the WHERE clause (or "") and its positional args.
func buildAuditWhere(f AuditFilter) (string, []any) {
	args := []any{}
	argIdx := 1
	where := []string{}

	add := func(cond string, v any) {
		where = append(where, fmt.Sprintf(cond, argIdx))
		args = append(args, v)
		argIdx++
	}

	if f.ActorID != nil {
		add("actor_id = $%d", *f.ActorID)
	}
	if f.Action != nil {
		add("action = $%d", *f.Action)
	}
	if f.TargetType != nil {
		add("target_type = $%d", *f.TargetType)
	}
	if f.TargetID != nil {
		add("target_id = $%d", *f.TargetID)
	}
	if f.From != nil {
		add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("created_at <= $%d", *f.To)
	}

	if len(where) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

// List returns one page ordered newest first plus the total number of matching rows.
func (r *AuditRepo) List(ctx context.Context, f AuditFilter) ([]models.AuditEntry, int, error) {
	where, args := buildAuditWhere(f)

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM admin_audit_log"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	n := len(args)
	query := `
		SELECT id, actor_id, action, target_type, target_id, details, ip_address, user_agent, created_at
		FROM admin_audit_log` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.TargetType, &e.TargetID,
			&e.Details, &e.IPAddress, &e.UserAgent, &e.Timestamp); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}

func (r *AuditRepo) CountByAction(ctx context.Context, from, to *time.Time) ([]models.ActionCount, error) {
	where, args := buildAuditWhere(AuditFilter{From: from, To: to})
	rows, err := r.pool.Query(ctx, `
		SELECT action, COUNT(*) FROM admin_audit_log`+where+`
		GROUP BY action ORDER BY COUNT(*) DESC, action
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.ActionCount
	for rows.Next() {
		var c models.ActionCount
		if err := rows.Scan(&c.Action, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
