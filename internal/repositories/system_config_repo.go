package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pancakes/admin-service/internal/models"
)

var (
	ErrConfigNotFound  = errors.New("system configuration not found")
	ErrConfigKeyExists = errors.New("system configuration key already exists")
)

const pgUniqueViolation = "23505"

type SystemConfigRepo struct {
	pool *pgxpool.Pool
}

func NewSystemConfigRepo(pool *pgxpool.Pool) *SystemConfigRepo {
	return &SystemConfigRepo{pool: pool}
}

const systemConfigColumns = `key, value, description, category, updated_by, created_at, updated_at`

func scanSystemConfig(row pgx.Row) (*models.SystemConfiguration, error) {
	var c models.SystemConfiguration
	err := row.Scan(&c.Key, &c.Value, &c.Description, &c.Category, &c.UpdatedBy, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *SystemConfigRepo) List(ctx context.Context, category string) ([]models.SystemConfiguration, error) {
	query := `SELECT ` + systemConfigColumns + ` FROM system_configurations`
	args := []any{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY category, key`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []models.SystemConfiguration
	for rows.Next() {
		c, err := scanSystemConfig(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, *c)
	}
	return configs, rows.Err()
}

func (r *SystemConfigRepo) Get(ctx context.Context, key string) (*models.SystemConfiguration, error) {
	return scanSystemConfig(r.pool.QueryRow(ctx,
		`SELECT `+systemConfigColumns+` FROM system_configurations WHERE key = $1`, key))
}

func (r *SystemConfigRepo) Create(ctx context.Context, c models.SystemConfiguration) (*models.SystemConfiguration, error) {
	created, err := scanSystemConfig(r.pool.QueryRow(ctx, `
		INSERT INTO system_configurations (key, value, description, category, updated_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+systemConfigColumns,
		c.Key, c.Value, c.Description, c.Category, c.UpdatedBy))
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return nil, ErrConfigKeyExists
	}
	return created, err
}

func (r *SystemConfigRepo) Update(ctx context.Context, c models.SystemConfiguration) (*models.SystemConfiguration, error) {
	return scanSystemConfig(r.pool.QueryRow(ctx, `
		UPDATE system_configurations
		SET value = $2, description = $3, category = $4, updated_by = $5, updated_at = now()
		WHERE key = $1
		RETURNING `+systemConfigColumns,
		c.Key, c.Value, c.Description, c.Category, c.UpdatedBy))
}

func (r *SystemConfigRepo) Delete(ctx context.Context, key string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM system_configurations WHERE key = $1`, key)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrConfigNotFound
	}
	return nil
}
