package quota

import (
	"context"
	"database/sql"
)

//go:generate mockgen -source=quota_repo.go -destination=mock/quota_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindForUpdate(ctx context.Context, userID string, year int) (*LeaveQuota, error)
	Find(ctx context.Context, userID string, year int) (*LeaveQuota, error)
	Insert(ctx context.Context, q *LeaveQuota) error
	SaveBuckets(ctx context.Context, q *LeaveQuota) error
	FindConfig(ctx context.Context, year int) (*LeaveQuotaConfig, error)
	UpsertConfig(ctx context.Context, cfg *LeaveQuotaConfig) error
}

// repository memakai raw SQL, bukan GORM, karena operasi ledger harus jalan
// di dalam transaksi pemanggil dan butuh SELECT ... FOR UPDATE.
type repository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *repository) conn() dbtx {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const quotaColumns = `id, user_id, year, total, used, pending, remaining, created_at, updated_at`

func scanQuota(row *sql.Row) (*LeaveQuota, error) {
	var q LeaveQuota
	err := row.Scan(
		&q.ID,
		&q.UserID,
		&q.Year,
		&q.Total,
		&q.Used,
		&q.Pending,
		&q.Remaining,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// FindForUpdate mengambil row ledger dengan row lock. Operasi konkuren untuk
// (user, year) yang sama terserialisasi di sini.
func (r *repository) FindForUpdate(ctx context.Context, userID string, year int) (*LeaveQuota, error) {
	query := `
SELECT ` + quotaColumns + `
FROM leave_quotas
WHERE user_id = $1 AND year = $2
FOR UPDATE
`
	return scanQuota(r.conn().QueryRowContext(ctx, query, userID, year))
}

func (r *repository) Find(ctx context.Context, userID string, year int) (*LeaveQuota, error) {
	query := `
SELECT ` + quotaColumns + `
FROM leave_quotas
WHERE user_id = $1 AND year = $2
`
	return scanQuota(r.conn().QueryRowContext(ctx, query, userID, year))
}

func (r *repository) Insert(ctx context.Context, q *LeaveQuota) error {
	query := `
INSERT INTO leave_quotas (id, user_id, year, total, used, pending, remaining, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
`
	_, err := r.conn().ExecContext(ctx, query,
		q.ID, q.UserID, q.Year, q.Total, q.Used, q.Pending, q.Remaining,
	)
	return err
}

func (r *repository) SaveBuckets(ctx context.Context, q *LeaveQuota) error {
	query := `
UPDATE leave_quotas
SET total = $2, used = $3, pending = $4, remaining = $5, updated_at = NOW()
WHERE id = $1
`
	_, err := r.conn().ExecContext(ctx, query,
		q.ID, q.Total, q.Used, q.Pending, q.Remaining,
	)
	return err
}

func (r *repository) FindConfig(ctx context.Context, year int) (*LeaveQuotaConfig, error) {
	query := `
SELECT year, default_total, created_at, updated_at
FROM leave_quota_configs
WHERE year = $1
`
	var cfg LeaveQuotaConfig
	err := r.conn().QueryRowContext(ctx, query, year).Scan(
		&cfg.Year,
		&cfg.DefaultTotal,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *repository) UpsertConfig(ctx context.Context, cfg *LeaveQuotaConfig) error {
	query := `
INSERT INTO leave_quota_configs (year, default_total, created_at, updated_at)
VALUES ($1, $2, NOW(), NOW())
ON CONFLICT (year) DO UPDATE
SET default_total = EXCLUDED.default_total, updated_at = NOW()
`
	_, err := r.conn().ExecContext(ctx, query, cfg.Year, cfg.DefaultTotal)
	return err
}
