package quota

import (
	"context"
	"database/sql"
	"errors"

	quotaerrors "go-portal/internal/quota/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// Ledger adalah satu-satunya pintu mutasi LeaveQuota. Reserve/Commit/Release
// menerima *sql.Tx milik pemanggil (workflow) supaya mutasi ledger dan mutasi
// request berada dalam satu transaksi yang sama. SetTotal/SetDefaultTotal/
// Snapshot membuka transaksinya sendiri.
//
//go:generate mockgen -source=quota_ledger.go -destination=mock/quota_ledger_mock.go -package=mock
type Ledger interface {
	Reserve(ctx context.Context, tx *sql.Tx, userID string, year, days int) (*LeaveQuota, error)
	Commit(ctx context.Context, tx *sql.Tx, userID string, year, days int) (*LeaveQuota, error)
	Release(ctx context.Context, tx *sql.Tx, userID string, year, days int) (*LeaveQuota, error)
	SetTotal(ctx context.Context, userID string, year, newTotal int) (*LeaveQuota, error)
	SetDefaultTotal(ctx context.Context, year, defaultTotal int) error
	Snapshot(ctx context.Context, userID string, year int) (*LeaveQuota, error)
}

type ledger struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewLedger(db *sql.DB, repo Repository, logger ...*zap.Logger) Ledger {
	l := zap.L().Named("quota.ledger")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("quota.ledger")
	}
	return &ledger{db: db, repo: repo, logger: l}
}

func (l *ledger) Reserve(ctx context.Context, tx *sql.Tx, userID string, year, days int) (*LeaveQuota, error) {
	return l.mutate(ctx, tx, userID, year, func(q *LeaveQuota) error {
		return q.Reserve(days)
	})
}

func (l *ledger) Commit(ctx context.Context, tx *sql.Tx, userID string, year, days int) (*LeaveQuota, error) {
	return l.mutate(ctx, tx, userID, year, func(q *LeaveQuota) error {
		return q.Commit(days)
	})
}

func (l *ledger) Release(ctx context.Context, tx *sql.Tx, userID string, year, days int) (*LeaveQuota, error) {
	return l.mutate(ctx, tx, userID, year, func(q *LeaveQuota) error {
		return q.Release(days)
	})
}

func (l *ledger) mutate(
	ctx context.Context,
	tx *sql.Tx,
	userID string,
	year int,
	op func(q *LeaveQuota) error,
) (*LeaveQuota, error) {
	qtx := l.repo.WithTx(tx)

	q, err := l.lockOrInit(ctx, qtx, userID, year)
	if err != nil {
		return nil, err
	}

	if err := op(q); err != nil {
		if errors.Is(err, quotaerrors.ErrQuotaInconsistent) {
			l.logger.Error("quota ledger inconsistent",
				zap.String("user_id", userID),
				zap.Int("year", year),
				zap.Int("total", q.Total),
				zap.Int("used", q.Used),
				zap.Int("pending", q.Pending),
				zap.Int("remaining", q.Remaining),
			)
		}
		return nil, err
	}

	if err := qtx.SaveBuckets(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// lockOrInit mengambil row ledger dengan lock; kalau belum ada, buat dari
// konfigurasi tahun berjalan di transaksi yang sama. Race dua first-touch
// untuk (user, year) yang sama terdeteksi lewat unique violation, lalu
// re-read dengan lock.
func (l *ledger) lockOrInit(ctx context.Context, qtx Repository, userID string, year int) (*LeaveQuota, error) {
	q, err := qtx.FindForUpdate(ctx, userID, year)
	if err == nil {
		return q, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, quotaerrors.ErrInvalidUserID
	}

	total := DefaultAnnualDays
	cfg, err := qtx.FindConfig(ctx, year)
	switch {
	case err == nil:
		total = cfg.DefaultTotal
	case errors.Is(err, sql.ErrNoRows):
		l.logger.Warn("no quota config for year, using default",
			zap.Int("year", year),
			zap.Int("default_total", total),
		)
	default:
		return nil, err
	}

	fresh := NewLeaveQuota(uid, year, total)
	if err := qtx.Insert(ctx, fresh); err != nil {
		if isUniqueViolation(err) {
			return qtx.FindForUpdate(ctx, userID, year)
		}
		return nil, err
	}

	l.logger.Info("leave quota initialized",
		zap.String("user_id", userID),
		zap.Int("year", year),
		zap.Int("total", total),
	)
	return fresh, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// SetTotal adalah penyesuaian manual HRD terhadap total cuti seorang user.
func (l *ledger) SetTotal(ctx context.Context, userID string, year, newTotal int) (*LeaveQuota, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	q, err := l.mutate(ctx, tx, userID, year, func(q *LeaveQuota) error {
		return q.AdjustTotal(newTotal)
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	l.logger.Info("leave quota total adjusted",
		zap.String("user_id", userID),
		zap.Int("year", year),
		zap.Int("new_total", newTotal),
	)
	return q, nil
}

func (l *ledger) SetDefaultTotal(ctx context.Context, year, defaultTotal int) error {
	if year <= 0 {
		return quotaerrors.ErrInvalidYear
	}
	if defaultTotal < 0 {
		return quotaerrors.ErrInvalidAdjustment
	}
	return l.repo.UpsertConfig(ctx, &LeaveQuotaConfig{Year: year, DefaultTotal: defaultTotal})
}

// Snapshot mengembalikan kondisi ledger, menginisialisasi lazily bila belum
// ada row untuk (user, year).
func (l *ledger) Snapshot(ctx context.Context, userID string, year int) (*LeaveQuota, error) {
	q, err := l.repo.Find(ctx, userID, year)
	if err == nil {
		return q, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	q, err = l.lockOrInit(ctx, l.repo.WithTx(tx), userID, year)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return q, nil
}
