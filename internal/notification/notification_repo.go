package notification

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, userID, id string) (int64, error)
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID, id string) (int64, error)
}

// Create dipanggil di dalam transaksi dispatcher (bersama outbox event),
// jadi insert memakai raw SQL lewat tx; query baca memakai GORM.
type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	query := `
INSERT INTO notifications (id, user_id, type, title, message, reference_id, reference_type, is_read, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, false, NOW())
`
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, query,
			n.ID, n.UserID, n.Type, n.Title, n.Message, n.ReferenceID, n.ReferenceType,
		)
		return err
	}
	return r.db.WithContext(ctx).Exec(query,
		n.ID, n.UserID, n.Type, n.Title, n.Message, n.ReferenceID, n.ReferenceType,
	).Error
}

func (r *repository) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]Notification, error) {
	db := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if unreadOnly {
		db = db.Where("is_read = false")
	}

	var notifications []Notification
	err := db.Find(&notifications).Error
	return notifications, err
}

func (r *repository) MarkRead(ctx context.Context, userID, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{"is_read": true, "read_at": gorm.Expr("NOW()")})
	return res.RowsAffected, res.Error
}

func (r *repository) MarkAllRead(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Updates(map[string]any{"is_read": true, "read_at": gorm.Expr("NOW()")}).Error
}

func (r *repository) Delete(ctx context.Context, userID, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&Notification{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
