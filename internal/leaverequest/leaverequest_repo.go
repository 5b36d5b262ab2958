package leaverequest

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leaverequest_repo.go -destination=mock/leaverequest_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *LeaveRequest) error
	FindByIDForUpdate(ctx context.Context, id string) (*LeaveRequest, error)
	UpdateTransition(ctx context.Context, r *LeaveRequest) error
	CreateApprovalRecord(ctx context.Context, rec *ApprovalRecord) error
	DecideApprovalRecord(ctx context.Context, requestID string, stage int, decision string, notes *string, decidedAt time.Time) error

	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindApprovalRecord(ctx context.Context, requestID string, stage int) (*ApprovalRecord, error)
	ListPendingByApprover(ctx context.Context, approverID string, stage int) ([]LeaveRequest, error)
	ListByRequester(ctx context.Context, requesterID string) ([]LeaveRequest, error)
}

// Operasi transisi berjalan di transaksi service dengan raw SQL (butuh
// FOR UPDATE dan harus ikut tx); query baca memakai GORM.
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

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *repository) conn() dbtx {
	if r.tx != nil {
		return r.tx
	}
	sqlDB, _ := r.db.DB()
	return sqlDB
}

const requestColumns = `
id, request_number, requester_id, requester_name, requester_role_name, division_code,
kind, start_date, end_date, total_days, reason,
companion_contact, evidence_ref,
status, current_approver_id, created_at, updated_at
`

func scanRequest(row *sql.Row) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := row.Scan(
		&lr.ID,
		&lr.RequestNumber,
		&lr.RequesterID,
		&lr.RequesterName,
		&lr.RequesterRoleName,
		&lr.DivisionCode,
		&lr.Kind,
		&lr.StartDate,
		&lr.EndDate,
		&lr.TotalDays,
		&lr.Reason,
		&lr.CompanionContact,
		&lr.EvidenceRef,
		&lr.Status,
		&lr.CurrentApproverID,
		&lr.CreatedAt,
		&lr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

func (r *repository) Create(ctx context.Context, lr *LeaveRequest) error {
	query := `
INSERT INTO leave_requests (
	id, request_number, requester_id, requester_name, requester_role_name, division_code,
	kind, start_date, end_date, total_days, reason,
	companion_contact, evidence_ref,
	status, current_approver_id, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
`
	_, err := r.conn().ExecContext(ctx, query,
		lr.ID, lr.RequestNumber, lr.RequesterID, lr.RequesterName, lr.RequesterRoleName, lr.DivisionCode,
		lr.Kind, lr.StartDate, lr.EndDate, lr.TotalDays, lr.Reason,
		lr.CompanionContact, lr.EvidenceRef,
		lr.Status, lr.CurrentApproverID,
	)
	return err
}

// FindByIDForUpdate mengunci row request; dua approve konkuren untuk request
// yang sama terserialisasi di sini.
func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*LeaveRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM leave_requests WHERE id = $1 FOR UPDATE`
	return scanRequest(r.conn().QueryRowContext(ctx, query, id))
}

func (r *repository) UpdateTransition(ctx context.Context, lr *LeaveRequest) error {
	query := `
UPDATE leave_requests
SET status = $2, current_approver_id = $3, updated_at = NOW()
WHERE id = $1
`
	_, err := r.conn().ExecContext(ctx, query, lr.ID, lr.Status, lr.CurrentApproverID)
	return err
}

func (r *repository) CreateApprovalRecord(ctx context.Context, rec *ApprovalRecord) error {
	query := `
INSERT INTO approval_records (id, leave_request_id, stage, approver_id, approver_name, approver_role, decision, notes, decided_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
`
	_, err := r.conn().ExecContext(ctx, query,
		rec.ID, rec.LeaveRequestID, rec.Stage, rec.ApproverID, rec.ApproverName, rec.ApproverRole,
		rec.Decision, rec.Notes, rec.DecidedAt,
	)
	return err
}

func (r *repository) DecideApprovalRecord(ctx context.Context, requestID string, stage int, decision string, notes *string, decidedAt time.Time) error {
	query := `
UPDATE approval_records
SET decision = $3, notes = $4, decided_at = $5
WHERE leave_request_id = $1 AND stage = $2
`
	_, err := r.conn().ExecContext(ctx, query, requestID, stage, decision, notes, decidedAt)
	return err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := r.db.WithContext(ctx).First(&lr, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

func (r *repository) FindApprovalRecord(ctx context.Context, requestID string, stage int) (*ApprovalRecord, error) {
	var rec ApprovalRecord
	err := r.db.WithContext(ctx).
		Where("leave_request_id = ?", requestID).
		Where("stage = ?", stage).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) ListPendingByApprover(ctx context.Context, approverID string, stage int) ([]LeaveRequest, error) {
	db := r.db.WithContext(ctx).
		Where("current_approver_id = ?", approverID).
		Where("status IN ?", []string{StatusWaitingStage1, StatusWaitingStage2}).
		Order("created_at ASC")

	switch stage {
	case 1:
		db = db.Where("status = ?", StatusWaitingStage1)
	case 2:
		db = db.Where("status = ?", StatusWaitingStage2)
	}

	var requests []LeaveRequest
	err := db.Find(&requests).Error
	return requests, err
}

func (r *repository) ListByRequester(ctx context.Context, requesterID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}
