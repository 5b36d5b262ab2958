package leaverequest

import (
	"time"

	"github.com/google/uuid"
)

const (
	KindAnnualLeave    = "ANNUAL_LEAVE"
	KindSick           = "SICK"
	KindPermission     = "PERMISSION"
	KindLateArrival    = "LATE_ARRIVAL"
	KindEarlyDeparture = "EARLY_DEPARTURE"
)

const (
	StatusWaitingStage1 = "WAITING_STAGE1"
	StatusWaitingStage2 = "WAITING_STAGE2"
	StatusApproved      = "APPROVED"
	StatusRejected      = "REJECTED"
)

const (
	DecisionPending  = "PENDING"
	DecisionApproved = "APPROVED"
	DecisionRejected = "REJECTED"
)

func ValidKind(kind string) bool {
	switch kind {
	case KindAnnualLeave, KindSick, KindPermission, KindLateArrival, KindEarlyDeparture:
		return true
	}
	return false
}

// ConsumesQuota hanya true untuk cuti tahunan. Sakit, izin, terlambat, dan
// pulang awal sengaja tidak memotong saldo; ini aturan bisnis, bukan bug.
func ConsumesQuota(kind string) bool {
	return kind == KindAnnualLeave
}

// SingleDateKind menandai jenis yang hanya berlaku satu tanggal.
func SingleDateKind(kind string) bool {
	return kind == KindLateArrival || kind == KindEarlyDeparture
}

// DayCount menghitung jumlah hari inklusif dari rentang tanggal.
func DayCount(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// LeaveRequest dimiliki eksklusif oleh workflow: dibuat saat submission,
// dimutasi hanya lewat transisi yang terdefinisi, tidak pernah dihapus.
type LeaveRequest struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequestNumber     string    `gorm:"type:varchar(30);not null;uniqueIndex"`
	RequesterID       uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_requester"`
	RequesterName     string    `gorm:"type:varchar(150);not null"`
	RequesterRoleName string    `gorm:"type:varchar(100);not null"`
	DivisionCode      string    `gorm:"type:varchar(20);not null"`

	Kind      string    `gorm:"type:varchar(20);not null"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	TotalDays int       `gorm:"not null;default:1"`
	Reason    string    `gorm:"type:text;not null"`

	CompanionContact *string `gorm:"type:varchar(100)"`
	EvidenceRef      *string `gorm:"type:varchar(255)"`

	Status            string     `gorm:"type:varchar(20);not null;default:'WAITING_STAGE1';index:idx_leave_requests_status"`
	CurrentApproverID *uuid.UUID `gorm:"type:uuid;index:idx_leave_requests_current_approver"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveRequest) TableName() string { return "leave_requests" }

// Terminal menandai status yang tidak boleh berubah lagi.
func (r *LeaveRequest) Terminal() bool {
	return r.Status == StatusApproved || r.Status == StatusRejected
}

// ApprovalRecord adalah jejak keputusan per tahap. Tepat satu record per
// tahap per request; record tahap 2 hanya ada jika tahap 1 disetujui.
// Nama dan role approver di-snapshot supaya audit tetap stabil walau data
// user berubah.
type ApprovalRecord struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LeaveRequestID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_approval_records_request_stage"`
	Stage          int       `gorm:"not null;uniqueIndex:uq_approval_records_request_stage"`
	ApproverID     uuid.UUID `gorm:"type:uuid;not null"`
	ApproverName   string    `gorm:"type:varchar(150);not null"`
	ApproverRole   string    `gorm:"type:varchar(100);not null"`
	Decision       string    `gorm:"type:varchar(20);not null;default:'PENDING'"`
	Notes          *string   `gorm:"type:text"`
	DecidedAt      *time.Time

	CreatedAt time.Time
}

func (ApprovalRecord) TableName() string { return "approval_records" }
