package quota

import (
	"time"

	quotaerrors "go-portal/internal/quota/errors"

	"github.com/google/uuid"
)

// DefaultAnnualDays dipakai ketika tahun berjalan belum punya konfigurasi.
const DefaultAnnualDays = 12

// LeaveQuota adalah saldo cuti tahunan per user. Invariant yang dijaga di
// semua operasi: total = used + pending + remaining, semua bucket >= 0.
// Mutasi hanya lewat method di bawah, tidak pernah lewat UPDATE lepas.
type LeaveQuota struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_quotas_user_year"`
	Year      int       `gorm:"not null;uniqueIndex:uq_leave_quotas_user_year"`
	Total     int       `gorm:"not null"`
	Used      int       `gorm:"not null;default:0"`
	Pending   int       `gorm:"not null;default:0"`
	Remaining int       `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveQuota) TableName() string { return "leave_quotas" }

// Reserve memindahkan hari dari remaining ke pending saat pengajuan masuk.
func (q *LeaveQuota) Reserve(days int) error {
	if days <= 0 {
		return quotaerrors.ErrInvalidDayCount
	}
	if q.Remaining < days {
		return quotaerrors.ErrQuotaExceeded
	}
	q.Pending += days
	q.Remaining -= days
	return nil
}

// Commit memindahkan hari dari pending ke used saat approval final.
// Pending yang kurang berarti reservasi hilang: konsistensi ledger rusak.
func (q *LeaveQuota) Commit(days int) error {
	if days <= 0 {
		return quotaerrors.ErrInvalidDayCount
	}
	if q.Pending < days {
		return quotaerrors.ErrQuotaInconsistent
	}
	q.Pending -= days
	q.Used += days
	return nil
}

// Release mengembalikan hari dari pending ke remaining saat request ditolak.
func (q *LeaveQuota) Release(days int) error {
	if days <= 0 {
		return quotaerrors.ErrInvalidDayCount
	}
	if q.Pending < days {
		return quotaerrors.ErrQuotaInconsistent
	}
	q.Pending -= days
	q.Remaining += days
	return nil
}

// AdjustTotal menghitung ulang remaining dari total baru, mempertahankan
// used dan pending yang sudah berjalan.
func (q *LeaveQuota) AdjustTotal(newTotal int) error {
	if newTotal < 0 {
		return quotaerrors.ErrInvalidAdjustment
	}
	remaining := newTotal - q.Used - q.Pending
	if remaining < 0 {
		return quotaerrors.ErrInvalidAdjustment
	}
	q.Total = newTotal
	q.Remaining = remaining
	return nil
}

// Consistent melaporkan apakah invariant bucket masih terjaga.
func (q *LeaveQuota) Consistent() bool {
	return q.Total == q.Used+q.Pending+q.Remaining &&
		q.Used >= 0 && q.Pending >= 0 && q.Remaining >= 0
}

// NewLeaveQuota membuat ledger row baru dengan seluruh saldo di remaining.
func NewLeaveQuota(userID uuid.UUID, year, total int) *LeaveQuota {
	return &LeaveQuota{
		ID:        uuid.New(),
		UserID:    userID,
		Year:      year,
		Total:     total,
		Used:      0,
		Pending:   0,
		Remaining: total,
	}
}

// LeaveQuotaConfig menyimpan default total cuti per tahun.
type LeaveQuotaConfig struct {
	Year         int `gorm:"primaryKey"`
	DefaultTotal int `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveQuotaConfig) TableName() string { return "leave_quota_configs" }
