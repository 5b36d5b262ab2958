package approver

import (
	"time"

	"github.com/google/uuid"
)

// ApproverAssignment menentukan siapa yang boleh menjadi approver tahap 1
// untuk sebuah divisi. Many-to-many antara divisi dan user.
type ApproverAssignment struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DivisionCode string    `gorm:"type:varchar(20);not null;index:idx_approver_assignments_division"`
	ApproverID   uuid.UUID `gorm:"type:uuid;not null"`
	RoleCategory string    `gorm:"type:varchar(20);not null"`
	Active       bool      `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ApproverAssignment) TableName() string { return "approver_assignments" }

// HRDApproverAssignment menentukan siapa yang boleh menjadi approver tahap 2
// (final). DivisionCode nil berarti berlaku untuk semua divisi.
type HRDApproverAssignment struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ApproverID   uuid.UUID `gorm:"type:uuid;not null"`
	DivisionCode *string   `gorm:"type:varchar(20)"`
	Active       bool      `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (HRDApproverAssignment) TableName() string { return "hrd_approver_assignments" }

// UserRow adalah proyeksi query-only dari tabel users milik subsistem lain.
// Modul ini tidak pernah memutasi users.
type UserRow struct {
	ID           uuid.UUID `gorm:"column:id"`
	FullName     string    `gorm:"column:full_name"`
	RoleName     string    `gorm:"column:role_name"`
	DivisionCode string    `gorm:"column:division_code"`
}

func (UserRow) TableName() string { return "users" }

// Candidate adalah satu kandidat approver hasil resolusi policy,
// sudah membawa snapshot nama/role untuk kebutuhan audit.
type Candidate struct {
	UserID       uuid.UUID
	Name         string
	RoleName     string
	Category     RoleCategory
	DivisionCode *string
}
