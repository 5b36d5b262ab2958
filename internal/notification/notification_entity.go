package notification

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeLeaveSubmitted     = "LEAVE_SUBMITTED"
	TypeLeaveNeedsApproval = "LEAVE_NEEDS_APPROVAL"
	TypeLeaveProgress      = "LEAVE_PROGRESS"
	TypeLeaveApproved      = "LEAVE_APPROVED"
	TypeLeaveRejected      = "LEAVE_REJECTED"
)

// Notification bersifat append-only; satu-satunya mutasi adalah toggle read,
// dan penerima boleh menghapus notifikasinya sendiri.
type Notification struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index:idx_notifications_user_read"`
	Type          string     `gorm:"type:varchar(40);not null"`
	Title         string     `gorm:"type:varchar(200);not null"`
	Message       string     `gorm:"type:text;not null"`
	ReferenceID   *uuid.UUID `gorm:"type:uuid"`
	ReferenceType *string    `gorm:"type:varchar(40)"`
	IsRead        bool       `gorm:"not null;default:false;index:idx_notifications_user_read"`

	CreatedAt time.Time
	ReadAt    *time.Time
}

func (Notification) TableName() string { return "notifications" }
