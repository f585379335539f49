package models

import (
	"time"

	"github.com/google/uuid"
)

// Actor identifies the user performing a transition. Operational completion
// and financial approval are performed by distinct roles.
type Actor struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role string    `json:"role"`
}

// AuditLog is an append-only record of one field change on a job. Entries are
// never mutated or deleted; every accounting-status transition produces
// exactly one.
type AuditLog struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	JobID     uuid.UUID `json:"job_id" gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid"`
	UserName  string    `json:"user_name" gorm:"type:varchar(255)"`
	UserRole  string    `json:"user_role" gorm:"type:varchar(50)"`
	Field     string    `json:"field" gorm:"type:varchar(50);not null"`
	OldValue  string    `json:"old_value" gorm:"type:text"`
	NewValue  string    `json:"new_value" gorm:"type:text"`
	Reason    *string   `json:"reason,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP;index"`
}
