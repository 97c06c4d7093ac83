// internal/models/admin_request.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminRequest records a user's bid for elevated access. IP and device
// info arrive from an untrusted client and are masked/sanitized before
// they ever reach this row.
type AdminRequest struct {
	BaseModel
	UserID     uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index"`
	Status     RequestStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	MaskedIP   string        `json:"masked_ip" gorm:"size:64"`
	DeviceInfo string        `json:"device_info" gorm:"size:256"`
	DecidedAt  *time.Time    `json:"decided_at,omitempty"`
	DecidedBy  *string       `json:"decided_by,omitempty" gorm:"size:20"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
