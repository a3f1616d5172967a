package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemberStats is a denormalized per-user referral counter row, maintained
// by the stats worker rather than on the request path.
type MemberStats struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"uniqueIndex;not null" json:"userId"`

	ReferralsSent     int64 `gorm:"default:0" json:"referralsSent"`
	ReferralsReceived int64 `gorm:"default:0" json:"referralsReceived"`

	LastSyncedAt *time.Time `json:"lastSyncedAt,omitempty"`

	Timestamps
}

func (m *MemberStats) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
