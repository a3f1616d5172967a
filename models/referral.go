package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ReferralType distinguishes a self-introduction from one made on behalf of
// someone outside the platform.
type ReferralType string

const (
	ReferralSelf       ReferralType = "SELF"
	ReferralThirdParty ReferralType = "THIRD_PARTY"
)

// PriorityType is the closed set of referral priorities.
type PriorityType string

const (
	PriorityLow    PriorityType = "LOW"
	PriorityMedium PriorityType = "MEDIUM"
	PriorityHigh   PriorityType = "HIGH"
	PriorityUrgent PriorityType = "URGENT"
)

// ValidPriority reports whether p belongs to the PriorityType set.
func ValidPriority(p PriorityType) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Referral records one member introducing another individual for business
// purposes. Updates is an append-only status log, empty at creation.
// The "Email" JSON key is capitalized on the wire; preserved as-is.
type Referral struct {
	ID         string       `gorm:"primaryKey;type:uuid" json:"id"`
	Type       ReferralType `gorm:"not null" json:"type"`
	CreatorID  string       `gorm:"index;not null" json:"creatorId"`
	ReceiverID string       `gorm:"index;not null" json:"receiverId"`

	BusinessDetails   datatypes.JSON `json:"businessDetails,omitempty"`
	Phone             string         `json:"phone,omitempty"`
	Email             string         `json:"Email,omitempty"`
	ThirdPartyDetails datatypes.JSON `json:"thirdPartyDetails,omitempty"`
	Comments          string         `json:"comments,omitempty"`
	Priority          *PriorityType  `json:"priority,omitempty"`

	Updates datatypes.JSON `json:"updates"`

	Timestamps
}

func (r *Referral) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if len(r.Updates) == 0 {
		r.Updates = datatypes.JSON([]byte("[]"))
	}
	return nil
}

// ReferralUpdate is one entry inside a referral's Updates log. No transition
// rules are enforced on the log; it only ever grows.
type ReferralUpdate struct {
	Status   string    `json:"status"`
	Note     string    `json:"note,omitempty"`
	ByUserID string    `json:"byUserId"`
	At       time.Time `json:"at"`
}

// UserSummary is the limited creator/receiver projection embedded in
// referral listings.
type UserSummary struct {
	ID           string  `json:"id"`
	Firstname    string  `json:"firstname"`
	Lastname     string  `json:"lastname"`
	Phone        string  `json:"phone"`
	ProfileImage *string `json:"profileImage"`
}

// ReferralWithCreator is a referral joined with its creator's public fields.
type ReferralWithCreator struct {
	Referral
	Creator UserSummary `gorm:"-" json:"creator"`
}

// ReferralWithReceiver is a referral joined with its receiver's public fields.
type ReferralWithReceiver struct {
	Referral
	Receiver UserSummary `gorm:"-" json:"receiver"`
}
