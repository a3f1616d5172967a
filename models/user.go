package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserMembershipType classifies a member's tier and drives feature access.
type UserMembershipType string

const (
	MembershipFree UserMembershipType = "FREE"
	MembershipGold UserMembershipType = "GOLD"
	MembershipVIP  UserMembershipType = "VIP"
)

// MembershipRank orders tiers for upgrade checks. Unknown tiers rank below FREE.
func MembershipRank(t UserMembershipType) int {
	switch t {
	case MembershipFree:
		return 0
	case MembershipGold:
		return 1
	case MembershipVIP:
		return 2
	default:
		return -1
	}
}

// User is a platform member. Password is a bcrypt hash and never serialized.
type User struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	Firstname string `gorm:"not null" json:"firstname"`
	Lastname  string `gorm:"not null" json:"lastname"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string `json:"phone,omitempty"`
	Password  string `gorm:"not null" json:"-"`

	MembershipType      UserMembershipType `gorm:"not null;default:FREE" json:"membershipType"`
	MembershipExpiresAt *time.Time         `json:"membershipExpiresAt,omitempty"`

	PhoneVerified        bool `gorm:"default:false" json:"phoneVerified"`
	EmailVerified        bool `gorm:"default:false" json:"emailVerified"`
	RegistrationComplete bool `gorm:"default:false" json:"registrationComplete"`

	ProfileImage *string `json:"profileImage,omitempty"`
	HomeClub     *string `gorm:"index" json:"homeClub,omitempty"` // club id, nil until assigned

	BusinessDetails *BusinessDetails `gorm:"foreignKey:UserID" json:"businessDetails,omitempty"`
	ContactDetails  *ContactDetails  `gorm:"foreignKey:UserID" json:"contactDetails,omitempty"`

	Timestamps
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// BusinessDetails holds a member's company profile (one row per user).
type BusinessDetails struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string `gorm:"uniqueIndex;not null" json:"userId"`
	CompanyName string `json:"companyName"`
	Industry    string `json:"industry"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Website     string `json:"website"`

	Timestamps
}

func (b *BusinessDetails) BeforeCreate(_ *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// ContactDetails mirrors the extended contact card shown on the profile page.
type ContactDetails struct {
	ID        string     `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string     `gorm:"uniqueIndex;not null" json:"userId"`
	Phone     *string    `json:"phone"`
	Mobile    *string    `json:"mobile"`
	Website   *string    `json:"website"`
	Links     StringList `gorm:"type:json" json:"links"`
	HouseNo   *string    `json:"houseNo"`
	Pager     *string    `json:"pager"`
	VoiceMail *string    `json:"voiceMail"`

	Timestamps
}

func (c *ContactDetails) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
