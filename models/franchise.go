package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FranchiseRole is the admin hierarchy: super-franchise over everything,
// regional-franchise over one region, franchise over one club.
type FranchiseRole string

const (
	RoleSuper     FranchiseRole = "SUPER"
	RoleRegional  FranchiseRole = "REGIONAL"
	RoleFranchise FranchiseRole = "FRANCHISE"
)

// Region groups clubs for regional-franchise administration.
type Region struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	DisplayName string `gorm:"not null" json:"displayName"`

	Clubs []Club `gorm:"foreignKey:RegionID" json:"clubs,omitempty"`

	Timestamps
}

func (r *Region) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Club is a franchise location members affiliate with as their home club.
type Club struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Slug     string `gorm:"uniqueIndex;not null" json:"slug"`
	RegionID string `gorm:"index;not null" json:"regionId"`

	Timestamps
}

func (c *Club) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// FranchiseAdmin grants a user one role in the hierarchy. RegionID is set
// for REGIONAL admins, ClubID for FRANCHISE admins, neither for SUPER.
type FranchiseAdmin struct {
	ID       string        `gorm:"primaryKey;type:uuid" json:"id"`
	UserID   string        `gorm:"uniqueIndex;not null" json:"userId"`
	Role     FranchiseRole `gorm:"not null" json:"role"`
	RegionID *string       `gorm:"index" json:"regionId,omitempty"`
	ClubID   *string       `gorm:"index" json:"clubId,omitempty"`

	Timestamps
}

func (f *FranchiseAdmin) BeforeCreate(_ *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
