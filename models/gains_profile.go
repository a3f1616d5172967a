package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GainsProfile holds the five GAINS lists a member fills in on their bio
// page. Lists serialize as [] rather than null when unset.
type GainsProfile struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"uniqueIndex;not null" json:"userId"`

	Goals           StringList `gorm:"type:json" json:"goals"`
	Accomplishments StringList `gorm:"type:json" json:"accomplishments"`
	Interests       StringList `gorm:"type:json" json:"interests"`
	Networks        StringList `gorm:"type:json" json:"networks"`
	Skills          StringList `gorm:"type:json" json:"skills"`

	Timestamps
}

func (g *GainsProfile) BeforeCreate(_ *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
