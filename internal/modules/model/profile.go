package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile mirrors an identity owned by the external auth provider; ID is the token subject.
type Profile struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName *string   `gorm:"type:text" json:"full_name"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Profile) TableName() string { return "profiles" }
