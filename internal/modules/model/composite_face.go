package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CompositeFace is one generated image version of a session. Versions are not
// unique per session; the generation path issues previous+1.
type CompositeFace struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID     uuid.UUID         `gorm:"type:uuid;not null;index:idx_faces_session_version,priority:1" json:"session_id"`
	FaceImagePath *string           `gorm:"type:text" json:"face_image_path"`
	Version       int               `gorm:"not null;check:version >= 1;index:idx_faces_session_version,priority:2,sort:desc" json:"version"`
	Category      string            `gorm:"type:text" json:"category,omitempty"`
	Meta          datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"meta,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// filled by the service from FaceImagePath, never stored
	ImageURL string `gorm:"-" json:"image_url,omitempty"`

	// CompositeFace <-> Session
	Session *Session `gorm:"foreignKey:SessionID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (CompositeFace) TableName() string { return "composite_faces" }

func (f *CompositeFace) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
