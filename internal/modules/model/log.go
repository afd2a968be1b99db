package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActionType string

const (
	ActionTransform  ActionType = "transform"
	ActionRegenerate ActionType = "regenerate"
	ActionCreate     ActionType = "create"
	ActionUpdate     ActionType = "update"
)

func (a ActionType) Valid() bool {
	switch a {
	case ActionTransform, ActionRegenerate, ActionCreate, ActionUpdate:
		return true
	}
	return false
}

// Log is an append-only audit record. Nothing in the code base updates or deletes it.
type Log struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_logs_session_ts,priority:1" json:"session_id"`
	ActionType  ActionType `gorm:"type:text;not null;check:action_type IN ('transform','regenerate','create','update')" json:"action_type"`
	Description string     `gorm:"type:text;not null" json:"description"`

	Timestamp time.Time `gorm:"autoCreateTime;index:idx_logs_session_ts,priority:2" json:"timestamp"`

	// Log <-> Session
	Session *Session `gorm:"foreignKey:SessionID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Log) TableName() string { return "logs" }

func (l *Log) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
