package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionStatus string

const (
	StatusStarted    SessionStatus = "Started"
	StatusProcessing SessionStatus = "Processing"
	StatusInProgress SessionStatus = "In Progress"
	StatusCompleted  SessionStatus = "Completed"
	StatusError      SessionStatus = "Error"
)

// allowed[from] lists the statuses reachable from `from`. Same-status moves are always accepted.
var allowed = map[SessionStatus][]SessionStatus{
	StatusStarted:    {StatusProcessing, StatusCompleted, StatusError},
	StatusProcessing: {StatusInProgress, StatusCompleted, StatusError},
	StatusInProgress: {StatusProcessing, StatusCompleted, StatusError},
	StatusCompleted:  {StatusProcessing},
	StatusError:      {StatusProcessing, StatusCompleted},
}

func (s SessionStatus) Valid() bool {
	_, ok := allowed[s]
	return ok
}

// CanTransition reports whether a session in status s may move to next.
func (s SessionStatus) CanTransition(next SessionStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	for _, to := range allowed[s] {
		if to == next {
			return true
		}
	}
	return false
}

type Session struct {
	ID       uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID     `gorm:"type:uuid;not null;index:idx_sessions_user_started,priority:1" json:"user_id"`
	RawInput *string       `gorm:"type:text" json:"raw_input"`
	Status   SessionStatus `gorm:"type:text;not null;default:'Started';check:status IN ('Started','Processing','In Progress','Completed','Error')" json:"status"`

	StartedAt time.Time `gorm:"autoCreateTime;index:idx_sessions_user_started,priority:2,sort:desc" json:"started_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Session <-> Profile
	User *Profile `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Session) TableName() string { return "sessions" }

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Status == "" {
		s.Status = StatusStarted
	}
	if s.StartedAt.IsZero() {
		// UTC keeps keyset comparisons consistent on text-stored timestamps
		s.StartedAt = time.Now().UTC()
	}
	return nil
}

// SessionPatch carries the mutable session fields; nil means unchanged.
type SessionPatch struct {
	RawInput *string
	Status   *SessionStatus
}
