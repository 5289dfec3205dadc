package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ProgressStatusNotStarted = "not_started"
	ProgressStatusInProgress = "in_progress"
	ProgressStatusCompleted  = "completed"
	ProgressStatusAbandoned  = "abandoned"
)

// SessionProgress tracks one participant's self-reported completion state.
// Exactly one document exists per (sessionId, userId) pair; writes are upserts
// so a doc lost to a partial session creation is recreated on first update.
type SessionProgress struct {
	ID                   primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SessionID            primitive.ObjectID `json:"session_id" bson:"sessionId"`
	UserID               primitive.ObjectID `json:"user_id" bson:"userId"`
	CompletionPercentage int                `json:"completion_percentage" bson:"completionPercentage"`
	Status               string             `json:"status" bson:"status"`
	DueDate              *time.Time         `json:"due_date,omitempty" bson:"dueDate,omitempty"`
	Notes                string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt            time.Time          `json:"created_at" bson:"createdAt"`
	UpdatedAt            time.Time          `json:"updated_at" bson:"updatedAt"`
}

func ValidProgressStatus(status string) bool {
	switch status {
	case ProgressStatusNotStarted, ProgressStatusInProgress,
		ProgressStatusCompleted, ProgressStatusAbandoned:
		return true
	}
	return false
}

func ValidCompletionPercentage(pct int) bool {
	return pct >= 0 && pct <= 100
}
