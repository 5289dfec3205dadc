package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CompletionStatusPending  = "pending"
	CompletionStatusApproved = "approved"
	CompletionStatusRejected = "rejected"
)

// SessionCompletion is a request by one participant to mark the session done.
// Approval by the counterpart is what advances the session to completed; work
// acceptance alone never does.
type SessionCompletion struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	SessionID   primitive.ObjectID  `json:"session_id" bson:"sessionId"`
	RequestedBy primitive.ObjectID  `json:"requested_by" bson:"requestedBy"`
	Message     string              `json:"message,omitempty" bson:"message,omitempty"`
	Status      string              `json:"status" bson:"status"`
	RespondedBy *primitive.ObjectID `json:"responded_by,omitempty" bson:"respondedBy,omitempty"`
	RespondedAt *time.Time          `json:"responded_at,omitempty" bson:"respondedAt,omitempty"`
	CreatedAt   time.Time           `json:"created_at" bson:"createdAt"`
	UpdatedAt   time.Time           `json:"updated_at" bson:"updatedAt"`
}
