package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CancelResponsePending  = "pending"
	CancelResponseAccepted = "accepted"
	CancelResponseDeclined = "declined"

	CancelResolutionPending  = "pending"
	CancelResolutionResolved = "resolved"
)

// SessionCancel is a cancellation/dispute request raised by one participant of
// an active session. At most one outstanding request may exist per session; a
// partial unique index on sessionId enforces that at the storage layer.
type SessionCancel struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SessionID   primitive.ObjectID `json:"session_id" bson:"sessionId"`
	InitiatorID primitive.ObjectID `json:"initiator_id" bson:"initiatorId"`
	Reason      string             `json:"reason" bson:"reason"`
	Description string             `json:"description" bson:"description"`
	Evidence    []EvidenceFile     `json:"evidence,omitempty" bson:"evidence,omitempty"`

	ResponseStatus string `json:"response_status" bson:"responseStatus"`
	Resolution     string `json:"resolution" bson:"resolution"`

	// Acknowledged distinguishes "cancellation requested" from "cancellation
	// registered as seen" by the counterpart; unacknowledged queries drive
	// notification suppression.
	Acknowledged   bool       `json:"acknowledged" bson:"acknowledged"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty" bson:"acknowledgedAt,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" bson:"updatedAt"`
}

// EvidenceFile is an uploaded artifact referenced by a cancellation request or
// a report. Upload itself happens elsewhere; only the reference is stored.
type EvidenceFile struct {
	ID       string `json:"id" bson:"id"`
	FileName string `json:"file_name" bson:"fileName"`
	FileURL  string `json:"file_url" bson:"fileUrl"`
}
