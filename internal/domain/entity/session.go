package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SessionStatusPending   = "pending"
	SessionStatusActive    = "active"
	SessionStatusRejected  = "rejected"
	SessionStatusCanceled  = "canceled"
	SessionStatusCompleted = "completed"
)

// Session is one proposed or running skill exchange between two users.
// Documents are never hard-deleted; terminated sessions stay queryable for
// dispute resolution.
type Session struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	User1ID      primitive.ObjectID `json:"user1_id" bson:"user1Id"`
	User2ID      primitive.ObjectID `json:"user2_id" bson:"user2Id"`
	Skill1ID     primitive.ObjectID `json:"skill1_id" bson:"skill1Id"`
	Skill2ID     primitive.ObjectID `json:"skill2_id" bson:"skill2Id"`
	Description1 string             `json:"description1" bson:"description1"`
	Description2 string             `json:"description2" bson:"description2"`

	Status string `json:"status" bson:"status"`

	// IsAccepted is the legacy tri-state shadow of Status (nil=pending,
	// true=accepted, false=rejected/canceled). Status is canonical; every
	// write derives this field in the same update so the two cannot drift.
	// Older documents may still disagree and are repaired on read.
	IsAccepted *bool `json:"is_accepted" bson:"isAccepted"`

	StartDate  time.Time           `json:"start_date" bson:"startDate"`
	RejectedBy *primitive.ObjectID `json:"rejected_by,omitempty" bson:"rejectedBy,omitempty"`
	RejectedAt *time.Time          `json:"rejected_at,omitempty" bson:"rejectedAt,omitempty"`

	// IsAmended flags that a counter-offer exists for this session. The bson
	// key keeps the historical misspelling used by stored documents.
	IsAmended bool `json:"is_amended" bson:"isAmmended"`

	Progress1ID primitive.ObjectID `json:"progress1_id,omitempty" bson:"progress1Id,omitempty"`
	Progress2ID primitive.ObjectID `json:"progress2_id,omitempty" bson:"progress2Id,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" bson:"updatedAt"`
}

func ValidSessionStatus(status string) bool {
	switch status {
	case SessionStatusPending, SessionStatusActive, SessionStatusRejected,
		SessionStatusCanceled, SessionStatusCompleted:
		return true
	}
	return false
}

// AcceptedFlagFor derives the legacy isAccepted value for a status.
func AcceptedFlagFor(status string) *bool {
	switch status {
	case SessionStatusPending:
		return nil
	case SessionStatusActive, SessionStatusCompleted:
		v := true
		return &v
	default:
		v := false
		return &v
	}
}

// StatusFromAcceptedFlag maps the legacy tri-state back to a status. Used by
// the read-time repair pass for documents written before Status became
// canonical.
func StatusFromAcceptedFlag(isAccepted *bool) string {
	if isAccepted == nil {
		return SessionStatusPending
	}
	if *isAccepted {
		return SessionStatusActive
	}
	return SessionStatusCanceled
}

// StatusConsistent reports whether Status agrees with the legacy flag. Terminal
// statuses that share a flag value (rejected/canceled, active/completed) are
// all considered consistent with it.
func (s *Session) StatusConsistent() bool {
	if s.IsAccepted == nil {
		return s.Status == SessionStatusPending
	}
	if *s.IsAccepted {
		return s.Status == SessionStatusActive || s.Status == SessionStatusCompleted
	}
	return s.Status == SessionStatusCanceled || s.Status == SessionStatusRejected
}

func (s *Session) HasParticipant(userID primitive.ObjectID) bool {
	return s.User1ID == userID || s.User2ID == userID
}

// Counterpart returns the other participant of the session.
func (s *Session) Counterpart(userID primitive.ObjectID) primitive.ObjectID {
	if s.User1ID == userID {
		return s.User2ID
	}
	return s.User1ID
}

// Undecided reports whether neither party has accepted or declined yet.
func (s *Session) Undecided() bool {
	return s.Status == SessionStatusPending
}
