package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CounterOfferStatusPending  = "pending"
	CounterOfferStatusAccepted = "accepted"
	CounterOfferStatusRejected = "rejected"
)

// SessionCounterOffer is an alternative proposal attached to a still-undecided
// session. It is advisory: creating one flags the original as amended but does
// not move the original's own status.
type SessionCounterOffer struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OriginalSessionID primitive.ObjectID `json:"original_session_id" bson:"originalSessionId"`
	CounterOfferedBy  primitive.ObjectID `json:"counter_offered_by" bson:"counterOfferedBy"`

	Skill1ID     primitive.ObjectID `json:"skill1_id" bson:"skill1Id"`
	Skill2ID     primitive.ObjectID `json:"skill2_id" bson:"skill2Id"`
	Description1 string             `json:"description1" bson:"description1"`
	Description2 string             `json:"description2" bson:"description2"`
	StartDate    time.Time          `json:"start_date" bson:"startDate"`
	Message      string             `json:"message,omitempty" bson:"message,omitempty"`

	Status    string    `json:"status" bson:"status"`
	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" bson:"updatedAt"`
}
