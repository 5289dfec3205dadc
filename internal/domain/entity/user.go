package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email    string             `json:"email" bson:"email"`
	Username string             `json:"username" bson:"username"`
	Role     string             `json:"role" bson:"role"`

	LastActiveAt *time.Time `json:"last_active_at,omitempty" bson:"lastActiveAt,omitempty"`

	Suspension Suspension `json:"suspension" bson:"suspension"`

	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" bson:"updatedAt"`
}

type Suspension struct {
	IsSuspended bool       `json:"is_suspended" bson:"isSuspended"`
	SuspendedAt *time.Time `json:"suspended_at,omitempty" bson:"suspendedAt,omitempty"`
	Reason      string     `json:"reason,omitempty" bson:"reason,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
