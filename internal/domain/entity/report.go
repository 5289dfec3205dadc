package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ReportStatusPending     = "pending"
	ReportStatusUnderReview = "under_review"
	ReportStatusResolved    = "resolved"

	ReportActionWarn    = "warn"
	ReportActionSuspend = "suspend"

	MaxAdminMessageLength = 1000
)

// SessionReport is a complaint filed by one session participant against the
// other, escalated to an administrator for resolution.
type SessionReport struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SessionID    primitive.ObjectID `json:"session_id" bson:"sessionId"`
	ReportedBy   primitive.ObjectID `json:"reported_by" bson:"reportedBy"`
	ReportedUser primitive.ObjectID `json:"reported_user" bson:"reportedUser"`
	Reason       string             `json:"reason" bson:"reason"`
	Description  string             `json:"description" bson:"description"`
	Evidence     []EvidenceFile     `json:"evidence,omitempty" bson:"evidence,omitempty"`

	// Snapshot is captured once at filing time and never recomputed, so
	// admins review the state as of the report, not as of their review.
	Snapshot ReportSnapshot `json:"snapshot" bson:"snapshot"`

	Status        string              `json:"status" bson:"status"`
	AdminResponse string              `json:"admin_response,omitempty" bson:"adminResponse,omitempty"`
	AdminAction   string              `json:"admin_action,omitempty" bson:"adminAction,omitempty"`
	AdminID       *primitive.ObjectID `json:"admin_id,omitempty" bson:"adminId,omitempty"`
	ResolvedAt    *time.Time          `json:"resolved_at,omitempty" bson:"resolvedAt,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" bson:"updatedAt"`
}

// ReportSnapshot is the evidentiary state frozen when the report was filed.
type ReportSnapshot struct {
	ReportedUserLastActive *time.Time    `json:"reported_user_last_active,omitempty" bson:"reportedUserLastActive,omitempty"`
	ReporterWorksCount     int           `json:"reporter_works_count" bson:"reporterWorksCount"`
	ReportedUserWorksCount int           `json:"reported_user_works_count" bson:"reportedUserWorksCount"`
	ReporterWorks          []WorkSummary `json:"reporter_works,omitempty" bson:"reporterWorks,omitempty"`
	ReportedUserWorks      []WorkSummary `json:"reported_user_works,omitempty" bson:"reportedUserWorks,omitempty"`
}

func ValidReportAction(action string) bool {
	return action == ReportActionWarn || action == ReportActionSuspend
}

// InvestigationEmail is a generated email body handed back to the caller for
// dispatch; this service never sends mail itself during investigation kickoff.
type InvestigationEmail struct {
	To      primitive.ObjectID `json:"to"`
	Subject string             `json:"subject"`
	Body    string             `json:"body"`
}
