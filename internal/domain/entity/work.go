package entity

import (
	"path"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	WorkStatusPending  = "pending"
	WorkStatusAccepted = "accepted"
	WorkStatusRejected = "rejected"

	MaxWorkFiles = 5
)

// Work is a deliverable submitted by one participant to the other. Submissions
// accumulate as append-only history; review flips acceptanceStatus once.
type Work struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SessionID     primitive.ObjectID `json:"session_id" bson:"sessionId"`
	ProvideUserID primitive.ObjectID `json:"provide_user_id" bson:"provideUser"`
	ReceiveUserID primitive.ObjectID `json:"receive_user_id" bson:"receiveUser"`

	// WorkURL is the legacy single-link field; newer submissions carry up to
	// MaxWorkFiles structured files instead. At least one of the two must be
	// populated.
	WorkURL   string     `json:"work_url,omitempty" bson:"workURL,omitempty"`
	WorkFiles []WorkFile `json:"work_files,omitempty" bson:"workFiles,omitempty"`

	WorkDescription  string     `json:"work_description" bson:"workDescription"`
	ProvideDate      time.Time  `json:"provide_date" bson:"provideDate"`
	AcceptanceStatus string     `json:"acceptance_status" bson:"acceptanceStatus"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty" bson:"reviewedAt,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" bson:"updatedAt"`
}

type WorkFile struct {
	ID        string `json:"id" bson:"id"`
	FileName  string `json:"file_name" bson:"fileName"`
	FileURL   string `json:"file_url" bson:"fileURL"`
	FileTitle string `json:"file_title" bson:"fileTitle"`
}

// DeriveFileTitle builds a display title from a filename stem, used when the
// submitter supplies none.
func DeriveFileTitle(fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	stem := strings.TrimSuffix(base, path.Ext(base))
	if stem == "" {
		return base
	}
	return stem
}

// HasArtifact reports whether the submission carries at least one deliverable.
func (w *Work) HasArtifact() bool {
	return w.WorkURL != "" || len(w.WorkFiles) > 0
}

// WorkSummary is the immutable per-work view copied into report snapshots.
type WorkSummary struct {
	WorkID           primitive.ObjectID `json:"work_id" bson:"workId"`
	WorkDescription  string             `json:"work_description" bson:"workDescription"`
	ProvideDate      time.Time          `json:"provide_date" bson:"provideDate"`
	AcceptanceStatus string             `json:"acceptance_status" bson:"acceptanceStatus"`
	FileCount        int                `json:"file_count" bson:"fileCount"`
}

func (w *Work) Summary() WorkSummary {
	return WorkSummary{
		WorkID:           w.ID,
		WorkDescription:  w.WorkDescription,
		ProvideDate:      w.ProvideDate,
		AcceptanceStatus: w.AcceptanceStatus,
		FileCount:        len(w.WorkFiles),
	}
}
