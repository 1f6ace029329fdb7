package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Report type constants describe what kind of item a report targets.
const (
	ReportTypePost        = "post"
	ReportTypeUser        = "user"
	ReportTypeComment     = "comment"
	ReportTypeChatMessage = "chat_message"
)

// Report status constants. A report starts pending and ends resolved or
// dismissed; there is no transition out of a terminal status.
const (
	ReportStatusPending   = "pending"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

// Action taken when a report is resolved.
const (
	ActionNone           = "none"
	ActionUserBanned     = "user_banned"
	ActionContentDeleted = "content_deleted"
)

// Report holds the structure for the reports collection in mongo. It represents
// a user-submitted complaint against a post, user or chat message.
type Report struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ReportType     string             `json:"reportType" bson:"reportType"`
	ReportedItemID string             `json:"reportedItemId" bson:"reportedItemId"`
	ReportedUserID string             `json:"reportedUserId,omitempty" bson:"reportedUserId,omitempty"`
	ReporterUserID string             `json:"reporterUserId" bson:"reporterUserId"`
	ReporterName   string             `json:"reporterName" bson:"reporterName"`
	Reason         string             `json:"reason" bson:"reason"`
	Description    string             `json:"description" bson:"description"`
	CreatedAt      primitive.DateTime `json:"createdAt" bson:"createdAt"`
	Status         string             `json:"status" bson:"status"`
	ReviewedBy     string             `json:"reviewedBy,omitempty" bson:"reviewedBy,omitempty"`
	ReviewedAt     primitive.DateTime `json:"reviewedAt,omitempty" bson:"reviewedAt,omitempty"`
	ActionTaken    string             `json:"actionTaken,omitempty" bson:"actionTaken,omitempty"`
}

// Terminal reports true once the report has been reviewed.
func (r *Report) Terminal() bool {
	return r.Status == ReportStatusResolved || r.Status == ReportStatusDismissed
}
