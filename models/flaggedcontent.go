package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Content types that the analyzer can flag.
const (
	ContentTypePost    = "post"
	ContentTypeComment = "comment"
	ContentTypeChat    = "chat"
)

// Flagged content status constants. Pending cases may be approved, rejected or
// deleted; all three are terminal.
const (
	FlagStatusPending  = "pending"
	FlagStatusApproved = "approved"
	FlagStatusRejected = "rejected"
	FlagStatusDeleted  = "deleted"
)

// FlaggedContent holds the structure for the flagged_content collection in
// mongo. One document is created per automatic keyword detection; the content
// field is a snapshot captured at detection time and does not track edits.
type FlaggedContent struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ContentType    string             `json:"contentType" bson:"contentType"`
	ContentID      string             `json:"contentId" bson:"contentId"`
	AuthorUserID   string             `json:"authorUserId" bson:"authorUserId"`
	AuthorName     string             `json:"authorName" bson:"authorName"`
	Content        string             `json:"content" bson:"content"`
	FlaggedWords   []string           `json:"flaggedWords" bson:"flaggedWords"`
	FlagReason     string             `json:"flagReason" bson:"flagReason"`
	FlaggedAt      primitive.DateTime `json:"flaggedAt" bson:"flaggedAt"`
	Status         string             `json:"status" bson:"status"`
	ContentVisible bool               `json:"contentVisible" bson:"contentVisible"`
	ReviewedBy     string             `json:"reviewedBy,omitempty" bson:"reviewedBy,omitempty"`
	ReviewedAt     primitive.DateTime `json:"reviewedAt,omitempty" bson:"reviewedAt,omitempty"`
}

// Terminal reports true once the case has been reviewed.
func (f *FlaggedContent) Terminal() bool {
	return f.Status != FlagStatusPending
}
