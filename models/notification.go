package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Notification type constants used by the moderation paths.
const (
	NotificationReaction    = "reaction"
	NotificationWarning     = "warning"
	NotificationUnban       = "unban"
	NotificationPromotion   = "promotion"
	NotificationAdminReport = "admin_report"
	NotificationAdminDigest = "admin_digest"
)

// Notification holds the structure for the notifications collection in mongo
type Notification struct {
	ID           string             `json:"notificationId" bson:"_id"`
	UserID       string             `json:"userId" bson:"userId"`
	Type         string             `json:"type" bson:"type"`
	Title        string             `json:"title" bson:"title"`
	Message      string             `json:"message" bson:"message"`
	FromUserID   string             `json:"fromUserId,omitempty" bson:"fromUserId,omitempty"`
	FromUserName string             `json:"fromUserName,omitempty" bson:"fromUserName,omitempty"`
	RelatedID    string             `json:"relatedId,omitempty" bson:"relatedId,omitempty"`
	ActionData   string             `json:"actionData,omitempty" bson:"actionData,omitempty"`
	Timestamp    primitive.DateTime `json:"timestamp" bson:"timestamp"`
	IsRead       bool               `json:"isRead" bson:"isRead"`
}
