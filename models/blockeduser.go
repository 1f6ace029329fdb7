package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// BlockedUser holds the structure for the blocked_users collection in mongo.
// One document exists per (blocker, blocked) pair.
type BlockedUser struct {
	BlockID         string             `json:"blockId" bson:"_id"`
	BlockerUserID   string             `json:"blockerUserId" bson:"blockerUserId"`
	BlockedUserID   string             `json:"blockedUserId" bson:"blockedUserId"`
	BlockedUserName string             `json:"blockedUserName" bson:"blockedUserName"`
	Reason          string             `json:"reason,omitempty" bson:"reason,omitempty"`
	BlockedAt       primitive.DateTime `json:"blockedAt" bson:"blockedAt"`
}
