package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Profile holds the structure for the profiles collection in mongo. One document
// exists per signed-up user; ban/warning fields are soft state and profiles are
// never hard-deleted.
type Profile struct {
	UID               string             `json:"uid" bson:"_id"`
	DisplayName       string             `json:"displayName" bson:"displayName"`
	ActualName        string             `json:"actualName" bson:"actualName"`
	Email             string             `json:"email" bson:"email"`
	Password          string             `json:"-" bson:"password"`
	Bio               string             `json:"bio" bson:"bio"`
	ProfilePictureURL string             `json:"profilePictureUrl" bson:"profilePictureUrl"`
	SupportCategories []string           `json:"supportCategories" bson:"supportCategories"`
	MemberSince       primitive.DateTime `json:"memberSince" bson:"memberSince"`
	NumPosts          int                `json:"numPosts" bson:"numPosts"`

	IsAdmin   bool   `json:"isAdmin" bson:"isAdmin"`
	IsBanned  bool   `json:"isBanned" bson:"isBanned"`
	BannedBy  string `json:"bannedBy" bson:"bannedBy"`
	BannedAt  int64  `json:"bannedAt" bson:"bannedAt"`
	BanReason string `json:"banReason" bson:"banReason"`

	ReportCount  int   `json:"reportCount" bson:"reportCount"`
	WarningCount int   `json:"warningCount" bson:"warningCount"`
	LastWarning  int64 `json:"lastWarning" bson:"lastWarning"`
}
