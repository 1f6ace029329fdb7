package moderation

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/rayseal/supportapp-api/databases"
	"github.com/rayseal/supportapp-api/models"
)

// AccessGate resolves privilege and standing facts about users. Every lookup
// fails closed: any store error or missing profile means no privilege, not
// banned, not blocked. Gate checks must never crash a caller flow, so none of
// these methods return an error.
type AccessGate struct {
	Profiles databases.ProfileDatabase
	Blocks   databases.BlockedUserDatabase
}

// IsAdmin reports whether the user holds admin privileges. An empty user id
// (no authenticated user) is never an admin.
func (g *AccessGate) IsAdmin(ctx context.Context, userID string) bool {
	if userID == "" {
		return false
	}
	profile, err := g.Profiles.FindOne(ctx, bson.M{"_id": userID})
	if err != nil {
		zap.S().With(err).Errorw("failed to check admin status", "userId", userID)
		return false
	}
	return profile.IsAdmin
}

// IsBanned reports whether the user is banned, returning the profile snapshot
// alongside the flag so callers can render ban details without a second fetch.
func (g *AccessGate) IsBanned(ctx context.Context, userID string) (bool, *models.Profile) {
	if userID == "" {
		return false, nil
	}
	profile, err := g.Profiles.FindOne(ctx, bson.M{"_id": userID})
	if err != nil {
		zap.S().With(err).Errorw("failed to check ban status", "userId", userID)
		return false, nil
	}
	return profile.IsBanned, profile
}

// IsBlockedBy reports whether blockerID has blocked targetID.
func (g *AccessGate) IsBlockedBy(ctx context.Context, blockerID, targetID string) bool {
	if blockerID == "" || targetID == "" {
		return false
	}
	count, err := g.Blocks.CountDocuments(ctx, bson.M{
		"blockerUserId": blockerID,
		"blockedUserId": targetID,
	})
	if err != nil {
		zap.S().With(err).Errorw("failed to check block status", "blockerId", blockerID, "targetId", targetID)
		return false
	}
	return count > 0
}
