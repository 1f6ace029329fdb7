package moderation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/rayseal/supportapp-api/databases"
	"github.com/rayseal/supportapp-api/models"
)

// ActionExecutor performs the side-effecting admin actions and their
// notification fan-out. It is the only writer that touches the ban, admin and
// warning fields on profiles.
//
// Every mutating operation is idempotent at the storage layer (setting the
// same flag twice is a no-op effect) but notifications are re-emitted on every
// call; callers must not call twice expecting suppression.
type ActionExecutor struct {
	Gate          *AccessGate
	Profiles      databases.ProfileDatabase
	Notifications databases.NotificationDatabase
	ChatMessages  databases.ChatMessageDatabase
}

// BanUser bans targetID, recording who banned them, when and why. Banning also
// revokes admin privileges so a banned profile can never hold isAdmin=true.
// No notification is sent to the target; only the unban path notifies.
func (e *ActionExecutor) BanUser(ctx context.Context, targetID, reason, actor string) error {
	if !e.Gate.IsAdmin(ctx, actor) {
		return fmt.Errorf("ban requires admin: %w", ErrNotAuthorized)
	}
	update := bson.M{"$set": bson.M{
		"isBanned":  true,
		"bannedBy":  actor,
		"bannedAt":  time.Now().UnixMilli(),
		"banReason": reason,
		"isAdmin":   false,
	}}
	res, err := e.Profiles.UpdateOne(ctx, bson.M{"_id": targetID}, update)
	if err != nil {
		return persistence("ban user", err)
	}
	if res != nil && res.MatchedCount == 0 {
		return fmt.Errorf("profile %s: %w", targetID, ErrNotFound)
	}
	e.PostToAdminChannel(ctx, fmt.Sprintf("User %s was banned by %s: %s", targetID, actor, reason))
	return nil
}

// UnbanUser lifts a ban and clears the ban bookkeeping fields, then notifies
// the target that their account is back.
func (e *ActionExecutor) UnbanUser(ctx context.Context, targetID, actor string) error {
	if !e.Gate.IsAdmin(ctx, actor) {
		return fmt.Errorf("unban requires admin: %w", ErrNotAuthorized)
	}
	update := bson.M{"$set": bson.M{
		"isBanned":  false,
		"bannedBy":  "",
		"bannedAt":  int64(0),
		"banReason": "",
	}}
	res, err := e.Profiles.UpdateOne(ctx, bson.M{"_id": targetID}, update)
	if err != nil {
		return persistence("unban user", err)
	}
	if res != nil && res.MatchedCount == 0 {
		return fmt.Errorf("profile %s: %w", targetID, ErrNotFound)
	}
	e.notify(ctx, targetID, models.NotificationUnban, "Account Unbanned",
		"Your account has been unbanned. Welcome back!", "")
	return nil
}

// WarnUser increments the target's warning count and notifies them. There is
// no cap and no automatic escalation to a ban. The admin gate is rechecked by
// the caller, not re-derived here.
func (e *ActionExecutor) WarnUser(ctx context.Context, targetID, actor string) error {
	update := bson.M{
		"$inc": bson.M{"warningCount": 1},
		"$set": bson.M{"lastWarning": time.Now().UnixMilli()},
	}
	res, err := e.Profiles.UpdateOne(ctx, bson.M{"_id": targetID}, update)
	if err != nil {
		return persistence("warn user", err)
	}
	if res != nil && res.MatchedCount == 0 {
		return fmt.Errorf("profile %s: %w", targetID, ErrNotFound)
	}
	e.notify(ctx, targetID, models.NotificationWarning, "Warning Received",
		"You have received a warning from an administrator.", "")
	return nil
}

// PromoteToAdmin grants admin privileges and notifies the target. Banned
// profiles cannot be promoted.
func (e *ActionExecutor) PromoteToAdmin(ctx context.Context, targetID, actor string) error {
	if !e.Gate.IsAdmin(ctx, actor) {
		return fmt.Errorf("promote requires admin: %w", ErrNotAuthorized)
	}
	profile, err := e.Profiles.FindOne(ctx, bson.M{"_id": targetID})
	if err != nil {
		return fmt.Errorf("profile %s: %w", targetID, ErrNotFound)
	}
	if profile.IsBanned {
		return fmt.Errorf("cannot promote banned user %s: %w", targetID, ErrNotAuthorized)
	}
	if _, err := e.Profiles.UpdateOne(ctx, bson.M{"_id": targetID}, bson.M{"$set": bson.M{"isAdmin": true}}); err != nil {
		return persistence("promote user", err)
	}
	e.notify(ctx, targetID, models.NotificationPromotion, "Admin Promotion",
		"You have been promoted to administrator.", "")
	return nil
}

// DemoteFromAdmin revokes admin privileges. No notification is sent on demote.
func (e *ActionExecutor) DemoteFromAdmin(ctx context.Context, targetID, actor string) error {
	if !e.Gate.IsAdmin(ctx, actor) {
		return fmt.Errorf("demote requires admin: %w", ErrNotAuthorized)
	}
	res, err := e.Profiles.UpdateOne(ctx, bson.M{"_id": targetID}, bson.M{"$set": bson.M{"isAdmin": false}})
	if err != nil {
		return persistence("demote user", err)
	}
	if res != nil && res.MatchedCount == 0 {
		return fmt.Errorf("profile %s: %w", targetID, ErrNotFound)
	}
	return nil
}

// NotifyAllAdmins creates one notification per admin profile. There is no
// batching guarantee: a failed insert for one admin is logged and the fan-out
// continues, so partial delivery is possible and is not rolled back.
func (e *ActionExecutor) NotifyAllAdmins(ctx context.Context, title, message, relatedID string) error {
	admins, err := e.Profiles.Find(ctx, bson.M{"isAdmin": true})
	if err != nil {
		return persistence("find admins", err)
	}
	for _, admin := range admins {
		if admin.UID == "" {
			continue
		}
		e.notify(ctx, admin.UID, models.NotificationAdminReport, title, message, relatedID)
	}
	return nil
}

// PostToAdminChannel appends a system message to the admin-visible chat room.
// Fire-and-forget; failures are logged, never propagated.
func (e *ActionExecutor) PostToAdminChannel(ctx context.Context, content string) {
	message := models.ChatMessage{
		MessageID:      uuid.NewString(),
		RoomID:         models.AdminRoomID,
		SenderID:       "system",
		SenderName:     "System",
		Content:        content,
		Timestamp:      time.Now().UnixMilli(),
		ContentVisible: true,
	}
	if _, err := e.ChatMessages.InsertOne(ctx, message); err != nil {
		zap.S().With(err).Error("failed to post to admin channel")
	}
}

func (e *ActionExecutor) notify(ctx context.Context, userID, kind, title, message, relatedID string) {
	notification := models.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      kind,
		Title:     title,
		Message:   message,
		RelatedID: relatedID,
		Timestamp: primitive.NewDateTimeFromTime(time.Now()),
	}
	if _, err := e.Notifications.InsertOne(ctx, notification); err != nil {
		zap.S().With(err).Errorw("failed to create notification", "userId", userID, "type", kind)
	}
}
