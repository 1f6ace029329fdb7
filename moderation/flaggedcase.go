package moderation

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rayseal/supportapp-api/databases"
	"github.com/rayseal/supportapp-api/models"
)

// FlagService owns the flagged content lifecycle, from synchronous detection
// at submission time to the admin decision. A case holds a snapshot of the
// text as it was analyzed; edits to the underlying content are not tracked.
//
// The contentVisible flag on a case is true exactly when its status is
// approved; every transition maintains that invariant.
type FlagService struct {
	Analyzer *Analyzer
	Gate     *AccessGate
	Flags    databases.FlaggedContentDatabase
	Posts    databases.PostDatabase
	Comments databases.CommentDatabase
	Chats    databases.ChatMessageDatabase
	Executor *ActionExecutor
}

// FlagSubmission runs the analyzer over freshly submitted content and, when it
// flags, files a pending case. Returns the case (nil when clean) so the caller
// knows to hide the content pending review.
func (s *FlagService) FlagSubmission(ctx context.Context, contentType, contentID, authorID, authorName, content string) (*models.FlaggedContent, error) {
	analysis := s.Analyzer.Analyze(content)
	if !analysis.ShouldFlag {
		return nil, nil
	}

	flagged := models.FlaggedContent{
		ID:             primitive.NewObjectID(),
		ContentType:    contentType,
		ContentID:      contentID,
		AuthorUserID:   authorID,
		AuthorName:     authorName,
		Content:        content,
		FlaggedWords:   analysis.MatchedTerms,
		FlagReason:     analysis.Reason,
		FlaggedAt:      primitive.NewDateTimeFromTime(time.Now()),
		Status:         models.FlagStatusPending,
		ContentVisible: false,
	}
	if _, err := s.Flags.InsertOne(ctx, flagged); err != nil {
		return nil, persistence("insert flagged content", err)
	}
	return &flagged, nil
}

// Approve releases the content: status becomes approved and contentVisible
// flips to true. The underlying content record itself is untouched.
func (s *FlagService) Approve(ctx context.Context, flagID, actor string) error {
	flagged, err := s.reviewable(ctx, flagID, actor)
	if err != nil {
		return err
	}
	return s.close(ctx, flagged, actor, models.FlagStatusApproved, true)
}

// Reject keeps the content stored but hidden indefinitely.
func (s *FlagService) Reject(ctx context.Context, flagID, actor string) error {
	flagged, err := s.reviewable(ctx, flagID, actor)
	if err != nil {
		return err
	}
	return s.close(ctx, flagged, actor, models.FlagStatusRejected, false)
}

// Delete removes the underlying content record, then marks the case deleted.
// The case record itself is kept as the audit trail.
func (s *FlagService) Delete(ctx context.Context, flagID, actor string) error {
	flagged, err := s.reviewable(ctx, flagID, actor)
	if err != nil {
		return err
	}
	filter := bson.M{"_id": flagged.ContentID}
	switch flagged.ContentType {
	case models.ContentTypePost:
		if err := s.Posts.DeleteOne(ctx, filter); err != nil {
			return persistence("delete post", err)
		}
	case models.ContentTypeComment:
		if err := s.Comments.DeleteOne(ctx, filter); err != nil {
			return persistence("delete comment", err)
		}
	case models.ContentTypeChat:
		if err := s.Chats.DeleteOne(ctx, filter); err != nil {
			return persistence("delete chat message", err)
		}
	default:
		return fmt.Errorf("content type %q has no content collection: %w", flagged.ContentType, ErrInvalidReference)
	}
	return s.close(ctx, flagged, actor, models.FlagStatusDeleted, false)
}

// BanAuthor bans the author of the flagged content. It does not transition the
// case; the admin resolves it separately.
func (s *FlagService) BanAuthor(ctx context.Context, flagID, actor, reason string) error {
	if !s.Gate.IsAdmin(ctx, actor) {
		return fmt.Errorf("flagged content review requires admin: %w", ErrNotAuthorized)
	}
	id, err := primitive.ObjectIDFromHex(flagID)
	if err != nil {
		return fmt.Errorf("flag id %q: %w", flagID, ErrInvalidReference)
	}
	flagged, err := s.Flags.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("flagged content %s: %w", flagID, ErrNotFound)
	}
	if reason == "" {
		reason = "Inappropriate content"
	}
	return s.Executor.BanUser(ctx, flagged.AuthorUserID, reason, actor)
}

func (s *FlagService) reviewable(ctx context.Context, flagID, actor string) (*models.FlaggedContent, error) {
	if !s.Gate.IsAdmin(ctx, actor) {
		return nil, fmt.Errorf("flagged content review requires admin: %w", ErrNotAuthorized)
	}
	id, err := primitive.ObjectIDFromHex(flagID)
	if err != nil {
		return nil, fmt.Errorf("flag id %q: %w", flagID, ErrInvalidReference)
	}
	flagged, err := s.Flags.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("flagged content %s: %w", flagID, ErrNotFound)
	}
	if flagged.Terminal() {
		return nil, fmt.Errorf("flagged content %s is %s: %w", flagID, flagged.Status, ErrAlreadyResolved)
	}
	return flagged, nil
}

func (s *FlagService) close(ctx context.Context, flagged *models.FlaggedContent, actor, status string, visible bool) error {
	update := bson.M{"$set": bson.M{
		"status":         status,
		"contentVisible": visible,
		"reviewedBy":     actor,
		"reviewedAt":     primitive.NewDateTimeFromTime(time.Now()),
	}}
	if _, err := s.Flags.UpdateOne(ctx, bson.M{"_id": flagged.ID}, update); err != nil {
		return persistence("update flagged content", err)
	}
	return nil
}
