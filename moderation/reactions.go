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

// ReactionLedger enforces the single-reaction-per-user rule on posts: a user
// holds at most one active reaction on a given post at any time, and every
// reaction count equals the size of its user set.
type ReactionLedger struct {
	Posts         databases.PostDatabase
	Notifications databases.NotificationDatabase
}

// Toggle applies a reaction tap by userID on the given post.
//
//   - already reacted with reactionType: pure removal, no swap
//   - reacted with a different type: atomic swap out of the old type into the
//     new one. Both halves land in a single document update, so no state ever
//     shows the user in two sets or in neither half of a swap
//   - no prior reaction: plain add
//
// The in-memory post is only mutated after the store write succeeds, so a
// failed write leaves no local drift. A reaction notification goes to the post
// author on the add and swap paths, never on removal or self-reactions.
func (l *ReactionLedger) Toggle(ctx context.Context, post *models.Post, reactionType, userID string) error {
	if post.PostID == "" || userID == "" {
		return fmt.Errorf("post id and user id required: %w", ErrInvalidReference)
	}

	existing := post.ReactionBy(userID)

	switch {
	case existing == reactionType && existing != "":
		update := bson.M{
			"$pull": bson.M{"userReactions." + reactionType: userID},
			"$inc":  bson.M{"reactions." + reactionType: -1},
		}
		if _, err := l.Posts.UpdateOne(ctx, bson.M{"_id": post.PostID}, update); err != nil {
			return persistence("remove reaction", err)
		}
		l.applyRemove(post, reactionType, userID)
		return nil

	case existing != "":
		update := bson.M{
			"$pull":     bson.M{"userReactions." + existing: userID},
			"$addToSet": bson.M{"userReactions." + reactionType: userID},
			"$inc": bson.M{
				"reactions." + existing:     -1,
				"reactions." + reactionType: 1,
			},
		}
		if _, err := l.Posts.UpdateOne(ctx, bson.M{"_id": post.PostID}, update); err != nil {
			return persistence("swap reaction", err)
		}
		l.applyRemove(post, existing, userID)
		l.applyAdd(post, reactionType, userID)
		l.notifyAuthor(ctx, post, reactionType, userID)
		return nil

	default:
		update := bson.M{
			"$addToSet": bson.M{"userReactions." + reactionType: userID},
			"$inc":      bson.M{"reactions." + reactionType: 1},
		}
		if _, err := l.Posts.UpdateOne(ctx, bson.M{"_id": post.PostID}, update); err != nil {
			return persistence("add reaction", err)
		}
		l.applyAdd(post, reactionType, userID)
		l.notifyAuthor(ctx, post, reactionType, userID)
		return nil
	}
}

func (l *ReactionLedger) applyRemove(post *models.Post, reactionType, userID string) {
	users := post.UserReactions[reactionType]
	for i, id := range users {
		if id == userID {
			post.UserReactions[reactionType] = append(users[:i], users[i+1:]...)
			break
		}
	}
	if count := post.Reactions[reactionType]; count > 0 {
		post.Reactions[reactionType] = count - 1
	}
}

func (l *ReactionLedger) applyAdd(post *models.Post, reactionType, userID string) {
	if post.UserReactions == nil {
		post.UserReactions = map[string][]string{}
	}
	if post.Reactions == nil {
		post.Reactions = map[string]int{}
	}
	post.UserReactions[reactionType] = append(post.UserReactions[reactionType], userID)
	post.Reactions[reactionType]++
}

// notifyAuthor is fire-and-forget; delivery failure never fails the toggle.
func (l *ReactionLedger) notifyAuthor(ctx context.Context, post *models.Post, reactionType, userID string) {
	if post.UserID == "" || post.UserID == userID {
		return
	}
	notification := models.Notification{
		ID:         uuid.NewString(),
		UserID:     post.UserID,
		Type:       models.NotificationReaction,
		Title:      "New Reaction",
		Message:    "Someone reacted to your post",
		FromUserID: userID,
		RelatedID:  post.PostID,
		ActionData: fmt.Sprintf(`{"reactionType":%q}`, reactionType),
		Timestamp:  primitive.NewDateTimeFromTime(time.Now()),
	}
	if _, err := l.Notifications.InsertOne(ctx, notification); err != nil {
		zap.S().With(err).Errorw("failed to create reaction notification",
			"postId", post.PostID,
			"userId", post.UserID,
		)
	}
}
