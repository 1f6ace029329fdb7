package moderation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	mocksdb "github.com/rayseal/supportapp-api/databases/mocks"
	"github.com/rayseal/supportapp-api/models"
	"github.com/rayseal/supportapp-api/moderation"
)

func reactionPost() *models.Post {
	return &models.Post{
		PostID:     "post-1",
		UserID:     "author-1",
		AuthorName: "Author",
		Reactions:  map[string]int{models.ReactionStrong: 1},
		UserReactions: map[string][]string{
			models.ReactionStrong: {"user-1"},
		},
	}
}

func TestReactionLedger_ToggleRemovesExistingReaction(t *testing.T) {
	posts := &mocksdb.PostDatabase{}
	notifications := &mocksdb.NotificationDatabase{}

	posts.On("UpdateOne", mock.Anything, bson.M{"_id": "post-1"}, bson.M{
		"$pull": bson.M{"userReactions." + models.ReactionStrong: "user-1"},
		"$inc":  bson.M{"reactions." + models.ReactionStrong: -1},
	}).Return(&mongo.UpdateResult{MatchedCount: 1}, nil)

	ledger := &moderation.ReactionLedger{Posts: posts, Notifications: notifications}
	post := reactionPost()

	err := ledger.Toggle(context.TODO(), post, models.ReactionStrong, "user-1")

	assert.NoError(t, err)
	assert.Equal(t, 0, post.Reactions[models.ReactionStrong])
	assert.Empty(t, post.UserReactions[models.ReactionStrong])
	// a removal never notifies the author
	notifications.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
	posts.AssertNumberOfCalls(t, "UpdateOne", 1)
}

func TestReactionLedger_ToggleSwapsInSingleUpdate(t *testing.T) {
	posts := &mocksdb.PostDatabase{}
	notifications := &mocksdb.NotificationDatabase{}

	posts.On("UpdateOne", mock.Anything, bson.M{"_id": "post-1"}, bson.M{
		"$pull":     bson.M{"userReactions." + models.ReactionStrong: "user-1"},
		"$addToSet": bson.M{"userReactions." + models.ReactionSupport: "user-1"},
		"$inc": bson.M{
			"reactions." + models.ReactionStrong:  -1,
			"reactions." + models.ReactionSupport: 1,
		},
	}).Return(&mongo.UpdateResult{MatchedCount: 1}, nil)
	notifications.On("InsertOne", mock.Anything, mock.AnythingOfType("models.Notification")).Return(nil, nil)

	ledger := &moderation.ReactionLedger{Posts: posts, Notifications: notifications}
	post := reactionPost()

	err := ledger.Toggle(context.TODO(), post, models.ReactionSupport, "user-1")

	assert.NoError(t, err)
	assert.Equal(t, 0, post.Reactions[models.ReactionStrong])
	assert.Equal(t, 1, post.Reactions[models.ReactionSupport])
	assert.Empty(t, post.UserReactions[models.ReactionStrong])
	assert.Equal(t, []string{"user-1"}, post.UserReactions[models.ReactionSupport])
	// both halves of the swap land in one document update
	posts.AssertNumberOfCalls(t, "UpdateOne", 1)
	notifications.AssertNumberOfCalls(t, "InsertOne", 1)
}

func TestReactionLedger_ToggleAddNotifiesAuthor(t *testing.T) {
	posts := &mocksdb.PostDatabase{}
	notifications := &mocksdb.NotificationDatabase{}

	posts.On("UpdateOne", mock.Anything, bson.M{"_id": "post-1"}, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1}, nil)

	var created models.Notification
	notifications.On("InsertOne", mock.Anything, mock.AnythingOfType("models.Notification")).
		Return(nil, nil).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(models.Notification)
		})

	ledger := &moderation.ReactionLedger{Posts: posts, Notifications: notifications}
	post := reactionPost()

	err := ledger.Toggle(context.TODO(), post, models.ReactionWithYou, "user-2")

	assert.NoError(t, err)
	assert.Equal(t, 1, post.Reactions[models.ReactionWithYou])
	assert.Equal(t, []string{"user-2"}, post.UserReactions[models.ReactionWithYou])
	assert.Equal(t, "author-1", created.UserID)
	assert.Equal(t, models.NotificationReaction, created.Type)
	assert.Equal(t, "user-2", created.FromUserID)
	assert.Equal(t, "post-1", created.RelatedID)
}

func TestReactionLedger_ToggleSelfReactionDoesNotNotify(t *testing.T) {
	posts := &mocksdb.PostDatabase{}
	notifications := &mocksdb.NotificationDatabase{}

	posts.On("UpdateOne", mock.Anything, bson.M{"_id": "post-1"}, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1}, nil)

	ledger := &moderation.ReactionLedger{Posts: posts, Notifications: notifications}
	post := reactionPost()

	err := ledger.Toggle(context.TODO(), post, models.ReactionWithYou, "author-1")

	assert.NoError(t, err)
	notifications.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestReactionLedger_ToggleFailedWriteLeavesPostUntouched(t *testing.T) {
	posts := &mocksdb.PostDatabase{}
	notifications := &mocksdb.NotificationDatabase{}

	posts.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("mocked-error"))

	ledger := &moderation.ReactionLedger{Posts: posts, Notifications: notifications}
	post := reactionPost()

	err := ledger.Toggle(context.TODO(), post, models.ReactionSupport, "user-1")

	assert.Error(t, err)
	assert.ErrorIs(t, err, moderation.ErrPersistence)
	// the local post is only mutated after a successful write
	assert.Equal(t, 1, post.Reactions[models.ReactionStrong])
	assert.Equal(t, []string{"user-1"}, post.UserReactions[models.ReactionStrong])
	assert.Zero(t, post.Reactions[models.ReactionSupport])
	notifications.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestReactionLedger_ToggleRejectsMissingIdentifiers(t *testing.T) {
	ledger := &moderation.ReactionLedger{
		Posts:         &mocksdb.PostDatabase{},
		Notifications: &mocksdb.NotificationDatabase{},
	}

	err := ledger.Toggle(context.TODO(), &models.Post{}, models.ReactionStrong, "user-1")
	assert.ErrorIs(t, err, moderation.ErrInvalidReference)

	err = ledger.Toggle(context.TODO(), reactionPost(), models.ReactionStrong, "")
	assert.ErrorIs(t, err, moderation.ErrInvalidReference)
}
