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

func adminGate(profiles *mocksdb.ProfileDatabase) *moderation.AccessGate {
	profiles.On("FindOne", mock.Anything, bson.M{"_id": "admin-1"}).Return(&models.Profile{UID: "admin-1", IsAdmin: true}, nil)
	return &moderation.AccessGate{Profiles: profiles}
}

func TestActionExecutor_BanUserClearsAdminFlag(t *testing.T) {
	profiles := &mocksdb.ProfileDatabase{}
	notifications := &mocksdb.NotificationDatabase{}
	chats := &mocksdb.ChatMessageDatabase{}

	var update bson.M
	profiles.On("UpdateOne", mock.Anything, bson.M{"_id": "target-1"}, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1}, nil).
		Run(func(args mock.Arguments) {
			update = args.Get(2).(bson.M)
		})
	chats.On("InsertOne", mock.Anything, mock.AnythingOfType("models.ChatMessage")).Return(nil, nil)

	e := &moderation.ActionExecutor{
		Gate:          adminGate(profiles),
		Profiles:      profiles,
		Notifications: notifications,
		ChatMessages:  chats,
	}

	err := e.BanUser(context.TODO(), "target-1", "harassment", "admin-1")

	assert.NoError(t, err)
	set := update["$set"].(bson.M)
	assert.Equal(t, true, set["isBanned"])
	assert.Equal(t, "admin-1", set["bannedBy"])
	assert.Equal(t, "harassment", set["banReason"])
	// a banned profile can never hold admin privileges
	assert.Equal(t, false, set["isAdmin"])
	// the ban is announced to the admin channel, not to the target
	notifications.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
	chats.AssertNumberOfCalls(t, "InsertOne", 1)
}

func TestActionExecutor_BanUserRequiresAdmin(t *testing.T) {
	profiles := &mocksdb.ProfileDatabase{}
	profiles.On("FindOne", mock.Anything, bson.M{"_id": "user-1"}).Return(&models.Profile{UID: "user-1"}, nil)

	e := &moderation.ActionExecutor{
		Gate:     &moderation.AccessGate{Profiles: profiles},
		Profiles: profiles,
	}

	err := e.BanUser(context.TODO(), "target-1", "spam", "user-1")

	assert.ErrorIs(t, err, moderation.ErrNotAuthorized)
	profiles.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestActionExecutor_BanUserUnknownTarget(t *testing.T) {
	profiles := &mocksdb.ProfileDatabase{}
	profiles.On("UpdateOne", mock.Anything, bson.M{"_id": "ghost"}, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 0}, nil)

	e := &moderation.ActionExecutor{
		Gate:     adminGate(profiles),
		Profiles: profiles,
	}

	err := e.BanUser(context.TODO(), "ghost", "spam", "admin-1")

	assert.ErrorIs(t, err, moderation.ErrNotFound)
}

func TestActionExecutor_UnbanUserNotifiesTarget(t *testing.T) {
	profiles := &mocksdb.ProfileDatabase{}
	notifications := &mocksdb.NotificationDatabase{}

	var update bson.M
	profiles.On("UpdateOne", mock.Anything, bson.M{"_id": "target-1"}, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1}, nil).
		Run(func(args mock.Arguments) {
			update = args.Get(2).(bson.M)
		})

	var created models.Notification
	notifications.On("InsertOne", mock.Anything, mock.AnythingOfType("models.Notification")).
		Return(nil, nil).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(models.Notification)
		})

	e := &moderation.ActionExecutor{
		Gate:          adminGate(profiles),
		Profiles:      profiles,
		Notifications: notifications,
	}

	err := e.UnbanUser(context.TODO(), "target-1", "admin-1")

	assert.NoError(t, err)
	set := update["$set"].(bson.M)
	assert.Equal(t, false, set["isBanned"])
	assert.Equal(t, "", set["bannedBy"])
	assert.Equal(t, "", set["banReason"])
	assert.Equal(t, "target-1", created.UserID)
	assert.Equal(t, models.NotificationUnban, created.Type)
	assert.Equal(t, "Account Unbanned", created.Title)
}

func TestActionExecutor_WarnUserIncrementsWarningCount(t *testing.T) {
	profiles := &mocksdb.ProfileDatabase{}
	notifications := &mocksdb.NotificationDatabase{}

	var update bson.M
	profiles.On("UpdateOne", mock.Anything, bson.M{"_id": "target-1"}, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1}, nil).
		Run(func(args mock.Arguments) {
			update = args.Get(2).(bson.M)
		})

	var created models.Notification
	notifications.On("InsertOne", mock.Anything, mock.AnythingOfType("models.Notification")).
		Return(nil, nil).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(models.Notification)
		})

	e := &moderation.ActionExecutor{
		Profiles:      profiles,
		Notifications: notifications,
	}

	err := e.WarnUser(context.TODO(), "target-1", "admin-1")

	assert.NoError(t, err)
	assert.Equal(t, bson.M{"warningCount": 1}, update["$inc"])
	assert.Equal(t, models.NotificationWarning, created.Type)
	assert.Equal(t, "target-1", created.UserID)
	// no lookup either; the admin gate belongs to the caller here
	profiles.AssertNotCalled(t, "FindOne", mock.Anything, mock.Anything)
}

func TestActionExecutor_WarnUserUnknownTarget(t *testing.T) {
	profiles := &mocksdb.ProfileDatabase{}
	profiles.On("UpdateOne", mock.Anything, bson.M{"_id": "ghost"}, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 0}, nil)

	e := &moderation.ActionExecutor{Profiles: profiles}

	err := e.WarnUser(context.TODO(), "ghost", "admin-1")

	assert.ErrorIs(t, err, moderation.ErrNotFound)
}

func TestActionExecutor_PromoteToAdminRefusesBannedTarget(t *testing.T) {
	profiles := &mocksdb.ProfileDatabase{}
	profiles.On("FindOne", mock.Anything, bson.M{"_id": "target-1"}).
		Return(&models.Profile{UID: "target-1", IsBanned: true}, nil)

	e := &moderation.ActionExecutor{
		Gate:     adminGate(profiles),
		Profiles: profiles,
	}

	err := e.PromoteToAdmin(context.TODO(), "target-1", "admin-1")

	assert.ErrorIs(t, err, moderation.ErrNotAuthorized)
	profiles.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestActionExecutor_PromoteToAdminNotifiesTarget(t *testing.T) {
	profiles := &mocksdb.ProfileDatabase{}
	notifications := &mocksdb.NotificationDatabase{}

	profiles.On("FindOne", mock.Anything, bson.M{"_id": "target-1"}).
		Return(&models.Profile{UID: "target-1"}, nil)
	profiles.On("UpdateOne", mock.Anything, bson.M{"_id": "target-1"}, bson.M{"$set": bson.M{"isAdmin": true}}).
		Return(&mongo.UpdateResult{MatchedCount: 1}, nil)

	var created models.Notification
	notifications.On("InsertOne", mock.Anything, mock.AnythingOfType("models.Notification")).
		Return(nil, nil).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(models.Notification)
		})

	e := &moderation.ActionExecutor{
		Gate:          adminGate(profiles),
		Profiles:      profiles,
		Notifications: notifications,
	}

	err := e.PromoteToAdmin(context.TODO(), "target-1", "admin-1")

	assert.NoError(t, err)
	assert.Equal(t, models.NotificationPromotion, created.Type)
}

func TestActionExecutor_DemoteFromAdminIsSilent(t *testing.T) {
	profiles := &mocksdb.ProfileDatabase{}
	notifications := &mocksdb.NotificationDatabase{}

	profiles.On("UpdateOne", mock.Anything, bson.M{"_id": "target-1"}, bson.M{"$set": bson.M{"isAdmin": false}}).
		Return(&mongo.UpdateResult{MatchedCount: 1}, nil)

	e := &moderation.ActionExecutor{
		Gate:          adminGate(profiles),
		Profiles:      profiles,
		Notifications: notifications,
	}

	err := e.DemoteFromAdmin(context.TODO(), "target-1", "admin-1")

	assert.NoError(t, err)
	notifications.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestActionExecutor_NotifyAllAdminsContinuesPastFailedInsert(t *testing.T) {
	profiles := &mocksdb.ProfileDatabase{}
	notifications := &mocksdb.NotificationDatabase{}

	profiles.On("Find", mock.Anything, bson.M{"isAdmin": true}).Return([]models.Profile{
		{UID: "admin-1", IsAdmin: true},
		{UID: "", IsAdmin: true},
		{UID: "admin-2", IsAdmin: true},
	}, nil)

	var recipients []string
	notifications.On("InsertOne", mock.Anything, mock.AnythingOfType("models.Notification")).
		Return(nil, errors.New("mocked-error")).
		Run(func(args mock.Arguments) {
			recipients = append(recipients, args.Get(1).(models.Notification).UserID)
		})

	e := &moderation.ActionExecutor{
		Profiles:      profiles,
		Notifications: notifications,
	}

	err := e.NotifyAllAdmins(context.TODO(), "New Report", "something happened", "related-1")

	// partial delivery is possible and not rolled back
	assert.NoError(t, err)
	assert.Equal(t, []string{"admin-1", "admin-2"}, recipients)
}

func TestActionExecutor_NotifyAllAdminsFindFailure(t *testing.T) {
	profiles := &mocksdb.ProfileDatabase{}
	profiles.On("Find", mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))

	e := &moderation.ActionExecutor{Profiles: profiles}

	err := e.NotifyAllAdmins(context.TODO(), "New Report", "something happened", "")

	assert.ErrorIs(t, err, moderation.ErrPersistence)
}

func TestActionExecutor_PostToAdminChannel(t *testing.T) {
	chats := &mocksdb.ChatMessageDatabase{}

	var message models.ChatMessage
	chats.On("InsertOne", mock.Anything, mock.AnythingOfType("models.ChatMessage")).
		Return(nil, nil).
		Run(func(args mock.Arguments) {
			message = args.Get(1).(models.ChatMessage)
		})

	e := &moderation.ActionExecutor{ChatMessages: chats}

	e.PostToAdminChannel(context.TODO(), "User target-1 was banned by admin-1: spam")

	assert.Equal(t, models.AdminRoomID, message.RoomID)
	assert.Equal(t, "system", message.SenderID)
	assert.True(t, message.ContentVisible)
	assert.Equal(t, "User target-1 was banned by admin-1: spam", message.Content)
}
