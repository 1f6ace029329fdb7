package scheduler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	mocksdb "github.com/rayseal/supportapp-api/databases/mocks"
	"github.com/rayseal/supportapp-api/models"
)

func TestScheduler_DigestSkipsWhenQueuesEmpty(t *testing.T) {
	reports := &mocksdb.ReportDatabase{}
	flags := &mocksdb.FlaggedContentDatabase{}
	profiles := &mocksdb.ProfileDatabase{}
	notifications := &mocksdb.NotificationDatabase{}

	reports.On("CountDocuments", mock.Anything, bson.M{"status": models.ReportStatusPending}).Return(int64(0), nil)
	flags.On("CountDocuments", mock.Anything, bson.M{"status": models.FlagStatusPending}).Return(int64(0), nil)

	s := &Scheduler{RDB: reports, FDB: flags, PDB: profiles, NDB: notifications}
	s.sendModerationDigest()

	profiles.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
	notifications.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestScheduler_DigestNotifiesEveryAdmin(t *testing.T) {
	reports := &mocksdb.ReportDatabase{}
	flags := &mocksdb.FlaggedContentDatabase{}
	profiles := &mocksdb.ProfileDatabase{}
	notifications := &mocksdb.NotificationDatabase{}

	reports.On("CountDocuments", mock.Anything, bson.M{"status": models.ReportStatusPending}).Return(int64(3), nil)
	flags.On("CountDocuments", mock.Anything, bson.M{"status": models.FlagStatusPending}).Return(int64(2), nil)
	profiles.On("Find", mock.Anything, bson.M{"isAdmin": true}).Return([]models.Profile{
		{UID: "admin-1", IsAdmin: true},
		{UID: "", IsAdmin: true},
		{UID: "admin-2", IsAdmin: true},
	}, nil)

	var created []models.Notification
	notifications.On("InsertOne", mock.Anything, mock.AnythingOfType("models.Notification")).
		Return(nil, nil).
		Run(func(args mock.Arguments) {
			created = append(created, args.Get(1).(models.Notification))
		})

	s := &Scheduler{RDB: reports, FDB: flags, PDB: profiles, NDB: notifications}
	s.sendModerationDigest()

	assert.Len(t, created, 2)
	assert.Equal(t, "admin-1", created[0].UserID)
	assert.Equal(t, "admin-2", created[1].UserID)
	assert.Equal(t, models.NotificationAdminDigest, created[0].Type)
	assert.Equal(t, "3 reports and 2 flagged items are waiting for review", created[0].Message)
}

func TestScheduler_DigestAbortsOnCountFailure(t *testing.T) {
	reports := &mocksdb.ReportDatabase{}
	flags := &mocksdb.FlaggedContentDatabase{}
	profiles := &mocksdb.ProfileDatabase{}

	reports.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), errors.New("mocked-error"))

	s := &Scheduler{RDB: reports, FDB: flags, PDB: profiles, NDB: &mocksdb.NotificationDatabase{}}
	s.sendModerationDigest()

	flags.AssertNotCalled(t, "CountDocuments", mock.Anything, mock.Anything)
	profiles.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
}
