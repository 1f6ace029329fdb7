package databases

// go generate: mockery --name NotificationDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rayseal/supportapp-api/models"
)

const notificationName = "notifications"

// NotificationDatabase contains the methods to use with the notification database
type NotificationDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Notification, error)
	InsertOne(ctx context.Context, notification models.Notification) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
}

type notificationDatabase struct {
	db DatabaseHelper
}

// NewNotificationDatabase initializes a new instance of notification database with the provided db connection
func NewNotificationDatabase(db DatabaseHelper) NotificationDatabase {
	return &notificationDatabase{
		db: db,
	}
}

func (c *notificationDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Notification, error) {
	cursor, err := c.db.Collection(notificationName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var notifications []models.Notification
	if err := cursor.Decode(&notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (c *notificationDatabase) InsertOne(ctx context.Context, notification models.Notification) (InsertOneResultHelper, error) {
	return c.db.Collection(notificationName).InsertOne(ctx, notification)
}

func (c *notificationDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return c.db.Collection(notificationName).UpdateOne(ctx, filter, update, opts...)
}

func (c *notificationDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return c.db.Collection(notificationName).DeleteOne(ctx, filter, opts...)
}
