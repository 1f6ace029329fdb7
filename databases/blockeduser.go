package databases

// go generate: mockery --name BlockedUserDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rayseal/supportapp-api/models"
)

const blockedUserName = "blocked_users"

// BlockedUserDatabase contains the methods to use with the blocked users database
type BlockedUserDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.BlockedUser, error)
	InsertOne(ctx context.Context, block models.BlockedUser) (InsertOneResultHelper, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

type blockedUserDatabase struct {
	db DatabaseHelper
}

// NewBlockedUserDatabase initializes a new instance of blocked user database with the provided db connection
func NewBlockedUserDatabase(db DatabaseHelper) BlockedUserDatabase {
	return &blockedUserDatabase{
		db: db,
	}
}

func (c *blockedUserDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.BlockedUser, error) {
	cursor, err := c.db.Collection(blockedUserName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var blocks []models.BlockedUser
	if err := cursor.Decode(&blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

func (c *blockedUserDatabase) InsertOne(ctx context.Context, block models.BlockedUser) (InsertOneResultHelper, error) {
	return c.db.Collection(blockedUserName).InsertOne(ctx, block)
}

func (c *blockedUserDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return c.db.Collection(blockedUserName).DeleteOne(ctx, filter, opts...)
}

func (c *blockedUserDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(blockedUserName).CountDocuments(ctx, filter, opts...)
}
