package databases

// go generate: mockery --name FlaggedContentDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rayseal/supportapp-api/models"
)

const flaggedContentName = "flagged_content"

// FlaggedContentDatabase contains the methods to use with the flagged content database
type FlaggedContentDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.FlaggedContent, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.FlaggedContent, error)
	InsertOne(ctx context.Context, flagged models.FlaggedContent) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

type flaggedContentDatabase struct {
	db DatabaseHelper
}

// NewFlaggedContentDatabase initializes a new instance of flagged content database with the provided db connection
func NewFlaggedContentDatabase(db DatabaseHelper) FlaggedContentDatabase {
	return &flaggedContentDatabase{
		db: db,
	}
}

func (c *flaggedContentDatabase) FindOne(ctx context.Context, filter interface{}) (*models.FlaggedContent, error) {
	flagged := &models.FlaggedContent{}
	err := c.db.Collection(flaggedContentName).FindOne(ctx, filter).Decode(&flagged)
	if err != nil {
		return nil, err
	}
	return flagged, nil
}

func (c *flaggedContentDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.FlaggedContent, error) {
	cursor, err := c.db.Collection(flaggedContentName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var flagged []models.FlaggedContent
	if err := cursor.Decode(&flagged); err != nil {
		return nil, err
	}
	return flagged, nil
}

func (c *flaggedContentDatabase) InsertOne(ctx context.Context, flagged models.FlaggedContent) (InsertOneResultHelper, error) {
	return c.db.Collection(flaggedContentName).InsertOne(ctx, flagged)
}

func (c *flaggedContentDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return c.db.Collection(flaggedContentName).UpdateOne(ctx, filter, update, opts...)
}

func (c *flaggedContentDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(flaggedContentName).CountDocuments(ctx, filter, opts...)
}
