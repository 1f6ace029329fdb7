package databases

// go generate: mockery --name ProfileDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rayseal/supportapp-api/models"
)

const profileName = "profiles"

// ProfileDatabase contains the methods to use with the profile database
type ProfileDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Profile, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Profile, error)
	InsertOne(ctx context.Context, profile models.Profile) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

type profileDatabase struct {
	db DatabaseHelper
}

// NewProfileDatabase initializes a new instance of profile database with the provided db connection
func NewProfileDatabase(db DatabaseHelper) ProfileDatabase {
	return &profileDatabase{
		db: db,
	}
}

func (c *profileDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Profile, error) {
	profile := &models.Profile{}
	err := c.db.Collection(profileName).FindOne(ctx, filter).Decode(&profile)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (c *profileDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Profile, error) {
	cursor, err := c.db.Collection(profileName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var profiles []models.Profile
	if err := cursor.Decode(&profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (c *profileDatabase) InsertOne(ctx context.Context, profile models.Profile) (InsertOneResultHelper, error) {
	return c.db.Collection(profileName).InsertOne(ctx, profile)
}

func (c *profileDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return c.db.Collection(profileName).UpdateOne(ctx, filter, update, opts...)
}

func (c *profileDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(profileName).CountDocuments(ctx, filter, opts...)
}
