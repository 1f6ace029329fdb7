package databases

// go generate: mockery --name PostDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rayseal/supportapp-api/models"
)

const postName = "posts"

// PostDatabase contains the methods to use with the post database
type PostDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Post, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Post, error)
	InsertOne(ctx context.Context, post models.Post) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
}

type postDatabase struct {
	db DatabaseHelper
}

// NewPostDatabase initializes a new instance of post database with the provided db connection
func NewPostDatabase(db DatabaseHelper) PostDatabase {
	return &postDatabase{
		db: db,
	}
}

func (c *postDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Post, error) {
	post := &models.Post{}
	err := c.db.Collection(postName).FindOne(ctx, filter).Decode(&post)
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (c *postDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Post, error) {
	cursor, err := c.db.Collection(postName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var posts []models.Post
	if err := cursor.Decode(&posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *postDatabase) InsertOne(ctx context.Context, post models.Post) (InsertOneResultHelper, error) {
	return c.db.Collection(postName).InsertOne(ctx, post)
}

func (c *postDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return c.db.Collection(postName).UpdateOne(ctx, filter, update, opts...)
}

func (c *postDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return c.db.Collection(postName).DeleteOne(ctx, filter, opts...)
}
