package databases

// go generate: mockery --name CommentDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rayseal/supportapp-api/models"
)

const commentName = "comments"

// CommentDatabase contains the methods to use with the comment database
type CommentDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Comment, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Comment, error)
	InsertOne(ctx context.Context, comment models.Comment) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
}

type commentDatabase struct {
	db DatabaseHelper
}

// NewCommentDatabase initializes a new instance of comment database with the provided db connection
func NewCommentDatabase(db DatabaseHelper) CommentDatabase {
	return &commentDatabase{
		db: db,
	}
}

func (c *commentDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Comment, error) {
	comment := &models.Comment{}
	err := c.db.Collection(commentName).FindOne(ctx, filter).Decode(&comment)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (c *commentDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Comment, error) {
	cursor, err := c.db.Collection(commentName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var comments []models.Comment
	if err := cursor.Decode(&comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *commentDatabase) InsertOne(ctx context.Context, comment models.Comment) (InsertOneResultHelper, error) {
	return c.db.Collection(commentName).InsertOne(ctx, comment)
}

func (c *commentDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return c.db.Collection(commentName).UpdateOne(ctx, filter, update, opts...)
}

func (c *commentDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return c.db.Collection(commentName).DeleteOne(ctx, filter, opts...)
}
