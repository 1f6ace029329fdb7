package databases

// go generate: mockery --name ChatMessageDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rayseal/supportapp-api/models"
)

const chatMessageName = "chat_messages"

// ChatMessageDatabase contains the methods to use with the chat message database
type ChatMessageDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.ChatMessage, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.ChatMessage, error)
	InsertOne(ctx context.Context, message models.ChatMessage) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
}

type chatMessageDatabase struct {
	db DatabaseHelper
}

// NewChatMessageDatabase initializes a new instance of chat message database with the provided db connection
func NewChatMessageDatabase(db DatabaseHelper) ChatMessageDatabase {
	return &chatMessageDatabase{
		db: db,
	}
}

func (c *chatMessageDatabase) FindOne(ctx context.Context, filter interface{}) (*models.ChatMessage, error) {
	message := &models.ChatMessage{}
	err := c.db.Collection(chatMessageName).FindOne(ctx, filter).Decode(&message)
	if err != nil {
		return nil, err
	}
	return message, nil
}

func (c *chatMessageDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.ChatMessage, error) {
	cursor, err := c.db.Collection(chatMessageName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var messages []models.ChatMessage
	if err := cursor.Decode(&messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (c *chatMessageDatabase) InsertOne(ctx context.Context, message models.ChatMessage) (InsertOneResultHelper, error) {
	return c.db.Collection(chatMessageName).InsertOne(ctx, message)
}

func (c *chatMessageDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return c.db.Collection(chatMessageName).UpdateOne(ctx, filter, update, opts...)
}

func (c *chatMessageDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return c.db.Collection(chatMessageName).DeleteOne(ctx, filter, opts...)
}
