// Package chatdb хранит переписки в MongoDB: один документ на комнату.
package chatdb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// New подключается к MongoDB и проверяет соединение ping-ом.
func New(ctx context.Context, mongoURI string) (*Client, error) {
	opts := options.Client().
		ApplyURI(mongoURI).
		SetConnectTimeout(10 * time.Second)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Client{
		client: client,
		db:     client.Database("skillswap"),
	}, nil
}

func (c *Client) ChatsCollection() *mongo.Collection {
	return c.db.Collection("chats")
}

func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// CreateIndexes создает индексы коллекции chats: уникальный ключ комнаты
// и поиск комнаты по идентификатору вложенного сообщения.
func (c *Client) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    map[string]int{"room_id": 1},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: map[string]int{"messages._id": 1},
		},
	}

	_, err := c.ChatsCollection().Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create chat indexes: %w", err)
	}

	return nil
}
