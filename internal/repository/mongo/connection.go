// Package mongo stores users and finance documents in MongoDB.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	usersCollection   = "users"
	financeCollection = "finance"

	disconnectTimeout = 5 * time.Second
)

type Connection struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewConnection connects to uri, checks the server answers and creates the
// unique indexes the repositories rely on.
func NewConnection(ctx context.Context, uri, database string) (*Connection, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	c := &Connection{
		client: client,
		db:     client.Database(database),
	}

	if err := c.Ping(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to reach mongo: %w", err)
	}

	if err := c.ensureIndexes(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return c, nil
}

func (c *Connection) ensureIndexes(ctx context.Context) error {
	unique := map[string]string{
		usersCollection:   "email",
		financeCollection: "user_id",
	}

	for collection, key := range unique {
		_, err := c.db.Collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: key, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("failed to create %s index: %w", collection, err)
		}
	}

	return nil
}

func (c *Connection) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("mongo client is nil")
	}
	return c.client.Ping(ctx, readpref.Primary())
}

func (c *Connection) Close() error {
	if c.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()

	return c.client.Disconnect(ctx)
}

func (c *Connection) collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}
