package database

import (
	"context"
	"fmt"
	"time"

	"servicehub/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient is the global MongoDB client instance.
var MongoClient *mongo.Client

// InitDB initializes the MongoDB connection.
func InitDB() (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.AppConfig.DatabaseURL)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	MongoClient = client
	return client, nil
}

// GetDatabase returns the configured application database.
func GetDatabase() *mongo.Database {
	return MongoClient.Database(config.AppConfig.DatabaseName)
}

// Ping reports whether the MongoDB primary is reachable.
func Ping(ctx context.Context) error {
	if MongoClient == nil {
		return fmt.Errorf("mongo client is not initialized")
	}
	return MongoClient.Ping(ctx, nil)
}

// Close disconnects the global client, if any.
func Close(ctx context.Context) error {
	if MongoClient == nil {
		return nil
	}
	return MongoClient.Disconnect(ctx)
}

// NewContext returns a context bounded by timeout for a single store call.
func NewContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}
