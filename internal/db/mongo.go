package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type NewMongoClientParams struct {
	URI string
}

// NewMongoClient connects to the mongo deployment behind the given URI.
// The client maintains its own connection pool, shared by all repos.
func NewMongoClient(ctx context.Context, params NewMongoClientParams) (*mongo.Client, error) {
	if params.URI == "" {
		return nil, fmt.Errorf("mongo URI empty")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(params.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, nil
}
