// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package mongo provides the managed MongoDB client for the default document
// store backend (STORE_DRIVER=mongo).
package mongo

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/taibuivan/readverse/internal/platform/constants"
)

const (
	connectTimeout = 10 * time.Second
	pingTimeout    = 2 * time.Second
	maxPoolSize    = 50
)

// Connect opens a client for uri and verifies the primary is reachable.
//
// # Parameters
//   - context: Context for the initial ping.
//   - uri: mongodb:// or mongodb+srv:// connection string.
//   - databaseName: Database holding the catalogue collections.
//   - logger: Structured logger for connection events.
//
// # Returns
//   - The connected client and the selected database handle.
func Connect(context stdctx.Context, uri, databaseName string, logger *slog.Logger) (*mongo.Client, *mongo.Database, error) {
	clientOptions := options.Client().
		ApplyURI(uri).
		SetAppName(constants.AppName).
		SetConnectTimeout(connectTimeout).
		SetMaxPoolSize(maxPoolSize)

	client, err := mongo.Connect(clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo: failed to create client: %w", err)
	}

	if err := Ping(context, client); err != nil {
		_ = client.Disconnect(context)
		return nil, nil, err
	}

	logger.Info("mongo_client_connected", slog.String("database", databaseName))

	return client, client.Database(databaseName), nil
}

// Ping verifies that the primary answers.
func Ping(context stdctx.Context, client *mongo.Client) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo: ping failed: %w", err)
	}

	return nil
}
