//go:build integration_mongo
// +build integration_mongo

package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
)

// startMongo spins up a throwaway server; generous deadlines cover a
// first image pull
func startMongo(t *testing.T) (uri string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("27017/tcp"),
			wait.ForLog("Waiting for connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start mongo container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, "27017/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	uri = fmt.Sprintf("mongodb://%s:%s", host, mapped.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return uri, stop
}

func TestOpen_And_BasicOps_Integration(t *testing.T) {
	uri, stop := startMongo(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st, err := Open(ctx, Config{
		URI:      uri,
		Database: "dockit_it",
		AppName:  "dockit-integration",
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = st.Close(context.Background()) }()

	if err := st.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	coll := st.Collection("things")
	if _, err := coll.InsertOne(ctx, bson.M{"_id": "a", "n": 1}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var doc bson.M
	if err := coll.FindOne(ctx, bson.M{"_id": "a"}).Decode(&doc); err != nil {
		t.Fatalf("find: %v", err)
	}
	if doc["n"] != int32(1) {
		t.Fatalf("doc wrong: %#v", doc)
	}

	if err := st.DropCollections(ctx, "things"); err != nil {
		t.Fatalf("drop: %v", err)
	}
	n, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("collection survived drop: %d docs", n)
	}
}
