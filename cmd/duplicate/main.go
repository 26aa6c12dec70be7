// Command duplicate multiplies an existing catalog into a target
// database for load testing. Each round copies every document with its
// numeric id offset so the unique index still holds.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/hafizmfadli/go-gamestore/internal/jsonlog"
)

const idOffsetPerRound = 10_000_000

type config struct {
	uri        string
	sourceDB   string
	targetDB   string
	collection string
	multiplier int
	batchSize  int
}

func main() {
	var cfg config

	flag.StringVar(&cfg.uri, "db-uri", envOr("MONGO_URL", "mongodb://localhost:27017"), "MongoDB connection URI")
	flag.StringVar(&cfg.sourceDB, "source-db", "steam_games_db", "Source database name")
	flag.StringVar(&cfg.targetDB, "target-db", "steam_games_db_load_test", "Target database name")
	flag.StringVar(&cfg.collection, "db-collection", "games", "Collection name in both databases")
	flag.IntVar(&cfg.multiplier, "multiplier", 10, "How many copies of the source data to write")
	flag.IntVar(&cfg.batchSize, "batch", 1000, "Insert batch size")
	flag.Parse()

	logger := jsonlog.NewLogger(os.Stdout, jsonlog.LevelInfo)

	ctx := context.Background()

	client, err := connect(ctx, cfg.uri)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer client.Disconnect(ctx)

	source := client.Database(cfg.sourceDB).Collection(cfg.collection)
	target := client.Database(cfg.targetDB).Collection(cfg.collection)

	sourceCount, err := source.CountDocuments(ctx, bson.M{})
	if err != nil {
		logger.PrintFatal(err, nil)
	}

	logger.PrintInfo("duplicating dataset", map[string]string{
		"source": fmt.Sprintf("%s (%d games)", cfg.sourceDB, sourceCount),
		"target": fmt.Sprintf("%s (goal %d games)", cfg.targetDB, sourceCount*int64(cfg.multiplier)),
	})

	// Start from a clean target.
	if _, err := target.DeleteMany(ctx, bson.M{}); err != nil {
		logger.PrintFatal(err, nil)
	}

	start := time.Now()
	total := 0

	for round := 0; round < cfg.multiplier; round++ {
		inserted, err := copyRound(ctx, source, target, round, cfg.batchSize)
		if err != nil {
			logger.PrintFatal(err, nil)
		}
		total += inserted

		logger.PrintInfo("round complete", map[string]string{
			"round":    fmt.Sprintf("%d/%d", round+1, cfg.multiplier),
			"inserted": strconv.Itoa(total),
		})
	}

	logger.PrintInfo("duplication finished", map[string]string{
		"inserted": strconv.Itoa(total),
		"duration": time.Since(start).String(),
	})
}

// copyRound streams every source document into the target with a fresh
// _id and an id offset by the round number. Non-numeric ids get a round
// suffix instead.
func copyRound(ctx context.Context, source, target *mongo.Collection, round, batchSize int) (int, error) {
	cursor, err := source.Find(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var batch []interface{}
	inserted := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if _, err := target.InsertMany(ctx, batch); err != nil {
			return err
		}
		inserted += len(batch)
		batch = batch[:0]
		return nil
	}

	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return inserted, err
		}

		// Let MongoDB generate a fresh _id for the copy.
		delete(doc, "_id")
		doc["id"] = offsetID(fmt.Sprint(doc["id"]), round)

		batch = append(batch, doc)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return inserted, err
			}
		}
	}
	if err := cursor.Err(); err != nil {
		return inserted, err
	}

	return inserted, flush()
}

func offsetID(id string, round int) string {
	if round == 0 {
		return id
	}
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return strconv.FormatInt(n+int64(round)*idOffsetPerRound, 10)
	}
	return fmt.Sprintf("%s-r%d", id, round)
}

func connect(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5 * time.Second)

	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(dialCtx, opts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(dialCtx, readpref.Primary()); err != nil {
		return nil, err
	}

	return client, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
