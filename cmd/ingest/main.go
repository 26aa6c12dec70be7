// Command ingest loads the raw Steam dataset (one large JSON object
// keyed by app id) into MongoDB, transforming each record into the
// normalized catalog shape. Records are inserted in unordered batches;
// one bad record is logged and skipped, never fatal to the run.
package main

import (
	"context"
	"flag"
	"os"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/hafizmfadli/go-gamestore/internal/ingest"
	"github.com/hafizmfadli/go-gamestore/internal/jsonlog"
)

type config struct {
	input      string
	uri        string
	db         string
	collection string
	batchSize  int
	drop       bool
}

func main() {
	var cfg config

	flag.StringVar(&cfg.input, "input", "games.json", "Path to the raw dataset")
	flag.StringVar(&cfg.uri, "db-uri", envOr("MONGO_URL", "mongodb://localhost:27017"), "MongoDB connection URI")
	flag.StringVar(&cfg.db, "db-name", envOr("DB_NAME", "steam_games_db"), "MongoDB database name")
	flag.StringVar(&cfg.collection, "db-collection", "games", "MongoDB collection name")
	flag.IntVar(&cfg.batchSize, "batch", 1000, "Insert batch size")
	flag.BoolVar(&cfg.drop, "drop", false, "Drop the collection before loading")
	flag.Parse()

	logger := jsonlog.NewLogger(os.Stdout, jsonlog.LevelInfo)

	ctx := context.Background()

	client, err := connect(ctx, cfg.uri)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer client.Disconnect(ctx)

	collection := client.Database(cfg.db).Collection(cfg.collection)

	if cfg.drop {
		if err := collection.Drop(ctx); err != nil {
			logger.PrintFatal(err, nil)
		}
		logger.PrintInfo("dropped collection", map[string]string{"collection": cfg.collection})
	}

	if err := createIndexes(ctx, collection); err != nil {
		// Index creation failing shouldn't stop the load.
		logger.PrintError(err, map[string]string{"during": "index creation"})
	}

	file, err := os.Open(cfg.input)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer file.Close()

	start := time.Now()
	loaded, skipped, err := load(ctx, collection, file, cfg.batchSize, logger)
	if err != nil {
		logger.PrintFatal(err, nil)
	}

	logger.PrintInfo("ingestion finished", map[string]string{
		"loaded":   strconv.Itoa(loaded),
		"skipped":  strconv.Itoa(skipped),
		"duration": time.Since(start).String(),
	})
}

// load streams the dataset, transforms each record and inserts them in
// unordered batches. Null records and per-batch insert failures are
// counted as skipped and logged, and the stream continues.
func load(ctx context.Context, collection *mongo.Collection, file *os.File, batchSize int, logger *jsonlog.Logger) (int, int, error) {
	var batch []interface{}
	loaded, skipped, processed := 0, 0, 0

	flush := func() {
		if len(batch) == 0 {
			return
		}

		opts := options.InsertMany().SetOrdered(false)
		result, err := collection.InsertMany(ctx, batch, opts)
		if err != nil {
			// With unordered inserts some documents may still have gone
			// in; count what actually landed.
			logger.PrintError(err, map[string]string{"during": "batch insert"})
		}
		if result != nil {
			loaded += len(result.InsertedIDs)
			skipped += len(batch) - len(result.InsertedIDs)
		} else {
			skipped += len(batch)
		}

		batch = batch[:0]
	}

	err := ingest.StreamGames(file, func(appID string, raw *ingest.RawGame) error {
		processed++
		if processed%10000 == 0 {
			logger.PrintInfo("progress", map[string]string{
				"processed": strconv.Itoa(processed),
			})
		}

		game := ingest.Transform(appID, raw)
		if game == nil {
			skipped++
			return nil
		}

		batch = append(batch, game)
		if len(batch) >= batchSize {
			flush()
		}

		return nil
	})
	if err != nil {
		return loaded, skipped, err
	}

	flush()
	return loaded, skipped, nil
}

// createIndexes mirrors the catalog's query patterns: unique lookup by
// id, text search over title and tags, genre filtering, and the
// descending vote-total sort used for popularity and statistics.
func createIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "title", Value: "text"}, {Key: "tags", Value: "text"}},
		},
		{
			Keys: bson.D{{Key: "genres", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "totalVotes", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
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
