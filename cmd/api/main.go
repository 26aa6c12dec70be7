package main

import (
	"context"
	"flag"
	"os"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/hafizmfadli/go-gamestore/internal/data"
	"github.com/hafizmfadli/go-gamestore/internal/jsonlog"
)

// Application version number
const version = "1.0.0"

// config struct hold all the configuration settings for our application.
type config struct {

	// the network port that we want the server to listen on
	port int

	// current operating environment for the application (dev, staging, prod, etc..)
	env string

	// db struct field hold the configuration settings for our MongoDB connection.
	db struct {
		uri         string
		name        string
		collection  string
		maxPoolSize uint64
		minPoolSize uint64
	}

	// limiter struct containing fields for the requests per second and burst
	// values, and a boolean field which we can use to enable/disable rate limiting
	// altogether
	limiter struct {
		rps     float64
		burst   int
		enabled bool
	}

	// static is the directory the browser front end is served from.
	static string
}

// application struct hold the dependencies for our HTTP handlers, helpers, and middleware.
type application struct {
	config config
	logger *jsonlog.Logger
	models data.Models
	// sync.WaitGroup is used to coordinate the graceful shutdown and our background goroutines
	wg sync.WaitGroup
}

func main() {

	var cfg config

	flag.IntVar(&cfg.port, "port", 3000, "API server port")
	flag.StringVar(&cfg.env, "env", "development", "Environment (development|staging|production)")
	flag.StringVar(&cfg.db.uri, "db-uri", envOr("MONGO_URL", "mongodb://localhost:27017"), "MongoDB connection URI")
	flag.StringVar(&cfg.db.name, "db-name", envOr("DB_NAME", "steam_games_db"), "MongoDB database name")
	flag.StringVar(&cfg.db.collection, "db-collection", "games", "MongoDB collection name")
	flag.Uint64Var(&cfg.db.maxPoolSize, "db-max-pool-size", 10, "MongoDB max pool size")
	flag.Uint64Var(&cfg.db.minPoolSize, "db-min-pool-size", 2, "MongoDB min pool size")
	flag.Float64Var(&cfg.limiter.rps, "limiter-rps", 50, "Rate limiter maximum requests per second")
	flag.IntVar(&cfg.limiter.burst, "limiter-burst", 100, "Rate limiter maximum burst")
	flag.BoolVar(&cfg.limiter.enabled, "limiter-enabled", true, "Enable rate limiter")
	flag.StringVar(&cfg.static, "static", "./public", "Directory for the browser front end")

	flag.Parse()

	// Initialize a new jsonlog.Logger which writes any messages *at or above* the INFO
	// severity level to the standard out stream
	logger := jsonlog.NewLogger(os.Stdout, jsonlog.LevelInfo)

	client, err := openMongo(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client.Disconnect(ctx)
	}()

	logger.PrintInfo("database connection established", map[string]string{
		"database": cfg.db.name,
	})

	collection := client.Database(cfg.db.name).Collection(cfg.db.collection)

	app := &application{
		config: cfg,
		logger: logger,
		models: data.NewModels(collection),
	}

	err = app.serve()
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}

// openMongo connects to MongoDB and verifies the connection with a ping.
// Pool sizing and the server selection timeout come from the config.
func openMongo(cfg config) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.db.uri).
		SetMaxPoolSize(cfg.db.maxPoolSize).
		SetMinPoolSize(cfg.db.minPoolSize).
		SetServerSelectionTimeout(5 * time.Second).
		SetSocketTimeout(45 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	// Establish a connection to the database. If it couldn't be established
	// within the 5 second deadline, this returns an error.
	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
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
