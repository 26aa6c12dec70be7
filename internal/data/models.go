package data

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrRecordNotFound is returned when looking up, updating or deleting
	// a game that doesn't exist in our database.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateID is returned when inserting a game whose id is
	// already taken. The id carries a unique index.
	ErrDuplicateID = errors.New("duplicate game id")
)

// Models is 'container' which can hold and represent all our database models.
type Models struct {
	Games interface {
		GetAll(ctx context.Context, filters Filters) ([]Game, Metadata, error)
		Get(ctx context.Context, id string) (*Game, error)
		Insert(ctx context.Context, game *Game) error
		Update(ctx context.Context, id string, set bson.M) error
		Delete(ctx context.Context, id string) error
		Genres(ctx context.Context, excluded []string) ([]string, error)
	}
	Stats interface {
		Overview(ctx context.Context) (*Statistics, error)
	}
}

// NewModels return a Models struct wrapping the games collection.
func NewModels(collection *mongo.Collection) Models {
	return Models{
		Games: GameModel{Collection: collection},
		Stats: StatsModel{Collection: collection},
	}
}
