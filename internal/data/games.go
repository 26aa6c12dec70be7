package data

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hafizmfadli/go-gamestore/internal/validator"
)

// Game is one game's normalized metadata as stored in the collection.
// The external id is an opaque string (the Steam app id for ingested
// games); Mongo's own _id stays internal and is never exposed.
type Game struct {
	ID              string     `bson:"id" json:"id"`
	Title           string     `bson:"title" json:"title"`
	PositiveVotes   int        `bson:"positiveVotes" json:"positiveVotes"`
	NegativeVotes   int        `bson:"negativeVotes" json:"negativeVotes"`
	TotalVotes      int        `bson:"totalVotes" json:"totalVotes"`
	Price           *float64   `bson:"price" json:"price"`
	ReleaseDate     string     `bson:"releaseDate" json:"releaseDate"`
	Tags            []string   `bson:"tags" json:"tags"`
	Genres          []string   `bson:"genres" json:"genres"`
	Categories      []string   `bson:"categories" json:"categories"`
	Description     string     `bson:"description" json:"description"`
	HeaderImage     string     `bson:"headerImage" json:"headerImage"`
	Developers      []string   `bson:"developers" json:"developers"`
	Publishers      []string   `bson:"publishers" json:"publishers"`
	Languages       []string   `bson:"languages" json:"languages"`
	MetacriticScore *float64   `bson:"metacriticScore" json:"metacriticScore"`
	Recommendations *int64     `bson:"recommendations" json:"recommendations"`
	EstimatedOwners *string    `bson:"estimatedOwners" json:"estimatedOwners"`
	AveragePlaytime float64    `bson:"averagePlaytime" json:"averagePlaytime"`
	CreatedAt       time.Time  `bson:"createdAt" json:"-"`
	UpdatedAt       *time.Time `bson:"updatedAt,omitempty" json:"-"`
}

// Normalize fills in the derived and defaulted fields before a game is
// written: a timestamp-derived id when none was supplied, the vote total,
// and empty slices instead of nil for every list field.
func (g *Game) Normalize() {
	if strings.TrimSpace(g.ID) == "" {
		g.ID = strconv.FormatInt(time.Now().UnixNano(), 10)
	}

	if g.PositiveVotes < 0 {
		g.PositiveVotes = 0
	}
	if g.NegativeVotes < 0 {
		g.NegativeVotes = 0
	}
	g.TotalVotes = g.PositiveVotes + g.NegativeVotes

	if g.Tags == nil {
		g.Tags = []string{}
	}
	if g.Genres == nil {
		g.Genres = []string{}
	}
	if g.Categories == nil {
		g.Categories = []string{}
	}
	if g.Developers == nil {
		g.Developers = []string{}
	}
	if g.Publishers == nil {
		g.Publishers = []string{}
	}
	if g.Languages == nil {
		g.Languages = []string{}
	}
}

// Score returns the computed positive-vote percentage, 0 when the game
// has no votes. This mirrors the expression the score filter evaluates
// in the database.
func (g *Game) Score() float64 {
	if g.TotalVotes == 0 {
		return 0
	}
	return float64(g.PositiveVotes) / float64(g.TotalVotes) * 100
}

// ValidateGame validates a game ahead of create. An empty title is the
// one hard rejection; numeric fields have already been defaulted by the
// loose decoding types.
func ValidateGame(v *validator.Validator, game *Game) {
	v.Check(strings.TrimSpace(game.Title) != "", "title", "must be provided")
	v.Check(game.PositiveVotes >= 0, "positiveVotes", "must not be negative")
	v.Check(game.NegativeVotes >= 0, "negativeVotes", "must not be negative")
	v.Check(game.Price == nil || *game.Price >= 0, "price", "must not be negative")
}

// GameUpdate carries a partial update. Only non-nil fields are applied;
// everything omitted keeps its stored value.
type GameUpdate struct {
	Title           *string     `json:"title"`
	PositiveVotes   *Count      `json:"positiveVotes"`
	NegativeVotes   *Count      `json:"negativeVotes"`
	Price           *Price      `json:"price"`
	ReleaseDate     *string     `json:"releaseDate"`
	Description     *string     `json:"description"`
	HeaderImage     *string     `json:"headerImage"`
	Tags            *StringList `json:"tags"`
	Genres          *StringList `json:"genres"`
	Developers      *StringList `json:"developers"`
	Publishers      *StringList `json:"publishers"`
	Languages       *StringList `json:"languages"`
	Categories      *StringList `json:"categories"`
	MetacriticScore *float64    `json:"metacriticScore"`
}

// Validate checks the supplied fields only. A title may be omitted, but
// if present it must not be blank.
func (u GameUpdate) Validate(v *validator.Validator) {
	if u.Title != nil {
		v.Check(strings.TrimSpace(*u.Title) != "", "title", "must not be empty")
	}
}

// SetFields merges the update with the stored game and returns the $set
// document. Whenever either vote count is touched, both counts and the
// vote total are re-derived together so totalVotes never drifts.
func (u GameUpdate) SetFields(existing *Game) bson.M {
	set := bson.M{}

	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Price != nil {
		set["price"] = u.Price.Ptr()
	}
	if u.ReleaseDate != nil {
		set["releaseDate"] = *u.ReleaseDate
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.HeaderImage != nil {
		set["headerImage"] = *u.HeaderImage
	}
	if u.Tags != nil {
		set["tags"] = []string(*u.Tags)
	}
	if u.Genres != nil {
		set["genres"] = []string(*u.Genres)
	}
	if u.Developers != nil {
		set["developers"] = []string(*u.Developers)
	}
	if u.Publishers != nil {
		set["publishers"] = []string(*u.Publishers)
	}
	if u.Languages != nil {
		set["languages"] = []string(*u.Languages)
	}
	if u.Categories != nil {
		set["categories"] = []string(*u.Categories)
	}
	if u.MetacriticScore != nil {
		set["metacriticScore"] = *u.MetacriticScore
	}

	if u.PositiveVotes != nil || u.NegativeVotes != nil {
		positive := existing.PositiveVotes
		negative := existing.NegativeVotes
		if u.PositiveVotes != nil {
			positive = int(*u.PositiveVotes)
		}
		if u.NegativeVotes != nil {
			negative = int(*u.NegativeVotes)
		}
		set["positiveVotes"] = positive
		set["negativeVotes"] = negative
		set["totalVotes"] = positive + negative
	}

	return set
}

// GameModel wraps the games collection.
type GameModel struct {
	Collection *mongo.Collection
}

// GetAll returns one page of games matching the filters, together with
// the pagination metadata. The query and count run against the same
// predicate so the page window always agrees with the result set.
func (m GameModel) GetAll(ctx context.Context, filters Filters) ([]Game, Metadata, error) {
	query := BuildQuery(filters)

	total, err := m.Collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, Metadata{}, err
	}

	opts := options.Find().
		SetSort(SortOption(filters.Sort, filters.Order)).
		SetSkip(int64(filters.offset())).
		SetLimit(int64(filters.limit()))

	cursor, err := m.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, Metadata{}, err
	}
	defer cursor.Close(ctx)

	games := []Game{}
	if err := cursor.All(ctx, &games); err != nil {
		return nil, Metadata{}, err
	}

	return games, calculateMetadata(total, filters.Page, filters.PageSize), nil
}

// Get returns the game with the given external id.
func (m GameModel) Get(ctx context.Context, id string) (*Game, error) {
	var game Game

	err := m.Collection.FindOne(ctx, bson.M{"id": id}).Decode(&game)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return &game, nil
}

// Insert stores a new game. The caller is expected to have normalized
// and validated it; timestamps are set here, on write.
func (m GameModel) Insert(ctx context.Context, game *Game) error {
	game.CreatedAt = time.Now().UTC()

	_, err := m.Collection.InsertOne(ctx, game)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateID
	}
	return err
}

// Update applies a $set document to the game with the given id.
func (m GameModel) Update(ctx context.Context, id string, set bson.M) error {
	if len(set) == 0 {
		// Nothing to change; still confirm the game exists.
		_, err := m.Get(ctx, id)
		return err
	}

	now := time.Now().UTC()
	set["updatedAt"] = now

	result, err := m.Collection.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// Delete removes the game with the given id.
func (m GameModel) Delete(ctx context.Context, id string) error {
	result, err := m.Collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// Genres returns every distinct genre, sorted, minus blanks and anything
// in the excluded set (compared case-insensitively). Stored casing is
// preserved in the result.
func (m GameModel) Genres(ctx context.Context, excluded []string) ([]string, error) {
	values, err := m.Collection.Distinct(ctx, "genres", bson.M{})
	if err != nil {
		return nil, err
	}

	skip := make(map[string]bool, len(excluded))
	for _, g := range excluded {
		skip[strings.ToLower(g)] = true
	}

	genres := []string{}
	for _, v := range values {
		g, ok := v.(string)
		if !ok || g == "" || skip[strings.ToLower(g)] {
			continue
		}
		genres = append(genres, g)
	}

	sort.Strings(genres)
	return genres, nil
}
