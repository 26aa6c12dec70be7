package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func floatPtr(f float64) *float64 { return &f }

func TestBuildQuery_NoFilters(t *testing.T) {
	query := BuildQuery(Filters{})

	assert.Empty(t, query, "an empty filter set must match every record")
}

func TestBuildQuery_Search(t *testing.T) {
	query := BuildQuery(Filters{Search: "half-life"})

	or, ok := query["$or"].(bson.A)
	require.True(t, ok, "search must produce an $or over title and tags")
	require.Len(t, or, 2)

	title := or[0].(bson.M)["title"].(primitive.Regex)
	tags := or[1].(bson.M)["tags"].(primitive.Regex)

	assert.Equal(t, `half\-life`, title.Pattern, "regex metacharacters must be escaped")
	assert.Equal(t, "i", title.Options)
	assert.Equal(t, title, tags)
}

func TestBuildQuery_Genre(t *testing.T) {
	query := BuildQuery(Filters{Genre: "Action"})

	genre, ok := query["genres"].(primitive.Regex)
	require.True(t, ok)

	assert.Equal(t, "^Action$", genre.Pattern, "genre match must be anchored (exact match)")
	assert.Equal(t, "i", genre.Options)
}

func TestBuildQuery_PriceBounds(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		want    bson.M
	}{
		{
			name:    "min only",
			filters: Filters{PriceMin: floatPtr(5)},
			want:    bson.M{"$gte": 5.0},
		},
		{
			name:    "max only",
			filters: Filters{PriceMax: floatPtr(20)},
			want:    bson.M{"$lte": 20.0},
		},
		{
			name:    "both bounds",
			filters: Filters{PriceMin: floatPtr(5), PriceMax: floatPtr(20)},
			want:    bson.M{"$gte": 5.0, "$lte": 20.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := BuildQuery(tt.filters)
			assert.Equal(t, tt.want, query["price"])
		})
	}
}

func TestBuildQuery_DateBounds(t *testing.T) {
	query := BuildQuery(Filters{DateMin: "2010-01-01", DateMax: "2019-12-31"})

	assert.Equal(t, bson.M{"$gte": "2010-01-01", "$lte": "2019-12-31"}, query["releaseDate"],
		"date bounds compare the stored strings directly")
}

func TestBuildQuery_ScoreBounds(t *testing.T) {
	query := BuildQuery(Filters{ScoreMin: floatPtr(75), ScoreMax: floatPtr(95)})

	and, ok := query["$and"].(bson.A)
	require.True(t, ok, "score bounds must combine under $and")
	require.Len(t, and, 2)

	gte := and[0].(bson.M)["$expr"].(bson.M)["$gte"].(bson.A)
	lte := and[1].(bson.M)["$expr"].(bson.M)["$lte"].(bson.A)

	assert.Equal(t, 75.0, gte[1])
	assert.Equal(t, 95.0, lte[1])

	// Both comparisons evaluate the same computed expression, and that
	// expression guards the zero-votes case.
	assert.Equal(t, gte[0], lte[0])
	cond := gte[0].(bson.M)["$cond"].(bson.M)
	assert.Equal(t, 0, cond["then"], "a game with no votes has score 0, not a division error")
}

func TestBuildQuery_CombinesWithAnd(t *testing.T) {
	query := BuildQuery(Filters{
		Search:   "war",
		Genre:    "Strategy",
		PriceMax: floatPtr(30),
		ScoreMin: floatPtr(50),
	})

	// Top-level keys of a Mongo document are implicitly ANDed.
	assert.Contains(t, query, "$or")
	assert.Contains(t, query, "genres")
	assert.Contains(t, query, "price")
	assert.Contains(t, query, "$and")
}

func TestSortOption(t *testing.T) {
	tests := []struct {
		name      string
		sort      string
		order     string
		wantField string
		wantDir   int
	}{
		{"title asc", "title", "asc", "title", 1},
		{"title desc", "title", "desc", "title", -1},
		{"score maps to raw positive votes", "score", "desc", "positiveVotes", -1},
		{"price", "price", "asc", "price", 1},
		{"date", "date", "desc", "releaseDate", -1},
		{"reviews", "reviews", "desc", "totalVotes", -1},
		{"popularity shares the reviews ordering", "popularity", "desc", "totalVotes", -1},
		{"unknown key falls back to title", "bogus", "asc", "title", 1},
		{"unknown order falls back to asc", "price", "sideways", "price", 1},
		{"empty falls back entirely", "", "", "title", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opt := SortOption(tt.sort, tt.order)

			require.Len(t, opt, 1, "no multi-key sorts")
			assert.Equal(t, tt.wantField, opt[0].Key)
			assert.Equal(t, tt.wantDir, opt[0].Value)
		})
	}
}

// Sorting by score orders on the raw positive-vote count, not the
// computed percentage: a game with 1000 positive votes sorts above one
// with a single positive vote even though both have a 100% score.
func TestSortOption_ScoreUsesRawCounts(t *testing.T) {
	a := Game{Title: "A", PositiveVotes: 1000, NegativeVotes: 0}
	b := Game{Title: "B", PositiveVotes: 1, NegativeVotes: 0}
	a.Normalize()
	b.Normalize()

	assert.Equal(t, a.Score(), b.Score(), "both games have the same computed score")

	opt := SortOption("score", "desc")
	require.Equal(t, "positiveVotes", opt[0].Key)
	assert.Greater(t, a.PositiveVotes, b.PositiveVotes,
		"the resolved field ranks A above B under desc")
}
