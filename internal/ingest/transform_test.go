package ingest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransform_NilRecordSkipped(t *testing.T) {
	assert.Nil(t, Transform("440", nil))
}

func TestTransform_FullRecord(t *testing.T) {
	metacritic := 92.0
	recommendations := int64(12345)
	owners := "1000000 - 2000000"

	raw := &RawGame{
		Name:               "Half-Life 2",
		Positive:           900,
		Negative:           100,
		Price:              9.99,
		ReleaseDate:        "2004-11-16",
		Tags:               json.RawMessage(`{"FPS": 5000, "Classic": 3000}`),
		Genres:             []string{"Action"},
		Categories:         []string{"Single-player"},
		ShortDescription:   "a shooter",
		HeaderImage:        "https://example.com/hl2.jpg",
		Developers:         []string{"Valve"},
		Publishers:         []string{"Valve"},
		SupportedLanguages: []string{"English", "French"},
		MetacriticScore:    &metacritic,
		Recommendations:    &recommendations,
		EstimatedOwners:    &owners,
		AveragePlaytime:    820,
	}

	game := Transform("220", raw)
	require.NotNil(t, game)

	assert.Equal(t, "220", game.ID, "id is the string form of the input key")
	assert.Equal(t, "Half-Life 2", game.Title)
	assert.Equal(t, 900, game.PositiveVotes)
	assert.Equal(t, 100, game.NegativeVotes)
	assert.Equal(t, 1000, game.TotalVotes)
	require.NotNil(t, game.Price)
	assert.Equal(t, 9.99, *game.Price)
	assert.Equal(t, []string{"Classic", "FPS"}, game.Tags, "tag names come from the mapping keys")
	assert.Equal(t, []string{"Action"}, game.Genres)
	assert.Equal(t, "a shooter", game.Description)
	assert.Equal(t, &metacritic, game.MetacriticScore)
	assert.Equal(t, &owners, game.EstimatedOwners)
	assert.Equal(t, 820.0, game.AveragePlaytime)
}

func TestTransform_Defaults(t *testing.T) {
	game := Transform("730", &RawGame{Name: "CS"})
	require.NotNil(t, game)

	assert.Equal(t, 0, game.PositiveVotes)
	assert.Equal(t, 0, game.NegativeVotes)
	assert.Equal(t, 0, game.TotalVotes)
	assert.Nil(t, game.Price)
	assert.Equal(t, []string{}, game.Tags)
	assert.Equal(t, []string{}, game.Genres)
	assert.Equal(t, []string{}, game.Developers)
	assert.Nil(t, game.MetacriticScore)
	assert.Nil(t, game.Recommendations)
	assert.Nil(t, game.EstimatedOwners)
	assert.Equal(t, "", game.Description)
}

func TestTransform_PriceShapes(t *testing.T) {
	tests := []struct {
		name  string
		price interface{}
		want  *float64
	}{
		{"number", 4.99, func() *float64 { f := 4.99; return &f }()},
		{"string is discarded", "Free", nil},
		{"missing is null", nil, nil},
		{"negative is discarded", -1.0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := Transform("1", &RawGame{Name: "G", Price: tt.price})
			require.NotNil(t, game)

			if tt.want == nil {
				assert.Nil(t, game.Price)
			} else {
				require.NotNil(t, game.Price)
				assert.Equal(t, *tt.want, *game.Price)
			}
		})
	}
}

func TestTransform_MalformedTags(t *testing.T) {
	tests := []struct {
		name string
		tags json.RawMessage
	}{
		{"missing", nil},
		{"array instead of mapping", json.RawMessage(`["FPS","Classic"]`)},
		{"garbage", json.RawMessage(`{{{`)},
		{"null", json.RawMessage(`null`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := Transform("1", &RawGame{Name: "G", Tags: tt.tags})
			require.NotNil(t, game, "a bad tags shape never fails the record")
			assert.Equal(t, []string{}, game.Tags)
		})
	}
}
