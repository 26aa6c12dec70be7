package data

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/hafizmfadli/go-gamestore/internal/validator"
)

func TestGameNormalize(t *testing.T) {
	game := Game{Title: "Foo", PositiveVotes: 80, NegativeVotes: 20}
	game.Normalize()

	assert.Equal(t, 100, game.TotalVotes, "totalVotes is always the sum of the vote pair")
	assert.NotEmpty(t, game.ID, "a missing id gets a timestamp-derived fallback")

	// List fields are never nil after normalization.
	assert.NotNil(t, game.Tags)
	assert.NotNil(t, game.Genres)
	assert.NotNil(t, game.Categories)
	assert.NotNil(t, game.Developers)
	assert.NotNil(t, game.Publishers)
	assert.NotNil(t, game.Languages)
}

func TestGameNormalize_KeepsSuppliedID(t *testing.T) {
	game := Game{ID: "440", Title: "Team Fortress 2"}
	game.Normalize()

	assert.Equal(t, "440", game.ID)
}

func TestGameScore(t *testing.T) {
	tests := []struct {
		name     string
		positive int
		negative int
		want     float64
	}{
		{"no votes scores zero", 0, 0, 0},
		{"80 of 100", 80, 20, 80},
		{"all positive", 10, 0, 100},
		{"all negative", 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := Game{PositiveVotes: tt.positive, NegativeVotes: tt.negative}
			game.Normalize()

			assert.Equal(t, tt.want, game.Score())
		})
	}
}

func TestValidateGame(t *testing.T) {
	tests := []struct {
		name  string
		game  Game
		valid bool
	}{
		{"title present", Game{Title: "Portal"}, true},
		{"empty title", Game{Title: ""}, false},
		{"whitespace title", Game{Title: "   "}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			ValidateGame(v, &tt.game)

			assert.Equal(t, tt.valid, v.Valid())
		})
	}
}

func TestGameUpdateValidate(t *testing.T) {
	v := validator.New()
	GameUpdate{}.Validate(v)
	assert.True(t, v.Valid(), "an update may omit the title entirely")

	v = validator.New()
	empty := ""
	GameUpdate{Title: &empty}.Validate(v)
	assert.False(t, v.Valid(), "a supplied title must not be blank")
}

func TestGameUpdateSetFields(t *testing.T) {
	existing := &Game{ID: "10", Title: "Counter-Strike", PositiveVotes: 50, NegativeVotes: 50, TotalVotes: 100}

	t.Run("omitted fields contribute nothing", func(t *testing.T) {
		set := GameUpdate{}.SetFields(existing)
		assert.Empty(t, set)
	})

	t.Run("supplied fields are set", func(t *testing.T) {
		title := "Counter-Strike 2"
		date := "2023-09-27"
		set := GameUpdate{Title: &title, ReleaseDate: &date}.SetFields(existing)

		assert.Equal(t, bson.M{"title": "Counter-Strike 2", "releaseDate": "2023-09-27"}, set)
	})

	t.Run("touching one vote count re-derives the pair", func(t *testing.T) {
		positive := Count(80)
		set := GameUpdate{PositiveVotes: &positive}.SetFields(existing)

		assert.Equal(t, 80, set["positiveVotes"])
		assert.Equal(t, 50, set["negativeVotes"], "the untouched count comes from the stored game")
		assert.Equal(t, 130, set["totalVotes"])
	})

	t.Run("touching both vote counts", func(t *testing.T) {
		positive, negative := Count(10), Count(5)
		set := GameUpdate{PositiveVotes: &positive, NegativeVotes: &negative}.SetFields(existing)

		assert.Equal(t, 10, set["positiveVotes"])
		assert.Equal(t, 5, set["negativeVotes"])
		assert.Equal(t, 15, set["totalVotes"])
	})

	t.Run("null price is stored as null", func(t *testing.T) {
		set := GameUpdate{Price: &Price{}}.SetFields(existing)

		require.Contains(t, set, "price")
		assert.Nil(t, set["price"])
	})

	t.Run("non-finite price decodes to null and stays out of storage", func(t *testing.T) {
		var update GameUpdate
		require.NoError(t, json.Unmarshal([]byte(`{"price":"NaN"}`), &update))

		set := update.SetFields(existing)

		require.Contains(t, set, "price")
		assert.Nil(t, set["price"])
	})

	t.Run("list fields replace wholesale", func(t *testing.T) {
		tags := StringList{"FPS", "Multiplayer"}
		set := GameUpdate{Tags: &tags}.SetFields(existing)

		assert.Equal(t, []string{"FPS", "Multiplayer"}, set["tags"])
	})
}
