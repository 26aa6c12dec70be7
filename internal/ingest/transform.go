// Package ingest turns the raw Steam dataset into normalized game
// records. The dataset is a single huge JSON object keyed by app id, so
// reading is streamed and transformation is a pure per-record function.
package ingest

import (
	"encoding/json"
	"sort"

	"github.com/hafizmfadli/go-gamestore/internal/data"
)

// RawGame is the shape of one value in the source dataset. Fields we
// don't carry over are simply not declared. Tags is kept raw because the
// dataset is not consistent about its shape; see tagKeys.
type RawGame struct {
	Name               string          `json:"name"`
	Positive           int             `json:"positive"`
	Negative           int             `json:"negative"`
	Price              interface{}     `json:"price"`
	ReleaseDate        string          `json:"release_date"`
	Tags               json.RawMessage `json:"tags"`
	Genres             []string        `json:"genres"`
	Categories         []string        `json:"categories"`
	ShortDescription   string          `json:"short_description"`
	HeaderImage        string          `json:"header_image"`
	Developers         []string        `json:"developers"`
	Publishers         []string        `json:"publishers"`
	SupportedLanguages []string        `json:"supported_languages"`
	MetacriticScore    *float64        `json:"metacritic_score"`
	Recommendations    *int64          `json:"recommendations"`
	EstimatedOwners    *string         `json:"estimated_owners"`
	AveragePlaytime    float64         `json:"average_playtime_forever"`
}

// Transform converts one raw record into a normalized game. It is a pure
// function: a nil raw record yields nil (the record is skipped), and a
// malformed nested field falls back to that field's default instead of
// failing the record.
func Transform(appID string, raw *RawGame) *data.Game {
	if raw == nil {
		return nil
	}

	game := &data.Game{
		ID:              appID,
		Title:           raw.Name,
		PositiveVotes:   raw.Positive,
		NegativeVotes:   raw.Negative,
		Price:           numericPrice(raw.Price),
		ReleaseDate:     raw.ReleaseDate,
		Tags:            tagKeys(raw.Tags),
		Genres:          raw.Genres,
		Categories:      raw.Categories,
		Description:     raw.ShortDescription,
		HeaderImage:     raw.HeaderImage,
		Developers:      raw.Developers,
		Publishers:      raw.Publishers,
		Languages:       raw.SupportedLanguages,
		MetacriticScore: raw.MetacriticScore,
		Recommendations: raw.Recommendations,
		EstimatedOwners: raw.EstimatedOwners,
		AveragePlaytime: raw.AveragePlaytime,
	}

	game.Normalize()
	return game
}

// numericPrice keeps the price only when the source value is an actual
// number. The dataset sometimes carries strings like "Free" here.
func numericPrice(v interface{}) *float64 {
	f, ok := v.(float64)
	if !ok || f < 0 {
		return nil
	}
	return &f
}

// tagKeys extracts the tag names from the raw tag mapping. Only the keys
// matter; the values (vote counts) are discarded. A missing or malformed
// mapping yields an empty list. Keys are sorted for deterministic output
// since map order is not significant.
func tagKeys(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}

	var mapping map[string]json.RawMessage
	if err := json.Unmarshal(raw, &mapping); err != nil {
		return []string{}
	}

	tags := make([]string, 0, len(mapping))
	for tag := range mapping {
		if tag != "" {
			tags = append(tags, tag)
		}
	}

	sort.Strings(tags)
	return tags
}
