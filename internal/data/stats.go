package data

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const topTagsLimit = 10

// Statistics is the aggregate summary of the whole catalog.
type Statistics struct {
	TotalGames   int64        `json:"totalGames"`
	TotalReviews int64        `json:"totalReviews"`
	AveragePrice string       `json:"averagePrice"`
	MostReviewed MostReviewed `json:"mostReviewed"`
	TopTags      []TagCount   `json:"topTags"`
}

// MostReviewed identifies the game with the highest vote total.
type MostReviewed struct {
	Title   string `json:"title"`
	Reviews int    `json:"reviews"`
}

// TagCount is one entry of the top-tags ranking.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// StatsModel computes aggregate summaries over the games collection.
type StatsModel struct {
	Collection *mongo.Collection
}

// Overview returns the catalog-wide statistics: counts and average price
// from a single $group pipeline, the most-reviewed game from a sorted
// lookup, and the ten most frequent tags.
func (m StatsModel) Overview(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{
		AveragePrice: "0.00",
		MostReviewed: MostReviewed{Title: "No games found"},
		TopTags:      []TagCount{},
	}

	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":          nil,
			"totalGames":   bson.M{"$sum": 1},
			"totalReviews": bson.M{"$sum": "$totalVotes"},
			"avgPrice":     bson.M{"$avg": "$price"},
		}},
	}

	cursor, err := m.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var totals []struct {
		TotalGames   int64    `bson:"totalGames"`
		TotalReviews int64    `bson:"totalReviews"`
		AvgPrice     *float64 `bson:"avgPrice"`
	}
	if err := cursor.All(ctx, &totals); err != nil {
		return nil, err
	}

	if len(totals) == 0 {
		return stats, nil
	}

	stats.TotalGames = totals[0].TotalGames
	stats.TotalReviews = totals[0].TotalReviews
	if totals[0].AvgPrice != nil {
		stats.AveragePrice = fmt.Sprintf("%.2f", *totals[0].AvgPrice)
	}

	most, err := m.mostReviewed(ctx)
	if err != nil {
		return nil, err
	}
	if most != nil {
		stats.MostReviewed = MostReviewed{Title: most.Title, Reviews: most.TotalVotes}
	}

	topTags, err := m.topTags(ctx)
	if err != nil {
		return nil, err
	}
	stats.TopTags = topTags

	return stats, nil
}

func (m StatsModel) mostReviewed(ctx context.Context) (*Game, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "totalVotes", Value: -1}})

	var game Game
	err := m.Collection.FindOne(ctx, bson.M{}, opts).Decode(&game)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &game, nil
}

// topTags scans tag lists in collection order and counts occurrences.
// Counting in memory keeps ties ranked by first appearance, which an
// aggregation sort would not guarantee.
func (m StatsModel) topTags(ctx context.Context) ([]TagCount, error) {
	opts := options.Find().SetProjection(bson.M{"tags": 1})

	cursor, err := m.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0

	for cursor.Next(ctx) {
		var doc struct {
			Tags []string `bson:"tags"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		for _, tag := range doc.Tags {
			if tag == "" {
				continue
			}
			if _, seen := firstSeen[tag]; !seen {
				firstSeen[tag] = order
				order++
			}
			counts[tag]++
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return RankTags(counts, firstSeen, topTagsLimit), nil
}

// RankTags orders tag counts descending, breaking ties by first
// appearance, and truncates to limit entries.
func RankTags(counts map[string]int, firstSeen map[string]int, limit int) []TagCount {
	ranked := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		ranked = append(ranked, TagCount{Tag: tag, Count: count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return firstSeen[ranked[i].Tag] < firstSeen[ranked[j].Tag]
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
