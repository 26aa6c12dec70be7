package data

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// scoreExpr is the aggregation expression for the computed review score:
// positiveVotes / (positiveVotes + negativeVotes) * 100, defined as 0
// when a game has no votes at all so we never divide by zero. The score
// is not a stored field, so range filters on it have to go through $expr.
func scoreExpr() bson.M {
	total := bson.M{"$add": bson.A{"$positiveVotes", "$negativeVotes"}}

	return bson.M{
		"$cond": bson.M{
			"if":   bson.M{"$eq": bson.A{total, 0}},
			"then": 0,
			"else": bson.M{
				"$multiply": bson.A{
					bson.M{"$divide": bson.A{"$positiveVotes", total}},
					100,
				},
			},
		},
	}
}

// BuildQuery translates the recognized filters into a MongoDB predicate.
// Filters that are absent contribute nothing, so an empty Filters value
// yields an empty document which matches every game. Building the query
// never touches the database.
func BuildQuery(f Filters) bson.M {
	query := bson.M{}

	if f.Search != "" {
		// Substring match, case-insensitive, against the title or any
		// tag. User input is escaped so it can't act as a regex.
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"tags": pattern},
		}
	}

	if f.Genre != "" {
		// Exact match against the genres array, case-insensitive.
		query["genres"] = primitive.Regex{
			Pattern: "^" + regexp.QuoteMeta(f.Genre) + "$",
			Options: "i",
		}
	}

	if f.PriceMin != nil || f.PriceMax != nil {
		price := bson.M{}
		if f.PriceMin != nil {
			price["$gte"] = *f.PriceMin
		}
		if f.PriceMax != nil {
			price["$lte"] = *f.PriceMax
		}
		query["price"] = price
	}

	if f.DateMin != "" || f.DateMax != "" {
		// Release dates are stored as raw strings and compared
		// lexicographically. Callers supply comparably formatted bounds.
		date := bson.M{}
		if f.DateMin != "" {
			date["$gte"] = f.DateMin
		}
		if f.DateMax != "" {
			date["$lte"] = f.DateMax
		}
		query["releaseDate"] = date
	}

	var score []bson.M
	if f.ScoreMin != nil {
		score = append(score, bson.M{"$expr": bson.M{"$gte": bson.A{scoreExpr(), *f.ScoreMin}}})
	}
	if f.ScoreMax != nil {
		score = append(score, bson.M{"$expr": bson.M{"$lte": bson.A{scoreExpr(), *f.ScoreMax}}})
	}
	if len(score) > 0 {
		and := bson.A{}
		for _, cond := range score {
			and = append(and, cond)
		}
		query["$and"] = and
	}

	return query
}

// SortOption maps a user-facing sort key and direction onto a concrete
// field ordering. Unrecognized keys fall back to title, unrecognized
// directions to ascending.
//
// Note that sorting by "score" orders on the raw positive-vote count,
// not on the computed percentage the score filter uses. That asymmetry
// is long-standing behavior the front end depends on.
func SortOption(sort, order string) bson.D {
	direction := 1
	if order == "desc" {
		direction = -1
	}

	var field string
	switch sort {
	case "score":
		field = "positiveVotes"
	case "price":
		field = "price"
	case "date":
		field = "releaseDate"
	case "reviews", "popularity":
		field = "totalVotes"
	default:
		field = "title"
	}

	return bson.D{{Key: field, Value: direction}}
}
