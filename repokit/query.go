package repokit

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Query describes one read against a collection. Zero values mean
// "no constraint"; Sort is ordered, each element (field, 1|-1).
type Query struct {
	Filter     bson.M
	Sort       bson.D
	Limit      int64
	Skip       int64
	Projection bson.M
}

// findOptions folds the query knobs into driver options
func (q Query) findOptions() *options.FindOptions {
	opts := options.Find()
	if len(q.Sort) > 0 {
		opts.SetSort(q.Sort)
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}
	if q.Skip > 0 {
		opts.SetSkip(q.Skip)
	}
	if len(q.Projection) > 0 {
		opts.SetProjection(q.Projection)
	}
	return opts
}

// In matches any of the given values
func In(values ...any) bson.M {
	return bson.M{"$in": values}
}

// Set wraps fields in a $set update document
func Set(fields bson.M) bson.M {
	return bson.M{"$set": fields}
}

// SetOnInsert wraps fields in a $setOnInsert update document
func SetOnInsert(fields bson.M) bson.M {
	return bson.M{"$setOnInsert": fields}
}

// MatchDateRange constrains an epoch-seconds field to [from, to];
// a nil bound is open
func MatchDateRange(from, to *int64) bson.M {
	m := bson.M{}
	if from != nil {
		m["$gte"] = *from
	}
	if to != nil {
		m["$lte"] = *to
	}
	return m
}

// MatchString matches the whole value case-insensitively, with the
// input treated as a literal
func MatchString(s string) bson.M {
	return bson.M{"$regex": "^" + regexp.QuoteMeta(s) + "$", "$options": "i"}
}
