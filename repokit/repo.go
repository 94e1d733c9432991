package repokit

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	perr "dockit/platform/errors"
)

// idField is the storage key every mapper serializes identity under.
// Identities travel as their canonical string form.
const idField = "_id"

// Repo is a generic repository over one collection. The collection,
// entity type and mapper are bound at construction; the value itself
// is stateless and safe for concurrent use.
type Repo[E Entity] struct {
	coll   Collection
	mapper Mapper[E]
}

// NewRepo binds a collection and mapper into a repository
func NewRepo[E Entity](coll Collection, mapper Mapper[E]) *Repo[E] {
	if mapper == nil {
		panic("repokit: nil Mapper")
	}
	return &Repo[E]{coll: RequireCollection(coll), mapper: mapper}
}

// IDField returns the storage id key
func (r *Repo[E]) IDField() string { return idField }

// Unserialize maps a raw document back to its entity
func (r *Repo[E]) Unserialize(doc bson.M) (E, error) {
	return r.mapper.Unserialize(doc)
}

// Insert stores a new entity
func (r *Repo[E]) Insert(ctx context.Context, e E) error {
	doc, err := r.mapper.Serialize(e)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "serialize entity")
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return perr.FromMongo(err, "insert document")
	}
	return nil
}

func (r *Repo[E]) decodeOne(res *mongo.SingleResult, op string) (E, error) {
	var zero E
	var doc bson.M
	if err := res.Decode(&doc); err != nil {
		return zero, perr.FromMongo(err, op)
	}
	return r.mapper.Unserialize(doc)
}

// FindByID loads one entity by identity
func (r *Repo[E]) FindByID(ctx context.Context, id uuid.UUID) (E, error) {
	return r.decodeOne(r.coll.FindOne(ctx, bson.M{idField: id.String()}), "find by id")
}

// FindOne loads the first entity matching filter
func (r *Repo[E]) FindOne(ctx context.Context, filter bson.M) (E, error) {
	return r.decodeOne(r.coll.FindOne(ctx, filter), "find one")
}

// Cursor opens a raw document cursor for the query
func (r *Repo[E]) Cursor(ctx context.Context, q Query) (*mongo.Cursor, error) {
	cur, err := r.coll.Find(ctx, orEmpty(q.Filter), q.findOptions())
	if err != nil {
		return nil, perr.FromMongo(err, "find documents")
	}
	return cur, nil
}

// Find loads every entity matching the query
func (r *Repo[E]) Find(ctx context.Context, q Query) ([]E, error) {
	cur, err := r.Cursor(ctx, q)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []E
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, perr.FromMongo(err, "decode document")
		}
		e, err := r.mapper.Unserialize(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := cur.Err(); err != nil {
		return nil, perr.FromMongo(err, "iterate documents")
	}
	return out, nil
}

// FindByIDs loads the entities whose identity is in ids. Order follows
// the store, not ids; missing identities are silently absent.
func (r *Repo[E]) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]E, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	vals := make([]any, len(ids))
	for i, id := range ids {
		vals[i] = id.String()
	}
	return r.Find(ctx, Query{Filter: bson.M{idField: In(vals...)}})
}

// UpdateByID applies update to one entity; missing id is a not found
func (r *Repo[E]) UpdateByID(ctx context.Context, id uuid.UUID, update bson.M) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{idField: id.String()}, update)
	if err != nil {
		return perr.FromMongo(err, "update by id")
	}
	if res.MatchedCount == 0 {
		return perr.NotFoundf("document %s not found", id)
	}
	return nil
}

// UpdateOne applies update to the first match
func (r *Repo[E]) UpdateOne(ctx context.Context, filter, update bson.M) error {
	if _, err := r.coll.UpdateOne(ctx, filter, update); err != nil {
		return perr.FromMongo(err, "update one")
	}
	return nil
}

// UpdateMany applies update to every match and reports how many changed
func (r *Repo[E]) UpdateMany(ctx context.Context, filter, update bson.M) (int64, error) {
	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, perr.FromMongo(err, "update many")
	}
	return res.ModifiedCount, nil
}

// Upsert applies update to the first match, inserting when none exists
func (r *Repo[E]) Upsert(ctx context.Context, filter, update bson.M) error {
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return perr.FromMongo(err, "upsert")
	}
	return nil
}

// FindOneAndUpdate atomically updates one document and returns it;
// returnNew selects the post-update state
func (r *Repo[E]) FindOneAndUpdate(ctx context.Context, filter, update bson.M, returnNew bool) (E, error) {
	doc := options.Before
	if returnNew {
		doc = options.After
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(doc)
	return r.decodeOne(r.coll.FindOneAndUpdate(ctx, filter, update, opts), "find and update")
}

// DeleteByID removes one entity; missing id is a not found
func (r *Repo[E]) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{idField: id.String()})
	if err != nil {
		return perr.FromMongo(err, "delete by id")
	}
	if res.DeletedCount == 0 {
		return perr.NotFoundf("document %s not found", id)
	}
	return nil
}

// DeleteOne removes the first match
func (r *Repo[E]) DeleteOne(ctx context.Context, filter bson.M) error {
	if _, err := r.coll.DeleteOne(ctx, filter); err != nil {
		return perr.FromMongo(err, "delete one")
	}
	return nil
}

// DeleteMany removes every match and reports how many went
func (r *Repo[E]) DeleteMany(ctx context.Context, filter bson.M) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, perr.FromMongo(err, "delete many")
	}
	return res.DeletedCount, nil
}

// Count reports how many documents match filter
func (r *Repo[E]) Count(ctx context.Context, filter bson.M) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, orEmpty(filter))
	if err != nil {
		return 0, perr.FromMongo(err, "count documents")
	}
	return n, nil
}

// Purge removes every document in the collection
func (r *Repo[E]) Purge(ctx context.Context) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return perr.FromMongo(err, "purge collection")
	}
	return nil
}

// Drop removes the collection itself
func (r *Repo[E]) Drop(ctx context.Context) error {
	if err := r.coll.Drop(ctx); err != nil {
		return perr.FromMongo(err, "drop collection")
	}
	return nil
}

// orEmpty keeps the driver happy: a nil filter is an empty one
func orEmpty(filter bson.M) bson.M {
	if filter == nil {
		return bson.M{}
	}
	return filter
}
