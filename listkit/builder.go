package listkit

import (
	"context"
	"fmt"
	"net/url"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	perr "dockit/platform/errors"
	"dockit/platform/strutil"
	"dockit/repokit"
)

const (
	defaultPerPage = 50
	maxPerPage     = 100
)

// Source is what the builder reads from; *repokit.Repo[E] satisfies it
type Source[E any] interface {
	Cursor(ctx context.Context, q repokit.Query) (*mongo.Cursor, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	IDField() string
	Unserialize(doc bson.M) (E, error)
}

// Rows is one page of results. Exactly one of Items and ByID is set,
// depending on whether map keying was requested.
type Rows struct {
	Items []any
	ByID  map[string]any
}

// Builder assembles one list query facet by facet. Facets are
// independent and optional; an instance serves a single request and
// is not synchronized.
type Builder[E any] struct {
	src  Source[E]
	desc Descriptor

	filter bson.M
	ors    [][]bson.M
	sort   bson.D
	limit  int64
	skip   int64
	proj   bson.M

	serialize func(v any) any
	rowAsRaw  bool
	asMap     bool
}

// New starts a builder for one request against src
func New[E any](src Source[E], desc Descriptor) *Builder[E] {
	if src == nil {
		panic("listkit: nil Source")
	}
	return &Builder[E]{src: src, desc: desc, filter: bson.M{}}
}

// WithQuery folds untrusted query-string values in. Only declared
// filters marked FromQuery and actually sent by the caller are
// honored; for a repeated parameter the last value wins. A field
// absent from the request contributes nothing, default or not.
func (b *Builder[E]) WithQuery(values url.Values) *Builder[E] {
	for name, ff := range b.desc.Filters {
		if !ff.FromQuery {
			continue
		}
		vs, present := values[name]
		if !present || len(vs) == 0 {
			continue
		}
		b.apply(ff, vs[len(vs)-1])
	}
	return b
}

// WithFiltering folds trusted, already-typed values in. Undeclared
// keys are ignored; declared fields the caller did not set contribute
// nothing.
func (b *Builder[E]) WithFiltering(values map[string]any) *Builder[E] {
	for name, ff := range b.desc.Filters {
		raw, ok := values[name]
		if !ok {
			continue
		}
		b.apply(ff, raw)
	}
	return b
}

// apply coerces one present value and folds it into the filter. When
// the value is nil or the coercion rejects it, the declared default
// stands in as-is, bypassing Convert; without a default the field is
// dropped, not an error
func (b *Builder[E]) apply(ff FieldFilter, raw any) {
	v, ok := coerce(ff.Type, raw)
	if ok && v == nil {
		ok = false
	}
	switch m := ff.Mapping.(type) {
	case Direct:
		if !ok {
			if ff.Default != nil {
				b.filter[m.Field] = ff.Default
			}
			return
		}
		if m.Convert != nil {
			v = m.Convert(v)
		}
		b.filter[m.Field] = v
	case Search:
		if !ok {
			if ff.Default == nil {
				return
			}
			v = ff.Default
		} else if m.Convert != nil {
			v = m.Convert(v)
		}
		clauses := make([]bson.M, 0, len(m.Fields))
		for _, f := range m.Fields {
			clauses = append(clauses, bson.M{f: v})
		}
		if len(clauses) > 0 {
			b.ors = append(b.ors, clauses)
		}
	}
}

func coerce(t FieldType, raw any) (any, bool) {
	switch t {
	case TypeBool:
		return firstOK(strutil.ParseBool(raw))
	case TypeInt:
		return firstOK(strutil.ParseInt(raw))
	case TypeFloat:
		return firstOK(strutil.ParseFloat(raw))
	case TypeDate:
		return firstOK(strutil.ParseDateToUnix(raw))
	case TypeUUID:
		u, ok := strutil.ParseUUID(raw)
		if !ok {
			return nil, false
		}
		return u.String(), true
	default:
		return raw, true
	}
}

func firstOK[T any](v T, ok bool) (any, bool) {
	if !ok {
		return nil, false
	}
	return v, true
}

// WithSorting orders by a declared field. Field and direction fall
// back to the descriptor default independently: an off-whitelist field
// keeps a valid requested direction, and a valid field keeps its place
// under a bad direction
func (b *Builder[E]) WithSorting(field string, direction int) *Builder[E] {
	def := b.desc.DefaultSort
	phys, ok := b.desc.Sortable[field]
	if !ok {
		phys = def.Field
	}
	if direction != 1 && direction != -1 {
		direction = def.Direction
	}
	if phys == "" || (direction != 1 && direction != -1) {
		return b
	}
	b.sort = bson.D{{Key: phys, Value: direction}}
	return b
}

// WithPagination selects a 1-based page. An unrequested (zero)
// perPage falls back to its default; any requested value is clamped
// into [1, max]. maxAllowed <= 0 means the stock cap.
func (b *Builder[E]) WithPagination(page, perPage, defPerPage, maxAllowed int) *Builder[E] {
	if defPerPage <= 0 {
		defPerPage = defaultPerPage
	}
	if maxAllowed <= 0 {
		maxAllowed = maxPerPage
	}
	if perPage == 0 {
		perPage = defPerPage
	}
	if perPage < 1 {
		perPage = 1
	}
	if perPage > maxAllowed {
		perPage = maxAllowed
	}
	if page < 1 {
		page = 1
	}
	b.limit = int64(perPage)
	b.skip = int64(perPage) * int64(page-1)
	return b
}

// WithProjection narrows the returned documents
func (b *Builder[E]) WithProjection(proj bson.M) *Builder[E] {
	b.proj = proj
	return b
}

// WithSerialization picks the row shape: fn post-processes each row
// (nil keeps it), rowAsRaw serves the stored document instead of the
// mapped entity, asMap keys the page by storage id
func (b *Builder[E]) WithSerialization(fn func(v any) any, rowAsRaw, asMap bool) *Builder[E] {
	b.serialize = fn
	b.rowAsRaw = rowAsRaw
	b.asMap = asMap
	return b
}

// buildFilter folds the accumulated clauses into one filter document
func (b *Builder[E]) buildFilter() bson.M {
	filter := bson.M{}
	for k, v := range b.filter {
		filter[k] = v
	}
	switch len(b.ors) {
	case 0:
	case 1:
		filter["$or"] = b.ors[0]
	default:
		groups := make([]bson.M, len(b.ors))
		for i, or := range b.ors {
			groups[i] = bson.M{"$or": or}
		}
		filter["$and"] = groups
	}
	return filter
}

func (b *Builder[E]) query() repokit.Query {
	sort := b.sort
	if len(sort) == 0 && b.desc.DefaultSort.Field != "" {
		sort = bson.D{{Key: b.desc.DefaultSort.Field, Value: b.desc.DefaultSort.Direction}}
	}
	return repokit.Query{
		Filter:     b.buildFilter(),
		Sort:       sort,
		Limit:      b.limit,
		Skip:       b.skip,
		Projection: b.proj,
	}
}

// row resolves one stored document to its output shape
func (b *Builder[E]) row(doc bson.M) (any, error) {
	var out any
	if b.rowAsRaw {
		out = doc
	} else {
		e, err := b.src.Unserialize(doc)
		if err != nil {
			return nil, err
		}
		out = e
	}
	if b.serialize != nil {
		out = b.serialize(out)
	}
	return out, nil
}

// FetchData runs the assembled query and returns one page
func (b *Builder[E]) FetchData(ctx context.Context) (Rows, error) {
	cur, err := b.src.Cursor(ctx, b.query())
	if err != nil {
		return Rows{}, err
	}
	defer cur.Close(ctx)

	var rows Rows
	if b.asMap {
		rows.ByID = map[string]any{}
	}
	idField := b.src.IDField()

	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return Rows{}, perr.FromMongo(err, "decode list document")
		}
		out, err := b.row(doc)
		if err != nil {
			return Rows{}, err
		}
		if b.asMap {
			rows.ByID[fmt.Sprint(doc[idField])] = out
		} else {
			rows.Items = append(rows.Items, out)
		}
	}
	if err := cur.Err(); err != nil {
		return Rows{}, perr.FromMongo(err, "iterate list documents")
	}
	return rows, nil
}

// FetchWithCount returns one page plus the unpaginated total. When the
// first page comes back short the page length already is the total and
// no count query is issued; any non-zero offset forces a real count.
func (b *Builder[E]) FetchWithCount(ctx context.Context) (Rows, int64, error) {
	rows, err := b.FetchData(ctx)
	if err != nil {
		return Rows{}, 0, err
	}
	n := int64(len(rows.Items))
	if b.asMap {
		n = int64(len(rows.ByID))
	}
	if b.skip == 0 && (b.limit == 0 || n < b.limit) {
		return rows, n, nil
	}
	total, err := b.src.Count(ctx, b.buildFilter())
	if err != nil {
		return Rows{}, 0, err
	}
	return rows, total, nil
}
