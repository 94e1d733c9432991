package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"dockit/httpkit"
	"dockit/listkit"
	perr "dockit/platform/errors"
	"dockit/platform/store"
	"dockit/platform/strutil"
	ptime "dockit/platform/time"
	"dockit/repokit"
	"dockit/validate"
)

// note is the demo resource: a titled text blob with tags
type note struct {
	repokit.Base
	Title     string
	Body      string
	Tags      []string
	CreatedAt int64
}

type noteMapper struct{}

func (noteMapper) Serialize(n note) (bson.M, error) {
	return bson.M{
		"_id":        n.ID().String(),
		"title":      n.Title,
		"body":       n.Body,
		"tags":       n.Tags,
		"created_at": n.CreatedAt,
	}, nil
}

func (noteMapper) Unserialize(doc bson.M) (note, error) {
	s, _ := doc["_id"].(string)
	id, err := uuid.Parse(s)
	if err != nil {
		return note{}, perr.Wrap(err, perr.ErrorCodeDB, "note: bad _id")
	}
	n := note{
		Base:  repokit.EntityWithID(id),
		Title: asString(doc["title"]),
		Body:  asString(doc["body"]),
	}
	if v, ok := strutil.ParseInt(doc["created_at"]); ok {
		n.CreatedAt = int64(v)
	}
	if tags, ok := doc["tags"].(bson.A); ok {
		for _, t := range tags {
			n.Tags = append(n.Tags, asString(t))
		}
	}
	return n, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// noteTags is the declared tag vocabulary
var noteTags = []string{"work", "personal", "idea", "todo"}

// noteSchema guards the create payload
var noteSchema = validate.Schema{
	validate.Req("title", validate.String(validate.StringOpts{MinLen: 1, MaxLen: 200, StripTags: true})),
	validate.F("body", validate.String(validate.StringOpts{MaxLen: 10000, StripTags: true})),
	validate.F("tags", validate.ListOfStrings(noteTags, validate.ListOpts{MaxLen: 16})),
}

// noteList declares the filterable and sortable surface of GET /notes
var noteList = listkit.Descriptor{
	Filters: map[string]listkit.FieldFilter{
		"q":   {Mapping: listkit.Search{Fields: []string{"title", "body"}}, FromQuery: true},
		"tag": {Mapping: listkit.Direct{Field: "tags"}, FromQuery: true},
		"created_from": {
			Mapping:   listkit.Direct{Field: "created_at", Convert: func(v any) any { return bson.M{"$gte": v} }},
			Type:      listkit.TypeDate,
			FromQuery: true,
		},
	},
	Sortable: map[string]string{
		"title":   "title",
		"created": "created_at",
	},
	DefaultSort: listkit.Sort{Field: "created_at", Direction: -1},
}

func noteJSON(v any) any {
	n, ok := v.(note)
	if !ok {
		return v
	}
	return map[string]any{
		"id":         n.ID().String(),
		"title":      n.Title,
		"body":       n.Body,
		"tags":       n.Tags,
		"created_at": ptime.UTS(n.CreatedAt),
	}
}

func newNoteRepo(st *store.Store) *repokit.Repo[note] {
	return repokit.NewRepo[note](st.Collection("notes"), noteMapper{})
}

type noteAPI struct {
	repo *repokit.Repo[note]
}

func mountNotes(r httpkit.Router, repo *repokit.Repo[note]) {
	api := noteAPI{repo: repo}
	r.Route("/notes", func(r httpkit.Router) {
		r.Get("/", api.list)
		httpkit.Post(r, "/", api.create)
		httpkit.Get(r, "/{id}", api.get)
		httpkit.Delete(r, "/{id}", api.remove)
	})
}

func (a noteAPI) list(w http.ResponseWriter, r *http.Request) {
	p := httpkit.ListParamsFrom(r)
	if p.PerPage <= 0 {
		p.PerPage = 50
	}
	b := listkit.New[note](a.repo, noteList).
		WithSerialization(noteJSON, false, false)
	b = httpkit.ApplyList(b, p)

	rows, total, err := b.FetchWithCount(r.Context())
	if err != nil {
		httpkit.RespondError(w, r, err)
		return
	}
	httpkit.RespondList(w, r, rows.Items, total, p.Page, p.PerPage)
}

func (a noteAPI) create(r *http.Request) (any, error) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, perr.JSONErrf("invalid JSON: %v", err)
	}

	res := validate.Validate(validate.MapSource(body), noteSchema)
	if res.HasErrors() {
		return nil, perr.ValidationDetails("invalid note", res.Errors())
	}
	vals := res.Values()

	n := note{
		Base:      repokit.NewEntity(),
		Title:     asString(vals["title"]),
		Body:      asString(vals["body"]),
		CreatedAt: ptime.Unix(time.Now().UTC()),
	}
	if tags, ok := vals["tags"].([]any); ok {
		for _, t := range tags {
			n.Tags = append(n.Tags, asString(t))
		}
	}
	if err := a.repo.Insert(r.Context(), n); err != nil {
		return nil, err
	}
	return noteJSON(n), nil
}

func (a noteAPI) get(r *http.Request) (any, error) {
	id, err := uuid.Parse(httpkit.URLParam(r, "id"))
	if err != nil {
		return nil, perr.InvalidArgf("bad note id")
	}
	n, err := a.repo.FindByID(r.Context(), id)
	if err != nil {
		return nil, err
	}
	return noteJSON(n), nil
}

func (a noteAPI) remove(r *http.Request) (any, error) {
	id, err := uuid.Parse(httpkit.URLParam(r, "id"))
	if err != nil {
		return nil, perr.InvalidArgf("bad note id")
	}
	if err := a.repo.DeleteByID(r.Context(), id); err != nil {
		return nil, err
	}
	return map[string]any{"deleted": id.String()}, nil
}
