package httpkit

import (
	"net/http"
	"net/url"
	"strings"

	"dockit/listkit"
	"dockit/platform/strutil"
)

// ListParams is the pagination and sorting slice of a list request
type ListParams struct {
	Page    int
	PerPage int
	// SortField is the logical field name; a leading '-' in the query
	// selects descending order
	SortField string
	SortDir   int
	Query     url.Values
}

// ListParamsFrom reads page, per_page and sort out of the query string.
// Unparseable values fall back and let the builder clamp them.
func ListParamsFrom(r *http.Request) ListParams {
	q := r.URL.Query()
	p := ListParams{Page: 1, Query: q}
	if n, ok := strutil.ParseInt(q.Get("page")); ok {
		p.Page = n
	}
	if n, ok := strutil.ParseInt(q.Get("per_page")); ok {
		p.PerPage = n
	}
	// no sort param leaves both components zero so the descriptor
	// default applies whole
	if s := q.Get("sort"); s != "" {
		if strings.HasPrefix(s, "-") {
			p.SortField = s[1:]
			p.SortDir = -1
		} else {
			p.SortField = s
			p.SortDir = 1
		}
	}
	return p
}

// ApplyList folds the request params into a list builder
func ApplyList[E any](b *listkit.Builder[E], p ListParams) *listkit.Builder[E] {
	return b.
		WithQuery(p.Query).
		WithSorting(p.SortField, p.SortDir).
		WithPagination(p.Page, p.PerPage, 0, 0)
}
