package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListParamsFrom(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/things?page=3&per_page=20&sort=-name&color=red", nil)
	p := ListParamsFrom(r)

	if p.Page != 3 || p.PerPage != 20 {
		t.Fatalf("page=%d per_page=%d", p.Page, p.PerPage)
	}
	if p.SortField != "name" || p.SortDir != -1 {
		t.Fatalf("sort=%q dir=%d", p.SortField, p.SortDir)
	}
	// the raw query rides along for the filter builder
	if p.Query.Get("color") != "red" {
		t.Fatalf("query lost: %v", p.Query)
	}
}

func TestListParamsDefaults(t *testing.T) {
	t.Parallel()

	// no sort requested: both components zero so the list default rules
	p := ListParamsFrom(httptest.NewRequest(http.MethodGet, "/things", nil))
	if p.Page != 1 || p.PerPage != 0 || p.SortField != "" || p.SortDir != 0 {
		t.Fatalf("defaults wrong: %+v", p)
	}

	p = ListParamsFrom(httptest.NewRequest(http.MethodGet, "/things?sort=name", nil))
	if p.SortField != "name" || p.SortDir != 1 {
		t.Fatalf("ascending sort wrong: %+v", p)
	}

	// garbage numbers stay on the defaults
	p = ListParamsFrom(httptest.NewRequest(http.MethodGet, "/things?page=abc", nil))
	if p.Page != 1 {
		t.Fatalf("page=%d want 1", p.Page)
	}
}
