package errors

import (
	stderrs "errors"
	"net/http"
	"testing"
)

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := stderrs.New("disk on fire")
	err := Wrap(cause, ErrorCodeDB, "load document")

	if CodeOf(err) != ErrorCodeDB {
		t.Fatalf("code=%d", CodeOf(err))
	}
	if !stderrs.Is(err, cause) {
		t.Fatal("cause not reachable through Unwrap")
	}
	if Root(err) != cause {
		t.Fatalf("root=%v", Root(err))
	}
	if err.Error() != "load document: disk on fire" {
		t.Fatalf("message=%q", err.Error())
	}
}

func TestCodeOfForeignError(t *testing.T) {
	t.Parallel()

	if got := CodeOf(stderrs.New("plain")); got != ErrorCodeUnknown {
		t.Fatalf("code=%d want unknown", got)
	}
	if got := CodeOf(nil); got != ErrorCodeUnknown {
		t.Fatalf("nil code=%d want unknown", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want int
	}{
		{NotFoundf("x"), http.StatusNotFound},
		{Validationf("x"), http.StatusBadRequest},
		{JSONErrf("x"), http.StatusBadRequest},
		{InvalidArgf("x"), http.StatusUnprocessableEntity},
		{DuplicateKeyf("x"), http.StatusConflict},
		{Unauthorizedf("x"), http.StatusUnauthorized},
		{Forbiddenf("x"), http.StatusForbidden},
		{Unavailablef("x"), http.StatusServiceUnavailable},
		{DBf("x"), http.StatusInternalServerError},
		{stderrs.New("plain"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatus(c.err); got != c.want {
			t.Errorf("HTTPStatus(%v)=%d want %d", c.err, got, c.want)
		}
	}
}

func TestWithFieldCopies(t *testing.T) {
	t.Parallel()

	base := Validationf("bad value")
	with := WithField(base, "email")

	e, ok := As(with)
	if !ok || e.Field() != "email" {
		t.Fatalf("field=%q", e.Field())
	}
	// the original must stay untouched
	b, _ := As(base)
	if b.Field() != "" {
		t.Fatalf("original mutated: %q", b.Field())
	}
}

func TestValidationDetails(t *testing.T) {
	t.Parallel()

	details := map[string]any{"name": "Missing required value"}
	err := ValidationDetails("validation failed", details)

	if CodeOf(err) != ErrorCodeValidation {
		t.Fatalf("code=%d", CodeOf(err))
	}
	w := WireFrom(err)
	if w.Details.(map[string]any)["name"] != "Missing required value" {
		t.Fatalf("details lost: %#v", w.Details)
	}
}

func TestWireFrom(t *testing.T) {
	t.Parallel()

	w := WireFrom(WithField(NotFoundf("user missing"), "user_id"))
	if w.Code != ErrorCodeNotFound || w.Message != "user missing" || w.Field != "user_id" {
		t.Fatalf("wire wrong: %+v", w)
	}

	// foreign errors degrade to unknown
	w = WireFrom(stderrs.New("whatever"))
	if w.Code != ErrorCodeUnknown || w.Message != "whatever" {
		t.Fatalf("wire wrong: %+v", w)
	}

	if w := WireFrom(nil); w.Code != ErrorCodeUnknown || w.Message != "" {
		t.Fatalf("nil wire wrong: %+v", w)
	}
}

func TestWrapIf(t *testing.T) {
	t.Parallel()

	if err := WrapIf(nil, ErrorCodeDB, "x"); err != nil {
		t.Fatalf("nil in, %v out", err)
	}
	if err := WrapIf(stderrs.New("y"), ErrorCodeDB, "x"); CodeOf(err) != ErrorCodeDB {
		t.Fatalf("code=%d", CodeOf(err))
	}
}
