package bind

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "dockit/platform/errors"
)

type signupBody struct {
	Name string `json:"name" validate:"required,min=2"`
	Age  int    `json:"age" validate:"gte=0"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
}

func TestParseJSONValid(t *testing.T) {
	t.Parallel()

	got, err := ParseJSON[signupBody](post(`{"name":"Jan","age":30}`))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if got.Name != "Jan" || got.Age != 30 {
		t.Fatalf("payload wrong: %+v", got)
	}
}

func TestParseJSONMalformed(t *testing.T) {
	t.Parallel()

	_, err := ParseJSON[signupBody](post(`{"name":`))
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("err=%v want json error", err)
	}
}

func TestParseJSONUnknownField(t *testing.T) {
	t.Parallel()

	_, err := ParseJSON[signupBody](post(`{"name":"Jan","rogue":true}`))
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("err=%v want json error", err)
	}
}

func TestParseJSONTrailingData(t *testing.T) {
	t.Parallel()

	_, err := ParseJSON[signupBody](post(`{"name":"Jan"}{"name":"Ala"}`))
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("err=%v want json error", err)
	}
}

func TestParseJSONEmptyBody(t *testing.T) {
	t.Parallel()

	// empty POST bodies are an error
	_, err := ParseJSON[signupBody](post(""))
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("err=%v want json error", err)
	}

	// safe methods tolerate them
	req := httptest.NewRequest(http.MethodGet, "/signup", strings.NewReader(""))
	if _, err := ParseJSON[signupBody](req); err != nil {
		t.Fatalf("GET empty body: %v", err)
	}
}

func TestParseJSONValidation(t *testing.T) {
	t.Parallel()

	_, err := ParseJSON[signupBody](post(`{"name":"J"}`))
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("err=%v want validation error", err)
	}
	e, ok := perr.As(err)
	if !ok || e.Field() != "name" {
		t.Fatalf("field=%q want name", e.Field())
	}
	// the message uses the json tag name and the short translation
	if !strings.Contains(e.Error(), "name must be at least 2") {
		t.Fatalf("message=%q", e.Error())
	}
}
