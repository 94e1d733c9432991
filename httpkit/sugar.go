package httpkit

import (
	"net/http"

	"dockit/httpkit/bind"
)

// JSONHandler adapts a typed-body handler to the envelope convention:
// bind and validate the body, run the handler, write data or error
func JSONHandler[T any](h func(*http.Request, T) (any, error)) Handler {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := bind.ParseJSON[T](r)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		data, err := h(r, body)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondOK(w, r, data)
	}
}

// PostJSON mounts a typed-body handler under POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSONHandler(h))
}

// PutJSON mounts a typed-body handler under PUT
func PutJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Put(path, JSONHandler(h))
}

// PatchJSON mounts a typed-body handler under PATCH
func PatchJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Patch(path, JSONHandler(h))
}

// Get mounts a body-less handler under GET
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// Post mounts a body-less handler under POST
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, Call(h))
}

// Delete mounts a body-less handler under DELETE
func Delete(r Router, path string, h func(*http.Request) (any, error)) {
	r.Delete(path, Call(h))
}
