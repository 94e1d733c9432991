package httpkit

import (
	"encoding/json"
	"net/http"

	perr "dockit/platform/errors"
	"dockit/platform/logger"
)

// Envelope is the standard response body for all endpoints
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	Details    any            `json:"details,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
	Page       *Page          `json:"page,omitempty"`
}

// Page describes pagination when returning lists
type Page struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

// JSON writes v as application/json with the given status
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondOK writes a 200 envelope with data
func RespondOK(w http.ResponseWriter, r *http.Request, data any) {
	JSON(w, http.StatusOK, Envelope{
		StatusCode: http.StatusOK,
		Status:     http.StatusText(http.StatusOK),
		RequestID:  logger.RequestID(r.Context()),
		Data:       data,
	})
}

// RespondCreated writes a 201 envelope with data
func RespondCreated(w http.ResponseWriter, r *http.Request, data any) {
	JSON(w, http.StatusCreated, Envelope{
		StatusCode: http.StatusCreated,
		Status:     http.StatusText(http.StatusCreated),
		RequestID:  logger.RequestID(r.Context()),
		Data:       data,
	})
}

// RespondNoContent writes a 204 with no body
func RespondNoContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondList writes items and a pagination block
func RespondList(w http.ResponseWriter, r *http.Request, items any, total int64, page, pageSize int) {
	JSON(w, http.StatusOK, Envelope{
		StatusCode: http.StatusOK,
		Status:     http.StatusText(http.StatusOK),
		RequestID:  logger.RequestID(r.Context()),
		Data:       items,
		Page: &Page{
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		},
	})
}

// RespondError maps an error into an envelope and writes it
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	status := perr.HTTPStatus(err)
	wr := perr.WireFrom(err)
	JSON(w, status, Envelope{
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       wr.Code,
		Error:      wr.Message,
		Field:      wr.Field,
		Details:    wr.Details,
		RequestID:  logger.RequestID(r.Context()),
	})
}

// Call adapts a data-or-error handler to the envelope convention
func Call(h func(r *http.Request) (any, error)) Handler {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := h(r)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondOK(w, r, data)
	}
}
