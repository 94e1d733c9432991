package errors

// Mongo-specific helpers for mapping driver errors to project ErrorCode

import (
	"context"
	stderrs "errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// Server error codes we care about (from the server's error code table)
const (
	mongoErrDuplicateKey       = 11000
	mongoErrExceededTimeLimit  = 50
	mongoErrNotWritablePrimary = 10107
	mongoErrShutdownInProgress = 91
)

// IsNoDocuments reports whether the root cause is mongo.ErrNoDocuments
func IsNoDocuments(err error) bool {
	return stderrs.Is(Root(err), mongo.ErrNoDocuments)
}

// IsDuplicateKey reports whether the error is a unique index violation
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(Root(err))
}

// hasServerCode walks write/command errors for a specific server code
func hasServerCode(err error, code int) bool {
	var we mongo.WriteException
	if stderrs.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == code {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if stderrs.As(err, &ce) {
		return int(ce.Code) == code
	}
	return false
}

// DBErrorCode maps a driver error to an ErrorCode with an ok flag
// !ok means err wasn't recognizably a driver error; caller may fall back
func DBErrorCode(err error) (ErrorCode, bool) {
	switch {
	case err == nil:
		return ErrorCodeUnknown, false
	case IsNoDocuments(err):
		return ErrorCodeNotFound, true
	case IsDuplicateKey(err):
		return ErrorCodeDuplicateKey, true
	case mongo.IsTimeout(err), stderrs.Is(err, context.DeadlineExceeded):
		return ErrorCodeUnavailable, true
	case mongo.IsNetworkError(err):
		return ErrorCodeUnavailable, true
	case hasServerCode(err, mongoErrNotWritablePrimary), hasServerCode(err, mongoErrShutdownInProgress):
		// Transient topology changes; a retry against the new primary may succeed
		return ErrorCodeUnavailable, true
	case hasServerCode(err, mongoErrExceededTimeLimit):
		return ErrorCodeUnavailable, true
	}

	var we mongo.WriteException
	var ce mongo.CommandError
	if stderrs.As(err, &we) || stderrs.As(err, &ce) {
		return ErrorCodeDB, true
	}
	return ErrorCodeUnknown, false
}

// FromMongo wraps a driver error with a mapped ErrorCode and message.
// If err is nil, returns nil
func FromMongo(err error, msg string) error {
	if err == nil {
		return nil
	}
	if code, ok := DBErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}

// FromMongof is the formatted variant of FromMongo
func FromMongof(err error, format string, a ...any) error {
	return FromMongo(err, fmt.Sprintf(format, a...))
}

// Retryable reports whether a retry against the store may succeed
func Retryable(err error) bool {
	code, ok := DBErrorCode(err)
	return ok && code == ErrorCodeUnavailable
}
