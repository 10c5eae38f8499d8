package api

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrAuthentication indicates the API server could not authenticate the
// request. When returned from token verification, the presented token has
// been explicitly rejected and must be discarded.
type ErrAuthentication struct {
	Reason string `json:"reason"`
}

func (e *ErrAuthentication) Error() string {
	if e.Reason == "" {
		return "could not authenticate the request"
	}
	return fmt.Sprintf("could not authenticate the request: %s", e.Reason)
}

// ErrAuthorization indicates the authenticated principal is not permitted to
// perform the requested operation.
type ErrAuthorization struct{}

func (e *ErrAuthorization) Error() string {
	return "the request is not authorized"
}

// ErrBadRequest indicates the API server rejected the request as malformed.
type ErrBadRequest struct {
	Reason string `json:"reason"`
}

func (e *ErrBadRequest) Error() string {
	return fmt.Sprintf("bad request: %s", e.Reason)
}

// ErrNotFound indicates the requested resource does not exist.
type ErrNotFound struct {
	Reason string `json:"reason"`
}

func (e *ErrNotFound) Error() string {
	if e.Reason == "" {
		return "not found"
	}
	return e.Reason
}

// ErrInternalServer indicates an unspecified failure on the API server.
type ErrInternalServer struct{}

func (e *ErrInternalServer) Error() string {
	return "an internal server error occurred"
}

// IsErrAuthentication returns true if err, at any level of wrapping, is an
// explicit rejection by the API server, as opposed to a transport failure of
// indeterminate meaning.
func IsErrAuthentication(err error) bool {
	authErr := &ErrAuthentication{}
	return errors.As(err, &authErr)
}
