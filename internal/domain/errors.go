package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// ForbiddenError indicates authorization failure
	ForbiddenError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *ForbiddenError) Error() string    { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int    { return http.StatusForbidden }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("already exists")
	ErrValidation    = errors.New("validation failed")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrRootProtected = errors.New("root folder is protected")
	ErrStorage       = errors.New("storage failure")
)

// Code returns the stable machine-readable code for a domain error.
// A uniqueness violation caught by the database constraint and one caught by
// the pre-flight sibling check map to the same code on purpose: callers
// cannot tell the two apart.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrForbidden):
		return "PERMISSION_DENIED"
	case errors.Is(err, ErrRootProtected):
		return "CANNOT_DELETE_ROOT"
	case errors.Is(err, ErrConflict):
		return "DUPLICATE_NAME"
	case errors.Is(err, ErrValidation):
		return "INVALID_INPUT"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	default:
		return "STORAGE_FAILURE"
	}
}

// ConflictError represents a resource conflict with details about the existing resource
// Implements HTTPError interface for extensible error handling
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (tenant, folder, file)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// RootProtectedError is returned when a structural mutation targets a tenant
// root folder. Root removal goes through tenant deletion, never subtree deletion.
type RootProtectedError struct {
	FolderID string
}

func (e *RootProtectedError) Error() string {
	return "folder " + e.FolderID + " is the tenant root and cannot be deleted"
}

// StatusCode implements the HTTPError interface
func (e *RootProtectedError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrRootProtected
func (e *RootProtectedError) Is(target error) bool {
	return target == ErrRootProtected
}
