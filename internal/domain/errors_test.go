package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not found", fmt.Errorf("folder x: %w", ErrNotFound), "NOT_FOUND"},
		{"forbidden", fmt.Errorf("%w: access denied", ErrForbidden), "PERMISSION_DENIED"},
		{"root protected", &RootProtectedError{FolderID: "f1"}, "CANNOT_DELETE_ROOT"},
		{"conflict sentinel", fmt.Errorf("folder 'a': %w", ErrConflict), "DUPLICATE_NAME"},
		{"conflict typed", &ConflictError{Message: "folder 'a' already exists"}, "DUPLICATE_NAME"},
		{"validation", fmt.Errorf("%w: name is required", ErrValidation), "INVALID_INPUT"},
		{"unauthorized", ErrUnauthorized, "UNAUTHORIZED"},
		{"unknown", errors.New("connection reset"), "STORAGE_FAILURE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Code(tt.err); got != tt.want {
				t.Errorf("Code() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConflictErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("create folder: %w", &ConflictError{
		Message:      "folder 'Reports' already exists",
		ResourceType: "folder",
		ResourceID:   "f-existing",
	})

	if !errors.Is(err, ErrConflict) {
		t.Error("wrapped ConflictError should match ErrConflict")
	}

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatal("errors.As should recover the typed conflict")
	}
	if conflict.ResourceID != "f-existing" {
		t.Errorf("ResourceID = %q, want f-existing", conflict.ResourceID)
	}
	if conflict.StatusCode() != http.StatusConflict {
		t.Errorf("StatusCode = %d, want 409", conflict.StatusCode())
	}
}

func TestRootProtectedErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("delete subtree: %w", &RootProtectedError{FolderID: "f-root"})

	if !errors.Is(err, ErrRootProtected) {
		t.Error("wrapped RootProtectedError should match ErrRootProtected")
	}

	var rp *RootProtectedError
	if !errors.As(err, &rp) {
		t.Fatal("errors.As should recover the typed error")
	}
	if rp.StatusCode() != http.StatusConflict {
		t.Errorf("StatusCode = %d, want 409", rp.StatusCode())
	}
}
