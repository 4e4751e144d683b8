// Package pathtree encodes folder ancestry as ltree-style label paths.
//
// A path is a dot-separated sequence of labels, one per ancestor level,
// ending in the folder's own encoded identifier. Lookups never decode a path
// back to ids; paths exist only for prefix/containment queries, so the
// encoding needs to be injective and path-safe, nothing more.
package pathtree

import (
	"fmt"
	"strings"

	"docvault/internal/domain"
)

// Separator joins path labels. Matches the Postgres ltree label separator.
const Separator = "."

// EncodeSegment maps an identifier (a UUID in practice) to a single
// path-safe label: lowercased, hyphens replaced with underscores. The
// substitution is bijective because underscores are rejected in the input,
// so two distinct ids can never collide.
func EncodeSegment(id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("%w: empty identifier", domain.ErrValidation)
	}

	id = strings.ToLower(id)
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return "", fmt.Errorf("%w: identifier contains reserved character %q", domain.ErrValidation, r)
		}
	}

	return strings.ReplaceAll(id, "-", "_"), nil
}

// ComposePath appends ownSegment to parentPath. An empty parentPath means
// this folder is a tenant root and its path is the segment alone.
func ComposePath(parentPath, ownSegment string) string {
	if parentPath == "" {
		return ownSegment
	}
	return parentPath + Separator + ownSegment
}

// SegmentCount returns the number of labels in path, which equals the
// folder's depth from the tenant root plus one. Empty paths count zero.
func SegmentCount(path string) int {
	if path == "" {
		return 0
	}
	return strings.Count(path, Separator) + 1
}

// Contains reports whether path equals ancestorPath or descends from it.
// The relation is on whole labels: "a.bc" is not contained by "a.b".
func Contains(ancestorPath, path string) bool {
	if ancestorPath == "" || path == "" {
		return false
	}
	if path == ancestorPath {
		return true
	}
	return strings.HasPrefix(path, ancestorPath+Separator)
}

// ParentPath returns path without its last label, or "" for a single-label
// (root) path.
func ParentPath(path string) string {
	idx := strings.LastIndex(path, Separator)
	if idx < 0 {
		return ""
	}
	return path[:idx]
}
