// Package storage persists résumé binaries on the local filesystem or in an
// S3-compatible bucket.
package storage

import (
	"errors"
	"path"
	"strings"
)

// ErrNotFound is returned by Open when the key does not exist.
var ErrNotFound = errors.New("storage: object not found")

// ErrInvalidKey rejects keys that would escape the storage root.
var ErrInvalidKey = errors.New("storage: invalid key")

// cleanKey normalizes a slash-separated key and refuses absolute or
// parent-relative paths.
func cleanKey(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}
