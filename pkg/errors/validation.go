package errors

import (
	"strings"
	"unicode"
)

// ValidatePrefix validates a preservation prefix.
// The prefix is prepended to a file's base name, so it must be a plain name
// fragment: non-empty, no path separators, no control characters.
func ValidatePrefix(prefix string) error {
	if prefix == "" {
		return New(ErrCodeInvalidInput, "preservation prefix cannot be empty")
	}
	if len(prefix) > 64 {
		return New(ErrCodeInvalidInput, "preservation prefix too long (max 64 characters)")
	}
	for _, r := range prefix {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "preservation prefix contains invalid control characters")
		}
	}
	if strings.ContainsAny(prefix, "/\\") {
		return New(ErrCodeInvalidInput, "preservation prefix cannot contain path separators")
	}
	if prefix == "." || prefix == ".." {
		return New(ErrCodeInvalidInput, "preservation prefix cannot be %q", prefix)
	}
	return nil
}

// ValidateAssetPath validates an asset path taken from a registry document.
// Registry paths are resolved against the project root, so they must stay
// inside it.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No parent directory segments (..)
func ValidateAssetPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidRegistry, "asset path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidRegistry, "asset path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRegistry, "asset path contains invalid characters")
		}
	}

	normalized := strings.ReplaceAll(path, "\\", "/")
	if strings.HasPrefix(normalized, "/") || (len(normalized) > 1 && normalized[1] == ':') {
		return New(ErrCodeInvalidRegistry, "asset path must be relative: %s", path)
	}

	for _, seg := range strings.Split(normalized, "/") {
		if seg == ".." {
			return New(ErrCodeInvalidRegistry, "asset path cannot contain parent segments (..): %s", path)
		}
	}

	return nil
}
