package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// ValidateIdentifier validates an entity identifier.
//
// The validation rules are intentionally loose, since JSON-LD allows almost
// any IRI or relative reference:
//   - No empty identifiers
//   - No control characters
//   - No null bytes
func ValidateIdentifier(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "identifier cannot be empty")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "identifier %q contains control characters", id)
		}
	}

	return nil
}

// IsAbsoluteURI reports whether id carries a URI scheme (https:, mailto:,
// urn:, ...). Such identifiers never name content inside a package.
func IsAbsoluteURI(id string) bool {
	u, err := url.Parse(id)
	if err != nil {
		return false
	}
	// A single-letter scheme is a Windows drive, not a URI.
	return len(u.Scheme) > 1
}

// ValidatePath validates an entity identifier used as a path inside a
// package. It prevents path traversal when content is resolved or persisted.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - No URI scheme (web-based entities have no local content)
//   - No absolute paths (must be relative)
//   - No path traversal segments (..)
//   - No backslashes (Windows-style paths)
//
// A trailing slash, which marks a directory entity, is accepted.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if IsAbsoluteURI(path) {
		return New(ErrCodeInvalidPath, "path %q is an absolute URI", path)
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}
