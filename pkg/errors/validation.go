package errors

import (
	"net/url"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/matzehuels/pathfinder/pkg/pathfind"
)

// graphNameRegex matches storable graph names: a leading alphanumeric
// followed by alphanumerics, dots, dashes and underscores.
var graphNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateGraphName validates a name under which a graph is stored.
// Names become file names and database keys, so the rules are conservative:
//   - No empty names
//   - Maximum length of 128 characters
//   - No path separators, traversal sequences or control characters
func ValidateGraphName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "graph name cannot be empty")
	}

	const maxNameLength = 128
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "graph name too long (max %d characters)", maxNameLength)
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidName, "graph name cannot contain %q", "..")
	}

	if !graphNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid graph name: %q", name)
	}

	return nil
}

// ValidateAlgorithm validates an algorithm name and returns the parsed value.
func ValidateAlgorithm(name string) (pathfind.Algorithm, error) {
	alg, err := pathfind.ParseAlgorithm(name)
	if err != nil {
		return alg, Wrap(ErrCodeInvalidAlgorithm, err, "algorithm must be one of %s", strings.Join(pathfind.Algorithms, ", "))
	}
	return alg, nil
}

// ValidatePath validates a relative file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateURL validates a backend connection URL. When schemes are given the
// URL must use one of them.
func ValidateURL(rawURL string, schemes ...string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "malformed URL")
	}
	if u.Scheme == "" || u.Host == "" {
		return New(ErrCodeInvalidInput, "URL must have a scheme and a host")
	}
	if len(schemes) > 0 && !slices.Contains(schemes, u.Scheme) {
		return New(ErrCodeInvalidInput, "URL scheme %q not supported (want %s)", u.Scheme, strings.Join(schemes, ", "))
	}

	return nil
}
