// Package slug derives URL-safe identifiers from post titles.
// Slugs are a lossy, deterministic transform and are NOT unique:
// posts are always looked up by numeric id, the slug is cosmetic.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonAlphanumeric matches any run of characters that is not a
	// lowercase letter or digit. Each run becomes a single hyphen.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
)

// Generate creates a URL-safe slug from a title.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(title string) string {
	result := strings.ToLower(strings.TrimSpace(title))
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}
