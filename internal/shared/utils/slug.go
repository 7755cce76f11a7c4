package utils

import (
	"regexp"
	"strings"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s-]+`)
	slugWhitespace   = regexp.MustCompile(`\s+`)
)

// NormalizeTypeSlug chuẩn hóa product type thành slug
// "Home Decor"   → "home-decor"
// " Wall  Art! " → "wall-art"
func NormalizeTypeSlug(input string) string {
	// Step 1: Lowercase + trim
	slug := strings.ToLower(strings.TrimSpace(input))

	// Step 2: Remove special characters (giữ a-z, 0-9, whitespace, dashes)
	slug = slugInvalidChars.ReplaceAllString(slug, "")

	// Step 3: Collapse whitespace runs thành single dash
	slug = slugWhitespace.ReplaceAllString(slug, "-")

	return slug
}
