package utils

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

const maxSlugLength = 24

// GenerateProjectID creates a readable, unique project ID.
// Format: {slug-of-name}-{8charHexUUID}
//
// Example:
//   - Input: name="Main Base (Nauvis)"
//   - Output: "main-base-nauvis-a3f8e2b1"
func GenerateProjectID(name string) string {
	return slugify(name) + "-" + generateShortUUID()
}

// slugify lowercases name and joins its alphanumeric runs with hyphens.
// Names without any letter or digit become "project".
func slugify(name string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	slug := []rune(b.String())
	if len(slug) == 0 {
		return "project"
	}
	if len(slug) > maxSlugLength {
		slug = slug[:maxSlugLength]
	}
	return strings.TrimRight(string(slug), "-")
}

// generateShortUUID creates an 8-character hex string from a UUID
func generateShortUUID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}
