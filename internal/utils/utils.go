package utils

import (
	"strings"
	"unicode"

	"github.com/gofrs/uuid"
)

// GenerateState creates an unguessable OAuth state value
func GenerateState() (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// SanitizeString trims s and strips control characters other than newlines
// and tabs.
func SanitizeString(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s))
}
