package feed

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase canonicalizes a display name to title case; source sites list
// names in inconsistent casing.
func TitleCase(s string) string {
	// Casers are stateful, so one is created per call.
	return cases.Title(language.English).String(s)
}
