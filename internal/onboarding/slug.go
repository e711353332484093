package onboarding

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify derives a URL slug from a listing title: diacritics stripped,
// lowercased, non-alphanumeric runs collapsed to single hyphens.
func Slugify(title string) string {
	stripped := stripDiacritics(title)
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(stripped) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// stripDiacritics decomposes the string and drops combining marks, so
// "Chalet Alpin à Megève" becomes "Chalet Alpin a Megeve".
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// SlugSuffix returns a short base36 token derived from the current time,
// appended to a slug when the base form is already taken by another
// property.
func SlugSuffix(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 36)
}
