package credentials

import (
	"regexp"
	"strings"
)

// TokenPrefix is what Notion assigns to internal integration tokens.
const TokenPrefix = "ntn_"

var collectionIDPatterns = []*regexp.Regexp{
	// web url: notion.so/<workspace>/<id> or notion.so/<workspace>/<Page-Title>-<id>
	regexp.MustCompile(`(?i)notion\.(?:so|site)/(?:[^/?#]+/)?(?:[^/?#]*-)?([a-f0-9]{32})`),
	// dashed uuid
	regexp.MustCompile(`(?i)([a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12})`),
	// bare id
	regexp.MustCompile(`(?i)([a-f0-9]{32})`),
}

var (
	bareIDPattern   = regexp.MustCompile(`(?i)^[0-9a-f]{32}$`)
	dashedIDPattern = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
)

// NormalizeCollectionID extracts a database id from a url, a dashed uuid or a bare id.
// Input that matches none of them is returned trimmed and must still be validated.
func NormalizeCollectionID(input string) string {
	input = strings.TrimSpace(input)

	for _, pattern := range collectionIDPatterns {
		if match := pattern.FindStringSubmatch(input); match != nil {
			return strings.ReplaceAll(match[1], "-", "")
		}
	}

	return input
}

func IsValidCollectionID(s string) bool {
	return bareIDPattern.MatchString(s) || dashedIDPattern.MatchString(s)
}

func IsValidToken(s string) bool {
	return strings.HasPrefix(s, TokenPrefix)
}
