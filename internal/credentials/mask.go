package credentials

import "strings"

const (
	maskSymbol    = "•"
	maskLength    = 20
	visibleSuffix = 4
)

var maskPrefix = strings.Repeat(maskSymbol, maskLength)

// MaskToken is for display only, the token can't be restored from it.
func MaskToken(token string) string {
	if token == "" {
		return ""
	}

	suffix := token
	if len(token) > visibleSuffix {
		suffix = token[len(token)-visibleSuffix:]
	}
	return maskPrefix + suffix
}

func IsMasked(input string) bool {
	return strings.HasPrefix(input, maskPrefix)
}

// ResolveToken picks the token to submit from the settings form. An untouched or still masked
// field means the stored token is kept as is.
func ResolveToken(input string, untouched bool, stored string) string {
	if untouched || IsMasked(input) {
		return stored
	}
	return strings.TrimSpace(input)
}
