package model

import "regexp"

// ThemePalette is the fixed set of accent colors offered to users. The
// first entry is the fallback when a document has no color.
var ThemePalette = []string{
	"#ff6666",
	"#2563eb",
	"#16a34a",
	"#9333ea",
	"#ea580c",
	"#0f172a",
	"#db2777",
	"#0891b2",
}

var colorToken = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// IsColorToken reports whether c is a #rgb or #rrggbb color.
func IsColorToken(c string) bool { return colorToken.MatchString(c) }

// ResolveThemeColor returns c, or the palette default when c is empty or
// not a color token.
func ResolveThemeColor(c string) string {
	if IsColorToken(c) {
		return c
	}
	return ThemePalette[0]
}
