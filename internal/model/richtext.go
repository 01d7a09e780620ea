package model

import "github.com/microcosm-cc/bluemonday"

var richTextPolicy = bluemonday.UGCPolicy()

// SanitizeRichText strips markup that is unsafe to embed verbatim in a
// rendered page, keeping the formatting tags an editor produces.
func SanitizeRichText(s string) string {
	if s == "" {
		return s
	}
	return richTextPolicy.Sanitize(s)
}

// SanitizeRichText cleans every rich-text field of the document in place.
func (r *Resume) SanitizeRichText() {
	sanitizeExperience(r.Experience)
	sanitizeCustomSections(r.CustomSections)
}

func sanitizeExperience(list []Experience) {
	for i := range list {
		list[i].WorkSummary = SanitizeRichText(list[i].WorkSummary)
	}
}

func sanitizeCustomSections(list []CustomSection) {
	for i := range list {
		list[i].Content = SanitizeRichText(list[i].Content)
	}
}

// SanitizeCustomSections returns a copy of list with every content field
// sanitized.
func SanitizeCustomSections(list []CustomSection) []CustomSection {
	out := cloneSlice(list)
	sanitizeCustomSections(out)
	return out
}
