package model

// SectionKey names one of the reorderable base sections.
type SectionKey string

const (
	SectionSummary    SectionKey = "summary"
	SectionExperience SectionKey = "experience"
	SectionEducation  SectionKey = "education"
	SectionSkills     SectionKey = "skills"
)

var defaultSectionOrder = [...]SectionKey{SectionSummary, SectionExperience, SectionEducation, SectionSkills}

// DefaultSectionOrder returns a fresh copy of the default ordering.
func DefaultSectionOrder() []SectionKey {
	out := make([]SectionKey, len(defaultSectionOrder))
	copy(out, defaultSectionOrder[:])
	return out
}

func IsSectionKey(k SectionKey) bool {
	for _, d := range defaultSectionOrder {
		if d == k {
			return true
		}
	}
	return false
}

// IsValidSectionOrder reports whether order is a permutation of the four
// base section keys.
func IsValidSectionOrder(order []SectionKey) bool {
	if len(order) != len(defaultSectionOrder) {
		return false
	}
	seen := make(map[SectionKey]bool, len(order))
	for _, k := range order {
		if !IsSectionKey(k) || seen[k] {
			return false
		}
		seen[k] = true
	}
	return true
}

// NormalizeSectionOrder returns a copy of order when it is valid and the
// default ordering otherwise.
func NormalizeSectionOrder(order []SectionKey) []SectionKey {
	if !IsValidSectionOrder(order) {
		return DefaultSectionOrder()
	}
	return cloneSlice(order)
}
