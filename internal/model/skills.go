package model

import (
	"bytes"
	"encoding/json"
)

// SkillShape tags which of the stored skill layouts an entry carries.
type SkillShape int

const (
	SkillUnknown SkillShape = iota
	SkillCategory
	SkillLegacy
)

// Default category names offered by the skills editor.
var DefaultSkillCategories = []string{"Languages", "Frameworks", "Tools", "Databases", "Other"}

// SkillEntry is either a category group {category, skills[]} or a legacy
// rated skill {name, rating}. The shape is decided once when decoding.
type SkillEntry struct {
	Shape    SkillShape
	Category string
	Skills   []string
	Name     string
	Rating   *float64

	hasRating bool // rating key present, even when null
	raw       json.RawMessage
}

func NewSkillCategory(category string, skills ...string) SkillEntry {
	return SkillEntry{Shape: SkillCategory, Category: category, Skills: append([]string{}, skills...)}
}

func NewLegacySkill(name string, rating float64) SkillEntry {
	return SkillEntry{Shape: SkillLegacy, Name: name, Rating: &rating, hasRating: true}
}

// hasLegacySignature reports whether the entry carries both the name and
// the rating key. A null rating still counts.
func (s SkillEntry) hasLegacySignature() bool {
	return s.Shape == SkillLegacy && (s.hasRating || s.Rating != nil)
}

func (s *SkillEntry) UnmarshalJSON(b []byte) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(b, &keys); err != nil {
		return err
	}
	*s = SkillEntry{}
	_, hasCategory := keys["category"]
	_, hasSkills := keys["skills"]
	_, hasName := keys["name"]
	_, hasRating := keys["rating"]
	switch {
	case hasCategory || hasSkills:
		var v struct {
			Category string   `json:"category"`
			Skills   []string `json:"skills"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = NewSkillCategory(v.Category, v.Skills...)
	case hasName:
		var v struct {
			Name   string   `json:"name"`
			Rating *float64 `json:"rating"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		s.Shape = SkillLegacy
		s.Name = v.Name
		s.Rating = v.Rating
		s.hasRating = hasRating
	default:
		s.raw = append(json.RawMessage(nil), bytes.TrimSpace(b)...)
	}
	return nil
}

func (s SkillEntry) MarshalJSON() ([]byte, error) {
	switch s.Shape {
	case SkillCategory:
		skills := s.Skills
		if skills == nil {
			skills = []string{}
		}
		return json.Marshal(struct {
			Category string   `json:"category"`
			Skills   []string `json:"skills"`
		}{s.Category, skills})
	case SkillLegacy:
		if s.hasRating && s.Rating == nil {
			return json.Marshal(struct {
				Name   string   `json:"name"`
				Rating *float64 `json:"rating"`
			}{s.Name, nil})
		}
		return json.Marshal(struct {
			Name   string   `json:"name"`
			Rating *float64 `json:"rating,omitempty"`
		}{s.Name, s.Rating})
	default:
		if len(s.raw) > 0 {
			return s.raw, nil
		}
		return []byte("{}"), nil
	}
}

// CloneSkills deep-copies a skills list.
func CloneSkills(in []SkillEntry) []SkillEntry {
	if in == nil {
		return nil
	}
	out := make([]SkillEntry, len(in))
	for i, s := range in {
		out[i] = s
		if s.Skills != nil {
			out[i].Skills = append([]string{}, s.Skills...)
		}
		if s.Rating != nil {
			r := *s.Rating
			out[i].Rating = &r
		}
	}
	return out
}

// MigrateSkills converts stored skills into the category layout used by the
// editor. An empty list becomes a single empty "Languages" group. A list
// whose first entry is a legacy rated skill is collapsed into one "Other"
// group holding every non-empty name, in order; ratings are dropped.
// Anything else is returned unchanged. MigrateSkills(MigrateSkills(x)) ==
// MigrateSkills(x).
func MigrateSkills(entries []SkillEntry) []SkillEntry {
	if len(entries) == 0 {
		return []SkillEntry{NewSkillCategory("Languages")}
	}
	if !entries[0].hasLegacySignature() {
		return CloneSkills(entries)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Name != "" {
			names = append(names, e.Name)
		}
	}
	return []SkillEntry{NewSkillCategory("Other", names...)}
}
