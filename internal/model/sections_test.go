package model

import (
	"reflect"
	"testing"
)

func TestNormalizeSectionOrder(t *testing.T) {
	custom := []SectionKey{SectionSkills, SectionSummary, SectionExperience, SectionEducation}
	tests := []struct {
		name string
		in   []SectionKey
		want []SectionKey
	}{
		{"empty", nil, DefaultSectionOrder()},
		{"too short", []SectionKey{SectionSummary}, DefaultSectionOrder()},
		{"duplicate", []SectionKey{SectionSummary, SectionSummary, SectionEducation, SectionSkills}, DefaultSectionOrder()},
		{"unknown key", []SectionKey{SectionSummary, "projects", SectionEducation, SectionSkills}, DefaultSectionOrder()},
		{"valid permutation", custom, custom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSectionOrder(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestResolveTemplateAndTheme(t *testing.T) {
	if ResolveTemplate("bogus") != TemplateClassic || ResolveTemplate("") != TemplateClassic {
		t.Error("unknown template should resolve to classic")
	}
	if ResolveTemplate("modern") != TemplateModern {
		t.Error("expected modern")
	}
	if ResolveThemeColor("") != ThemePalette[0] {
		t.Error("empty color should resolve to palette default")
	}
	if ResolveThemeColor("red; background:url(x)") != ThemePalette[0] {
		t.Error("non-token color should resolve to palette default")
	}
	if ResolveThemeColor("#2563eb") != "#2563eb" {
		t.Error("valid color should be kept")
	}
}
