package render

import (
	"testing"

	"github.com/armaan-yadav/apna-resume/internal/model"
)

func TestDateCaption(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   *string
		want  string
	}{
		{"ongoing", "Jan 2022", model.StringPtr(""), "Jan 2022 to Present"},
		{"closed", "Jan 2020", model.StringPtr("Dec 2021"), "Jan 2020 to Dec 2021"},
		{"no end", "Jan 2022", nil, "Jan 2022"},
		{"end only", "", model.StringPtr("Dec 2021"), "Dec 2021"},
		{"nothing", "", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateCaption(tt.start, tt.end, " to "); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestURLLabel(t *testing.T) {
	tests := map[string]string{
		"https://www.credly.com/badges/abc": "credly.com",
		"learn.microsoft.com/cert/1":        "microsoft.com",
		"https://example.co.uk/x":           "example.co.uk",
		"":                                  "",
	}
	for in, want := range tests {
		if got := urlLabel(in); got != want {
			t.Errorf("urlLabel(%q): expected %q, got %q", in, want, got)
		}
	}
}
