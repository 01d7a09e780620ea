package model

// TemplateID names a visual layout.
type TemplateID string

const (
	TemplateClassic TemplateID = "classic"
	TemplateModern  TemplateID = "modern"
	TemplateMinimal TemplateID = "minimal"
)

// TemplateInfo describes a layout in the catalog.
type TemplateInfo struct {
	ID          TemplateID `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Thumbnail   string     `json:"thumbnail"`
}

var Templates = []TemplateInfo{
	{ID: TemplateClassic, Name: "Classic", Description: "Traditional professional layout with top border accent", Thumbnail: "/img/templates/classic.png"},
	{ID: TemplateModern, Name: "Modern", Description: "Two-column layout with sidebar for skills and contact", Thumbnail: "/img/templates/modern.png"},
	{ID: TemplateMinimal, Name: "Minimal", Description: "Clean and simple design with elegant typography", Thumbnail: "/img/templates/minimal.png"},
}

func IsKnownTemplate(id string) bool {
	for _, t := range Templates {
		if string(t.ID) == id {
			return true
		}
	}
	return false
}

// ResolveTemplate maps a stored template name to a known layout, falling
// back to classic.
func ResolveTemplate(id string) TemplateID {
	if IsKnownTemplate(id) {
		return TemplateID(id)
	}
	return TemplateClassic
}
