package render

import (
	"html/template"

	"github.com/armaan-yadav/apna-resume/internal/model"
)

// View is the data handed to a layout template.
type View struct {
	Template   model.TemplateID
	ThemeColor string

	Name     string
	JobTitle string
	Email    string
	Phone    string
	Address  string
	Links    []LinkView
	Summary  string

	Sections       []string
	SidebarSkills  bool
	Experience     []ExperienceView
	Education      []EducationView
	Skills         []SkillView
	Achievements   []model.Achievement
	Certifications []CertificationView
	CustomSections []CustomSectionView
}

type LinkView struct {
	Platform string
	Label    string
	URL      string
}

type ExperienceView struct {
	Title       string
	Employer    string
	Dates       string
	WorkSummary template.HTML
}

type EducationView struct {
	UniversityName string
	Degree         string
	Dates          string
	Description    string
}

// SkillView is either a labeled group or, for legacy entries, a single
// inline token.
type SkillView struct {
	Category string
	Skills   []string
	Token    string
}

func (s SkillView) IsGroup() bool { return s.Token == "" }

type CertificationView struct {
	Title    string
	Issuer   string
	Dates    string
	URL      string
	URLLabel string
}

type CustomSectionView struct {
	Title   string
	Content template.HTML
}

// separator returns the date separator of a layout.
func separator(id model.TemplateID) string {
	if id == model.TemplateClassic {
		return " to "
	}
	return " — "
}

// BuildView resolves template, color and section order for doc and
// flattens it into display strings.
func BuildView(id model.TemplateID, doc model.Resume) View {
	sep := separator(id)
	v := View{
		Template:      id,
		ThemeColor:    model.ResolveThemeColor(doc.ThemeColor),
		Name:          joinNonEmpty(" ", doc.FirstName, doc.LastName),
		JobTitle:      doc.JobTitle,
		Email:         doc.Email,
		Phone:         doc.Phone,
		Address:       doc.Address,
		Summary:       doc.Summary,
		SidebarSkills: id == model.TemplateModern,
	}

	for _, p := range model.Platforms {
		if link := doc.SocialLinks[p.Key]; link != "" {
			v.Links = append(v.Links, LinkView{Platform: p.Key, Label: p.Label, URL: link})
		}
	}

	for _, key := range model.NormalizeSectionOrder(doc.SectionOrder) {
		if key == model.SectionSkills && v.SidebarSkills {
			continue
		}
		v.Sections = append(v.Sections, string(key))
	}

	for _, e := range doc.Experience {
		v.Experience = append(v.Experience, ExperienceView{
			Title:       e.Title,
			Employer:    joinNonEmpty(" | ", e.CompanyName, joinNonEmpty(", ", e.City, e.State)),
			Dates:       DateCaption(e.StartDate, e.EndDate, sep),
			WorkSummary: template.HTML(e.WorkSummary),
		})
	}

	for _, e := range doc.Education {
		degree := e.Degree
		if e.Major != "" {
			degree = joinNonEmpty(" in ", e.Degree, e.Major)
		}
		v.Education = append(v.Education, EducationView{
			UniversityName: e.UniversityName,
			Degree:         degree,
			Dates:          DateCaption(e.StartDate, e.EndDate, sep),
			Description:    e.Description,
		})
	}

	for _, s := range doc.Skills {
		switch s.Shape {
		case model.SkillCategory:
			v.Skills = append(v.Skills, SkillView{Category: s.Category, Skills: s.Skills})
		case model.SkillLegacy:
			if s.Name != "" {
				v.Skills = append(v.Skills, SkillView{Token: s.Name})
			}
		}
	}

	v.Achievements = doc.Achievements

	for _, c := range doc.Certifications {
		v.Certifications = append(v.Certifications, CertificationView{
			Title:    c.Title,
			Issuer:   c.Issuer,
			Dates:    certificationDates(c.IssueDate, c.ExpiryDate),
			URL:      c.CredentialURL,
			URLLabel: urlLabel(c.CredentialURL),
		})
	}

	for _, c := range doc.CustomSections {
		v.CustomSections = append(v.CustomSections, CustomSectionView{Title: c.Title, Content: template.HTML(c.Content)})
	}
	return v
}
