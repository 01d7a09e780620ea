package model

// Go models for a stored resume document. The JSON shape matches
// resume.schema.json and the documents written by earlier clients.

type Experience struct {
	Title       string  `json:"title,omitempty"`
	CompanyName string  `json:"companyName,omitempty"`
	City        string  `json:"city,omitempty"`
	State       string  `json:"state,omitempty"`
	StartDate   string  `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"` // nil: absent, "": ongoing
	WorkSummary string  `json:"workSummary,omitempty"`
}

type Education struct {
	UniversityName string  `json:"universityName,omitempty"`
	Degree         string  `json:"degree,omitempty"`
	Major          string  `json:"major,omitempty"`
	StartDate      string  `json:"startDate,omitempty"`
	EndDate        *string `json:"endDate,omitempty"`
	Description    string  `json:"description,omitempty"`
}

type Achievement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date,omitempty"`
}

type Certification struct {
	Title         string `json:"title"`
	Issuer        string `json:"issuer"`
	IssueDate     string `json:"issueDate,omitempty"`
	ExpiryDate    string `json:"expiryDate,omitempty"`
	CredentialURL string `json:"credentialUrl,omitempty"`
}

type CustomSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Resume is the whole editable document. Absent lists and maps are treated
// as empty everywhere; use Normalized when a caller needs non-nil values.
type Resume struct {
	ID string `json:"id,omitempty"`

	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	JobTitle  string `json:"jobTitle,omitempty"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`

	ThemeColor  string            `json:"themeColor,omitempty"`
	Template    string            `json:"template,omitempty"`
	SocialLinks map[string]string `json:"socialLinks,omitempty"`
	Summary     string            `json:"summary,omitempty"`

	Experience     []Experience    `json:"experience,omitempty"`
	Education      []Education     `json:"education,omitempty"`
	Skills         []SkillEntry    `json:"skills,omitempty"`
	Achievements   []Achievement   `json:"achievements,omitempty"`
	Certifications []Certification `json:"certifications,omitempty"`
	CustomSections []CustomSection `json:"customSections,omitempty"`
	SectionOrder   []SectionKey    `json:"sectionOrder,omitempty"`
}

// StringPtr is a helper for building optional end dates.
func StringPtr(s string) *string { return &s }

// Clone returns a deep copy that shares no slices, maps or pointers with r.
func (r Resume) Clone() Resume {
	out := r
	if r.SocialLinks != nil {
		out.SocialLinks = make(map[string]string, len(r.SocialLinks))
		for k, v := range r.SocialLinks {
			out.SocialLinks[k] = v
		}
	}
	out.Experience = cloneExperience(r.Experience)
	out.Education = cloneEducation(r.Education)
	out.Skills = CloneSkills(r.Skills)
	out.Achievements = cloneSlice(r.Achievements)
	out.Certifications = cloneSlice(r.Certifications)
	out.CustomSections = cloneSlice(r.CustomSections)
	out.SectionOrder = cloneSlice(r.SectionOrder)
	return out
}

// Normalized returns a deep copy with every absent list or map replaced by
// an empty one.
func (r Resume) Normalized() Resume {
	out := r.Clone()
	if out.SocialLinks == nil {
		out.SocialLinks = map[string]string{}
	}
	if out.Experience == nil {
		out.Experience = []Experience{}
	}
	if out.Education == nil {
		out.Education = []Education{}
	}
	if out.Skills == nil {
		out.Skills = []SkillEntry{}
	}
	if out.Achievements == nil {
		out.Achievements = []Achievement{}
	}
	if out.Certifications == nil {
		out.Certifications = []Certification{}
	}
	if out.CustomSections == nil {
		out.CustomSections = []CustomSection{}
	}
	if out.SectionOrder == nil {
		out.SectionOrder = []SectionKey{}
	}
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func cloneEnd(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneExperience(in []Experience) []Experience {
	out := cloneSlice(in)
	for i := range out {
		out[i].EndDate = cloneEnd(out[i].EndDate)
	}
	return out
}

func cloneEducation(in []Education) []Education {
	out := cloneSlice(in)
	for i := range out {
		out[i].EndDate = cloneEnd(out[i].EndDate)
	}
	return out
}
