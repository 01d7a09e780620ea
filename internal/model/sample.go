package model

// SampleResume returns the filled-in document used for template previews
// and catalog thumbnails.
func SampleResume() Resume {
	return Resume{
		FirstName:  "Alex",
		LastName:   "Johnson",
		JobTitle:   "Senior Software Engineer",
		Address:    "San Francisco, CA",
		Phone:      "(555) 123-4567",
		Email:      "alex.johnson@example.com",
		ThemeColor: ThemePalette[1],
		SocialLinks: map[string]string{
			"linkedin":  "https://linkedin.com/in/alexjohnson",
			"github":    "https://github.com/alexjohnson",
			"portfolio": "https://alexjohnson.dev",
		},
		Summary: "Software engineer with 8+ years of experience building scalable web applications and distributed systems. Comfortable across the stack, with a focus on reliable backend services and mentoring.",
		Experience: []Experience{
			{
				Title:       "Senior Software Engineer",
				CompanyName: "TechCorp Inc.",
				City:        "San Francisco",
				State:       "CA",
				StartDate:   "Jan 2021",
				EndDate:     StringPtr(""),
				WorkSummary: "<ul><li>Led a team of 5 engineers building a microservices platform serving 2M+ users</li><li>Cut API response times by 40% through caching and query optimization</li></ul>",
			},
			{
				Title:       "Software Engineer",
				CompanyName: "StartupXYZ",
				City:        "Austin",
				State:       "TX",
				StartDate:   "Jun 2017",
				EndDate:     StringPtr("Dec 2020"),
				WorkSummary: "<ul><li>Built real-time analytics dashboards</li><li>Introduced CI/CD pipelines and automated testing</li></ul>",
			},
		},
		Education: []Education{
			{
				UniversityName: "University of California, Berkeley",
				Degree:         "Bachelor of Science",
				Major:          "Computer Science",
				StartDate:      "Aug 2013",
				EndDate:        StringPtr("May 2017"),
				Description:    "Graduated with honors. Teaching assistant for Data Structures.",
			},
		},
		Skills: []SkillEntry{
			NewSkillCategory("Languages", "JavaScript", "TypeScript", "Python", "Go"),
			NewSkillCategory("Frameworks", "React", "Node.js", "Express"),
			NewSkillCategory("Tools", "Docker", "Kubernetes", "AWS"),
			NewSkillCategory("Databases", "PostgreSQL", "MongoDB", "Redis"),
		},
		Achievements: []Achievement{
			{Title: "Engineering Excellence Award", Description: "Recognized for leading the platform migration", Date: "2022"},
		},
		Certifications: []Certification{
			{
				Title:         "AWS Certified Solutions Architect",
				Issuer:        "Amazon Web Services",
				IssueDate:     "Mar 2022",
				ExpiryDate:    "Mar 2025",
				CredentialURL: "https://www.credly.com/badges/example",
			},
		},
		CustomSections: []CustomSection{
			{Title: "Open Source", Content: "<p>Maintainer of a popular React component library with 2k+ stars.</p>"},
		},
		SectionOrder: DefaultSectionOrder(),
	}
}
