package usecase

import (
	"net/url"
	"strings"

	"github.com/armaan-yadav/apna-resume/internal/model"
)

func required(section model.Field, i int, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Section: section, Index: i, Field: field, Reason: "is required"}
	}
	return nil
}

func validateAchievement(i int, a model.Achievement) error {
	if err := required(model.FieldAchievements, i, "title", a.Title); err != nil {
		return err
	}
	return required(model.FieldAchievements, i, "description", a.Description)
}

func validateCertification(i int, c model.Certification) error {
	if err := required(model.FieldCertifications, i, "title", c.Title); err != nil {
		return err
	}
	return required(model.FieldCertifications, i, "issuer", c.Issuer)
}

func validateCustomSection(i int, c model.CustomSection) error {
	if err := required(model.FieldCustomSections, i, "title", c.Title); err != nil {
		return err
	}
	return required(model.FieldCustomSections, i, "content", c.Content)
}

// validateSocialLink accepts empty values and absolute http(s) URLs.
func validateSocialLink(platform, link string) error {
	if link == "" {
		return nil
	}
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ValidationError{Section: model.FieldSocialLinks, Index: -1, Field: platform, Reason: "must be an http(s) URL"}
	}
	return nil
}
