package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrUnknownField = errors.New("unknown resume field")
	ErrFieldKind    = errors.New("operation does not match field kind")

	ErrInvalidSectionOrder = errors.New("section order must list each base section once")
)

// Field is a top-level key of the resume document.
type Field string

const (
	FieldFirstName      Field = "firstName"
	FieldLastName       Field = "lastName"
	FieldJobTitle       Field = "jobTitle"
	FieldAddress        Field = "address"
	FieldPhone          Field = "phone"
	FieldEmail          Field = "email"
	FieldThemeColor     Field = "themeColor"
	FieldTemplate       Field = "template"
	FieldSummary        Field = "summary"
	FieldSocialLinks    Field = "socialLinks"
	FieldExperience     Field = "experience"
	FieldEducation      Field = "education"
	FieldSkills         Field = "skills"
	FieldAchievements   Field = "achievements"
	FieldCertifications Field = "certifications"
	FieldCustomSections Field = "customSections"
	FieldSectionOrder   Field = "sectionOrder"
)

// FieldKind groups fields by how an update applies to them.
type FieldKind int

const (
	KindInvalid FieldKind = iota
	KindScalar
	KindList
	KindMap
)

func (k FieldKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "invalid"
	}
}

var fieldKinds = map[Field]FieldKind{
	FieldFirstName:      KindScalar,
	FieldLastName:       KindScalar,
	FieldJobTitle:       KindScalar,
	FieldAddress:        KindScalar,
	FieldPhone:          KindScalar,
	FieldEmail:          KindScalar,
	FieldThemeColor:     KindScalar,
	FieldTemplate:       KindScalar,
	FieldSummary:        KindScalar,
	FieldSocialLinks:    KindMap,
	FieldExperience:     KindList,
	FieldEducation:      KindList,
	FieldSkills:         KindList,
	FieldAchievements:   KindList,
	FieldCertifications: KindList,
	FieldCustomSections: KindList,
	FieldSectionOrder:   KindList,
}

// IdentityFields are the scalar fields saved by the personal details form.
var IdentityFields = []Field{FieldFirstName, FieldLastName, FieldJobTitle, FieldAddress, FieldPhone, FieldEmail}

func (f Field) Kind() FieldKind { return fieldKinds[f] }

func (f Field) Valid() bool { return f.Kind() != KindInvalid }

func kindError(f Field, want FieldKind) error {
	if !f.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	return fmt.Errorf("%w: %s is a %s field, not %s", ErrFieldKind, f, f.Kind(), want)
}

// Patch is a set of top-level fields to overwrite in a stored document.
type Patch map[Field]any

// Scalar returns the string value of a scalar field.
func (r Resume) Scalar(f Field) (string, error) {
	switch f {
	case FieldFirstName:
		return r.FirstName, nil
	case FieldLastName:
		return r.LastName, nil
	case FieldJobTitle:
		return r.JobTitle, nil
	case FieldAddress:
		return r.Address, nil
	case FieldPhone:
		return r.Phone, nil
	case FieldEmail:
		return r.Email, nil
	case FieldThemeColor:
		return r.ThemeColor, nil
	case FieldTemplate:
		return r.Template, nil
	case FieldSummary:
		return r.Summary, nil
	}
	return "", kindError(f, KindScalar)
}

// SetScalar overwrites a scalar field.
func (r *Resume) SetScalar(f Field, v string) error {
	switch f {
	case FieldFirstName:
		r.FirstName = v
	case FieldLastName:
		r.LastName = v
	case FieldJobTitle:
		r.JobTitle = v
	case FieldAddress:
		r.Address = v
	case FieldPhone:
		r.Phone = v
	case FieldEmail:
		r.Email = v
	case FieldThemeColor:
		r.ThemeColor = v
	case FieldTemplate:
		r.Template = v
	case FieldSummary:
		r.Summary = v
	default:
		return kindError(f, KindScalar)
	}
	return nil
}

// MergeMap shallow-merges kv into a keyed field. Existing keys not present
// in kv are kept.
func (r *Resume) MergeMap(f Field, kv map[string]string) error {
	if f != FieldSocialLinks {
		return kindError(f, KindMap)
	}
	if r.SocialLinks == nil {
		r.SocialLinks = make(map[string]string, len(kv))
	}
	for k, v := range kv {
		r.SocialLinks[k] = v
	}
	return nil
}

// SetList replaces a list field wholesale. The value must be the slice type
// of the field; it is copied and rich text in it is sanitized.
func (r *Resume) SetList(f Field, v any) error {
	mismatch := func() error {
		if f.Kind() != KindList {
			return kindError(f, KindList)
		}
		return fmt.Errorf("%w: %s cannot hold %T", ErrFieldKind, f, v)
	}
	switch f {
	case FieldExperience:
		l, ok := v.([]Experience)
		if !ok {
			return mismatch()
		}
		r.Experience = cloneExperience(l)
		sanitizeExperience(r.Experience)
	case FieldEducation:
		l, ok := v.([]Education)
		if !ok {
			return mismatch()
		}
		r.Education = cloneEducation(l)
	case FieldSkills:
		l, ok := v.([]SkillEntry)
		if !ok {
			return mismatch()
		}
		r.Skills = CloneSkills(l)
	case FieldAchievements:
		l, ok := v.([]Achievement)
		if !ok {
			return mismatch()
		}
		r.Achievements = cloneSlice(l)
	case FieldCertifications:
		l, ok := v.([]Certification)
		if !ok {
			return mismatch()
		}
		r.Certifications = cloneSlice(l)
	case FieldCustomSections:
		l, ok := v.([]CustomSection)
		if !ok {
			return mismatch()
		}
		r.CustomSections = cloneSlice(l)
		sanitizeCustomSections(r.CustomSections)
	case FieldSectionOrder:
		l, ok := v.([]SectionKey)
		if !ok {
			return mismatch()
		}
		if !IsValidSectionOrder(l) {
			return fmt.Errorf("%w: %v", ErrInvalidSectionOrder, l)
		}
		r.SectionOrder = cloneSlice(l)
	default:
		return mismatch()
	}
	return nil
}

// DecodeListValue decodes raw JSON into the slice type of a list field, ready
// for SetList.
func DecodeListValue(f Field, raw json.RawMessage) (any, error) {
	var (
		v   any
		err error
	)
	switch f {
	case FieldExperience:
		v, err = decodeList[Experience](raw)
	case FieldEducation:
		v, err = decodeList[Education](raw)
	case FieldSkills:
		v, err = decodeList[SkillEntry](raw)
	case FieldAchievements:
		v, err = decodeList[Achievement](raw)
	case FieldCertifications:
		v, err = decodeList[Certification](raw)
	case FieldCustomSections:
		v, err = decodeList[CustomSection](raw)
	case FieldSectionOrder:
		v, err = decodeList[SectionKey](raw)
	default:
		return nil, kindError(f, KindList)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", f, err)
	}
	return v, nil
}

func decodeList[T any](raw json.RawMessage) ([]T, error) {
	out := []T{}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Apply returns a copy of r with every patched field overwritten, the same
// way a JSONB "document || patch" update behaves in storage.
func (r Resume) Apply(p Patch) (Resume, error) {
	base, err := json.Marshal(r)
	if err != nil {
		return Resume{}, err
	}
	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &doc); err != nil {
		return Resume{}, err
	}
	for f, v := range p {
		if !f.Valid() {
			return Resume{}, fmt.Errorf("%w: %q", ErrUnknownField, f)
		}
		b, err := json.Marshal(v)
		if err != nil {
			return Resume{}, fmt.Errorf("encode %s: %w", f, err)
		}
		doc[string(f)] = b
	}
	merged, err := json.Marshal(doc)
	if err != nil {
		return Resume{}, err
	}
	var out Resume
	if err := json.Unmarshal(merged, &out); err != nil {
		return Resume{}, err
	}
	return out, nil
}

// Value returns the current value of any field, suitable for a Patch.
func (r Resume) Value(f Field) (any, error) {
	switch f.Kind() {
	case KindScalar:
		return r.Scalar(f)
	case KindMap:
		links := make(map[string]string, len(r.SocialLinks))
		for k, v := range r.SocialLinks {
			links[k] = v
		}
		return links, nil
	case KindList:
		n := r.Normalized()
		switch f {
		case FieldExperience:
			return n.Experience, nil
		case FieldEducation:
			return n.Education, nil
		case FieldSkills:
			return n.Skills, nil
		case FieldAchievements:
			return n.Achievements, nil
		case FieldCertifications:
			return n.Certifications, nil
		case FieldCustomSections:
			return n.CustomSections, nil
		case FieldSectionOrder:
			return NormalizeSectionOrder(n.SectionOrder), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownField, f)
}
