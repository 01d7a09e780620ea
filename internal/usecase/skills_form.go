package usecase

import (
	"strings"

	"github.com/armaan-yadav/apna-resume/internal/model"
)

// SkillsForm edits the skills section as category groups. Stored legacy
// entries are migrated into the draft when the form is created; nothing is
// written back until Save.
type SkillsForm struct {
	*ListForm[model.SkillEntry]
}

func NewSkillsForm(store *Store, gw Gateway) *SkillsForm {
	lf := newListForm(model.FieldSkills, store, nil, nil, gw.AddSkillToResume)
	lf.clone = model.CloneSkills
	lf.items = model.MigrateSkills(store.Snapshot().Skills)
	return &SkillsForm{ListForm: lf}
}

// AddCategory appends an empty group and returns its index.
func (f *SkillsForm) AddCategory(name string) int {
	return f.Add(model.NewSkillCategory(name))
}

func (f *SkillsForm) RenameCategory(i int, name string) error {
	return f.editCategory(i, func(e *model.SkillEntry) error {
		e.Category = name
		return nil
	})
}

// AddSkill appends a trimmed skill name to group i.
func (f *SkillsForm) AddSkill(i int, skill string) error {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return ErrBlankSkill
	}
	return f.editCategory(i, func(e *model.SkillEntry) error {
		e.Skills = append(e.Skills, skill)
		return nil
	})
}

func (f *SkillsForm) RemoveSkill(i, j int) error {
	return f.editCategory(i, func(e *model.SkillEntry) error {
		if j < 0 || j >= len(e.Skills) {
			return outOfRange(j, len(e.Skills))
		}
		e.Skills = append(e.Skills[:j], e.Skills[j+1:]...)
		return nil
	})
}

func (f *SkillsForm) RemoveCategory(i int) error {
	return f.Remove(i)
}

func (f *SkillsForm) editCategory(i int, fn func(*model.SkillEntry) error) error {
	return f.update(func(items []model.SkillEntry) ([]model.SkillEntry, error) {
		if i < 0 || i >= len(items) {
			return nil, outOfRange(i, len(items))
		}
		if items[i].Shape != model.SkillCategory {
			return nil, ErrNotCategory
		}
		if err := fn(&items[i]); err != nil {
			return nil, err
		}
		return items, nil
	})
}
