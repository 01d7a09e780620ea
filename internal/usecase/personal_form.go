package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/armaan-yadav/apna-resume/internal/model"
)

// sectionPersonal labels save errors of the personal details form.
const sectionPersonal model.Field = "personal"

// PersonalDetailsForm edits identity fields and social links directly in
// the store, and saves them together.
type PersonalDetailsForm struct {
	store   *Store
	gateway Gateway

	mu      sync.Mutex
	state   FormState
	lastErr error
}

func NewPersonalDetailsForm(store *Store, gw Gateway) *PersonalDetailsForm {
	return &PersonalDetailsForm{store: store, gateway: gw, state: FormEditing}
}

// Set updates one identity field.
func (f *PersonalDetailsForm) Set(field model.Field, value string) error {
	if !isIdentityField(field) {
		return fmt.Errorf("%w: %s is not a personal detail", model.ErrFieldKind, field)
	}
	if err := f.store.SetScalar(field, value); err != nil {
		return err
	}
	f.setState(FormEditing, nil)
	return nil
}

// SetSocialLink updates one platform link, keeping the others.
func (f *PersonalDetailsForm) SetSocialLink(platform, link string) error {
	if !model.IsPlatform(platform) {
		return fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
	}
	if err := f.store.MergeMap(model.FieldSocialLinks, map[string]string{platform: link}); err != nil {
		return err
	}
	f.setState(FormEditing, nil)
	return nil
}

func (f *PersonalDetailsForm) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *PersonalDetailsForm) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Save persists identity fields and the social link map.
func (f *PersonalDetailsForm) Save(ctx context.Context) error {
	f.setState(FormValidating, nil)
	doc := f.store.Snapshot()

	links := make(map[string]string, len(doc.SocialLinks))
	for _, p := range model.Platforms {
		link, ok := doc.SocialLinks[p.Key]
		if !ok {
			continue
		}
		if err := validateSocialLink(p.Key, link); err != nil {
			f.setState(FormSaveFailed, err)
			return err
		}
		links[p.Key] = link
	}

	patch := model.Patch{model.FieldSocialLinks: links}
	for _, field := range model.IdentityFields {
		v, _ := doc.Scalar(field)
		patch[field] = v
	}
	if res := f.gateway.UpdateResume(ctx, f.store.ID(), patch); !res.Success {
		err := newSaveError(sectionPersonal, res)
		f.setState(FormSaveFailed, err)
		return err
	}
	f.setState(FormSaved, nil)
	return nil
}

func (f *PersonalDetailsForm) setState(s FormState, err error) {
	f.mu.Lock()
	f.state = s
	f.lastErr = err
	f.mu.Unlock()
}

func isIdentityField(field model.Field) bool {
	for _, f := range model.IdentityFields {
		if f == field {
			return true
		}
	}
	return false
}
