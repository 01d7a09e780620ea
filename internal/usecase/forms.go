package usecase

import (
	"context"
	"sync"

	"github.com/armaan-yadav/apna-resume/internal/model"
)

// FormState is the save lifecycle of a form.
type FormState string

const (
	FormEditing    FormState = "editing"
	FormValidating FormState = "validating"
	FormSaveFailed FormState = "save-failed"
	FormSaved      FormState = "saved"
)

// ListForm edits a local draft of one list section. Add, Edit and Remove
// only touch the draft; Save validates the whole draft, replaces the list
// in storage and then in the store.
type ListForm[T any] struct {
	field    model.Field
	store    *Store
	validate func(i int, item T) error
	persist  func(ctx context.Context, id string, items []T) SaveResult
	clone    func([]T) []T

	// normalize rewrites the draft into its stored form before validation.
	normalize func([]T) []T

	mu      sync.Mutex
	items   []T
	state   FormState
	lastErr error
}

func newListForm[T any](
	field model.Field,
	store *Store,
	initial []T,
	validate func(int, T) error,
	persist func(context.Context, string, []T) SaveResult,
) *ListForm[T] {
	f := &ListForm[T]{
		field:    field,
		store:    store,
		validate: validate,
		persist:  persist,
		clone:    func(in []T) []T { return append([]T{}, in...) },
		state:    FormEditing,
	}
	f.items = f.clone(initial)
	return f
}

func NewAchievementForm(store *Store, gw Gateway) *ListForm[model.Achievement] {
	return newListForm(model.FieldAchievements, store, store.Snapshot().Achievements,
		validateAchievement, gw.AddAchievementToResume)
}

func NewCertificationForm(store *Store, gw Gateway) *ListForm[model.Certification] {
	return newListForm(model.FieldCertifications, store, store.Snapshot().Certifications,
		validateCertification, gw.AddCertificationToResume)
}

func NewCustomSectionForm(store *Store, gw Gateway) *ListForm[model.CustomSection] {
	f := newListForm(model.FieldCustomSections, store, store.Snapshot().CustomSections,
		validateCustomSection, gw.AddCustomSectionToResume)
	f.normalize = model.SanitizeCustomSections
	return f
}

func (f *ListForm[T]) Field() model.Field { return f.field }

// Items returns a copy of the draft.
func (f *ListForm[T]) Items() []T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clone(f.items)
}

func (f *ListForm[T]) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Err returns the error of the last failed save, if any.
func (f *ListForm[T]) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Add appends item to the draft and returns its index.
func (f *ListForm[T]) Add(item T) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, f.clone([]T{item})...)
	f.touch()
	return len(f.items) - 1
}

func (f *ListForm[T]) Edit(i int, item T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i < 0 || i >= len(f.items) {
		return outOfRange(i, len(f.items))
	}
	f.items[i] = f.clone([]T{item})[0]
	f.touch()
	return nil
}

func (f *ListForm[T]) Remove(i int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i < 0 || i >= len(f.items) {
		return outOfRange(i, len(f.items))
	}
	f.items = append(f.items[:i], f.items[i+1:]...)
	f.touch()
	return nil
}

// Replace swaps the whole draft.
func (f *ListForm[T]) Replace(items []T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = f.clone(items)
	f.touch()
}

// update runs fn on the draft under the form lock.
func (f *ListForm[T]) update(fn func(items []T) ([]T, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	next, err := fn(f.clone(f.items))
	if err != nil {
		return err
	}
	f.items = next
	f.touch()
	return nil
}

// touch marks the draft as diverged from the last save. Caller holds mu.
func (f *ListForm[T]) touch() {
	f.state = FormEditing
}

// Save validates and persists the draft. A validation failure returns a
// *ValidationError and writes nothing. A gateway failure returns a
// *SaveError and keeps the draft. On success the store receives the list.
func (f *ListForm[T]) Save(ctx context.Context) error {
	f.mu.Lock()
	items := f.clone(f.items)
	f.state = FormValidating
	f.mu.Unlock()

	if f.normalize != nil {
		items = f.normalize(items)
	}

	if f.validate != nil {
		for i, item := range items {
			if err := f.validate(i, item); err != nil {
				return f.finish(err)
			}
		}
	}

	if res := f.persist(ctx, f.store.ID(), items); !res.Success {
		return f.finish(newSaveError(f.field, res))
	}
	if err := f.store.ReplaceList(f.field, items); err != nil {
		return f.finish(err)
	}
	f.mu.Lock()
	f.items = f.clone(items)
	f.mu.Unlock()
	return f.finish(nil)
}

func (f *ListForm[T]) finish(err error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastErr = err
	if err != nil {
		f.state = FormSaveFailed
		return err
	}
	f.state = FormSaved
	return nil
}
