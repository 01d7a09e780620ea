package usecase

import (
	"errors"
	"fmt"

	"github.com/armaan-yadav/apna-resume/internal/model"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrSaveFailed      = errors.New("save failed")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrUnknownTemplate = errors.New("unknown template")
	ErrInvalidColor    = errors.New("invalid theme color")
	ErrUnknownPlatform = errors.New("unknown social platform")
	ErrNotCategory     = errors.New("skill entry is not a category")
	ErrBlankSkill      = errors.New("skill name is blank")
)

// DefaultSaveError is shown when the gateway reports failure without detail.
const DefaultSaveError = "failed to save, please try again"

// ValidationError names the first entry that blocked a save.
type ValidationError struct {
	Section model.Field
	Index   int
	Field   string
	Reason  string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s.%s: %s", e.Section, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s[%d].%s: %s", e.Section, e.Index, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// SaveError is returned when the gateway rejects a save. Local drafts are
// kept so the user can retry.
type SaveError struct {
	Section model.Field
	Detail  string
}

func newSaveError(section model.Field, res SaveResult) *SaveError {
	detail := res.Error
	if detail == "" {
		detail = DefaultSaveError
	}
	return &SaveError{Section: section, Detail: detail}
}

func (e *SaveError) Error() string { return e.Detail }

func (e *SaveError) Unwrap() error { return ErrSaveFailed }

func outOfRange(i, n int) error {
	return fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, i, n)
}
