package usecase

import (
	"context"
	"errors"

	"github.com/armaan-yadav/apna-resume/internal/model"
)

// ErrResumeNotFound is returned by FetchResume for unknown ids.
var ErrResumeNotFound = errors.New("resume not found")

// SaveResult reports the outcome of a partial save. Error carries a
// user-facing detail when Success is false.
type SaveResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func Saved() SaveResult { return SaveResult{Success: true} }

func Failed(err error) SaveResult {
	if err == nil {
		return SaveResult{}
	}
	return SaveResult{Error: err.Error()}
}

// Gateway is the persistence boundary for resume documents. The Add*
// variants replace the whole list for their field.
type Gateway interface {
	FetchResume(ctx context.Context, id string) (model.Resume, error)
	UpdateResume(ctx context.Context, id string, patch model.Patch) SaveResult
	AddAchievementToResume(ctx context.Context, id string, list []model.Achievement) SaveResult
	AddCertificationToResume(ctx context.Context, id string, list []model.Certification) SaveResult
	AddCustomSectionToResume(ctx context.Context, id string, list []model.CustomSection) SaveResult
	AddSkillToResume(ctx context.Context, id string, list []model.SkillEntry) SaveResult
}

// ResumeCreator inserts new documents.
type ResumeCreator interface {
	CreateResume(ctx context.Context, ownerID string, doc model.Resume) (string, error)
}
