package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/armaan-yadav/apna-resume/internal/domain"
	"github.com/armaan-yadav/apna-resume/internal/model"
	"github.com/armaan-yadav/apna-resume/internal/usecase"
)

// ResumeRepo stores resume documents as JSONB in Postgres. Partial saves
// merge top-level keys with "document || patch", so saves of different
// sections never overwrite each other.
type ResumeRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewResumeRepo(pool *pgxpool.Pool, logger *slog.Logger) *ResumeRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResumeRepo{pool: pool, logger: logger}
}

func (r *ResumeRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *ResumeRepo) FetchResume(ctx context.Context, id string) (model.Resume, error) {
	rec, err := r.FindRecord(ctx, id)
	if err != nil {
		return model.Resume{}, err
	}
	return rec.Document, nil
}

// FindRecord loads the full row for id.
func (r *ResumeRepo) FindRecord(ctx context.Context, id string) (*domain.ResumeRecord, error) {
	rid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", usecase.ErrResumeNotFound, id)
	}

	var (
		rec domain.ResumeRecord
		raw []byte
	)
	err = r.pool.QueryRow(ctx,
		`SELECT id, owner_id, document, created_at, updated_at FROM resumes WHERE id = $1`, rid,
	).Scan(&rec.ID, &rec.OwnerID, &raw, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", usecase.ErrResumeNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query resume %s: %w", id, err)
	}
	if err := model.ValidateStored(raw); err != nil {
		return nil, fmt.Errorf("resume %s: %w", id, err)
	}
	if err := json.Unmarshal(raw, &rec.Document); err != nil {
		return nil, fmt.Errorf("decode resume %s: %w", id, err)
	}
	rec.Document.ID = rec.ID.String()
	return &rec, nil
}

func (r *ResumeRepo) UpdateResume(ctx context.Context, id string, patch model.Patch) usecase.SaveResult {
	if len(patch) == 0 {
		return usecase.Saved()
	}
	rid, err := uuid.Parse(id)
	if err != nil {
		return usecase.Failed(usecase.ErrResumeNotFound)
	}
	b, err := json.Marshal(patch)
	if err != nil {
		return usecase.Failed(err)
	}
	if err := model.ValidateDocument(b); err != nil {
		return usecase.Failed(err)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE resumes SET document = document || $2::jsonb, updated_at = $3 WHERE id = $1`,
		rid, b, time.Now().UTC())
	if err != nil {
		r.logger.Error("resume update failed", "resume_id", id, "error", err)
		return usecase.Failed(errors.New(usecase.DefaultSaveError))
	}
	if tag.RowsAffected() == 0 {
		return usecase.Failed(usecase.ErrResumeNotFound)
	}
	return usecase.Saved()
}

func (r *ResumeRepo) AddAchievementToResume(ctx context.Context, id string, list []model.Achievement) usecase.SaveResult {
	return r.UpdateResume(ctx, id, model.Patch{model.FieldAchievements: nonNil(list)})
}

func (r *ResumeRepo) AddCertificationToResume(ctx context.Context, id string, list []model.Certification) usecase.SaveResult {
	return r.UpdateResume(ctx, id, model.Patch{model.FieldCertifications: nonNil(list)})
}

func (r *ResumeRepo) AddCustomSectionToResume(ctx context.Context, id string, list []model.CustomSection) usecase.SaveResult {
	return r.UpdateResume(ctx, id, model.Patch{model.FieldCustomSections: nonNil(list)})
}

func (r *ResumeRepo) AddSkillToResume(ctx context.Context, id string, list []model.SkillEntry) usecase.SaveResult {
	return r.UpdateResume(ctx, id, model.Patch{model.FieldSkills: nonNil(list)})
}

// CreateResume inserts doc for owner and returns the new id.
func (r *ResumeRepo) CreateResume(ctx context.Context, ownerID string, doc model.Resume) (string, error) {
	doc.ID = ""
	b, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	if err := model.ValidateDocument(b); err != nil {
		return "", err
	}
	id := uuid.New()
	now := time.Now().UTC()
	if _, err := r.pool.Exec(ctx,
		`INSERT INTO resumes (id, owner_id, document, created_at, updated_at) VALUES ($1,$2,$3,$4,$5)`,
		id, ownerID, b, now, now); err != nil {
		return "", fmt.Errorf("insert resume: %w", err)
	}
	r.logger.Info("resume created", "resume_id", id, "owner_id", ownerID)
	return id.String(), nil
}

// nonNil makes an empty list encode as [] so the stored list is cleared.
func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
