package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/armaan-yadav/apna-resume/internal/model"
	"github.com/armaan-yadav/apna-resume/internal/usecase"
)

// MemoryRepo keeps documents in process as encoded JSON. It is used when no
// database is configured and in tests.
type MemoryRepo struct {
	now func() time.Time

	mu      sync.RWMutex
	docs    map[string][]byte
	owners  map[string]string
	updated map[string]time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		now:     time.Now,
		docs:    make(map[string][]byte),
		owners:  make(map[string]string),
		updated: make(map[string]time.Time),
	}
}

func (m *MemoryRepo) Ping(ctx context.Context) error { return nil }

func (m *MemoryRepo) FetchResume(ctx context.Context, id string) (model.Resume, error) {
	m.mu.RLock()
	raw, ok := m.docs[id]
	m.mu.RUnlock()
	if !ok {
		return model.Resume{}, fmt.Errorf("%w: %s", usecase.ErrResumeNotFound, id)
	}
	if err := model.ValidateStored(raw); err != nil {
		return model.Resume{}, fmt.Errorf("resume %s: %w", id, err)
	}
	var doc model.Resume
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.Resume{}, fmt.Errorf("decode resume %s: %w", id, err)
	}
	doc.ID = id
	return doc, nil
}

func (m *MemoryRepo) UpdateResume(ctx context.Context, id string, patch model.Patch) usecase.SaveResult {
	if err := ctx.Err(); err != nil {
		return usecase.Failed(err)
	}
	b, err := json.Marshal(patch)
	if err != nil {
		return usecase.Failed(err)
	}
	if err := model.ValidateDocument(b); err != nil {
		return usecase.Failed(err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.docs[id]
	if !ok {
		return usecase.Failed(usecase.ErrResumeNotFound)
	}
	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return usecase.Failed(err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return usecase.Failed(err)
	}
	for k, v := range fields {
		doc[k] = v
	}
	merged, err := json.Marshal(doc)
	if err != nil {
		return usecase.Failed(err)
	}
	m.docs[id] = merged
	m.updated[id] = m.now()
	return usecase.Saved()
}

func (m *MemoryRepo) AddAchievementToResume(ctx context.Context, id string, list []model.Achievement) usecase.SaveResult {
	return m.UpdateResume(ctx, id, model.Patch{model.FieldAchievements: nonNil(list)})
}

func (m *MemoryRepo) AddCertificationToResume(ctx context.Context, id string, list []model.Certification) usecase.SaveResult {
	return m.UpdateResume(ctx, id, model.Patch{model.FieldCertifications: nonNil(list)})
}

func (m *MemoryRepo) AddCustomSectionToResume(ctx context.Context, id string, list []model.CustomSection) usecase.SaveResult {
	return m.UpdateResume(ctx, id, model.Patch{model.FieldCustomSections: nonNil(list)})
}

func (m *MemoryRepo) AddSkillToResume(ctx context.Context, id string, list []model.SkillEntry) usecase.SaveResult {
	return m.UpdateResume(ctx, id, model.Patch{model.FieldSkills: nonNil(list)})
}

func (m *MemoryRepo) CreateResume(ctx context.Context, ownerID string, doc model.Resume) (string, error) {
	doc.ID = ""
	b, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	if err := model.ValidateDocument(b); err != nil {
		return "", err
	}
	id := uuid.NewString()
	m.mu.Lock()
	m.docs[id] = b
	m.owners[id] = ownerID
	m.updated[id] = m.now()
	m.mu.Unlock()
	return id, nil
}

func resolvedTemplate(t string) string {
	return string(model.ResolveTemplate(t))
}
