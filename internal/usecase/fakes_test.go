package usecase

import (
	"context"
	"sync"

	"github.com/armaan-yadav/apna-resume/internal/model"
)

type fakeGateway struct {
	mu sync.Mutex

	docs     map[string]model.Resume
	fetchErr error
	fail     *SaveResult
	calls    []string
	patches  []model.Patch
	lists    map[model.Field]any
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{docs: map[string]model.Resume{}, lists: map[model.Field]any{}}
}

func (g *fakeGateway) record(name string) *SaveResult {
	g.calls = append(g.calls, name)
	return g.fail
}

func (g *fakeGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func (g *fakeGateway) FetchResume(ctx context.Context, id string) (model.Resume, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, "FetchResume")
	if g.fetchErr != nil {
		return model.Resume{}, g.fetchErr
	}
	doc, ok := g.docs[id]
	if !ok {
		return model.Resume{}, ErrResumeNotFound
	}
	return doc.Clone(), nil
}

func (g *fakeGateway) UpdateResume(ctx context.Context, id string, patch model.Patch) SaveResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	if f := g.record("UpdateResume"); f != nil {
		return *f
	}
	g.patches = append(g.patches, patch)
	return Saved()
}

func (g *fakeGateway) saveList(name string, f model.Field, v any) SaveResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	if fail := g.record(name); fail != nil {
		return *fail
	}
	g.lists[f] = v
	return Saved()
}

func (g *fakeGateway) AddAchievementToResume(ctx context.Context, id string, list []model.Achievement) SaveResult {
	return g.saveList("AddAchievementToResume", model.FieldAchievements, list)
}

func (g *fakeGateway) AddCertificationToResume(ctx context.Context, id string, list []model.Certification) SaveResult {
	return g.saveList("AddCertificationToResume", model.FieldCertifications, list)
}

func (g *fakeGateway) AddCustomSectionToResume(ctx context.Context, id string, list []model.CustomSection) SaveResult {
	return g.saveList("AddCustomSectionToResume", model.FieldCustomSections, list)
}

func (g *fakeGateway) AddSkillToResume(ctx context.Context, id string, list []model.SkillEntry) SaveResult {
	return g.saveList("AddSkillToResume", model.FieldSkills, list)
}

func loadedStore(t interface{ Fatalf(string, ...any) }, gw *fakeGateway, id string, doc model.Resume) *Store {
	gw.docs[id] = doc
	s := NewStore(gw, nil)
	if err := s.Load(context.Background(), id); err != nil {
		t.Fatalf("load: %v", err)
	}
	return s
}
