package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/armaan-yadav/apna-resume/internal/model"
	"github.com/armaan-yadav/apna-resume/internal/usecase"
)

var _ usecase.Gateway = (*MemoryRepo)(nil)
var _ usecase.ResumeCreator = (*MemoryRepo)(nil)
var _ usecase.Gateway = (*ResumeRepo)(nil)
var _ usecase.ResumeCreator = (*ResumeRepo)(nil)

func TestMemoryRepo_CreateAndFetch(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	id, err := repo.CreateResume(ctx, "owner-1", model.SampleResume())
	if err != nil {
		t.Fatal(err)
	}
	doc, err := repo.FetchResume(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if doc.ID != id || doc.FirstName != "Alex" || len(doc.Experience) != 2 {
		t.Fatalf("unexpected document %+v", doc)
	}
	if _, err := repo.FetchResume(ctx, "missing"); !errors.Is(err, usecase.ErrResumeNotFound) {
		t.Fatalf("expected ErrResumeNotFound, got %v", err)
	}
}

func TestMemoryRepo_PartialSavesMergeTopLevelKeys(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	id, _ := repo.CreateResume(ctx, "o", model.Resume{FirstName: "Ada", Summary: "hi"})

	if res := repo.AddAchievementToResume(ctx, id, []model.Achievement{{Title: "a", Description: "b"}}); !res.Success {
		t.Fatalf("save failed: %s", res.Error)
	}
	if res := repo.UpdateResume(ctx, id, model.Patch{model.FieldTemplate: "modern"}); !res.Success {
		t.Fatalf("save failed: %s", res.Error)
	}
	doc, _ := repo.FetchResume(ctx, id)
	if doc.FirstName != "Ada" || doc.Summary != "hi" || doc.Template != "modern" || len(doc.Achievements) != 1 {
		t.Fatalf("unexpected merge result %+v", doc)
	}

	if res := repo.AddAchievementToResume(ctx, id, nil); !res.Success {
		t.Fatalf("empty save failed: %s", res.Error)
	}
	doc, _ = repo.FetchResume(ctx, id)
	if len(doc.Achievements) != 0 {
		t.Fatal("expected achievements cleared")
	}
}

func TestMemoryRepo_UpdateFailures(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	if res := repo.UpdateResume(ctx, "missing", model.Patch{model.FieldSummary: "x"}); res.Success {
		t.Fatal("expected failure for unknown id")
	}

	id, _ := repo.CreateResume(ctx, "o", model.Resume{})
	res := repo.UpdateResume(ctx, id, model.Patch{model.FieldSocialLinks: map[string]string{"myspace": "x"}})
	if res.Success || res.Error == "" {
		t.Fatalf("expected schema failure with detail, got %+v", res)
	}
}

func TestMemoryRepo_WithSession(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	id, _ := repo.CreateResume(ctx, "o", model.Resume{
		Skills: []model.SkillEntry{model.NewLegacySkill("Go", 5)},
	})

	reg := usecase.NewSessions(repo, 0, nil)
	s := reg.Open(ctx, id)
	if err := s.Skills().Save(ctx); err != nil {
		t.Fatal(err)
	}
	doc, _ := repo.FetchResume(ctx, id)
	if len(doc.Skills) != 1 || doc.Skills[0].Category != "Other" || doc.Skills[0].Skills[0] != "Go" {
		t.Fatalf("expected migrated skills persisted, got %+v", doc.Skills)
	}
}

func TestMemoryRepo_ListByOwner(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	_, _ = repo.CreateResume(ctx, "alice", model.Resume{FirstName: "A", Template: "bogus"})
	_, _ = repo.CreateResume(ctx, "alice", model.Resume{FirstName: "B", Template: "modern"})
	_, _ = repo.CreateResume(ctx, "bob", model.Resume{FirstName: "C"})

	list, err := repo.ListByOwner(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 resumes, got %d", len(list))
	}
	for _, s := range list {
		if s.Template != "classic" && s.Template != "modern" {
			t.Errorf("expected resolved template, got %q", s.Template)
		}
	}
}

func TestMemoryRepo_ListByOwnerNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	first, _ := repo.CreateResume(ctx, "alice", model.Resume{FirstName: "First"})
	now = now.Add(time.Minute)
	second, _ := repo.CreateResume(ctx, "alice", model.Resume{FirstName: "Second"})

	list, _ := repo.ListByOwner(ctx, "alice")
	if list[0].ID != second || list[1].ID != first {
		t.Fatalf("expected newest first, got %+v", list)
	}

	now = now.Add(time.Minute)
	if res := repo.UpdateResume(ctx, first, model.Patch{model.FieldSummary: "edited"}); !res.Success {
		t.Fatal(res.Error)
	}
	list, _ = repo.ListByOwner(ctx, "alice")
	if list[0].ID != first || !list[0].UpdatedAt.Equal(now) {
		t.Fatalf("expected edited resume first, got %+v", list)
	}
}

func TestMemoryRepo_FetchValidatesStoredDocument(t *testing.T) {
	repo := NewMemoryRepo()
	repo.docs["bad"] = []byte(`{"socialLinks":{"myspace":"https://x"}}`)
	if _, err := repo.FetchResume(context.Background(), "bad"); !errors.Is(err, model.ErrSchema) {
		t.Fatalf("expected ErrSchema, got %v", err)
	}

	// a malformed order is repaired on load, not rejected
	repo.docs["order"] = []byte(`{"firstName":"Ada","sectionOrder":["skills","skills"]}`)
	reg := usecase.NewSessions(repo, 0, nil)
	s := reg.Open(context.Background(), "order")
	if s.LoadErr() != nil {
		t.Fatalf("unexpected load error %v", s.LoadErr())
	}
	if got := s.Store.Snapshot().SectionOrder; len(got) != 4 {
		t.Fatalf("order not normalized: %v", got)
	}
}
