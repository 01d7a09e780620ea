package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/armaan-yadav/apna-resume/internal/model"
)

func TestSectionOrder_InitInstallsDefault(t *testing.T) {
	gw := newFakeGateway()
	s := loadedStore(t, gw, "r1", model.Resume{})
	before := gw.callCount()

	c := NewSectionOrder(s, gw)
	if err := c.Init(); err != nil {
		t.Fatal(err)
	}
	if got := s.Snapshot().SectionOrder; !reflect.DeepEqual(got, model.DefaultSectionOrder()) {
		t.Fatalf("expected default order, got %v", got)
	}
	if gw.callCount() != before {
		t.Fatal("init should not save")
	}
}

func TestSectionOrder_InitKeepsValidOrder(t *testing.T) {
	custom := []model.SectionKey{model.SectionSkills, model.SectionSummary, model.SectionExperience, model.SectionEducation}
	gw := newFakeGateway()
	s := loadedStore(t, gw, "r1", model.Resume{SectionOrder: custom})

	c := NewSectionOrder(s, gw)
	if err := c.Init(); err != nil {
		t.Fatal(err)
	}
	if got := c.Order(); !reflect.DeepEqual(got, custom) {
		t.Fatalf("expected %v, got %v", custom, got)
	}
}

func TestSectionOrder_Reorder(t *testing.T) {
	gw := newFakeGateway()
	s := loadedStore(t, gw, "r1", model.Resume{})
	c := NewSectionOrder(s, gw)
	_ = c.Init()

	if err := c.Reorder(1, 3); err != nil {
		t.Fatal(err)
	}
	want := []model.SectionKey{model.SectionSummary, model.SectionEducation, model.SectionSkills, model.SectionExperience}
	if got := s.Snapshot().SectionOrder; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSectionOrder_ReorderOutOfRange(t *testing.T) {
	gw := newFakeGateway()
	s := loadedStore(t, gw, "r1", model.Resume{})
	c := NewSectionOrder(s, gw)
	_ = c.Init()
	before := s.Version()

	for _, tc := range [][2]int{{4, 0}, {0, 4}, {-1, 2}} {
		if err := c.Reorder(tc[0], tc[1]); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Reorder(%d,%d): expected ErrIndexOutOfRange, got %v", tc[0], tc[1], err)
		}
	}
	if s.Version() != before {
		t.Fatal("rejected reorder changed the store")
	}
}

func TestSectionOrder_Save(t *testing.T) {
	gw := newFakeGateway()
	s := loadedStore(t, gw, "r1", model.Resume{})
	c := NewSectionOrder(s, gw)
	_ = c.Init()
	_ = c.Reorder(0, 1)

	if err := c.Save(context.Background()); err != nil {
		t.Fatal(err)
	}
	if c.State() != FormSaved {
		t.Fatalf("expected saved, got %s", c.State())
	}
	got := gw.patches[len(gw.patches)-1][model.FieldSectionOrder]
	want := []model.SectionKey{model.SectionExperience, model.SectionSummary, model.SectionEducation, model.SectionSkills}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v saved, got %v", want, got)
	}
}
