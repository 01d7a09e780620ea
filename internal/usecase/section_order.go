package usecase

import (
	"context"
	"sync"

	"github.com/armaan-yadav/apna-resume/internal/model"
)

// SectionOrder controls the order of the four base sections. The order
// lives in the store; Save persists it.
type SectionOrder struct {
	store   *Store
	gateway Gateway

	mu      sync.Mutex
	state   FormState
	lastErr error
}

func NewSectionOrder(store *Store, gw Gateway) *SectionOrder {
	return &SectionOrder{store: store, gateway: gw, state: FormEditing}
}

// Init installs the default order in the store when the loaded document
// has none, or has one that is not a permutation of the base sections.
// Nothing is saved.
func (c *SectionOrder) Init() error {
	return c.store.mutate(func(doc *model.Resume) error {
		if model.IsValidSectionOrder(doc.SectionOrder) {
			return nil
		}
		doc.SectionOrder = model.DefaultSectionOrder()
		return nil
	})
}

// Order returns the current order, normalized.
func (c *SectionOrder) Order() []model.SectionKey {
	return model.NormalizeSectionOrder(c.store.Snapshot().SectionOrder)
}

// Reorder moves the section at from to position to. Indices are not
// clamped.
func (c *SectionOrder) Reorder(from, to int) error {
	err := c.store.mutate(func(doc *model.Resume) error {
		order := model.NormalizeSectionOrder(doc.SectionOrder)
		n := len(order)
		if from < 0 || from >= n {
			return outOfRange(from, n)
		}
		if to < 0 || to >= n {
			return outOfRange(to, n)
		}
		moved := order[from]
		order = append(order[:from], order[from+1:]...)
		order = append(order[:to], append([]model.SectionKey{moved}, order[to:]...)...)
		doc.SectionOrder = order
		return nil
	})
	if err != nil {
		return err
	}
	c.setState(FormEditing, nil)
	return nil
}

func (c *SectionOrder) State() FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Save persists the current order.
func (c *SectionOrder) Save(ctx context.Context) error {
	c.setState(FormValidating, nil)
	patch := model.Patch{model.FieldSectionOrder: c.Order()}
	if res := c.gateway.UpdateResume(ctx, c.store.ID(), patch); !res.Success {
		err := newSaveError(model.FieldSectionOrder, res)
		c.setState(FormSaveFailed, err)
		return err
	}
	c.setState(FormSaved, nil)
	return nil
}

func (c *SectionOrder) setState(s FormState, err error) {
	c.mu.Lock()
	c.state = s
	c.lastErr = err
	c.mu.Unlock()
}
