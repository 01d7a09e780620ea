package usecase

import (
	"context"
	"fmt"

	"github.com/armaan-yadav/apna-resume/internal/model"
)

// TemplatePicker switches the layout and accent color of a resume. The
// store is updated first so previews follow immediately, then the choice
// is persisted.
type TemplatePicker struct {
	store   *Store
	gateway Gateway
}

func NewTemplatePicker(store *Store, gw Gateway) *TemplatePicker {
	return &TemplatePicker{store: store, gateway: gw}
}

func (p *TemplatePicker) Select(ctx context.Context, id string) error {
	if !model.IsKnownTemplate(id) {
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}
	return p.set(ctx, model.FieldTemplate, id)
}

func (p *TemplatePicker) SelectThemeColor(ctx context.Context, color string) error {
	if !model.IsColorToken(color) {
		return fmt.Errorf("%w: %q", ErrInvalidColor, color)
	}
	return p.set(ctx, model.FieldThemeColor, color)
}

func (p *TemplatePicker) set(ctx context.Context, field model.Field, v string) error {
	if err := p.store.SetScalar(field, v); err != nil {
		return err
	}
	if res := p.gateway.UpdateResume(ctx, p.store.ID(), model.Patch{field: v}); !res.Success {
		return newSaveError(field, res)
	}
	return nil
}
