package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/armaan-yadav/apna-resume/internal/adapter/cache"
	"github.com/armaan-yadav/apna-resume/internal/domain"
	"github.com/armaan-yadav/apna-resume/internal/model"
	"github.com/armaan-yadav/apna-resume/internal/usecase"
)

// SessionRegistry opens editing sessions by resume id.
type SessionRegistry interface {
	Open(ctx context.Context, id string) *usecase.Session
}

type PreviewRenderer interface {
	RenderString(templateID string, doc model.Resume) (string, error)
}

type PreviewCache interface {
	GetPreview(ctx context.Context, key string) (string, bool)
	SetPreview(ctx context.Context, key, page string)
}

// Assistant drafts resume text.
type Assistant interface {
	SuggestSummary(ctx context.Context, doc model.Resume) (string, error)
	SuggestWorkSummary(ctx context.Context, exp model.Experience) (string, error)
}

type ResumeLister interface {
	ListByOwner(ctx context.Context, ownerID string) ([]domain.ResumeSummary, error)
}

// Deps are the collaborators of Handler. Cache and Assistant are optional.
type Deps struct {
	Sessions  SessionRegistry
	Creator   usecase.ResumeCreator
	Lister    ResumeLister
	Renderer  PreviewRenderer
	Cache     PreviewCache
	Assistant Assistant
	Logger    *slog.Logger
	Timeout   time.Duration
}

type Handler struct {
	sessions  SessionRegistry
	creator   usecase.ResumeCreator
	lister    ResumeLister
	renderer  PreviewRenderer
	cache     PreviewCache
	assistant Assistant
	logger    *slog.Logger
	timeout   time.Duration
}

type noCache struct{}

func (noCache) GetPreview(context.Context, string) (string, bool) { return "", false }

func (noCache) SetPreview(context.Context, string, string) {}

func NewHandler(d Deps) *Handler {
	h := &Handler{
		sessions:  d.Sessions,
		creator:   d.Creator,
		lister:    d.Lister,
		renderer:  d.Renderer,
		cache:     d.Cache,
		assistant: d.Assistant,
		logger:    d.Logger,
		timeout:   d.Timeout,
	}
	if h.cache == nil {
		h.cache = noCache{}
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if h.timeout <= 0 {
		h.timeout = 15 * time.Second
	}
	return h
}

func (h *Handler) RegisterRoutes(r fiber.Router) {
	r.Get("/templates", h.ListTemplates)
	r.Get("/templates/:template/sample", h.SampleTemplate)
	r.Get("/owners/:owner/resumes", h.ListResumes)
	r.Post("/resumes", h.CreateResume)

	grp := r.Group("/resumes/:id")
	grp.Get("/", h.GetSession)
	grp.Post("/reload", h.Reload)
	grp.Patch("/fields", h.UpdateField)
	grp.Put("/personal", h.SavePersonal)
	grp.Put("/achievements", h.SaveAchievements)
	grp.Put("/certifications", h.SaveCertifications)
	grp.Put("/custom-sections", h.SaveCustomSections)
	grp.Get("/skills/draft", h.SkillsDraft)
	grp.Put("/skills", h.SaveSkills)
	grp.Post("/section-order/reorder", h.ReorderSections)
	grp.Put("/section-order", h.SaveSectionOrder)
	grp.Put("/template", h.SelectTemplate)
	grp.Put("/theme", h.SelectTheme)
	grp.Get("/preview", h.Preview)
	grp.Post("/assist/summary", h.SuggestSummary)
	grp.Post("/assist/experience/:index", h.SuggestWorkSummary)
}

func (h *Handler) ctx(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), h.timeout)
}

func (h *Handler) session(ctx context.Context, c *fiber.Ctx) *usecase.Session {
	return h.sessions.Open(ctx, c.Params("id"))
}

func (h *Handler) ListTemplates(c *fiber.Ctx) error {
	return Success(c, fiber.StatusOK, MessageOK, model.Templates)
}

// SampleTemplate renders the sample resume with a layout, as shown in the
// template gallery.
func (h *Handler) SampleTemplate(c *fiber.Ctx) error {
	id := c.Params("template")
	if !model.IsKnownTemplate(id) {
		return NewAppError(fiber.StatusNotFound, "Unknown template", nil, nil)
	}
	page, err := h.renderer.RenderString(id, model.SampleResume())
	if err != nil {
		return err
	}
	c.Type("html")
	return c.SendString(page)
}

func (h *Handler) ListResumes(c *fiber.Ctx) error {
	if h.lister == nil {
		return NewAppError(fiber.StatusNotFound, MessageNotFound, nil, nil)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	list, err := h.lister.ListByOwner(ctx, c.Params("owner"))
	if err != nil {
		return err
	}
	return Success(c, fiber.StatusOK, MessageOK, list)
}

func (h *Handler) CreateResume(c *fiber.Ctx) error {
	var req createResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid payload", err)
	}
	if strings.TrimSpace(req.OwnerID) == "" {
		return badRequest("ownerId is required", nil)
	}
	doc := model.Resume{SectionOrder: model.DefaultSectionOrder()}
	if req.Document != nil {
		doc = *req.Document
		doc.SanitizeRichText()
	}

	ctx, cancel := h.ctx(c)
	defer cancel()
	id, err := h.creator.CreateResume(ctx, req.OwnerID, doc)
	if err != nil {
		if errors.Is(err, model.ErrSchema) {
			return NewAppError(fiber.StatusUnprocessableEntity, MessageUnprocessableEntity, err.Error(), err)
		}
		return err
	}
	return Success(c, fiber.StatusCreated, MessageCreated, fiber.Map{"id": id})
}

func sessionPayload(s *usecase.Session) sessionResponse {
	resp := sessionResponse{
		ID:           s.ID,
		Resume:       s.Store.Snapshot().Normalized(),
		Version:      s.Store.Version(),
		SectionOrder: s.SectionOrder().Order(),
	}
	if err := s.LoadErr(); err != nil {
		resp.LoadError = err.Error()
	}
	return resp
}

func (h *Handler) GetSession(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()
	return Success(c, fiber.StatusOK, MessageOK, sessionPayload(h.session(ctx, c)))
}

// Reload discards unsaved drafts and fetches the stored document again.
func (h *Handler) Reload(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()
	s := h.session(ctx, c)
	if err := s.Reload(ctx); err != nil {
		h.logger.Warn("reload failed", "resume_id", s.ID, "error", err)
	}
	return Success(c, fiber.StatusOK, MessageOK, sessionPayload(s))
}

// UpdateField applies one store operation and optionally persists the field.
func (h *Handler) UpdateField(c *fiber.Ctx) error {
	var req fieldOpRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid payload", err)
	}
	if !req.Field.Valid() {
		return badRequest(fmt.Sprintf("unknown field %q", req.Field), nil)
	}

	ctx, cancel := h.ctx(c)
	defer cancel()
	s := h.session(ctx, c)

	if err := applyFieldOp(s.Store, req); err != nil {
		return err
	}
	if req.Save {
		if err := s.SaveField(ctx, req.Field); err != nil {
			return mapUsecaseError(err)
		}
	}
	return Success(c, fiber.StatusOK, MessageOK, sessionPayload(s))
}

func applyFieldOp(store *usecase.Store, req fieldOpRequest) error {
	switch req.Op {
	case opSetScalar:
		var v string
		if len(req.Value) > 0 && string(req.Value) != "null" {
			if err := json.Unmarshal(req.Value, &v); err != nil {
				return badRequest("value must be a string", err)
			}
		}
		return mapUsecaseError(store.SetScalar(req.Field, v))
	case opMergeMap:
		var kv map[string]string
		if err := json.Unmarshal(req.Value, &kv); err != nil {
			return badRequest("value must be an object of strings", err)
		}
		if req.Field == model.FieldSocialLinks {
			for k := range kv {
				if !model.IsPlatform(k) {
					return mapUsecaseError(fmt.Errorf("%w: %q", usecase.ErrUnknownPlatform, k))
				}
			}
		}
		return mapUsecaseError(store.MergeMap(req.Field, kv))
	case opReplaceList:
		list, err := model.DecodeListValue(req.Field, req.Value)
		if err != nil {
			if errors.Is(err, model.ErrFieldKind) {
				return mapUsecaseError(err)
			}
			return badRequest("value does not match field", err)
		}
		return mapUsecaseError(store.ReplaceList(req.Field, list))
	default:
		return badRequest(fmt.Sprintf("unknown op %q", req.Op), nil)
	}
}

func (h *Handler) SavePersonal(c *fiber.Ctx) error {
	var req personalRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid payload", err)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	s := h.session(ctx, c)
	form := s.Personal()

	for field, v := range req.fields() {
		if v == nil {
			continue
		}
		if err := form.Set(field, *v); err != nil {
			return mapUsecaseError(err)
		}
	}
	for platform, link := range req.SocialLinks {
		if err := form.SetSocialLink(platform, link); err != nil {
			return mapUsecaseError(err)
		}
	}
	if err := form.Save(ctx); err != nil {
		return mapUsecaseError(err)
	}
	return Success(c, fiber.StatusOK, MessageOK, sessionPayload(s))
}

// saveList replaces a form draft with the request items and saves it.
func saveList[T any](h *Handler, c *fiber.Ctx, form func(*usecase.Session) *usecase.ListForm[T]) error {
	var req listRequest[T]
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid payload", err)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	f := form(h.session(ctx, c))
	f.Replace(req.Items)
	if err := f.Save(ctx); err != nil {
		return mapUsecaseError(err)
	}
	return Success(c, fiber.StatusOK, MessageOK, listResponse[T]{Items: f.Items(), State: string(f.State())})
}

func (h *Handler) SaveAchievements(c *fiber.Ctx) error {
	return saveList(h, c, (*usecase.Session).Achievements)
}

func (h *Handler) SaveCertifications(c *fiber.Ctx) error {
	return saveList(h, c, (*usecase.Session).Certifications)
}

func (h *Handler) SaveCustomSections(c *fiber.Ctx) error {
	return saveList(h, c, (*usecase.Session).CustomSections)
}

func (h *Handler) SaveSkills(c *fiber.Ctx) error {
	return saveList(h, c, func(s *usecase.Session) *usecase.ListForm[model.SkillEntry] {
		return s.Skills().ListForm
	})
}

// SkillsDraft returns the skills as the editor sees them, with legacy
// entries migrated.
func (h *Handler) SkillsDraft(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()
	f := h.session(ctx, c).Skills()
	return Success(c, fiber.StatusOK, MessageOK, listResponse[model.SkillEntry]{Items: f.Items(), State: string(f.State())})
}

func (h *Handler) ReorderSections(c *fiber.Ctx) error {
	var req reorderRequest
	if err := c.BodyParser(&req); err != nil || req.From == nil || req.To == nil {
		return badRequest("from and to are required", err)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	order := h.session(ctx, c).SectionOrder()
	if err := order.Reorder(*req.From, *req.To); err != nil {
		return mapUsecaseError(err)
	}
	return Success(c, fiber.StatusOK, MessageOK, fiber.Map{"sectionOrder": order.Order()})
}

func (h *Handler) SaveSectionOrder(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()
	order := h.session(ctx, c).SectionOrder()
	if err := order.Save(ctx); err != nil {
		return mapUsecaseError(err)
	}
	return Success(c, fiber.StatusOK, MessageOK, fiber.Map{"sectionOrder": order.Order(), "state": order.State()})
}

func (h *Handler) SelectTemplate(c *fiber.Ctx) error {
	var req templateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid payload", err)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	s := h.session(ctx, c)
	if err := s.Templates().Select(ctx, req.Template); err != nil {
		return mapUsecaseError(err)
	}
	return Success(c, fiber.StatusOK, MessageOK, fiber.Map{"template": req.Template})
}

func (h *Handler) SelectTheme(c *fiber.Ctx) error {
	var req themeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid payload", err)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	s := h.session(ctx, c)
	if err := s.Templates().SelectThemeColor(ctx, req.ThemeColor); err != nil {
		return mapUsecaseError(err)
	}
	return Success(c, fiber.StatusOK, MessageOK, fiber.Map{"themeColor": req.ThemeColor})
}

// Preview renders the session document as HTML. The template query
// parameter overrides the stored layout.
func (h *Handler) Preview(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()
	s := h.session(ctx, c)
	doc := s.Store.Snapshot()
	id := model.ResolveTemplate(c.Query("template", doc.Template))

	key, err := cache.PreviewKey(s.ID, id, doc)
	if err != nil {
		return err
	}
	c.Type("html")
	if page, ok := h.cache.GetPreview(ctx, key); ok {
		c.Set("X-Preview-Cache", "hit")
		return c.SendString(page)
	}
	page, err := h.renderer.RenderString(string(id), doc)
	if err != nil {
		return err
	}
	h.cache.SetPreview(ctx, key, page)
	c.Set("X-Preview-Cache", "miss")
	return c.SendString(page)
}

func (h *Handler) SuggestSummary(c *fiber.Ctx) error {
	if h.assistant == nil {
		return NewAppError(fiber.StatusServiceUnavailable, "Writing assistant is not configured", nil, nil)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	s := h.session(ctx, c)
	text, err := h.assistant.SuggestSummary(ctx, s.Store.Snapshot())
	if err != nil {
		return NewAppError(fiber.StatusBadGateway, "Writing assistant failed", nil, err)
	}
	return Success(c, fiber.StatusOK, MessageOK, suggestionResponse{Suggestion: text})
}

// SuggestWorkSummary drafts bullet points for one experience entry. The
// suggestion is sanitized like any other rich text.
func (h *Handler) SuggestWorkSummary(c *fiber.Ctx) error {
	if h.assistant == nil {
		return NewAppError(fiber.StatusServiceUnavailable, "Writing assistant is not configured", nil, nil)
	}
	index, err := c.ParamsInt("index")
	if err != nil {
		return badRequest("index must be a number", err)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	doc := h.session(ctx, c).Store.Snapshot()
	if index < 0 || index >= len(doc.Experience) {
		return mapUsecaseError(fmt.Errorf("%w: experience %d", usecase.ErrIndexOutOfRange, index))
	}
	text, err := h.assistant.SuggestWorkSummary(ctx, doc.Experience[index])
	if err != nil {
		return NewAppError(fiber.StatusBadGateway, "Writing assistant failed", nil, err)
	}
	return Success(c, fiber.StatusOK, MessageOK, suggestionResponse{Suggestion: model.SanitizeRichText(text)})
}
