package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gofiber/fiber/v2"

	"github.com/armaan-yadav/apna-resume/internal/adapter/repository"
	"github.com/armaan-yadav/apna-resume/internal/model"
	"github.com/armaan-yadav/apna-resume/internal/render"
	"github.com/armaan-yadav/apna-resume/internal/usecase"
)

type mapCache struct {
	mu    sync.Mutex
	pages map[string]string
}

func (m *mapCache) GetPreview(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pages[key]
	return p, ok
}

func (m *mapCache) SetPreview(_ context.Context, key, page string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[key] = page
}

type stubAssistant struct {
	text string
	err  error
}

func (a stubAssistant) SuggestSummary(context.Context, model.Resume) (string, error) {
	return a.text, a.err
}

func (a stubAssistant) SuggestWorkSummary(context.Context, model.Experience) (string, error) {
	return a.text, a.err
}

type testEnv struct {
	app   *fiber.App
	repo  *repository.MemoryRepo
	cache *mapCache
}

func newTestEnv(t *testing.T, assistant Assistant) *testEnv {
	t.Helper()
	sel, err := render.NewSelector()
	if err != nil {
		t.Fatalf("NewSelector: %v", err)
	}
	repo := repository.NewMemoryRepo()
	cache := &mapCache{pages: map[string]string{}}
	h := NewHandler(Deps{
		Sessions:  usecase.NewSessions(repo, time.Minute, nil),
		Creator:   repo,
		Lister:    repo,
		Renderer:  sel,
		Cache:     cache,
		Assistant: assistant,
		Timeout:   time.Second,
	})
	app := NewApp(h, NewHealthHandler(CheckFunc{Label: "memory", Fn: repo.Ping}), nil, 0)
	return &testEnv{app: app, repo: repo, cache: cache}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) (int, []byte, http.Header) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out, resp.Header
}

func (e *testEnv) seed(t *testing.T) string {
	t.Helper()
	id, err := e.repo.CreateResume(context.Background(), "owner-1", model.SampleResume())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return id
}

func decodeData(t *testing.T, body []byte, out interface{}) {
	t.Helper()
	var env struct {
		Status  int             `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, body)
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("decode data: %v (%s)", err, env.Data)
		}
	}
}

func TestHealthAndReady(t *testing.T) {
	e := newTestEnv(t, nil)
	for _, path := range []string{"/health", "/ready"} {
		if status, body, _ := e.do(t, "GET", path, nil); status != fiber.StatusOK {
			t.Fatalf("%s: status %d body %s", path, status, body)
		}
	}
}

func TestCreateAndOpenResume(t *testing.T) {
	e := newTestEnv(t, nil)

	status, body, _ := e.do(t, "POST", "/api/v1/resumes", fiber.Map{"ownerId": "owner-9"})
	if status != fiber.StatusCreated {
		t.Fatalf("create status %d: %s", status, body)
	}
	var created struct{ ID string }
	decodeData(t, body, &created)
	if created.ID == "" {
		t.Fatal("expected id")
	}

	status, body, _ = e.do(t, "GET", "/api/v1/resumes/"+created.ID, nil)
	if status != fiber.StatusOK {
		t.Fatalf("open status %d: %s", status, body)
	}
	var sess sessionResponse
	decodeData(t, body, &sess)
	if sess.LoadError != "" {
		t.Fatalf("unexpected load error %q", sess.LoadError)
	}
	if len(sess.SectionOrder) != len(model.DefaultSectionOrder()) {
		t.Fatalf("section order = %v", sess.SectionOrder)
	}

	status, body, _ = e.do(t, "GET", "/api/v1/owners/owner-9/resumes", nil)
	if status != fiber.StatusOK {
		t.Fatalf("list status %d: %s", status, body)
	}
	var list []map[string]interface{}
	decodeData(t, body, &list)
	if len(list) != 1 {
		t.Fatalf("owner listing = %v", list)
	}
}

func TestCreateResumeRequiresOwner(t *testing.T) {
	e := newTestEnv(t, nil)
	status, _, _ := e.do(t, "POST", "/api/v1/resumes", fiber.Map{})
	if status != fiber.StatusBadRequest {
		t.Fatalf("status %d", status)
	}
}

func TestOpenUnknownResumeReportsLoadError(t *testing.T) {
	e := newTestEnv(t, nil)
	status, body, _ := e.do(t, "GET", "/api/v1/resumes/missing", nil)
	if status != fiber.StatusOK {
		t.Fatalf("status %d", status)
	}
	var sess sessionResponse
	decodeData(t, body, &sess)
	if !strings.Contains(sess.LoadError, "not found") {
		t.Fatalf("load error = %q", sess.LoadError)
	}
}

func TestUpdateFieldSavesSummary(t *testing.T) {
	e := newTestEnv(t, nil)
	id := e.seed(t)

	status, body, _ := e.do(t, "PATCH", "/api/v1/resumes/"+id+"/fields", fiber.Map{
		"op": "setScalar", "field": "summary", "value": "Ten years shipping APIs.", "save": true,
	})
	if status != fiber.StatusOK {
		t.Fatalf("status %d: %s", status, body)
	}
	stored, err := e.repo.FetchResume(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Summary != "Ten years shipping APIs." {
		t.Fatalf("stored summary = %q", stored.Summary)
	}
}

func TestUpdateFieldRejectsKindMismatch(t *testing.T) {
	e := newTestEnv(t, nil)
	id := e.seed(t)

	status, _, _ := e.do(t, "PATCH", "/api/v1/resumes/"+id+"/fields", fiber.Map{
		"op": "setScalar", "field": "experience", "value": "x",
	})
	if status != fiber.StatusBadRequest {
		t.Fatalf("status %d", status)
	}
	status, _, _ = e.do(t, "PATCH", "/api/v1/resumes/"+id+"/fields", fiber.Map{
		"op": "mergeMap", "field": "socialLinks", "value": fiber.Map{"myspace": "https://x"},
	})
	if status != fiber.StatusBadRequest {
		t.Fatalf("unknown platform status %d", status)
	}
}

func TestUpdateFieldRejectsMalformedSectionOrder(t *testing.T) {
	e := newTestEnv(t, nil)
	id := e.seed(t)

	status, body, _ := e.do(t, "PATCH", "/api/v1/resumes/"+id+"/fields", fiber.Map{
		"op": "replaceList", "field": "sectionOrder", "value": []string{"skills", "skills"}, "save": true,
	})
	if status != fiber.StatusBadRequest {
		t.Fatalf("status %d: %s", status, body)
	}
	stored, _ := e.repo.FetchResume(context.Background(), id)
	if len(stored.SectionOrder) != 4 || stored.SectionOrder[0] != model.SectionSummary {
		t.Fatalf("stored order = %v", stored.SectionOrder)
	}
}

func TestSaveAchievementsValidation(t *testing.T) {
	e := newTestEnv(t, nil)
	id := e.seed(t)

	status, body, _ := e.do(t, "PUT", "/api/v1/resumes/"+id+"/achievements", fiber.Map{
		"items": []model.Achievement{{Title: "Award", Description: "Won"}, {Title: "", Description: "x"}},
	})
	if status != fiber.StatusUnprocessableEntity {
		t.Fatalf("status %d: %s", status, body)
	}
	var v validationData
	decodeData(t, body, &v)
	if v.Index != 1 || v.Field != "title" {
		t.Fatalf("validation data = %+v", v)
	}

	status, body, _ = e.do(t, "PUT", "/api/v1/resumes/"+id+"/achievements", fiber.Map{
		"items": []model.Achievement{{Title: "Award", Description: "Won"}},
	})
	if status != fiber.StatusOK {
		t.Fatalf("status %d: %s", status, body)
	}
	stored, _ := e.repo.FetchResume(context.Background(), id)
	if len(stored.Achievements) != 1 || stored.Achievements[0].Title != "Award" {
		t.Fatalf("stored = %+v", stored.Achievements)
	}
}

func TestSelectTemplateAndTheme(t *testing.T) {
	e := newTestEnv(t, nil)
	id := e.seed(t)

	if status, _, _ := e.do(t, "PUT", "/api/v1/resumes/"+id+"/template", fiber.Map{"template": "fancy"}); status != fiber.StatusBadRequest {
		t.Fatalf("unknown template status %d", status)
	}
	if status, body, _ := e.do(t, "PUT", "/api/v1/resumes/"+id+"/template", fiber.Map{"template": "modern"}); status != fiber.StatusOK {
		t.Fatalf("status %d: %s", status, body)
	}
	if status, _, _ := e.do(t, "PUT", "/api/v1/resumes/"+id+"/theme", fiber.Map{"themeColor": "not a color"}); status != fiber.StatusBadRequest {
		t.Fatalf("bad color status %d", status)
	}
	stored, _ := e.repo.FetchResume(context.Background(), id)
	if stored.Template != "modern" {
		t.Fatalf("template = %q", stored.Template)
	}
}

func TestReorderSections(t *testing.T) {
	e := newTestEnv(t, nil)
	id := e.seed(t)

	status, body, _ := e.do(t, "POST", "/api/v1/resumes/"+id+"/section-order/reorder", fiber.Map{"from": 0, "to": 2})
	if status != fiber.StatusOK {
		t.Fatalf("status %d: %s", status, body)
	}
	if status, _, _ := e.do(t, "POST", "/api/v1/resumes/"+id+"/section-order/reorder", fiber.Map{"from": 0, "to": 99}); status != fiber.StatusBadRequest {
		t.Fatalf("out of range status %d", status)
	}
	if status, body, _ := e.do(t, "PUT", "/api/v1/resumes/"+id+"/section-order", nil); status != fiber.StatusOK {
		t.Fatalf("save status %d: %s", status, body)
	}
	stored, _ := e.repo.FetchResume(context.Background(), id)
	want := model.DefaultSectionOrder()
	want[0], want[1], want[2] = want[1], want[2], want[0]
	for i := range want {
		if stored.SectionOrder[i] != want[i] {
			t.Fatalf("stored order = %v, want %v", stored.SectionOrder, want)
		}
	}
}

func TestPreviewUsesCache(t *testing.T) {
	e := newTestEnv(t, nil)
	id := e.seed(t)

	status, body, resp := e.do(t, "GET", "/api/v1/resumes/"+id+"/preview", nil)
	if status != fiber.StatusOK {
		t.Fatalf("status %d: %s", status, body)
	}
	if got := resp.Get("X-Preview-Cache"); got != "miss" {
		t.Fatalf("first preview cache header = %q", got)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc.Text(), "Alex") {
		t.Fatal("preview should contain the resume name")
	}

	_, again, resp := e.do(t, "GET", "/api/v1/resumes/"+id+"/preview", nil)
	if got := resp.Get("X-Preview-Cache"); got != "hit" {
		t.Fatalf("second preview cache header = %q", got)
	}
	if !bytes.Equal(body, again) {
		t.Fatal("cached page differs")
	}

	_, _, resp = e.do(t, "GET", "/api/v1/resumes/"+id+"/preview?template=minimal", nil)
	if got := resp.Get("X-Preview-Cache"); got != "miss" {
		t.Fatalf("other template should miss, got %q", got)
	}
}

func TestSampleTemplate(t *testing.T) {
	e := newTestEnv(t, nil)
	if status, _, _ := e.do(t, "GET", "/api/v1/templates/modern/sample", nil); status != fiber.StatusOK {
		t.Fatalf("status %d", status)
	}
	if status, _, _ := e.do(t, "GET", "/api/v1/templates/nope/sample", nil); status != fiber.StatusNotFound {
		t.Fatalf("status %d", status)
	}
}

func TestAssist(t *testing.T) {
	e := newTestEnv(t, nil)
	id := e.seed(t)
	if status, _, _ := e.do(t, "POST", "/api/v1/resumes/"+id+"/assist/summary", nil); status != fiber.StatusServiceUnavailable {
		t.Fatalf("unconfigured status %d", status)
	}

	e = newTestEnv(t, stubAssistant{text: "<ul><li>Shipped</li></ul><img src=x onerror=alert(1)>"})
	id = e.seed(t)
	status, body, _ := e.do(t, "POST", "/api/v1/resumes/"+id+"/assist/experience/0", nil)
	if status != fiber.StatusOK {
		t.Fatalf("status %d: %s", status, body)
	}
	var s suggestionResponse
	decodeData(t, body, &s)
	if strings.Contains(s.Suggestion, "onerror") || !strings.Contains(s.Suggestion, "<li>Shipped</li>") {
		t.Fatalf("suggestion = %q", s.Suggestion)
	}
	if status, _, _ := e.do(t, "POST", "/api/v1/resumes/"+id+"/assist/experience/42", nil); status != fiber.StatusBadRequest {
		t.Fatalf("out of range status %d", status)
	}

	e = newTestEnv(t, stubAssistant{err: errors.New("upstream down")})
	id = e.seed(t)
	if status, _, _ := e.do(t, "POST", "/api/v1/resumes/"+id+"/assist/summary", nil); status != fiber.StatusBadGateway {
		t.Fatalf("failing assistant status %d", status)
	}
}
