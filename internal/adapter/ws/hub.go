package ws

import (
	"context"
	"log/slog"
	"sync"

	"github.com/armaan-yadav/apna-resume/internal/model"
	"github.com/armaan-yadav/apna-resume/internal/usecase"
)

// SessionSource hands out the editing session a preview follows. The
// session stays open until release is called.
type SessionSource interface {
	Acquire(ctx context.Context, id string) (session *usecase.Session, release func())
}

type Renderer interface {
	RenderString(templateID string, doc model.Resume) (string, error)
}

// Hub tracks preview clients per resume.
type Hub struct {
	sessions SessionSource
	renderer Renderer
	logger   *slog.Logger

	mutex   sync.RWMutex
	clients map[string]map[*Client]bool
}

func NewHub(sessions SessionSource, renderer Renderer, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		sessions: sessions,
		renderer: renderer,
		logger:   logger,
		clients:  make(map[string]map[*Client]bool),
	}
}

func (h *Hub) Register(client *Client) {
	h.mutex.Lock()
	set, ok := h.clients[client.resumeID]
	if !ok {
		set = make(map[*Client]bool)
		h.clients[client.resumeID] = set
	}
	set[client] = true
	total := len(set)
	h.mutex.Unlock()
	h.logger.Info("preview connected", "resume_id", client.resumeID, "clients", total)
}

func (h *Hub) Unregister(client *Client) {
	h.mutex.Lock()
	set := h.clients[client.resumeID]
	if _, ok := set[client]; ok {
		delete(set, client)
		if len(set) == 0 {
			delete(h.clients, client.resumeID)
		}
	}
	total := len(set)
	h.mutex.Unlock()
	h.logger.Info("preview disconnected", "resume_id", client.resumeID, "clients", total)
}

// ClientCount returns the number of clients watching a resume.
func (h *Hub) ClientCount(resumeID string) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[resumeID])
}

// render produces one preview frame for the current store state.
func (h *Hub) render(s *usecase.Session, templateID string) (Frame, error) {
	doc := s.Store.Snapshot()
	if templateID == "" {
		templateID = doc.Template
	}
	page, err := h.renderer.RenderString(templateID, doc)
	if err != nil {
		return Frame{}, err
	}
	return Frame{
		Type:     FramePreview,
		ResumeID: s.ID,
		Version:  s.Store.Version(),
		Template: string(model.ResolveTemplate(templateID)),
		HTML:     page,
	}, nil
}
