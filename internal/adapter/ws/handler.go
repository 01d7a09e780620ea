package ws

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const pathPrefix = "/ws/resumes/"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades /ws/resumes/{id}/preview requests. The optional template
// query parameter selects the initial layout.
type Handler struct {
	hub         *Hub
	openTimeout time.Duration
}

func NewHandler(hub *Hub, openTimeout time.Duration) *Handler {
	if openTimeout <= 0 {
		openTimeout = 15 * time.Second
	}
	return &Handler{hub: hub, openTimeout: openTimeout}
}

func resumeIDFromPath(p string) (string, bool) {
	rest, ok := strings.CutPrefix(p, pathPrefix)
	if !ok {
		return "", false
	}
	id, ok := strings.CutSuffix(rest, "/preview")
	if !ok || id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := resumeIDFromPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), h.openTimeout)
	session, release := h.hub.sessions.Acquire(ctx, id)
	cancel()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		release()
		h.hub.logger.Warn("preview upgrade failed", "resume_id", id, "error", err)
		return
	}

	client := NewClient(h.hub, conn, session, release, r.URL.Query().Get("template"))
	h.hub.Register(client)
	go client.WritePump()
	go client.ReadPump()
}

// NewServer returns the preview server listening on addr.
func NewServer(addr string, h *Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(pathPrefix, h)
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
