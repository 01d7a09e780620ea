package ws

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/armaan-yadav/apna-resume/internal/usecase"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

const (
	FramePreview = "preview"
	FrameError   = "error"
)

// Frame is one message pushed to a preview client.
type Frame struct {
	Type     string `json:"type"`
	ResumeID string `json:"resumeId"`
	Version  uint64 `json:"version,omitempty"`
	Template string `json:"template,omitempty"`
	HTML     string `json:"html,omitempty"`
	Error    string `json:"error,omitempty"`
}

// command is sent by the client to switch layouts without saving.
type command struct {
	Template string `json:"template"`
}

// Client is one websocket watching a resume preview.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	session  *usecase.Session
	release  func()
	resumeID string

	template chan string
	done     chan struct{}
}

func NewClient(hub *Hub, conn *websocket.Conn, session *usecase.Session, release func(), template string) *Client {
	c := &Client{
		hub:      hub,
		conn:     conn,
		session:  session,
		release:  release,
		resumeID: session.ID,
		template: make(chan string, 1),
		done:     make(chan struct{}),
	}
	c.template <- template
	return c
}

// ReadPump handles template commands and pongs until the socket closes.
func (c *Client) ReadPump() {
	defer func() {
		close(c.done)
		c.hub.Unregister(c)
		c.release()
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		var cmd command
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("preview read failed", "resume_id", c.resumeID, "error", err)
			}
			return
		}
		// keep only the latest requested layout
		select {
		case <-c.template:
		default:
		}
		c.template <- cmd.Template
	}
}

// WritePump pushes a frame for every store change and layout switch.
func (c *Client) WritePump() {
	updates, cancel := c.session.Store.Subscribe()
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		cancel()
		ticker.Stop()
		_ = c.conn.Close()
	}()

	current := ""
	for {
		select {
		case <-c.done:
			return
		case t := <-c.template:
			current = t
			if !c.push(current) {
				return
			}
		case _, ok := <-updates:
			if !ok {
				return
			}
			if !c.push(current) {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) push(templateID string) bool {
	frame, err := c.hub.render(c.session, templateID)
	if err != nil {
		c.hub.logger.Error("preview render failed", "resume_id", c.resumeID, "error", err)
		frame = Frame{Type: FrameError, ResumeID: c.resumeID, Error: "preview unavailable"}
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(frame); err != nil {
		return false
	}
	return true
}
