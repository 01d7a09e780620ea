package render

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gofiber/template/html/v2"

	"github.com/armaan-yadav/apna-resume/internal/model"
)

//go:embed templates
var templateFS embed.FS

// Selector renders a resume with one of the built-in layouts.
type Selector struct {
	engine *html.Engine
}

// NewSelector parses the embedded layouts.
func NewSelector() (*Selector, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("join", strings.Join)
	engine.AddFunc("initial", func(s string) string {
		for _, r := range s {
			return strings.ToUpper(string(r))
		}
		return ""
	})
	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("load resume templates: %w", err)
	}
	return &Selector{engine: engine}, nil
}

// Render writes doc using the layout stored in doc.Template. Unknown or
// empty layouts render as classic.
func (s *Selector) Render(w io.Writer, doc model.Resume) error {
	return s.RenderAs(w, doc.Template, doc)
}

// RenderAs writes doc using the named layout instead of the stored one.
func (s *Selector) RenderAs(w io.Writer, templateID string, doc model.Resume) error {
	id := model.ResolveTemplate(templateID)
	return s.engine.Render(w, string(id), BuildView(id, doc))
}

// RenderString is RenderAs into a string.
func (s *Selector) RenderString(templateID string, doc model.Resume) (string, error) {
	var buf bytes.Buffer
	if err := s.RenderAs(&buf, templateID, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
