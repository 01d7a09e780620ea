// Command thumbnails renders a resume with every layout and captures a PNG
// per layout for the template gallery.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/armaan-yadav/apna-resume/internal/config"
	"github.com/armaan-yadav/apna-resume/internal/model"
	"github.com/armaan-yadav/apna-resume/internal/render"
	infra "github.com/armaan-yadav/apna-resume/pkg/infrastructure"
)

func main() {
	out := flag.String("out", filepath.Join("static", "img", "templates"), "output directory")
	docPath := flag.String("doc", "", "resume JSON to render (defaults to the sample resume)")
	scale := flag.Float64("scale", 0.5, "thumbnail scale relative to A4")
	flag.Parse()

	cfg := config.Load()
	logger := cfg.NewLogger()

	doc, err := loadDocument(*docPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read resume: %v\n", err)
		os.Exit(2)
	}

	sel, err := render.NewSelector()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load templates: %v\n", err)
		os.Exit(2)
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create out: %v\n", err)
		os.Exit(2)
	}

	thumbs := infra.NewChromedpThumbnailer(cfg.Preview.ChromePath, *scale)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	for _, t := range model.Templates {
		page, err := sel.RenderString(string(t.ID), doc)
		if err != nil {
			logger.Error("render failed", "template", t.ID, "error", err)
			os.Exit(1)
		}
		png, err := thumbs.CapturePNG(ctx, page)
		if err != nil {
			logger.Error("capture failed", "template", t.ID, "error", err)
			os.Exit(1)
		}
		path := filepath.Join(*out, string(t.ID)+".png")
		if err := os.WriteFile(path, png, 0o644); err != nil {
			logger.Error("write failed", "path", path, "error", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", path)
	}
}

func loadDocument(path string) (model.Resume, error) {
	if path == "" {
		return model.SampleResume(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return model.Resume{}, err
	}
	if err := model.ValidateDocument(b); err != nil {
		return model.Resume{}, err
	}
	var doc model.Resume
	if err := json.Unmarshal(b, &doc); err != nil {
		return model.Resume{}, err
	}
	doc.SanitizeRichText()
	return doc, nil
}
