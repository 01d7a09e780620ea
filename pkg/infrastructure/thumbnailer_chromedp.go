package infrastructure

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// A4 at 96 dpi.
const (
	a4WidthPx  = 794
	a4HeightPx = 1123
)

// ChromedpThumbnailer captures rendered resume pages as PNG images with
// headless Chrome.
type ChromedpThumbnailer struct {
	chromePath string
	scale      float64
	timeout    time.Duration
}

// NewChromedpThumbnailer returns a thumbnailer. scale shrinks the A4 page
// (0.5 gives a 397x562 image). An empty chromePath uses the default lookup.
func NewChromedpThumbnailer(chromePath string, scale float64) *ChromedpThumbnailer {
	if scale <= 0 || scale > 1 {
		scale = 0.5
	}
	return &ChromedpThumbnailer{chromePath: chromePath, scale: scale, timeout: 60 * time.Second}
}

func (t *ChromedpThumbnailer) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if t.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(t.chromePath))
	}
	return opts
}

// CapturePNG loads html in a fresh browser tab and screenshots the first
// A4 page.
func (t *ChromedpThumbnailer) CapturePNG(ctx context.Context, html string) ([]byte, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx, t.allocatorOptions()...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	runCtx, cancelRun := context.WithTimeout(cctx, t.timeout)
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "resume-thumb-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, err
	}

	var png []byte
	err = chromedp.Run(runCtx,
		emulation.SetDeviceMetricsOverride(a4WidthPx, a4HeightPx, 1, false),
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			png, err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				WithClip(&page.Viewport{X: 0, Y: 0, Width: a4WidthPx, Height: a4HeightPx, Scale: t.scale}).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return png, nil
}
