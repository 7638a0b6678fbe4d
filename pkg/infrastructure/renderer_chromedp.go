package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ErrRendererUnavailable means the configured browser binary does not exist.
var ErrRendererUnavailable = errors.New("pdf renderer binary not found")

// RendererOptions configures headless Chrome printing.
type RendererOptions struct {
	ExecPath string
	Timeout  time.Duration
	PageSize string
	Margin   string
}

type ChromedpRenderer struct {
	execPath    string
	timeout     time.Duration
	paperWidth  float64
	paperHeight float64
	margin      float64
}

// NewChromedpRenderer validates the page options and, when ExecPath is set,
// that the binary exists.
func NewChromedpRenderer(opts RendererOptions) (*ChromedpRenderer, error) {
	w, h, err := ParsePageSize(opts.PageSize)
	if err != nil {
		return nil, err
	}
	margin, err := ParseLength(opts.Margin)
	if err != nil {
		return nil, err
	}
	if opts.ExecPath != "" {
		if _, err := os.Stat(opts.ExecPath); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrRendererUnavailable, opts.ExecPath)
		}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ChromedpRenderer{
		execPath:    opts.ExecPath,
		timeout:     timeout,
		paperWidth:  w,
		paperHeight: h,
		margin:      margin,
	}, nil
}

// RenderHTMLToPDF starts a private headless browser, loads html from a
// temporary file and prints it. Each call is independent.
func (r *ChromedpRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("allow-file-access-from-files", true),
	)
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	runCtx, cancelRun := context.WithTimeout(cctx, r.timeout)
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "cvgen-render-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, err
	}

	var pdfBuf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(r.paperWidth).
				WithPaperHeight(r.paperHeight).
				WithMarginTop(r.margin).
				WithMarginBottom(r.margin).
				WithMarginLeft(r.margin).
				WithMarginRight(r.margin).
				WithPreferCSSPageSize(false).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp print: %w", err)
	}
	return pdfBuf, nil
}
