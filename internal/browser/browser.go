// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package browser renders HTML documents to JPEG images with a headless
// Chrome instance driven over the DevTools protocol. Every render launches
// a fresh browser process; nothing is shared between invocations, so
// concurrent renders cannot interfere with each other.
package browser

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/page"
	cdpruntime "github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

const (
	// jpegQuality is the encoder quality for captured screenshots.
	jpegQuality = 90

	// renderTimeout bounds one full render, including browser launch and
	// remote webfont fetches. A hung Chrome gets killed, not waited on.
	renderTimeout = 30 * time.Second
)

// ChromeRenderer renders HTML to JPEG using a per-call headless Chrome.
type ChromeRenderer struct {
	execPath string
}

// NewChromeRenderer creates a renderer. execPath optionally points at a
// Chrome/Chromium binary; when empty, chromedp resolves one from PATH.
func NewChromeRenderer(execPath string) *ChromeRenderer {
	return &ChromeRenderer{execPath: execPath}
}

// RenderJPEG loads the given HTML document in a fresh headless browser,
// waits for the page (including web fonts) to finish loading, and captures
// a JPEG screenshot clipped to width x height pixels.
//
// The browser process is always released before returning, whether the
// render succeeded or not. A cleanup failure is logged and swallowed; it
// never masks the render result.
func (r *ChromeRenderer) RenderJPEG(ctx context.Context, html string, width, height int) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Headless,
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, renderTimeout)
	defer cancelTimeout()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer func() {
		// Graceful shutdown waits for the Chrome process to exit so no
		// orphans accumulate under load.
		if err := chromedp.Cancel(browserCtx); err != nil {
			slog.Warn("browser cleanup failed", "error", err)
		}
		cancelBrowser()
	}()

	// Loading via data URI avoids temp files and serves the document with
	// no network fetch for the page itself (fonts still load remotely).
	dataURI := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))

	var buf []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(width), int64(height)),
		chromedp.Navigate(dataURI),
		chromedp.WaitReady("body", chromedp.ByQuery),
		// Screenshot only after webfonts resolve, otherwise text renders
		// in the fallback font.
		chromedp.Evaluate(`document.fonts.ready.then(() => true)`, nil,
			func(p *cdpruntime.EvaluateParams) *cdpruntime.EvaluateParams {
				return p.WithAwaitPromise(true)
			}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatJpeg).
				WithQuality(jpegQuality).
				WithClip(&page.Viewport{
					X:      0,
					Y:      0,
					Width:  float64(width),
					Height: float64(height),
					Scale:  1,
				}).
				Do(ctx)
			return err
		}),
	}

	if err := chromedp.Run(browserCtx, tasks); err != nil {
		return nil, fmt.Errorf("headless render: %w", err)
	}
	if len(buf) == 0 {
		return nil, fmt.Errorf("headless render: empty screenshot")
	}
	return buf, nil
}
