// Package fetcher renders listing and article pages through a headless
// browser and downloads binary artifacts over plain HTTP.
package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/pgherardini/ainewswire/internal/config"
	"github.com/pgherardini/ainewswire/internal/types"
)

// Browser renders pages with a headless Chromium via Rod. A Browser is
// acquired per pipeline phase and released when the phase completes;
// each Render uses a fresh page scoped to one navigation.
type Browser struct {
	browser    *rod.Browser
	cfg        *config.Config
	useStealth bool
	logger     *slog.Logger
}

// NewBrowser launches a browser instance.
func NewBrowser(cfg *config.Config, logger *slog.Logger) (*Browser, error) {
	l := launcher.New().
		Headless(cfg.Fetcher.Headless).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Set("disable-blink-features", "AutomationControlled")

	launchURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(launchURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	b := &Browser{
		browser:    browser,
		cfg:        cfg,
		useStealth: cfg.Fetcher.Stealth,
		logger:     logger.With("component", "browser"),
	}

	b.logger.Debug("browser ready", "headless", cfg.Fetcher.Headless, "stealth", b.useStealth)
	return b, nil
}

// Render navigates to a URL, waits out the configured post-load delay,
// and returns the rendered document.
func (b *Browser) Render(ctx context.Context, url string) (*goquery.Document, error) {
	start := time.Now()

	page, err := b.newPage()
	if err != nil {
		return nil, &types.FetchError{URL: url, Err: err}
	}
	defer page.Close()

	page = page.Context(ctx)

	if ua := b.cfg.Fetcher.UserAgent; ua != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: ua}); err != nil {
			b.logger.Warn("failed to set user agent", "error", err)
		}
	}

	timeout := b.cfg.Search.Timeout
	if err := page.Timeout(timeout).Navigate(url); err != nil {
		return nil, &types.FetchError{URL: url, Err: err}
	}
	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		b.logger.Warn("page load timeout, continuing", "url", url, "error", err)
	}

	// Rendered listings populate asynchronously after load.
	time.Sleep(b.cfg.Search.WaitTime)

	html, err := page.HTML()
	if err != nil {
		return nil, &types.FetchError{URL: url, Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &types.ParseError{URL: url, Err: err}
	}

	b.logger.Debug("page rendered", "url", url, "size", len(html), "duration", time.Since(start))
	return doc, nil
}

// newPage opens a blank page, stealth-patched when configured.
func (b *Browser) newPage() (*rod.Page, error) {
	if b.useStealth {
		return stealth.Page(b.browser)
	}
	return b.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
}

// Close shuts the browser down.
func (b *Browser) Close() error {
	if b.browser != nil {
		return b.browser.Close()
	}
	return nil
}
