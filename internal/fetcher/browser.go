package fetcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// BrowserConfig is headless browser configuration.
type BrowserConfig struct {
	// Bin is path to browser binary. Empty value lets launcher download one.
	Bin       string
	Headless  bool
	UserAgent string
	// IdleWindow is how long network has to stay quiet to consider page loaded.
	IdleWindow time.Duration
	// SettleDelay is extra wait after network idle for client-side rendering.
	SettleDelay time.Duration
}

// Browser renders pages in shared headless Chrome instance.
// Browser is started lazily on first render.
type Browser struct {
	mu      sync.Mutex
	cfg     BrowserConfig
	browser *rod.Browser
}

// NewBrowser returns new Browser.
func NewBrowser(cfg BrowserConfig) *Browser {
	return &Browser{
		cfg: cfg,
	}
}

// Render opens url in new stealth tab, waits for load, network idle, optional selector and settle delay
// and returns page HTML.
func (b *Browser) Render(ctx context.Context, url string, waitForSelector string) (string, error) {
	browser, err := b.connect()
	if err != nil {
		return "", err
	}

	tab, err := stealth.Page(browser)
	if err != nil {
		return "", fmt.Errorf("can't open browser tab: %w", err)
	}
	defer func() { _ = tab.Close() }()

	page := tab.Context(ctx)

	if b.cfg.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: b.cfg.UserAgent}); err != nil {
			return "", fmt.Errorf("can't set user agent: %w", err)
		}
	}

	waitIdle := page.WaitRequestIdle(b.cfg.IdleWindow, nil, nil, nil)

	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("can't navigate to %s: %w", url, err)
	}

	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("can't wait for %s load: %w", url, err)
	}

	waitIdle()

	if waitForSelector != "" {
		if _, err := page.Element(waitForSelector); err != nil {
			return "", fmt.Errorf("can't wait for element %q: %w", waitForSelector, err)
		}
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(b.cfg.SettleDelay):
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("can't get page html: %w", err)
	}

	return html, nil
}

// Close closes browser if it was started.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser == nil {
		return nil
	}

	err := b.browser.Close()
	b.browser = nil
	if err != nil {
		return fmt.Errorf("can't close browser: %w", err)
	}

	return nil
}

func (b *Browser) connect() (*rod.Browser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser != nil {
		return b.browser, nil
	}

	l := launcher.New().
		Headless(b.cfg.Headless).
		NoSandbox(true).
		Set("disable-dev-shm-usage").
		Set("disable-gpu")
	if b.cfg.Bin != "" {
		l = l.Bin(b.cfg.Bin)
	}

	wsURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("can't launch browser: %w", err)
	}

	browser := rod.New().ControlURL(wsURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("can't connect to browser: %w", err)
	}

	b.browser = browser

	return browser, nil
}
