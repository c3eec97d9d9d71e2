package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

// LaunchConfig configures the chromium process and every session context.
type LaunchConfig struct {
	ExecutablePath string
	Headless       bool
	Args           []string
	UserAgent      string
	Locale         string
	TimezoneID     string
	ViewportWidth  int
	ViewportHeight int
	DefaultTimeout time.Duration
	InstallDriver  bool
	Blocker        RequestBlocker
}

// DefaultLaunchArgs are the chromium flags used for scraping.
func DefaultLaunchArgs() []string {
	return []string{
		"--disable-blink-features=AutomationControlled",
		"--disable-dev-shm-usage",
		"--no-sandbox",
		"--disable-setuid-sandbox",
		"--disable-web-security",
		"--disable-features=IsolateOrigins,site-per-process",
		"--disable-site-isolation-trials",
		"--disable-accelerated-2d-canvas",
		"--disable-gpu",
		"--disable-extensions",
		"--disable-software-rasterizer",
		"--disable-dev-tools",
		"--disable-browser-side-navigation",
		"--disable-notifications",
		"--disable-popup-blocking",
		"--disable-background-timer-throttling",
		"--disable-backgrounding-occluded-windows",
		"--disable-renderer-backgrounding",
		"--disable-ipc-flooding-protection",
		"--disable-hang-monitor",
		"--disable-sync",
		"--metrics-recording-only",
		"--mute-audio",
		"--no-first-run",
		"--safebrowsing-disable-auto-update",
		"--password-store=basic",
		"--use-mock-keychain",
	}
}

// PlaywrightLauncher shares one chromium process and opens a new browser
// context per session.
type PlaywrightLauncher struct {
	cfg       LaunchConfig
	selectors Selectors

	mu      sync.Mutex
	pw      *playwright.Playwright
	browser playwright.Browser
}

func NewPlaywrightLauncher(cfg LaunchConfig, selectors Selectors) *PlaywrightLauncher {
	return &PlaywrightLauncher{
		cfg:       cfg,
		selectors: selectors,
	}
}

func (l *PlaywrightLauncher) start(ctx context.Context) (playwright.Browser, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.browser != nil && l.browser.IsConnected() {
		return l.browser, nil
	}

	if l.pw == nil {
		if l.cfg.InstallDriver {
			if err := playwright.Install(&playwright.RunOptions{SkipInstallBrowsers: true}); err != nil {
				return nil, fmt.Errorf("install playwright driver: %w", err)
			}
		}

		pw, err := playwright.Run()
		if err != nil {
			return nil, fmt.Errorf("start playwright: %w", err)
		}

		l.pw = pw
	}

	opts := playwright.BrowserTypeLaunchOptions{
		Headless:          playwright.Bool(l.cfg.Headless),
		Args:              l.cfg.Args,
		IgnoreDefaultArgs: []string{"--disable-http-compression"},
		ChromiumSandbox:   playwright.Bool(false),
		HandleSIGINT:      playwright.Bool(false),
		HandleSIGTERM:     playwright.Bool(false),
		HandleSIGHUP:      playwright.Bool(false),
	}
	if l.cfg.ExecutablePath != "" {
		opts.ExecutablePath = playwright.String(l.cfg.ExecutablePath)
	}

	browser, err := l.pw.Chromium.Launch(opts)
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	slog.InfoContext(ctx, "chromium launched",
		slog.Bool("headless", l.cfg.Headless),
		slog.String("executable", l.cfg.ExecutablePath))

	l.browser = browser

	return browser, nil
}

// NewSession opens an isolated context with request blocking installed.
func (l *PlaywrightLauncher) NewSession(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := l.start(ctx)
	if err != nil {
		return nil, err
	}

	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  l.cfg.ViewportWidth,
			Height: l.cfg.ViewportHeight,
		},
		UserAgent:         playwright.String(l.cfg.UserAgent),
		Locale:            playwright.String(l.cfg.Locale),
		TimezoneId:        playwright.String(l.cfg.TimezoneID),
		ColorScheme:       playwright.ColorSchemeLight,
		IgnoreHttpsErrors: playwright.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("new browser context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return nil, fmt.Errorf("new page: %w", err)
	}

	if l.cfg.DefaultTimeout > 0 {
		page.SetDefaultTimeout(milliseconds(l.cfg.DefaultTimeout))
	}

	blocker := l.cfg.Blocker
	if err := page.Route("**/*", func(route playwright.Route) {
		if blocker.Blocks(route.Request().URL()) {
			_ = route.Abort()
			return
		}

		_ = route.Continue()
	}); err != nil {
		_ = bctx.Close()
		return nil, fmt.Errorf("install request blocking: %w", err)
	}

	return &playwrightSession{
		bctx: bctx,
		page: &playwrightPage{page: page, selectors: l.selectors},
	}, nil
}

// Close stops chromium and the playwright driver.
func (l *PlaywrightLauncher) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var errs []error

	if l.browser != nil {
		errs = append(errs, l.browser.Close())
		l.browser = nil
	}

	if l.pw != nil {
		errs = append(errs, l.pw.Stop())
		l.pw = nil
	}

	return errors.Join(errs...)
}

type playwrightSession struct {
	bctx playwright.BrowserContext
	page *playwrightPage
}

func (s *playwrightSession) Page() Page {
	return s.page
}

func (s *playwrightSession) Close() error {
	return s.bctx.Close()
}

type playwrightPage struct {
	page      playwright.Page
	selectors Selectors
}

func (p *playwrightPage) Locate(target Target) Element {
	sel, err := p.selectors.Lookup(target)
	if err != nil {
		return &playwrightElement{target: target, err: err}
	}

	var loc playwright.Locator
	if sel.Role != "" {
		opts := playwright.PageGetByRoleOptions{}
		if sel.Name != "" {
			opts.Name = sel.Name
		}
		loc = p.page.GetByRole(playwright.AriaRole(sel.Role), opts)
	} else {
		loc = p.page.Locator(sel.CSS)
	}

	return &playwrightElement{target: target, loc: loc, selectors: p.selectors}
}

func (p *playwrightPage) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}

	return nil
}

func (p *playwrightPage) PressKey(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return p.page.Keyboard().Press(key)
}

func (p *playwrightPage) Wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type playwrightElement struct {
	target    Target
	loc       playwright.Locator
	selectors Selectors
	err       error
}

func (e *playwrightElement) derive(loc playwright.Locator) Element {
	if e.err != nil {
		return e
	}

	return &playwrightElement{target: e.target, loc: loc, selectors: e.selectors}
}

func (e *playwrightElement) Locate(target Target) Element {
	if e.err != nil {
		return e
	}

	sel, err := e.selectors.Lookup(target)
	if err != nil {
		return &playwrightElement{target: target, err: err}
	}

	var loc playwright.Locator
	if sel.Role != "" {
		opts := playwright.LocatorGetByRoleOptions{}
		if sel.Name != "" {
			opts.Name = sel.Name
		}
		loc = e.loc.GetByRole(playwright.AriaRole(sel.Role), opts)
	} else {
		loc = e.loc.Locator(sel.CSS)
	}

	return &playwrightElement{target: target, loc: loc, selectors: e.selectors}
}

func (e *playwrightElement) First() Element {
	if e.err != nil {
		return e
	}

	return e.derive(e.loc.First())
}

func (e *playwrightElement) Nth(index int) Element {
	if e.err != nil {
		return e
	}

	return e.derive(e.loc.Nth(index))
}

func (e *playwrightElement) Filter(text string) Element {
	if e.err != nil {
		return e
	}

	return e.derive(e.loc.Filter(playwright.LocatorFilterOptions{HasText: text}))
}

func (e *playwrightElement) Visible() Element {
	if e.err != nil {
		return e
	}

	return e.derive(e.loc.Locator("visible=true"))
}

func (e *playwrightElement) ready(ctx context.Context) error {
	if e.err != nil {
		return e.err
	}

	return ctx.Err()
}

func (e *playwrightElement) wrap(op string, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s %s: %w", op, e.target, err)
}

func (e *playwrightElement) Count(ctx context.Context) (int, error) {
	if err := e.ready(ctx); err != nil {
		return 0, err
	}

	n, err := e.loc.Count()

	return n, e.wrap("count", err)
}

func (e *playwrightElement) All(ctx context.Context) ([]Element, error) {
	if err := e.ready(ctx); err != nil {
		return nil, err
	}

	locs, err := e.loc.All()
	if err != nil {
		return nil, e.wrap("list", err)
	}

	elements := make([]Element, len(locs))
	for i, loc := range locs {
		elements[i] = e.derive(loc)
	}

	return elements, nil
}

func (e *playwrightElement) WaitVisible(ctx context.Context, timeout time.Duration) error {
	if err := e.ready(ctx); err != nil {
		return err
	}

	return e.wrap("wait visible", e.loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(milliseconds(timeout)),
	}))
}

func (e *playwrightElement) WaitHidden(ctx context.Context, timeout time.Duration) error {
	if err := e.ready(ctx); err != nil {
		return err
	}

	return e.wrap("wait hidden", e.loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateHidden,
		Timeout: playwright.Float(milliseconds(timeout)),
	}))
}

func (e *playwrightElement) Text(ctx context.Context) (*string, error) {
	n, err := e.Count(ctx)
	if err != nil {
		return nil, err
	}

	if n == 0 {
		return nil, nil
	}

	text, err := e.loc.TextContent()
	if err != nil {
		return nil, e.wrap("read text", err)
	}

	return &text, nil
}

func (e *playwrightElement) Attribute(ctx context.Context, name string) (string, error) {
	if err := e.ready(ctx); err != nil {
		return "", err
	}

	value, err := e.loc.GetAttribute(name)

	return value, e.wrap("read attribute "+name+" of", err)
}

func (e *playwrightElement) Click(ctx context.Context, count int) error {
	if err := e.ready(ctx); err != nil {
		return err
	}

	if count <= 0 {
		return nil
	}

	return e.wrap("click", e.loc.Click(playwright.LocatorClickOptions{
		ClickCount: playwright.Int(count),
	}))
}

func (e *playwrightElement) Fill(ctx context.Context, value string) error {
	if err := e.ready(ctx); err != nil {
		return err
	}

	return e.wrap("fill", e.loc.Fill(value))
}

func (e *playwrightElement) Press(ctx context.Context, key string) error {
	if err := e.ready(ctx); err != nil {
		return err
	}

	return e.wrap("press "+key+" on", e.loc.Press(key))
}

func (e *playwrightElement) Focus(ctx context.Context) error {
	if err := e.ready(ctx); err != nil {
		return err
	}

	return e.wrap("focus", e.loc.Focus())
}

func (e *playwrightElement) ScrollIntoView(ctx context.Context) error {
	if err := e.ready(ctx); err != nil {
		return err
	}

	return e.wrap("scroll to", e.loc.ScrollIntoViewIfNeeded())
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
