package rod

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/TheOne1006/kbsite"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultPageLimit is the number of pages a browser serves before it is
// restarted.
const DefaultPageLimit = 75

// BrowserManager owns the headless Chrome process used by Fetcher. Chrome's
// resident memory keeps growing across page loads, so the process is
// replaced after every PageLimit pages.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	pages    int
	recycles int
	closed   bool

	pageLimit int
	bin       string
	noSandbox bool
	logger    *slog.Logger
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithPageLimit sets how many pages a browser serves before it is restarted.
func WithPageLimit(n int) ManagerOption {
	return func(m *BrowserManager) {
		m.pageLimit = n
	}
}

// WithBrowserBin uses the Chrome binary at path instead of the one found
// or downloaded by the launcher.
func WithBrowserBin(path string) ManagerOption {
	return func(m *BrowserManager) {
		m.bin = path
	}
}

// WithNoSandbox disables the Chrome sandbox, needed when running as root in
// a container.
func WithNoSandbox(v bool) ManagerOption {
	return func(m *BrowserManager) {
		m.noSandbox = v
	}
}

// WithLogger logs browser restarts to logger.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *BrowserManager) {
		m.logger = logger
	}
}

// NewBrowserManager launches a headless Chrome browser.
// Close must be called when the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	m := &BrowserManager{
		pageLimit: DefaultPageLimit,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}

	browser, l, err := m.launch()
	if err != nil {
		return nil, err
	}
	m.browser, m.launcher = browser, l
	return m, nil
}

// Browser returns the running browser, restarting it first when the page
// limit has been reached. Call PageDone once per page opened on it.
func (m *BrowserManager) Browser() (*rod.Browser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, kbsite.Errorf(kbsite.EINVALID, "browser is closed")
	}
	if m.pageLimit > 0 && m.pages >= m.pageLimit {
		m.restart()
	}
	return m.browser, nil
}

// PageDone counts one page toward the restart limit.
func (m *BrowserManager) PageDone() {
	m.mu.Lock()
	m.pages++
	m.mu.Unlock()
}

// Recycles returns how many times the browser has been restarted.
func (m *BrowserManager) Recycles() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recycles
}

// LauncherPID returns the process ID of the running browser, or 0.
func (m *BrowserManager) LauncherPID() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.launcher == nil {
		return 0
	}
	return m.launcher.PID()
}

// Close stops the browser. Close is safe to call multiple times.
func (m *BrowserManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	err := shutdown(m.browser, m.launcher)
	m.browser, m.launcher = nil, nil
	return err
}

// restart replaces the browser. The old one keeps serving when the new one
// fails to start. Must be called with mu held.
func (m *BrowserManager) restart() {
	browser, l, err := m.launch()
	if err != nil {
		m.logger.Warn("browser restart failed", "pages", m.pages, "err", err)
		return
	}

	if err := shutdown(m.browser, m.launcher); err != nil {
		m.logger.Debug("close old browser", "err", err)
	}
	m.browser, m.launcher = browser, l
	m.recycles++
	m.logger.Info("browser restarted", "pages", m.pages, "recycles", m.recycles)
	m.pages = 0
}

func (m *BrowserManager) launch() (*rod.Browser, *launcher.Launcher, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		NoSandbox(m.noSandbox).
		Leakless(true).
		Headless(true)
	if m.bin != "" {
		l = l.Bin(m.bin)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return browser, l, nil
}

func shutdown(browser *rod.Browser, l *launcher.Launcher) error {
	var err error
	if browser != nil {
		err = browser.Close()
	}
	if l != nil {
		l.Kill()
	}
	return err
}
