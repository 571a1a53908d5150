package rod

import (
	"sync"

	"github.com/fwojciec/skeptic"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of rendered pages after which the browser
// is replaced with a fresh process.
const DefaultMaxPages = 75

// generation is one Chrome process and the pages currently rendering in it.
type generation struct {
	browser  *rod.Browser
	stop     func() error
	inflight int
	retired  bool
}

// browser owns a headless Chrome process and replaces it every maxPages
// pages. Chrome's resident memory only grows under sustained use, which
// matters for a long-running server.
//
// A replaced generation keeps running until its last page is released.
//
// browser is safe for concurrent use.
type browser struct {
	mu       sync.Mutex
	start    func() (*generation, error)
	current  *generation
	pages    int
	maxPages int
	closed   bool
}

func newBrowser(maxPages int, start func() (*generation, error)) (*browser, error) {
	g, err := start()
	if err != nil {
		return nil, err
	}
	return &browser{start: start, current: g, maxPages: maxPages}, nil
}

// acquire returns the browser to open the next page in, counting the page
// toward the recycling threshold. The returned release func must be called
// once the page is closed; calls after the first are no-ops.
func (b *browser) acquire() (*rod.Browser, func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, nil, skeptic.Errorf(skeptic.EINTERNAL, "browser fetcher is closed")
	}
	if b.maxPages > 0 && b.pages >= b.maxPages {
		b.recycle()
	}
	b.pages++

	g := b.current
	g.inflight++
	var once sync.Once
	return g.browser, func() { once.Do(func() { b.release(g) }) }, nil
}

func (b *browser) release(g *generation) {
	b.mu.Lock()
	defer b.mu.Unlock()

	g.inflight--
	if g.retired && g.inflight == 0 {
		_ = g.stop()
	}
}

// close retires the current generation. Pages still rendering finish first.
func (b *browser) close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	return b.retire(b.current)
}

// recycle swaps in a fresh generation. The old one is kept if the new
// launch fails. Must be called with mu held.
func (b *browser) recycle() {
	next, err := b.start()
	if err != nil {
		return
	}
	old := b.current
	b.current = next
	b.pages = 0
	_ = b.retire(old)
}

// retire stops g now if it is idle, otherwise when its last page is
// released. Must be called with mu held.
func (b *browser) retire(g *generation) error {
	g.retired = true
	if g.inflight == 0 {
		return g.stop()
	}
	return nil
}

// launchChrome starts Chrome and connects to it.
func launchChrome() (*generation, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, skeptic.WrapErrorf(err, skeptic.ENOTSUPPORTED, "launching browser")
	}

	rb := rod.New().ControlURL(u)
	if err := rb.Connect(); err != nil {
		l.Kill()
		return nil, skeptic.WrapErrorf(err, skeptic.ENOTSUPPORTED, "connecting to browser")
	}

	return &generation{
		browser: rb,
		stop: func() error {
			err := rb.Close()
			l.Kill()
			return err
		},
	}, nil
}
