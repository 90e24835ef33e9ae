package reader

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// DefaultHysteresis is the page tolerance within which scroll-originated
// reports are ignored. Crossing a section boundary while reading flaps the
// dominant visible section by one page; acting on those reports would
// oscillate the slider and the URL.
const DefaultHysteresis = 1

// URLStateFunc receives URL mirror updates from a Controller. Implementations
// forward them to the client, which rewrites its query string without a reload.
type URLStateFunc func(URLState)

// Config configures a Controller.
type Config struct {
	// MaxPage is the upper page bound, taken from the content catalog.
	MaxPage int
	// Hysteresis is the scroll-report tolerance in pages (default 1).
	Hysteresis int
	// RequestedPage is the raw page parameter from the initial request,
	// parsed with ParsePage semantics. Empty means page 1.
	RequestedPage string
	// OnURLState is invoked for every URL mirror update. Optional.
	OnURLState URLStateFunc
	// Logger for state transitions. Defaults to slog.Default.
	Logger *slog.Logger
}

// Controller owns the authoritative reading position for one session.
//
// It is a single-actor state machine: navigation events are processed
// strictly sequentially by one goroutine, so the position can never race
// within a session. The slider value, the URL query string and the client's
// local storage are mirrors that the Controller pushes outward; they are
// never read back as authority.
type Controller struct {
	maxPage    int
	hysteresis int
	onURLState URLStateFunc
	logger     *slog.Logger

	pos atomic.Int64

	events  chan NavigationEvent
	intents chan ScrollIntent
	done    chan struct{}
}

// New creates a Controller in its initial state. The requested page is
// adopted with ParsePage semantics: unparsable input silently becomes page 1,
// out-of-range input is clamped. Call Start to begin processing events.
func New(cfg Config) *Controller {
	if cfg.MaxPage < 1 {
		cfg.MaxPage = 1
	}
	if cfg.Hysteresis <= 0 {
		cfg.Hysteresis = DefaultHysteresis
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	c := &Controller{
		maxPage:    cfg.MaxPage,
		hysteresis: cfg.Hysteresis,
		onURLState: cfg.OnURLState,
		logger:     cfg.Logger,
		events:     make(chan NavigationEvent, 16),
		// Capacity 1: a newly issued intent supersedes an unconsumed one.
		intents: make(chan ScrollIntent, 1),
		done:    make(chan struct{}),
	}
	c.pos.Store(int64(ParsePage(cfg.RequestedPage, cfg.MaxPage)))
	return c
}

// Start runs the event loop until ctx is cancelled.
func (c *Controller) Start(ctx context.Context) {
	go func() {
		defer close(c.done)
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-c.events:
				c.handle(ev)
			}
		}
	}()
}

// Done is closed when the event loop has exited.
func (c *Controller) Done() <-chan struct{} { return c.done }

// Submit delivers a navigation event. Delivery is best-effort: if the inbox
// is full the event is dropped and the next qualifying report self-heals the
// state, since the hysteresis check is stateless per event.
func (c *Controller) Submit(ev NavigationEvent) {
	select {
	case c.events <- ev:
	default:
		c.logger.Warn("reader event dropped, inbox full",
			"kind", ev.Kind.String(), "page", ev.Page)
	}
}

// Intents returns the outbound scroll-intent channel. At most one intent is
// in flight per navigation; a newer intent replaces an unconsumed one.
func (c *Controller) Intents() <-chan ScrollIntent { return c.intents }

// Position returns the current authoritative page.
func (c *Controller) Position() Position {
	return Position(c.pos.Load())
}

// MaxPage returns the upper page bound.
func (c *Controller) MaxPage() int { return c.maxPage }

// handle applies one navigation event. Only the event loop calls this, so
// transitions are atomic with respect to each other.
func (c *Controller) handle(ev NavigationEvent) {
	switch ev.Kind {
	case KindSliderDrag:
		c.handleSliderDrag(ev.Page)
	case KindScrollConfirm:
		c.handleScrollReport(ev.Page)
	case KindDirectLink:
		c.handleDirectNavigation(ev.Page)
	}
}

// handleSliderDrag adopts a slider-driven page change. The slider physically
// drove the viewport conversation, so no scroll intent is emitted; issuing
// one would start the scroll/report feedback loop.
func (c *Controller) handleSliderDrag(page int) {
	next := Clamp(page, c.maxPage)
	if next == c.Position() {
		return
	}
	c.pos.Store(int64(next))
	c.logger.Debug("position from slider", "page", next.Int())
	c.pushURLState(URLState{Page: next})
}

// handleScrollReport adopts a scroll-observed page change, guarded by the
// hysteresis band: reports within hysteresis pages of the current position
// are ignored. Accepted reports emit a confirm-tagged intent so the observer
// reconciles its slider value without scrolling again.
func (c *Controller) handleScrollReport(observed int) {
	cur := c.Position()
	diff := observed - cur.Int()
	if diff < 0 {
		diff = -diff
	}
	if diff <= c.hysteresis {
		return
	}

	next := Clamp(observed, c.maxPage)
	c.pos.Store(int64(next))
	c.logger.Debug("position from scroll", "page", next.Int())
	c.pushURLState(URLState{Page: next, ScrollOriginated: true})
	c.pushIntent(ScrollIntent{Page: next, Confirm: true})
}

// handleDirectNavigation adopts a URL-driven page change (deep link,
// back/forward). The viewport has not moved yet, so the intent is untagged
// and the observer performs a real scroll. The URL already carries the page,
// so no mirror update is pushed.
func (c *Controller) handleDirectNavigation(page int) {
	next := Clamp(page, c.maxPage)
	c.pos.Store(int64(next))
	c.logger.Debug("position from navigation", "page", next.Int())
	c.pushIntent(ScrollIntent{Page: next})
}

func (c *Controller) pushURLState(st URLState) {
	if c.onURLState != nil {
		c.onURLState(st)
	}
}

// pushIntent places an intent in the outbox, displacing any unconsumed
// earlier intent.
func (c *Controller) pushIntent(in ScrollIntent) {
	for {
		select {
		case c.intents <- in:
			return
		default:
			select {
			case <-c.intents:
			default:
			}
		}
	}
}
