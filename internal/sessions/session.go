package sessions

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/mwieland/lectern/internal/reader"
)

const writeTimeout = 5 * time.Second

// Session binds one websocket connection to one progress controller. All
// controller events for the session flow through a single actor loop, so the
// reading position cannot race; the connection only carries mirrors.
type Session struct {
	id       string
	conn     *websocket.Conn
	ctrl     *reader.Controller
	debounce *reader.Debouncer
	logger   *slog.Logger

	outbound chan any
}

func newSession(conn *websocket.Conn, debounceMs int, logger *slog.Logger) *Session {
	s := &Session{
		id:       uuid.New().String(),
		conn:     conn,
		logger:   logger,
		outbound: make(chan any, 8),
	}
	s.debounce = reader.NewDebouncer(time.Duration(debounceMs)*time.Millisecond, func(page int) {
		s.ctrl.Submit(reader.SliderDrag(page))
	})
	return s
}

// bind attaches the session's controller. Must be called before run.
func (s *Session) bind(ctrl *reader.Controller) {
	s.ctrl = ctrl
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Position returns the session's authoritative page.
func (s *Session) Position() reader.Position { return s.ctrl.Position() }

// run drives the session until the context is cancelled or the connection
// drops. It owns both pump goroutines and returns only when they are done.
func (s *Session) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.ctrl.Start(ctx)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeLoop(ctx)
	}()

	s.readLoop(ctx)

	s.debounce.Stop()
	cancel()
	<-writerDone
}

// readLoop consumes client events until the connection closes.
func (s *Session) readLoop(ctx context.Context) {
	for {
		_, data, err := s.conn.Read(ctx)
		if err != nil {
			return
		}

		var ev clientEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			s.logger.Debug("unreadable session event dropped", "session", s.id, "error", err)
			continue
		}
		s.dispatch(ev)
	}
}

// dispatch routes one client event into the controller. Malformed page
// payloads are dropped: delivery is best-effort and the next qualifying
// event carries fresh state.
func (s *Session) dispatch(ev clientEvent) {
	page, err := strconv.Atoi(ev.Position)
	if err != nil {
		s.logger.Debug("event with bad position dropped",
			"session", s.id, "event", ev.Event, "position", ev.Position)
		return
	}

	switch ev.Event {
	case EventSlider:
		s.debounce.Submit(page)
	case EventScrollTo:
		s.ctrl.Submit(reader.ScrollConfirm(page))
	case EventNavigate:
		s.ctrl.Submit(reader.DirectLink(page))
	default:
		s.logger.Debug("unknown session event", "session", s.id, "event", ev.Event)
	}
}

// writeLoop forwards controller output to the client.
func (s *Session) writeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case in := <-s.ctrl.Intents():
			s.write(ctx, scrollCommand{
				Event:   EventScrollCommand,
				Page:    in.Page.SectionID(),
				Confirm: in.Confirm,
			})
		case msg := <-s.outbound:
			s.write(ctx, msg)
		}
	}
}

// queueURLState enqueues a URL mirror update. Called from the controller
// loop; must not block it.
func (s *Session) queueURLState(st reader.URLState) {
	act := ""
	if st.ScrollOriginated {
		act = "scroll"
	}
	msg := urlStateMsg{Event: EventURLState, Page: st.Page.Int(), Act: act}
	select {
	case s.outbound <- msg:
	default:
		s.logger.Warn("url state update dropped, outbound full", "session", s.id)
	}
}

func (s *Session) write(ctx context.Context, msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("failed to marshal session message", "session", s.id, "error", err)
		return
	}

	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := s.conn.Write(wctx, websocket.MessageText, data); err != nil {
		s.logger.Debug("session write failed", "session", s.id, "error", err)
	}
}
