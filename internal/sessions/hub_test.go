package sessions

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"

	"github.com/mwieland/lectern/internal/catechism"
)

func testSettings() Settings {
	return Settings{HysteresisPages: 1, DebounceMs: 20}
}

func newTestHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	cat, err := catechism.Builtin()
	if err != nil {
		t.Fatalf("Builtin() error = %v", err)
	}
	hub := NewHub(cat, testSettings, nil)
	srv := httptest.NewServer(hub)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, srv
}

func dial(t *testing.T, ctx context.Context, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/" + query
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("websocket dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })
	return conn
}

func send(t *testing.T, ctx context.Context, conn *websocket.Conn, event, position string) {
	t.Helper()
	data, _ := json.Marshal(clientEvent{Event: event, Position: position})
	if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

// readMessage reads one outbound message into a generic map.
func readMessage(t *testing.T, ctx context.Context, conn *websocket.Conn) map[string]any {
	t.Helper()
	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var msg map[string]any
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	return msg
}

func TestHub_SessionLifecycle(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hub, srv := newTestHub(t)
	conn := dial(t, ctx, srv, "?page=10")

	// Session registration is asynchronous with the dial.
	waitFor(t, func() bool { return hub.Count() == 1 })

	conn.Close(websocket.StatusNormalClosure, "")
	waitFor(t, func() bool { return hub.Count() == 0 })
}

func TestHub_DirectNavigationScrolls(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, srv := newTestHub(t)
	conn := dial(t, ctx, srv, "")

	send(t, ctx, conn, EventNavigate, "30")

	msg := readMessage(t, ctx, conn)
	if msg["event"] != EventScrollCommand {
		t.Fatalf("event = %v, want %q", msg["event"], EventScrollCommand)
	}
	if msg["page"] != "page_30" {
		t.Errorf("page = %v, want page_30", msg["page"])
	}
	if msg["confirm"] != false {
		t.Errorf("confirm = %v, want false (real scroll required)", msg["confirm"])
	}
}

func TestHub_ScrollReportConfirms(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, srv := newTestHub(t)
	conn := dial(t, ctx, srv, "?page=10")

	send(t, ctx, conn, EventScrollTo, "15")

	// Accepted report produces a URL rewrite and a confirm-tagged scroll
	// command, in either order.
	var sawURL, sawConfirm bool
	for i := 0; i < 2; i++ {
		msg := readMessage(t, ctx, conn)
		switch msg["event"] {
		case EventURLState:
			sawURL = true
			if msg["page"] != float64(15) {
				t.Errorf("urlstate page = %v, want 15", msg["page"])
			}
			if msg["act"] != "scroll" {
				t.Errorf("urlstate act = %v, want scroll", msg["act"])
			}
		case EventScrollCommand:
			sawConfirm = true
			if msg["page"] != "page_15" {
				t.Errorf("scroll page = %v, want page_15", msg["page"])
			}
			if msg["confirm"] != true {
				t.Errorf("confirm = %v, want true (no re-scroll)", msg["confirm"])
			}
		}
	}
	if !sawURL || !sawConfirm {
		t.Errorf("sawURL=%v sawConfirm=%v, want both", sawURL, sawConfirm)
	}
}

func TestHub_HysteresisSuppressesNeighbourReport(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, srv := newTestHub(t)
	conn := dial(t, ctx, srv, "?page=10")

	// diff of one page: inside the hysteresis band, must produce nothing.
	send(t, ctx, conn, EventScrollTo, "11")
	// Then a real move so the read below has something to terminate on.
	send(t, ctx, conn, EventScrollTo, "15")

	msg := readMessage(t, ctx, conn)
	page := msg["page"]
	if page == "page_11" || page == float64(11) {
		t.Fatalf("suppressed report for page 11 leaked: %v", msg)
	}
}

func TestHub_SliderDebounce(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, srv := newTestHub(t)
	conn := dial(t, ctx, srv, "")

	// A drag burst: only the final value survives the debounce window.
	send(t, ctx, conn, EventSlider, "5")
	send(t, ctx, conn, EventSlider, "9")
	send(t, ctx, conn, EventSlider, "14")

	msg := readMessage(t, ctx, conn)
	if msg["event"] != EventURLState {
		t.Fatalf("event = %v, want %q", msg["event"], EventURLState)
	}
	if msg["page"] != float64(14) {
		t.Errorf("page = %v, want 14 (last drag value)", msg["page"])
	}
	if act, ok := msg["act"]; ok && act != "" {
		t.Errorf("act = %v, want empty for slider updates", act)
	}
}

func TestHub_MalformedEventsIgnored(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, srv := newTestHub(t)
	conn := dial(t, ctx, srv, "?page=10")

	if err := conn.Write(ctx, websocket.MessageText, []byte("not json")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	send(t, ctx, conn, EventScrollTo, "three")

	// The session must survive both; a valid event still works.
	send(t, ctx, conn, EventNavigate, "20")
	msg := readMessage(t, ctx, conn)
	if msg["page"] != "page_20" {
		t.Errorf("page = %v, want page_20", msg["page"])
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
