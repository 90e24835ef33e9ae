package sessions

// Client-to-server event names.
const (
	// EventScrollTo reports that a section became the dominant visible
	// content after a manual scroll.
	EventScrollTo = "scrollto"
	// EventSlider is a progress slider change. Debounced server-side so a
	// drag settles into one position adoption.
	EventSlider = "slider"
	// EventNavigate is a URL-driven page change: deep link applied after
	// connect, or history back/forward.
	EventNavigate = "navigate"
)

// Server-to-client event names.
const (
	// EventScrollCommand instructs the observer to position the viewport.
	EventScrollCommand = "scrollto"
	// EventURLState instructs the client to rewrite its query string.
	EventURLState = "urlstate"
)

// clientEvent is the inbound message shape. Position carries the page number
// as a string, matching the range input's value attribute.
type clientEvent struct {
	Event    string `json:"event"`
	Position string `json:"position"`
}

// scrollCommand is the outbound scroll intent. Page names the target DOM
// section ("page_<N>"). Confirm marks reconcile-only intents: the observer
// updates its slider value but must not scroll.
type scrollCommand struct {
	Event   string `json:"event"`
	Page    string `json:"page"`
	Confirm bool   `json:"confirm"`
}

// urlStateMsg is the outbound URL mirror update. Act is "scroll" for
// scroll-originated changes, empty otherwise.
type urlStateMsg struct {
	Event string `json:"event"`
	Page  int    `json:"page"`
	Act   string `json:"act,omitempty"`
}
