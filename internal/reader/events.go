package reader

// EventKind discriminates navigation events instead of sniffing payload shape.
type EventKind int

const (
	// KindSliderDrag is a page change from the progress slider.
	KindSliderDrag EventKind = iota
	// KindScrollConfirm is a page change observed from manual scrolling
	// (the viewport is already at the reported section).
	KindScrollConfirm
	// KindDirectLink is a page change from URL navigation: deep link,
	// back/forward, or an edited query string.
	KindDirectLink
)

func (k EventKind) String() string {
	switch k {
	case KindSliderDrag:
		return "slider_drag"
	case KindScrollConfirm:
		return "scroll_confirm"
	case KindDirectLink:
		return "direct_link"
	default:
		return "unknown"
	}
}

// NavigationEvent is one inbound page-change request for a Controller.
type NavigationEvent struct {
	Kind EventKind
	Page int
}

// SliderDrag builds a slider-originated navigation event.
func SliderDrag(page int) NavigationEvent {
	return NavigationEvent{Kind: KindSliderDrag, Page: page}
}

// ScrollConfirm builds a scroll-originated navigation event.
func ScrollConfirm(page int) NavigationEvent {
	return NavigationEvent{Kind: KindScrollConfirm, Page: page}
}

// DirectLink builds a URL-originated navigation event.
func DirectLink(page int) NavigationEvent {
	return NavigationEvent{Kind: KindDirectLink, Page: page}
}

// ScrollIntent instructs the client observer to position the viewport at a
// section. Confirm marks intents that answer a scroll the user already
// performed: the observer reconciles its slider value but must not scroll
// again. Only unconfirmed intents (direct navigation) move the viewport.
type ScrollIntent struct {
	Page    Position
	Confirm bool
}

// URLState is the shareable query-string mirror of the current position.
// ScrollOriginated marks updates caused by manual scrolling (`act=scroll`
// in the query contract) so the client suppresses any re-scroll on apply.
type URLState struct {
	Page             Position
	ScrollOriginated bool
}
