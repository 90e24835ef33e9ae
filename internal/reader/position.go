// Package reader implements the progress controller for the reading view:
// the authoritative page position per session, the navigation event types
// exchanged with the client, and the loop-prevention rules that keep the
// slider, the URL and the viewport scroll position reconciled.
package reader

import "strconv"

// Position is the authoritative current page of a reading session.
// It is always within [1, maxPage] once adopted by a Controller.
type Position int

// ParsePage interprets an externally supplied page value (query parameter,
// wire payload). Non-numeric or empty input defaults to page 1; numeric input
// outside [1, maxPage] is clamped to the nearest bound. It never fails: bad
// input from a shared link or a hand-edited URL should land the reader on a
// valid page, not an error screen.
func ParsePage(raw string, maxPage int) Position {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return Clamp(n, maxPage)
}

// Clamp bounds n into [1, maxPage].
func Clamp(n, maxPage int) Position {
	if n < 1 {
		return 1
	}
	if n > maxPage {
		return Position(maxPage)
	}
	return Position(n)
}

// Int returns the position as a plain page number.
func (p Position) Int() int { return int(p) }

// SectionID returns the DOM identity of the content section for this page.
func (p Position) SectionID() string {
	return "page_" + strconv.Itoa(int(p))
}
