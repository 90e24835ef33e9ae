// Package catechism holds the reading content: the 52 Lord's Days of the
// Heidelberg Catechism, grouped into its three traditional parts. The reading
// view renders one part at a time; each Lord's Day is one content section
// correlated 1:1 with a page number.
package catechism

import "fmt"

// Part identifies one of the three content groupings.
type Part string

const (
	// PartMisery covers Lord's Days 1-4 (the introduction and man's misery).
	PartMisery Part = "misery"
	// PartDeliverance covers Lord's Days 5-31.
	PartDeliverance Part = "deliverance"
	// PartGratitude covers Lord's Days 32-52.
	PartGratitude Part = "gratitude"
)

// partBounds keys the three groupings by page-number ranges.
var partBounds = []struct {
	part     Part
	lo, hi   int
	longName string
}{
	{PartMisery, 1, 4, "Of the Misery of Man"},
	{PartDeliverance, 5, 31, "Of Man's Deliverance"},
	{PartGratitude, 32, 52, "Of Thankfulness"},
}

// PartFor returns the grouping a page number falls into.
func PartFor(page int) Part {
	for _, b := range partBounds {
		if page >= b.lo && page <= b.hi {
			return b.part
		}
	}
	if page < 1 {
		return PartMisery
	}
	return PartGratitude
}

// LongName returns the traditional heading for a part.
func (p Part) LongName() string {
	for _, b := range partBounds {
		if b.part == p {
			return b.longName
		}
	}
	return string(p)
}

// Question is a single numbered question and answer.
type Question struct {
	Number   int    `yaml:"number" json:"number"`
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}

// Section is one Lord's Day: an immutable content section identified by its
// page number. Sections are produced by the catalog and only ever read.
type Section struct {
	Number    int        `yaml:"number" json:"number"`
	Part      Part       `yaml:"part" json:"part"`
	Title     string     `yaml:"title" json:"title"`
	Questions []Question `yaml:"questions" json:"questions"`
}

// DOMID returns the section's identity in the rendered document.
func (s Section) DOMID() string {
	return fmt.Sprintf("page_%d", s.Number)
}
