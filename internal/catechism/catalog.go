package catechism

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed catechism.yaml
var builtinData []byte

// Catalog is the ordered set of content sections. It is immutable after
// construction; the reader derives its page bounds from it so the slider
// range and the content range can never disagree.
type Catalog struct {
	sections []Section
	byNumber map[int]Section
}

// catalogFile is the on-disk shape of a catalog document.
type catalogFile struct {
	Sections []Section `yaml:"sections"`
}

// Builtin returns the embedded Heidelberg Catechism catalog.
func Builtin() (*Catalog, error) {
	return parse(builtinData)
}

// Load reads a custom catalog from a YAML file. The document is validated
// against the catalog schema before use, so a malformed catalog fails at
// startup with a precise error rather than at render time.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	if err := validateCatalog(data); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var doc catalogFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(doc.Sections) == 0 {
		return nil, fmt.Errorf("catalog defines no sections")
	}

	sections := make([]Section, len(doc.Sections))
	copy(sections, doc.Sections)
	sort.Slice(sections, func(i, j int) bool {
		return sections[i].Number < sections[j].Number
	})

	byNumber := make(map[int]Section, len(sections))
	for i, s := range sections {
		if s.Number != i+1 {
			return nil, fmt.Errorf("catalog sections must be contiguous from 1: gap at %d", i+1)
		}
		if _, dup := byNumber[s.Number]; dup {
			return nil, fmt.Errorf("duplicate section number %d", s.Number)
		}
		byNumber[s.Number] = s
	}

	return &Catalog{sections: sections, byNumber: byNumber}, nil
}

// MaxPage returns the highest page number, the authoritative upper bound for
// the reading position.
func (c *Catalog) MaxPage() int {
	return len(c.sections)
}

// Section returns the section for a page number.
func (c *Catalog) Section(n int) (Section, bool) {
	s, ok := c.byNumber[n]
	return s, ok
}

// Sections returns all sections in page order.
func (c *Catalog) Sections() []Section {
	out := make([]Section, len(c.sections))
	copy(out, c.sections)
	return out
}

// Renderable returns the sections the reading view renders for a page: the
// full grouping the page belongs to. Scrolling within a grouping never
// re-renders; crossing into another grouping swaps the rendered set.
func (c *Catalog) Renderable(page int) []Section {
	part := PartFor(page)
	var out []Section
	for _, s := range c.sections {
		if s.Part == part {
			out = append(out, s)
		}
	}
	return out
}
