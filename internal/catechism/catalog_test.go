package catechism

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuiltin(t *testing.T) {
	cat, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() error = %v", err)
	}

	if got := cat.MaxPage(); got != 52 {
		t.Errorf("MaxPage() = %d, want 52", got)
	}

	t.Run("every page has a section", func(t *testing.T) {
		for n := 1; n <= cat.MaxPage(); n++ {
			s, ok := cat.Section(n)
			if !ok {
				t.Fatalf("Section(%d) missing", n)
			}
			if s.Number != n {
				t.Errorf("Section(%d).Number = %d", n, s.Number)
			}
			if s.Title == "" {
				t.Errorf("Section(%d) has no title", n)
			}
			if len(s.Questions) == 0 {
				t.Errorf("Section(%d) has no questions", n)
			}
		}
	})

	t.Run("question numbering is continuous", func(t *testing.T) {
		next := 1
		for _, s := range cat.Sections() {
			for _, q := range s.Questions {
				if q.Number != next {
					t.Fatalf("section %d: question %d, want %d", s.Number, q.Number, next)
				}
				next++
			}
		}
		if next != 130 {
			t.Errorf("catalog holds %d questions, want 129", next-1)
		}
	})

	t.Run("parts match their page ranges", func(t *testing.T) {
		for _, s := range cat.Sections() {
			if want := PartFor(s.Number); s.Part != want {
				t.Errorf("section %d part = %q, want %q", s.Number, s.Part, want)
			}
		}
	})
}

func TestPartFor(t *testing.T) {
	tests := []struct {
		page int
		want Part
	}{
		{1, PartMisery},
		{4, PartMisery},
		{5, PartDeliverance},
		{31, PartDeliverance},
		{32, PartGratitude},
		{52, PartGratitude},
	}
	for _, tt := range tests {
		if got := PartFor(tt.page); got != tt.want {
			t.Errorf("PartFor(%d) = %q, want %q", tt.page, got, tt.want)
		}
	}
}

func TestCatalog_Renderable(t *testing.T) {
	cat, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() error = %v", err)
	}

	tests := []struct {
		page      int
		wantFirst int
		wantLast  int
	}{
		{1, 1, 4},
		{3, 1, 4},
		{5, 5, 31},
		{20, 5, 31},
		{31, 5, 31},
		{32, 32, 52},
		{52, 32, 52},
	}

	for _, tt := range tests {
		sections := cat.Renderable(tt.page)
		if len(sections) == 0 {
			t.Fatalf("Renderable(%d) returned no sections", tt.page)
		}
		if sections[0].Number != tt.wantFirst {
			t.Errorf("Renderable(%d) first = %d, want %d", tt.page, sections[0].Number, tt.wantFirst)
		}
		if last := sections[len(sections)-1].Number; last != tt.wantLast {
			t.Errorf("Renderable(%d) last = %d, want %d", tt.page, last, tt.wantLast)
		}
	}
}

func TestSection_DOMID(t *testing.T) {
	s := Section{Number: 17}
	if got := s.DOMID(); got != "page_17" {
		t.Errorf("DOMID() = %q, want %q", got, "page_17")
	}
}

func TestLoad(t *testing.T) {
	writeCatalog := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("valid catalog", func(t *testing.T) {
		path := writeCatalog(t, `
sections:
  - number: 1
    part: misery
    title: "First"
    questions:
      - number: 1
        question: "Q?"
        answer: "A."
  - number: 2
    part: deliverance
    title: "Second"
    questions:
      - number: 2
        question: "Q?"
        answer: "A."
`)
		cat, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cat.MaxPage() != 2 {
			t.Errorf("MaxPage() = %d, want 2", cat.MaxPage())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("Load() succeeded for missing file")
		}
	})

	t.Run("schema violation reported", func(t *testing.T) {
		path := writeCatalog(t, `
sections:
  - number: 1
    part: "confusion"
    title: "Bad part"
    questions:
      - number: 1
        question: "Q?"
        answer: "A."
`)
		_, err := Load(path)
		if err == nil {
			t.Fatal("Load() accepted unknown part")
		}
		if !strings.Contains(err.Error(), "schema") {
			t.Errorf("error %q does not mention schema", err)
		}
	})

	t.Run("gap in numbering rejected", func(t *testing.T) {
		path := writeCatalog(t, `
sections:
  - number: 1
    part: misery
    title: "First"
    questions:
      - number: 1
        question: "Q?"
        answer: "A."
  - number: 3
    part: misery
    title: "Third"
    questions:
      - number: 2
        question: "Q?"
        answer: "A."
`)
		if _, err := Load(path); err == nil {
			t.Error("Load() accepted a numbering gap")
		}
	})
}
