package reader

import "testing"

func TestParsePage(t *testing.T) {
	const maxPage = 52

	tests := []struct {
		name string
		raw  string
		want Position
	}{
		{"empty defaults to first page", "", 1},
		{"non-numeric defaults to first page", "banana", 1},
		{"float defaults to first page", "3.5", 1},
		{"valid page", "17", 17},
		{"first page", "1", 1},
		{"last page", "52", 52},
		{"zero clamps to lower bound", "0", 1},
		{"negative clamps to lower bound", "-4", 1},
		{"overflow clamps to upper bound", "500", 52},
		{"leading whitespace defaults", " 7", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePage(tt.raw, maxPage)
			if got != tt.want {
				t.Errorf("ParsePage(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(0, 52); got != 1 {
		t.Errorf("Clamp(0) = %d, want 1", got)
	}
	if got := Clamp(53, 52); got != 52 {
		t.Errorf("Clamp(53) = %d, want 52", got)
	}
	if got := Clamp(26, 52); got != 26 {
		t.Errorf("Clamp(26) = %d, want 26", got)
	}
}

func TestPosition_SectionID(t *testing.T) {
	if got := Position(30).SectionID(); got != "page_30" {
		t.Errorf("SectionID() = %q, want %q", got, "page_30")
	}
}
