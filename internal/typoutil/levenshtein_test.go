package typoutil

import (
	"testing"
)

func TestCalculateLevenshteinDistance(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{"both empty", "", "", 0},
		{"a empty", "", "hello", 5},
		{"b empty", "hello", "", 5},
		{"identical", "hello", "hello", 0},
		{"simple substitution", "kitten", "sitten", 1},
		{"simple insertion", "pythn", "python", 1},
		{"simple deletion", "banana", "banna", 1},
		{"multiple edits", "saturday", "sunday", 3},
		{"symmetric", "python", "pythn", 1},
		{"transposition costs two", "jaav", "java", 2},
		{"longer strings", "algorithm", "altruistic", 6},
		{"unicode chars", "résumé", "resume", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateLevenshteinDistance(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("CalculateLevenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCalculateLevenshteinDistanceWithLimit(t *testing.T) {
	tests := []struct {
		name        string
		a           string
		b           string
		maxDistance int
		want        int
	}{
		{"within limit", "pythn", "python", 2, 1},
		{"exactly at limit", "saturday", "sunday", 3, 3},
		{"over limit", "saturday", "sunday", 2, 3},
		{"length difference over limit", "go", "golang", 2, 3},
		{"empty against short word", "", "go", 2, 2},
		{"identical", "java", "java", 0, 0},
		{"zero limit mismatch", "java", "lava", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateLevenshteinDistanceWithLimit(tt.a, tt.b, tt.maxDistance)
			if got != tt.want {
				t.Errorf("CalculateLevenshteinDistanceWithLimit(%q, %q, %d) = %d, want %d",
					tt.a, tt.b, tt.maxDistance, got, tt.want)
			}
		})
	}
}

func TestClosestTerm(t *testing.T) {
	vocabulary := []string{"backend", "database", "developer", "java", "lava", "python"}

	tests := []struct {
		name         string
		term         string
		maxDistance  int
		wantTerm     string
		wantDistance int
		wantFound    bool
	}{
		{"one edit away", "pythn", 2, "python", 1, true},
		{"two edits away", "pyhtn", 2, "python", 2, true},
		{"exact match", "java", 2, "java", 0, true},
		{"tie goes to the smaller word", "kava", 2, "java", 1, true},
		{"too far", "kubernetes", 2, "", 0, false},
		{"missing letter", "databse", 2, "database", 1, true},
		{"zero distance allowed only exact", "pythn", 0, "", 0, false},
		{"negative distance", "java", -1, "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotTerm, gotDistance, gotFound := ClosestTerm(tt.term, vocabulary, tt.maxDistance)
			if gotTerm != tt.wantTerm || gotDistance != tt.wantDistance || gotFound != tt.wantFound {
				t.Errorf("ClosestTerm(%q, ..., %d) = (%q, %d, %v), want (%q, %d, %v)",
					tt.term, tt.maxDistance, gotTerm, gotDistance, gotFound,
					tt.wantTerm, tt.wantDistance, tt.wantFound)
			}
		})
	}
}

func TestClosestTerm_EmptyVocabulary(t *testing.T) {
	if _, _, found := ClosestTerm("python", nil, 2); found {
		t.Error("expected no match against an empty vocabulary")
	}
}

func TestCorrector(t *testing.T) {
	c := NewCorrector([]string{"developer", "python"}, 2)

	for i := 0; i < 2; i++ {
		got, ok := c.Correct("pythn")
		if !ok || got != "python" {
			t.Fatalf("Correct(pythn) attempt %d = (%q, %v), want (python, true)", i, got, ok)
		}
	}

	if got, ok := c.Correct("xyzzyq"); ok {
		t.Errorf("Correct(xyzzyq) = %q, want no correction", got)
	}
}
