package alerts

import (
	"strings"
	"testing"
)

func TestResolveTotalFunction(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"somewhere nobody heard of",
		"אשקלון",
		"קריית ים",
		"יישובי עוטף עזה",
		"!!!",
	}
	for _, input := range inputs {
		info := Resolve(input)
		if info.Name == "" {
			t.Fatalf("Resolve(%q): empty name", input)
		}
		if info.MapLink == "" {
			t.Fatalf("Resolve(%q): empty map link", input)
		}
	}
}

func TestResolveExactMatchPrecedence(t *testing.T) {
	info := Resolve("אשקלון")
	if info.District != "לכיש" {
		t.Fatalf("expected configured district, got %q", info.District)
	}
	if info.ShelterSeconds != 30 {
		t.Fatalf("expected configured shelter time, got %d", info.ShelterSeconds)
	}
	if info.Population == 0 {
		t.Fatal("expected population from the static table")
	}
}

func TestResolvePartialMatch(t *testing.T) {
	info := Resolve("העיר אשקלון והסביבה")
	if info.Name != "אשקלון" || info.District != "לכיש" {
		t.Fatalf("expected partial match on table key, got %+v", info)
	}
}

func TestResolvePartialMatchStable(t *testing.T) {
	// The input contains two table keys; resolution must pick the same one
	// on every call.
	input := "באר שבע תל אביב"
	first := Resolve(input)
	for i := 0; i < 50; i++ {
		if got := Resolve(input); got.Name != first.Name {
			t.Fatalf("resolution order unstable: %q then %q", first.Name, got.Name)
		}
	}
	if first.Name != "באר שבע" {
		t.Fatalf("expected the lexicographically first key, got %q", first.Name)
	}
}

func TestResolveAreaPattern(t *testing.T) {
	info := Resolve("יישובי עוטף עזה")
	if info.District != "עוטף עזה" {
		t.Fatalf("expected pattern district, got %q", info.District)
	}
	if info.ShelterSeconds != 15 {
		t.Fatalf("expected pattern shelter time, got %d", info.ShelterSeconds)
	}
}

func TestResolveFallback(t *testing.T) {
	info := Resolve("totally unknown place")
	if info.District != "לא ידוע" {
		t.Fatalf("expected unknown district, got %q", info.District)
	}
	if !strings.Contains(info.MapLink, "totally") {
		t.Fatalf("map link should search the raw text, got %q", info.MapLink)
	}

	empty := Resolve("")
	if empty.Name != "אזור לא מזוהה" {
		t.Fatalf("expected generic name for empty input, got %q", empty.Name)
	}
}

func TestResolveCleansWhitespace(t *testing.T) {
	info := Resolve("  תל   אביב ")
	if info.Name != "תל אביב" {
		t.Fatalf("expected collapsed whitespace to match, got %+v", info)
	}
}
