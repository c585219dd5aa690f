package report

import (
	"math"
	"reflect"
	"sort"
	"testing"

	"github.com/aalvaropc/brcstream/internal/domain"
)

func TestFormatLine(t *testing.T) {
	cases := []struct {
		name  string
		stats domain.StationStats
		want  string
	}{
		{"test", domain.StationStats{Min: 0, Max: 0, Sum: 0, Count: 1}, "test=0/0/0"},
		{"Riga", domain.StationStats{Min: 12, Max: 22, Sum: 36, Count: 2}, "Riga=12/18/22"},
		{"Cesis", domain.StationStats{Min: 10, Max: 30, Sum: 52, Count: 3}, "Cesis=10/17.3/30"},
		{"Cesis", domain.StationStats{Min: 30, Max: 40.5, Sum: 110.5, Count: 3}, "Cesis=30/36.8/40.5"},
		{"Sigulda", domain.StationStats{Min: 24.25, Max: 24.25, Sum: 24.25, Count: 1}, "Sigulda=24.25/24.25/24.25"},
		{"Moon", domain.StationStats{Min: -231, Max: -12.5, Sum: -243.5, Count: 2}, "Moon=-231/-121.8/-12.5"},
	}
	for _, c := range cases {
		if got := FormatLine(c.name, c.stats); got != c.want {
			t.Errorf("FormatLine(%q, %+v) = %q, want %q", c.name, c.stats, got, c.want)
		}
	}
}

func TestValueRoundsHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		sum   float64
		count int64
		want  float64
	}{
		{4.5, 2, 2.3},    // 2.25
		{-4.5, 2, -2.3},  // -2.25
		{1.5, 2, 0.8},    // 0.75
		{-1.5, 2, -0.8},  // -0.75
		{110.5, 3, 36.8}, // 36.8333
		{36, 2, 18},
		{-0.04, 2, 0}, // -0.02 rounds to negative zero
	}
	for _, c := range cases {
		got := Value(domain.StationStats{Sum: c.sum, Count: c.count})
		if got != c.want {
			t.Errorf("Value(sum=%v, count=%d) = %v, want %v", c.sum, c.count, got, c.want)
		}
	}
}

func TestValueSingleObservationIsRaw(t *testing.T) {
	if got := Value(domain.StationStats{Min: 3.14159, Max: 3.14159, Sum: 3.14159, Count: 1}); got != 3.14159 {
		t.Fatalf("expected raw value for a single observation, got %v", got)
	}
}

func TestFormatNumber(t *testing.T) {
	// computed at run time; a constant 0.1 + 0.2 folds to exactly 0.3
	a, b := 0.1, 0.2

	cases := []struct {
		in   float64
		want string
	}{
		{18, "18"},
		{18.5, "18.5"},
		{-0.5, "-0.5"},
		{math.Copysign(0, -1), "0"},
		{a + b, "0.30000000000000004"},
		{0.3, "0.3"},
		{1e21, "1e+21"},
		{1.5e-7, "1.5e-7"},
		{123456789, "123456789"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	}
	for _, c := range cases {
		if got := FormatNumber(c.in); got != c.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLinesSortedByName(t *testing.T) {
	m := domain.StationMap{
		"test":    {Min: 0, Max: 0, Sum: 0, Count: 1},
		"Riga":    {Min: 12, Max: 22, Sum: 36, Count: 2},
		"Cesis":   {Min: 10, Max: 30, Sum: 52, Count: 3},
		"Cesis  ": {Min: 30.5, Max: 30.5, Sum: 30.5, Count: 1},
		"Ålesund": {Min: 1, Max: 1, Sum: 1, Count: 1},
	}

	want := []string{
		"Cesis=10/17.3/30",
		"Cesis  =30.5/30.5/30.5",
		"Riga=12/18/22",
		"test=0/0/0",
		"Ålesund=1/1/1",
	}
	if got := Lines(m); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestSortedNamesIndependentOfInsertion(t *testing.T) {
	keys := []string{"b", "B", "a", "ä", "A", "aa", "a b", "Z", "_"}

	for round := 0; round < 10; round++ {
		m := domain.StationMap{}
		for i := range keys {
			k := keys[(i+round)%len(keys)]
			m[k] = domain.NewStationStats(1)
		}

		want := append([]string(nil), keys...)
		sort.Strings(want)
		if got := SortedNames(m); !reflect.DeepEqual(got, want) {
			t.Fatalf("round %d: got %q, want %q", round, got, want)
		}
	}
}

func TestLinesEmptyMap(t *testing.T) {
	if got := Lines(domain.StationMap{}); len(got) != 0 {
		t.Fatalf("expected no lines, got %q", got)
	}
}

func TestTemplateLines(t *testing.T) {
	m := domain.StationMap{
		"Riga":  {Min: 12, Max: 22, Sum: 36, Count: 2},
		"Cesis": {Min: 10, Max: 30, Sum: 52, Count: 3},
	}
	got, err := TemplateLines(m, "{{name}}: {{mean}} ({{count}} obs, {{min}}..{{max}}, sum {{sum}})")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"Cesis: 17.3 (3 obs, 10..30, sum 52)",
		"Riga: 18 (2 obs, 12..22, sum 36)",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestValidateTemplate(t *testing.T) {
	if err := ValidateTemplate("{{name}}={{min}}/{{mean}}/{{max}}"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := ValidateTemplate("{{name}} {{median}}")
	if !domain.IsKind(err, domain.KindMissingVar) {
		t.Fatalf("expected missing variable error, got %v", err)
	}
}

func TestSummaries(t *testing.T) {
	m := domain.StationMap{
		"Riga": {Min: 12, Max: 22, Sum: 36, Count: 2},
		"Alba": {Min: 5, Max: 5, Sum: 5, Count: 1},
	}
	got := Summaries(m)
	want := []domain.StationSummary{
		{Name: "Alba", Min: 5, Mean: 5, Max: 5, Count: 1, Sum: 5},
		{Name: "Riga", Min: 12, Mean: 18, Max: 22, Count: 2, Sum: 36},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
