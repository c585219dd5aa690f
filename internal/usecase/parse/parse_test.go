package parse

import (
	"math"
	"testing"

	"github.com/aalvaropc/brcstream/internal/domain"
)

func TestLineAccepts(t *testing.T) {
	cases := []struct {
		input string
		want  domain.Record
	}{
		{"Riga;12", domain.Record{Station: "Riga", Temperature: 12}},
		{"Cesis;30", domain.Record{Station: "Cesis", Temperature: 30}},
		{"Riga;12.5", domain.Record{Station: "Riga", Temperature: 12.5}},
		{"Cesis;30.5", domain.Record{Station: "Cesis", Temperature: 30.5}},
		{"Cesis;  30.5", domain.Record{Station: "Cesis", Temperature: 30.5}},
		{"Cesis;30.5  ", domain.Record{Station: "Cesis", Temperature: 30.5}},
		{"  Riga;-4.2\r", domain.Record{Station: "Riga", Temperature: -4.2}},
		{"Moon;-231", domain.Record{Station: "Moon", Temperature: -231}},
		{"Tallinn;7.3abc", domain.Record{Station: "Tallinn", Temperature: 7.3}},
		{"Riga;12;3", domain.Record{Station: "Riga", Temperature: 12}},
		{"São Paulo;25.1", domain.Record{Station: "São Paulo", Temperature: 25.1}},
	}
	for _, c := range cases {
		got, ok := Line(c.input)
		if !ok {
			t.Errorf("Line(%q) rejected, want %+v", c.input, c.want)
			continue
		}
		if got != c.want {
			t.Errorf("Line(%q) = %+v, want %+v", c.input, got, c.want)
		}
	}
}

func TestLineKeepsWhitespaceBeforeDelimiter(t *testing.T) {
	got, ok := Line("Cesis  ;30.5")
	if !ok {
		t.Fatalf("expected line to be accepted")
	}
	if got.Station != "Cesis  " {
		t.Fatalf("expected station %q, got %q", "Cesis  ", got.Station)
	}
	if got.Temperature != 30.5 {
		t.Fatalf("expected 30.5, got %v", got.Temperature)
	}
}

func TestLineTrimsByteOrderMark(t *testing.T) {
	cases := []struct {
		input string
		want  domain.Record
	}{
		{"\uFEFFRiga;12", domain.Record{Station: "Riga", Temperature: 12}},
		{"Riga;\uFEFF12\uFEFF", domain.Record{Station: "Riga", Temperature: 12}},
		{" \uFEFF Cesis;-1.5", domain.Record{Station: "Cesis", Temperature: -1.5}},
	}
	for _, c := range cases {
		got, ok := Line(c.input)
		if !ok || got != c.want {
			t.Errorf("Line(%q) = %+v, %v; want %+v", c.input, got, ok, c.want)
		}
	}

	if _, ok := Line("\uFEFF"); ok {
		t.Error("expected a lone byte order mark to be rejected")
	}
}

func TestLineRejects(t *testing.T) {
	for _, input := range []string{
		"",
		"   ",
		"\t\r",
		"Moon:-231",
		"Riga;",
		"Riga;   ",
		";12",
		";12.5",
		"  ;12",
		"Riga;abc",
		"Riga;.",
		"Riga;-",
		"Riga;e5",
	} {
		if got, ok := Line(input); ok {
			t.Errorf("Line(%q) = %+v, want rejected", input, got)
		}
	}
}

func TestFloatPrefix(t *testing.T) {
	cases := []struct {
		input string
		want  float64
	}{
		{"30.5", 30.5},
		{"  30.5", 30.5},
		{"30.5  ", 30.5},
		{"-0.5", -0.5},
		{"+4", 4},
		{".5", 0.5},
		{"5.", 5},
		{"1e3", 1000},
		{"1E-1x", 0.1},
		{"2e", 2},
		{"2e+", 2},
		{"12;3", 12},
		{"12.5.6", 12.5},
		{"0x10", 0},
		{"1_000", 1},
	}
	for _, c := range cases {
		if got := FloatPrefix(c.input); got != c.want {
			t.Errorf("FloatPrefix(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestFloatPrefixSpecialValues(t *testing.T) {
	if v := FloatPrefix("Infinity"); !math.IsInf(v, 1) {
		t.Errorf("expected +Inf, got %v", v)
	}
	if v := FloatPrefix("-Infinityx"); !math.IsInf(v, -1) {
		t.Errorf("expected -Inf, got %v", v)
	}
	if v := FloatPrefix("1e400"); !math.IsInf(v, 1) {
		t.Errorf("expected overflow to +Inf, got %v", v)
	}
	for _, input := range []string{"", "abc", "-", "+.", "Inf", "NaN"} {
		if v := FloatPrefix(input); !math.IsNaN(v) {
			t.Errorf("FloatPrefix(%q) = %v, want NaN", input, v)
		}
	}
}
