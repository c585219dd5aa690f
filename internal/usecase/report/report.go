// Package report renders station statistics in station-name order.
package report

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/aalvaropc/brcstream/internal/app/template"
	"github.com/aalvaropc/brcstream/internal/domain"
)

// SortedNames returns the station names in byte-wise lexicographic order.
func SortedNames(m domain.StationMap) []string {
	names := maps.Keys(m)
	sort.Strings(names)
	return names
}

// Value returns the number printed between min and max: the mean rounded to one
// decimal when the station has more than one observation, otherwise the raw sum.
func Value(s domain.StationStats) float64 {
	if s.Count > 1 {
		return RoundTenth(s.Sum / float64(s.Count))
	}
	return s.Sum
}

// RoundTenth rounds x to one decimal place, halves away from zero.
func RoundTenth(x float64) float64 {
	return math.Round(x*10) / 10
}

// FormatLine renders "<name>=<min>/<value>/<max>".
func FormatLine(name string, s domain.StationStats) string {
	var b strings.Builder
	b.Grow(len(name) + 24)
	b.WriteString(name)
	b.WriteByte('=')
	b.WriteString(FormatNumber(s.Min))
	b.WriteByte('/')
	b.WriteString(FormatNumber(Value(s)))
	b.WriteByte('/')
	b.WriteString(FormatNumber(s.Max))
	return b.String()
}

// Lines renders every station of m, one line each, sorted by name.
func Lines(m domain.StationMap) []string {
	names := SortedNames(m)
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, FormatLine(name, *m[name]))
	}
	return out
}

// TemplateLines renders every station with a {{placeholder}} template.
// Known placeholders: name, min, mean, max, count, sum.
func TemplateLines(m domain.StationMap, tmpl string) ([]string, error) {
	names := SortedNames(m)
	out := make([]string, 0, len(names))
	for _, name := range names {
		line, err := template.RenderString(tmpl, templateVars(name, *m[name]))
		if err != nil {
			return nil, err
		}
		out = append(out, line)
	}
	return out, nil
}

// ValidateTemplate checks tmpl against the placeholders TemplateLines provides.
func ValidateTemplate(tmpl string) error {
	_, err := template.RenderString(tmpl, templateVars("", domain.StationStats{Count: 1}))
	return err
}

func templateVars(name string, s domain.StationStats) map[string]string {
	return map[string]string{
		"name":  name,
		"min":   FormatNumber(s.Min),
		"mean":  FormatNumber(Value(s)),
		"max":   FormatNumber(s.Max),
		"count": strconv.FormatInt(s.Count, 10),
		"sum":   FormatNumber(s.Sum),
	}
}

// Summaries returns the stations in report order with their printed values.
func Summaries(m domain.StationMap) []domain.StationSummary {
	names := SortedNames(m)
	out := make([]domain.StationSummary, 0, len(names))
	for _, name := range names {
		s := *m[name]
		out = append(out, domain.StationSummary{
			Name:  name,
			Min:   s.Min,
			Mean:  Value(s),
			Max:   s.Max,
			Count: s.Count,
			Sum:   s.Sum,
		})
	}
	return out
}

// FormatNumber prints the shortest decimal form of v: 18 rather than 18.0,
// 0 for negative zero, exponent notation only for very large or very small
// magnitudes, and Infinity/-Infinity for infinite values.
func FormatNumber(v float64) string {
	switch {
	case v == 0:
		return "0"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case math.IsNaN(v):
		return "NaN"
	}

	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		// 1e+07 -> 1e+7
		mant, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
