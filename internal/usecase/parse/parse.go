// Package parse turns raw measurement lines into records.
package parse

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/aalvaropc/brcstream/internal/domain"
)

const delimiter = ";"

// Line parses one raw line of the form "<station>;<temperature>".
//
// The line is trimmed as a whole, then split on the first delimiter. The station
// keeps any whitespace that precedes the delimiter, so "Cesis  ;1" and "Cesis;1"
// are different stations. The temperature uses leading-numeric-prefix parsing.
// Lines that are blank, lack a delimiter, have an empty side, or carry no numeric
// temperature are rejected with ok == false.
func Line(raw string) (rec domain.Record, ok bool) {
	line := strings.TrimFunc(raw, isSpace)
	if line == "" {
		return domain.Record{}, false
	}

	station, temp, found := strings.Cut(line, delimiter)
	if !found || station == "" || temp == "" {
		return domain.Record{}, false
	}

	v := FloatPrefix(temp)
	if math.IsNaN(v) {
		return domain.Record{}, false
	}

	return domain.Record{Station: station, Temperature: v}, true
}

// FloatPrefix parses the longest numeric prefix of s after leading whitespace.
// Anything after the prefix is ignored. It returns NaN when s has no numeric
// prefix. "Infinity" (optionally signed) is accepted; out-of-range values
// become ±Inf or zero.
func FloatPrefix(s string) float64 {
	s = strings.TrimLeftFunc(s, isSpace)

	n := numericPrefixLen(s)
	if n == 0 {
		return math.NaN()
	}

	v, err := strconv.ParseFloat(s[:n], 64)
	if err != nil {
		// ErrRange still carries ±Inf or 0, which is the value we want.
		if errors.Is(err, strconv.ErrRange) {
			return v
		}
		return math.NaN()
	}
	return v
}

// numericPrefixLen returns the length of the longest prefix of s shaped like
// [+-]? (Infinity | digits [. digits?] | . digits) ([eE][+-]?digits)?
func numericPrefixLen(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	if strings.HasPrefix(s[i:], "Infinity") {
		return i + len("Infinity")
	}

	intDigits := countDigits(s[i:])
	i += intDigits

	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		fracDigits = countDigits(s[i+1:])
		if intDigits > 0 || fracDigits > 0 {
			i += 1 + fracDigits
		}
	}

	if intDigits == 0 && fracDigits == 0 {
		return 0
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if d := countDigits(s[j:]); d > 0 {
			i = j + d
		}
	}

	return i
}

func countDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}

// isSpace also treats a byte order mark as whitespace, so a BOM in the
// middle of a stream never ends up in a station key.
func isSpace(r rune) bool {
	return r == '\uFEFF' || unicode.IsSpace(r)
}
