// Package aggregate folds parsed records into per-station statistics.
package aggregate

import (
	"github.com/aalvaropc/brcstream/internal/domain"
	"github.com/aalvaropc/brcstream/internal/usecase/parse"
)

// Apply folds records into m in input order.
func Apply(records []domain.Record, m domain.StationMap) {
	for _, r := range records {
		m.Observe(r)
	}
}

// ApplyLines parses each raw line and folds the accepted ones into m.
// Rejected lines are skipped and only counted.
func ApplyLines(lines []string, m domain.StationMap) (accepted int, rejected int) {
	for _, line := range lines {
		rec, ok := parse.Line(line)
		if !ok {
			rejected++
			continue
		}
		m.Observe(rec)
		accepted++
	}
	return accepted, rejected
}

// Merge folds every station of src into dst. src is left untouched.
func Merge(dst, src domain.StationMap) {
	for name, s := range src {
		if cur, ok := dst[name]; ok {
			merged := cur.Merge(*s)
			*cur = merged
			continue
		}
		cp := *s
		dst[name] = &cp
	}
}
