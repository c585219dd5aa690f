package domain

// Record is one parsed (station, temperature) pair taken from a single input line.
type Record struct {
	Station     string
	Temperature float64
}

// StationStats holds the running statistics of one station.
// Count is always >= 1 and Min <= Max once the value exists.
type StationStats struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Sum   float64 `json:"sum"`
	Count int64   `json:"count"`
}

// NewStationStats initializes statistics from a single observation.
func NewStationStats(t float64) *StationStats {
	return &StationStats{Min: t, Max: t, Sum: t, Count: 1}
}

// Add folds one temperature into the statistics in place.
func (s *StationStats) Add(t float64) {
	s.Min = min(s.Min, t)
	s.Max = max(s.Max, t)
	s.Sum += t
	s.Count++
}

// Merge returns the combination of two statistics for the same station.
// It is associative and commutative, so shards can be merged in any order.
func (s StationStats) Merge(o StationStats) StationStats {
	return StationStats{
		Min:   min(s.Min, o.Min),
		Max:   max(s.Max, o.Max),
		Sum:   s.Sum + o.Sum,
		Count: s.Count + o.Count,
	}
}

// StationMap maps a station name to its statistics. Each run owns its own map.
type StationMap map[string]*StationStats

// Observe applies one record to the map.
func (m StationMap) Observe(r Record) {
	if s, ok := m[r.Station]; ok {
		s.Add(r.Temperature)
		return
	}
	m[r.Station] = NewStationStats(r.Temperature)
}
