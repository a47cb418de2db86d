package features

import "math"

// Scaler maps each numeric column onto [0,1] using the minimum and maximum
// observed at fit time.
type Scaler struct {
	min  [NumNumeric]float64
	max  [NumNumeric]float64
	seen [NumNumeric]bool
}

// FitScaler records per-column minimum and maximum across rows.
func FitScaler(rows []Row) *Scaler {
	s := &Scaler{}
	for _, r := range rows {
		for col := range NumNumeric {
			s.observe(col, r.Numeric[col])
		}
	}
	return s
}

func (s *Scaler) observe(col int, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	if !s.seen[col] {
		s.min[col], s.max[col], s.seen[col] = v, v, true
		return
	}
	s.min[col] = math.Min(s.min[col], v)
	s.max[col] = math.Max(s.max[col], v)
}

// Min returns the fitted minimum of col.
func (s *Scaler) Min(col int) float64 { return s.min[col] }

// Max returns the fitted maximum of col.
func (s *Scaler) Max(col int) float64 { return s.max[col] }

// Transform scales values into [0,1], clipping anything outside the fitted
// range. A degenerate column (max == min) scales to 0.
func (s *Scaler) Transform(values [NumNumeric]float64) []float32 {
	out := make([]float32, NumNumeric)
	for col, v := range values {
		span := s.max[col] - s.min[col]
		if span <= 0 || math.IsNaN(v) {
			continue
		}
		scaled := (v - s.min[col]) / span
		out[col] = float32(math.Max(0, math.Min(1, scaled)))
	}
	return out
}
