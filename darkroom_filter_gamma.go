package darkroom
/*
Implements filter "gamma":
Options:
- level: float [0.0001, 5.0]

Applies the power curve out = 255*(in/255)^(1/level), precomputed as a lookup
table. Levels above 1.0 brighten, levels below 1.0 darken. Level 1.0 is the
identity.
*/

import (
  "math"
)

const (
  filterNameGamma = "gamma"
)


// NewGamma returns a gamma correction filter record. level is clamped to
// [0.0001, 5.0]. Non-finite levels are rejected with a ValidationError.
func NewGamma(level float64) (Filter, error) {
  if math.IsNaN(level) || math.IsInf(level, 0) {
    return Filter{}, &ValidationError{Reason: "gamma level must be finite"}
  }
  level = clampFloat(level, 0.0001, 5.0)
  exp := 1.0 / level
  var table [256]byte
  for i := 0; i < 256; i++ {
    table[i] = clampRound(math.Pow(float64(i) / 255.0, exp) * 255.0)
  }
  return Filter{kind: filterGamma, table: &table}, nil
}

// Gamma appends a gamma correction to the filter sequence.
func (d *Darkroom) Gamma(level float64) *Darkroom {
  return d.appendFilter(NewGamma(level))
}


// Used internally. Applies gamma correction to a single pixel color.
func applyGamma(f *Filter, col PixelColor) PixelColor {
  col.R = f.table[col.R]
  col.G = f.table[col.G]
  col.B = f.table[col.B]
  return col
}
