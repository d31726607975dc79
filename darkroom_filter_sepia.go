package darkroom
/*
Implements filter "sepia":
Options:
- level: int [0, 100]

Blends each pixel towards its sepia tone by level percent. The sepia tone is
the classic weight matrix
  r' = 0.393*r + 0.769*g + 0.189*b
  g' = 0.349*r + 0.686*g + 0.168*b
  b' = 0.272*r + 0.534*g + 0.131*b
Level 0 is the identity, level 100 applies the full matrix.
*/

const (
  filterNameSepia = "sepia"
)


// NewSepia returns a sepia tone filter record. level is the blend strength
// in percent, clamped to [0, 100].
func NewSepia(level int) Filter {
  level = clampInt(level, 0, 100)
  return Filter{kind: filterSepia, level: float64(level) / 100.0}
}

// Sepia appends a sepia tone effect to the filter sequence.
func (d *Darkroom) Sepia(level int) *Darkroom {
  return d.appendFilter(NewSepia(level), nil)
}


// Used internally. Applies the sepia tone effect to a single pixel color.
func applySepia(f *Filter, col PixelColor) PixelColor {
  s := f.level
  r, g, b := float64(col.R), float64(col.G), float64(col.B)
  sr := 0.393*r + 0.769*g + 0.189*b
  sg := 0.349*r + 0.686*g + 0.168*b
  sb := 0.272*r + 0.534*g + 0.131*b
  col.R = clampRound(r + (sr - r) * s)
  col.G = clampRound(g + (sg - g) * s)
  col.B = clampRound(b + (sb - b) * s)
  return col
}
