package darkroom
/*
Implements filter "contrast":
Options:
- level: int [-100, 100]

Channel values are spread away from (positive levels) or squeezed towards
(negative levels) the mid point 128. The transfer curve is precomputed as a
lookup table: factor = ((100+level)/100)^2, out = ((in/255 - 0.5)*factor + 0.5)*255.
Level 0 is the identity.
*/

const (
  filterNameContrast = "contrast"
)


// NewContrast returns a contrast adjustment filter record. level is clamped
// to [-100, 100].
func NewContrast(level int) Filter {
  level = clampInt(level, -100, 100)
  factor := float64(100 + level) / 100.0
  factor *= factor
  var table [256]byte
  for i := 0; i < 256; i++ {
    v := (float64(i) / 255.0 - 0.5) * factor + 0.5
    table[i] = clampRound(v * 255.0)
  }
  return Filter{kind: filterContrast, table: &table}
}

// Contrast appends a contrast adjustment to the filter sequence.
func (d *Darkroom) Contrast(level int) *Darkroom {
  return d.appendFilter(NewContrast(level), nil)
}


// Used internally. Applies contrast adjustment to a single pixel color.
func applyContrast(f *Filter, col PixelColor) PixelColor {
  col.R = f.table[col.R]
  col.G = f.table[col.G]
  col.B = f.table[col.B]
  return col
}
