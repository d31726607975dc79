package darkroom
/*
Implements filter "vibrance":
Options:
- level: int [-100, 100]

Saturation adjustment weighted by how colorful a pixel already is: the
distance between the strongest channel and the channel average scales the
shift, so muted colors are affected more than saturated ones. Gray pixels
and level 0 are unaffected.
*/

const (
  filterNameVibrance = "vibrance"
)


// NewVibrance returns a vibrance adjustment filter record. level is clamped
// to [-100, 100].
func NewVibrance(level int) Filter {
  level = clampInt(level, -100, 100)
  return Filter{kind: filterVibrance, level: float64(level) / 100.0}
}

// Vibrance appends a vibrance adjustment to the filter sequence.
func (d *Darkroom) Vibrance(level int) *Darkroom {
  return d.appendFilter(NewVibrance(level), nil)
}


// Used internally. Applies vibrance adjustment to a single pixel color.
func applyVibrance(f *Filter, col PixelColor) PixelColor {
  r, g, b := float64(col.R), float64(col.G), float64(col.B)
  max := r
  if g > max { max = g }
  if b > max { max = b }
  avg := (r + g + b) / 3.0
  // max >= avg holds for any channel combination
  amt := (max - avg) * 2.0 / 255.0 * -f.level
  if r != max { col.R = clampRound(r + (max - r) * amt) }
  if g != max { col.G = clampRound(g + (max - g) * amt) }
  if b != max { col.B = clampRound(b + (max - b) * amt) }
  return col
}
