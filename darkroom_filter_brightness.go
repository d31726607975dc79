package darkroom
/*
Implements filter "brightness":
Options:
- level: int [-255, 255]

The level is added to each channel value, clamped to the byte range.
Level 0 is the identity.
*/

const (
  filterNameBrightness = "brightness"
)


// NewBrightness returns a brightness adjustment filter record. level is
// clamped to [-255, 255].
func NewBrightness(level int) Filter {
  level = clampInt(level, -255, 255)
  return Filter{kind: filterBrightness, level: float64(level)}
}

// Brightness appends a brightness adjustment to the filter sequence.
func (d *Darkroom) Brightness(level int) *Darkroom {
  return d.appendFilter(NewBrightness(level), nil)
}


// Used internally. Applies brightness adjustment to a single pixel color.
func applyBrightness(f *Filter, col PixelColor) PixelColor {
  n := int(f.level)
  col.R = byte(clampInt(int(col.R) + n, 0, 255))
  col.G = byte(clampInt(int(col.G) + n, 0, 255))
  col.B = byte(clampInt(int(col.B) + n, 0, 255))
  return col
}
