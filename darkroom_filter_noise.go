package darkroom
/*
Implements filter "noise":
Options:
- level: int [0, 255]

Perturbs each channel by a value in [-level, level]. The offset is derived
from a hash of the incoming pixel color and the channel index, so identical
input colors always produce identical output colors and results do not depend
on pixel position or processing order. Level 0 is the identity.
*/

const (
  filterNameNoise = "noise"
)


// NewNoise returns a noise filter record. level is the maximum channel
// deviation, clamped to [0, 255].
func NewNoise(level int) Filter {
  level = clampInt(level, 0, 255)
  return Filter{kind: filterNoise, level: float64(level)}
}

// Noise appends a noise effect to the filter sequence.
func (d *Darkroom) Noise(level int) *Darkroom {
  return d.appendFilter(NewNoise(level), nil)
}


// Used internally. Applies the noise effect to a single pixel color.
func applyNoise(f *Filter, col PixelColor) PixelColor {
  amp := int(f.level)
  if amp == 0 { return col }
  r, g, b := col.R, col.G, col.B
  col.R = byte(clampInt(int(r) + noiseOffset(r, g, b, 0, amp), 0, 255))
  col.G = byte(clampInt(int(g) + noiseOffset(r, g, b, 1, amp), 0, 255))
  col.B = byte(clampInt(int(b) + noiseOffset(r, g, b, 2, amp), 0, 255))
  return col
}

// Used internally. Derives a reproducible offset in [-amp, amp] from a pixel
// color and channel index.
func noiseOffset(r, g, b, channel byte, amp int) int {
  h := hashBytes(r, g, b, channel)
  return int(h % uint32(2*amp + 1)) - amp
}
