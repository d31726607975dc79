package darkroom
/*
Implements filter "hue":
Options:
- level: float, wrapped into [0, 360)

Rotates the hue of every pixel by the given angle in degrees. The angle wraps
modulo 360, so -90 and 270 are equivalent. Saturation and lightness are
preserved.
*/

import (
  "math"
)

const (
  filterNameHue = "hue"
)


// NewHue returns a hue rotation filter record. level is the rotation angle
// in degrees, wrapped into [0, 360). Non-finite levels are rejected with a
// ValidationError.
func NewHue(level float64) (Filter, error) {
  if math.IsNaN(level) || math.IsInf(level, 0) {
    return Filter{}, &ValidationError{Reason: "hue level must be finite"}
  }
  level = wrapDegrees(level)
  return Filter{kind: filterHue, level: level / 360.0}, nil
}

// Hue appends a hue rotation to the filter sequence.
func (d *Darkroom) Hue(level float64) *Darkroom {
  return d.appendFilter(NewHue(level))
}


// Used internally. Applies hue rotation to a single pixel color.
func applyHue(f *Filter, col PixelColor) PixelColor {
  if f.level == 0.0 { return col }
  h, s, l := rgbToHSL(col.R, col.G, col.B)
  h += f.level
  if h < 0.0 { h += 1.0 }
  if h > 1.0 { h -= 1.0 }
  fr, fg, fb := hslToRGB(h, s, l)
  col.R = byte(fr * 255.0 + 0.5)
  col.G = byte(fg * 255.0 + 0.5)
  col.B = byte(fb * 255.0 + 0.5)
  return col
}
