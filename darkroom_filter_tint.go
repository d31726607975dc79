package darkroom
/*
Implements filter "tint":
Options:
- color: string ("#RRGGBB")

Blends each pixel towards the target color: out = in + (target - in)*0.5.
The target may be given as a hex string, as an RGB byte triple or as any
color.Color value; all variants converge on the same canonical RGB target.
Malformed hex strings are rejected at append time with a ValidationError.
*/

import (
  "image/color"
)

const (
  filterNameTint = "tint"
)

// Blend strength of the tint filter: each channel moves halfway towards the
// target color.
const tintStrength = 0.5


// NewTint returns a tint filter record for a "#RRGGBB" target color
// definition. Hex digits are case-insensitive.
func NewTint(value string) (Filter, error) {
  rgb, err := parseColor(value)
  if err != nil { return Filter{}, &ValidationError{Reason: err.Error()} }
  return NewTintRGB(rgb[0], rgb[1], rgb[2]), nil
}

// NewTintRGB returns a tint filter record for the given RGB target color.
func NewTintRGB(r, g, b byte) Filter {
  return Filter{kind: filterTint, level: tintStrength, rgb: [3]byte{r, g, b}}
}

// NewTintColor returns a tint filter record for the given color value.
// The alpha component of the color is ignored.
func NewTintColor(col color.Color) Filter {
  nrgba := color.NRGBAModel.Convert(col).(color.NRGBA)
  return NewTintRGB(nrgba.R, nrgba.G, nrgba.B)
}

// Tint appends a tint towards a "#RRGGBB" target color to the filter sequence.
func (d *Darkroom) Tint(value string) *Darkroom {
  return d.appendFilter(NewTint(value))
}

// TintRGB appends a tint towards the given RGB target color to the filter sequence.
func (d *Darkroom) TintRGB(r, g, b byte) *Darkroom {
  return d.appendFilter(NewTintRGB(r, g, b), nil)
}

// TintColor appends a tint towards the given color value to the filter sequence.
func (d *Darkroom) TintColor(col color.Color) *Darkroom {
  return d.appendFilter(NewTintColor(col), nil)
}


// Used internally. Applies the tint effect to a single pixel color.
func applyTint(f *Filter, col PixelColor) PixelColor {
  s := f.level
  r, g, b := float64(col.R), float64(col.G), float64(col.B)
  col.R = clampRound(r + (float64(f.rgb[0]) - r) * s)
  col.G = clampRound(g + (float64(f.rgb[1]) - g) * s)
  col.B = clampRound(b + (float64(f.rgb[2]) - b) * s)
  return col
}
