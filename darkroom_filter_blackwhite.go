package darkroom
/*
Implements filter "blackwhite":
Options:
- mode: string ("regular", "average")

Mode "regular" weights the channels by their perceived luminance (ITU-R BT.601
weights 0.299/0.587/0.114), mode "average" weights all channels equally.
*/

import (
  "strings"
)

const (
  filterNameBlackWhite = "blackwhite"
)

// Black/white conversion mode names.
const (
  modeNameRegular = "regular"
  modeNameAverage = "average"
)

// Used internally. Numeric black/white conversion modes.
const (
  bwModeRegular = iota
  bwModeAverage
)

// Luma weights used by the "regular" conversion mode and by the saturation filter.
const (
  lumaWeightR = 0.299
  lumaWeightG = 0.587
  lumaWeightB = 0.114
)


// NewBlackWhite returns a black/white conversion filter record. mode selects
// the conversion formula (see package comment). Unknown modes are rejected
// with a ValidationError.
func NewBlackWhite(mode string) (Filter, error) {
  switch strings.ToLower(strings.TrimSpace(mode)) {
    case modeNameRegular:
      return Filter{kind: filterBlackWhite, mode: bwModeRegular}, nil
    case modeNameAverage:
      return Filter{kind: filterBlackWhite, mode: bwModeAverage}, nil
  }
  return Filter{}, &ValidationError{Reason: "unknown blackwhite mode: " + mode}
}

// BlackWhite appends a black/white conversion to the filter sequence.
func (d *Darkroom) BlackWhite(mode string) *Darkroom {
  return d.appendFilter(NewBlackWhite(mode))
}


// Used internally. Applies black/white conversion to a single pixel color.
func applyBlackWhite(f *Filter, col PixelColor) PixelColor {
  var v byte
  if f.mode == bwModeAverage {
    v = clampRound(float64(int(col.R) + int(col.G) + int(col.B)) / 3.0)
  } else {
    v = clampRound(lumaWeightR * float64(col.R) + lumaWeightG * float64(col.G) + lumaWeightB * float64(col.B))
  }
  col.R, col.G, col.B = v, v, v
  return col
}
