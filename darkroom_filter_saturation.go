package darkroom
/*
Implements filter "saturation":
Options:
- level: int [-100, 100]

Each channel is blended between the pixel's luma value and the original
channel value: out = lum*(1-s) + in*s with s = 1 + level/100. Level -100
produces a grayscale image, level 0 is the identity, positive levels
oversaturate. Both blend terms are precomputed as lookup tables; only the
luma index is computed per pixel.
*/

const (
  filterNameSaturation = "saturation"
)


// NewSaturation returns a saturation adjustment filter record. level is
// clamped to [-100, 100].
func NewSaturation(level int) Filter {
  level = clampInt(level, -100, 100)
  s := 1.0 + float64(level) / 100.0
  var tableCol, tableLum [256]float64
  for i := 0; i < 256; i++ {
    tableCol[i] = float64(i) * s
    tableLum[i] = float64(i) * (1.0 - s)
  }
  return Filter{kind: filterSaturation, tableCol: &tableCol, tableLum: &tableLum}
}

// Saturation appends a saturation adjustment to the filter sequence.
func (d *Darkroom) Saturation(level int) *Darkroom {
  return d.appendFilter(NewSaturation(level), nil)
}


// Used internally. Applies saturation adjustment to a single pixel color.
func applySaturation(f *Filter, col PixelColor) PixelColor {
  lum := clampRound(lumaWeightR * float64(col.R) + lumaWeightG * float64(col.G) + lumaWeightB * float64(col.B))
  col.R = clampRound(f.tableCol[col.R] + f.tableLum[lum])
  col.G = clampRound(f.tableCol[col.G] + f.tableLum[lum])
  col.B = clampRound(f.tableCol[col.B] + f.tableLum[lum])
  return col
}
