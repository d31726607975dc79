package darkroom
/*
Implements filter "invert": Negates the red, green and blue channels of every
pixel. Applying the filter twice restores the original channel values exactly.
*/

const (
  filterNameInvert = "invert"
)


// NewInvert returns a channel inversion filter record.
func NewInvert() Filter {
  return Filter{kind: filterInvert}
}

// Invert appends a channel inversion to the filter sequence.
func (d *Darkroom) Invert() *Darkroom {
  return d.appendFilter(NewInvert(), nil)
}


// Used internally. Applies channel inversion to a single pixel color.
func applyInvert(f *Filter, col PixelColor) PixelColor {
  col.R = 255 - col.R
  col.G = 255 - col.G
  col.B = 255 - col.B
  return col
}
