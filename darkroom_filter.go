package darkroom
/*
Defines the filter sequence machinery: filter records, construction from recipe
names and the closed kind-to-transform dispatch used by wash operations.

Available filters:
- blackwhite: mode: string ("regular", "average")
- invert
- contrast: level: int [-100, 100]
- brightness: level: int [-255, 255]
- saturation: level: int [-100, 100]
- vibrance: level: int [-100, 100]
- gamma: level: float [0.0001, 5.0]
- noise: level: int [0, 255]
- sepia: level: int [0, 100]
- hue: level: float, wrapped into [0, 360)
- tint: color: string ("#RRGGBB")

Out-of-range numeric levels are clamped to their documented bounds. Malformed
color definitions, unknown blackwhite modes, unknown filter names and
non-finite float levels are rejected with a ValidationError.
*/

import (
  "strings"
)

// Used internally. Identifies the transform a filter record dispatches to.
type filterKind int

const (
  filterNone filterKind = iota    // the zero record: passes pixels through unchanged
  filterBlackWhite
  filterInvert
  filterContrast
  filterBrightness
  filterSaturation
  filterVibrance
  filterGamma
  filterNoise
  filterSepia
  filterHue
  filterTint
  filterCount
)

// PixelColor holds the channel values of a single decoded pixel.
type PixelColor struct {
  R, G, B, A byte
}

// Filter represents a single normalized entry of a session's filter sequence.
// Records are immutable once constructed. The kind decides which parameter
// fields are meaningful.
type Filter struct {
  kind      filterKind
  level     float64        // canonical scalar parameter
  mode      int            // blackwhite conversion mode
  rgb       [3]byte        // tint target color
  table     *[256]byte     // contrast/gamma lookup table
  tableCol  *[256]float64  // saturation channel term
  tableLum  *[256]float64  // saturation luma term
}

// Used internally. Signature of all pixel transforms. Transforms are pure:
// the result depends only on the input color and the filter parameters.
// Alpha is never modified.
type filterFunc func(f *Filter, col PixelColor) PixelColor

// Used internally. Closed dispatch table from filter kind to transform.
// Kinds without a table entry pass pixels through unchanged.
var filterFuncs = [filterCount]filterFunc{
  filterBlackWhite: applyBlackWhite,
  filterInvert:     applyInvert,
  filterContrast:   applyContrast,
  filterBrightness: applyBrightness,
  filterSaturation: applySaturation,
  filterVibrance:   applyVibrance,
  filterGamma:      applyGamma,
  filterNoise:      applyNoise,
  filterSepia:      applySepia,
  filterHue:        applyHue,
  filterTint:       applyTint,
}

// Used internally. Folds a single filter into a pixel color. Unrecognized
// kinds leave the color unchanged.
func applyFilter(f *Filter, col PixelColor) PixelColor {
  if f.kind <= filterNone || f.kind >= filterCount { return col }
  fn := filterFuncs[f.kind]
  if fn == nil { return col }
  return fn(f, col)
}


// GetName returns the name of the filter for identification purposes.
// The zero record returns an empty string.
func (f Filter) GetName() string {
  switch f.kind {
    case filterBlackWhite:  return filterNameBlackWhite
    case filterInvert:      return filterNameInvert
    case filterContrast:    return filterNameContrast
    case filterBrightness:  return filterNameBrightness
    case filterSaturation:  return filterNameSaturation
    case filterVibrance:    return filterNameVibrance
    case filterGamma:       return filterNameGamma
    case filterNoise:       return filterNameNoise
    case filterSepia:       return filterNameSepia
    case filterHue:         return filterNameHue
    case filterTint:        return filterNameTint
    default:                return ""
  }
}


// CreateFilter constructs a filter record from its recipe name and a map of
// option values. Missing options fall back to the filter's defaults.
// Returns a ValidationError for unknown names or malformed option values.
func CreateFilter(name string, options map[string]string) (Filter, error) {
  switch strings.ToLower(strings.TrimSpace(name)) {
    case filterNameBlackWhite:
      mode, ok := options["mode"]
      if !ok { mode = modeNameRegular }
      return NewBlackWhite(mode)
    case filterNameInvert:
      return NewInvert(), nil
    case filterNameContrast:
      level, err := optionInt(options, "level", 0)
      if err != nil { return Filter{}, err }
      return NewContrast(level), nil
    case filterNameBrightness:
      level, err := optionInt(options, "level", 0)
      if err != nil { return Filter{}, err }
      return NewBrightness(level), nil
    case filterNameSaturation:
      level, err := optionInt(options, "level", 0)
      if err != nil { return Filter{}, err }
      return NewSaturation(level), nil
    case filterNameVibrance:
      level, err := optionInt(options, "level", 0)
      if err != nil { return Filter{}, err }
      return NewVibrance(level), nil
    case filterNameGamma:
      level, err := optionFloat(options, "level", 1.0)
      if err != nil { return Filter{}, err }
      return NewGamma(level)
    case filterNameNoise:
      level, err := optionInt(options, "level", 0)
      if err != nil { return Filter{}, err }
      return NewNoise(level), nil
    case filterNameSepia:
      level, err := optionInt(options, "level", 100)
      if err != nil { return Filter{}, err }
      return NewSepia(level), nil
    case filterNameHue:
      level, err := optionFloat(options, "level", 0.0)
      if err != nil { return Filter{}, err }
      return NewHue(level)
    case filterNameTint:
      value, ok := options["color"]
      if !ok { value = "#ffffff" }
      return NewTint(value)
  }
  return Filter{}, &ValidationError{Reason: "unknown filter name: " + name}
}

// Used internally. Fetches an integer option from a recipe option map.
func optionInt(options map[string]string, key string, defValue int) (int, error) {
  v, ok := options[key]
  if !ok { return defValue, nil }
  ret, err := parseInt(v)
  if err != nil { return 0, &ValidationError{Reason: "option " + key + ": " + err.Error()} }
  return ret, nil
}

// Used internally. Fetches a float option from a recipe option map.
func optionFloat(options map[string]string, key string, defValue float64) (float64, error) {
  v, ok := options[key]
  if !ok { return defValue, nil }
  ret, err := parseFloat(v)
  if err != nil { return 0, &ValidationError{Reason: "option " + key + ": " + err.Error()} }
  return ret, nil
}


// Used internally. Appends a filter record to the end of the session's
// sequence. A pending error state or a failed construction leaves the
// sequence untouched.
func (d *Darkroom) appendFilter(f Filter, err error) *Darkroom {
  if d.err != nil { return d }
  if d.disposed { d.err = &UseAfterDisposeError{Op: "append filter"}; return d }
  if err != nil { d.err = err; return d }
  d.filters = append(d.filters, f)
  return d
}

// AddFilters appends pre-built filter records to the end of the filter
// sequence, preserving their order. Use the New* constructor functions or
// CreateFilter to build records.
func (d *Darkroom) AddFilters(filters ...Filter) *Darkroom {
  if d.err != nil { return d }
  if d.disposed { d.err = &UseAfterDisposeError{Op: "append filter"}; return d }
  d.filters = append(d.filters, filters...)
  return d
}
