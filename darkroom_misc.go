package darkroom
// Provides general-purpose functionality shared by filter and wash operations.

import (
  "fmt"
  "runtime"
  "strconv"
  "strings"
)

var multithreaded bool = runtime.NumCPU() > 1


// GetMultiThreaded returns whether multithreading should be used for wash operations.
func GetMultiThreaded() bool {
  return multithreaded
}


// SetMultiThreaded sets whether multithreading should be used for wash operations.
func SetMultiThreaded(set bool) {
  multithreaded = set
}


// Used internally. Clamps an integer value to the range [min, max].
func clampInt(value, min, max int) int {
  if value < min { return min }
  if value > max { return max }
  return value
}

// Used internally. Clamps a float value to the range [min, max].
func clampFloat(value, min, max float64) float64 {
  if value < min { return min }
  if value > max { return max }
  return value
}

// Used internally. Rounds a float value to the nearest byte, clamped to [0, 255].
func clampRound(value float64) byte {
  if value <= 0.0 { return 0 }
  if value >= 255.0 { return 255 }
  return byte(value + 0.5)
}

// Used internally. Wraps a degree value into the range [0, 360).
func wrapDegrees(value float64) float64 {
  for value < 0.0 { value += 360.0 }
  for value >= 360.0 { value -= 360.0 }
  return value
}


// Used internally. Converts string (oct/dec/hex) into int without range restrictions.
func parseInt(value string) (int, error) {
  ret, err := strconv.ParseInt(value, 0, 0)
  if err != nil { return 0, fmt.Errorf("not an int: %s", value) }
  return int(ret), nil
}

// Used internally. Converts string into float without range restrictions.
func parseFloat(value string) (float64, error) {
  ret, err := strconv.ParseFloat(value, 64)
  if err != nil { return 0, fmt.Errorf("not a float: %s", value) }
  return ret, nil
}

// Used internally. Converts string into bool.
func parseBool(value string) (bool, error) {
  ret, err := strconv.ParseBool(value)
  if err != nil { return false, fmt.Errorf("not a bool: %s", value) }
  return ret, nil
}

// Used internally. Converts a color definition in "#RRGGBB" format (case-insensitive)
// into individual red, green and blue values.
func parseColor(value string) (rgb [3]byte, err error) {
  s := strings.TrimSpace(value)
  if len(s) == 0 || s[0] != '#' { err = fmt.Errorf("not a color definition: %q", value); return }
  s = s[1:]
  if len(s) != 6 { err = fmt.Errorf("color definition must contain 6 hex digits: %q", value); return }
  v, err2 := strconv.ParseUint(s, 16, 32)
  if err2 != nil { err = fmt.Errorf("not a color definition: %q", value); return }
  rgb[0] = byte(v >> 16)
  rgb[1] = byte(v >> 8)
  rgb[2] = byte(v)
  return
}


// Used internally. Computes a FNV-1a hash over the given byte values.
func hashBytes(b0, b1, b2, b3 byte) uint32 {
  const prime = 16777619
  hash := uint32(2166136261)
  hash = (hash ^ uint32(b0)) * prime
  hash = (hash ^ uint32(b1)) * prime
  hash = (hash ^ uint32(b2)) * prime
  hash = (hash ^ uint32(b3)) * prime
  return hash
}


// Used internally. Converts RGB byte values into HSL values in range [0, 1].
func rgbToHSL(r, g, b byte) (h, s, l float64) {
  fr, fg, fb := float64(r) / 255.0, float64(g) / 255.0, float64(b) / 255.0
  cmin := fr; if fg < cmin { cmin = fg }; if fb < cmin { cmin = fb }
  cmax := fr; if fg > cmax { cmax = fg }; if fb > cmax { cmax = fb }
  csum := cmax + cmin
  cdelta := cmax - cmin
  cdelta2 := cdelta / 2.0

  l = csum / 2.0

  if cdelta != 0.0 {
    if l < 0.5 {
      s = cdelta / csum
    } else {
      s = cdelta / (2.0 - csum)
    }

    dr := ((cmax - fr) / 6.0 + cdelta2) / cdelta
    dg := ((cmax - fg) / 6.0 + cdelta2) / cdelta
    db := ((cmax - fb) / 6.0 + cdelta2) / cdelta

    switch cmax {
      case fr:  h = db - dg
      case fg:  h = 1.0/3.0 + dr - db
      default:  h = 2.0/3.0 + dg - dr
    }

    if h < 0.0 {
      h += 1.0
    }
    if h > 1.0 {
      h -= 1.0
    }
  }
  return
}

// Used internally. Converts HSL values back to RGB values in range [0, 1].
func hslToRGB(h, s, l float64) (r, g, b float64) {
  if s == 0.0 {
    r, g, b = l, l, l
  } else {
    var f2 float64
    if l < 0.5 {
      f2 = l * (1.0 + s)
    } else {
      f2 = (l + s) - (s * l)
    }
    f1 := 2.0 * l - f2
    f21sub := f2 - f1

    // red
    t := h + 1.0/3.0
    if t < 0.0 { t += 1.0 }
    if t > 1.0 { t -= 1.0 }
    switch {
      case 6.0 * t < 1.0: r = f1 + f21sub * 6.0 * t
      case 2.0 * t < 1.0: r = f2
      case 3.0 * t < 2.0: r = f1 + f21sub * (2.0/3.0 - t) * 6.0
      default:            r = f1
    }
    if r < 0.0 { r = 0.0 }
    if r > 1.0 { r = 1.0 }

    // green
    t = h
    switch {
      case 6.0 * t < 1.0: g = f1 + f21sub * 6.0 * t
      case 2.0 * t < 1.0: g = f2
      case 3.0 * t < 2.0: g = f1 + f21sub * (2.0/3.0 - t) * 6.0
      default:            g = f1
    }
    if g < 0.0 { g = 0.0 }
    if g > 1.0 { g = 1.0 }

    // blue
    t = h - 1.0/3.0
    if t < 0.0 { t += 1.0 }
    if t > 1.0 { t -= 1.0 }
    switch {
      case 6.0 * t < 1.0: b = f1 + f21sub * 6.0 * t
      case 2.0 * t < 1.0: b = f2
      case 3.0 * t < 2.0: b = f1 + f21sub * (2.0/3.0 - t) * 6.0
      default:            b = f1
    }
    if b < 0.0 { b = 0.0 }
    if b > 1.0 { b = 1.0 }
  }
  return
}
