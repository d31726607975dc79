package graphics
/*
Implements the contact sheet builder: packs multiple bitmaps into a single
output bitmap.
*/

import (
  "errors"
  "fmt"
  "image"
  "image/draw"
  "math"

  "github.com/InfinityTools/go-binpack2d"
  "github.com/InfinityTools/go-logging"
)


// BuildSheet packs the given bitmaps into a single contact sheet. pad defines
// the number of transparent pixels reserved around each tile. The sheet is
// shrunk to the smallest size that holds all tiles.
func BuildSheet(bitmaps []*Bitmap, pad int) (*Bitmap, error) {
  const binRule = binpack2d.RULE_BEST_LONG_SIDE_FIT
  if len(bitmaps) == 0 { return nil, errors.New("No input bitmaps specified") }
  if pad < 0 { pad = 0 }

  // Estimating initial bin size from the total tile area
  area := 0
  maxDim := 0
  for i, b := range bitmaps {
    if b == nil || b.IsDisposed() { return nil, fmt.Errorf("Input bitmap #%d is not available", i) }
    w, h := b.GetWidth() + 2*pad, b.GetHeight() + 2*pad
    area += w * h
    if w > maxDim { maxDim = w }
    if h > maxDim { maxDim = h }
  }
  size := int(math.Ceil(math.Sqrt(float64(area))))
  if size < maxDim { size = maxDim }

  // Packing tiles, growing the bin until everything fits
  var packer *binpack2d.Packer
  xs := make([]int, len(bitmaps))
  ys := make([]int, len(bitmaps))
  for {
    packer = binpack2d.Create(size, size)
    ok := true
    for i, b := range bitmaps {
      r, fits := packer.Insert(b.GetWidth() + 2*pad, b.GetHeight() + 2*pad, binRule)
      if !fits { ok = false; break }
      xs[i], ys[i] = r.X + pad, r.Y + pad
    }
    if ok { break }
    size = size * 3 / 2 + 1
  }

  // Don't waste empty sheet space
  packer.ShrinkBin(true)
  out, err := CreateBitmap(packer.GetWidth(), packer.GetHeight())
  if err != nil { return nil, err }

  logging.Logf("Assembling sheet of %d tiles (%dx%d pixels)\n", len(bitmaps), out.GetWidth(), out.GetHeight())
  for i, b := range bitmaps {
    rect := image.Rect(xs[i], ys[i], xs[i] + b.GetWidth(), ys[i] + b.GetHeight())
    draw.Draw(out.img, rect, b.GetImage(), image.ZP, draw.Src)
  }
  return out, nil
}
