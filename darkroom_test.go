package darkroom

import (
  "bytes"
  "errors"
  "image"
  "image/color"
  "testing"

  "github.com/visual-discovery/DarkRoom/graphics"
)

// Used by tests. Returns a width x height image filled with the given color.
func solidImage(width, height int, col color.NRGBA) *image.NRGBA {
  img := image.NewNRGBA(image.Rect(0, 0, width, height))
  for ofs := 0; ofs < len(img.Pix); ofs += 4 {
    img.Pix[ofs], img.Pix[ofs+1], img.Pix[ofs+2], img.Pix[ofs+3] = col.R, col.G, col.B, col.A
  }
  return img
}

// Used by tests. Returns a width x height image with position-dependent
// channel values.
func gradientImage(width, height int) *image.NRGBA {
  img := image.NewNRGBA(image.Rect(0, 0, width, height))
  ofs := 0
  for y := 0; y < height; y++ {
    for x := 0; x < width; x++ {
      img.Pix[ofs] = byte(x * 7)
      img.Pix[ofs+1] = byte(y * 13)
      img.Pix[ofs+2] = byte((x + y) * 5)
      img.Pix[ofs+3] = 255
      ofs += 4
    }
  }
  return img
}

// Used by tests. Returns the raw pixel content of the bitmap.
func bitmapBytes(t *testing.T, b *graphics.Bitmap) []byte {
  t.Helper()
  if b == nil { t.Fatal("no bitmap available") }
  buf, err := b.Bytes()
  if err != nil { t.Fatalf("reading pixel buffer failed: %v", err) }
  return buf
}


// TestCreateNewCopiesSource checks that a session is isolated from later
// changes to its source image.
func TestCreateNewCopiesSource(t *testing.T) {
  img := solidImage(2, 2, color.NRGBA{R: 255, A: 255})
  d := CreateNew(img)
  if d.Error() != nil { t.Fatalf("CreateNew failed: %v", d.Error()) }
  defer d.Dispose()

  if d.GetWidth() != 2 || d.GetHeight() != 2 {
    t.Errorf("session size = %dx%d, want 2x2", d.GetWidth(), d.GetHeight())
  }

  for i := range img.Pix {
    img.Pix[i] = 0
  }
  buf := bitmapBytes(t, d.GetImage())
  for ofs := 0; ofs < len(buf); ofs += 4 {
    if buf[ofs] != 255 || buf[ofs+1] != 0 || buf[ofs+2] != 0 || buf[ofs+3] != 255 {
      t.Fatalf("working image changed with the source: pixel %d is (%d,%d,%d,%d)",
               ofs/4, buf[ofs], buf[ofs+1], buf[ofs+2], buf[ofs+3])
    }
  }
}

// TestCreateNewNilImage checks rejection of a missing source image.
func TestCreateNewNilImage(t *testing.T) {
  d := CreateNew(nil)
  wantValidationError(t, d.Error())
}

// TestBuilderAppendsInOrder checks filter sequence growth and name lookup.
func TestBuilderAppendsInOrder(t *testing.T) {
  d := CreateNew(solidImage(1, 1, color.NRGBA{A: 255}))
  if d.Error() != nil { t.Fatalf("CreateNew failed: %v", d.Error()) }
  defer d.Dispose()

  ret := d.BlackWhite("regular").Contrast(25).Tint("#102030")
  if ret != d { t.Error("builder calls do not return the session") }
  if d.Error() != nil { t.Fatalf("builder chain failed: %v", d.Error()) }
  if d.GetFilterLength() != 3 {
    t.Fatalf("GetFilterLength() = %d, want 3", d.GetFilterLength())
  }
  for i, want := range []string{"blackwhite", "contrast", "tint"} {
    if got := d.GetFilterName(i); got != want {
      t.Errorf("GetFilterName(%d) = %q, want %q", i, got, want)
    }
  }
  if d.GetFilterName(-1) != "" || d.GetFilterName(3) != "" {
    t.Error("out of range filter positions do not return an empty name")
  }
}

// TestBuilderRejectsInvalid checks fail-fast validation and the sticky error
// state of the session.
func TestBuilderRejectsInvalid(t *testing.T) {
  d := CreateNew(solidImage(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255}))
  if d.Error() != nil { t.Fatalf("CreateNew failed: %v", d.Error()) }
  defer d.Dispose()

  d.Invert().Tint("no color").Brightness(10)
  wantValidationError(t, d.Error())

  // all further calls degrade to no-ops while the error is pending
  if d.GetImage() != nil { t.Error("GetImage() returned a bitmap while an error is pending") }
  if d.GetFilterLength() != 0 { t.Error("GetFilterLength() did not report 0 while an error is pending") }
  if _, err := d.Wash(); err == nil { t.Error("Wash() succeeded while an error is pending") }

  // the offending and subsequent filters were never appended
  d.ClearError()
  if d.Error() != nil { t.Fatalf("ClearError did not clear the error state: %v", d.Error()) }
  if d.GetFilterLength() != 1 {
    t.Fatalf("GetFilterLength() = %d after recovery, want 1", d.GetFilterLength())
  }
  if d.GetFilterName(0) != "invert" {
    t.Errorf("GetFilterName(0) = %q, want %q", d.GetFilterName(0), "invert")
  }
}

// TestResetRestoresOriginal checks that a reset empties the filter sequence
// and rebuilds the working image from the original.
func TestResetRestoresOriginal(t *testing.T) {
  d := CreateNew(gradientImage(4, 4))
  if d.Error() != nil { t.Fatalf("CreateNew failed: %v", d.Error()) }
  defer d.Dispose()

  orig := d.GetOriginalImage()
  defer orig.Dispose()

  d.SetResetImage(false)
  d.Invert()
  if _, err := d.Wash(); err != nil { t.Fatalf("Wash failed: %v", err) }
  if bytes.Equal(bitmapBytes(t, d.GetImage()), bitmapBytes(t, orig)) {
    t.Fatal("washed working image does not differ from the original")
  }

  d.Invert().Brightness(5).Sepia(40)
  if d.GetFilterLength() != 3 {
    t.Fatalf("GetFilterLength() = %d, want 3", d.GetFilterLength())
  }

  d.Reset()
  if d.Error() != nil { t.Fatalf("Reset failed: %v", d.Error()) }
  if d.GetFilterLength() != 0 {
    t.Errorf("GetFilterLength() = %d after reset, want 0", d.GetFilterLength())
  }
  if !bytes.Equal(bitmapBytes(t, d.GetImage()), bitmapBytes(t, orig)) {
    t.Error("working image is not byte-identical to the original after reset")
  }
}

// TestGetOriginalImageIsolated checks that handed out copies of the original
// image cannot modify the session.
func TestGetOriginalImageIsolated(t *testing.T) {
  img := gradientImage(4, 3)
  d := CreateNew(img)
  if d.Error() != nil { t.Fatalf("CreateNew failed: %v", d.Error()) }
  defer d.Dispose()

  first := d.GetOriginalImage()
  buf, err := first.Lock()
  if err != nil { t.Fatalf("Lock failed: %v", err) }
  for i := range buf {
    buf[i] = 0
  }
  first.Unlock()
  first.Dispose()

  second := d.GetOriginalImage()
  defer second.Dispose()
  if !bytes.Equal(bitmapBytes(t, second), img.Pix) {
    t.Error("session original was modified through a handed out copy")
  }
}

// TestDisposedSession checks that all operations on a disposed session fail
// with an UseAfterDisposeError.
func TestDisposedSession(t *testing.T) {
  d := CreateNew(solidImage(1, 1, color.NRGBA{A: 255}))
  if d.Error() != nil { t.Fatalf("CreateNew failed: %v", d.Error()) }

  d.Dispose()
  d.Dispose()    // disposing twice is a no-op

  var uerr *UseAfterDisposeError

  d.Invert()
  if !errors.As(d.Error(), &uerr) {
    t.Errorf("builder call on disposed session returned %v, want an UseAfterDisposeError", d.Error())
  }

  d.ClearError()
  if _, err := d.Wash(); !errors.As(err, &uerr) {
    t.Errorf("Wash() on disposed session returned %v, want an UseAfterDisposeError", err)
  }

  d.ClearError()
  d.Reset()
  if !errors.As(d.Error(), &uerr) {
    t.Errorf("Reset() on disposed session returned %v, want an UseAfterDisposeError", d.Error())
  }
}

// TestAddFiltersKeepsOrder checks batch appending of pre-built filter records.
func TestAddFiltersKeepsOrder(t *testing.T) {
  d := CreateNew(solidImage(1, 1, color.NRGBA{A: 255}))
  if d.Error() != nil { t.Fatalf("CreateNew failed: %v", d.Error()) }
  defer d.Dispose()

  d.AddFilters(NewInvert(), NewBrightness(20))
  d.AddFilters(NewSepia(50)).Contrast(10)
  if d.Error() != nil { t.Fatalf("appending filters failed: %v", d.Error()) }

  want := []string{"invert", "brightness", "sepia", "contrast"}
  if d.GetFilterLength() != len(want) {
    t.Fatalf("GetFilterLength() = %d, want %d", d.GetFilterLength(), len(want))
  }
  for i, name := range want {
    if got := d.GetFilterName(i); got != name {
      t.Errorf("GetFilterName(%d) = %q, want %q", i, got, name)
    }
  }
}
