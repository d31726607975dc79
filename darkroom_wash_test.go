package darkroom

import (
  "bytes"
  "errors"
  "image/color"
  "testing"
)

// TestWashInvertsWhiteImage checks a complete wash cycle over a solid image.
func TestWashInvertsWhiteImage(t *testing.T) {
  d := CreateNew(solidImage(2, 2, color.NRGBA{R: 255, G: 255, B: 255, A: 255}))
  if d.Error() != nil { t.Fatalf("CreateNew failed: %v", d.Error()) }
  defer d.Dispose()

  d.Invert()
  washed, err := d.Wash()
  if err != nil { t.Fatalf("Wash failed: %v", err) }
  defer washed.Dispose()

  buf := bitmapBytes(t, washed)
  for ofs := 0; ofs < len(buf); ofs += 4 {
    if buf[ofs] != 0 || buf[ofs+1] != 0 || buf[ofs+2] != 0 || buf[ofs+3] != 255 {
      t.Fatalf("pixel %d = (%d,%d,%d,%d), want (0,0,0,255)",
               ofs/4, buf[ofs], buf[ofs+1], buf[ofs+2], buf[ofs+3])
    }
  }

  // the wash consumed the sequence and rebuilt the working image
  if d.GetFilterLength() != 0 {
    t.Errorf("GetFilterLength() = %d after wash, want 0", d.GetFilterLength())
  }
  work := bitmapBytes(t, d.GetImage())
  for ofs := 0; ofs < len(work); ofs += 4 {
    if work[ofs] != 255 {
      t.Fatal("working image was not rebuilt from the original")
    }
  }
}

// TestWashOrderDependent checks that filters are applied strictly in append
// order.
func TestWashOrderDependent(t *testing.T) {
  src := solidImage(2, 1, color.NRGBA{G: 255, A: 255})

  a := CreateNew(src)
  defer a.Dispose()
  a.Tint("#FF0000").Invert()
  washedA, err := a.Wash()
  if err != nil { t.Fatalf("first wash failed: %v", err) }
  defer washedA.Dispose()

  b := CreateNew(src)
  defer b.Dispose()
  b.Invert().Tint("#FF0000")
  washedB, err := b.Wash()
  if err != nil { t.Fatalf("second wash failed: %v", err) }
  defer washedB.Dispose()

  bufA := bitmapBytes(t, washedA)
  bufB := bitmapBytes(t, washedB)
  if wantA := []byte{127, 127, 255, 255}; !bytes.Equal(bufA[:4], wantA) {
    t.Errorf("tint before invert produced pixel %v, want %v", bufA[:4], wantA)
  }
  if wantB := []byte{255, 0, 128, 255}; !bytes.Equal(bufB[:4], wantB) {
    t.Errorf("invert before tint produced pixel %v, want %v", bufB[:4], wantB)
  }
  if bytes.Equal(bufA, bufB) {
    t.Error("filter order had no effect on the result")
  }
}

// TestWashThreadingDeterministic checks that single- and multi-threaded
// washes produce byte-identical results.
func TestWashThreadingDeterministic(t *testing.T) {
  prev := GetMultiThreaded()
  defer SetMultiThreaded(prev)

  src := gradientImage(64, 48)

  SetMultiThreaded(false)
  single := CreateNew(src)
  defer single.Dispose()
  single.Contrast(30).Noise(25).Sepia(40).Hue(140)
  washedS, err := single.Wash()
  if err != nil { t.Fatalf("single-threaded wash failed: %v", err) }
  defer washedS.Dispose()

  SetMultiThreaded(true)
  multi := CreateNew(src)
  defer multi.Dispose()
  multi.Contrast(30).Noise(25).Sepia(40).Hue(140)
  washedM, err := multi.Wash()
  if err != nil { t.Fatalf("multi-threaded wash failed: %v", err) }
  defer washedM.Dispose()

  if !bytes.Equal(bitmapBytes(t, washedS), bitmapBytes(t, washedM)) {
    t.Error("single- and multi-threaded washes are not byte-identical")
  }
}

// TestWashAsyncMatchesSync checks that the asynchronous wash delivers the
// same result as its synchronous counterpart.
func TestWashAsyncMatchesSync(t *testing.T) {
  src := gradientImage(16, 16)

  sync := CreateNew(src)
  defer sync.Dispose()
  sync.Invert().Contrast(-40).Tint("#204060")
  washed, err := sync.Wash()
  if err != nil { t.Fatalf("Wash failed: %v", err) }
  defer washed.Dispose()

  async := CreateNew(src)
  defer async.Dispose()
  async.Invert().Contrast(-40).Tint("#204060")
  res := <-async.WashAsync()
  if res.Err != nil { t.Fatalf("WashAsync failed: %v", res.Err) }
  defer res.Image.Dispose()

  if !bytes.Equal(bitmapBytes(t, washed), bitmapBytes(t, res.Image)) {
    t.Error("asynchronous wash result differs from the synchronous result")
  }
}

// TestWashEmptySequence checks that a wash without filters returns the image
// unchanged.
func TestWashEmptySequence(t *testing.T) {
  img := gradientImage(3, 3)
  d := CreateNew(img)
  if d.Error() != nil { t.Fatalf("CreateNew failed: %v", d.Error()) }
  defer d.Dispose()

  washed, err := d.Wash()
  if err != nil { t.Fatalf("Wash failed: %v", err) }
  defer washed.Dispose()
  if !bytes.Equal(bitmapBytes(t, washed), img.Pix) {
    t.Error("wash without filters modified the image")
  }
}

// TestWashPreservesOriginal checks that washing never touches the original
// image.
func TestWashPreservesOriginal(t *testing.T) {
  img := gradientImage(5, 4)
  d := CreateNew(img)
  if d.Error() != nil { t.Fatalf("CreateNew failed: %v", d.Error()) }
  defer d.Dispose()

  d.Invert().Brightness(30)
  washed, err := d.Wash()
  if err != nil { t.Fatalf("Wash failed: %v", err) }
  defer washed.Dispose()

  orig := d.GetOriginalImage()
  defer orig.Dispose()
  if !bytes.Equal(bitmapBytes(t, orig), img.Pix) {
    t.Error("wash modified the original image")
  }
}

// TestWashResetImageOff checks cumulative washing on the retained working
// image.
func TestWashResetImageOff(t *testing.T) {
  d := CreateNew(solidImage(2, 2, color.NRGBA{R: 100, G: 100, B: 100, A: 255}))
  if d.Error() != nil { t.Fatalf("CreateNew failed: %v", d.Error()) }
  defer d.Dispose()

  d.SetResetImage(false)
  if d.GetResetImage() { t.Fatal("GetResetImage() did not report the disabled state") }

  d.Brightness(10)
  washed, err := d.Wash()
  if err != nil { t.Fatalf("first wash failed: %v", err) }
  if washed != d.GetImage() {
    t.Error("wash did not return the live working image")
  }
  if buf := bitmapBytes(t, washed); buf[0] != 110 {
    t.Errorf("first wash produced channel value %d, want 110", buf[0])
  }

  // the previous result is the baseline for the next wash
  d.Brightness(10)
  washed, err = d.Wash()
  if err != nil { t.Fatalf("second wash failed: %v", err) }
  if buf := bitmapBytes(t, washed); buf[0] != 120 {
    t.Errorf("second wash produced channel value %d, want 120", buf[0])
  }
}

// TestWashResetImageOn checks that the default mode hands the result over
// and restores the working image.
func TestWashResetImageOn(t *testing.T) {
  d := CreateNew(solidImage(2, 2, color.NRGBA{R: 100, G: 100, B: 100, A: 255}))
  if d.Error() != nil { t.Fatalf("CreateNew failed: %v", d.Error()) }
  defer d.Dispose()

  if !d.GetResetImage() { t.Fatal("GetResetImage() did not report the default enabled state") }

  d.Brightness(10)
  washed, err := d.Wash()
  if err != nil { t.Fatalf("Wash failed: %v", err) }
  defer washed.Dispose()

  if buf := bitmapBytes(t, washed); buf[0] != 110 {
    t.Errorf("wash produced channel value %d, want 110", buf[0])
  }
  if washed == d.GetImage() {
    t.Error("washed image is still attached to the session")
  }
  if buf := bitmapBytes(t, d.GetImage()); buf[0] != 100 {
    t.Errorf("working image channel value = %d after wash, want 100", buf[0])
  }
}

// TestWashWhileBufferLocked checks that a wash fails cleanly when the pixel
// buffer is held elsewhere, without consuming the filter sequence.
func TestWashWhileBufferLocked(t *testing.T) {
  d := CreateNew(solidImage(2, 2, color.NRGBA{R: 255, G: 255, B: 255, A: 255}))
  if d.Error() != nil { t.Fatalf("CreateNew failed: %v", d.Error()) }
  defer d.Dispose()

  bmp := d.GetImage()
  buf, err := bmp.Lock()
  if err != nil { t.Fatalf("Lock failed: %v", err) }

  d.Invert()
  _, werr := d.Wash()
  var rerr *ResourceError
  if !errors.As(werr, &rerr) {
    t.Fatalf("wash on locked buffer returned %v, want a ResourceError", werr)
  }
  for i := range buf {
    if buf[i] != 255 { t.Fatal("failed wash modified the pixel buffer") }
  }
  if err := bmp.Unlock(); err != nil { t.Fatalf("Unlock failed: %v", err) }

  // the sequence is still intact and the session can recover
  d.ClearError()
  if d.GetFilterLength() != 1 {
    t.Fatalf("GetFilterLength() = %d after failed wash, want 1", d.GetFilterLength())
  }
  washed, err := d.Wash()
  if err != nil { t.Fatalf("retried wash failed: %v", err) }
  defer washed.Dispose()
  if out := bitmapBytes(t, washed); out[0] != 0 {
    t.Errorf("retried wash produced channel value %d, want 0", out[0])
  }
}

// TestWashOddSizes checks washing of single-pixel, single-row and
// single-column images.
func TestWashOddSizes(t *testing.T) {
  prev := GetMultiThreaded()
  defer SetMultiThreaded(prev)
  SetMultiThreaded(true)

  sizes := []struct{ w, h int }{{1, 1}, {3, 1}, {1, 3}, {2, 5}}
  for _, size := range sizes {
    d := CreateNew(solidImage(size.w, size.h, color.NRGBA{R: 10, G: 200, B: 30, A: 40}))
    if d.Error() != nil { t.Fatalf("CreateNew(%dx%d) failed: %v", size.w, size.h, d.Error()) }

    d.Invert()
    washed, err := d.Wash()
    if err != nil { t.Fatalf("wash of %dx%d image failed: %v", size.w, size.h, err) }

    buf := bitmapBytes(t, washed)
    if len(buf) != size.w * size.h * 4 {
      t.Fatalf("%dx%d wash returned %d pixel bytes", size.w, size.h, len(buf))
    }
    for ofs := 0; ofs < len(buf); ofs += 4 {
      if buf[ofs] != 245 || buf[ofs+1] != 55 || buf[ofs+2] != 225 || buf[ofs+3] != 40 {
        t.Fatalf("%dx%d wash: pixel %d = (%d,%d,%d,%d), want (245,55,225,40)",
                 size.w, size.h, ofs/4, buf[ofs], buf[ofs+1], buf[ofs+2], buf[ofs+3])
      }
    }
    washed.Dispose()
    d.Dispose()
  }
}

// TestWashUnknownKindPassThrough checks that filter records without a
// recognized kind leave every pixel unchanged.
func TestWashUnknownKindPassThrough(t *testing.T) {
  img := gradientImage(8, 6)
  d := CreateNew(img)
  if d.Error() != nil { t.Fatalf("CreateNew failed: %v", d.Error()) }
  defer d.Dispose()

  d.AddFilters(Filter{}, Filter{kind: filterCount + 3})
  if d.GetFilterLength() != 2 {
    t.Fatalf("GetFilterLength() = %d, want 2", d.GetFilterLength())
  }

  washed, err := d.Wash()
  if err != nil { t.Fatalf("Wash failed: %v", err) }
  defer washed.Dispose()
  if !bytes.Equal(bitmapBytes(t, washed), img.Pix) {
    t.Error("unrecognized filter kinds modified the image")
  }
}
