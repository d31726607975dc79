package graphics

import (
  "bytes"
  "image"
  "testing"
)

// Used by tests. Returns a width x height bitmap with position-dependent
// channel values and full alpha.
func testBitmap(t *testing.T, width, height int) *Bitmap {
  t.Helper()
  b, err := CreateBitmap(width, height)
  if err != nil { t.Fatalf("CreateBitmap failed: %v", err) }
  buf, err := b.Lock()
  if err != nil { t.Fatalf("Lock failed: %v", err) }
  for i := 0; i < len(buf); i += 4 {
    buf[i] = byte(i)
    buf[i+1] = byte(i / 3)
    buf[i+2] = byte(255 - i)
    buf[i+3] = 255
  }
  b.Unlock()
  return b
}

// Used by tests. Returns a width x height bitmap filled with the given color.
func solidBitmap(t *testing.T, width, height int, col [4]byte) *Bitmap {
  t.Helper()
  b, err := CreateBitmap(width, height)
  if err != nil { t.Fatalf("CreateBitmap failed: %v", err) }
  buf, err := b.Lock()
  if err != nil { t.Fatalf("Lock failed: %v", err) }
  for i := 0; i < len(buf); i += 4 {
    copy(buf[i:i+4], col[:])
  }
  b.Unlock()
  return b
}

// Used by tests. Returns the raw pixel content of the bitmap.
func rawBytes(t *testing.T, b *Bitmap) []byte {
  t.Helper()
  buf, err := b.Bytes()
  if err != nil { t.Fatalf("reading pixel buffer failed: %v", err) }
  return buf
}

// Used by tests. Counts the pixels of the bitmap matching the given color.
func countPixels(t *testing.T, b *Bitmap, col [4]byte) int {
  t.Helper()
  buf := rawBytes(t, b)
  count := 0
  for i := 0; i < len(buf); i += 4 {
    if bytes.Equal(buf[i:i+4], col[:]) { count++ }
  }
  return count
}


// TestCreateBitmapSize checks size validation and initial bitmap state.
func TestCreateBitmapSize(t *testing.T) {
  for _, size := range []struct{ w, h int }{{0, 1}, {1, 0}, {-3, 2}, {0, 0}} {
    if _, err := CreateBitmap(size.w, size.h); err == nil {
      t.Errorf("CreateBitmap(%d, %d) did not fail", size.w, size.h)
    }
  }

  b, err := CreateBitmap(4, 3)
  if err != nil { t.Fatalf("CreateBitmap failed: %v", err) }
  defer b.Dispose()
  if b.GetWidth() != 4 || b.GetHeight() != 3 {
    t.Errorf("bitmap size = %dx%d, want 4x3", b.GetWidth(), b.GetHeight())
  }
  if b.GetStride() != 16 {
    t.Errorf("GetStride() = %d, want 16", b.GetStride())
  }
  if b.GetImageType() != TYPE_UNKNOWN {
    t.Errorf("GetImageType() = %d, want TYPE_UNKNOWN", b.GetImageType())
  }
  if b.IsDisposed() { t.Error("fresh bitmap reports disposed state") }

  for i, v := range rawBytes(t, b) {
    if v != 0 { t.Fatalf("fresh bitmap byte %d = %d, want 0", i, v) }
  }
}

// TestCreateBitmapFromImage checks pixel copying and bounds handling.
func TestCreateBitmapFromImage(t *testing.T) {
  if _, err := CreateBitmapFromImage(nil); err == nil {
    t.Error("CreateBitmapFromImage(nil) did not fail")
  }

  // source bounds do not have to start at the origin
  src := image.NewNRGBA(image.Rect(2, 3, 4, 5))
  for i := range src.Pix {
    src.Pix[i] = byte(i * 11)
  }
  want := make([]byte, len(src.Pix))
  copy(want, src.Pix)

  b, err := CreateBitmapFromImage(src)
  if err != nil { t.Fatalf("CreateBitmapFromImage failed: %v", err) }
  defer b.Dispose()
  if b.GetWidth() != 2 || b.GetHeight() != 2 {
    t.Fatalf("bitmap size = %dx%d, want 2x2", b.GetWidth(), b.GetHeight())
  }
  if !bytes.Equal(rawBytes(t, b), want) {
    t.Error("bitmap content does not match the source image")
  }

  // the content was copied, not shared
  for i := range src.Pix {
    src.Pix[i] = 0
  }
  if !bytes.Equal(rawBytes(t, b), want) {
    t.Error("bitmap content changed with the source image")
  }
}

// TestCloneIndependent checks that clones do not share their pixel buffer.
func TestCloneIndependent(t *testing.T) {
  b := testBitmap(t, 3, 3)
  defer b.Dispose()
  want := rawBytes(t, b)

  clone, err := b.Clone()
  if err != nil { t.Fatalf("Clone failed: %v", err) }
  defer clone.Dispose()
  if clone.GetWidth() != 3 || clone.GetHeight() != 3 {
    t.Fatalf("clone size = %dx%d, want 3x3", clone.GetWidth(), clone.GetHeight())
  }
  if !bytes.Equal(rawBytes(t, clone), want) {
    t.Fatal("clone content differs from the source bitmap")
  }

  buf, err := clone.Lock()
  if err != nil { t.Fatalf("Lock failed: %v", err) }
  for i := range buf {
    buf[i] = 0
  }
  clone.Unlock()

  if !bytes.Equal(rawBytes(t, b), want) {
    t.Error("modifying the clone changed the source bitmap")
  }
}

// TestLockStates checks the exclusive buffer locking rules.
func TestLockStates(t *testing.T) {
  b := testBitmap(t, 2, 2)
  defer b.Dispose()

  if _, err := b.Lock(); err != nil { t.Fatalf("Lock failed: %v", err) }
  if _, err := b.Lock(); err == nil { t.Error("second Lock did not fail") }
  if _, err := b.Bytes(); err == nil { t.Error("Bytes succeeded on a locked buffer") }
  if _, err := b.Clone(); err == nil { t.Error("Clone succeeded on a locked buffer") }

  if err := b.Unlock(); err != nil { t.Fatalf("Unlock failed: %v", err) }
  if err := b.Unlock(); err == nil { t.Error("Unlock of an unlocked buffer did not fail") }

  if _, err := b.Bytes(); err != nil { t.Errorf("Bytes failed after unlocking: %v", err) }
}

// TestDisposedBitmap checks that operations fail after disposal.
func TestDisposedBitmap(t *testing.T) {
  b := testBitmap(t, 2, 2)
  b.Dispose()
  b.Dispose()    // disposing twice is a no-op

  if !b.IsDisposed() { t.Fatal("IsDisposed() = false after disposal") }
  if b.GetImage() != nil { t.Error("GetImage() returned an image after disposal") }
  if _, err := b.Lock(); err == nil { t.Error("Lock succeeded after disposal") }
  if _, err := b.Clone(); err == nil { t.Error("Clone succeeded after disposal") }
  var buf bytes.Buffer
  if err := b.Export(&buf, "png"); err == nil { t.Error("Export succeeded after disposal") }
}

// TestExportImportRoundTrip checks that lossless formats reproduce the pixel
// buffer exactly.
func TestExportImportRoundTrip(t *testing.T) {
  tests := []struct {
    format  string
    imgType int
  }{
    {"png", TYPE_PNG},
    {"bmp", TYPE_BMP},
    {"drw", TYPE_DRW},
    {"drwc", TYPE_DRW},
  }

  b := testBitmap(t, 5, 4)
  defer b.Dispose()
  want := rawBytes(t, b)

  for _, tt := range tests {
    t.Run(tt.format, func(t *testing.T) {
      var buf bytes.Buffer
      if err := b.Export(&buf, tt.format); err != nil {
        t.Fatalf("Export failed: %v", err)
      }
      in, err := Import(bytes.NewReader(buf.Bytes()))
      if err != nil { t.Fatalf("Import failed: %v", err) }
      defer in.Dispose()

      if in.GetWidth() != 5 || in.GetHeight() != 4 {
        t.Fatalf("imported size = %dx%d, want 5x4", in.GetWidth(), in.GetHeight())
      }
      if in.GetImageType() != tt.imgType {
        t.Errorf("GetImageType() = %d, want %d", in.GetImageType(), tt.imgType)
      }
      if !bytes.Equal(rawBytes(t, in), want) {
        t.Error("imported pixel content differs from the exported bitmap")
      }
    })
  }
}

// TestRawFormatKeepsAlpha checks that the DRW formats preserve partial
// transparency exactly.
func TestRawFormatKeepsAlpha(t *testing.T) {
  b, err := CreateBitmap(4, 2)
  if err != nil { t.Fatalf("CreateBitmap failed: %v", err) }
  defer b.Dispose()
  buf, err := b.Lock()
  if err != nil { t.Fatalf("Lock failed: %v", err) }
  for i := 0; i < len(buf); i += 4 {
    buf[i], buf[i+1], buf[i+2], buf[i+3] = byte(i), 100, 200, byte(i * 9)
  }
  b.Unlock()
  want := rawBytes(t, b)

  for _, format := range []string{"drw", "drwc"} {
    var out bytes.Buffer
    if err := b.Export(&out, format); err != nil { t.Fatalf("Export %s failed: %v", format, err) }
    in, err := Import(bytes.NewReader(out.Bytes()))
    if err != nil { t.Fatalf("Import %s failed: %v", format, err) }
    if !bytes.Equal(rawBytes(t, in), want) {
      t.Errorf("%s round trip changed the pixel content", format)
    }
    in.Dispose()
  }
}

// TestRawCompression checks that the compressed DRW variant shrinks
// redundant pixel data.
func TestRawCompression(t *testing.T) {
  b := solidBitmap(t, 64, 64, [4]byte{10, 20, 30, 255})
  defer b.Dispose()

  var plain, compressed bytes.Buffer
  if err := b.Export(&plain, "drw"); err != nil { t.Fatalf("Export drw failed: %v", err) }
  if err := b.Export(&compressed, "drwc"); err != nil { t.Fatalf("Export drwc failed: %v", err) }
  if compressed.Len() >= plain.Len() {
    t.Errorf("drwc output (%d bytes) not smaller than drw output (%d bytes)",
             compressed.Len(), plain.Len())
  }
}

// TestExportLossyFormats checks that GIF and JPEG output can be imported
// again.
func TestExportLossyFormats(t *testing.T) {
  tests := []struct {
    format  string
    imgType int
  }{
    {"gif", TYPE_GIF},
    {"jpg", TYPE_JPG},
  }

  b := testBitmap(t, 8, 8)
  defer b.Dispose()

  for _, tt := range tests {
    t.Run(tt.format, func(t *testing.T) {
      var buf bytes.Buffer
      if err := b.Export(&buf, tt.format); err != nil { t.Fatalf("Export failed: %v", err) }
      in, err := Import(bytes.NewReader(buf.Bytes()))
      if err != nil { t.Fatalf("Import failed: %v", err) }
      defer in.Dispose()
      if in.GetWidth() != 8 || in.GetHeight() != 8 {
        t.Errorf("imported size = %dx%d, want 8x8", in.GetWidth(), in.GetHeight())
      }
      if in.GetImageType() != tt.imgType {
        t.Errorf("GetImageType() = %d, want %d", in.GetImageType(), tt.imgType)
      }
    })
  }
}

// TestImportUnrecognized checks rejection of unsupported input data.
func TestImportUnrecognized(t *testing.T) {
  if _, err := Import(bytes.NewReader([]byte("not an image at all"))); err == nil {
    t.Error("Import of arbitrary data did not fail")
  }
  if _, err := Import(nil); err == nil {
    t.Error("Import(nil) did not fail")
  }
}

// TestExportUnknownFormat checks rejection of unsupported output formats.
func TestExportUnknownFormat(t *testing.T) {
  b := testBitmap(t, 2, 2)
  defer b.Dispose()

  var buf bytes.Buffer
  if err := b.Export(&buf, "tiff"); err == nil {
    t.Error("Export to an unsupported format did not fail")
  }
  if err := b.Export(nil, "png"); err == nil {
    t.Error("Export without output did not fail")
  }
}

// TestBuildSheetPacksAllTiles checks that every input bitmap appears intact
// on the assembled sheet.
func TestBuildSheetPacksAllTiles(t *testing.T) {
  red := solidBitmap(t, 4, 3, [4]byte{255, 0, 0, 255})
  defer red.Dispose()
  green := solidBitmap(t, 2, 2, [4]byte{0, 255, 0, 255})
  defer green.Dispose()
  blue := solidBitmap(t, 5, 1, [4]byte{0, 0, 255, 255})
  defer blue.Dispose()

  const pad = 1
  sheet, err := BuildSheet([]*Bitmap{red, green, blue}, pad)
  if err != nil { t.Fatalf("BuildSheet failed: %v", err) }
  defer sheet.Dispose()

  if sheet.GetWidth() < 5 + 2*pad || sheet.GetHeight() < 3 + 2*pad {
    t.Errorf("sheet size %dx%d cannot hold the largest padded tiles",
             sheet.GetWidth(), sheet.GetHeight())
  }
  if got := countPixels(t, sheet, [4]byte{255, 0, 0, 255}); got != 12 {
    t.Errorf("sheet contains %d red pixels, want 12", got)
  }
  if got := countPixels(t, sheet, [4]byte{0, 255, 0, 255}); got != 4 {
    t.Errorf("sheet contains %d green pixels, want 4", got)
  }
  if got := countPixels(t, sheet, [4]byte{0, 0, 255, 255}); got != 5 {
    t.Errorf("sheet contains %d blue pixels, want 5", got)
  }
}

// TestBuildSheetErrors checks rejection of unusable input lists.
func TestBuildSheetErrors(t *testing.T) {
  if _, err := BuildSheet(nil, 0); err == nil {
    t.Error("BuildSheet without input did not fail")
  }

  ok := solidBitmap(t, 2, 2, [4]byte{1, 2, 3, 255})
  defer ok.Dispose()
  gone := solidBitmap(t, 2, 2, [4]byte{1, 2, 3, 255})
  gone.Dispose()
  if _, err := BuildSheet([]*Bitmap{ok, gone}, 0); err == nil {
    t.Error("BuildSheet with a disposed input did not fail")
  }
}
