/*
Package graphics provides the pixel buffer container used by darkroom sessions,
together with import and export support for common single-image graphics
formats.
*/
package graphics

import (
  "bytes"
  "errors"
  "fmt"
  "image"
  "image/draw"
  "image/gif"
  "image/jpeg"
  "image/png"
  "io"
  "os"
  "path/filepath"
  "strings"
  "sync"

  "golang.org/x/image/bmp"
)

// Can be used to identify the imported image format
const (
  TYPE_UNKNOWN = -1
  TYPE_BMP  = iota
  TYPE_GIF
  TYPE_JPG
  TYPE_PNG
  TYPE_DRW
)

// The main pixel buffer container. Pixel data is stored as straight alpha
// RGBA, one byte per component, top-down, with GetStride() bytes per row.
type Bitmap struct {
  img       *image.NRGBA
  format    int         // see TYPE_xxx constants
  m         sync.Mutex  // guards locked and disposed
  locked    bool
  disposed  bool
}


// CreateBitmap returns a new Bitmap of the given size. All pixels are
// initialized to transparent black.
func CreateBitmap(width, height int) (*Bitmap, error) {
  if width < 1 || height < 1 { return nil, fmt.Errorf("Unsupported bitmap size: %dx%d", width, height) }

  b := Bitmap{img: image.NewNRGBA(image.Rect(0, 0, width, height)), format: TYPE_UNKNOWN}
  return &b, nil
}


// CreateBitmapFromImage returns a new Bitmap initialized with the content of
// the given image. The pixel data is copied.
func CreateBitmapFromImage(img image.Image) (*Bitmap, error) {
  if img == nil { return nil, errors.New("No source image specified") }

  bounds := img.Bounds()
  b, err := CreateBitmap(bounds.Dx(), bounds.Dy())
  if err != nil { return nil, err }
  draw.Draw(b.img, b.img.Bounds(), img, bounds.Min, draw.Src)
  return b, nil
}


// Import imports a graphics resource pointed to by the ReadSeeker interface.
//
// The format is detected from the content. Supported formats are BMP, GIF,
// JPG, PNG, DRW and DRWC. Animated sources contribute only their first frame.
func Import(rs io.ReadSeeker) (*Bitmap, error) {
  if rs == nil { return nil, errors.New("No source specified") }

  hdr := make([]byte, 4)
  _, err := rs.Read(hdr)
  if err != nil { return nil, err }
  _, err = rs.Seek(0, io.SeekStart)
  if err != nil { return nil, err }

  var img image.Image
  format := TYPE_UNKNOWN
  if string(hdr) == sigDrw || string(hdr) == sigDrwc {
    img, err = decodeRaw(rs)
    format = TYPE_DRW
  } else if string(hdr[:2]) == "BM" {
    img, err = bmp.Decode(rs)
    format = TYPE_BMP
  } else if string(hdr[:3]) == "GIF" {
    img, err = gif.Decode(rs)
    format = TYPE_GIF
  } else if bytes.Equal(hdr[:2], []byte{0xff, 0xd8}) {
    img, err = jpeg.Decode(rs)
    format = TYPE_JPG
  } else if string(hdr[1:4]) == "PNG" {
    img, err = png.Decode(rs)
    format = TYPE_PNG
  } else {
    // unsupported
    return nil, errors.New("Unrecognized input format")
  }
  if err != nil { return nil, err }

  b, err := CreateBitmapFromImage(img)
  if err != nil { return nil, err }
  b.format = format
  return b, nil
}


// ImportFile imports the graphics file at the given path.
func ImportFile(path string) (*Bitmap, error) {
  fin, err := os.Open(path)
  if err != nil { return nil, err }
  defer fin.Close()
  return Import(fin)
}


// GetWidth returns the bitmap width in pixels.
func (b *Bitmap) GetWidth() int {
  img := b.img
  if img == nil { return 0 }
  return img.Bounds().Dx()
}


// GetHeight returns the bitmap height in pixels.
func (b *Bitmap) GetHeight() int {
  img := b.img
  if img == nil { return 0 }
  return img.Bounds().Dy()
}


// GetStride returns the distance in bytes between vertically adjacent pixels
// of the raw buffer.
func (b *Bitmap) GetStride() int {
  img := b.img
  if img == nil { return 0 }
  return img.Stride
}


// GetImageType returns the format of the imported resource. See TYPE_xxx
// constants. Bitmaps that were not created by Import return TYPE_UNKNOWN.
func (b *Bitmap) GetImageType() int {
  return b.format
}


// GetImage returns the backing image. The image is borrowed: it shares the
// pixel buffer with the Bitmap. Returns nil after disposal.
func (b *Bitmap) GetImage() image.Image {
  if b.IsDisposed() { return nil }
  return b.img
}


// IsDisposed returns whether the pixel buffer has been released.
func (b *Bitmap) IsDisposed() bool {
  b.m.Lock()
  defer b.m.Unlock()
  return b.disposed
}


// Lock acquires exclusive access to the raw pixel buffer and returns it.
// Pixel bytes are stored in R, G, B, A order. The call does not block: it
// fails immediately if the buffer is already locked or disposed.
func (b *Bitmap) Lock() ([]byte, error) {
  b.m.Lock()
  defer b.m.Unlock()
  if b.disposed { return nil, errors.New("Bitmap is disposed") }
  if b.locked { return nil, errors.New("Bitmap is already locked") }

  b.locked = true
  return b.img.Pix, nil
}


// Unlock releases the raw pixel buffer acquired by Lock.
func (b *Bitmap) Unlock() error {
  b.m.Lock()
  defer b.m.Unlock()
  if !b.locked { return errors.New("Bitmap is not locked") }

  b.locked = false
  return nil
}


// Bytes returns a copy of the raw pixel buffer. The buffer lock is acquired
// and released internally, so the call fails while the buffer is locked by
// another holder.
func (b *Bitmap) Bytes() ([]byte, error) {
  buf, err := b.Lock()
  if err != nil { return nil, err }
  defer b.Unlock()

  out := make([]byte, len(buf))
  copy(out, buf)
  return out, nil
}


// Clone returns an independent deep copy of the bitmap. Changes applied to
// either bitmap afterwards do not affect the other.
func (b *Bitmap) Clone() (*Bitmap, error) {
  buf, err := b.Lock()
  if err != nil { return nil, err }
  defer b.Unlock()

  out, err := CreateBitmap(b.GetWidth(), b.GetHeight())
  if err != nil { return nil, err }
  copy(out.img.Pix, buf)
  out.format = b.format
  return out, nil
}


// Dispose releases the pixel buffer. Disposing an already disposed bitmap is
// a no-op. All operations except Dispose and IsDisposed fail afterwards.
func (b *Bitmap) Dispose() {
  b.m.Lock()
  defer b.m.Unlock()
  if b.disposed { return }

  b.disposed = true
  b.locked = false
  b.img = nil
}


// Export encodes the bitmap content in the given format and writes it to w.
// Supported format strings are "png", "bmp", "gif", "jpg", "jpeg", "drw" and
// "drwc". GIF output is color-reduced to a 256 color palette.
func (b *Bitmap) Export(w io.Writer, format string) error {
  if w == nil { return errors.New("No output specified") }
  img := b.GetImage()
  if img == nil { return errors.New("Bitmap is disposed") }

  switch strings.ToLower(format) {
    case "png":
      return png.Encode(w, img)
    case "bmp":
      return bmp.Encode(w, img)
    case "gif":
      imgPal, err := quantizeImage(img, 256, 0.5)
      if err != nil { return err }
      return gif.Encode(w, imgPal, nil)
    case "jpg", "jpeg":
      return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
    case "drw":
      return encodeRaw(w, b, false)
    case "drwc":
      return encodeRaw(w, b, true)
    default:
      return fmt.Errorf("Unsupported output format: %s", format)
  }
}


// ExportFile encodes the bitmap content to the given file. The output format
// is derived from the file extension.
func (b *Bitmap) ExportFile(path string) error {
  ext := strings.ToLower(filepath.Ext(path))
  if len(ext) > 0 { ext = ext[1:] }

  fout, err := os.Create(path)
  if err != nil { return err }
  defer fout.Close()
  return b.Export(fout, ext)
}
