package graphics
/*
Implements the DRW raw bitmap format: a thin header in front of the
uncompressed pixel buffer, plus the zlib-compressed DRWC variant.

DRW V1 layout:
  0x00  signature "DRW "
  0x04  version "V1  "
  0x08  width in pixels (uint32)
  0x0c  height in pixels (uint32)
  0x10  pixel data, 4 bytes per pixel in R, G, B, A order

DRWC V1 layout:
  0x00  signature "DRWC"
  0x04  version "V1  "
  0x08  uncompressed size (uint32)
  0x0c  zlib-compressed DRW structure
*/

import (
  "errors"
  "fmt"
  "image"
  "io"

  "github.com/InfinityTools/go-ietools/buffers"
)

const (
  sigDrw  = "DRW "
  sigDrwc = "DRWC"
  verV1   = "V1  "
)


// Used internally. Parses a byte stream into an image. Supports both DRW and
// DRWC signatures.
func decodeRaw(r io.Reader) (image.Image, error) {
  buf := buffers.Load(r)
  if buf.Error() != nil { return nil, buf.Error() }
  if buf.BufferLength() < 0x10 { return nil, errors.New("DRW structure size too small") }

  s := buf.GetString(0, 8, false)
  if buf.Error() != nil { return nil, buf.Error() }

  // decompress if needed
  if s == sigDrwc + verV1 {
    uncSize := int(buf.GetInt32(8))
    if buf.DecompressReplace(12, buf.BufferLength() - 12) != uncSize { return nil, errors.New("DRWC buffer size mismatch") }
    if buf.Error() != nil { return nil, buf.Error() }
    buf.DeleteBytes(0, 12)
    s = buf.GetString(0, 8, false)
  }

  // consistency checks
  if s != sigDrw + verV1 { return nil, errors.New("Invalid DRW signature") }
  width := int(buf.GetUint32(0x08))
  height := int(buf.GetUint32(0x0c))
  if buf.Error() != nil { return nil, buf.Error() }
  if width < 1 || height < 1 { return nil, fmt.Errorf("Unsupported bitmap size: %dx%d", width, height) }
  size := width * height * 4
  if buf.BufferLength() - 0x10 < size { return nil, errors.New("Incomplete DRW pixel data") }

  data := buf.GetBuffer(0x10, size)
  if buf.Error() != nil { return nil, buf.Error() }

  img := image.NewNRGBA(image.Rect(0, 0, width, height))
  copy(img.Pix, data)
  return img, nil
}


// Used internally. Encodes the bitmap content into the DRW format and writes
// it to w. Setting compress selects the zlib-compressed DRWC variant.
func encodeRaw(w io.Writer, b *Bitmap, compress bool) error {
  data, err := b.Bytes()
  if err != nil { return err }
  width, height := b.GetWidth(), b.GetHeight()

  out := buffers.Create()
  if out.Error() != nil { return out.Error() }
  out.InsertBytes(0, 0x10 + len(data))
  if out.Error() != nil { return out.Error() }
  out.PutString(0x00, 4, sigDrw)
  if out.Error() != nil { return out.Error() }
  out.PutString(0x04, 4, verV1)
  if out.Error() != nil { return out.Error() }
  out.PutUint32(0x08, uint32(width))
  if out.Error() != nil { return out.Error() }
  out.PutUint32(0x0c, uint32(height))
  if out.Error() != nil { return out.Error() }
  out.PutBuffer(0x10, data)
  if out.Error() != nil { return out.Error() }

  if compress {
    uncSize := out.BufferLength()
    out.CompressReplace(0, uncSize, -1)
    if out.Error() != nil { return out.Error() }
    out.InsertBytes(0, 12)
    if out.Error() != nil { return out.Error() }
    out.PutString(0, 4, sigDrwc)
    if out.Error() != nil { return out.Error() }
    out.PutString(4, 4, verV1)
    if out.Error() != nil { return out.Error() }
    out.PutUint32(8, uint32(uncSize))
    if out.Error() != nil { return out.Error() }
  }

  _, err = w.Write(out.Bytes())
  return err
}
