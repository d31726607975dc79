package darkroom
/*
Implements the wash operation: executes the accumulated filter sequence over
every pixel of the session's working image.
*/

import (
  "fmt"
  "runtime"
  "sync"

  "github.com/InfinityTools/go-logging"
  "github.com/pbenner/threadpool"
  "github.com/visual-discovery/DarkRoom/graphics"
)

// WashResult transports the outcome of an asynchronous wash operation.
type WashResult struct {
  Image *graphics.Bitmap
  Err   error
}


// Wash applies the accumulated filter sequence to every pixel of the working
// image, strictly in append order, and returns the washed image.
//
// The call consumes the filter sequence: it is empty when Wash returns. If
// the resetImage option is enabled (default), the working image is rebuilt
// from the original afterwards and the returned Bitmap is handed over to the
// caller. Otherwise the washed image stays attached to the session as the
// baseline for subsequent wash calls and is returned live.
//
// The working image buffer is locked exclusively for the duration of the
// call and released on every return path. A second wash started while one is
// in flight fails with a ResourceError and leaves the first wash untouched.
// A failing wash leaves the working image bytes unmodified.
func (d *Darkroom) Wash() (*graphics.Bitmap, error) {
  if d.err != nil { return nil, d.err }
  if d.disposed { d.err = &UseAfterDisposeError{Op: "wash"}; return nil, d.err }

  // The snapshot freezes the sequence for this wash. Builder calls issued
  // on the session afterwards do not affect the running wash.
  snapshot := make([]Filter, len(d.filters))
  copy(snapshot, d.filters)

  if err := washImage(d.working, snapshot); err != nil { d.err = err; return nil, err }

  // The sequence has been consumed.
  d.filters = d.filters[:0]

  out := d.working
  if d.resetImage {
    work, err := d.original.Clone()
    if err != nil { d.err = err; return nil, err }
    d.working = work
  }
  return out, nil
}

// WashAsync runs the same operation as Wash on a background goroutine. The
// returned channel delivers exactly one WashResult once the wash has
// completed; no partial result is observable earlier. The outcome is
// byte-identical to a synchronous wash over the same input.
//
// The session must not be modified until the result has been received.
func (d *Darkroom) WashAsync() <-chan WashResult {
  ch := make(chan WashResult, 1)
  go func() {
    img, err := d.Wash()
    ch <- WashResult{Image: img, Err: err}
  }()
  return ch
}


// Used internally. Applies the filter snapshot to every pixel of the bitmap.
// The pixel buffer is locked for the duration of the call and released on
// every return path. On failure the buffer content is rolled back to its
// previous state.
func washImage(bmp *graphics.Bitmap, filters []Filter) (err error) {
  buf, err := bmp.Lock()
  if err != nil { return &ResourceError{Op: "acquire buffer", Err: err} }
  defer func() {
    if err2 := bmp.Unlock(); err2 != nil && err == nil {
      err = &ResourceError{Op: "release buffer", Err: err2}
    }
  }()

  width, height, stride := bmp.GetWidth(), bmp.GetHeight(), bmp.GetStride()
  backup := make([]byte, len(buf))
  copy(backup, buf)

  msg := fmt.Sprintf("Washing image with %d filters", len(filters))
  logging.Log(msg)
  if GetMultiThreaded() && height > 1 {
    // Multi-threaded operation: rows are distributed across the pool. Each
    // row's bytes are contiguous and independent of all other rows.
    numThreads := runtime.NumCPU()
    pool := threadpool.New(numThreads, height)
    g := pool.NewJobGroup()
    var m sync.Mutex
    progressIdx := 0
    for y := 0; y < height; y++ {
      row := y
      err = pool.AddJob(g, func(pool threadpool.ThreadPool, erf func() error) error {
        if erf() != nil { return nil }
        washRow(buf[row * stride : row * stride + width * 4], filters)
        func() {
          m.Lock()
          defer m.Unlock()
          logging.LogProgressDot(progressIdx, height, 79 - len(msg))
          progressIdx++
        }()
        return nil
      })
      if err != nil { break }
    }
    if err2 := pool.Wait(g); err2 != nil && err == nil { err = err2 }
    pool.Stop()
    if err != nil {
      logging.OverridePrefix(false, false, false).Logln("")
      copy(buf, backup)
      return err
    }
  } else {
    // Single-threaded operation
    for y := 0; y < height; y++ {
      washRow(buf[y * stride : y * stride + width * 4], filters)
      logging.LogProgressDot(y, height, 79 - len(msg))
    }
  }
  logging.OverridePrefix(false, false, false).Logln("")

  return nil
}

// Used internally. Folds the filter snapshot into every pixel of one row.
// Each pixel passes through every filter exactly once, in sequence order.
func washRow(row []byte, filters []Filter) {
  for ofs := 0; ofs + 4 <= len(row); ofs += 4 {
    col := PixelColor{R: row[ofs], G: row[ofs+1], B: row[ofs+2], A: row[ofs+3]}
    for i := range filters {
      col = applyFilter(&filters[i], col)
    }
    row[ofs], row[ofs+1], row[ofs+2], row[ofs+3] = col.R, col.G, col.B, col.A
  }
}
