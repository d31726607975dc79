/*
Package darkroom applies ordered chains of color filters to images.

A Darkroom session owns an immutable original image and a mutable working
copy. Filters are appended through chainable builder calls which validate and
normalize their parameters immediately; pixel data is only touched when the
accumulated sequence is executed over the working copy by Wash or WashAsync.

DarkRoom is released under the BSD 2-clause license. See LICENSE in the project's root folder for more details.
*/
package darkroom

import (
  "image"
  "io"

  "github.com/InfinityTools/go-logging"
  "github.com/visual-discovery/DarkRoom/graphics"
)

// ValidationError indicates a filter parameter outside its normalizable
// domain, an unknown filter or mode name, or a malformed color definition.
// The offending filter is never appended to the sequence.
type ValidationError struct {
  Reason string
}

func (e *ValidationError) Error() string {
  return "validation: " + e.Reason
}

// ResourceError indicates a failure to acquire or release the working image
// buffer.
type ResourceError struct {
  Op  string
  Err error
}

func (e *ResourceError) Error() string {
  if e.Err == nil { return "resource " + e.Op }
  return "resource " + e.Op + ": " + e.Err.Error()
}

func (e *ResourceError) Unwrap() error {
  return e.Err
}

// UseAfterDisposeError indicates an operation on a disposed session.
type UseAfterDisposeError struct {
  Op string
}

func (e *UseAfterDisposeError) Error() string {
  return "session disposed: " + e.Op
}


// Darkroom is the main filter session structure.
type Darkroom struct {
  original    *graphics.Bitmap  // unmodified source image
  working     *graphics.Bitmap  // image all wash operations are applied to
  filters     []Filter          // ordered filter sequence
  resetImage  bool              // whether a wash rebuilds the working image from the original
  disposed    bool
  err         error             // error state of the most recent operation
}


// CreateNew creates a Darkroom session from the given source image. The image
// content is copied twice (original and working image); later changes to img
// do not affect the session.
//
// Use function Error() to check if CreateNew returned successfully.
func CreateNew(img image.Image) *Darkroom {
  d := Darkroom{filters: make([]Filter, 0), resetImage: true}
  if img == nil { d.err = &ValidationError{Reason: "no source image specified"}; return &d }
  orig, err := graphics.CreateBitmapFromImage(img)
  if err != nil { d.err = err; return &d }
  work, err := orig.Clone()
  if err != nil { orig.Dispose(); d.err = err; return &d }
  d.original = orig
  d.working = work
  return &d
}

// Import creates a Darkroom session from the image resource pointed to by the
// ReadSeeker. See graphics.Import for the supported formats.
//
// Use function Error() to check if Import returned successfully.
func Import(rs io.ReadSeeker) *Darkroom {
  logging.Logln("Importing source image")
  d := Darkroom{filters: make([]Filter, 0), resetImage: true}
  orig, err := graphics.Import(rs)
  if err != nil { d.err = err; return &d }
  work, err := orig.Clone()
  if err != nil { orig.Dispose(); d.err = err; return &d }
  d.original = orig
  d.working = work
  logging.Logln("Finished importing source image")
  return &d
}


// Error returns the error state of the most recent operation on the session.
// While an error state is pending, all further builder and wash calls degrade
// to no-ops. Use ClearError() to clear the error state.
func (d *Darkroom) Error() error {
  return d.err
}

// ClearError clears the error state from the last session operation. This
// function must be called for subsequent operations to work correctly.
func (d *Darkroom) ClearError() {
  d.err = nil
}


// GetImage returns the session's working image. The returned Bitmap is live:
// a subsequent wash or reset modifies or replaces it. Returns nil while an
// error state is pending.
func (d *Darkroom) GetImage() *graphics.Bitmap {
  if d.err != nil { return nil }
  return d.working
}

// GetOriginalImage returns an independent copy of the original source image.
// The session's own original is never handed out, so it cannot be modified
// from outside.
func (d *Darkroom) GetOriginalImage() *graphics.Bitmap {
  if d.err != nil { return nil }
  if d.original == nil { return nil }
  ret, err := d.original.Clone()
  if err != nil { return nil }
  return ret
}

// GetWidth returns the width of the session's images in pixels.
func (d *Darkroom) GetWidth() int {
  if d.err != nil || d.original == nil { return 0 }
  return d.original.GetWidth()
}

// GetHeight returns the height of the session's images in pixels.
func (d *Darkroom) GetHeight() int {
  if d.err != nil || d.original == nil { return 0 }
  return d.original.GetHeight()
}

// GetFilterLength returns the number of filters in the current sequence.
func (d *Darkroom) GetFilterLength() int {
  if d.err != nil { return 0 }
  return len(d.filters)
}

// GetFilterName returns the name of the filter at the given sequence
// position, or an empty string if the position is out of range.
func (d *Darkroom) GetFilterName(index int) string {
  if d.err != nil { return "" }
  if index < 0 || index >= len(d.filters) { return "" }
  return d.filters[index].GetName()
}

// GetResetImage returns whether a wash rebuilds the working image from the
// original afterwards. Enabled by default.
func (d *Darkroom) GetResetImage() bool {
  return d.resetImage
}

// SetResetImage sets whether a wash rebuilds the working image from the
// original afterwards. When disabled, the washed image becomes the baseline
// for subsequent wash calls.
func (d *Darkroom) SetResetImage(set bool) {
  d.resetImage = set
}


// Reset clears the filter sequence and replaces the working image by a fresh
// copy of the original image, discarding any previous wash output.
func (d *Darkroom) Reset() *Darkroom {
  if d.err != nil { return d }
  if d.disposed { d.err = &UseAfterDisposeError{Op: "reset"}; return d }
  return d.reset()
}

// Used internally. Rebuilds the working image from the original and clears
// the filter sequence.
func (d *Darkroom) reset() *Darkroom {
  work, err := d.original.Clone()
  if err != nil { d.err = err; return d }
  d.working.Dispose()
  d.working = work
  d.filters = d.filters[:0]
  return d
}

// Dispose releases the image buffers held by the session and clears the
// filter sequence. Any subsequent operation on the session fails with an
// UseAfterDisposeError. Dispose may be called multiple times.
func (d *Darkroom) Dispose() {
  if d.disposed { return }
  d.disposed = true
  if d.working != nil { d.working.Dispose() }
  if d.original != nil { d.original.Dispose() }
  d.filters = nil
}
