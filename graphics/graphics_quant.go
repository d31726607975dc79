package graphics
/*
Implements color quantization for palette-based output formats.
*/

import (
  "fmt"
  "image"
  "image/color"

  "github.com/InfinityTools/go-imagequant"
  "github.com/InfinityTools/go-logging"
)


// Used internally. Reduces the image to a palette of at most maxColors
// entries and returns the remapped result. dither defines the amount of
// dithering to apply, in range [0.0, 1.0].
func quantizeImage(img image.Image, maxColors int, dither float32) (image.Image, error) {
  att := imagequant.CreateAttributes()
  defer att.Release()

  // Initial quantization settings
  err := att.SetMaxColors(maxColors)
  if err != nil { return nil, err }
  err = att.SetQuality(80, 100)
  if err != nil { return nil, err }
  err = att.SetSpeed(3)
  if err != nil { return nil, err }

  // Quantization may fail if minimum quality is too high. Retrying with
  // updated quality settings if needed.
  var qimg *imagequant.Image = nil
  var res *imagequant.Result = nil
  for {
    // Seeding histogram with a transparent entry preserves fully transparent
    // regions of the source image.
    hist := att.CreateHistogram()
    att.AddColorsToHistogram(hist, []imagequant.HistogramEntry{ imagequant.HistogramEntry{Color: color.RGBA{0, 0, 0, 0}, Count: 256} }, 0.0)

    qimg = att.CreateImage(img, 0.0)
    if qimg == nil { return nil, fmt.Errorf("Unable to process input image") }
    err = att.AddImageToHistogram(hist, qimg)
    if err != nil { return nil, err }

    res, err = att.QuantizeHistogram(hist)
    if qmin, qmax := att.GetQuality(); err == imagequant.ErrQualityTooLow && qmin > 0 {
      if qspeed := att.GetSpeed(); qspeed > 1 {
        att.SetSpeed(qspeed / 2)
      }
      if qmin >= 5 {
        qmin -= 5
      } else {
        qmin = 0
      }
      att.SetQuality(qmin, qmax)
      logging.Warnf("Quantization failed. Trying again with reduced quality: %d\n", qmin)
    } else {
      break
    }
  }
  if err != nil { return nil, err }

  err = att.SetDitheringLevel(res, dither)
  if err != nil { return nil, err }

  return att.WriteRemappedImage(res, qimg)
}
