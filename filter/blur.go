package filter
// Small separable Gaussian blur shared by the outline and grading stages.

import (
  "math"
)

// Sigma of the 3x3 blur kernel.
const blurSigma = 0.8

// Normalized 1D kernel weights {center, neighbor}, computed once at startup.
var blurKernel = makeBlurKernel()

// Used internally. Derives the 3-tap kernel weights from blurSigma.
func makeBlurKernel() [2]float64 {
  k1 := math.Exp(-1.0 / (2.0 * blurSigma * blurSigma))
  sum := 1.0 + 2.0 * k1
  return [2]float64{1.0 / sum, k1 / sum}
}


// BlurGray applies the 3x3 Gaussian blur to the brightness map and returns a new map.
// Border pixels reuse the nearest valid neighbor.
func BlurGray(gray *GrayMap) *GrayMap {
  w, h := gray.Width(), gray.Height()
  tmp := NewGrayMap(w, h)
  out := NewGrayMap(w, h)

  // horizontal pass
  for y := 0; y < h; y++ {
    for x := 0; x < w; x++ {
      l, r := x - 1, x + 1
      if l < 0 { l = 0 }
      if r >= w { r = w - 1 }
      v := float64(gray.At(x, y)) * blurKernel[0] +
           (float64(gray.At(l, y)) + float64(gray.At(r, y))) * blurKernel[1]
      tmp.Set(x, y, float32(v))
    }
  }
  // vertical pass
  for y := 0; y < h; y++ {
    t, b := y - 1, y + 1
    if t < 0 { t = 0 }
    if b >= h { b = h - 1 }
    for x := 0; x < w; x++ {
      v := float64(tmp.At(x, y)) * blurKernel[0] +
           (float64(tmp.At(x, t)) + float64(tmp.At(x, b))) * blurKernel[1]
      out.Set(x, y, float32(v))
    }
  }

  return out
}

// BlurBuffer applies the 3x3 Gaussian blur to every channel of the buffer and returns a
// new buffer. Border pixels reuse the nearest valid neighbor.
func BlurBuffer(buf *Buffer) *Buffer {
  w, h := buf.Width(), buf.Height()
  tmp := NewBuffer(w, h)
  out := NewBuffer(w, h)

  // horizontal pass
  for y := 0; y < h; y++ {
    for x := 0; x < w; x++ {
      l, r := x - 1, x + 1
      if l < 0 { l = 0 }
      if r >= w { r = w - 1 }
      cr, cg, cb := buf.At(x, y)
      lr, lg, lb := buf.At(l, y)
      rr, rg, rb := buf.At(r, y)
      tmp.Set(x, y,
              float32(float64(cr) * blurKernel[0] + (float64(lr) + float64(rr)) * blurKernel[1]),
              float32(float64(cg) * blurKernel[0] + (float64(lg) + float64(rg)) * blurKernel[1]),
              float32(float64(cb) * blurKernel[0] + (float64(lb) + float64(rb)) * blurKernel[1]))
    }
  }
  // vertical pass
  for y := 0; y < h; y++ {
    t, b := y - 1, y + 1
    if t < 0 { t = 0 }
    if b >= h { b = h - 1 }
    for x := 0; x < w; x++ {
      cr, cg, cb := tmp.At(x, y)
      tr, tg, tb := tmp.At(x, t)
      br, bg, bb := tmp.At(x, b)
      out.Set(x, y,
              float32(float64(cr) * blurKernel[0] + (float64(tr) + float64(br)) * blurKernel[1]),
              float32(float64(cg) * blurKernel[0] + (float64(tg) + float64(bg)) * blurKernel[1]),
              float32(float64(cb) * blurKernel[0] + (float64(tb) + float64(bb)) * blurKernel[1]))
    }
  }

  return out
}
