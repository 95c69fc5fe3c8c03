package filter
// Resampling between the full resolution image and the coarse halftone grid.

import (
  "fmt"
)

// Downsample reduces the buffer to round(w*scale) x round(h*scale) pixels using area
// averaging, which keeps aliasing low when shrinking. Returns a ConfigError if scale is
// outside (0, 1] or if a target dimension would collapse to zero pixels.
func Downsample(buf *Buffer, scale float64) (*Buffer, error) {
  if scale <= 0.0 || scale > 1.0 {
    return nil, &ConfigError{fmt.Sprintf("scale not in range (0.0, 1.0]: %v", scale)}
  }
  sw, sh := buf.Width(), buf.Height()
  dw := int(float64(sw) * scale + 0.5)
  dh := int(float64(sh) * scale + 0.5)
  if dw < 1 || dh < 1 {
    return nil, &ConfigError{fmt.Sprintf("scale %v shrinks %dx%d to a zero-sized image", scale, sw, sh)}
  }
  if dw == sw && dh == sh { return buf.Clone(), nil }

  dst := NewBuffer(dw, dh)
  xratio := float64(sw) / float64(dw)
  yratio := float64(sh) / float64(dh)
  for dy := 0; dy < dh; dy++ {
    sy0 := float64(dy) * yratio
    sy1 := float64(dy + 1) * yratio
    iy0, iy1 := int(sy0), coveredMax(sy1, sh)
    for dx := 0; dx < dw; dx++ {
      sx0 := float64(dx) * xratio
      sx1 := float64(dx + 1) * xratio
      ix0, ix1 := int(sx0), coveredMax(sx1, sw)

      // accumulate coverage-weighted samples of the source box
      var sumR, sumG, sumB, area float64
      for iy := iy0; iy <= iy1; iy++ {
        wy := boxOverlap(sy0, sy1, iy)
        if wy <= 0.0 { continue }
        for ix := ix0; ix <= ix1; ix++ {
          wx := boxOverlap(sx0, sx1, ix)
          if wx <= 0.0 { continue }
          r, g, b := buf.At(ix, iy)
          wgt := wx * wy
          sumR += float64(r) * wgt
          sumG += float64(g) * wgt
          sumB += float64(b) * wgt
          area += wgt
        }
      }
      dst.Set(dx, dy, float32(sumR / area), float32(sumG / area), float32(sumB / area))
    }
  }

  return dst, nil
}

// Upsample resizes the buffer to dw x dh pixels with nearest neighbor interpolation.
// No smoothing takes place, so halftone dots stay crisp square blocks.
func Upsample(buf *Buffer, dw, dh int) *Buffer {
  if dw < 1 { dw = 1 }
  if dh < 1 { dh = 1 }
  sw, sh := buf.Width(), buf.Height()
  dst := NewBuffer(dw, dh)
  for dy := 0; dy < dh; dy++ {
    sy := dy * sh / dh
    for dx := 0; dx < dw; dx++ {
      sx := dx * sw / dw
      r, g, b := buf.At(sx, sy)
      dst.Set(dx, dy, r, g, b)
    }
  }
  return dst
}


// Used internally. Returns the last source index touched by a box ending at edge, clamped to size.
func coveredMax(edge float64, size int) int {
  idx := int(edge)
  if float64(idx) == edge { idx-- }  // exact boundary belongs to the previous cell
  if idx >= size { idx = size - 1 }
  return idx
}

// Used internally. Returns the overlap of source cell idx with the box [lo, hi].
func boxOverlap(lo, hi float64, idx int) float64 {
  cellLo, cellHi := float64(idx), float64(idx + 1)
  if cellLo < lo { cellLo = lo }
  if cellHi > hi { cellHi = hi }
  return cellHi - cellLo
}
