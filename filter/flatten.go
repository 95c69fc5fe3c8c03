package filter
// Edge-preserving smoothing that removes photographic texture while keeping large shapes intact.

import (
  "math"
)

// Smoothing parameters, tuned for a cel-shaded look. Repeated passes flatten gradients
// into larger uniform regions without washing out silhouette edges.
const (
  flattenPasses     = 3
  flattenRadius     = 2
  flattenSigmaSpace = 2.0
  flattenSigmaRange = 0.1   // range sigma on color distance, normalized to [0, 1]
)

// Flatten applies several passes of a spatial and range weighted smoothing filter to the
// buffer and returns the result as a new buffer. Neighbors of similar color are averaged,
// neighbors across a strong color discontinuity contribute next to nothing.
// Handles any buffer size of at least 1x1 pixel.
func Flatten(buf *Buffer) *Buffer {
  spatial := flattenSpatialWeights()
  bufOut := buf
  for pass := 0; pass < flattenPasses; pass++ {
    bufOut = flattenPass(bufOut, spatial)
  }
  return bufOut
}


// Used internally. Precomputes the spatial weight kernel for the smoothing window.
func flattenSpatialWeights() []float64 {
  size := flattenRadius * 2 + 1
  retVal := make([]float64, size * size)
  idx := 0
  for dy := -flattenRadius; dy <= flattenRadius; dy++ {
    for dx := -flattenRadius; dx <= flattenRadius; dx++ {
      d2 := float64(dx * dx + dy * dy)
      retVal[idx] = math.Exp(-d2 / (2.0 * flattenSigmaSpace * flattenSigmaSpace))
      idx++
    }
  }
  return retVal
}

// Used internally. Applies a single smoothing pass.
func flattenPass(src *Buffer, spatial []float64) *Buffer {
  w, h := src.Width(), src.Height()
  dst := NewBuffer(w, h)
  size := flattenRadius * 2 + 1

  for y := 0; y < h; y++ {
    for x := 0; x < w; x++ {
      cr, cg, cb := src.At(x, y)
      var sumR, sumG, sumB, sumW float64
      for dy := -flattenRadius; dy <= flattenRadius; dy++ {
        ny := y + dy
        if ny < 0 || ny >= h { continue }  // window clamped to valid bounds
        for dx := -flattenRadius; dx <= flattenRadius; dx++ {
          nx := x + dx
          if nx < 0 || nx >= w { continue }
          nr, ng, nb := src.At(nx, ny)
          // color distance in [0, sqrt(3)], normalized per channel
          dr := float64(nr - cr) / 255.0
          dg := float64(ng - cg) / 255.0
          db := float64(nb - cb) / 255.0
          d2 := dr*dr + dg*dg + db*db
          wgt := spatial[(dy + flattenRadius) * size + dx + flattenRadius] *
                 math.Exp(-d2 / (2.0 * flattenSigmaRange * flattenSigmaRange))
          sumR += float64(nr) * wgt
          sumG += float64(ng) * wgt
          sumB += float64(nb) * wgt
          sumW += wgt
        }
      }
      // center pixel always contributes, sumW cannot be zero
      dst.Set(x, y, float32(sumR / sumW), float32(sumG / sumW), float32(sumB / sumW))
    }
  }

  return dst
}
