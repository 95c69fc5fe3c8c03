package filter
// Detects strong luminance edges and darkens them into soft ink style outlines.

import (
  "math"
)

// Edge detection and compositing parameters.
const (
  outlineLowThreshold  = 0.08  // gradient magnitude that keeps a weak edge alive
  outlineHighThreshold = 0.20  // gradient magnitude that seeds an edge
  outlineOpacity       = 0.5   // fraction of brightness removed under an edge
)

// Outline produces an ink style outline overlay for the buffer and returns a new,
// composited buffer of identical dimensions. Edges are found on a slightly blurred
// brightness map with a Sobel operator and low/high hysteresis thresholds. Pixels under
// an edge retain half of their original value instead of turning solid black, and a
// final light blur blends the lines into their surroundings.
func Outline(buf *Buffer) *Buffer {
  gray := BlurGray(Luminance(buf))
  mask := edgeMask(gradientMagnitude(gray))

  out := buf.Clone()
  w, h := out.Width(), out.Height()
  for y := 0; y < h; y++ {
    for x := 0; x < w; x++ {
      if !mask[y * w + x] { continue }
      r, g, b := out.At(x, y)
      out.Set(x, y, r * (1.0 - outlineOpacity), g * (1.0 - outlineOpacity), b * (1.0 - outlineOpacity))
    }
  }

  return BlurBuffer(out)
}


// Used internally. Computes the Sobel gradient magnitude of the brightness map.
// Border pixels reuse the nearest valid neighbor.
func gradientMagnitude(gray *GrayMap) *GrayMap {
  w, h := gray.Width(), gray.Height()
  out := NewGrayMap(w, h)

  at := func(x, y int) float64 {
    if x < 0 { x = 0 }
    if x >= w { x = w - 1 }
    if y < 0 { y = 0 }
    if y >= h { y = h - 1 }
    return float64(gray.At(x, y))
  }

  for y := 0; y < h; y++ {
    for x := 0; x < w; x++ {
      gx := (at(x+1, y-1) + 2.0*at(x+1, y) + at(x+1, y+1) -
             at(x-1, y-1) - 2.0*at(x-1, y) - at(x-1, y+1)) / 4.0
      gy := (at(x-1, y+1) + 2.0*at(x, y+1) + at(x+1, y+1) -
             at(x-1, y-1) - 2.0*at(x, y-1) - at(x+1, y-1)) / 4.0
      out.Set(x, y, float32(math.Sqrt(gx*gx + gy*gy)))
    }
  }

  return out
}

// Used internally. Derives a binary edge mask from the gradient magnitude with hysteresis:
// magnitudes above the high threshold seed edges, magnitudes above the low threshold join
// an edge if they touch one through their 8-neighborhood.
func edgeMask(grad *GrayMap) []bool {
  w, h := grad.Width(), grad.Height()
  mask := make([]bool, w * h)
  queue := make([]int, 0, w + h)

  for y := 0; y < h; y++ {
    for x := 0; x < w; x++ {
      if grad.At(x, y) >= outlineHighThreshold {
        idx := y * w + x
        mask[idx] = true
        queue = append(queue, idx)
      }
    }
  }

  // grow seeds into connected weak edges
  for len(queue) > 0 {
    idx := queue[len(queue)-1]
    queue = queue[:len(queue)-1]
    x, y := idx % w, idx / w
    for dy := -1; dy <= 1; dy++ {
      ny := y + dy
      if ny < 0 || ny >= h { continue }
      for dx := -1; dx <= 1; dx++ {
        nx := x + dx
        if nx < 0 || nx >= w { continue }
        nidx := ny * w + nx
        if mask[nidx] { continue }
        if grad.At(nx, ny) >= outlineLowThreshold {
          mask[nidx] = true
          queue = append(queue, nidx)
        }
      }
    }
  }

  return mask
}
