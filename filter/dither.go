package filter
// Ordered dithering through a periodic 8x8 threshold pattern.

import (
  "fmt"
  "math"
)

// 8x8 Bayer index matrix. Thresholds are derived by normalizing the indices to [0, 1).
// The pattern is tiled periodically across the brightness map.
var bayerPattern = [8][8]int{
  { 0, 32,  8, 40,  2, 34, 10, 42},
  {48, 16, 56, 24, 50, 18, 58, 26},
  {12, 44,  4, 36, 14, 46,  6, 38},
  {60, 28, 52, 20, 62, 30, 54, 22},
  { 3, 35, 11, 43,  1, 33,  9, 41},
  {51, 19, 59, 27, 49, 17, 57, 25},
  {15, 47,  7, 39, 13, 45,  5, 37},
  {63, 31, 55, 23, 61, 29, 53, 21},
}

// Brightness factor of the dither strength ramp. Strength is 1 in the shadows and
// reaches 0 at brightness 5/6, so near-white regions render as smooth gradients
// while darker tones show the full pattern texture.
const ditherStrengthRamp = 1.2


// BayerThreshold returns the normalized threshold in [0, 1) of the tiled pattern at the
// given position.
func BayerThreshold(x, y int) float32 {
  return (float32(bayerPattern[y & 7][x & 7]) + 0.5) / 64.0
}

// DitherStrength returns the pattern intensity in [0, 1] for the given brightness.
// Values above the highlight crossover clamp to 0.
func DitherStrength(brightness float32) float32 {
  return clampf(1.0 - brightness * ditherStrengthRamp, 0.0, 1.0)
}

// Dither quantizes the brightness map to the given number of evenly spaced levels,
// rounding each value through the tiled threshold pattern. The result is a new map with
// values in [0, 1]. levels below 2 produce no visible steps and yield a ConfigError.
//
// Quantization truncates with floor rather than rounding to nearest. This biases each
// step toward its darker side and is part of the intended tone curve.
func Dither(gray *GrayMap, levels int) (*GrayMap, error) {
  if levels < 2 { return nil, &ConfigError{fmt.Sprintf("levels must be 2 or greater: %d", levels)} }

  w, h := gray.Width(), gray.Height()
  n := float32(levels)
  out := NewGrayMap(w, h)
  for y := 0; y < h; y++ {
    for x := 0; x < w; x++ {
      b := gray.At(x, y)
      s := DitherStrength(b)
      d := b + (BayerThreshold(x, y) - 0.5) / n * s
      d = clampf(d, 0.0, 1.0)
      q := float32(math.Floor(float64(d * n))) / n
      v := b * (1.0 - s) + q * s
      out.Set(x, y, clampf(v, 0.0, 1.0))
    }
  }

  return out, nil
}
