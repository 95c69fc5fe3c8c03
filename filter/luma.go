package filter
// Converts color buffers into single channel brightness maps.

// Luminance weights after Rec. 601. The weights sum to 1, so a buffer with samples in
// [0, 255] always maps into [0, 1].
const (
  lumaWeightR = 0.299
  lumaWeightG = 0.587
  lumaWeightB = 0.114
)

// Luminance converts the RGB buffer into a brightness map with values in [0, 1].
func Luminance(buf *Buffer) *GrayMap {
  w, h := buf.Width(), buf.Height()
  gray := NewGrayMap(w, h)
  for y := 0; y < h; y++ {
    for x := 0; x < w; x++ {
      r, g, b := buf.At(x, y)
      v := (lumaWeightR * r + lumaWeightG * g + lumaWeightB * b) / 255.0
      gray.Set(x, y, clampf(v, 0.0, 1.0))
    }
  }
  return gray
}
