package filter
// Maps quantized brightness onto a single tint color.

import (
  "github.com/kako-jun/oniazusa/preset"
)

// TintMap converts the brightness map into a three channel buffer by scaling the tint
// color with each brightness value. Brightness 0 maps to pure black, brightness 1 maps
// to the unmodified tint color. Resulting samples are in [0, 255].
func TintMap(gray *GrayMap, tint preset.Tint) *Buffer {
  w, h := gray.Width(), gray.Height()
  buf := NewBuffer(w, h)
  tr, tg, tb := float32(tint.R), float32(tint.G), float32(tint.B)
  for y := 0; y < h; y++ {
    for x := 0; x < w; x++ {
      v := clampf(gray.At(x, y), 0.0, 1.0)
      buf.Set(x, y, v * tr, v * tg, v * tb)
    }
  }
  return buf
}
