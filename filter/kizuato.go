package filter
// Moody grading in the style of old horror visual novels: washed out colors, a dark
// blue-red cast in the shadows and a vignette towards the corners.

import (
  "math"
)

// Grading parameters.
const (
  kizuatoSaturation   = 0.35   // remaining fraction of color saturation
  kizuatoBrightness   = 0.65   // remaining fraction of brightness
  kizuatoShadowLimit  = 100.0  // channel mean below which the shadow cast applies
  kizuatoShadowR      = 15.0
  kizuatoShadowG      = 5.0
  kizuatoShadowB      = 30.0
  kizuatoVignette     = 0.3    // brightness removed at the image corners
)

// Kizuato applies the moody grading to the buffer and returns a new buffer of identical
// dimensions. Colors are desaturated and darkened, shadow regions receive a cold cast,
// and after a light blur the corners fall off into a vignette.
func Kizuato(buf *Buffer) *Buffer {
  w, h := buf.Width(), buf.Height()
  out := NewBuffer(w, h)

  for y := 0; y < h; y++ {
    for x := 0; x < w; x++ {
      r, g, b := buf.At(x, y)
      hue, sat, lum := rgbToHSL(float64(r) / 255.0, float64(g) / 255.0, float64(b) / 255.0)
      fr, fg, fb := hslToRGB(hue, sat * kizuatoSaturation, lum)
      fr *= 255.0 * kizuatoBrightness
      fg *= 255.0 * kizuatoBrightness
      fb *= 255.0 * kizuatoBrightness
      if (fr + fg + fb) / 3.0 < kizuatoShadowLimit {
        fr += kizuatoShadowR
        fg += kizuatoShadowG
        fb += kizuatoShadowB
      }
      out.Set(x, y, clampf(float32(fr), 0.0, 255.0), clampf(float32(fg), 0.0, 255.0), clampf(float32(fb), 0.0, 255.0))
    }
  }

  return vignette(BlurBuffer(out))
}


// Used internally. Darkens the buffer towards its corners. The falloff is quadratic in
// the distance from the image center.
func vignette(buf *Buffer) *Buffer {
  w, h := buf.Width(), buf.Height()
  cx, cy := float64(w - 1) / 2.0, float64(h - 1) / 2.0
  dmax := math.Sqrt(cx*cx + cy*cy)
  if dmax == 0.0 { dmax = 1.0 }

  for y := 0; y < h; y++ {
    for x := 0; x < w; x++ {
      dx, dy := float64(x) - cx, float64(y) - cy
      d := math.Sqrt(dx*dx + dy*dy) / dmax
      f := float32(1.0 - kizuatoVignette * d * d)
      r, g, b := buf.At(x, y)
      buf.Set(x, y, r * f, g * f, b * f)
    }
  }

  return buf
}

// Used internally. Converts normalized RGB values into hue, saturation and lightness.
// All values are in range [0, 1].
func rgbToHSL(fr, fg, fb float64) (h, s, l float64) {
  cmin := fr; if fg < cmin { cmin = fg }; if fb < cmin { cmin = fb }
  cmax := fr; if fg > cmax { cmax = fg }; if fb > cmax { cmax = fb }
  csum := cmax + cmin
  cdelta := cmax - cmin
  cdelta2 := cdelta / 2.0

  l = csum / 2.0

  if cdelta != 0.0 {
    if l < 0.5 {
      s = cdelta / csum
    } else {
      s = cdelta / (2.0 - csum)
    }

    dr := ((cmax - fr) / 6.0 + cdelta2) / cdelta
    dg := ((cmax - fg) / 6.0 + cdelta2) / cdelta
    db := ((cmax - fb) / 6.0 + cdelta2) / cdelta

    switch cmax {
      case fr:  h = db - dg
      case fg:  h = 1.0/3.0 + dr - db
      default:  h = 2.0/3.0 + dg - dr
    }

    if h < 0.0 { h += 1.0 }
    if h > 1.0 { h -= 1.0 }
  }
  return
}

// Used internally. Converts hue, saturation and lightness back into normalized RGB values.
// All values are in range [0, 1].
func hslToRGB(h, s, l float64) (r, g, b float64) {
  if s == 0.0 {
    r, g, b = l, l, l
  } else {
    var f2 float64
    if l < 0.5 {
      f2 = l * (1.0 + s)
    } else {
      f2 = (l + s) - (s * l)
    }
    f1 := 2.0 * l - f2
    f21sub := f2 - f1

    // red
    t := h + 1.0/3.0
    if t < 0.0 { t += 1.0 }
    if t > 1.0 { t -= 1.0 }
    switch {
      case 6.0 * t < 1.0: r = f1 + f21sub * 6.0 * t
      case 2.0 * t < 1.0: r = f2
      case 3.0 * t < 2.0: r = f1 + f21sub * (2.0/3.0 - t) * 6.0
      default:            r = f1
    }
    if r < 0.0 { r = 0.0 }
    if r > 1.0 { r = 1.0 }

    // green
    t = h
    switch {
      case 6.0 * t < 1.0: g = f1 + f21sub * 6.0 * t
      case 2.0 * t < 1.0: g = f2
      case 3.0 * t < 2.0: g = f1 + f21sub * (2.0/3.0 - t) * 6.0
      default:            g = f1
    }
    if g < 0.0 { g = 0.0 }
    if g > 1.0 { g = 1.0 }

    // blue
    t = h - 1.0/3.0
    if t < 0.0 { t += 1.0 }
    if t > 1.0 { t -= 1.0 }
    switch {
      case 6.0 * t < 1.0: b = f1 + f21sub * 6.0 * t
      case 2.0 * t < 1.0: b = f2
      case 3.0 * t < 2.0: b = f1 + f21sub * (2.0/3.0 - t) * 6.0
      default:            b = f1
    }
    if b < 0.0 { b = 0.0 }
    if b > 1.0 { b = 1.0 }
  }
  return
}
