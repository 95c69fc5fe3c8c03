package filter
// Provides the floating point image buffer types shared by all filter stages.

import (
  "fmt"
  "image"
  "image/draw"
)

// InputError indicates an unusable input image: missing, zero-dimension or undecodable.
type InputError struct {
  Reason  string
}

func (e *InputError) Error() string {
  return "Input error: " + e.Reason
}

// ConfigError indicates an invalid conversion setting.
type ConfigError struct {
  Reason  string
}

func (e *ConfigError) Error() string {
  return "Configuration error: " + e.Reason
}


// Buffer stores a dense grid of RGB samples as unclamped float32 values.
// Samples are in range [0, 255] at the I/O boundaries, but may leave that range while
// intermediate filter arithmetic is in progress.
type Buffer struct {
  w, h  int
  pix   []float32   // 3 samples per pixel, row-major
}

// NewBuffer creates a zero-initialized buffer of the given dimensions.
func NewBuffer(w, h int) *Buffer {
  if w < 1 { w = 1 }
  if h < 1 { h = 1 }
  return &Buffer{w: w, h: h, pix: make([]float32, w*h*3)}
}

// FromImage converts the given image into a float RGB buffer. Alpha is composited against black.
// Returns an InputError if the image is nil or has no pixels.
func FromImage(img image.Image) (*Buffer, error) {
  if img == nil { return nil, &InputError{"no image data"} }
  b := img.Bounds()
  if b.Dx() < 1 || b.Dy() < 1 { return nil, &InputError{fmt.Sprintf("invalid image size: %dx%d", b.Dx(), b.Dy())} }

  imgRGBA, ok := img.(*image.RGBA)
  if !ok {
    imgRGBA = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
    draw.Draw(imgRGBA, imgRGBA.Bounds(), img, b.Min, draw.Src)
  }

  buf := NewBuffer(b.Dx(), b.Dy())
  x0, y0 := imgRGBA.Bounds().Min.X, imgRGBA.Bounds().Min.Y
  ofs := 0
  for y := 0; y < buf.h; y++ {
    sofs := (y0 + y) * imgRGBA.Stride + x0 * 4
    for x := 0; x < buf.w; x++ {
      buf.pix[ofs] = float32(imgRGBA.Pix[sofs])
      buf.pix[ofs+1] = float32(imgRGBA.Pix[sofs+1])
      buf.pix[ofs+2] = float32(imgRGBA.Pix[sofs+2])
      ofs += 3
      sofs += 4
    }
  }
  return buf, nil
}

// Width returns the width of the buffer in pixels.
func (buf *Buffer) Width() int { return buf.w }

// Height returns the height of the buffer in pixels.
func (buf *Buffer) Height() int { return buf.h }

// At returns the RGB sample triple at the given position.
func (buf *Buffer) At(x, y int) (r, g, b float32) {
  ofs := (y * buf.w + x) * 3
  return buf.pix[ofs], buf.pix[ofs+1], buf.pix[ofs+2]
}

// Set updates the RGB sample triple at the given position.
func (buf *Buffer) Set(x, y int, r, g, b float32) {
  ofs := (y * buf.w + x) * 3
  buf.pix[ofs] = r
  buf.pix[ofs+1] = g
  buf.pix[ofs+2] = b
}

// Clone returns a deep copy of the buffer.
func (buf *Buffer) Clone() *Buffer {
  bufOut := NewBuffer(buf.w, buf.h)
  copy(bufOut.pix, buf.pix)
  return bufOut
}

// ToRGBA converts the buffer into a fully opaque 8 bit RGBA image. Samples are clamped
// to [0, 255] and rounded.
func (buf *Buffer) ToRGBA() *image.RGBA {
  imgOut := image.NewRGBA(image.Rect(0, 0, buf.w, buf.h))
  ofs := 0
  for y := 0; y < buf.h; y++ {
    dofs := y * imgOut.Stride
    for x := 0; x < buf.w; x++ {
      imgOut.Pix[dofs] = clampByte(buf.pix[ofs])
      imgOut.Pix[dofs+1] = clampByte(buf.pix[ofs+1])
      imgOut.Pix[dofs+2] = clampByte(buf.pix[ofs+2])
      imgOut.Pix[dofs+3] = 255
      ofs += 3
      dofs += 4
    }
  }
  return imgOut
}


// GrayMap stores a single brightness channel as float32 values, nominally in range [0, 1].
type GrayMap struct {
  w, h  int
  v     []float32
}

// NewGrayMap creates a zero-initialized brightness map of the given dimensions.
func NewGrayMap(w, h int) *GrayMap {
  if w < 1 { w = 1 }
  if h < 1 { h = 1 }
  return &GrayMap{w: w, h: h, v: make([]float32, w*h)}
}

// Width returns the width of the map in pixels.
func (g *GrayMap) Width() int { return g.w }

// Height returns the height of the map in pixels.
func (g *GrayMap) Height() int { return g.h }

// At returns the brightness value at the given position.
func (g *GrayMap) At(x, y int) float32 {
  return g.v[y * g.w + x]
}

// Set updates the brightness value at the given position.
func (g *GrayMap) Set(x, y int, value float32) {
  g.v[y * g.w + x] = value
}


// Clamps v into [lo, hi].
func clampf(v, lo, hi float32) float32 {
  if v < lo { return lo }
  if v > hi { return hi }
  return v
}

// Clamps v into [0, 255] and rounds to the nearest byte value.
func clampByte(v float32) byte {
  if v <= 0.0 { return 0 }
  if v >= 255.0 { return 255 }
  return byte(v + 0.5)
}
