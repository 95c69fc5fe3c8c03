package graphics

import (
  "bytes"
  "image"
  "image/color"
  "image/gif"
  "image/png"
  "testing"

  "golang.org/x/image/bmp"
)

func testImage(w, h int) *image.RGBA {
  img := image.NewRGBA(image.Rect(0, 0, w, h))
  for y := 0; y < h; y++ {
    for x := 0; x < w; x++ {
      img.SetRGBA(x, y, color.RGBA{byte(x * 16), byte(y * 16), 128, 255})
    }
  }
  return img
}

func TestImportPNG(t *testing.T) {
  src := testImage(8, 6)
  buf := bytes.Buffer{}
  if err := png.Encode(&buf, src); err != nil { t.Fatalf("png.Encode: %v", err) }

  g := Import(bytes.NewReader(buf.Bytes()))
  if g.Error() != nil { t.Fatalf("Import: %v", g.Error()) }
  if g.GetImageType() != TYPE_PNG { t.Errorf("type = %d, want TYPE_PNG", g.GetImageType()) }
  if g.GetImageLength() != 1 { t.Fatalf("length = %d, want 1", g.GetImageLength()) }

  img := g.GetImage(0)
  if img == nil { t.Fatal("GetImage(0) = nil") }
  if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 6 {
    t.Errorf("bounds = %v, want 8x6", img.Bounds())
  }
  rgba, ok := img.(*image.RGBA)
  if !ok { t.Fatalf("image type = %T, want *image.RGBA", img) }
  if rgba.RGBAAt(3, 2) != src.RGBAAt(3, 2) {
    t.Errorf("pixel (3,2) = %v, want %v", rgba.RGBAAt(3, 2), src.RGBAAt(3, 2))
  }
}

func TestImportBMP(t *testing.T) {
  src := testImage(5, 5)
  buf := bytes.Buffer{}
  if err := bmp.Encode(&buf, src); err != nil { t.Fatalf("bmp.Encode: %v", err) }

  g := Import(bytes.NewReader(buf.Bytes()))
  if g.Error() != nil { t.Fatalf("Import: %v", g.Error()) }
  if g.GetImageType() != TYPE_BMP { t.Errorf("type = %d, want TYPE_BMP", g.GetImageType()) }
  if g.GetImageLength() != 1 { t.Errorf("length = %d, want 1", g.GetImageLength()) }
  if img := g.GetImage(0); img == nil || img.Bounds().Dx() != 5 { t.Errorf("GetImage(0) = %v", img) }
}

func TestImportGIF(t *testing.T) {
  palette := []color.Color{color.RGBA{0, 0, 0, 0}, color.White}
  anim := gif.GIF{Config: image.Config{Width: 4, Height: 4}}
  for i := 0; i < 3; i++ {
    frame := image.NewPaletted(image.Rect(0, 0, 4, 4), palette)
    frame.SetColorIndex(i, i, 1)
    anim.Image = append(anim.Image, frame)
    anim.Delay = append(anim.Delay, 10)
    anim.Disposal = append(anim.Disposal, gif.DisposalNone)
  }
  buf := bytes.Buffer{}
  if err := gif.EncodeAll(&buf, &anim); err != nil { t.Fatalf("gif.EncodeAll: %v", err) }

  g := Import(bytes.NewReader(buf.Bytes()))
  if g.Error() != nil { t.Fatalf("Import: %v", g.Error()) }
  if g.GetImageType() != TYPE_GIF { t.Errorf("type = %d, want TYPE_GIF", g.GetImageType()) }
  if g.GetImageLength() != 3 { t.Fatalf("length = %d, want 3", g.GetImageLength()) }

  // DisposalNone accumulates the white dots across frames
  last := g.GetImage(2)
  rgba, ok := last.(*image.RGBA)
  if !ok { t.Fatalf("frame type = %T, want *image.RGBA", last) }
  for i := 0; i < 3; i++ {
    if c := rgba.RGBAAt(i, i); c.R != 255 {
      t.Errorf("frame 2 pixel (%d,%d) = %v, want white", i, i, c)
    }
  }
}

func TestImportErrors(t *testing.T) {
  g := Import(nil)
  if g.Error() == nil { t.Error("Import(nil) reported no error") }
  if g.GetImageLength() != 0 { t.Errorf("length = %d, want 0", g.GetImageLength()) }
  if g.GetImageType() != TYPE_UNKNOWN { t.Errorf("type = %d, want TYPE_UNKNOWN", g.GetImageType()) }
  if g.GetImage(0) != nil { t.Error("GetImage(0) on failed import returned image") }

  g = Import(bytes.NewReader([]byte("this is not an image at all")))
  if g.Error() == nil { t.Error("garbage input reported no error") }

  // too short for the header sniff
  g = Import(bytes.NewReader([]byte{0x00}))
  if g.Error() == nil { t.Error("truncated input reported no error") }
}

func TestGetImageBounds(t *testing.T) {
  src := testImage(4, 4)
  buf := bytes.Buffer{}
  if err := png.Encode(&buf, src); err != nil { t.Fatalf("png.Encode: %v", err) }
  g := Import(bytes.NewReader(buf.Bytes()))
  if g.Error() != nil { t.Fatalf("Import: %v", g.Error()) }

  if g.GetImage(-1) != nil { t.Error("GetImage(-1) returned image") }
  if g.GetImage(1) != nil { t.Error("GetImage(1) returned image") }
}

func TestExport(t *testing.T) {
  img := testImage(6, 4)

  for _, format := range []int{TYPE_PNG, TYPE_JPG, TYPE_BMP} {
    buf := bytes.Buffer{}
    if err := Export(&buf, img, format); err != nil { t.Errorf("Export format %d: %v", format, err) }
    if buf.Len() == 0 { t.Errorf("Export format %d wrote no data", format) }
  }
}

func TestExportRoundTrip(t *testing.T) {
  src := testImage(7, 3)
  buf := bytes.Buffer{}
  if err := Export(&buf, src, TYPE_PNG); err != nil { t.Fatalf("Export: %v", err) }

  g := Import(bytes.NewReader(buf.Bytes()))
  if g.Error() != nil { t.Fatalf("Import: %v", g.Error()) }
  rgba := g.GetImage(0).(*image.RGBA)
  for y := 0; y < 3; y++ {
    for x := 0; x < 7; x++ {
      if rgba.RGBAAt(x, y) != src.RGBAAt(x, y) {
        t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, rgba.RGBAAt(x, y), src.RGBAAt(x, y))
      }
    }
  }
}

func TestExportErrors(t *testing.T) {
  img := testImage(2, 2)
  buf := bytes.Buffer{}

  if err := Export(nil, img, TYPE_PNG); err == nil { t.Error("Export(nil writer) succeeded") }
  if err := Export(&buf, nil, TYPE_PNG); err == nil { t.Error("Export(nil image) succeeded") }
  if err := Export(&buf, img, TYPE_WEBP); err == nil { t.Error("Export to webp succeeded, want error") }
  if err := Export(&buf, img, TYPE_UNKNOWN); err == nil { t.Error("Export to unknown format succeeded, want error") }
}
