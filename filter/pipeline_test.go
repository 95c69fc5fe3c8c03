package filter

import (
  "image"
  "testing"

  "github.com/google/go-cmp/cmp"
)

func grayImage(w, h int, v byte) *image.RGBA {
  img := image.NewRGBA(image.Rect(0, 0, w, h))
  for idx := 0; idx < len(img.Pix); idx += 4 {
    img.Pix[idx] = v
    img.Pix[idx+1] = v
    img.Pix[idx+2] = v
    img.Pix[idx+3] = 255
  }
  return img
}

func TestConfigValidate(t *testing.T) {
  cfg := DefaultConfig()
  if err := cfg.Validate(); err != nil { t.Fatalf("default config invalid: %v", err) }

  bad := []Config{
    {Style: "watercolor", Tint: "sepia", Levels: 16, Scale: 0.125},
    {Style: STYLE_SCREENTONE, Tint: "sepia", Levels: 1, Scale: 0.125},
    {Style: STYLE_SCREENTONE, Tint: "sepia", Levels: 300, Scale: 0.125},
    {Style: STYLE_SCREENTONE, Tint: "sepia", Levels: 16, Scale: 0.0},
    {Style: STYLE_SCREENTONE, Tint: "sepia", Levels: 16, Scale: 1.5},
  }
  for idx, cfg := range bad {
    err := cfg.Validate()
    if err == nil { t.Fatalf("config %d validated, want error", idx) }
    if _, ok := err.(*ConfigError); !ok { t.Errorf("config %d: error type = %T, want *ConfigError", idx, err) }
  }
}

func TestBuildChain(t *testing.T) {
  chain, err := BuildChain(DefaultConfig())
  if err != nil { t.Fatalf("BuildChain: %v", err) }
  if chain.Length() != 3 { t.Fatalf("screentone chain length = %d, want 3", chain.Length()) }
  want := []string{"flatten", "outline", "screentone"}
  for idx, name := range want {
    if chain.Get(idx).GetName() != name { t.Errorf("chain[%d] = %q, want %q", idx, chain.Get(idx).GetName(), name) }
  }

  cfg := DefaultConfig()
  cfg.Style = STYLE_KIZUATO
  chain, err = BuildChain(cfg)
  if err != nil { t.Fatalf("BuildChain: %v", err) }
  if chain.Length() != 1 { t.Fatalf("kizuato chain length = %d, want 1", chain.Length()) }
  if chain.Get(0).GetName() != "kizuato" { t.Errorf("chain[0] = %q, want kizuato", chain.Get(0).GetName()) }
}

func TestBuildChainInvalid(t *testing.T) {
  cfg := DefaultConfig()
  cfg.Scale = 2.0
  if _, err := BuildChain(cfg); err == nil { t.Error("BuildChain with invalid scale succeeded, want error") }
}

func TestApplyScreentone(t *testing.T) {
  SetMultiThreaded(false)
  defer SetMultiThreaded(true)

  cfg := Config{Style: STYLE_SCREENTONE, Tint: "green", Levels: 16, Scale: 0.1}
  img := grayImage(100, 100, 128)
  out, err := Apply(img, cfg)
  if err != nil { t.Fatalf("Apply: %v", err) }
  if out.Bounds().Dx() != 100 || out.Bounds().Dy() != 100 {
    t.Fatalf("output size = %dx%d, want 100x100", out.Bounds().Dx(), out.Bounds().Dy())
  }

  // the coarse grid maps back onto uniform 10x10 blocks
  for by := 0; by < 10; by++ {
    for bx := 0; bx < 10; bx++ {
      ref := out.RGBAAt(bx * 10, by * 10)
      for dy := 0; dy < 10; dy++ {
        for dx := 0; dx < 10; dx++ {
          if out.RGBAAt(bx * 10 + dx, by * 10 + dy) != ref {
            t.Fatalf("block (%d,%d) is not uniform at offset (%d,%d)", bx, by, dx, dy)
          }
        }
      }
    }
  }

  // the green tint dominates each pixel
  for y := 0; y < 100; y += 10 {
    for x := 0; x < 100; x += 10 {
      c := out.RGBAAt(x, y)
      if c.G < c.R || c.G < c.B { t.Fatalf("pixel (%d,%d) = %v lacks green dominance", x, y, c) }
      if c.A != 255 { t.Fatalf("pixel (%d,%d) not opaque", x, y) }
    }
  }
}

func TestApplyUnknownTintFallsBack(t *testing.T) {
  SetMultiThreaded(false)
  defer SetMultiThreaded(true)

  img := grayImage(40, 40, 128)
  unknown, err := Apply(img, Config{Style: STYLE_SCREENTONE, Tint: "nosuchtint", Levels: 16, Scale: 0.25})
  if err != nil { t.Fatalf("Apply: %v", err) }
  sepia, err := Apply(img, Config{Style: STYLE_SCREENTONE, Tint: "sepia", Levels: 16, Scale: 0.25})
  if err != nil { t.Fatalf("Apply: %v", err) }

  if diff := cmp.Diff(sepia.Pix, unknown.Pix); diff != "" {
    t.Errorf("unknown tint does not match default output (-want +got):\n%s", diff)
  }
}

func TestApplyLiteralTint(t *testing.T) {
  SetMultiThreaded(false)
  defer SetMultiThreaded(true)

  img := grayImage(20, 20, 255)
  out, err := Apply(img, Config{Style: STYLE_SCREENTONE, Tint: "#4080c0", Levels: 2, Scale: 0.5})
  if err != nil { t.Fatalf("Apply: %v", err) }

  // pure white input stays at brightness 1 through the whole chain, so the output is
  // exactly the literal tint color
  c := out.RGBAAt(10, 10)
  if c.R != 0x40 || c.G != 0x80 || c.B != 0xc0 {
    t.Errorf("pixel = %v, want literal tint 4080c0", c)
  }
}

func TestApplyKizuato(t *testing.T) {
  SetMultiThreaded(false)
  defer SetMultiThreaded(true)

  img := grayImage(21, 21, 180)
  out, err := Apply(img, Config{Style: STYLE_KIZUATO, Tint: "sepia", Levels: 16, Scale: 0.125})
  if err != nil { t.Fatalf("Apply: %v", err) }

  center := out.RGBAAt(10, 10)
  corner := out.RGBAAt(0, 0)
  if center.R <= corner.R { t.Errorf("vignette missing: center %v, corner %v", center, corner) }
  if center.R >= 180 { t.Errorf("center %v not darkened", center) }
}

func TestApplyNilImage(t *testing.T) {
  _, err := Apply(nil, DefaultConfig())
  if err == nil { t.Fatal("Apply(nil) succeeded, want error") }
  if _, ok := err.(*InputError); !ok { t.Errorf("error type = %T, want *InputError", err) }
}
