package filter

import (
  "testing"
)

// Shared test helpers.

func near(a, b, eps float32) bool {
  d := a - b
  if d < 0 { d = -d }
  return d <= eps
}

func uniformBuffer(w, h int, r, g, b float32) *Buffer {
  buf := NewBuffer(w, h)
  for y := 0; y < h; y++ {
    for x := 0; x < w; x++ {
      buf.Set(x, y, r, g, b)
    }
  }
  return buf
}

func uniformGray(w, h int, v float32) *GrayMap {
  gray := NewGrayMap(w, h)
  for y := 0; y < h; y++ {
    for x := 0; x < w; x++ {
      gray.Set(x, y, v)
    }
  }
  return gray
}


func TestCreateFilter(t *testing.T) {
  for _, name := range []string{"null", "flatten", "outline", "screentone", "kizuato"} {
    f := CreateFilter(name)
    if f == nil { t.Fatalf("CreateFilter(%q) = nil", name) }
    if f.GetName() != name { t.Errorf("GetName() = %q, want %q", f.GetName(), name) }
  }
  if f := CreateFilter("bogus"); f != nil { t.Errorf("CreateFilter(\"bogus\") = %v, want nil", f) }
}

func TestChainApplyNull(t *testing.T) {
  SetMultiThreaded(false)
  defer SetMultiThreaded(true)

  chain := NewChain()
  chain.Add(CreateFilter("null"))
  chain.Add(nil)  // ignored
  if chain.Length() != 1 { t.Fatalf("Length() = %d, want 1", chain.Length()) }

  in := uniformBuffer(4, 3, 10.0, 20.0, 30.0)
  out, err := chain.Apply([]*Buffer{in})
  if err != nil { t.Fatalf("Apply: %v", err) }
  if len(out) != 1 { t.Fatalf("Apply returned %d frames, want 1", len(out)) }
  if out[0] == in { t.Error("Apply returned the input buffer instead of a copy") }
  r, g, b := out[0].At(2, 1)
  if r != 10.0 || g != 20.0 || b != 30.0 { t.Errorf("At(2,1) = (%v, %v, %v), want (10, 20, 30)", r, g, b) }
}

func TestChainApplyThreaded(t *testing.T) {
  SetMultiThreaded(true)

  chain := NewChain()
  chain.Add(CreateFilter("null"))
  frames := make([]*Buffer, 4)
  for idx := range frames {
    frames[idx] = uniformBuffer(3, 3, float32(idx), 0.0, 0.0)
  }
  out, err := chain.Apply(frames)
  if err != nil { t.Fatalf("Apply: %v", err) }
  for idx := range out {
    r, _, _ := out[idx].At(0, 0)
    if r != float32(idx) { t.Errorf("frame %d: r = %v, want %v", idx, r, idx) }
  }
}

func TestChainApplyError(t *testing.T) {
  SetMultiThreaded(false)
  defer SetMultiThreaded(true)

  chain := NewChain()
  chain.Add(CreateFilter("flatten"))
  _, err := chain.Apply([]*Buffer{nil})
  if err == nil { t.Fatal("Apply with nil frame succeeded, want error") }
}

func TestScreentoneOptions(t *testing.T) {
  f := CreateFilter("screentone")

  if v := f.GetOption("levels"); v.(int) != 16 { t.Errorf("default levels = %v, want 16", v) }
  if v := f.GetOption("scale"); v.(float64) != 0.125 { t.Errorf("default scale = %v, want 0.125", v) }
  if v := f.GetOption("tint"); v.(string) != "sepia" { t.Errorf("default tint = %v, want sepia", v) }

  if err := f.SetOption("levels", "2"); err != nil { t.Errorf("SetOption(levels, 2): %v", err) }
  if err := f.SetOption("levels", "1"); err == nil { t.Error("SetOption(levels, 1) succeeded, want error") }
  if err := f.SetOption("levels", "257"); err == nil { t.Error("SetOption(levels, 257) succeeded, want error") }
  if err := f.SetOption("scale", "1.0"); err != nil { t.Errorf("SetOption(scale, 1.0): %v", err) }
  if err := f.SetOption("scale", "1.5"); err == nil { t.Error("SetOption(scale, 1.5) succeeded, want error") }
  if err := f.SetOption("tint", "#00ff80"); err != nil { t.Errorf("SetOption(tint, #00ff80): %v", err) }
  if err := f.SetOption("tint", "#xyzzy"); err == nil { t.Error("SetOption(tint, #xyzzy) succeeded, want error") }
  if err := f.SetOption("tint", ""); err == nil { t.Error("SetOption(tint, \"\") succeeded, want error") }
}

func TestParseRanges(t *testing.T) {
  if v, err := parseIntRange("42", 2, 256); err != nil || v != 42 { t.Errorf("parseIntRange(42) = (%d, %v)", v, err) }
  if _, err := parseIntRange("1", 2, 256); err == nil { t.Error("parseIntRange(1) succeeded, want error") }
  if _, err := parseIntRange("foo", 2, 256); err == nil { t.Error("parseIntRange(foo) succeeded, want error") }
  if v, err := parseFloatRange("0.5", 0.0, 1.0); err != nil || v != 0.5 { t.Errorf("parseFloatRange(0.5) = (%v, %v)", v, err) }
  if _, err := parseFloatRange("1.5", 0.0, 1.0); err == nil { t.Error("parseFloatRange(1.5) succeeded, want error") }
}
