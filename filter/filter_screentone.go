package filter
/*
Implements filter "screentone": Renders the frame as a halftone illustration in a single
tint color. The frame is reduced to a coarse pixel grid, converted to brightness,
quantized through the tiled threshold pattern and recolored, then scaled back to the
original size with hard pixel edges.
Options:
- tint: preset name or literal "#rrggbb" color (sepia)
- levels: int [2, 256] (16)
- scale: float (0.0, 1.0] (0.125)
*/

import (
  "fmt"
  "strings"

  "github.com/InfinityTools/go-logging"
  "github.com/kako-jun/oniazusa/preset"
)

const (
  filterNameScreentone = "screentone"
)

type FilterScreentone struct {
  options     optionsMap
  opt_tint, opt_levels, opt_scale string
}

// Register filter for use in oniazusa.
func init() {
  registerFilter(filterNameScreentone, NewFilterScreentone)
}


// Creates a new Screentone filter.
func NewFilterScreentone() Filter {
  f := FilterScreentone{options: make(optionsMap),
                        opt_tint: "tint",
                        opt_levels: "levels",
                        opt_scale: "scale"}
  f.SetOption(f.opt_tint, preset.DEFAULT)
  f.SetOption(f.opt_levels, "16")
  f.SetOption(f.opt_scale, "0.125")
  return &f
}

// GetName returns the name of the filter for identification purposes.
func (f *FilterScreentone) GetName() string {
  return filterNameScreentone
}

// GetOption returns the option of given name. Content of return value is filter specific.
func (f *FilterScreentone) GetOption(key string) interface{} {
  v, ok := f.options[strings.ToLower(key)]
  if !ok { return nil }
  return v
}

// SetOption adds or updates an option of the given key to the filter.
func (f *FilterScreentone) SetOption(key, value string) error {
  key = strings.ToLower(key)
  switch key {
    case f.opt_tint:
      value = strings.TrimSpace(value)
      if len(value) == 0 { return fmt.Errorf("Option %s: no tint specified", key) }
      if value[0] == '#' {
        if _, err := preset.Parse(value); err != nil { return fmt.Errorf("Option %s: %v", key, err) }
      }
      f.options[key] = value
    case f.opt_levels:
      v, err := parseIntRange(value, 2, 256)
      if err != nil { return fmt.Errorf("Option %s: %v", key, err) }
      f.options[key] = v
    case f.opt_scale:
      v, err := parseFloatRange(value, 0.00001, 1.0)
      if err != nil { return fmt.Errorf("Option %s: %v", key, err) }
      f.options[key] = v
  }
  return nil
}

// Process applies the filter effect to the specified frame and returns the transformed frame.
func (f *FilterScreentone) Process(frame *Buffer, inFrames []*Buffer) (*Buffer, error) {
  if frame == nil { return nil, &InputError{"no frame data"} }

  levels := f.GetOption(f.opt_levels).(int)
  scale := f.GetOption(f.opt_scale).(float64)
  tint := f.resolveTint()

  small, err := Downsample(frame, scale)
  if err != nil { return nil, err }

  quantized, err := Dither(Luminance(small), levels)
  if err != nil { return nil, err }

  return Upsample(TintMap(quantized, tint), frame.Width(), frame.Height()), nil
}


// Used internally. Resolves the tint option into a color triple. Unknown preset names fall
// back to the default preset.
func (f *FilterScreentone) resolveTint() preset.Tint {
  value := f.GetOption(f.opt_tint).(string)
  if len(value) > 0 && value[0] == '#' {
    if tint, err := preset.Parse(value); err == nil { return tint }
  }
  tint, ok := preset.Lookup(value)
  if !ok { logging.Warnf("Unknown tint name: %q. Defaulting to %q.\n", value, preset.DEFAULT) }
  return tint
}
