package filter
// Assembles the filter chains behind the output styles and provides the single-image
// conversion entry point.

import (
  "fmt"
  "image"
  "strconv"

  "github.com/kako-jun/oniazusa/preset"
)

// Available output styles.
const (
  STYLE_SCREENTONE  = "screentone"
  STYLE_KIZUATO     = "kizuato"
)

// Config describes a complete conversion in terms of style and style parameters.
type Config struct {
  Style   string    // output style, one of the STYLE_xxx constants
  Tint    string    // tint preset name or literal "#rrggbb" color (screentone only)
  Levels  int       // number of brightness levels in [2, 256]; the output has 8 bit channels, so more levels cannot add visible steps (screentone only)
  Scale   float64   // pixel grid scale factor (screentone only)
}

// DefaultConfig returns a conversion configuration with all values set to their defaults.
func DefaultConfig() Config {
  return Config{Style: STYLE_SCREENTONE, Tint: preset.DEFAULT, Levels: 16, Scale: 0.125}
}

// Validate checks the configuration and returns a ConfigError for the first offending value.
func (cfg Config) Validate() error {
  if cfg.Style != STYLE_SCREENTONE && cfg.Style != STYLE_KIZUATO {
    return &ConfigError{fmt.Sprintf("unknown style: %q", cfg.Style)}
  }
  if cfg.Levels < 2 || cfg.Levels > 256 {
    return &ConfigError{fmt.Sprintf("levels not in range [2, 256]: %d", cfg.Levels)}
  }
  if cfg.Scale <= 0.0 || cfg.Scale > 1.0 {
    return &ConfigError{fmt.Sprintf("scale not in range (0.0, 1.0]: %v", cfg.Scale)}
  }
  return nil
}

// BuildChain assembles the filter chain for the given configuration.
func BuildChain(cfg Config) (*Chain, error) {
  if err := cfg.Validate(); err != nil { return nil, err }

  chain := NewChain()
  switch cfg.Style {
    case STYLE_KIZUATO:
      chain.Add(CreateFilter(filterNameKizuato))
    default:
      chain.Add(CreateFilter(filterNameFlatten))
      chain.Add(CreateFilter(filterNameOutline))
      f := CreateFilter(filterNameScreentone)
      if err := f.SetOption("tint", cfg.Tint); err != nil { return nil, &ConfigError{err.Error()} }
      if err := f.SetOption("levels", strconv.Itoa(cfg.Levels)); err != nil { return nil, &ConfigError{err.Error()} }
      if err := f.SetOption("scale", strconv.FormatFloat(cfg.Scale, 'g', -1, 64)); err != nil { return nil, &ConfigError{err.Error()} }
      chain.Add(f)
  }
  return chain, nil
}

// Apply converts a single image with the given configuration and returns the result.
// The input image is not modified.
func Apply(img image.Image, cfg Config) (*image.RGBA, error) {
  chain, err := BuildChain(cfg)
  if err != nil { return nil, err }

  buf, err := FromImage(img)
  if err != nil { return nil, err }

  frames, err := chain.Apply([]*Buffer{buf})
  if err != nil { return nil, err }

  return frames[0].ToRGBA(), nil
}
