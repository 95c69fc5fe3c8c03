package config

import (
  "strings"
  "testing"
  "testing/iotest"

  "github.com/google/go-cmp/cmp"
)

const jsonSample = `{
  "output": { "path": "out/", "format": "png", "suffix": "_tone" },
  "input": {
    "static": true,
    "files": [" photo1.jpg", "photo2.png "]
  },
  "settings": {
    "style": "screentone",
    "tint": "lavender",
    "levels": 8,
    "scale": 0.25,
    "threaded": false,
    "presets": "tints.txt"
  },
  "filters": [
    { "name": "null", "options": [ { "key": "dummy", "value": "1" } ] }
  ]
}`

const xmlSample = `<?xml version="1.0"?>
<generator>
  <output>
    <path>out/</path>
    <format>jpg</format>
    <suffix>_tone</suffix>
  </output>
  <input>
    <static>false</static>
    <filesequence>
      <path>frames/</path>
      <prefix>bg</prefix>
      <suffixstart>1</suffixstart>
      <suffixend>4</suffixend>
      <suffixlength>3</suffixlength>
      <ext>png</ext>
    </filesequence>
  </input>
  <settings>
    <style>kizuato</style>
    <levels>32</levels>
    <scale>0.5</scale>
  </settings>
  <filters>
    <filter>
      <name>null</name>
      <option><key>dummy</key><value>1</value></option>
    </filter>
  </filters>
</generator>`

func TestImportConfigJson(t *testing.T) {
  cfg, err := ImportConfig(strings.NewReader(jsonSample))
  if err != nil { t.Fatalf("ImportConfig: %v", err) }

  if s, ok := cfg.GetConfigValueText(SECTION_OUTPUT, KEY_OUTPUT_PATH); !ok || s != "out" { t.Errorf("output path = (%q, %v)", s, ok) }
  if s, ok := cfg.GetConfigValueText(SECTION_OUTPUT, KEY_OUTPUT_FORMAT); !ok || s != "png" { t.Errorf("output format = (%q, %v)", s, ok) }
  if s, ok := cfg.GetConfigValueText(SECTION_OUTPUT, KEY_OUTPUT_SUFFIX); !ok || s != "_tone" { t.Errorf("output suffix = (%q, %v)", s, ok) }

  if b, ok := cfg.GetConfigValueBool(SECTION_INPUT, KEY_INPUT_STATIC); !ok || !b { t.Errorf("input static = (%v, %v)", b, ok) }
  files, ok := cfg.GetConfigValueTextSeq(SECTION_INPUT, KEY_INPUT_FILES)
  if !ok { t.Fatal("input files missing") }
  if diff := cmp.Diff([]string{"photo1.jpg", "photo2.png"}, files); diff != "" { t.Errorf("input files mismatch (-want +got):\n%s", diff) }

  if s, ok := cfg.GetConfigValueText(SECTION_SETTINGS, KEY_STYLE); !ok || s != "screentone" { t.Errorf("style = (%q, %v)", s, ok) }
  if s, ok := cfg.GetConfigValueText(SECTION_SETTINGS, KEY_TINT); !ok || s != "lavender" { t.Errorf("tint = (%q, %v)", s, ok) }
  if i, ok := cfg.GetConfigValueInt(SECTION_SETTINGS, KEY_LEVELS); !ok || i != 8 { t.Errorf("levels = (%d, %v)", i, ok) }
  if f, ok := cfg.GetConfigValueFloat(SECTION_SETTINGS, KEY_SCALE); !ok || f != 0.25 { t.Errorf("scale = (%v, %v)", f, ok) }
  if b, ok := cfg.GetConfigValueBool(SECTION_SETTINGS, KEY_THREADED); !ok || b { t.Errorf("threaded = (%v, %v)", b, ok) }
  if s, ok := cfg.GetConfigValueText(SECTION_SETTINGS, KEY_PRESETS); !ok || s != "tints.txt" { t.Errorf("presets = (%q, %v)", s, ok) }

  if n := cfg.GetConfigFilterLength(); n != 1 { t.Fatalf("filter length = %d, want 1", n) }
  name, ok := cfg.GetConfigFilterName(0)
  if !ok || name != "null" { t.Errorf("filter name = (%q, %v)", name, ok) }
  options, ok := cfg.GetConfigFilterOptions(0)
  if !ok || len(options) != 1 { t.Fatalf("filter options = (%v, %v)", options, ok) }
  if options[0][0] != "dummy" || options[0][1] != "1" { t.Errorf("filter option = %v", options[0]) }
}

func TestImportConfigJsonDefaults(t *testing.T) {
  cfg, err := ImportConfig(strings.NewReader(`{}`))
  if err != nil { t.Fatalf("ImportConfig: %v", err) }

  if s, _ := cfg.GetConfigValueText(SECTION_OUTPUT, KEY_OUTPUT_FORMAT); s != "png" { t.Errorf("default format = %q, want png", s) }
  if s, _ := cfg.GetConfigValueText(SECTION_SETTINGS, KEY_STYLE); s != "screentone" { t.Errorf("default style = %q, want screentone", s) }
  if s, _ := cfg.GetConfigValueText(SECTION_SETTINGS, KEY_TINT); s != "sepia" { t.Errorf("default tint = %q, want sepia", s) }
  if i, _ := cfg.GetConfigValueInt(SECTION_SETTINGS, KEY_LEVELS); i != 16 { t.Errorf("default levels = %d, want 16", i) }
  if f, _ := cfg.GetConfigValueFloat(SECTION_SETTINGS, KEY_SCALE); f != 0.125 { t.Errorf("default scale = %v, want 0.125", f) }
  if b, _ := cfg.GetConfigValueBool(SECTION_SETTINGS, KEY_THREADED); !b { t.Error("default threaded = false, want true") }
}

func TestImportConfigXml(t *testing.T) {
  cfg, err := ImportConfig(strings.NewReader(xmlSample))
  if err != nil { t.Fatalf("ImportConfig: %v", err) }

  if s, _ := cfg.GetConfigValueText(SECTION_OUTPUT, KEY_OUTPUT_FORMAT); s != "jpg" { t.Errorf("format = %q, want jpg", s) }
  if b, _ := cfg.GetConfigValueBool(SECTION_INPUT, KEY_INPUT_STATIC); b { t.Error("static = true, want false") }
  if s, _ := cfg.GetConfigValueText(SECTION_INPUT, KEY_INPUT_PATH); s != "frames" { t.Errorf("sequence path = %q, want frames", s) }
  if s, _ := cfg.GetConfigValueText(SECTION_INPUT, KEY_INPUT_PREFIX); s != "bg" { t.Errorf("sequence prefix = %q, want bg", s) }
  if i, _ := cfg.GetConfigValueInt(SECTION_INPUT, KEY_INPUT_SUFFIX_START); i != 1 { t.Errorf("suffix start = %d, want 1", i) }
  if i, _ := cfg.GetConfigValueInt(SECTION_INPUT, KEY_INPUT_SUFFIX_END); i != 4 { t.Errorf("suffix end = %d, want 4", i) }
  if i, _ := cfg.GetConfigValueInt(SECTION_INPUT, KEY_INPUT_SUFFIX_LEN); i != 3 { t.Errorf("suffix len = %d, want 3", i) }
  if s, _ := cfg.GetConfigValueText(SECTION_INPUT, KEY_INPUT_EXT); s != "png" { t.Errorf("sequence ext = %q, want png", s) }
  if s, _ := cfg.GetConfigValueText(SECTION_SETTINGS, KEY_STYLE); s != "kizuato" { t.Errorf("style = %q, want kizuato", s) }
  if i, _ := cfg.GetConfigValueInt(SECTION_SETTINGS, KEY_LEVELS); i != 32 { t.Errorf("levels = %d, want 32", i) }
  if n := cfg.GetConfigFilterLength(); n != 1 { t.Errorf("filter length = %d, want 1", n) }
}

func TestImportConfigInvalidValues(t *testing.T) {
  cases := []string{
    `{ "settings": { "style": "watercolor" } }`,
    `{ "settings": { "levels": 1 } }`,
    `{ "settings": { "levels": 300 } }`,
    `{ "settings": { "scale": 1.5 } }`,
    `{ "output": { "format": "tiff" } }`,
  }
  for idx, src := range cases {
    if _, err := ImportConfig(strings.NewReader(src)); err == nil {
      t.Errorf("case %d parsed, want error", idx)
    }
  }
}

func TestImportConfigReader(t *testing.T) {
  // a final chunk delivered together with io.EOF must still be parsed
  cfg, err := ImportConfig(iotest.DataErrReader(strings.NewReader(jsonSample)))
  if err != nil { t.Fatalf("ImportConfig: %v", err) }
  if s, _ := cfg.GetConfigValueText(SECTION_SETTINGS, KEY_STYLE); s != "screentone" { t.Errorf("style = %q, want screentone", s) }

  // a failing source must surface its error instead of parsing a truncated document
  if _, err := ImportConfig(iotest.TimeoutReader(strings.NewReader(jsonSample))); err == nil {
    t.Error("failing reader parsed, want error")
  }
}

func TestImportConfigUnrecognized(t *testing.T) {
  if _, err := ImportConfig(strings.NewReader("style = screentone")); err == nil {
    t.Error("unrecognized format parsed, want error")
  }
}

func TestAssembleFilePath(t *testing.T) {
  cases := []struct {
    path, prefix, ext  string
    index, width       int64
    want               string
  }{
    {"frames/", "bg", "png", 1, 3, "frames/bg001.png"},
    {"frames", "bg", ".png", 12, 3, "frames/bg012.png"},
    {".", "", "png", 7, 1, "./7.png"},
    {"a", "x", "png", -2, 3, "a/x-02.png"},
  }
  for _, c := range cases {
    got := AssembleFilePath(c.path, c.prefix, c.ext, c.index, c.width)
    if got != c.want { t.Errorf("AssembleFilePath(%q, %q, %q, %d, %d) = %q, want %q", c.path, c.prefix, c.ext, c.index, c.width, got, c.want) }
  }
}

func TestTryParseHelpers(t *testing.T) {
  if !tryParseBool("true", false) { t.Error("tryParseBool(true) = false") }
  if tryParseBool("false", true) { t.Error("tryParseBool(false) = true") }
  if !tryParseBool("1", false) { t.Error("tryParseBool(1) = false") }
  if !tryParseBool("junk", true) { t.Error("tryParseBool(junk, def=true) = false") }

  if v := tryParseInt("0x10", 0); v != 16 { t.Errorf("tryParseInt(0x10) = %d", v) }
  if v := tryParseInt("junk", 42); v != 42 { t.Errorf("tryParseInt(junk) = %d, want default 42", v) }
  if v := tryParseFloat("0.5", 0.0); v != 0.5 { t.Errorf("tryParseFloat(0.5) = %v", v) }
  if v := tryParseFloat("junk", 0.25); v != 0.25 { t.Errorf("tryParseFloat(junk) = %v, want default 0.25", v) }
}
