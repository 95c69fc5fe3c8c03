/*
Package preset provides the named tint colors used for recoloring quantized brightness maps.

Oniazusa is released under the BSD 2-clause license. See LICENSE in the project's root folder for more details.
*/
package preset

import (
  "bufio"
  "fmt"
  "io"
  "sort"
  "strconv"
  "strings"
)

// Name of the preset that is substituted for unknown tint names.
const DEFAULT = "sepia"

// Tint holds one RGB color triple. Brightness 1.0 maps to exactly this color,
// brightness 0.0 maps to pure black.
type Tint struct {
  R, G, B byte
}

// The built-in tint table. It is initialized once and never modified afterwards, so it
// can be shared freely between concurrent conversions.
var presets = map[string]Tint{
  "sepia":    {232, 200, 160},
  "green":    {120, 232, 144},
  "lavender": {196, 176, 232},
  "blue":     {136, 168, 232},
  "rose":     {232, 160, 184},
  "mono":     {235, 235, 235},
}


// Lookup returns the tint registered under the given name. Unknown names resolve to the
// default preset instead of failing; ok indicates whether the name was found.
func Lookup(name string) (retVal Tint, ok bool) {
  retVal, ok = presets[strings.ToLower(strings.TrimSpace(name))]
  if !ok { retVal = presets[DEFAULT] }
  return
}

// Names returns the sorted list of built-in preset names.
func Names() []string {
  retVal := make([]string, 0, len(presets))
  for name := range presets {
    retVal = append(retVal, name)
  }
  sort.Strings(retVal)
  return retVal
}

// Parse converts a literal color definition of the form "#rrggbb" into a tint.
func Parse(value string) (Tint, error) {
  s := strings.TrimSpace(value)
  if len(s) != 7 || s[0] != '#' { return Tint{}, fmt.Errorf("Not a color definition: %q", value) }
  n, err := strconv.ParseUint(s[1:], 16, 32)
  if err != nil { return Tint{}, fmt.Errorf("Not a color definition: %q", value) }
  return Tint{byte(n >> 16), byte(n >> 8), byte(n)}, nil
}

// Import reads user-defined tints from the source pointed to by the Reader.
// Each line defines one tint as "name = #rrggbb". Empty lines and lines starting with
// '#' are skipped. The returned map is independent of the built-in preset table.
func Import(r io.Reader) (map[string]Tint, error) {
  if r == nil { return nil, fmt.Errorf("No source specified") }

  retVal := make(map[string]Tint)
  scanner := bufio.NewScanner(r)
  lineNr := 0
  for scanner.Scan() {
    lineNr++
    line := strings.TrimSpace(scanner.Text())
    if len(line) == 0 || line[0] == '#' { continue }
    items := strings.SplitN(line, "=", 2)
    if len(items) != 2 { return nil, fmt.Errorf("Line %d: not a tint definition: %q", lineNr, line) }
    name := strings.ToLower(strings.TrimSpace(items[0]))
    if len(name) == 0 { return nil, fmt.Errorf("Line %d: empty tint name", lineNr) }
    tint, err := Parse(items[1])
    if err != nil { return nil, fmt.Errorf("Line %d: %v", lineNr, err) }
    retVal[name] = tint
  }
  if err := scanner.Err(); err != nil { return nil, err }

  return retVal, nil
}
