/*
Package config translates conversion configurations from XML or JSON structures into a preprocessed map structure
for quick access.

Oniazusa is released under the BSD 2-clause license. See LICENSE in the project's root folder for more details.
*/
package config

import (
  "bytes"
  "errors"
  "io"
  "strconv"
  "strings"

  "github.com/InfinityTools/go-logging"
)


// Available configuration section names
const (
  SECTION_OUTPUT    = "output"
  SECTION_INPUT     = "input"
  SECTION_SETTINGS  = "settings"
  SECTION_FILTERS   = "filters"
)

// Available configuration key names
const (
  KEY_OUTPUT_PATH         = "output_path"
  KEY_OUTPUT_FORMAT       = "output_format"
  KEY_OUTPUT_SUFFIX       = "output_suffix"
  KEY_INPUT_STATIC        = "input_static"
  KEY_INPUT_PATH          = "input_path"
  KEY_INPUT_PREFIX        = "input_prefix"
  KEY_INPUT_SUFFIX_START  = "input_suffix_start"
  KEY_INPUT_SUFFIX_END    = "input_suffix_end"
  KEY_INPUT_SUFFIX_LEN    = "input_suffix_len"
  KEY_INPUT_EXT           = "input_ext"
  KEY_INPUT_FILES         = "input_files"
  KEY_STYLE               = "style"
  KEY_TINT                = "tint"
  KEY_LEVELS              = "levels"
  KEY_SCALE               = "scale"
  KEY_THREADED            = "threaded"
  KEY_PRESETS             = "presets"
  KEY_FILTERS             = "filter"
)

// ToneMap maps key => value associations.
type ToneMap map[string]Variant

// ToneConfig maps section => key => value.
type ToneConfig map[string]ToneMap


// ImportConfig constructs a ToneConfig object from configuration data found in the source wrapped by the Reader object.
func ImportConfig(r io.Reader) (config *ToneConfig, err error) {
  // reading configuration data into byte buffer
  logging.Logln("Loading configuration data")
  buffer := make([]byte, 1024)
  totalRead := 0
  for {
    var bytesRead int
    bytesRead, err = r.Read(buffer[totalRead:])
    totalRead += bytesRead   // a final chunk may arrive together with io.EOF
    if err != nil { break }
    if totalRead == len(buffer) {
      buffer = append(buffer, make([]byte, len(buffer))...)
    }
  }
  if err != io.EOF { return }
  err = nil
  buffer = buffer[:totalRead]

  // try to determine input format
  isXml := true
  ofs := 0
  whiteSpace := []byte{0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x20}
  for ofs < len(buffer) {
    if bytes.IndexByte(whiteSpace, buffer[ofs]) < 0 {
      if buffer[ofs] == '<' {
        isXml = true
      } else if buffer[ofs] == '{' {
        isXml = false
      } else {
        err = errors.New("Configuration: Unrecognized format")
      }
      break
    }
    ofs++
  }
  if err != nil { return }

  // parsing source into intermediate structures
  if isXml {
    config, err = importXml(buffer)
  } else {
    config, err = importJson(buffer)
  }
  if err != nil { return }

  logging.Logln("Finished loading configuration data")
  return
}

// GetConfigValueBool returns the boolean value assigned to the specified section => key location. ok returns whether
// the value is available.
func (tone *ToneConfig) GetConfigValueBool(section, key string) (retVal bool, ok bool) {
  value, ok := (*tone)[section][key].(VarBool)
  if !ok { return }
  retVal = value.ToBool()
  return
}

// GetConfigValueInt returns the numeric value assigned to the specified section => key location. ok returns whether
// the value is available.
func (tone *ToneConfig) GetConfigValueInt(section, key string) (retVal int64, ok bool) {
  value, ok := (*tone)[section][key].(VarInt)
  if !ok { return }
  retVal = value.ToInt()
  return
}

// GetConfigValueFloat returns the floating point value assigned to the specified section => key location. ok returns
// whether the value is available.
func (tone *ToneConfig) GetConfigValueFloat(section, key string) (retVal float64, ok bool) {
  value, ok := (*tone)[section][key].(VarFloat)
  if !ok { return }
  retVal = value.ToFloat()
  return
}

// GetConfigValueText returns the string value assigned to the specified section => key location. ok returns whether
// the value is available.
func (tone *ToneConfig) GetConfigValueText(section, key string) (retVal string, ok bool) {
  value, ok := (*tone)[section][key].(Variant)
  if !ok { return }
  retVal = value.ToString()
  return
}

// GetConfigValueTextSeq returns the array of strings assigned to the specified section => key location. ok returns
// whether the value is available.
func (tone *ToneConfig) GetConfigValueTextSeq(section, key string) (retVal []string, ok bool) {
  value, ok := (*tone)[section][key].(VarTextArray)
  if !ok { return }
  retVal = value.ToTextArray()
  return
}

// GetConfigFilterLength returns the number of available filter definitions.
func (tone *ToneConfig) GetConfigFilterLength() int {
  return len((*tone)[SECTION_FILTERS])
}

// GetConfigFilterName returns the name of the filter at the specified index. ok returns whether the filter is available.
func (tone *ToneConfig) GetConfigFilterName(index int) (retVal string, ok bool) {
  var option VarFilterMap
  if option, ok = (*tone)[SECTION_FILTERS][strconv.Itoa(index)].(VarFilterMap); ok {
    retVal = option.GetName()
  }
  return
}

// GetConfigFilterOptions returns the options of the specified filter as multi-array. First item of each entry contains
// key, second item contains value. ok returns whether the filter is available.
func (tone *ToneConfig) GetConfigFilterOptions(index int) (retVal [][]string, ok bool) {
  var filter VarFilterMap
  if filter, ok = (*tone)[SECTION_FILTERS][strconv.Itoa(index)].(VarFilterMap); ok {
    retVal = filter.GetOptions()
  } else {
    retVal = make([][]string, 0)
  }
  return
}


// Used internally. Attempts to convert the content of s into a boolean value. Failing that the function will return
// the specified default value. Both numeric (decimal/hexadecimal) and true/false string values are detected.
func tryParseBool(s string, defValue bool) bool {
  // try true/false first
  if strings.ToLower(s) == "true" {
    return true
  } else if strings.ToLower(s) == "false" {
    return false
  }
  // try numeric value second
  def := 0
  if defValue { def = 1 }
  return (tryParseInt(s, def) != 0)
}

// Used internally. Attempts to convert the content of s into a signed numeric value. Failing that the function will
// return the specified default value. Both decimal and hexadecimal (with prefix "0x") are detected.
func tryParseInt(s string, defValue int) int64 {
  s = strings.ToLower(strings.TrimSpace(s))

  var value int64
  var err error
  if len(s) > 2 && s[:2] == "0x" {
    // hex value?
    value, err = strconv.ParseInt(s[2:], 16, 32)
  } else {
    // dec value?
    value, err = strconv.ParseInt(s, 10, 32)
  }
  if err != nil { value = int64(defValue) }

  return value
}

// Used internally. Attempts to convert the content of s into a floating point value. Failing that the function will
// return the specified default value.
func tryParseFloat(s string, defValue float64) float64 {
  s = strings.ToLower(strings.TrimSpace(s))

  var value float64
  var err error
  value, err = strconv.ParseFloat(s, 64)
  if err != nil { value = defValue }

  return value
}

// Used internally. Fixes Windows-specific path separator characters.
func fixPath(s string) string {
  if PATH_SEPARATOR == "\\" {
    s = strings.Replace(s, PATH_SEPARATOR, "/", -1)
  }
  return s
}
