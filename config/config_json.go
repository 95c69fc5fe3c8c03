package config
// Parse functionality for JSON structures.

import (
  "encoding/json"
  "fmt"
  "strconv"
  "strings"

  "github.com/InfinityTools/go-logging"
)

// Used internally by json.Unmarshal to store output settings.
type JsonOutput struct {
  Path          string
  Format        string
  Suffix        string
}

// Used internally by json.Unmarshal to store file input sequences.
type JsonInputSequence struct {
  Path          string
  Prefix        string
  SuffixStart   int64
  SuffixEnd     int64
  SuffixLength  int64
  Ext           string
}

// Used internally by json.Unmarshal to store input settings.
type JsonInput struct {
  Static        bool
  Files         []string
  FileSequence  JsonInputSequence
}

// Used internally by json.Unmarshal to store conversion settings.
type JsonSettings struct {
  Style         string
  Tint          string
  Levels        int64
  Scale         float64
  Threaded      *bool
  Presets       string
}

// Used internally by json.Unmarshal to store filter settings.
type JsonFilterOptions struct {
  Key           string
  Value         string
}

// Used internally by json.Unmarshal to store filter options.
type JsonFilter struct {
  Name          string
  Options       []JsonFilterOptions
}

// Used internally by json.Unmarshal to store configuration data from JSON scripts.
type JsonGenerator struct {
  Output        JsonOutput
  Input         JsonInput
  Settings      JsonSettings
  Filters       []JsonFilter
}

// Used internally. Parses JSON source into intermediate structures.
func importJson(buffer []byte) (config *ToneConfig, err error) {
  jsonGenerator := JsonGenerator{}
  err = json.Unmarshal(buffer, &jsonGenerator)
  if err != nil { return }

  config, err = processConfigJson(&jsonGenerator)
  return
}


// Used internally. Converts parsed JSON input into useful data types, taking defaults into account for omitted input.
func processConfigJson(input *JsonGenerator) (config *ToneConfig, err error) {
  tone := make(ToneConfig)
  config = &tone
  logging.Logln("Processing output settings")
  err = processConfigJsonOutput(input, config)
  if err != nil { return }
  logging.Logln("Processing input settings")
  err = processConfigJsonInput(input, config)
  if err != nil { return }
  logging.Logln("Processing conversion settings")
  err = processConfigJsonSettings(input, config)
  if err != nil { return }
  logging.Logln("Processing filter settings")
  err = processConfigJsonFilters(input, config)
  return
}

// Used internally. Process "output" section.
func processConfigJsonOutput(input *JsonGenerator, config *ToneConfig) error {
  (*config)[SECTION_OUTPUT] = make(ToneMap)

  var textVal string
  textVal = fixPath(strings.TrimSpace(input.Output.Path))
  if len(textVal) == 0 { textVal = "." }
  for len(textVal) > 1 && textVal[len(textVal)-1:] == "/" { textVal = textVal[:len(textVal)-1] }
  (*config)[SECTION_OUTPUT][KEY_OUTPUT_PATH] = Text{textVal}

  textVal = strings.ToLower(strings.TrimSpace(input.Output.Format))
  if len(textVal) == 0 { textVal = "png" }
  if textVal != "png" && textVal != "jpg" && textVal != "jpeg" && textVal != "bmp" {
    return fmt.Errorf("Output>Format: Invalid output format specified: %s", textVal)
  }
  (*config)[SECTION_OUTPUT][KEY_OUTPUT_FORMAT] = Text{textVal}

  textVal = strings.TrimSpace(input.Output.Suffix)
  (*config)[SECTION_OUTPUT][KEY_OUTPUT_SUFFIX] = Text{textVal}

  return nil
}

// Used internally. Process "input" section.
func processConfigJsonInput(input *JsonGenerator, config *ToneConfig) error {
  (*config)[SECTION_INPUT] = make(ToneMap)

  static := input.Input.Static
  (*config)[SECTION_INPUT][KEY_INPUT_STATIC] = Bool{static}

  var size int
  size = len(input.Input.Files)
  textSeq := make([]string, size)
  for i := 0; i < size; i++ {
    textSeq[i] = strings.TrimSpace(input.Input.Files[i])
  }
  (*config)[SECTION_INPUT][KEY_INPUT_FILES] = TextArray{textSeq}

  var textVal string
  textVal = fixPath(strings.TrimSpace(input.Input.FileSequence.Path))
  if len(textVal) == 0 { textVal = "." }
  for len(textVal) > 1 && (textVal[len(textVal)-1:] == "/" || textVal[len(textVal)-1:] == "\\") { textVal = textVal[:len(textVal)-1] }
  (*config)[SECTION_INPUT][KEY_INPUT_PATH] = Text{textVal}

  textVal = strings.TrimSpace(input.Input.FileSequence.Prefix)
  (*config)[SECTION_INPUT][KEY_INPUT_PREFIX] = Text{textVal}

  var intVal int64
  intVal = input.Input.FileSequence.SuffixStart
  (*config)[SECTION_INPUT][KEY_INPUT_SUFFIX_START] = Int{intVal}

  intVal = input.Input.FileSequence.SuffixEnd
  (*config)[SECTION_INPUT][KEY_INPUT_SUFFIX_END] = Int{intVal}

  intVal = input.Input.FileSequence.SuffixLength
  if intVal != 0 && (intVal < 1 || intVal > 16) { return fmt.Errorf("Input>FileSequence>SuffixLength not in range [1,16]: %d", intVal) }
  if intVal == 0 { intVal = 1 }
  (*config)[SECTION_INPUT][KEY_INPUT_SUFFIX_LEN] = Int{intVal}

  textVal = strings.TrimSpace(input.Input.FileSequence.Ext)
  for len(textVal) > 0 && textVal[0:1] == "." { textVal = textVal[1:] }
  (*config)[SECTION_INPUT][KEY_INPUT_EXT] = Text{textVal}

  return nil
}

// Used internally. Process "settings" section.
func processConfigJsonSettings(input *JsonGenerator, config *ToneConfig) error {
  (*config)[SECTION_SETTINGS] = make(ToneMap)

  var textVal string
  textVal = strings.ToLower(strings.TrimSpace(input.Settings.Style))
  if len(textVal) == 0 { textVal = "screentone" }
  if textVal != "screentone" && textVal != "kizuato" {
    return fmt.Errorf("Settings>Style: Invalid style specified: %s", textVal)
  }
  (*config)[SECTION_SETTINGS][KEY_STYLE] = Text{textVal}

  textVal = strings.TrimSpace(input.Settings.Tint)
  if len(textVal) == 0 { textVal = "sepia" }
  (*config)[SECTION_SETTINGS][KEY_TINT] = Text{textVal}

  var intVal int64
  intVal = input.Settings.Levels
  if intVal == 0 { intVal = 16 }
  if intVal < 2 || intVal > 256 { return fmt.Errorf("Settings>Levels not in range [2, 256]: %d", intVal) }
  (*config)[SECTION_SETTINGS][KEY_LEVELS] = Int{intVal}

  var floatVal float64
  floatVal = input.Settings.Scale
  if floatVal == 0.0 { floatVal = 0.125 }
  if floatVal < 0.0 || floatVal > 1.0 { return fmt.Errorf("Settings>Scale not in range (0.0, 1.0]: %f", floatVal) }
  (*config)[SECTION_SETTINGS][KEY_SCALE] = Float{floatVal}

  boolVal := true
  if input.Settings.Threaded != nil { boolVal = *input.Settings.Threaded }
  (*config)[SECTION_SETTINGS][KEY_THREADED] = Bool{boolVal}

  textVal = fixPath(strings.TrimSpace(input.Settings.Presets))
  (*config)[SECTION_SETTINGS][KEY_PRESETS] = Text{textVal}

  return nil
}

func processConfigJsonFilters(input *JsonGenerator, config *ToneConfig) error {
  (*config)[SECTION_FILTERS] = make(ToneMap)

  // process filters sequentially
  for index, filter := range input.Filters {
    f := Filter{ Name: filter.Name, Options: make(map[string]string) }
    for _, option := range filter.Options {
      f.Options[option.Key] = option.Value
    }
    (*config)[SECTION_FILTERS][strconv.Itoa(index)] = f
  }

  return nil
}
