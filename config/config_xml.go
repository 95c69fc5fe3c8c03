package config
// Parse functionality for XML structures.

import (
  "encoding/xml"
  "fmt"
  "strconv"
  "strings"

  "github.com/InfinityTools/go-logging"
)

// Used internally by xml.Unmarshal to store output settings.
type XmlOutput struct {
  Path          string      `xml:"path"`
  Format        string      `xml:"format"`
  Suffix        string      `xml:"suffix"`
}

// Used internally by xml.Unmarshal to store input file sequences settings.
type XmlInputSequence struct {
  Path          string      `xml:"path"`
  Prefix        string      `xml:"prefix"`
  SuffixStart   string      `xml:"suffixstart"`
  SuffixEnd     string      `xml:"suffixend"`
  SuffixLength  string      `xml:"suffixlength"`
  Ext           string      `xml:"ext"`
}

// Used internally by xml.Unmarshal to store input settings.
type XmlInput struct {
  Static        string            `xml:"static"`
  Sequence      XmlInputSequence  `xml:"filesequence"`
  Files         []string          `xml:"files>path"`
}

// Used internally by xml.Unmarshal to store conversion settings.
type XmlSettings struct {
  Style         string      `xml:"style"`
  Tint          string      `xml:"tint"`
  Levels        string      `xml:"levels"`
  Scale         string      `xml:"scale"`
  Threaded      string      `xml:"threaded"`
  Presets       string      `xml:"presets"`
}

// Used internally by xml.Unmarshal to store filter settings.
type XmlFilterOption struct {
  Key           string      `xml:"key"`
  Value         string      `xml:"value"`
}

// Used internally by xml.Unmarshal to store filter options.
type XmlFilter struct {
  Name          string            `xml:"name"`
  Options       []XmlFilterOption `xml:"option"`
}

// Used internally by xml.Unmarshal to store configuration data from XML scripts.
type XmlGenerator struct {
  XMLName       xml.Name        `xml:"generator"`
  Output        XmlOutput       `xml:"output"`
  Input         XmlInput        `xml:"input"`
  Settings      XmlSettings     `xml:"settings"`
  Filters       []XmlFilter     `xml:"filters>filter"`
}


// Used internally. Parses XML source into intermediate structures.
func importXml(buffer []byte) (config *ToneConfig, err error) {
  xmlGenerator := XmlGenerator{}
  err = xml.Unmarshal(buffer, &xmlGenerator)
  if err != nil { return }

  config, err = processConfigXml(&xmlGenerator)
  return
}


// Used internally. Converts parsed XML input into useful data types, taking defaults into account for omitted input.
func processConfigXml(input *XmlGenerator) (config *ToneConfig, err error) {
  tone := make(ToneConfig)
  config = &tone
  logging.Logln("Processing output settings")
  err = processConfigXmlOutput(input, config)
  if err != nil { return }
  logging.Logln("Processing input settings")
  err = processConfigXmlInput(input, config)
  if err != nil { return }
  logging.Logln("Processing conversion settings")
  err = processConfigXmlSettings(input, config)
  if err != nil { return }
  logging.Logln("Processing filter settings")
  err = processConfigXmlFilters(input, config)
  return
}

// Used internally. Process "output" section.
func processConfigXmlOutput(input *XmlGenerator, config *ToneConfig) error {
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
func processConfigXmlInput(input *XmlGenerator, config *ToneConfig) error {
  (*config)[SECTION_INPUT] = make(ToneMap)

  var static bool
  static = tryParseBool(input.Input.Static, true)
  (*config)[SECTION_INPUT][KEY_INPUT_STATIC] = Bool{static}

  var size int
  size = len(input.Input.Files)
  textSeq := make([]string, size)
  for i := 0; i < size; i++ {
    textSeq[i] = strings.TrimSpace(input.Input.Files[i])
  }
  (*config)[SECTION_INPUT][KEY_INPUT_FILES] = TextArray{textSeq}

  var textVal string
  textVal = fixPath(strings.TrimSpace(input.Input.Sequence.Path))
  if len(textVal) == 0 { textVal = "." }
  for len(textVal) > 1 && (textVal[len(textVal)-1:] == "/" || textVal[len(textVal)-1:] == "\\") { textVal = textVal[:len(textVal)-1] }
  (*config)[SECTION_INPUT][KEY_INPUT_PATH] = Text{textVal}

  textVal = strings.TrimSpace(input.Input.Sequence.Prefix)
  (*config)[SECTION_INPUT][KEY_INPUT_PREFIX] = Text{textVal}

  var intVal int64
  intVal = tryParseInt(input.Input.Sequence.SuffixStart, 0)
  (*config)[SECTION_INPUT][KEY_INPUT_SUFFIX_START] = Int{intVal}

  intVal = tryParseInt(input.Input.Sequence.SuffixEnd, 0)
  (*config)[SECTION_INPUT][KEY_INPUT_SUFFIX_END] = Int{intVal}

  intVal = tryParseInt(input.Input.Sequence.SuffixLength, 1)
  if intVal < 1 || intVal > 16 { return fmt.Errorf("Input>FileSequence>SuffixLength not in range [1,16]: %d", intVal) }
  (*config)[SECTION_INPUT][KEY_INPUT_SUFFIX_LEN] = Int{intVal}

  textVal = strings.TrimSpace(input.Input.Sequence.Ext)
  for len(textVal) > 0 && textVal[0:1] == "." { textVal = textVal[1:] }
  (*config)[SECTION_INPUT][KEY_INPUT_EXT] = Text{textVal}

  return nil
}

// Used internally. Process "settings" section.
func processConfigXmlSettings(input *XmlGenerator, config *ToneConfig) error {
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
  intVal = tryParseInt(input.Settings.Levels, 16)
  if intVal < 2 || intVal > 256 { return fmt.Errorf("Settings>Levels not in range [2, 256]: %d", intVal) }
  (*config)[SECTION_SETTINGS][KEY_LEVELS] = Int{intVal}

  var floatVal float64
  floatVal = tryParseFloat(input.Settings.Scale, 0.125)
  if floatVal <= 0.0 || floatVal > 1.0 { return fmt.Errorf("Settings>Scale not in range (0.0, 1.0]: %f", floatVal) }
  (*config)[SECTION_SETTINGS][KEY_SCALE] = Float{floatVal}

  var boolVal bool
  boolVal = tryParseBool(input.Settings.Threaded, true)
  (*config)[SECTION_SETTINGS][KEY_THREADED] = Bool{boolVal}

  textVal = fixPath(strings.TrimSpace(input.Settings.Presets))
  (*config)[SECTION_SETTINGS][KEY_PRESETS] = Text{textVal}

  return nil
}


func processConfigXmlFilters(input *XmlGenerator, config *ToneConfig) error {
  (*config)[SECTION_FILTERS] = make(ToneMap)

  // process filters sequentially
  for index, filter := range input.Filters {
    f := Filter{ Name: filter.Name, Options: make(map[string]string) }
    for i := 0; i < len(filter.Options); i++ {
      key, value := strings.TrimSpace(filter.Options[i].Key), strings.TrimSpace(filter.Options[i].Value)
      f.Options[key] = value
    }
    (*config)[SECTION_FILTERS][strconv.Itoa(index)] = f
  }

  return nil
}
