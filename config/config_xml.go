package config
// Parse functionality for XML structures.

import (
  "encoding/xml"
  "fmt"
  "strconv"
  "strings"

  "github.com/InfinityTools/go-logging"
)

// Used by xml.Unmarshal to store output settings. The structures in this file are also used by
// darkroomconv to emit preinitialized wash scripts.
type XmlOutput struct {
  Path          string      `xml:"file"`
  Format        string      `xml:"format"`
}

// Used by xml.Unmarshal to store input file sequence settings.
type XmlInputSequence struct {
  Path          string      `xml:"path"`
  Prefix        string      `xml:"prefix"`
  SuffixStart   string      `xml:"suffixstart"`
  SuffixEnd     string      `xml:"suffixend"`
  SuffixLength  string      `xml:"suffixlength"`
  Ext           string      `xml:"ext"`
}

// Used by xml.Unmarshal to store input settings.
type XmlInput struct {
  Sequence      XmlInputSequence  `xml:"filesequence"`
  Files         []string          `xml:"files>path"`
}

// Used by xml.Unmarshal to store wash settings.
type XmlSettings struct {
  Threaded      string      `xml:"threaded"`
  ResetImage    string      `xml:"resetimage"`
}

// Used by xml.Unmarshal to store a single filter option.
type XmlFilterOption struct {
  Key           string      `xml:"key"`
  Value         string      `xml:"value"`
}

// Used by xml.Unmarshal to store a single filter definition.
type XmlFilter struct {
  Name          string             `xml:"name"`
  Options       []XmlFilterOption  `xml:"option"`
}

// Used by xml.Unmarshal to store wash script data from XML sources.
type XmlWasher struct {
  XMLName       xml.Name     `xml:"washer"`
  Output        XmlOutput    `xml:"output"`
  Input         XmlInput     `xml:"input"`
  Settings      XmlSettings  `xml:"settings"`
  Filters       []XmlFilter  `xml:"filters>filter"`
}


// Used internally. Parses XML source into intermediate structures.
func importXml(buffer []byte) (config *WashConfig, err error) {
  xmlWasher := XmlWasher{}
  err = xml.Unmarshal(buffer, &xmlWasher)
  if err != nil { return }

  config, err = processConfigXml(&xmlWasher)
  return
}


// Used internally. Converts intermediate structures into a WashConfig map, applying defaults and
// validating values on the way.
func processConfigXml(input *XmlWasher) (config *WashConfig, err error) {
  washConfig := make(WashConfig)
  config = &washConfig

  logging.Logln("Processing output section")
  err = processConfigXmlOutput(input, config)
  if err != nil { return }
  logging.Logln("Processing input section")
  err = processConfigXmlInput(input, config)
  if err != nil { return }
  logging.Logln("Processing settings section")
  err = processConfigXmlSettings(input, config)
  if err != nil { return }
  logging.Logln("Processing filters section")
  err = processConfigXmlFilters(input, config)
  return
}


// Used internally. Processes entries from the "output" section.
func processConfigXmlOutput(input *XmlWasher, config *WashConfig) error {
  (*config)[SECTION_OUTPUT] = make(WashMap)

  textVal := fixPath(strings.TrimSpace(input.Output.Path))
  for len(textVal) > 1 && textVal[len(textVal)-1:] == "/" { textVal = textVal[:len(textVal)-1] }
  if len(textVal) == 0 { textVal = "washed.png" }
  (*config)[SECTION_OUTPUT][KEY_OUTPUT_PATH] = Text{textVal}

  textVal = strings.ToLower(strings.TrimSpace(input.Output.Format))
  if err := validateOutputFormat(textVal); err != nil { return err }
  (*config)[SECTION_OUTPUT][KEY_OUTPUT_FORMAT] = Text{textVal}

  return nil
}


// Used internally. Processes entries from the "input" section.
func processConfigXmlInput(input *XmlWasher, config *WashConfig) error {
  (*config)[SECTION_INPUT] = make(WashMap)

  size := len(input.Input.Files)
  textSeq := make([]string, size)
  for i := 0; i < size; i++ {
    textSeq[i] = fixPath(strings.TrimSpace(input.Input.Files[i]))
  }
  (*config)[SECTION_INPUT][KEY_INPUT_FILES] = TextArray{textSeq}

  textVal := fixPath(strings.TrimSpace(input.Input.Sequence.Path))
  for len(textVal) > 1 && textVal[len(textVal)-1:] == "/" { textVal = textVal[:len(textVal)-1] }
  if len(textVal) == 0 { textVal = "." }
  (*config)[SECTION_INPUT][KEY_INPUT_PATH] = Text{textVal}

  textVal = strings.TrimSpace(input.Input.Sequence.Prefix)
  (*config)[SECTION_INPUT][KEY_INPUT_PREFIX] = Text{textVal}

  intVal := tryParseInt(input.Input.Sequence.SuffixStart, 0)
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


// Used internally. Processes entries from the "settings" section.
func processConfigXmlSettings(input *XmlWasher, config *WashConfig) error {
  (*config)[SECTION_SETTINGS] = make(WashMap)

  boolVal := tryParseBool(input.Settings.Threaded, true)
  (*config)[SECTION_SETTINGS][KEY_SETTINGS_THREADED] = Bool{boolVal}

  boolVal = tryParseBool(input.Settings.ResetImage, true)
  (*config)[SECTION_SETTINGS][KEY_SETTINGS_RESET_IMAGE] = Bool{boolVal}

  return nil
}


// Used internally. Processes entries from the "filters" section. Filter order is preserved.
func processConfigXmlFilters(input *XmlWasher, config *WashConfig) error {
  (*config)[SECTION_FILTERS] = make(WashMap)

  for index, filter := range input.Filters {
    f := Filter{ Name: strings.TrimSpace(filter.Name), Options: make(map[string]string) }
    for _, option := range filter.Options {
      key, value := strings.TrimSpace(option.Key), strings.TrimSpace(option.Value)
      f.Options[key] = value
    }
    (*config)[SECTION_FILTERS][strconv.Itoa(index)] = f
  }

  return nil
}
