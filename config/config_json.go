package config
// Parse functionality for JSON structures.

import (
  "encoding/json"
  "fmt"
  "strconv"
  "strings"

  "github.com/InfinityTools/go-logging"
)

// Used by json.Unmarshal to store output settings. The structures in this file are also used by
// darkroomconv to emit preinitialized wash scripts.
type JsonOutput struct {
  File          string  `json:"file"`
  Format        string  `json:"format"`
}

// Used by json.Unmarshal to store input file sequence settings.
type JsonInputSequence struct {
  Path          string  `json:"path"`
  Prefix        string  `json:"prefix"`
  SuffixStart   int64   `json:"suffixstart"`
  SuffixEnd     int64   `json:"suffixend"`
  SuffixLength  int64   `json:"suffixlength"`
  Ext           string  `json:"ext"`
}

// Used by json.Unmarshal to store input settings.
type JsonInput struct {
  Files         []string           `json:"files"`
  FileSequence  JsonInputSequence  `json:"filesequence"`
}

// Used by json.Unmarshal to store wash settings.
type JsonSettings struct {
  Threaded      bool  `json:"threaded"`
  ResetImage    bool  `json:"resetimage"`
}

// Used by json.Unmarshal to store a single filter option.
type JsonFilterOption struct {
  Key           string  `json:"key"`
  Value         string  `json:"value"`
}

// Used by json.Unmarshal to store a single filter definition.
type JsonFilter struct {
  Name          string              `json:"name"`
  Options       []JsonFilterOption  `json:"options"`
}

// Used by json.Unmarshal to store wash script data from JSON sources.
type JsonWasher struct {
  Output        JsonOutput    `json:"output"`
  Input         JsonInput     `json:"input"`
  Settings      JsonSettings  `json:"settings"`
  Filters       []JsonFilter  `json:"filters"`
}


// Used internally. Parses JSON source into intermediate structures. Fields with non-zero defaults
// are seeded before unmarshalling, so omitted entries fall back to their documented defaults.
func importJson(buffer []byte) (config *WashConfig, err error) {
  jsonWasher := JsonWasher{ Settings: JsonSettings{Threaded: true, ResetImage: true} }
  jsonWasher.Input.FileSequence.SuffixLength = 1
  err = json.Unmarshal(buffer, &jsonWasher)
  if err != nil { return }

  config, err = processConfigJson(&jsonWasher)
  return
}


// Used internally. Converts intermediate structures into a WashConfig map, applying defaults and
// validating values on the way.
func processConfigJson(input *JsonWasher) (config *WashConfig, err error) {
  washConfig := make(WashConfig)
  config = &washConfig

  logging.Logln("Processing output section")
  err = processConfigJsonOutput(input, config)
  if err != nil { return }
  logging.Logln("Processing input section")
  err = processConfigJsonInput(input, config)
  if err != nil { return }
  logging.Logln("Processing settings section")
  err = processConfigJsonSettings(input, config)
  if err != nil { return }
  logging.Logln("Processing filters section")
  err = processConfigJsonFilters(input, config)
  return
}


// Used internally. Processes entries from the "output" section.
func processConfigJsonOutput(input *JsonWasher, config *WashConfig) error {
  (*config)[SECTION_OUTPUT] = make(WashMap)

  textVal := fixPath(strings.TrimSpace(input.Output.File))
  for len(textVal) > 1 && textVal[len(textVal)-1:] == "/" { textVal = textVal[:len(textVal)-1] }
  if len(textVal) == 0 { textVal = "washed.png" }
  (*config)[SECTION_OUTPUT][KEY_OUTPUT_PATH] = Text{textVal}

  textVal = strings.ToLower(strings.TrimSpace(input.Output.Format))
  if err := validateOutputFormat(textVal); err != nil { return err }
  (*config)[SECTION_OUTPUT][KEY_OUTPUT_FORMAT] = Text{textVal}

  return nil
}


// Used internally. Processes entries from the "input" section.
func processConfigJsonInput(input *JsonWasher, config *WashConfig) error {
  (*config)[SECTION_INPUT] = make(WashMap)

  size := len(input.Input.Files)
  textSeq := make([]string, size)
  for i := 0; i < size; i++ {
    textSeq[i] = fixPath(strings.TrimSpace(input.Input.Files[i]))
  }
  (*config)[SECTION_INPUT][KEY_INPUT_FILES] = TextArray{textSeq}

  textVal := fixPath(strings.TrimSpace(input.Input.FileSequence.Path))
  for len(textVal) > 1 && textVal[len(textVal)-1:] == "/" { textVal = textVal[:len(textVal)-1] }
  if len(textVal) == 0 { textVal = "." }
  (*config)[SECTION_INPUT][KEY_INPUT_PATH] = Text{textVal}

  textVal = strings.TrimSpace(input.Input.FileSequence.Prefix)
  (*config)[SECTION_INPUT][KEY_INPUT_PREFIX] = Text{textVal}

  (*config)[SECTION_INPUT][KEY_INPUT_SUFFIX_START] = Int{input.Input.FileSequence.SuffixStart}

  (*config)[SECTION_INPUT][KEY_INPUT_SUFFIX_END] = Int{input.Input.FileSequence.SuffixEnd}

  intVal := input.Input.FileSequence.SuffixLength
  if intVal < 1 || intVal > 16 { return fmt.Errorf("Input>FileSequence>SuffixLength not in range [1,16]: %d", intVal) }
  (*config)[SECTION_INPUT][KEY_INPUT_SUFFIX_LEN] = Int{intVal}

  textVal = strings.TrimSpace(input.Input.FileSequence.Ext)
  for len(textVal) > 0 && textVal[0:1] == "." { textVal = textVal[1:] }
  (*config)[SECTION_INPUT][KEY_INPUT_EXT] = Text{textVal}

  return nil
}


// Used internally. Processes entries from the "settings" section.
func processConfigJsonSettings(input *JsonWasher, config *WashConfig) error {
  (*config)[SECTION_SETTINGS] = make(WashMap)

  (*config)[SECTION_SETTINGS][KEY_SETTINGS_THREADED] = Bool{input.Settings.Threaded}

  (*config)[SECTION_SETTINGS][KEY_SETTINGS_RESET_IMAGE] = Bool{input.Settings.ResetImage}

  return nil
}


// Used internally. Processes entries from the "filters" section. Filter order is preserved.
func processConfigJsonFilters(input *JsonWasher, config *WashConfig) error {
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
