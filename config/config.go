/*
Package config translates wash scripts from XML or JSON sources into a preprocessed map structure
for quick access.

A wash script describes a complete wash job: where to find the input images, which filters to run
over them in what order, and where to write the results. Scripts are parsed into intermediate
structures by encoding/xml or encoding/json and converted into a WashConfig map afterwards, where
omitted entries have been replaced by their defaults and all values have been validated.

DarkRoom is released under the BSD 2-clause license. See LICENSE in the project's root folder for more details.
*/
package config

import (
  "bytes"
  "errors"
  "fmt"
  "io"
  "strconv"
  "strings"

  "github.com/InfinityTools/go-ietools"
  "github.com/InfinityTools/go-logging"
)

// Available wash script section names
const (
  SECTION_OUTPUT    = "output"
  SECTION_INPUT     = "input"
  SECTION_SETTINGS  = "settings"
  SECTION_FILTERS   = "filters"
)

// Available wash script key names
const (
  KEY_OUTPUT_PATH           = "output_path"
  KEY_OUTPUT_FORMAT         = "output_format"
  KEY_INPUT_PATH            = "input_path"
  KEY_INPUT_PREFIX          = "input_prefix"
  KEY_INPUT_SUFFIX_START    = "input_suffix_start"
  KEY_INPUT_SUFFIX_END      = "input_suffix_end"
  KEY_INPUT_SUFFIX_LEN      = "input_suffix_len"
  KEY_INPUT_EXT             = "input_ext"
  KEY_INPUT_FILES           = "input_files"
  KEY_SETTINGS_THREADED     = "settings_threaded"
  KEY_SETTINGS_RESET_IMAGE  = "settings_reset_image"
)

// WashMap maps key => value associations.
type WashMap map[string]Variant

// WashConfig maps section => key => value.
type WashConfig map[string]WashMap


// ImportConfig constructs a WashConfig object from wash script data found in the source wrapped by
// the Reader object. Both XML and JSON sources are accepted. The format is detected from the first
// non-whitespace character of the stream.
func ImportConfig(r io.Reader) (config *WashConfig, err error) {
  // reading script data into byte buffer
  logging.Logln("Loading wash script data")
  buffer := make([]byte, 1024)
  totalRead := 0
  for {
    var bytesRead int
    bytesRead, err = r.Read(buffer[totalRead:])
    totalRead += bytesRead
    if err != nil { break }
    if totalRead == len(buffer) {
      buffer = append(buffer, make([]byte, len(buffer))...)
    }
  }
  if err != nil && err != io.EOF { return }
  err = nil
  if totalRead < len(buffer) {
    buffer = buffer[:totalRead]
  }

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
        err = errors.New("Wash script: Unrecognized format")
      }
      break
    }
    ofs++
  }
  if err != nil { return }

  // parsing source into preprocessed map structure
  if isXml {
    config, err = importXml(buffer)
  } else {
    config, err = importJson(buffer)
  }
  if err != nil { return }

  logging.Logln("Finished loading wash script data")
  return
}


// GetConfigValueBool returns the bool value at the specified section > key location.
// ok indicates whether the value exists.
func (cfg *WashConfig) GetConfigValueBool(section, key string) (retVal bool, ok bool) {
  value, ok := (*cfg)[section][key].(VarBool)
  if !ok { return }
  retVal = value.ToBool()
  return
}

// GetConfigValueInt returns the int value at the specified section > key location.
// ok indicates whether the value exists.
func (cfg *WashConfig) GetConfigValueInt(section, key string) (retVal int64, ok bool) {
  value, ok := (*cfg)[section][key].(VarInt)
  if !ok { return }
  retVal = value.ToInt()
  return
}

// GetConfigValueText returns the string value at the specified section > key location.
// ok indicates whether the value exists.
func (cfg *WashConfig) GetConfigValueText(section, key string) (retVal string, ok bool) {
  value, ok := (*cfg)[section][key].(Variant)
  if !ok { return }
  retVal = value.ToString()
  return
}

// GetConfigValueTextSeq returns the string sequence at the specified section > key location.
// ok indicates whether the value exists.
func (cfg *WashConfig) GetConfigValueTextSeq(section, key string) (retVal []string, ok bool) {
  value, ok := (*cfg)[section][key].(VarTextArray)
  if !ok { return }
  retVal = value.ToTextArray()
  return
}

// GetConfigFilterLength returns the number of filter definitions stored in the wash script.
func (cfg *WashConfig) GetConfigFilterLength() int {
  return len((*cfg)[SECTION_FILTERS])
}

// GetConfigFilterName returns the name of the filter definition at the specified index.
// ok indicates whether the filter exists.
func (cfg *WashConfig) GetConfigFilterName(index int) (retVal string, ok bool) {
  value, ok := (*cfg)[SECTION_FILTERS][strconv.Itoa(index)].(VarFilterMap)
  if !ok { return }
  retVal = value.GetName()
  return
}

// GetConfigFilterOptions returns the option map of the filter definition at the specified index.
// ok indicates whether the filter exists. The returned map is a copy and can be modified freely.
func (cfg *WashConfig) GetConfigFilterOptions(index int) (retVal map[string]string, ok bool) {
  value, ok := (*cfg)[SECTION_FILTERS][strconv.Itoa(index)].(VarFilterMap)
  if ok {
    retVal = value.GetOptions()
  } else {
    retVal = make(map[string]string)
  }
  return
}


// Used internally. Checks output format names. An empty format is allowed and derived from the
// output file extension later.
func validateOutputFormat(format string) error {
  switch format {
    case "", "png", "bmp", "gif", "jpg", "jpeg", "drw", "drwc", "sheet":
      return nil
  }
  return fmt.Errorf("Output>Format: Unrecognized output format: %q", format)
}

// Used internally. Attempts to convert "value" into a bool. Returns "def" if conversion fails.
func tryParseBool(value string, def bool) bool {
  retVal, err := strconv.ParseBool(strings.TrimSpace(value))
  if err != nil { retVal = def }
  return retVal
}

// Used internally. Attempts to convert "value" into an int64. Returns "def" if conversion fails.
func tryParseInt(value string, def int64) int64 {
  retVal, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
  if err != nil { retVal = def }
  return retVal
}

// Used internally. Fixes Windows-specific path separators.
func fixPath(path string) string {
  if ietools.PATH_SEPARATOR != "/" {
    path = strings.Replace(path, ietools.PATH_SEPARATOR, "/", -1)
  }
  return path
}
