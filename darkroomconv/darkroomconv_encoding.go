package main
// Handles wash script encoding details.

import (
  "encoding/xml"
  "encoding/json"
  "fmt"
  "io"
  "os"
  "strconv"

  "github.com/visual-discovery/DarkRoom/config"
  "github.com/visual-discovery/DarkRoom/graphics"
  "github.com/InfinityTools/go-logging"
)


// Returns a pointer to a XmlWasher structure initialized with the default values.
func getDefaultXml() *config.XmlWasher {
  xmlData := config.XmlWasher{}
  xmlData.Output.Path = "washed.png"
  xmlData.Output.Format = ""
  xmlData.Input.Files = make([]string, 0)
  xmlData.Input.Sequence.Path = ""
  xmlData.Input.Sequence.Prefix = ""
  xmlData.Input.Sequence.SuffixStart = "0"
  xmlData.Input.Sequence.SuffixEnd = "0"
  xmlData.Input.Sequence.SuffixLength = "1"
  xmlData.Input.Sequence.Ext = ""
  xmlData.Settings.Threaded = "true"
  xmlData.Settings.ResetImage = "true"
  xmlData.Filters = make([]config.XmlFilter, 0)
  return &xmlData
}

// Returns a pointer to a JsonWasher structure initialized with the default values.
func getDefaultJson() *config.JsonWasher {
  jsonData := config.JsonWasher{}
  jsonData.Output.File = "washed.png"
  jsonData.Output.Format = ""
  jsonData.Input.Files = make([]string, 0)
  jsonData.Input.FileSequence.Path = ""
  jsonData.Input.FileSequence.Prefix = ""
  jsonData.Input.FileSequence.SuffixStart = 0
  jsonData.Input.FileSequence.SuffixEnd = 0
  jsonData.Input.FileSequence.SuffixLength = 1
  jsonData.Input.FileSequence.Ext = ""
  jsonData.Settings.Threaded = true
  jsonData.Settings.ResetImage = true
  jsonData.Filters = make([]config.JsonFilter, 0)
  return &jsonData
}


// Handles creation and output of XML wash scripts.
func generateXml(w io.Writer, compact bool) error {
  if w == nil { w = os.Stdout }

  data := getDefaultXml()

  // Adding options
  if s, x := argsWashOutput(); x {
    data.Output.Path = s
  }
  if s, x := argsWashFormat(); x {
    data.Output.Format = s
  }
  if b, x := argsThreaded(); x {
    data.Settings.Threaded = strconv.FormatBool(b)
  }
  if b, x := argsResetImage(); x {
    data.Settings.ResetImage = strconv.FormatBool(b)
  }

  // Adding filter definitions
  if numFilters := argsFilterLength(); numFilters > 0 {
    for i := 0; i < numFilters; i++ {
      if filter, x := argsFilter(i); x {
        xmlFilter := config.XmlFilter{Name: filter.name, Options: make([]config.XmlFilterOption, 0)}
        for _, option := range filter.options {
          xmlFilter.Options = append(xmlFilter.Options, config.XmlFilterOption{Key: option.key, Value: option.value})
        }
        data.Filters = append(data.Filters, xmlFilter)
      } else {
        logging.Logf("Filter %d not defined. Skipping.\n", i)
      }
    }
  }

  // Processing image input files
  err := collectImages(&data.Input.Files)
  if err != nil { return err }

  // Writing data to output
  logging.Logln("Generating XML wash script data")
  var buf []byte = nil
  if compact {
    buf, err = xml.Marshal(data)
  } else {
    buf, err = xml.MarshalIndent(data, "", "    ")
  }
  if err != nil { return fmt.Errorf("Encoding XML data: %v", err) }

  _, err = w.Write([]byte(xml.Header))
  if err != nil { return fmt.Errorf("Writing XML data: %v", err) }
  _, err = w.Write(buf)
  if err != nil { return fmt.Errorf("Writing XML data: %v", err) }

  return nil
}


// Handles creation and output of JSON wash scripts.
func generateJson(w io.Writer, compact bool) error {
  if w == nil { w = os.Stdout }

  data := getDefaultJson()

  // Adding options
  if s, x := argsWashOutput(); x {
    data.Output.File = s
  }
  if s, x := argsWashFormat(); x {
    data.Output.Format = s
  }
  if b, x := argsThreaded(); x {
    data.Settings.Threaded = b
  }
  if b, x := argsResetImage(); x {
    data.Settings.ResetImage = b
  }

  // Adding filter definitions
  if numFilters := argsFilterLength(); numFilters > 0 {
    for i := 0; i < numFilters; i++ {
      if filter, x := argsFilter(i); x {
        jsonFilter := config.JsonFilter{Name: filter.name, Options: make([]config.JsonFilterOption, 0)}
        for _, option := range filter.options {
          jsonFilter.Options = append(jsonFilter.Options, config.JsonFilterOption{Key: option.key, Value: option.value})
        }
        data.Filters = append(data.Filters, jsonFilter)
      } else {
        logging.Logf("Filter %d not defined. Skipping.\n", i)
      }
    }
  }

  // Processing image input files
  err := collectImages(&data.Input.Files)
  if err != nil { return err }

  // Writing data to output
  logging.Logln("Generating JSON wash script data")
  var buf []byte = nil
  if compact {
    buf, err = json.Marshal(data)
  } else {
    buf, err = json.MarshalIndent(data, "", "    ")
  }
  if err != nil { return fmt.Errorf("Encoding JSON data: %v", err) }

  _, err = w.Write(buf)
  if err != nil { return fmt.Errorf("Writing JSON data: %v", err) }

  return nil
}


// Used internally. Probes the image input files and appends them to the given file list.
func collectImages(files *[]string) error {
  numImages := argsExtraLength()
  if numImages == 0 { return nil }

  logging.Log("Probing image files")
  for i := 0; i < numImages; i++ {
    fileName := argsExtra(i)
    bmp, err := graphics.ImportFile(fileName)
    if err != nil { return fmt.Errorf("Image file %q: %v", fileName, err) }
    bmp.Dispose()
    *files = append(*files, fileName)
    logging.LogProgressDot(i, numImages, 79 - 19)    // 19 is length of prefix string above
  }
  logging.OverridePrefix(false, false, false).Logln("")

  return nil
}
