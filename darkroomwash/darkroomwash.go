/*
DarkRoom Washer is a command line tool for applying filter chains to image files, based on settings
defined in wash scripts.

DarkRoom is released under the BSD 2-clause license. See LICENSE in the project's root folder for more details.
*/
package main

import (
  "errors"
  "fmt"
  "io"
  "os"
  "path/filepath"
  "regexp"
  "strconv"
  "strings"

  "github.com/visual-discovery/DarkRoom"
  "github.com/visual-discovery/DarkRoom/config"
  "github.com/visual-discovery/DarkRoom/graphics"
  "github.com/InfinityTools/go-logging"
)


const TOOL_NAME = "DarkRoom Washer"

// Pixel padding between tiles of a contact sheet.
const sheetPadding = 1


func main() {
  err := loadArgs(os.Args)
  if err != nil {
    fmt.Printf("%v\n", err)
    os.Exit(1)
  }

  // Setting global options
  if b, x := argsVerbose(); x {
    if b {
      logging.SetVerbosity(logging.LOG)
    } else {
      logging.SetVerbosity(logging.ERROR)
    }
  }
  logging.SetPrefixCaller(false)
  if b, x := argsLogStyle(); x && b {
    logging.SetPrefixTimestamp(true)
    logging.SetPrefixLevel(true)
  } else {
    logging.SetPrefixTimestamp(false)
    logging.SetPrefixLevel(false)
  }

  if _, x := argsVersion(); x {
    darkroom.PrintVersion(TOOL_NAME)
  } else if _, x := argsHelp(); x {
    printHelp()
  } else if argsExtraLength() == 0 {
    printHelp()
  } else {
    logging.Infoln("Starting image wash")
    err = wash()
    if err != nil {
      logging.Errorf("%v\n", err)
      os.Exit(1)
    }
    logging.Infoln("Image wash finished successfully.")
  }
}


func wash() error {
  length := argsExtraLength()
  for idx := 0; idx < length; idx++ {
    scriptFile := argsExtra(idx)
    if len(scriptFile) == 0 { continue }  // should not happen
    if scriptFile == "-" {
      logging.Infof("Starting job %d: (standard input)\n", idx)
    } else {
      logging.Infof("Starting job %d: %s\n", idx, scriptFile)
    }
    err := washJob(scriptFile)
    if err != nil { return fmt.Errorf("Job %d: %v", idx, err) }
    logging.Infof("Finished job %d\n", idx)
  }

  return nil
}


func washJob(scriptFile string) error {
  // consistency checks
  isStdIn := scriptFile == "-"
  if !isStdIn {
    fi, err := os.Stat(scriptFile)
    if err != nil { return err }
    if !fi.Mode().IsRegular() { return fmt.Errorf("File not found: %q", scriptFile) }
  }

  var r io.Reader = nil
  if isStdIn {
    r = os.Stdin
  } else {
    fin, err := os.Open(scriptFile)
    if err != nil { return fmt.Errorf("Cannot open %q: %v", scriptFile, err) }
    defer fin.Close()
    r = fin
  }
  cfg, err := config.ImportConfig(r)
  if err != nil { return fmt.Errorf("Error parsing wash script: %v", err) }

  err = washImages(cfg)
  if err != nil { return err }

  return nil
}


func washImages(cfg *config.WashConfig) error {
  if cfg == nil { return errors.New("No wash script data found") }

  // setting up general options
  threaded, _ := cfg.GetConfigValueBool(config.SECTION_SETTINGS, config.KEY_SETTINGS_THREADED)
  if b, x := argsThreaded(); x { threaded = b }
  darkroom.SetMultiThreaded(threaded)

  resetImage, _ := cfg.GetConfigValueBool(config.SECTION_SETTINGS, config.KEY_SETTINGS_RESET_IMAGE)
  if b, x := argsResetImage(); x { resetImage = b }

  // setting up output options
  outFile, _ := cfg.GetConfigValueText(config.SECTION_OUTPUT, config.KEY_OUTPUT_PATH)
  if s, x := argsOutput(); x { outFile = s }
  outFormat, _ := cfg.GetConfigValueText(config.SECTION_OUTPUT, config.KEY_OUTPUT_FORMAT)
  if s, x := argsFormat(); x { outFormat = s }
  if len(outFormat) == 0 {
    // special: derive from output file extension
    if ext := filepath.Ext(outFile); len(ext) > 1 { outFormat = strings.ToLower(ext[1:]) }
  }
  if len(outFormat) == 0 { return fmt.Errorf("Cannot determine output format of %q", outFile) }
  if dir := filepath.Dir(outFile); !directoryExists(dir) {
    err := os.MkdirAll(dir, 0755)
    if err != nil { return fmt.Errorf("Cannot create output path %q: %v", dir, err) }
  }

  // setting up filters
  filters, err := setupFilters(cfg)
  if err != nil { return err }

  // printing a summary of current wash options (INFO level)
  var sb strings.Builder
  sb.WriteString("Options: ")
  sb.WriteString(fmt.Sprintf("verbose: %v", logging.GetVerbosity() < logging.INFO))
  sb.WriteString(fmt.Sprintf(", threading: %v", darkroom.GetMultiThreaded()))
  sb.WriteString(fmt.Sprintf(", reset image: %v", resetImage))
  sb.WriteString(fmt.Sprintf(", output: %q", outFile))
  sb.WriteString(fmt.Sprintf(", format: %s", outFormat))
  sb.WriteString(fmt.Sprintf(", filters: %d", len(filters)))
  logging.Infoln(sb.String())

  // collecting input files
  inFiles, err := collectInputFiles(cfg)
  if err != nil { return err }

  // importing and washing input images
  logging.Logln("Washing input files")
  isSheet := outFormat == "sheet"
  outputs := make([]*graphics.Bitmap, 0, len(inFiles))
  for idx, fileName := range inFiles {
    washed, err := washFile(fileName, filters, resetImage)
    if err != nil {
      for _, bmp := range outputs { bmp.Dispose() }
      return fmt.Errorf("Input file %d: %v", idx, err)
    }
    if isSheet {
      outputs = append(outputs, washed)
      continue
    }
    outName := outFile
    if len(inFiles) > 1 {
      indexWidth := int64(1)
      for n := len(inFiles) - 1; n > 9; n /= 10 { indexWidth++ }
      outName = config.AssembleIndexedPath(outFile, int64(idx), indexWidth)
    }
    logging.Logf("Exporting %s\n", outName)
    err = exportBitmap(washed, outName, outFormat)
    washed.Dispose()
    if err != nil { return err }
  }
  logging.Logln("Finished washing input files")

  // assembling washed images into a single contact sheet
  if isSheet {
    sheet, err := graphics.BuildSheet(outputs, sheetPadding)
    for _, bmp := range outputs { bmp.Dispose() }
    if err != nil { return err }
    sheetFormat := "png"
    if ext := filepath.Ext(outFile); len(ext) > 1 { sheetFormat = strings.ToLower(ext[1:]) }
    logging.Logf("Exporting %s\n", outFile)
    err = exportBitmap(sheet, outFile, sheetFormat)
    sheet.Dispose()
    if err != nil { return err }
  }

  return nil
}


func setupFilters(cfg *config.WashConfig) ([]darkroom.Filter, error) {
  // initializing filter definitions
  numFilters := cfg.GetConfigFilterLength()
  names := make([]string, numFilters)
  options := make([]map[string]string, numFilters)
  for idx := 0; idx < numFilters; idx++ {
    name, ok := cfg.GetConfigFilterName(idx)
    if !ok { return nil, fmt.Errorf("Empty filter at index=%d", idx) }
    names[idx] = name
    options[idx], _ = cfg.GetConfigFilterOptions(idx)
  }

  // applying override options
  if overrides, x := argsFilterOptions(); x {
    reg := regexp.MustCompile("(0|[1-9][0-9]*):([^=]+)=(.*)")
    for _, option := range overrides {
      values := reg.FindStringSubmatch(option)  // should return []string{"full-string", "idx", "key", "value"}
      if values == nil || len(values) < 4 { return nil, fmt.Errorf("Invalid filter option: %s", option) }
      index, err := strconv.Atoi(strings.TrimSpace(values[1]))
      if err != nil { return nil, fmt.Errorf("Invalid filter index: %s", values[1]) }
      key, value := strings.TrimSpace(values[2]), strings.TrimSpace(values[3])
      if index < 0 || index >= numFilters {
        logging.Warnf("Filter index out of bounds: %d. Skipping option...\n", index)
        continue
      }
      logging.Logf("Filter #%d (%s): Overriding option %s = %s\n", index, names[index], key, value)
      options[index][key] = value
    }
  }

  // constructing normalized filter records
  filters := make([]darkroom.Filter, numFilters)
  for idx := 0; idx < numFilters; idx++ {
    f, err := darkroom.CreateFilter(names[idx], options[idx])
    if err != nil { return nil, fmt.Errorf("Filter %q (index=%d): %v", names[idx], idx, err) }
    filters[idx] = f
  }

  return filters, nil
}


// Returns the input files defined by the wash script. Considers both static file lists and
// generated file sequences.
func collectInputFiles(cfg *config.WashConfig) ([]string, error) {
  files, _ := cfg.GetConfigValueTextSeq(config.SECTION_INPUT, config.KEY_INPUT_FILES)
  if len(files) > 0 {
    for idx, fileName := range files {
      if !fileExists(fileName) { return nil, fmt.Errorf("Input file %d does not exist: %q", idx, fileName) }
    }
    return files, nil
  }

  // falling back to file sequence definition
  path, _ := cfg.GetConfigValueText(config.SECTION_INPUT, config.KEY_INPUT_PATH)
  prefix, _ := cfg.GetConfigValueText(config.SECTION_INPUT, config.KEY_INPUT_PREFIX)
  ext, _ := cfg.GetConfigValueText(config.SECTION_INPUT, config.KEY_INPUT_EXT)
  suffixStart, _ := cfg.GetConfigValueInt(config.SECTION_INPUT, config.KEY_INPUT_SUFFIX_START)
  suffixEnd, _ := cfg.GetConfigValueInt(config.SECTION_INPUT, config.KEY_INPUT_SUFFIX_END)
  suffixLen, _ := cfg.GetConfigValueInt(config.SECTION_INPUT, config.KEY_INPUT_SUFFIX_LEN)

  // sequence may be incremented or decremented
  var inc int64
  if suffixEnd < suffixStart { inc = -1; suffixEnd-- } else { inc = 1; suffixEnd++ }
  files = make([]string, 0)
  for index := suffixStart; index != suffixEnd; index += inc {
    fileName := config.AssembleFilePath(path, prefix, ext, index, suffixLen)
    if !fileExists(fileName) { return nil, fmt.Errorf("Input file does not exist: %q", fileName) }
    files = append(files, fileName)
  }

  return files, nil
}


// Washes a single input image and returns the filtered result. The returned bitmap is owned by
// the caller.
func washFile(fileName string, filters []darkroom.Filter, resetImage bool) (*graphics.Bitmap, error) {
  logging.Logf("Importing %s\n", fileName)
  bmp, err := graphics.ImportFile(fileName)
  if err != nil { return nil, err }

  d := darkroom.CreateNew(bmp.GetImage())
  bmp.Dispose()
  defer d.Dispose()
  if d.Error() != nil { return nil, d.Error() }

  d.SetResetImage(resetImage)
  d.AddFilters(filters...)
  washed, err := d.Wash()
  if err != nil { return nil, err }
  if washed == d.GetImage() {
    // detach result from the session
    washed, err = washed.Clone()
    if err != nil { return nil, err }
  }

  return washed, nil
}


// Writes the washed bitmap to the specified output file.
func exportBitmap(bmp *graphics.Bitmap, fileName, format string) error {
  fout, err := os.Create(fileName)
  if err != nil { return fmt.Errorf("Cannot create %q: %v", fileName, err) }
  defer fout.Close()

  err = bmp.Export(fout, format)
  if err != nil { return fmt.Errorf("Exporting %q: %v", fileName, err) }
  return nil
}


func printHelp() {
  fmt.Printf("Usage: %s [options] washscript [washscript2 ...]\n", os.Args[0])
  const helpText = "Applies the filter chains defined in wash scripts to image files.\n" +
                   "\n" +
                // "...............................................................................\n" +
                   "Options:\n" +
                   "  --verbose                 Show additional log messages during the wash\n" +
                   "                            process.\n" +
                   "  --silent                  Suppress any log messages during the wash process\n" +
                   "                            except for errors.\n" +
                   "  --log-style               Print log messages in log style, complete with\n" +
                   "                            timestamp and log level.\n" +
                   "  --threaded                Enable multithreading for wash operations. May\n" +
                   "                            speed up the wash process on multi-core systems.\n" +
                   "                            Enabled by default if multiple CPU cores are\n" +
                   "                            detected.\n" +
                   "  --no-threaded             Disable multithreading for wash operations.\n" +
                   "  --reset                   Restore the working image from the original after\n" +
                   "                            each wash operation. Overrides setting in the wash\n" +
                   "                            script.\n" +
                   "  --no-reset                Keep the washed image as baseline for subsequent\n" +
                   "                            wash operations. Overrides setting in the wash\n" +
                   "                            script.\n" +
                   "  --output file             Set output file. Overrides setting in the wash\n" +
                   "                            script.\n" +
                   "  --format type             Set output format. The following types are\n" +
                   "                            recognized: png, bmp, gif, jpg, jpeg, drw, drwc\n" +
                   "                            and sheet. Type \"sheet\" packs all washed images\n" +
                   "                            of a job into a single contact sheet. Overrides\n" +
                   "                            setting in the wash script.\n" +
                   "  --filter idx:key=value    Set or override a filter option. 'idx' indicates\n" +
                   "                            the filter index in the list of filters, starting\n" +
                   "                            at index 0. 'key' and 'value' define a single\n" +
                   "                            filter option key and value pair. Wrap the whole\n" +
                   "                            definition in quotes if it contains spaces.\n" +
                   "                            Add multiple --filter instances to set or override\n" +
                   "                            multiple filter options.\n" +
                   "  --help                    Print this help and terminate.\n" +
                   "  --version                 Print version information and terminate.\n" +
                   "\n" +
                   "Note: Use minus sign (-) in place of washscript to read script data from\n" +
                   "      standard input."
  fmt.Println(helpText)
}


// Used internally. Returns whether the specified filename points to a regular existing file.
func fileExists(file string) bool {
  if len(file) == 0 { return false }
  fi, err := os.Stat(file)
  if err != nil { return false }
  return fi.Mode().IsRegular()
}

// Used internally. Returns whether the specified path points to an existing directory.
func directoryExists(dir string) bool {
  if len(dir) == 0 { return true }  // special
  fi, err := os.Stat(dir)
  if err != nil { return false }
  return fi.Mode().IsDir()
}
