package main
// Handles command line arguments for darkroomconv.

import (
  "errors"
  "fmt"
  "os"
  "strings"

  "github.com/InfinityTools/go-cmdargs"
  "github.com/InfinityTools/go-logging"
)

const (
  CMDOPT_HELP = "help"
  CMDOPT_VERSION = "version"
  CMDOPT_VERBOSE = "verbose"
  CMDOPT_SILENT = "silent"
  CMDOPT_LOG_STYLE = "log-style"
  CMDOPT_COMPACT = "compact"
  CMDOPT_OUTPUT_TYPE = "output-type"
  CMDOPT_OUTPUT = "output"
  CMDOPT_WASH_OUTPUT = "wash-output"
  CMDOPT_WASH_FORMAT = "wash-format"
  CMDOPT_THREADED = "threaded"
  CMDOPT_NO_THREADED = "no-threaded"
  CMDOPT_RESET = "reset"
  CMDOPT_NO_RESET = "no-reset"
  CMDOPT_FILTER = "filter"
)

type OptBool struct { value bool; set bool }
type OptText struct { value string; set bool }
type OptFilterOption struct { key, value string }
type OptFilter struct { name string; options []OptFilterOption }

type CmdOptions struct {
  help           OptBool
  version        OptBool
  verbose        OptBool
  logStyle       OptBool
  compact        OptBool
  outputType     OptText
  output         OptText
  washOutput     OptText
  washFormat     OptText
  threaded       OptBool
  resetImage     OptBool
  filters        []OptFilter
  optionsLength  int
  argSelf        string
  argsExtra      []string
}

var cmdOptions  CmdOptions


func loadArgs(args []string) error {
  params := cmdargs.Create()
  params.AddParameter(CMDOPT_HELP, nil, 0)
  params.AddParameter(CMDOPT_VERSION, nil, 0)
  params.AddParameter(CMDOPT_VERBOSE, nil, 0)
  params.AddParameter(CMDOPT_SILENT, nil, 0)
  params.AddParameter(CMDOPT_LOG_STYLE, nil, 0)
  params.AddParameter(CMDOPT_COMPACT, nil, 0)
  params.AddParameter(CMDOPT_OUTPUT_TYPE, nil, 1)
  params.AddParameter(CMDOPT_OUTPUT, nil, 1)
  params.AddParameter(CMDOPT_WASH_OUTPUT, nil, 1)
  params.AddParameter(CMDOPT_WASH_FORMAT, nil, 1)
  params.AddParameter(CMDOPT_THREADED, nil, 0)
  params.AddParameter(CMDOPT_NO_THREADED, nil, 0)
  params.AddParameter(CMDOPT_RESET, nil, 0)
  params.AddParameter(CMDOPT_NO_RESET, nil, 0)
  params.AddParameter(CMDOPT_FILTER, nil, 1)

  err := params.Evaluate(args)
  if err != nil { return err }

  // validating extra arguments
  cmdOptions.argSelf = params.GetArgSelf()
  cmdOptions.argsExtra = make([]string, 0)
  for i := 0; i < params.GetArgExtraLength(); i++ {
    s := params.GetArgExtra(i).ToString()
    // Expanding wildcard
    expanded := params.GetExpandedArgExtra(i)
    if len(expanded) == 0 { expanded = []string{s} }  // falling back to check directly
    for _, name := range expanded {
      fi, err := os.Stat(name)
      if err != nil { return fmt.Errorf("Image file at %d: %v", len(cmdOptions.argsExtra), err) }
      if !fi.Mode().IsRegular() { return fmt.Errorf("Image file does not exist: %q", name) }
      cmdOptions.argsExtra = append(cmdOptions.argsExtra, name)
    }
  }

  // validating options
  cmdOptions.filters = make([]OptFilter, 0)
  cmdOptions.optionsLength = 0
  for idx := 0; idx < params.GetArgLength(); idx++ {
    arg, err := params.GetArgAt(idx)
    if err != nil {
      logging.Warnf("Could not parse command line option at index %d. Skipping...\n", idx)
      continue
    }
    switch arg.Name {
      case CMDOPT_HELP:
        if !cmdOptions.help.set { cmdOptions.optionsLength++ }
        cmdOptions.help = OptBool{true, true}
        return nil
      case CMDOPT_VERSION:
        if !cmdOptions.version.set { cmdOptions.optionsLength++ }
        cmdOptions.version = OptBool{true, true}
        return nil
      case CMDOPT_VERBOSE:
        if !cmdOptions.verbose.set { cmdOptions.optionsLength++ }
        cmdOptions.verbose = OptBool{true, true}
      case CMDOPT_SILENT:
        if !cmdOptions.verbose.set { cmdOptions.optionsLength++ }
        cmdOptions.verbose = OptBool{false, true}
      case CMDOPT_LOG_STYLE:
        if !cmdOptions.logStyle.set { cmdOptions.optionsLength++ }
        cmdOptions.logStyle = OptBool{true, true}
      case CMDOPT_COMPACT:
        if !cmdOptions.compact.set { cmdOptions.optionsLength++ }
        cmdOptions.compact = OptBool{true, true}
      case CMDOPT_OUTPUT_TYPE:
        if !cmdOptions.outputType.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          s := strings.ToLower(arg.Arguments[0].ToString())
          switch s {
            case "xml", "json":
            default:
              return fmt.Errorf("Option %q: Unrecognized output type %q", arg.Name, arg.Arguments[0].ToString())
          }
          cmdOptions.outputType = OptText{s, true}
        }
      case CMDOPT_OUTPUT:
        if !cmdOptions.output.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          s := arg.Arguments[0].ToString()
          if len(s) == 0 { return fmt.Errorf("Option %q: No script output file specified", arg.Name) }
          cmdOptions.output = OptText{s, true}
        }
      case CMDOPT_WASH_OUTPUT:
        if !cmdOptions.washOutput.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          s := arg.Arguments[0].ToString()
          if len(s) == 0 { return fmt.Errorf("Option %q: No wash output file specified", arg.Name) }
          cmdOptions.washOutput = OptText{s, true}
        }
      case CMDOPT_WASH_FORMAT:
        if !cmdOptions.washFormat.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          s := strings.ToLower(arg.Arguments[0].ToString())
          switch s {
            case "png", "bmp", "gif", "jpg", "jpeg", "drw", "drwc", "sheet":
              cmdOptions.washFormat = OptText{s, true}
            default:
              return fmt.Errorf("Option %q: Invalid argument %v", arg.Name, arg.Arguments[0])
          }
        }
      case CMDOPT_THREADED:
        if !cmdOptions.threaded.set { cmdOptions.optionsLength++ }
        cmdOptions.threaded = OptBool{true, true}
      case CMDOPT_NO_THREADED:
        if !cmdOptions.threaded.set { cmdOptions.optionsLength++ }
        cmdOptions.threaded = OptBool{false, true}
      case CMDOPT_RESET:
        if !cmdOptions.resetImage.set { cmdOptions.optionsLength++ }
        cmdOptions.resetImage = OptBool{true, true}
      case CMDOPT_NO_RESET:
        if !cmdOptions.resetImage.set { cmdOptions.optionsLength++ }
        cmdOptions.resetImage = OptBool{false, true}
      case CMDOPT_FILTER:
        if len(arg.Arguments) > 0 {
          cmdOptions.optionsLength++
          filter, err := parseFilter(arg.Arguments[0].ToString())
          if err != nil { return fmt.Errorf("Option %q: Invalid filter argument %v (%v)", arg.Name, arg.Arguments[0], err) }
          cmdOptions.filters = append(cmdOptions.filters, filter)
        }
      default:
        return fmt.Errorf("Unrecognized option: %q", arg.Name)
    }
  }

  // Invalid combination: Options, but no image files
  if len(cmdOptions.argsExtra) == 0 && cmdOptions.optionsLength > 0 {
    return errors.New("No image file specified")
  }

  return nil
}


func argsExtraLength() int {
  if cmdOptions.argsExtra == nil { return 0 }
  return len(cmdOptions.argsExtra)
}

func argsExtra(index int) string {
  if cmdOptions.argsExtra == nil { return "" }
  if index < 0 || index >= len(cmdOptions.argsExtra) { return "" }
  return cmdOptions.argsExtra[index]
}

func argsLength() int {
  return cmdOptions.optionsLength
}

func argsHelp() (bool, bool) {
  return cmdOptions.help.value, cmdOptions.help.set
}

func argsVersion() (bool, bool) {
  return cmdOptions.version.value, cmdOptions.version.set
}

func argsVerbose() (bool, bool) {
  return cmdOptions.verbose.value, cmdOptions.verbose.set
}

func argsLogStyle() (bool, bool) {
  return cmdOptions.logStyle.value, cmdOptions.logStyle.set
}

func argsCompact() (bool, bool) {
  return cmdOptions.compact.value, cmdOptions.compact.set
}

func argsOutputType() (string, bool) {
  return cmdOptions.outputType.value, cmdOptions.outputType.set
}

func argsOutput() (string, bool) {
  return cmdOptions.output.value, cmdOptions.output.set
}

func argsWashOutput() (string, bool) {
  return cmdOptions.washOutput.value, cmdOptions.washOutput.set
}

func argsWashFormat() (string, bool) {
  return cmdOptions.washFormat.value, cmdOptions.washFormat.set
}

func argsThreaded() (bool, bool) {
  return cmdOptions.threaded.value, cmdOptions.threaded.set
}

func argsResetImage() (bool, bool) {
  return cmdOptions.resetImage.value, cmdOptions.resetImage.set
}

// Returns number of filter definitions.
func argsFilterLength() int {
  if cmdOptions.filters != nil {
    return len(cmdOptions.filters)
  }
  return 0
}

// Returns filter structure at specified index.
func argsFilter(index int) (OptFilter, bool) {
  if cmdOptions.filters != nil {
    if index >= 0 && index < len(cmdOptions.filters) {
      return cmdOptions.filters[index], true
    }
  }
  return OptFilter{}, false
}


// Used internally. Parses and returns a filter definition.
func parseFilter(param string) (filter OptFilter, err error) {
  filter = OptFilter{name: "", options: make([]OptFilterOption, 0)}

  param = strings.TrimSpace(param)
  if len(param) == 0 { err = fmt.Errorf("No filter name found"); return }

  // parsing filter name
  idx := strings.Index(param, ":")
  if idx < 0 {
    filter.name = strings.TrimSpace(param)
    param = param[len(param):]
  } else {
    filter.name = strings.TrimSpace(param[:idx])
    param = param[idx+1:]
  }
  if len(filter.name) == 0 { err = fmt.Errorf("Empty filter name"); return }

  // parsing filter options
  for len(param) > 0 {
    var option string
    idx = strings.Index(param, ";")
    if idx < 0 {
      option = param
      param = param[len(param):]
    } else {
      option = param[:idx]
      param = param[idx+1:]
    }
    option = strings.TrimSpace(option)
    if len(option) > 0 {
      idx = strings.Index(option, "=")
      if idx < 0 { err = fmt.Errorf("Invalid syntax in filter option: %q", option); return }
      key := strings.TrimSpace(option[:idx])
      value := strings.TrimSpace(option[idx+1:])
      filter.options = append(filter.options, OptFilterOption{key: key, value: value})
    }
  }

  return
}
