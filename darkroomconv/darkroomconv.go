/*
DarkRoom Converter (darkroomconv) is a supplementary tool that can be used to help generate wash
scripts from image input files.

DarkRoom Converter is part of the DarkRoom package. DarkRoom is released under the BSD 2-clause license.
See LICENSE in the project's root folder for more details.
*/
package main

import (
  "fmt"
  "os"

  "github.com/visual-discovery/DarkRoom"
  "github.com/InfinityTools/go-logging"
)

const TOOL_NAME = "DarkRoom Converter"

func main() {
  err := loadArgs(os.Args)
  if err != nil {
    logging.Errorf("Error: %v\n", err)
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

  // Logger should not interfere with script data when writing to stdout
  if _, x := argsOutput(); !x {
    logging.SetOutput(logging.LOG, os.Stderr)
    logging.SetOutput(logging.INFO, os.Stderr)
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
    logging.Infoln("Starting wash script generation")
    err = generate()
    if err != nil {
      logging.Errorf("Error: %v\n", err)
      logging.Infoln("Wash script generation failed.")
      os.Exit(1)
    }
    logging.Infoln("Wash script generation finished successfully.")
  }
}


func generate() error {
  outType := "xml"
  if s, x := argsOutputType(); x {
    outType = s
  }

  var err error = nil
  output := os.Stdout
  if s, x := argsOutput(); x {
    output, err = os.Create(s)
    if err != nil { return fmt.Errorf("Output file: %v", err) }
    defer output.Close()
  }

  var compact bool = false
  if b, x := argsCompact(); x {
    compact = b
  }

  if outType == "json" {
    err = generateJson(output, compact)
  } else {
    err = generateXml(output, compact)
  }

  return err
}


func printHelp() {
  fmt.Printf("Usage: %s [options] imagefile [imagefile2 ...]\n", os.Args[0])
  const helpText = "A supplementary tool for DarkRoom that generates wash scripts referencing the\n" +
                   "specified image files.\n" +
                   "\n" +
                // "...............................................................................\n" +
                   "Options:\n" +
                   "  --verbose                 Show additional log messages. All messages will be\n" +
                   "                            redirected to standard error if script data is\n" +
                   "                            written to standard output.\n" +
                   "  --silent                  Suppress any log messages. Useful when writing\n" +
                   "                            script data to standard output.\n" +
                   "  --log-style               Print log messages in log style, complete with\n" +
                   "                            timestamp and log level.\n" +
                   "  --compact                 Generate compact script data (without indentations,\n" +
                   "                            line breaks, etc.). Default: generate preformatted\n" +
                   "                            script data\n" +
                   "  --output-type type        Specify script type to output. Can be xml or json.\n" +
                   "                            Default: xml\n" +
                   "  --output scriptfile       Specify a filename where script data should be\n" +
                   "                            written to. By default script data is written to\n" +
                   "                            standard output.\n" +
                   "  --wash-output file        Set wash output file. Default: washed.png\n" +
                   "  --wash-format type        Set wash output format. The following types are\n" +
                   "                            recognized: png, bmp, gif, jpg, jpeg, drw, drwc\n" +
                   "                            and sheet. Default: derive from wash output file\n" +
                   "                            extension\n" +
                   "  --threaded                Enable multithreading for wash operations. Used by\n" +
                   "                            default.\n" +
                   "  --no-threaded             Disable multithreading for wash operations.\n" +
                   "  --reset                   Restore the working image from the original after\n" +
                   "                            each wash operation. Used by default.\n" +
                   "  --no-reset                Keep the washed image as baseline for subsequent\n" +
                   "                            wash operations.\n" +
                   "  --filter name[:key=value[;key=value[;more options...]]]\n" +
                   "                            Define one or more filters complete with options.\n" +
                   "                            'name' is the filter name, separated by colon from\n" +
                   "                            zero, one or more options. Each option is defined\n" +
                   "                            by the option name 'key' and the respective option\n" +
                   "                            value. Semicolon is used to separate multiple\n" +
                   "                            options. Wrap the whole definition in quotes if it\n" +
                   "                            contains spaces. Add multiple --filter instances to\n" +
                   "                            define multiple filters. Filters are added in order\n" +
                   "                            of appearance.\n" +
                   "  --help                    Print this help and terminate.\n" +
                   "  --version                 Print version information and terminate.\n" +
                   "\n" +
                   "Image files:\n" +
                   "The specified image files are probed and added to the input file list of the\n" +
                   "generated wash script. Additional image files will be appended in the order of\n" +
                   "appearance."
  fmt.Println(helpText)
}
