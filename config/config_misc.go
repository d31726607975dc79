package config

import (
  "fmt"
  "strings"
)

// AssembleFilePath assembles a fully qualified file path string from the specified arguments.
// index is rendered as a zero-padded decimal number of at least indexWidth digits between prefix
// and extension.
func AssembleFilePath(path, prefix, ext string, index, indexWidth int64) string {
  file := path
  for len(file) > 1 && (file[len(file)-1:] == "/" || file[len(file)-1:] == "\\") { file = file[:len(file)-1] }
  if len(file) > 0 && file[len(file)-1:] != "/" { file += "/" }
  if len(prefix) > 0 { file += prefix }

  // generating a prefixed index string
  neg := ""
  if index < 0 { neg = "-"; index = -index; indexWidth-- }
  if indexWidth < 0 { indexWidth = 0 }
  if len(ext) > 0 && ext[:1] != "." { ext = "." + ext }
  fmtString := fmt.Sprintf("%s%s%%0%dd%s", file, neg, indexWidth, ext)
  file = fmt.Sprintf(fmtString, index)

  return file
}


// AssembleIndexedPath derives an indexed variant of the given file path by placing index between
// base name and extension. Used when a single output definition has to cover multiple input files.
func AssembleIndexedPath(path string, index, indexWidth int64) string {
  dir, base := "", path
  if pos := strings.LastIndexAny(base, "/\\"); pos >= 0 {
    dir, base = base[:pos], base[pos+1:]
  }
  ext := ""
  if pos := strings.LastIndex(base, "."); pos > 0 {
    base, ext = base[:pos], base[pos:]
  }
  return AssembleFilePath(dir, base, ext, index, indexWidth)
}
