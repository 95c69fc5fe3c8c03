package main
// Handles command line arguments for oniazusa.

import (
  "fmt"
  "os"

  "github.com/InfinityTools/go-cmdargs"
  "github.com/InfinityTools/go-logging"
)

const (
  CMDOPT_HELP = "help"
  CMDOPT_VERSION = "version"
  CMDOPT_VERBOSE = "verbose"
  CMDOPT_SILENT = "silent"
  CMDOPT_LOG_STYLE = "log-style"
  CMDOPT_THREADED = "threaded"
  CMDOPT_NO_THREADED = "no-threaded"
  CMDOPT_STYLE = "style"
  CMDOPT_TINT = "tint"
  CMDOPT_LEVELS = "levels"
  CMDOPT_SCALE = "scale"
  CMDOPT_OUTPUT = "output"
  CMDOPT_FORMAT = "format"
  CMDOPT_SUFFIX = "suffix"
  CMDOPT_PRESETS = "presets"
  CMDOPT_FILTER_OPTION = "filter"
)

type OptBool struct { value bool; set bool }
type OptInt struct { value int; set bool }
type OptFloat struct { value float64; set bool }
type OptText struct { value string; set bool }

type CmdOptions struct {
  help          OptBool
  version       OptBool
  verbose       OptBool
  logStyle      OptBool
  threaded      OptBool
  style         OptText
  tint          OptText
  levels        OptInt
  scale         OptFloat
  output        OptText
  format        OptText
  suffix        OptText
  presets       OptText
  filterOption  []OptText
  optionsLength int
  argSelf       string
  argsExtra     []string
}

var cmdOptions  CmdOptions


func loadArgs(args []string) error {
  params := cmdargs.Create()
  params.AddParameter(CMDOPT_HELP, nil, 0)
  params.AddParameter(CMDOPT_VERSION, nil, 0)
  params.AddParameter(CMDOPT_VERBOSE, nil, 0)
  params.AddParameter(CMDOPT_SILENT, nil, 0)
  params.AddParameter(CMDOPT_LOG_STYLE, nil, 0)
  params.AddParameter(CMDOPT_THREADED, nil, 0)
  params.AddParameter(CMDOPT_NO_THREADED, nil, 0)
  params.AddParameter(CMDOPT_STYLE, nil, 1)
  params.AddParameter(CMDOPT_TINT, nil, 1)
  params.AddParameter(CMDOPT_LEVELS, nil, 1)
  params.AddParameter(CMDOPT_SCALE, nil, 1)
  params.AddParameter(CMDOPT_OUTPUT, nil, 1)
  params.AddParameter(CMDOPT_FORMAT, nil, 1)
  params.AddParameter(CMDOPT_SUFFIX, nil, 1)
  params.AddParameter(CMDOPT_PRESETS, nil, 1)
  params.AddParameter(CMDOPT_FILTER_OPTION, nil, 1)

  err := params.Evaluate(args)
  if err != nil { return err }

  // validating extra arguments
  cmdOptions.argSelf = params.GetArgSelf()
  cmdOptions.argsExtra = make([]string, 0)
  for i := 0; i < params.GetArgExtraLength(); i++ {
    s := params.GetArgExtra(i).ToString()
    if s == "-" {
      // Add Stdin as is
      cmdOptions.argsExtra = append(cmdOptions.argsExtra, s)
    } else {
      // Expanding wildcard
      expanded := params.GetExpandedArgExtra(i)
      if len(expanded) == 0 { expanded = []string{s} }  // falling back to check directly
      for _, name := range expanded {
        fi, err := os.Stat(name)
        if err != nil { return fmt.Errorf("Input at %d: %v", len(cmdOptions.argsExtra), err) }
        if !fi.Mode().IsRegular() && !fi.IsDir() { return fmt.Errorf("Input does not exist: %q", name) }
        cmdOptions.argsExtra = append(cmdOptions.argsExtra, name)
      }
    }
  }

  // validating options
  cmdOptions.filterOption = make([]OptText, 0)
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
      case CMDOPT_THREADED:
        if !cmdOptions.threaded.set { cmdOptions.optionsLength++ }
        cmdOptions.threaded = OptBool{true, true}
      case CMDOPT_NO_THREADED:
        if !cmdOptions.threaded.set { cmdOptions.optionsLength++ }
        cmdOptions.threaded = OptBool{false, true}
      case CMDOPT_STYLE:
        if !cmdOptions.style.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          s := arg.Arguments[0].ToString()
          if s != "screentone" && s != "kizuato" {
            return fmt.Errorf("Option %q: Invalid argument %v", arg.Name, arg.Arguments[0])
          }
          cmdOptions.style = OptText{s, true}
        }
      case CMDOPT_TINT:
        if !cmdOptions.tint.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          s := arg.Arguments[0].ToString()
          if len(s) == 0 { return fmt.Errorf("Option %q: No tint specified", arg.Name) }
          cmdOptions.tint = OptText{s, true}
        }
      case CMDOPT_LEVELS:
        if !cmdOptions.levels.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          if i, x := arg.Arguments[0].Int(); x && i >= 2 && i <= 256 {
            cmdOptions.levels = OptInt{int(i), true}
          } else {
            return fmt.Errorf("Option %q: Invalid argument %v", arg.Name, arg.Arguments[0])
          }
        }
      case CMDOPT_SCALE:
        if !cmdOptions.scale.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          if f, x := arg.Arguments[0].Float(); x && f > 0.0 && f <= 1.0 {
            cmdOptions.scale = OptFloat{f, true}
          } else {
            return fmt.Errorf("Option %q: Invalid argument %v", arg.Name, arg.Arguments[0])
          }
        }
      case CMDOPT_OUTPUT:
        if !cmdOptions.output.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          s := arg.Arguments[0].ToString()
          if len(s) == 0 { return fmt.Errorf("Option %q: No output path specified", arg.Name) }
          cmdOptions.output = OptText{s, true}
        }
      case CMDOPT_FORMAT:
        if !cmdOptions.format.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          s := arg.Arguments[0].ToString()
          if s != "png" && s != "jpg" && s != "jpeg" && s != "bmp" {
            return fmt.Errorf("Option %q: Invalid argument %v", arg.Name, arg.Arguments[0])
          }
          cmdOptions.format = OptText{s, true}
        }
      case CMDOPT_SUFFIX:
        if !cmdOptions.suffix.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          cmdOptions.suffix = OptText{arg.Arguments[0].ToString(), true}
        }
      case CMDOPT_PRESETS:
        if !cmdOptions.presets.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          cmdOptions.presets = OptText{arg.Arguments[0].ToString(), true}
        }
      case CMDOPT_FILTER_OPTION:
        if len(arg.Arguments) > 0 {
          cmdOptions.optionsLength++
          cmdOptions.filterOption = append(cmdOptions.filterOption, OptText{arg.Arguments[0].ToString(), true})
        }
      default:
        return fmt.Errorf("Unrecognized option: %q", arg.Name)
    }
  }

  return nil
}


func argsExtraLength() int {
  if cmdOptions.argsExtra == nil { return 0 }
  return len(cmdOptions.argsExtra)
}

func argsExtra(index int) string {
  if cmdOptions.argsExtra == nil { return "" }
  if index < 0 || index > len(cmdOptions.argsExtra) { return "" }
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

func argsThreaded() (bool, bool) {
  return cmdOptions.threaded.value, cmdOptions.threaded.set
}

func argsStyle() (string, bool) {
  return cmdOptions.style.value, cmdOptions.style.set
}

func argsTint() (string, bool) {
  return cmdOptions.tint.value, cmdOptions.tint.set
}

func argsLevels() (int, bool) {
  return cmdOptions.levels.value, cmdOptions.levels.set
}

func argsScale() (float64, bool) {
  return cmdOptions.scale.value, cmdOptions.scale.set
}

func argsOutput() (string, bool) {
  return cmdOptions.output.value, cmdOptions.output.set
}

func argsFormat() (string, bool) {
  return cmdOptions.format.value, cmdOptions.format.set
}

func argsSuffix() (string, bool) {
  return cmdOptions.suffix.value, cmdOptions.suffix.set
}

func argsPresets() (string, bool) {
  return cmdOptions.presets.value, cmdOptions.presets.set
}

func argsFilterOptions() ([]string, bool) {
  retVal := make([]string, len(cmdOptions.filterOption))
  for idx, v := range cmdOptions.filterOption {
    retVal[idx] = v.value
  }
  return retVal, len(cmdOptions.filterOption) > 0
}
