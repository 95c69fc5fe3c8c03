/*
Oniazusa is a command line tool that converts photographs into stylized visual novel backgrounds.

Oniazusa is released under the BSD 2-clause license. See LICENSE in the project's root folder for more details.
*/
package main

import (
  "errors"
  "fmt"
  "io"
  "os"
  "path/filepath"
  "regexp"
  "runtime"
  "strconv"
  "strings"
  "sync"

  "github.com/InfinityTools/go-logging"
  "github.com/pbenner/threadpool"
  "github.com/kako-jun/oniazusa"
  "github.com/kako-jun/oniazusa/config"
  "github.com/kako-jun/oniazusa/filter"
  "github.com/kako-jun/oniazusa/graphics"
  "github.com/kako-jun/oniazusa/preset"
)


const TOOL_NAME = "Oniazusa"

// Name of the output folder created next to directly specified input images.
const OUTPUT_DIR_NAME = "oniazusa_out"


// Collected settings of a single conversion job.
type jobSettings struct {
  style     string
  tint      string
  levels    int
  scale     float64
  outPath   string                  // output folder, empty to derive from the input file
  format    string                  // png, jpg, jpeg or bmp
  suffix    string                  // output name suffix, empty to derive from the style
  presets   map[string]preset.Tint  // user-defined tints, may be nil
}


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
  if b, x := argsThreaded(); x { filter.SetMultiThreaded(b) }

  if _, x := argsVersion(); x {
    printVersion()
  } else if _, x := argsHelp(); x {
    printHelp()
  } else if argsExtraLength() == 0 {
    printHelp()
  } else {
    logging.Infoln("Starting conversion")
    err = convert()
    if err != nil {
      logging.Errorf("%v\n", err)
      os.Exit(1)
    }
    logging.Infoln("Conversion finished successfully.")
  }
}


// Processes all jobs given on the command line. Failed jobs are logged and skipped, so a
// single broken input does not abort a whole batch.
func convert() error {
  length := argsExtraLength()
  failed := 0
  for idx := 0; idx < length; idx++ {
    inputArg := argsExtra(idx)
    if len(inputArg) == 0 { continue }  // should not happen
    if inputArg == "-" {
      logging.Infof("Starting job %d: (standard input)\n", idx)
    } else {
      logging.Infof("Starting job %d: %s\n", idx, inputArg)
    }
    err := convertJob(inputArg)
    if err != nil {
      logging.Errorf("Job %d: %v\n", idx, err)
      failed++
      continue
    }
    logging.Infof("Finished job %d\n", idx)
  }

  if failed > 0 { return fmt.Errorf("%d of %d jobs failed", failed, length) }
  return nil
}


// Dispatches a single command line argument to the matching job type. Configuration
// scripts are recognized by extension, directories are converted as a batch and
// everything else is treated as a single input image.
func convertJob(inputArg string) error {
  if inputArg == "-" { return convertConfigJob(inputArg) }

  fi, err := os.Stat(inputArg)
  if err != nil { return err }
  if fi.IsDir() { return convertDirectoryJob(inputArg) }

  ext := strings.ToLower(filepath.Ext(inputArg))
  if ext == ".json" || ext == ".xml" { return convertConfigJob(inputArg) }

  settings, err := cliSettings()
  if err != nil { return err }
  chain, err := buildJobChain(settings, nil)
  if err != nil { return err }
  return convertImage(inputArg, settings, chain)
}


// Converts every known image file directly inside the given directory. Output is placed
// into a subfolder unless overridden on the command line.
func convertDirectoryJob(dir string) error {
  settings, err := cliSettings()
  if err != nil { return err }
  if len(settings.outPath) == 0 { settings.outPath = filepath.Join(dir, OUTPUT_DIR_NAME) }
  chain, err := buildJobChain(settings, nil)
  if err != nil { return err }

  entries, err := os.ReadDir(dir)
  if err != nil { return fmt.Errorf("Cannot read directory %q: %v", dir, err) }

  files := make([]string, 0, len(entries))
  for _, entry := range entries {
    if entry.IsDir() { continue }
    switch strings.ToLower(filepath.Ext(entry.Name())) {
      case ".jpg", ".jpeg", ".png", ".bmp", ".gif", ".webp":
      default: continue
    }
    files = append(files, filepath.Join(dir, entry.Name()))
  }
  if len(files) == 0 { return fmt.Errorf("No image files found in %q", dir) }

  failed := convertImages(files, settings, chain)
  if failed > 0 { return fmt.Errorf("%d of %d images failed", failed, len(files)) }
  return nil
}


// Processes a conversion defined by a configuration script.
func convertConfigJob(configFile string) error {
  // consistency checks
  isStdIn := configFile == "-"
  if !isStdIn {
    fi, err := os.Stat(configFile)
    if err != nil { return err }
    if !fi.Mode().IsRegular() { return fmt.Errorf("File not found: %q", configFile) }
  }

  var r io.Reader = nil
  if isStdIn {
    r = os.Stdin
  } else {
    fin, err := os.Open(configFile)
    if err != nil { return fmt.Errorf("Cannot open %q: %v", configFile, err) }
    defer fin.Close()
    r = fin
  }
  cfg, err := config.ImportConfig(r)
  if err != nil { return fmt.Errorf("Error parsing configuration: %v", err) }

  return generateOutput(cfg)
}


// Converts all inputs named by the configuration.
func generateOutput(cfg *config.ToneConfig) error {
  if cfg == nil { return errors.New("No configuration data found") }

  // threading can be set per config, command line takes precedence
  if _, x := argsThreaded(); !x {
    if b, ok := cfg.GetConfigValueBool(config.SECTION_SETTINGS, config.KEY_THREADED); ok {
      filter.SetMultiThreaded(b)
    }
  }

  settings, err := configSettings(cfg)
  if err != nil { return err }

  chain, err := buildJobChain(settings, cfg)
  if err != nil { return err }

  // printing a summary of the current conversion options (INFO level)
  var sb strings.Builder
  sb.WriteString("Options: ")
  sb.WriteString(fmt.Sprintf("verbose: %v", logging.GetVerbosity() < logging.INFO))
  sb.WriteString(fmt.Sprintf(", threading: %v", filter.GetMultiThreaded()))
  sb.WriteString(fmt.Sprintf(", style: %s", settings.style))
  if settings.style == filter.STYLE_SCREENTONE {
    sb.WriteString(fmt.Sprintf(", tint: %s", settings.tint))
    sb.WriteString(fmt.Sprintf(", levels: %d", settings.levels))
    sb.WriteString(fmt.Sprintf(", scale: %v", settings.scale))
  }
  sb.WriteString(fmt.Sprintf(", output: %q", settings.outPath))
  sb.WriteString(fmt.Sprintf(", format: %s", settings.format))
  sb.WriteString(fmt.Sprintf(", filters: %d", chain.Length()))
  logging.Infoln(sb.String())

  // collecting input files
  files, err := collectInputFiles(cfg)
  if err != nil { return err }
  if len(files) == 0 { return errors.New("No input files defined") }

  failed := convertImages(files, settings, chain)
  if failed > 0 { return fmt.Errorf("%d of %d images failed", failed, len(files)) }
  return nil
}


// Used internally. Converts a list of input images with shared settings. Images are
// processed in parallel when multithreading is enabled; each image is an independent
// conversion. Failed images are logged and counted instead of aborting the batch.
func convertImages(files []string, settings jobSettings, chain *filter.Chain) int {
  failed := 0
  if filter.GetMultiThreaded() && len(files) > 1 {
    // Multi-threaded operation
    pool := threadpool.New(runtime.NumCPU(), len(files))
    g := pool.NewJobGroup()
    var m sync.Mutex
    for _, fileName := range files {
      name := fileName
      pool.AddJob(g, func(pool threadpool.ThreadPool, erf func() error) error {
        if err := convertImage(name, settings, chain); err != nil {
          m.Lock()
          logging.Errorf("%s: %v\n", name, err)
          failed++
          m.Unlock()
        }
        return nil
      })
    }
    pool.Wait(g)
  } else {
    // Single-threaded operation
    for _, fileName := range files {
      if err := convertImage(fileName, settings, chain); err != nil {
        logging.Errorf("%s: %v\n", fileName, err)
        failed++
      }
    }
  }
  return failed
}


// Used internally. Assembles conversion settings from command line options only.
func cliSettings() (jobSettings, error) {
  def := filter.DefaultConfig()
  settings := jobSettings{style: def.Style, tint: def.Tint, levels: def.Levels, scale: def.Scale, format: "png"}
  if err := applyCliOverrides(&settings); err != nil { return settings, err }
  return settings, nil
}

// Used internally. Assembles conversion settings from a configuration, then applies
// command line overrides on top.
func configSettings(cfg *config.ToneConfig) (jobSettings, error) {
  settings := jobSettings{}
  settings.style, _ = cfg.GetConfigValueText(config.SECTION_SETTINGS, config.KEY_STYLE)
  settings.tint, _ = cfg.GetConfigValueText(config.SECTION_SETTINGS, config.KEY_TINT)
  iVal, _ := cfg.GetConfigValueInt(config.SECTION_SETTINGS, config.KEY_LEVELS)
  settings.levels = int(iVal)
  settings.scale, _ = cfg.GetConfigValueFloat(config.SECTION_SETTINGS, config.KEY_SCALE)
  settings.outPath, _ = cfg.GetConfigValueText(config.SECTION_OUTPUT, config.KEY_OUTPUT_PATH)
  settings.format, _ = cfg.GetConfigValueText(config.SECTION_OUTPUT, config.KEY_OUTPUT_FORMAT)
  settings.suffix, _ = cfg.GetConfigValueText(config.SECTION_OUTPUT, config.KEY_OUTPUT_SUFFIX)

  if s, ok := cfg.GetConfigValueText(config.SECTION_SETTINGS, config.KEY_PRESETS); ok && len(s) > 0 {
    if _, x := argsPresets(); !x {
      presets, err := loadPresets(s)
      if err != nil { return settings, err }
      settings.presets = presets
    }
  }

  if err := applyCliOverrides(&settings); err != nil { return settings, err }
  return settings, nil
}

// Used internally. Applies command line overrides to the given settings.
func applyCliOverrides(settings *jobSettings) error {
  if s, x := argsStyle(); x { settings.style = s }
  if s, x := argsTint(); x { settings.tint = s }
  if i, x := argsLevels(); x { settings.levels = i }
  if f, x := argsScale(); x { settings.scale = f }
  if s, x := argsOutput(); x { settings.outPath = s }
  if s, x := argsFormat(); x { settings.format = s }
  if s, x := argsSuffix(); x { settings.suffix = s }
  if s, x := argsPresets(); x {
    presets, err := loadPresets(s)
    if err != nil { return err }
    settings.presets = presets
  }
  return nil
}

// Used internally. Loads user-defined tints from the given file.
func loadPresets(fileName string) (map[string]preset.Tint, error) {
  fin, err := os.Open(fileName)
  if err != nil { return nil, fmt.Errorf("User presets: %v", err) }
  defer fin.Close()
  presets, err := preset.Import(fin)
  if err != nil { return nil, fmt.Errorf("User presets: %v", err) }
  return presets, nil
}


// Used internally. Builds the filter chain for the given settings. Extra filters from the
// configuration are appended to the style chain, command line filter options override
// both.
func buildJobChain(settings jobSettings, cfg *config.ToneConfig) (*filter.Chain, error) {
  chain, err := filter.BuildChain(filter.Config{Style: settings.style,
                                                Tint: resolveTint(settings),
                                                Levels: settings.levels,
                                                Scale: settings.scale})
  if err != nil { return nil, err }

  // appending extra filters from the configuration
  if cfg != nil {
    numFilters := cfg.GetConfigFilterLength()
    for idx := 0; idx < numFilters; idx++ {
      name, ok := cfg.GetConfigFilterName(idx)
      if !ok { return nil, fmt.Errorf("Empty filter at index=%d", idx) }
      options, ok := cfg.GetConfigFilterOptions(idx)
      if !ok { return nil, fmt.Errorf("Could not evaluate filter %q at index=%d", name, idx) }
      f := filter.CreateFilter(name)
      if f == nil { return nil, fmt.Errorf("Could not create filter: %s", name) }
      for idx2, option := range options {
        if option == nil || len(option) < 2 { return nil, fmt.Errorf("Could not evaluate option %d of filter %q (index=%d)", idx2, name, idx) }
        err := f.SetOption(option[0], option[1])
        if err != nil { return nil, fmt.Errorf("Filter %q (index=%d), option %q: %v", name, idx, option[0], err) }
      }
      chain.Add(f)
    }
  }

  // applying override options
  if options, x := argsFilterOptions(); x {
    reg := regexp.MustCompile("(0|[1-9][0-9]*):([^=]+)=(.*)")
    for _, option := range options {
      values := reg.FindStringSubmatch(option)  // should return []string{"full-string", "idx", "key", "value"}
      if values == nil || len(values) < 4 { return nil, fmt.Errorf("Invalid filter option: %s", option) }
      index, err := strconv.Atoi(strings.TrimSpace(values[1]))
      if err != nil { return nil, fmt.Errorf("Invalid filter index: %s", values[1]) }
      key, value := strings.TrimSpace(values[2]), strings.TrimSpace(values[3])
      if index < 0 || index >= chain.Length() {
        logging.Warnf("Filter index out of bounds: %d. Skipping option...\n", index)
        continue
      }
      f := chain.Get(index)
      logging.Logf("Filter #%d (%s): Overriding option %s = %s\n", index, f.GetName(), key, value)
      err = f.SetOption(key, value)
      if err != nil {
        logging.Warnf("Filter #%d (%s): Could not set option %s = %s: %v\n", index, f.GetName(), key, value, err)
      }
    }
  }

  return chain, nil
}

// Used internally. Resolves a tint name against the user-defined presets. Matches are
// translated into literal color definitions so they take precedence over the built-in
// table. Unknown names pass through unchanged.
func resolveTint(settings jobSettings) string {
  name := strings.ToLower(strings.TrimSpace(settings.tint))
  if len(name) == 0 || name[0] == '#' { return settings.tint }
  if tint, ok := settings.presets[name]; ok {
    return fmt.Sprintf("#%02x%02x%02x", tint.R, tint.G, tint.B)
  }
  return settings.tint
}


// Used internally. Collects the input files named by the configuration, either from a
// static file list or from a generated file sequence.
func collectInputFiles(cfg *config.ToneConfig) ([]string, error) {
  useStatic, _ := cfg.GetConfigValueBool(config.SECTION_INPUT, config.KEY_INPUT_STATIC)

  files := make([]string, 0)
  if useStatic {
    entries, _ := cfg.GetConfigValueTextSeq(config.SECTION_INPUT, config.KEY_INPUT_FILES)
    for eidx, entry := range entries {
      if len(entry) == 0 { continue }
      if !fileExists(entry) { return nil, fmt.Errorf("Input file %d does not exist: %q", eidx, entry) }
      files = append(files, entry)
    }
  } else {
    path, _ := cfg.GetConfigValueText(config.SECTION_INPUT, config.KEY_INPUT_PATH)
    prefix, _ := cfg.GetConfigValueText(config.SECTION_INPUT, config.KEY_INPUT_PREFIX)
    ext, _ := cfg.GetConfigValueText(config.SECTION_INPUT, config.KEY_INPUT_EXT)
    suffixStart, _ := cfg.GetConfigValueInt(config.SECTION_INPUT, config.KEY_INPUT_SUFFIX_START)
    suffixEnd, _ := cfg.GetConfigValueInt(config.SECTION_INPUT, config.KEY_INPUT_SUFFIX_END)
    suffixLen, _ := cfg.GetConfigValueInt(config.SECTION_INPUT, config.KEY_INPUT_SUFFIX_LEN)

    // sequence may be incremented or decremented
    var inc int64
    if suffixEnd < suffixStart { inc = -1; suffixEnd-- } else { inc = 1; suffixEnd++ }
    for index := suffixStart; index != suffixEnd; index += inc {
      fileName := config.AssembleFilePath(path, prefix, ext, index, suffixLen)
      if !fileExists(fileName) { return nil, fmt.Errorf("Input file does not exist: %q", fileName) }
      files = append(files, fileName)
    }
  }

  return files, nil
}


// Converts a single input image and writes the result. Multi-frame inputs produce one
// output file per frame with an index appended to the name.
func convertImage(fileName string, settings jobSettings, chain *filter.Chain) error {
  logging.Logf("Importing %s\n", fileName)
  fin, err := os.Open(fileName)
  if err != nil { return fmt.Errorf("Could not open %q: %v", fileName, err) }
  defer fin.Close()
  g := graphics.Import(fin)
  if g.Error() != nil { return g.Error() }

  frames := make([]*filter.Buffer, g.GetImageLength())
  for idx := 0; idx < len(frames); idx++ {
    frames[idx], err = filter.FromImage(g.GetImage(idx))
    if err != nil { return err }
  }

  frames, err = chain.Apply(frames)
  if err != nil { return err }

  // assembling output names
  outDir := settings.outPath
  if len(outDir) == 0 { outDir = filepath.Join(filepath.Dir(fileName), OUTPUT_DIR_NAME) }
  if !directoryExists(outDir) {
    if err := os.MkdirAll(outDir, 0755); err != nil { return fmt.Errorf("Cannot create output path %q: %v", outDir, err) }
  }
  base := filepath.Base(fileName)
  stem := strings.TrimSuffix(base, filepath.Ext(base))
  suffix := settings.suffix
  if len(suffix) == 0 { suffix = "_" + settings.style }
  ext := settings.format
  if ext == "jpeg" { ext = "jpg" }

  for idx, frame := range frames {
    var outFile string
    if len(frames) > 1 {
      outFile = config.AssembleFilePath(outDir, stem + suffix + "_", ext, int64(idx), 2)
    } else {
      outFile = filepath.Join(outDir, stem + suffix + "." + ext)
    }
    logging.Logf("Exporting %s\n", outFile)
    fout, err := os.Create(outFile)
    if err != nil { return fmt.Errorf("Cannot create %q: %v", outFile, err) }
    err = graphics.Export(fout, frame.ToRGBA(), formatType(settings.format))
    fout.Close()
    if err != nil { return fmt.Errorf("Cannot export %q: %v", outFile, err) }
  }

  return nil
}


// Used internally. Maps an output format name to the matching graphics type constant.
func formatType(format string) int {
  switch format {
    case "jpg", "jpeg":
      return graphics.TYPE_JPG
    case "bmp":
      return graphics.TYPE_BMP
    default:
      return graphics.TYPE_PNG
  }
}


func printHelp() {
  fmt.Printf("Usage: %s [options] input [input2 ...]\n", os.Args[0])
  const helpText = "Converts photographs into stylized visual novel backgrounds.\n" +
                   "\n" +
                   "Each input may be an image file, a directory of image files or a configuration\n" +
                   "script in JSON or XML format. Directories are converted as a batch into an\n" +
                   "\"oniazusa_out\" subfolder.\n" +
                   "\n" +
                // "...............................................................................\n" +
                   "Options:\n" +
                   "  --verbose                 Show additional log messages during the conversion\n" +
                   "                            process.\n" +
                   "  --silent                  Suppress any log messages during the conversion\n" +
                   "                            process except for errors.\n" +
                   "  --log-style               Print log messages in log style, complete with\n" +
                   "                            timestamp and log level.\n" +
                   "  --threaded                Enable multithreading for the conversion. May speed\n" +
                   "                            up the conversion process on multi-core systems.\n" +
                   "                            Enabled by default if multiple CPU cores are\n" +
                   "                            detected.\n" +
                   "  --no-threaded             Disable multithreading for the conversion.\n" +
                   "  --style name              Set the output style. Can be \"screentone\" or\n" +
                   "                            \"kizuato\". Overrides setting in the config file.\n" +
                   "  --tint name               Set the tint for the screentone style. Accepts a\n" +
                   "                            preset name or a literal color as #rrggbb.\n" +
                   "                            Overrides setting in the config file.\n" +
                   "  --levels value            Set the number of brightness levels for the\n" +
                   "                            screentone style. Allowed range: [2, 256].\n" +
                   "                            Overrides setting in the config file.\n" +
                   "  --scale value             Set the pixel grid scale factor for the screentone\n" +
                   "                            style. Allowed range: (0.0, 1.0]. Overrides setting\n" +
                   "                            in the config file.\n" +
                   "  --output path             Set the output folder. Overrides setting in the\n" +
                   "                            config file.\n" +
                   "  --format name             Set the output format. Can be \"png\", \"jpg\" or\n" +
                   "                            \"bmp\". Overrides setting in the config file.\n" +
                   "  --suffix text             Set the suffix appended to output file names.\n" +
                   "                            Defaults to the style name. Overrides setting in\n" +
                   "                            the config file.\n" +
                   "  --presets file            Load user-defined tints from the given file. Each\n" +
                   "                            line defines one tint as \"name = #rrggbb\".\n" +
                   "                            Overrides setting in the config file.\n" +
                   "  --filter idx:key=value    Set or override a filter option. 'idx' indicates\n" +
                   "                            the filter index in the chain, starting at index 0.\n" +
                   "                            'key' and 'value' define a single filter option key\n" +
                   "                            and value pair. Wrap the whole definition in quotes\n" +
                   "                            if it contains spaces. Add multiple --filter\n" +
                   "                            instances to set or override multiple options.\n" +
                   "  --help                    Print this help and terminate.\n" +
                   "  --version                 Print version information and terminate.\n" +
                   "\n" +
                   "Note: Use minus sign (-) in place of an input to read configuration data\n" +
                   "      from standard input."
  fmt.Println(helpText)
}


func printVersion() {
  oniazusa.PrintVersion(TOOL_NAME)
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
