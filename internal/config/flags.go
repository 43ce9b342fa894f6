package config

import (
	"flag"
	"strings"
)

var (
	flagConfig          = flag.String("config", "", "Path to config file")
	flagDebug           = flag.Bool("debug", false, "Enable debug logging")
	flagAtlasSize       = flag.Int("atlas-size", 0, "Atlas width and height in pixels")
	flagReferenceTexels = flag.Int("reference-texels", 0, "Texels per block edge")
	flagOut             = flag.String("out", "", "Output directory")
	flagOverwrite       = flag.Bool("overwrite", false, "Overwrite existing output files")
	flagLogFile         = flag.String("log-file", "", "Write logs to this file")
	flagTexturePaths    pathList
)

func init() {
	flag.Var(&flagTexturePaths, "texture-path", "Extra texture root (repeatable)")
}

// pathList collects a repeatable string flag.
type pathList []string

func (p *pathList) String() string {
	return strings.Join(*p, ",")
}

func (p *pathList) Set(v string) error {
	*p = append(*p, v)
	return nil
}

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag command-line arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagAtlasSize > 0 {
		cfg.Atlas.Size = *flagAtlasSize
	}
	if *flagReferenceTexels > 0 {
		cfg.Atlas.ReferenceTexels = *flagReferenceTexels
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagOverwrite {
		cfg.Output.Overwrite = true
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if len(flagTexturePaths) > 0 {
		cfg.Textures.Paths = append(cfg.Textures.Paths, flagTexturePaths...)
	}
}
