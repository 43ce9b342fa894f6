// modelconv converts block model JSON documents into a textured mesh and a
// packed texture atlas.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/blockmodel/internal/config"
	"github.com/Faultbox/blockmodel/internal/logger"
)

// errUsage reports a malformed command line; usage has already been printed.
var errUsage = errors.New("invalid usage")

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg, config.Args(), os.Stdout); err != nil {
		if !errors.Is(err, errUsage) {
			logger.Error("command failed", zap.Error(err))
		}
		logger.Sync()
		os.Exit(1)
	}
}

// run dispatches a command. args excludes global flags.
func run(cfg *config.Config, args []string, out io.Writer) error {
	if len(args) < 1 {
		printUsage(out)
		return errUsage
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "info":
		return forEachModel(out, "info", args, func(path string) error {
			return cmdInfo(cfg, path, out)
		})
	case "convert":
		return forEachModel(out, "convert", args, func(path string) error {
			return cmdConvert(cfg, path, out)
		})
	case "atlas":
		return forEachModel(out, "atlas", args, func(path string) error {
			return cmdAtlas(cfg, path, out)
		})
	case "config":
		return cmdConfig(cfg, args, out)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		fmt.Fprintf(out, "Unknown command: %s\n", command)
		printUsage(out)
		return errUsage
	}
}

func forEachModel(out io.Writer, command string, paths []string, fn func(string) error) error {
	if len(paths) < 1 {
		fmt.Fprintf(out, "Usage: modelconv [flags] %s <model.json>...\n", command)
		return errUsage
	}
	for _, path := range paths {
		if err := fn(path); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, `modelconv - block model to mesh and texture atlas converter

Usage:
  modelconv [flags] <command> [model.json...]

Commands:
  info <model.json>...      Show elements, faces and texture references
  convert <model.json>...   Write <name>.obj, <name>.mtl and <name>_atlas.png
  atlas <model.json>...     Write only <name>_atlas.png
  config                    Print the effective configuration
  config save [file]        Write the effective configuration (default: user config dir)

Flags:
  -config <file>            Config file (default ./modelconv.yaml)
  -out <dir>                Output directory
  -texture-path <dir>       Extra texture root (repeatable)
  -atlas-size <px>          Atlas width and height
  -reference-texels <n>     Texels per block edge
  -overwrite                Replace existing output files
  -debug                    Enable debug logging
  -log-file <file>          Also log to a rotating file

Examples:
  modelconv info assets/models/block/furnace.json
  modelconv -out build convert assets/models/block/*.json
  modelconv -texture-path assets/textures atlas furnace.json`)
}
