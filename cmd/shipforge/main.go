// Package main is the entry point for the shipforge blueprint tool.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/vantling/shipforge/internal/blueprint"
	"github.com/vantling/shipforge/internal/engine"
	"github.com/vantling/shipforge/internal/logging"
	"github.com/vantling/shipforge/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	Output     string
	ScriptPath string
	Info       bool
	LogLevel   string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, input := parseFlags()

	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(opts.LogLevel),
		Prefix: "shipforge",
	})

	bp, err := blueprint.Load(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if opts.Info {
		printInfo(input, bp)
		return 0
	}

	if opts.ScriptPath != "" {
		if err := runScript(opts.ScriptPath, bp, log); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	out := opts.Output
	if out == "" {
		out = input + ".out.json"
	}
	if err := blueprint.Save(out, bp); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	log.Info("wrote %s", out)
	return 0
}

// runScript applies a Lua edit script to the blueprint through the engine:
// the script enqueues requests, a single drain applies them to the history.
func runScript(path string, bp *blueprint.Blueprint, log *logging.Logger) error {
	eng := engine.New(engine.WithLogger(log))
	eng.Open(bp)

	se := script.NewEngine(log.WithComponent("script"))
	defer se.Close()

	if err := se.RunEditScript(path, eng.Queue(), eng.Scene()); err != nil {
		return err
	}

	n := eng.Tick()
	log.Info("applied %d requests, %d history entries", n, eng.History().Len())
	return nil
}

func printInfo(path string, bp *blueprint.Blueprint) {
	fmt.Printf("%s\n", path)
	fmt.Printf("  author:     %s\n", bp.Author)
	fmt.Printf("  type:       %s (v%d)\n", bp.Type, bp.Version)
	fmt.Printf("  datetime:   %s\n", bp.Datetime)
	fmt.Printf("  mass:       %.2f\n", bp.Mass)
	fmt.Printf("  blocks:     %d\n", len(bp.Data.Blocks))
	fmt.Printf("  frames:     %d\n", len(bp.Data.Frames))
	fmt.Printf("  components: %d\n", len(bp.Data.Components))
	fmt.Printf("  labels:     %d\n", len(bp.Data.Labels))
	fmt.Printf("  pipes:      %d\n", len(bp.Data.Pipes))
}

func parseFlags() (options, string) {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.Output, "o", "", "Output path (default <input>.out.json)")
	flag.StringVar(&opts.ScriptPath, "script", "", "Lua edit script to apply")
	flag.BoolVar(&opts.Info, "info", false, "Print blueprint info and exit")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Shipforge - ship blueprint edit tool\n\n")
		fmt.Fprintf(os.Stderr, "Usage: shipforge [options] <blueprint.json>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  shipforge -info ship.json              Show blueprint summary\n")
		fmt.Fprintf(os.Stderr, "  shipforge ship.json                    Round-trip to ship.json.out.json\n")
		fmt.Fprintf(os.Stderr, "  shipforge -script fix.lua -o new.json ship.json\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Shipforge %s (%s)\n", version, commit)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	return opts, flag.Arg(0)
}
