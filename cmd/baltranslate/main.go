// Command baltranslate runs a guest ARM64 binary through the Ballistic
// translator and prints the emitted IR, or reports the engine's latched
// error status on failure.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/poundemu/ballistic/balconfig"
	"github.com/poundemu/ballistic/balengine"
	"github.com/poundemu/ballistic/balerrors"
	"github.com/poundemu/ballistic/balir"
	"github.com/poundemu/ballistic/ballog"
	"github.com/poundemu/ballistic/balloader"
	"github.com/poundemu/ballistic/balmemory"
	"github.com/poundemu/ballistic/baltranslate"
)

var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		inputFile   = flag.String("input", "", "Path to a raw guest ARM64 binary")
		verbose     = flag.Bool("verbose", false, "Log at TRACE level")
		configFile  = flag.String("config", "", "Path to a ballistic.toml config file (default: platform config path)")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("baltranslate %s (%s)\n", Version, Commit)
		os.Exit(0)
	}

	if *inputFile == "" {
		fmt.Fprintln(os.Stderr, "usage: baltranslate -input <file>")
		os.Exit(2)
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "baltranslate: %v\n", err)
		os.Exit(1)
	}

	minLevel := ballog.LevelInfo
	if *verbose {
		minLevel = ballog.LevelTrace
	}
	logger := ballog.New(os.Stderr, "", minLevel)

	guest, err := balloader.LoadFile(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "baltranslate: %v\n", err)
		os.Exit(1)
	}

	engine, code := balengine.New(balmemory.DefaultAllocator(), logger, engineCapacities(cfg))
	if code != balerrors.Success {
		fmt.Fprintf(os.Stderr, "baltranslate: engine init failed: %v\n", code)
		os.Exit(1)
	}
	defer engine.Destroy()

	status := baltranslate.Translate(engine, nil, guest, len(guest))
	printIR(engine)

	if status != balerrors.Success {
		fmt.Fprintf(os.Stderr, "baltranslate: %v\n", status)
		os.Exit(1)
	}
}

// engineCapacities translates the config file's engine section into
// balengine constructor arguments, overriding the package's built-in arena
// sizing.
func engineCapacities(cfg *balconfig.Config) *balengine.Capacities {
	return &balengine.Capacities{
		InstructionCapacity:    cfg.Engine.InstructionCapacity,
		ConstantCapacity:       cfg.Engine.ConstantCapacity,
		SourceVariableCapacity: cfg.Engine.SourceVarCapacity,
		ArenaAlignment:         cfg.Engine.ArenaAlignment,
	}
}

func loadConfig(path string) (*balconfig.Config, error) {
	if path == "" {
		return balconfig.Load()
	}
	return balconfig.LoadFrom(path)
}

func printIR(engine *balengine.Engine) {
	for i := uint32(0); i < engine.InstructionCount; i++ {
		w := engine.Instructions[i]
		fmt.Printf("v%d: %s %s %s %s\n", i, w.Opcode(), formatSource(w.Source1()), formatSource(w.Source2()), formatSource(w.Source3()))
	}
}

func formatSource(s balir.Source) string {
	if s.IsConstant {
		return fmt.Sprintf("C(%d)", s.Index)
	}
	return fmt.Sprintf("v%d", s.Index)
}
