// Command baldecode decodes a stream of ARM64 instruction words and prints
// the matching mnemonic for each, or reports it as undefined.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"

	"github.com/poundemu/ballistic/baldecoder"
	"github.com/poundemu/ballistic/baldecodetable"
	"github.com/poundemu/ballistic/balloader"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		inputFile   = flag.String("input", "", "Path to a raw binary file of little-endian 32-bit ARM64 words")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("baldecode %s (%s)\n", Version, Commit)
		os.Exit(0)
	}

	if *inputFile == "" {
		fmt.Fprintln(os.Stderr, "usage: baldecode -input <file>")
		os.Exit(2)
	}

	buf, err := balloader.LoadFile(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "baldecode: %v\n", err)
		os.Exit(1)
	}

	undefined := 0
	for off := 0; off+4 <= len(buf); off += 4 {
		instr := binary.LittleEndian.Uint32(buf[off:])
		meta, ok := baldecoder.Decode(baldecodetable.Table, instr)
		if !ok {
			fmt.Printf("%08x: %08x  <undefined>\n", off, instr)
			undefined++
			continue
		}
		fmt.Printf("%08x: %08x  %s\n", off, instr, meta.Name)
	}

	if undefined > 0 {
		fmt.Fprintf(os.Stderr, "baldecode: %d undefined instruction(s)\n", undefined)
		os.Exit(1)
	}
}
