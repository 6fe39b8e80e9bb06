// Command balcoverage streams a guest binary through baldecoder and tallies
// mnemonic frequency: how many times each mnemonic appears, and how many
// words in the file didn't decode at all.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/fsnotify/fsnotify"

	"github.com/poundemu/ballistic/baldecoder"
	"github.com/poundemu/ballistic/baldecodetable"
	"github.com/poundemu/ballistic/balloader"
)

var (
	Version = "dev"
	Commit  = "unknown"
)

// Tally is the per-mnemonic frequency count produced by one pass over a
// binary file, plus the count of words that did not decode.
type Tally struct {
	Counts  map[string]int
	Unknown int
	Total   int
}

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		inputFile   = flag.String("input", "", "Path to a raw binary file of little-endian 32-bit ARM64 words")
		watchDir    = flag.String("watch", "", "Directory to watch; re-run the tally over -input whenever a file in it changes")
		tui         = flag.Bool("tui", false, "Render a tview table browser over the frequency tally instead of printing")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("balcoverage %s (%s)\n", Version, Commit)
		os.Exit(0)
	}

	if *inputFile == "" {
		fmt.Fprintln(os.Stderr, "usage: balcoverage -input <file> [-watch DIR] [-tui]")
		os.Exit(2)
	}

	if *tui {
		runTUI(*inputFile)
		return
	}

	if *watchDir != "" {
		runWatch(*watchDir, *inputFile)
		return
	}

	t, err := tallyFile(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "balcoverage: %v\n", err)
		os.Exit(1)
	}
	report(t)
}

// tallyFile decodes every 32-bit word of the file at path and tallies
// mnemonic frequency.
func tallyFile(path string) (*Tally, error) {
	buf, err := balloader.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return tally(buf), nil
}

func tally(buf []byte) *Tally {
	t := &Tally{Counts: make(map[string]int)}
	for off := 0; off+4 <= len(buf); off += 4 {
		instr := binary.LittleEndian.Uint32(buf[off:])
		t.Total++
		meta, ok := baldecoder.Decode(baldecodetable.Table, instr)
		if !ok {
			t.Unknown++
			continue
		}
		t.Counts[meta.Name]++
	}
	return t
}

// ranked returns the tally's mnemonics sorted by descending frequency,
// ties broken alphabetically.
func (t *Tally) ranked() []string {
	names := make([]string, 0, len(t.Counts))
	for name := range t.Counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if t.Counts[names[i]] != t.Counts[names[j]] {
			return t.Counts[names[i]] > t.Counts[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

// report prints the top 20 mnemonics by frequency, then the unknown and
// total word counts.
func report(t *Tally) {
	names := t.ranked()
	if len(names) > 20 {
		names = names[:20]
	}
	for _, name := range names {
		fmt.Printf("%-20s %d\n", name, t.Counts[name])
	}
	fmt.Printf("unknown: %d\n", t.Unknown)
	fmt.Printf("total: %d\n", t.Total)
}

func runWatch(dir, inputFile string) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "balcoverage: %v\n", err)
		os.Exit(1)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		fmt.Fprintf(os.Stderr, "balcoverage: watching %s: %v\n", dir, err)
		os.Exit(1)
	}

	runAndReportOnce := func() {
		t, err := tallyFile(inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "balcoverage: %v\n", err)
			return
		}
		report(t)
	}

	fmt.Printf("watching %s for changes (ctrl-c to stop)\n", dir)
	runAndReportOnce()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			fmt.Printf("\n%s changed, re-running coverage over %s\n", event.Name, inputFile)
			runAndReportOnce()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "balcoverage: watch error: %v\n", err)
		}
	}
}
