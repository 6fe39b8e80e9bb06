// Command balview is a graphical viewer: it translates a guest ARM64
// binary and displays the emitted IR alongside the constant pool, grounded
// on the teacher's fyne-based debugger GUI.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

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

// view holds the widgets balview updates after each translation.
type view struct {
	app       fyne.App
	window    fyne.Window
	irGrid    *widget.TextGrid
	constGrid *widget.TextGrid
	status    *widget.Label
}

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		inputFile   = flag.String("input", "", "Path to a raw guest ARM64 binary")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("balview %s (%s)\n", Version, Commit)
		os.Exit(0)
	}

	v := newView()
	if *inputFile != "" {
		v.translateAndRender(*inputFile)
	}
	v.window.ShowAndRun()
}

func newView() *view {
	myApp := app.New()
	myWindow := myApp.NewWindow("Ballistic IR Viewer")

	v := &view{
		app:       myApp,
		window:    myWindow,
		irGrid:    widget.NewTextGrid(),
		constGrid: widget.NewTextGrid(),
		status:    widget.NewLabel("no guest binary loaded"),
	}

	openButton := widget.NewButton("Open guest binary...", func() {
		v.promptAndTranslate()
	})

	split := container.NewHSplit(
		container.NewBorder(widget.NewLabel("IR"), nil, nil, nil, container.NewScroll(v.irGrid)),
		container.NewBorder(widget.NewLabel("Constants"), nil, nil, nil, container.NewScroll(v.constGrid)),
	)

	myWindow.SetContent(container.NewBorder(openButton, v.status, nil, nil, split))
	myWindow.Resize(fyne.NewSize(900, 600))
	return v
}

func (v *view) promptAndTranslate() {
	// A full file-open dialog is out of scope for this viewer; guide the
	// user to the -input flag instead.
	v.status.SetText("pass -input <file> at launch to load a guest binary")
}

func (v *view) translateAndRender(path string) {
	guest, err := balloader.LoadFile(path)
	if err != nil {
		v.status.SetText(fmt.Sprintf("load failed: %v", err))
		return
	}

	engine, code := balengine.New(balmemory.DefaultAllocator(), ballog.Discard(), nil)
	if code != balerrors.Success {
		v.status.SetText(fmt.Sprintf("engine init failed: %v", code))
		return
	}
	defer engine.Destroy()

	status := baltranslate.Translate(engine, nil, guest, len(guest))
	v.render(engine, status)
}

func (v *view) render(engine *balengine.Engine, status balerrors.Code) {
	var ir strings.Builder
	for i := uint32(0); i < engine.InstructionCount; i++ {
		w := engine.Instructions[i]
		fmt.Fprintf(&ir, "v%-4d %-16s %-8s %-8s %-8s\n",
			i, w.Opcode(), formatSource(w.Source1()), formatSource(w.Source2()), formatSource(w.Source3()))
	}
	v.irGrid.SetText(ir.String())

	var consts strings.Builder
	for i := uint32(0); i < engine.ConstantCount; i++ {
		fmt.Fprintf(&consts, "C(%-4d) = 0x%016X\n", i, engine.Constants[i])
	}
	v.constGrid.SetText(consts.String())

	if status == balerrors.Success {
		v.status.SetText(fmt.Sprintf("%d IR instruction(s), %d constant(s)", engine.InstructionCount, engine.ConstantCount))
	} else {
		v.status.SetText(fmt.Sprintf("translation halted: %v (after %d instructions)", status, engine.InstructionCount))
	}
}

func formatSource(s balir.Source) string {
	if s.IsConstant {
		return fmt.Sprintf("C(%d)", s.Index)
	}
	return fmt.Sprintf("v%d", s.Index)
}
