package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// coverageTUI renders the mnemonic frequency tally as a scrollable table,
// grounded on the teacher's tview-based debugger.TUI layout.
type coverageTUI struct {
	app       *tview.Application
	table     *tview.Table
	status    *tview.TextView
	inputFile string
	tally     *Tally
}

func runTUI(inputFile string) {
	t := &coverageTUI{
		app:       tview.NewApplication(),
		table:     tview.NewTable().SetBorders(false).SetFixed(1, 0),
		status:    tview.NewTextView().SetDynamicColors(true),
		inputFile: inputFile,
	}
	t.table.SetBorder(true).SetTitle(" Mnemonic Frequency ")
	t.status.SetBorder(true).SetTitle(" Status ")

	t.refresh()

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.status, 3, 0, false).
		AddItem(t.table, 0, 1, true)

	t.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || event.Rune() == 'q' {
			t.app.Stop()
			return nil
		}
		if event.Key() == tcell.KeyCtrlR {
			t.refresh()
		}
		return event
	})

	if err := t.app.SetRoot(layout, true).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

// refresh re-tallies inputFile and redraws the table; a load error is shown
// in the status bar instead of stopping the application.
func (t *coverageTUI) refresh() {
	tally, err := tallyFile(t.inputFile)
	if err != nil {
		t.status.Clear()
		fmt.Fprintf(t.status, "[red]%v[-]", err)
		return
	}
	t.tally = tally
	t.render()
}

func (t *coverageTUI) render() {
	t.status.Clear()
	fmt.Fprintf(t.status, "%s  total: %d  unknown: %d  ctrl-r to refresh, q/esc to quit",
		t.inputFile, t.tally.Total, t.tally.Unknown)

	t.table.Clear()
	t.table.SetCell(0, 0, tview.NewTableCell("Mnemonic").SetSelectable(false).SetAttributes(tcell.AttrBold))
	t.table.SetCell(0, 1, tview.NewTableCell("Count").SetSelectable(false).SetAttributes(tcell.AttrBold))

	for i, name := range t.tally.ranked() {
		row := i + 1
		t.table.SetCell(row, 0, tview.NewTableCell(name))
		t.table.SetCell(row, 1, tview.NewTableCell(fmt.Sprintf("%d", t.tally.Counts[name])))
	}
}
