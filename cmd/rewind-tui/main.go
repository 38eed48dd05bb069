// Package main is a terminal visualization of an undoable list and its
// history stacks.
//
// Keys: a adds an item, d deletes the last item, u undoes, r redoes,
// b/c begin and commit a block transaction, q quits.
package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/krellware/rewind/container"
)

func main() {
	os.Exit(run())
}

func run() int {
	list := container.NewConcurrentList[string](container.WithHistoryLevels(50))
	defer list.Dispose()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: init screen: %v\n", err)
		return 1
	}
	defer screen.Fini()

	next := 1
	status := "ready"

	for {
		draw(screen, list, status)

		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Rune() == 'q' {
				return 0
			}
			status = handleKey(ev.Rune(), list, &next)
		}
	}
}

func handleKey(r rune, list *container.List[string], next *int) string {
	switch r {
	case 'a':
		item := fmt.Sprintf("item-%d", *next)
		*next++
		if err := list.Add(item); err != nil {
			return fmt.Sprintf("add failed: %v", err)
		}
		return "added " + item
	case 'd':
		item, ok, err := list.RemoveLast()
		if err != nil {
			return fmt.Sprintf("remove failed: %v", err)
		}
		if !ok {
			return "nothing to remove"
		}
		return "removed " + item
	case 'u':
		if err := list.Undo(); err != nil {
			return fmt.Sprintf("undo failed: %v", err)
		}
		return "undo"
	case 'r':
		if err := list.Redo(); err != nil {
			return fmt.Sprintf("redo failed: %v", err)
		}
		return "redo"
	case 'b':
		if err := list.StartBlock(); err != nil {
			return fmt.Sprintf("block failed: %v", err)
		}
		return "block open"
	case 'c':
		if err := list.CommitBlock(); err != nil {
			return fmt.Sprintf("commit failed: %v", err)
		}
		return "block committed"
	default:
		return "keys: a d u r b c q"
	}
}

func draw(screen tcell.Screen, list *container.List[string], status string) {
	screen.Clear()

	header := tcell.StyleDefault.Bold(true)
	drawText(screen, 0, 0, header, "rewind: undoable list")

	items, err := list.Items()
	if err != nil {
		drawText(screen, 0, 2, tcell.StyleDefault, fmt.Sprintf("read failed: %v", err))
	} else {
		for i, item := range items {
			drawText(screen, 2, 2+i, tcell.StyleDefault, fmt.Sprintf("%3d  %s", i, item))
		}
	}

	_, height := screen.Size()
	footer := fmt.Sprintf("undo:%d redo:%d block:%v  |  %s",
		list.UndoCount(), list.RedoCount(), list.InBlock(), status)
	drawText(screen, 0, height-1, header.Reverse(true), footer)

	screen.Show()
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	col := x
	for _, r := range text {
		screen.SetContent(col, y, r, nil, style)
		col++
	}
}
