// Package main is an interactive Lua shell over an undoable list.
//
// Every line is executed as Lua with the container API bound as globals:
//
//	> add(6) add(7)
//	> undo()
//	> print(count())
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/krellware/rewind/internal/luashell"
)

func main() {
	os.Exit(run())
}

func run() int {
	levels := flag.Int("levels", 100, "undo/redo history depth")
	flag.Parse()

	shell := luashell.New(*levels)
	defer shell.Close()

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		fmt.Println("rewind shell: add(v), remove(v), undo(), redo(), items(), exit")
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Print("> ")
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "exit" || line == "quit" {
			break
		}
		if line == "" {
			continue
		}
		if err := shell.Do(line); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: read input: %v\n", err)
		return 1
	}
	return 0
}
