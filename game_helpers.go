package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/cheesec4ke/conway/model"
	"github.com/cheesec4ke/conway/utils"
)

// Escape sequences owned by the terminal collaborator.
const (
	clearScreen = "\x1b[2J"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	resetColor  = "\x1b[0m"
)

// colorCodes maps the recognized color names to SGR foreground
// sequences. Unknown names are ignored.
var colorCodes = map[string]string{
	"black":   "\x1b[30m",
	"red":     "\x1b[31m",
	"green":   "\x1b[32m",
	"yellow":  "\x1b[33m",
	"blue":    "\x1b[34m",
	"magenta": "\x1b[35m",
	"cyan":    "\x1b[36m",
	"white":   "\x1b[37m",
}

// applyTerminalDefaults fills unset dimensions from the terminal
// size, leaving room below the board for the statistics lines.
func applyTerminalDefaults(config *utils.Config) {
	if config.Width > 0 && config.Height > 0 {
		return
	}

	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		cols, rows = 80, 24
	}

	blankLines := 7
	if config.Quiet {
		blankLines = 3
	}

	if config.Width <= 0 {
		config.Width = cols
	}
	if config.Height <= 0 {
		config.Height = max(1, rows*2-blankLines*2)
	}
}

// promptFrameInterval asks for a target frame rate on stdin. Anything
// unparsable falls back to the default; zero means unthrottled.
func promptFrameInterval(defaultFPS int) time.Duration {
	fmt.Printf("Input the desired FPS (0 for unlimited, default %d): ", defaultFPS)

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		line = ""
	}
	fps, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || fps < 0 {
		fps = defaultFPS
	}

	if fps == 0 {
		return 0
	}
	return time.Second / time.Duration(fps)
}

// setupScreen prepares the terminal for frame drawing.
func setupScreen(sink model.Sink, color string) {
	fmt.Fprint(sink, clearScreen, hideCursor)
	if code, ok := colorCodes[strings.ToLower(color)]; ok {
		fmt.Fprint(sink, code)
	}
	_ = sink.Flush()
}

// restoreScreen undoes setupScreen. Safe to call on any exit path.
func restoreScreen(sink model.Sink) {
	fmt.Fprint(sink, resetColor, showCursor, "\n")
	_ = sink.Flush()
}
