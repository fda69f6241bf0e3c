// Package util provides small helpers shared by the CLI, the terminal player and the animation loaders.
package util

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dotplay-cli/dotplay/filesystem"
	"golang.org/x/exp/constraints"
	"golang.org/x/term"
)

var (
	invalidChars = regexp.MustCompile(`[\\/<>:;"'|?!*{}#%&^+,~\s]`)
	underscores  = regexp.MustCompile(`__+`)
	edgeSeps     = regexp.MustCompile(`^[_\-.]+|[_\-.]+$`)
)

// SanitizeFilename normalizes a string into a filename safe on every platform.
// Animation ids are derived from file names, so this is also how ids are made.
func SanitizeFilename(filename string) string {
	filename = invalidChars.ReplaceAllString(filename, "_")
	filename = underscores.ReplaceAllString(filename, "_")
	return edgeSeps.ReplaceAllString(filename, "")
}

// Quantify returns "1 frame" or "N frames".
func Quantify(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// Capitalize transforms the first rune of a string to its uppercase equivalent.
func Capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// TerminalSize retrieves the current character dimensions of the terminal window.
func TerminalSize() (width, height int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// FileStem extracts the base filename from a path, excluding the extension.
func FileStem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// PrintErasable prints a transient status line and returns a closure that erases it.
func PrintErasable(msg string) (eraser func()) {
	fmt.Fprintf(os.Stdout, "\r%s", msg)
	return func() {
		fmt.Fprintf(os.Stdout, "\r%s\r", strings.Repeat(" ", len(msg)))
	}
}

// Ignore executes a function and discards its error.
func Ignore(f func() error) {
	_ = f()
}

// Max returns the maximum value among arguments.
func Max[T constraints.Ordered](items ...T) (max T) {
	if len(items) == 0 {
		return
	}
	max = items[0]
	for _, item := range items[1:] {
		if item > max {
			max = item
		}
	}
	return
}

// Min returns the minimum value among arguments.
func Min[T constraints.Ordered](items ...T) (min T) {
	if len(items) == 0 {
		return
	}
	min = items[0]
	for _, item := range items[1:] {
		if item < min {
			min = item
		}
	}
	return
}

// Percent returns round(part/whole*100) clamped to [0, 100], or 0 when whole is not positive.
func Percent[T constraints.Integer | constraints.Float](part, whole T) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Max(0, math.Min(100, math.Round(float64(part)/float64(whole)*100))))
}

// Delete removes a file or a directory tree through the virtual filesystem.
func Delete(path string) error {
	fs := filesystem.API()
	stat, err := fs.Stat(path)
	if err != nil {
		return err
	}

	if stat.IsDir() {
		return fs.RemoveAll(path)
	}
	return fs.Remove(path)
}
