//go:build !windows

package config

import (
	"os"
	"strings"
	"unicode"

	"golang.org/x/term"
)

// CleanFileName removes characters not allowed in file names.
func CleanFileName(in string) string {
	out := strings.TrimLeft(strings.Map(func(sym rune) rune {
		if unicode.IsControl(sym) || strings.ContainsRune(string(os.PathSeparator)+string(os.PathListSeparator), sym) {
			return -1
		}
		return sym
	}, strings.TrimSpace(in)), ".")
	if len(out) == 0 {
		out = "_bad_file_name_"
	}
	return out
}

// EnableColorOutput checks if colorized output is possible.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}

// TerminalWidth returns number of columns of terminal attached to stream or
// def when stream is not a terminal.
func TerminalWidth(stream *os.File, def int) int {
	if !term.IsTerminal(int(stream.Fd())) {
		return def
	}
	if w, _, err := term.GetSize(int(stream.Fd())); err == nil && w > 0 {
		return w
	}
	return def
}
