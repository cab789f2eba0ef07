package main

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// useColor reports whether the report written to w should carry ANSI
// colours, following cfg.Color. In auto mode a console that cannot take
// VT output gets plain text.
func useColor(w io.Writer) bool {
	switch strings.ToLower(cfg.Color) {
	case "always":
		enableVT()
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false
	}
	return enableVT()
}
