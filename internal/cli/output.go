package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// printJSON emits a value as indented JSON on stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newTable returns a tabwriter for aligned table output.
func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

// terminalWidth returns the usable terminal width, or a conservative
// default when stdout is not a terminal.
func terminalWidth() int {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return 120
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// truncate shortens a string to at most n runes with an ellipsis.
func truncate(s string, n int) string {
	if n <= 1 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

// bar renders a simple percentage bar scaled to the terminal.
func bar(pct float64, width int) string {
	if width < 10 {
		width = 10
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * float64(width))
	out := ""
	for i := 0; i < width; i++ {
		if i < filled {
			out += "█"
		} else {
			out += "░"
		}
	}
	return fmt.Sprintf("%s %5.1f%%", out, pct)
}
