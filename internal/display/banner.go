// Package display provides the startup banner and human-readable
// formatting helpers for batch summaries.
package display

import (
	"fmt"
	"os"

	"github.com/backmassage/trackpull/internal/term"
)

// PrintBanner prints the ASCII art banner; magenta when colors are enabled.
func PrintBanner() {
	banner := ` _____               _                _ _
|_   _| __ __ _  ___| | ___ __  _   _| | |
  | || '__/ _` + "`" + ` |/ __| |/ / '_ \| | | | | |
  | || | | (_| | (__|   <| |_) | |_| | | |
  |_||_|  \__,_|\___|_|\_\ .__/ \__,_|_|_|
                         |_|
`
	if term.Enabled() {
		_, _ = term.Magenta.Fprint(os.Stdout, banner)
		fmt.Fprintln(os.Stdout)
		return
	}
	fmt.Fprint(os.Stdout, banner)
	fmt.Fprintln(os.Stdout)
}
