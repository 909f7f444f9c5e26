// Command trackpull is the CLI entrypoint for the Trackpull batch audio
// extractor. All wiring lives in internal/cli.
package main

import "github.com/backmassage/trackpull/internal/cli"

func main() {
	cli.Execute()
}
