package ffmpeg

import (
	"bytes"
	"os/exec"
)

// ExecResult holds the outcome of a single ffmpeg invocation.
type ExecResult struct {
	Stderr string
	Err    error
}

// Execute runs the built command synchronously and captures stderr for
// failure reporting. The child is never signalled: batch cancellation is
// cooperative, and an extraction that has already started runs to
// completion.
func Execute(args []string) ExecResult {
	cmd := exec.Command(args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	return ExecResult{
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}
