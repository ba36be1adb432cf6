// Package graphviz rasterizes an emitted DOT description by invoking the
// local Graphviz binary. Layout failures surface as *RenderError, distinct
// from data/build errors, so the textual description stays usable even when
// rasterization fails.
package graphviz

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/awantoch/procmap/constants"
)

// RenderError reports a failure of the external layout engine. The build
// artifacts that preceded it remain valid.
type RenderError struct {
	Stderr string
	Err    error
}

func (e *RenderError) Error() string {
	msg := fmt.Sprintf("graphviz render failed: %v", e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *RenderError) Unwrap() error { return e.Err }

// Renderer shells out to a Graphviz layout binary.
type Renderer struct {
	binary string
}

// New returns a Renderer for the given binary; empty means the default
// `dot`.
func New(binary string) *Renderer {
	if binary == "" {
		binary = constants.DefaultDotBinary
	}
	return &Renderer{binary: binary}
}

// Available reports whether the layout binary can be found on PATH.
func (r *Renderer) Available() bool {
	_, err := exec.LookPath(r.binary)
	return err == nil
}

// Render lays out the DOT text into the requested output format (svg, png,
// pdf, ...).
func (r *Renderer) Render(ctx context.Context, dot string, format string) ([]byte, error) {
	if format == "" {
		format = "svg"
	}
	cmd := exec.CommandContext(ctx, r.binary, "-T"+format)
	cmd.Stdin = strings.NewReader(dot)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, &RenderError{Stderr: stderr.String(), Err: err}
	}
	return stdout.Bytes(), nil
}
