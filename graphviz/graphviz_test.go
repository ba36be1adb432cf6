package graphviz

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestNew_DefaultBinary(t *testing.T) {
	r := New("")
	if r.binary != "dot" {
		t.Errorf("default binary = %q", r.binary)
	}
	if New("neato").binary != "neato" {
		t.Errorf("binary override not applied")
	}
}

func TestRender_MissingBinary(t *testing.T) {
	r := New("procmap-no-such-binary")
	if r.Available() {
		t.Fatalf("bogus binary reported available")
	}
	_, err := r.Render(context.Background(), "digraph {}", "svg")
	if err == nil {
		t.Fatalf("expected an error")
	}
	var re *RenderError
	if !errors.As(err, &re) {
		t.Fatalf("expected *RenderError, got %T", err)
	}
	if re.Unwrap() == nil {
		t.Errorf("RenderError should wrap the underlying error")
	}
}

func TestRender_Graphviz(t *testing.T) {
	r := New("")
	if !r.Available() {
		t.Skip("dot not installed")
	}
	out, err := r.Render(context.Background(), "digraph \"t\" { a -> b; }", "svg")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(string(out), "<svg") {
		t.Errorf("expected SVG output")
	}

	_, err = r.Render(context.Background(), "not dot at all", "svg")
	var re *RenderError
	if !errors.As(err, &re) {
		t.Fatalf("expected *RenderError for invalid input, got %v", err)
	}
	if re.Stderr == "" {
		t.Errorf("expected stderr captured from the layout engine")
	}
}
