package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mwestveld/newscanvas/pkg/state"
	"github.com/mwestveld/newscanvas/pkg/testutil"
)

func TestPrintCanvasListsNodes(t *testing.T) {
	gen := testutil.NewDefault()
	fix := gen.Star(3)

	st := state.NewStore()
	st.Mount(fix.Nodes, fix.Edges, nil)

	var buf bytes.Buffer
	printCanvas(&buf, st)
	out := buf.String()

	for _, n := range fix.Nodes {
		if !strings.Contains(out, n.ID) {
			t.Errorf("output missing node %s", n.ID)
		}
	}
	if !strings.Contains(out, "4 nodes, 3 edges") {
		t.Errorf("output missing summary line:\n%s", out)
	}
}

func TestPrintCanvasShowsLayoutGroups(t *testing.T) {
	gen := testutil.NewDefault()
	fix := gen.EntityClusters(2, 2, 0)

	st := state.NewStore()
	st.Mount(fix.Nodes, fix.Edges, nil)
	st.Reflow("group-entity", "")

	var buf bytes.Buffer
	printCanvas(&buf, st)
	out := buf.String()

	if !strings.Contains(out, "layout: group-entity") {
		t.Errorf("output missing layout line:\n%s", out)
	}
	if !strings.Contains(out, "Entity A") {
		t.Errorf("output missing group label:\n%s", out)
	}
}

func TestParseModeRejectsUnknown(t *testing.T) {
	if _, err := parseMode("spiral"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if m, err := parseMode(""); err != nil || m != "" {
		t.Errorf("empty mode should be accepted, got %q, %v", m, err)
	}
}
