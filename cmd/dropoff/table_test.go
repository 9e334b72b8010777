package main

import (
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/text"
)

func TestRenderTable_AlignsAndPads(t *testing.T) {
	out := renderTable(
		[]column{{title: "ID"}, {title: "Waiting", align: text.AlignRight}},
		[][]string{{"A-B-1", "3h"}, {"A-B-2"}},
	)
	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Fatalf("renderTable produced %d lines, want 6:\n%s", len(lines), out)
	}
	// "Waiting" is 7 wide: one pad space plus five alignment spaces before "3h".
	requireContains(t, lines[3], "      3h │")
	requireContains(t, lines[4], "A-B-2")
}

func TestRenderTable_NoColumns(t *testing.T) {
	if got := renderTable(nil, [][]string{{"x"}}); got != "" {
		t.Fatalf("renderTable(nil) = %q, want empty", got)
	}
}
