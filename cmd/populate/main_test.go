package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yigit/unisession/internal/seed"
)

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, seed.Summary{Results: []seed.Result{
		{Entity: "faculties", Created: 5},
		{Entity: "groups", Created: 48, Failed: 2},
	}})

	out := buf.String()
	for _, want := range []string{"ENTITY", "faculties", "groups", "48", "TOTAL", "53"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
