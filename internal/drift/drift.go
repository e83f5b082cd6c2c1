// Package drift compares a committed registry export with the current one.
package drift

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Result describes how the current export differs from a snapshot.
type Result struct {
	// Patch is a diff-match-patch patch that turns the snapshot into the
	// current export; empty when nothing changed.
	Patch   string
	Added   int // lines only in the current export
	Removed int // lines only in the snapshot
}

// Differs reports whether the snapshot and current export disagree.
func (r Result) Differs() bool {
	return r.Added > 0 || r.Removed > 0
}

// Summary returns a one-line description of the result.
func (r Result) Summary() string {
	if !r.Differs() {
		return "no drift"
	}
	return fmt.Sprintf("drift: %d line(s) added, %d line(s) removed", r.Added, r.Removed)
}

// Compare diffs snapshot against current line by line. Both are normalized
// first so CRLF line endings and trailing whitespace do not count as drift.
func Compare(snapshot, current string) Result {
	before := normalize(snapshot)
	after := normalize(current)
	if before == after {
		return Result{}
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var res Result
	for _, d := range diffs {
		n := lineCount(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			res.Added += n
		case diffmatchpatch.DiffDelete:
			res.Removed += n
		}
	}
	res.Patch = dmp.PatchToText(dmp.PatchMake(before, diffs))
	return res
}

func lineCount(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

// normalize trims trailing whitespace from each line and converts CRLF to LF.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
