// Package render formats a run report for people: a line-per-file summary
// and an optional statistics table.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/dshills/splitdiff/internal/diff"
	"github.com/dshills/splitdiff/internal/writer"
)

// Summary renders one line per output file plus a closing total:
//
//	wrote out/Cargo_toml.diff (modify Cargo.toml, 9 lines)
//	2 files, 487 bytes
//
// Dry runs say "would write" and mark the total.
func Summary(rep writer.Report) string {
	var b strings.Builder

	verb := "wrote"
	if rep.DryRun {
		verb = "would write"
	}
	for _, f := range rep.Files {
		fmt.Fprintf(&b, "%s %s (%s %s, %d lines)\n", verb, f.Path, f.Action, subject(f), f.Lines)
	}

	fmt.Fprintf(&b, "%d file", len(rep.Files))
	if len(rep.Files) != 1 {
		b.WriteString("s")
	}
	fmt.Fprintf(&b, ", %d bytes", rep.TotalBytes())
	if rep.DryRun {
		b.WriteString(" (dry run)")
	}
	b.WriteString("\n")

	return b.String()
}

// StatTable renders the per-file statistics table to w.
func StatTable(w io.Writer, rep writer.Report) {
	table := tablewriter.NewWriter(w)
	table.SetBorder(false)
	table.SetHeader([]string{"File", "Action", "Source", "Lines", "Hunks", "Bytes"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, f := range rep.Files {
		table.Append([]string{
			f.Path,
			f.Action,
			subject(f),
			strconv.Itoa(f.Lines),
			strconv.Itoa(f.Hunks),
			strconv.Itoa(f.Bytes),
		})
	}
	table.Render()
}

// subject is the path a human knows the file by: the post-change side,
// falling back to the pre-change side for deletions.
func subject(f writer.Written) string {
	if f.NewPath == diff.NullDevice {
		return f.OldPath
	}
	return f.NewPath
}
