// Package writer persists patch segments through a name allocator and
// reports what a run produced.
package writer

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dshills/splitdiff/internal/diff"
	"github.com/dshills/splitdiff/internal/outname"
)

// Written describes one output file of a run.
type Written struct {
	Path    string
	OldPath string
	NewPath string
	Action  string
	Lines   int
	Hunks   int
	Bytes   int
}

// Report lists a run's outputs in input order.
type Report struct {
	Files  []Written
	DryRun bool
}

// TotalBytes sums the segment sizes across the report.
func (r Report) TotalBytes() int {
	var n int
	for _, f := range r.Files {
		n += f.Bytes
	}
	return n
}

// Writer writes each patch segment to its own allocated file.
type Writer struct {
	Alloc  *outname.Allocator
	Log    *logrus.Logger
	DryRun bool
}

// WriteAll persists every patch in order and stops at the first failure.
// In dry-run mode it resolves the name each patch would get and writes
// nothing.
func (w *Writer) WriteAll(patches []diff.FilePatch) (Report, error) {
	rep := Report{DryRun: w.DryRun}
	for _, p := range patches {
		wr, err := w.write(p)
		if err != nil {
			return rep, fmt.Errorf("writer.WriteAll: %w", err)
		}
		rep.Files = append(rep.Files, wr)
	}
	return rep, nil
}

func (w *Writer) write(p diff.FilePatch) (Written, error) {
	lines, hunks := diff.Stats(p)
	wr := Written{
		OldPath: p.OldPath,
		NewPath: p.NewPath,
		Action:  p.Action(),
		Lines:   lines,
		Hunks:   hunks,
		Bytes:   len(p.Contents),
	}

	if w.DryRun {
		path, err := w.Alloc.Allocate(p)
		if err != nil {
			return wr, err
		}
		wr.Path = path
		w.log().WithField("action", wr.Action).Infof("would write %s", path)
		return wr, nil
	}

	f, path, err := w.Alloc.Create(p)
	if err != nil {
		return wr, err
	}
	if _, err := f.WriteString(p.Contents); err != nil {
		f.Close()
		return wr, fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return wr, fmt.Errorf("close %s: %w", path, err)
	}
	wr.Path = path
	w.log().WithField("action", wr.Action).Infof("wrote %s", path)
	return wr, nil
}

func (w *Writer) log() *logrus.Logger {
	if w.Log != nil {
		return w.Log
	}
	return logrus.StandardLogger()
}
