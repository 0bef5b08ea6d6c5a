// Package diff splits multi-file unified diff text into per-file patch segments.
package diff

import (
	"errors"
	"fmt"
	"strings"
)

// NullDevice is the placeholder path diff tools emit for the missing side of
// a comparison: the old side of a created file, the new side of a deleted one.
const NullDevice = "/dev/null"

// ErrNoHeaders is reported when a segment cannot be given both file names
// because the input lacks the "--- "/"+++ " header lines that carry them.
var ErrNoHeaders = errors.New("no file headers (--- / +++) found in diff")

// FilePatch is one self-contained patch segment for a single file: the
// normalized pre- and post-change identities plus the segment text verbatim,
// including its own header lines and any preceding "diff " boundary line.
type FilePatch struct {
	OldPath  string
	NewPath  string
	Contents string
}

// IsCreate reports whether the segment introduces a new file.
func (p FilePatch) IsCreate() bool { return p.OldPath == NullDevice }

// IsDelete reports whether the segment removes the file.
func (p FilePatch) IsDelete() bool { return p.NewPath == NullDevice }

// Action names what the segment does to its file.
func (p FilePatch) Action() string {
	switch {
	case p.IsCreate():
		return "create"
	case p.IsDelete():
		return "delete"
	default:
		return "modify"
	}
}

// Split scans diff text once, in line order, and returns one FilePatch per
// file section, in the order the sections appear.
//
// A line starting with "diff " closes the current section, but only after a
// "--- " header has been seen, so commentary or commit metadata ahead of the
// first real section (which may itself contain lines starting with "diff ")
// is kept as the leading content of the first patch rather than dropped.
// Every line, markers included, lands in some patch's Contents with its
// original terminator, so concatenating all Contents in order reproduces the
// input byte for byte.
//
// The parse is all or nothing: if any section ends up without both file
// names, Split returns ErrNoHeaders and no patches.
func Split(text string) ([]FilePatch, error) {
	var (
		patches []FilePatch
		segment []string
		oldName string
		newName string
	)

	flush := func() error {
		if oldName == "" || newName == "" {
			return fmt.Errorf("diff.Split: segment %d: %w", len(patches)+1, ErrNoHeaders)
		}
		patches = append(patches, FilePatch{
			OldPath:  oldName,
			NewPath:  newName,
			Contents: strings.Join(segment, ""),
		})
		return nil
	}

	for _, line := range splitLines(text) {
		stripped := chomp(line)
		switch {
		case strings.HasPrefix(stripped, "diff ") && oldName != "":
			if err := flush(); err != nil {
				return nil, err
			}
			segment = segment[:0]
			oldName, newName = "", ""
		case strings.HasPrefix(stripped, "--- "):
			oldName = normalizeName(stripped[4:])
		case strings.HasPrefix(stripped, "+++ "):
			newName = normalizeName(stripped[4:])
		}
		segment = append(segment, line)
	}

	if err := flush(); err != nil {
		return nil, err
	}
	return patches, nil
}

// Stats reports how many lines and "@@" hunk headers a segment carries.
func Stats(p FilePatch) (lines, hunks int) {
	for _, line := range splitLines(p.Contents) {
		lines++
		if strings.HasPrefix(line, "@@") {
			hunks++
		}
	}
	return lines, hunks
}

// normalizeName strips the version-control tree prefix ("a/" or "b/") and
// the tab-delimited timestamp diff(1) appends after the path.
func normalizeName(name string) string {
	if strings.HasPrefix(name, "a/") || strings.HasPrefix(name, "b/") {
		name = name[2:]
	}
	if i := strings.IndexByte(name, '\t'); i >= 0 {
		name = name[:i]
	}
	return name
}

// splitLines cuts text after every newline, keeping each line's terminator
// attached. An unterminated final line is still a line; empty text has none.
func splitLines(text string) []string {
	lines := strings.SplitAfter(text, "\n")
	if n := len(lines); lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// chomp removes a trailing LF or CRLF for marker matching; the stored line
// keeps its terminator.
func chomp(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
