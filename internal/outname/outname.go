// Package outname derives sanitized, collision-free output file names for
// per-file patch segments.
package outname

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/dshills/splitdiff/internal/diff"
)

// Ext is the extension every output file carries.
const Ext = ".diff"

// DefaultMaxAttempts bounds how many suffixed candidates an Allocator tries
// per patch before giving up.
const DefaultMaxAttempts = 10000

// ErrNoFreeName is reported when every candidate name up to the attempt
// bound already exists in the output directory.
var ErrNoFreeName = errors.New("no free output name")

// forbidden characters are replaced by '_', flattening any patch path,
// separators and dots included, to a single portable file name. With the dot
// in the set, Ext is the only dot in the result.
const forbidden = `/<>:"\|?*.`

// Sanitize maps every forbidden character in name to an underscore.
func Sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(forbidden, r) {
			return '_'
		}
		return r
	}, name)
}

// Stem picks which side of a patch names the output file and sanitizes it:
// the post-change path normally, the pre-change path when the patch deletes
// the file.
func Stem(p diff.FilePatch) string {
	name := p.NewPath
	if name == diff.NullDevice {
		name = p.OldPath
	}
	return Sanitize(name)
}

// Allocator hands out file names under a single directory, suffixing
// "-1", "-2", ... ahead of the extension until a candidate is free.
type Allocator struct {
	fs          afero.Fs
	dir         string
	maxAttempts int
	probed      map[string]bool
}

// New returns an Allocator writing into dir on fs. A nil fs means the host
// filesystem; maxAttempts <= 0 means DefaultMaxAttempts.
func New(fs afero.Fs, dir string, maxAttempts int) *Allocator {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Allocator{
		fs:          fs,
		dir:         dir,
		maxAttempts: maxAttempts,
		probed:      make(map[string]bool),
	}
}

// Create claims the first free candidate name for p by creating the file
// exclusively, so a name probed free cannot be stolen before the write. The
// caller owns the returned file and its Close.
func (a *Allocator) Create(p diff.FilePatch) (afero.File, string, error) {
	stem := Stem(p)
	for n := 0; n < a.maxAttempts; n++ {
		path := filepath.Join(a.dir, candidate(stem, n))
		f, err := a.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, path, nil
		}
		if !os.IsExist(err) {
			return nil, "", fmt.Errorf("outname.Create: %s: %w", path, err)
		}
	}
	return nil, "", fmt.Errorf("outname.Create: %s: tried %d names: %w", candidate(stem, 0), a.maxAttempts, ErrNoFreeName)
}

// Allocate reports the path Create would claim without creating anything.
// The Allocator remembers every path it hands out here, so a dry run over
// patches that sanitize to the same stem predicts the suffixes a real run
// would use.
func (a *Allocator) Allocate(p diff.FilePatch) (string, error) {
	stem := Stem(p)
	for n := 0; n < a.maxAttempts; n++ {
		path := filepath.Join(a.dir, candidate(stem, n))
		if a.probed[path] {
			continue
		}
		_, err := a.fs.Stat(path)
		switch {
		case os.IsNotExist(err):
			a.probed[path] = true
			return path, nil
		case err != nil:
			return "", fmt.Errorf("outname.Allocate: %s: %w", path, err)
		}
	}
	return "", fmt.Errorf("outname.Allocate: %s: tried %d names: %w", candidate(stem, 0), a.maxAttempts, ErrNoFreeName)
}

func candidate(stem string, n int) string {
	if n == 0 {
		return stem + Ext
	}
	return fmt.Sprintf("%s-%d%s", stem, n, Ext)
}
