package writer

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/dshills/splitdiff/internal/diff"
	"github.com/dshills/splitdiff/internal/outname"
)

func discardLog() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestWriteAll(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := &Writer{Alloc: outname.New(fs, "out", 0), Log: discardLog()}

	patches := []diff.FilePatch{
		{
			OldPath:  "Cargo.toml",
			NewPath:  "Cargo.toml",
			Contents: "--- a/Cargo.toml\n+++ b/Cargo.toml\n@@ -1 +1 @@\n-a\n+b\n",
		},
		{
			OldPath:  "src/main.rs",
			NewPath:  diff.NullDevice,
			Contents: "--- a/src/main.rs\n+++ /dev/null\n@@ -1 +0,0 @@\n-x\n",
		},
	}

	rep, err := w.WriteAll(patches)
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.Files) != 2 {
		t.Fatalf("got %d files, want 2", len(rep.Files))
	}
	if rep.DryRun {
		t.Error("DryRun should be false")
	}

	wantPaths := []string{
		filepath.Join("out", "Cargo_toml.diff"),
		filepath.Join("out", "src_main_rs.diff"),
	}
	for i, want := range wantPaths {
		if rep.Files[i].Path != want {
			t.Errorf("file %d path = %q, want %q", i, rep.Files[i].Path, want)
		}
		data, err := afero.ReadFile(fs, want)
		if err != nil {
			t.Fatalf("read back %s: %v", want, err)
		}
		if string(data) != patches[i].Contents {
			t.Errorf("file %d contents differ from segment", i)
		}
	}

	first := rep.Files[0]
	if first.Action != "modify" || first.Lines != 5 || first.Hunks != 1 {
		t.Errorf("first = %+v, want modify / 5 lines / 1 hunk", first)
	}
	if rep.Files[1].Action != "delete" {
		t.Errorf("second action = %q, want delete", rep.Files[1].Action)
	}
	if want := len(patches[0].Contents) + len(patches[1].Contents); rep.TotalBytes() != want {
		t.Errorf("TotalBytes = %d, want %d", rep.TotalBytes(), want)
	}
}

func TestWriteAllSameStem(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := &Writer{Alloc: outname.New(fs, "", 0), Log: discardLog()}

	p := diff.FilePatch{OldPath: "a.go", NewPath: "a.go", Contents: "--- a/a.go\n+++ b/a.go\n"}
	rep, err := w.WriteAll([]diff.FilePatch{p, p})
	if err != nil {
		t.Fatal(err)
	}
	if rep.Files[0].Path != "a_go.diff" || rep.Files[1].Path != "a_go-1.diff" {
		t.Errorf("paths = %q, %q; want a_go.diff, a_go-1.diff", rep.Files[0].Path, rep.Files[1].Path)
	}
}

func TestWriteAllDryRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := &Writer{Alloc: outname.New(fs, "", 0), Log: discardLog(), DryRun: true}

	p := diff.FilePatch{OldPath: "a.go", NewPath: "a.go", Contents: "--- a/a.go\n+++ b/a.go\n"}
	rep, err := w.WriteAll([]diff.FilePatch{p, p})
	if err != nil {
		t.Fatal(err)
	}
	if !rep.DryRun {
		t.Error("DryRun should be true")
	}
	if rep.Files[0].Path != "a_go.diff" || rep.Files[1].Path != "a_go-1.diff" {
		t.Errorf("predicted paths = %q, %q; want a_go.diff, a_go-1.diff", rep.Files[0].Path, rep.Files[1].Path)
	}
	for _, f := range rep.Files {
		if ok, _ := afero.Exists(fs, f.Path); ok {
			t.Errorf("dry run created %s", f.Path)
		}
	}
}

func TestWriteAllStopsOnError(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "a_go.diff", nil, 0o644); err != nil {
		t.Fatal(err)
	}

	w := &Writer{Alloc: outname.New(fs, "", 1), Log: discardLog()}
	p := diff.FilePatch{OldPath: "a.go", NewPath: "a.go", Contents: "--- a/a.go\n+++ b/a.go\n"}

	rep, err := w.WriteAll([]diff.FilePatch{p})
	if !errors.Is(err, outname.ErrNoFreeName) {
		t.Fatalf("err = %v, want ErrNoFreeName", err)
	}
	if len(rep.Files) != 0 {
		t.Errorf("got %d files on failure, want 0", len(rep.Files))
	}
}
