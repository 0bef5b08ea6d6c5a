package source

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"
)

func TestReadAll(t *testing.T) {
	got, err := ReadAll(strings.NewReader("--- a/x\n+++ b/x\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got != "--- a/x\n+++ b/x\n" {
		t.Errorf("got %q", got)
	}
}

func TestReadAllError(t *testing.T) {
	broken := errors.New("pipe closed")
	_, err := ReadAll(iotest.ErrReader(broken))
	if !errors.Is(err, broken) {
		t.Fatalf("err = %v, want wrapped %v", err, broken)
	}
}
