// Package gitdiff acquires diff text from a git working tree instead of
// stdin, diffing the tree against the merge base with a base ref.
package gitdiff

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultBase is the ref the working tree is compared against when the
// caller does not name one.
const DefaultBase = "origin/HEAD"

// ErrNoChanges is reported when git produces an empty diff.
var ErrNoChanges = errors.New("git diff reported no changes")

// Diff returns the unified diff between the working tree in dir and its
// merge base with baseRef, so commits on the base branch made after the
// branch point do not leak into the output. An empty baseRef means
// DefaultBase.
func Diff(ctx context.Context, dir, baseRef string) (string, error) {
	if baseRef == "" {
		baseRef = DefaultBase
	}
	sha, err := runGit(ctx, dir, "merge-base", baseRef, "HEAD")
	if err != nil {
		return "", err
	}
	text, err := runGit(ctx, dir, "diff", strings.TrimSpace(sha))
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("gitdiff.Diff: %s: %w", dir, ErrNoChanges)
	}
	return text, nil
}

// runGit executes git -C dir with args, returning stdout. Stderr is folded
// into the error.
func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", dir}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("gitdiff: git %s: %w: %s", strings.Join(args, " "), err, msg)
		}
		return "", fmt.Errorf("gitdiff: git %s: %w", strings.Join(args, " "), err)
	}
	return stdout.String(), nil
}
