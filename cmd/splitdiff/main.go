package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/splitdiff/internal/ui"
)

var version = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:           "splitdiff",
		Short:         "Split a multi-file unified diff into one patch file per changed file",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(newSplitCmd(), newConfigCmd())

	if err := root.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			ui.Error("%s", ee.msg)
			os.Exit(ee.code)
		}
		ui.Error("%v", err)
		os.Exit(1)
	}
}
