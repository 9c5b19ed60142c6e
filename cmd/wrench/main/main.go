package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/wrench/cmd/wrench"
	"github.com/arthur-debert/wrench/pkg/errors"
	"github.com/arthur-debert/wrench/pkg/ui/styles"
)

func main() {
	rootCmd := wrench.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// backend failures were already shown as notifications
		if !errors.IsErrorCode(err, errors.ErrBackend) {
			errorStyle := styles.GetStyle("Error")
			fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		}
		os.Exit(1)
	}
}
