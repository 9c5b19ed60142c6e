package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/wrench/cmd/wrench"
	"github.com/arthur-debert/wrench/internal/version"
)

func main() {
	rootCmd := wrench.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "WRENCH",
		Section: "1",
		Source:  "wrench " + version.Version,
		Manual:  "wrench manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
