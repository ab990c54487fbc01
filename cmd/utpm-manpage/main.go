package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/typst-community/utpm/cmd/utpm"
	"github.com/typst-community/utpm/internal/version"
)

func main() {
	rootCmd := utpm.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "UTPM",
		Section: "1",
		Source:  "utpm " + version.Version,
		Manual:  "utpm manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
