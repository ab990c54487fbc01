package main

import (
	"os"

	"github.com/typst-community/utpm/cmd/utpm"
)

func main() {
	os.Exit(utpm.Execute())
}
