package main

import (
	"os"

	"github.com/errdex/errdex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
