package main

import (
	"os"

	"github.com/tooley/tooley/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
