package main

import (
	"os"

	"github.com/abhisek/openmind/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
