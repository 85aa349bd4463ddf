package main

import (
	"os"

	"github.com/leafdoctor/leafdoctor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
