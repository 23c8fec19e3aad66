package main

import (
	"os"

	"github.com/ashmilgit15/nursing-mcq-website/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
