package main

import (
	"os"

	"github.com/viajo-ai/viajo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
