package main

import (
	"os"

	"pet-adoption-hub/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
