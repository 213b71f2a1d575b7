package main

import (
	"os"

	"github.com/msto63/keplerkv/cmd/kepler/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
