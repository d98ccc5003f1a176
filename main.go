package main

import (
	"os"

	"github.com/go-rns/go-rns/lib/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
