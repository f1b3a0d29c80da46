// Package main is the entry point for the cargo2junit CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/cargo2junit/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
