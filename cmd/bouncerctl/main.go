// Package main is the entry point for the bouncerctl binary.
package main

import (
	"os"

	cli "bouncer/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
