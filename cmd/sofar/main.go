// Command sofar creates, verifies and inspects SOFA data sets.
package main

import (
	"os"

	"sofar/internal/cli"
)

func main() {
	if err := cli.New().Execute(); err != nil {
		os.Exit(1)
	}
}
