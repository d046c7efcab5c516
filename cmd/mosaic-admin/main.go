// Package main is the entry point of the mosaic-admin command-line tool.
package main

import (
	"github.com/manolaz/mosaic/cmd/cli"
)

func main() {
	cli.Execute()
}
