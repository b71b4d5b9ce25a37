package main

import (
	"os"

	"github.com/tinyjs/mangle/pkg/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
