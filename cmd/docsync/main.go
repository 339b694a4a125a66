package main

import (
	"os"

	"github.com/ariel-frischer/docsync/internal/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.Execute()))
}
