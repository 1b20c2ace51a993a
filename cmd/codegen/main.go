package main

import (
	"os"

	"github.com/randalmurphal/codegen/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
