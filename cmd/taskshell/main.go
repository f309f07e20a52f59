package main

import (
	"os"

	"github.com/go-go-golems/taskshell/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
