package main

import (
	"github.com/SXPXL/eventflow/internal/cli"
)

func main() {
	cli.Execute()
}
