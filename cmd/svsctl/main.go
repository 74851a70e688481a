package main

import (
	"github.com/frostgate/svscoord/internal/cli"
)

func main() {
	cli.Execute()
}
