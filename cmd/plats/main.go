package main

import (
	"github.com/globetraiteurs/plats/pkg/cli"
)

func main() {
	cli.Execute()
}
