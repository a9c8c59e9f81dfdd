package main

import (
	"github.com/NVIDIA/snapraid-metrics/pkg/cli"
)

func main() {
	cli.Execute()
}
