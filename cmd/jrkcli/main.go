package main

import (
	"github.com/robotalks/jrk.go/pkg/cli/sh"
	"github.com/robotalks/jrk.go/pkg/l1/env"
)

//go-build: CGO_ENABLED=0

func init() {
	env.SetupFlags()
}

func main() {
	sh.Main()
}
