package main

import (
	"os"

	"github.com/convox/ftprelay/pkg/cli"
)

var (
	version = "dev"
)

func main() {
	c := cli.New("ftprelay", version)

	os.Exit(c.Execute(os.Args[1:]))
}
