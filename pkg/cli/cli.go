package cli

import (
	"github.com/convox/stdcli"
)

type HandlerFunc func(Provider, *stdcli.Context) error

var (
	flagEnvFile = stdcli.StringFlag("env-file", "e", "read relay environment from file")
	flagRegion  = stdcli.StringFlag("region", "", "aws region for generated events")
)

func New(name, version string) *Engine {
	e := &Engine{
		Engine: stdcli.New(name, version),
	}

	e.RegisterCommands()

	return e
}
