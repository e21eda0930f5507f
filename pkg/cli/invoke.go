package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/convox/ftprelay/pkg/config"
	"github.com/convox/stdcli"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

func init() {
	register("invoke", "relay a notification once", Invoke, stdcli.CommandOptions{
		Flags:    []stdcli.Flag{flagEnvFile},
		Usage:    "[file]",
		Validate: stdcli.ArgsMax(1),
	})
}

func Invoke(p Provider, c *stdcli.Context) error {
	data, err := readInput(c)
	if err != nil {
		return err
	}

	var e events.S3Event

	if err := json.Unmarshal(data, &e); err != nil {
		return fmt.Errorf("invalid notification: %s", err)
	}

	cfg, err := invokeConfig(c.String("env-file"))
	if err != nil {
		return err
	}

	r, err := p.Relay(cfg)
	if err != nil {
		return err
	}

	t, err := r.Handle(context.Background(), e)
	if err != nil {
		return err
	}

	if t == nil {
		c.Writef("no records\n")
		return nil
	}

	out, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}

	c.Writef("%s\n", out)

	return nil
}

// invokeConfig loads relay configuration from the environment, with values
// from file filling anything the environment leaves unset
func invokeConfig(file string) (*config.Config, error) {
	if file == "" {
		return config.FromEnv()
	}

	env, err := godotenv.Read(file)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return config.Load(func(name string) string {
		if v, ok := os.LookupEnv(name); ok {
			return v
		}

		return env[name]
	})
}

func readInput(c *stdcli.Context) ([]byte, error) {
	if file := c.Arg(0); file != "" && file != "-" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		return data, nil
	}

	return io.ReadAll(c.Reader())
}
