package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/convox/ftprelay/pkg/secret"
	"github.com/convox/stdcli"
)

func init() {
	register("encrypt", "encrypt an ftp password for the relay", Encrypt, stdcli.CommandOptions{
		Flags: []stdcli.Flag{
			stdcli.StringFlag("key", "k", "kms key id or alias"),
			stdcli.BoolFlag("envelope", "", "wrap the password in a data key envelope"),
		},
		Usage:    "< password",
		Validate: stdcli.Args(0),
	})
}

func Encrypt(p Provider, c *stdcli.Context) error {
	key := c.String("key")

	if key == "" {
		return fmt.Errorf("key required")
	}

	data, err := io.ReadAll(c.Reader())
	if err != nil {
		return err
	}

	plain := strings.TrimRight(string(data), "\r\n")

	if plain == "" {
		return fmt.Errorf("password required on stdin")
	}

	k, err := p.KMS()
	if err != nil {
		return err
	}

	value, err := secret.Encrypt(context.Background(), k, key, []byte(plain), c.Bool("envelope"))
	if err != nil {
		return err
	}

	c.Writef("%s\n", value)

	return nil
}
