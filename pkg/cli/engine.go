package cli

import (
	"github.com/aws/aws-sdk-go/service/kms"
	"github.com/aws/aws-sdk-go/service/kms/kmsiface"
	"github.com/convox/ftprelay/pkg/config"
	"github.com/convox/ftprelay/pkg/helpers"
	"github.com/convox/ftprelay/pkg/relay"
	"github.com/convox/stdcli"
	"github.com/pkg/errors"
)

// Provider builds the AWS facing collaborators a command needs
type Provider interface {
	KMS() (kmsiface.KMSAPI, error)
	Relay(c *config.Config) (*relay.Relay, error)
}

type Engine struct {
	*stdcli.Engine
	Provider Provider
}

func (e *Engine) Command(command, description string, fn HandlerFunc, opts stdcli.CommandOptions) {
	wfn := func(c *stdcli.Context) error {
		return fn(e.currentProvider(), c)
	}

	e.Engine.Command(command, description, wfn, opts)
}

func (e *Engine) RegisterCommands() {
	for _, c := range commands {
		e.Command(c.Command, c.Description, c.Handler, c.Opts)
	}
}

func (e *Engine) currentProvider() Provider {
	if e.Provider != nil {
		return e.Provider
	}

	return &awsProvider{}
}

type awsProvider struct{}

func (p *awsProvider) KMS() (kmsiface.KMSAPI, error) {
	sess, err := helpers.AwsSession()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return kms.New(sess), nil
}

func (p *awsProvider) Relay(c *config.Config) (*relay.Relay, error) {
	return relay.FromConfig(c)
}

var commands = []command{}

type command struct {
	Command     string
	Description string
	Handler     HandlerFunc
	Opts        stdcli.CommandOptions
}

func register(cmd, description string, fn HandlerFunc, opts stdcli.CommandOptions) {
	commands = append(commands, command{
		Command:     cmd,
		Description: description,
		Handler:     fn,
		Opts:        opts,
	})
}
