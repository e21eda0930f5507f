package relay

import (
	"context"
	"io"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/aws/aws-sdk-go/service/kms"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/convox/ftprelay/pkg/config"
	"github.com/convox/ftprelay/pkg/helpers"
	"github.com/convox/ftprelay/pkg/object"
	"github.com/convox/ftprelay/pkg/secret"
	"github.com/convox/ftprelay/pkg/structs"
	"github.com/convox/ftprelay/pkg/transfer"
	"github.com/convox/logger"
	"github.com/pkg/errors"
)

type Fetcher interface {
	Fetch(ctx context.Context, bucket, key string) (*object.Payload, error)
}

type Secret interface {
	Password(ctx context.Context) (string, error)
}

type Transferrer interface {
	Store(ctx context.Context, r io.Reader, name string) error
}

// Relay is built once per process and shared by every invocation that
// process serves. Nothing in it changes after construction.
type Relay struct {
	Directory string
	Fetcher   Fetcher
	Secret    Secret
	Transfer  Transferrer

	logger *logger.Logger
}

func New(directory string, s Secret, f Fetcher, t Transferrer) *Relay {
	return &Relay{
		Directory: directory,
		Fetcher:   f,
		Secret:    s,
		Transfer:  t,
		logger:    logger.New("ns=relay"),
	}
}

// FromEnv wires the relay from the process environment and the default
// AWS session
func FromEnv() (*Relay, error) {
	c, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	return FromConfig(c)
}

func FromConfig(c *config.Config) (*Relay, error) {
	sess, err := helpers.AwsSession()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	s := secret.New(kms.New(sess), c.Secret)
	f := object.New(s3.New(sess), c.Staging, c.TempDir)
	t := transfer.New(c.Address(), c.Username, c.Directory, s)

	return New(c.Directory, s, f, t), nil
}

// Warm resolves the credential ahead of the first notification
func (r *Relay) Warm(ctx context.Context) error {
	_, err := r.Secret.Password(ctx)
	return err
}

// Handle relays the object named by the first record of the batch. Any
// further records are skipped without being fetched.
func (r *Relay) Handle(ctx context.Context, e events.S3Event) (*structs.Transfer, error) {
	log := r.logger.At("handle").Namespace("records=%d", len(e.Records))

	if lc, ok := lambdacontext.FromContext(ctx); ok {
		log = log.Namespace("request=%s", lc.AwsRequestID)
	}

	log = log.Start()

	if len(e.Records) == 0 {
		log.Logf("state=skip reason=empty")
		return nil, nil
	}

	if err := r.Warm(ctx); err != nil {
		return nil, log.Error(err)
	}

	o, err := recordObject(e.Records[0])
	if err != nil {
		return nil, log.Error(err)
	}

	log = log.Namespace("bucket=%q key=%q", o.Bucket, o.Key)

	skipped := len(e.Records) - 1

	if skipped > 0 {
		log.Logf("skipped=%d", skipped)
	}

	p, err := r.Fetcher.Fetch(ctx, o.Bucket, o.Key)
	if err != nil {
		return nil, log.Error(err)
	}
	defer p.Close()

	if err := r.Transfer.Store(ctx, p, o.Key); err != nil {
		return nil, log.Error(err)
	}

	t := &structs.Transfer{
		Bucket:    o.Bucket,
		Key:       o.Key,
		Bytes:     p.Size,
		Directory: r.Directory,
		Skipped:   skipped,
	}

	log.Successf("bytes=%d", t.Bytes)

	return t, nil
}
