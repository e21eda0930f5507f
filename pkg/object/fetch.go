package object

import (
	"context"
	"io"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/convox/ftprelay/pkg/config"
	"github.com/convox/ftprelay/pkg/helpers"
	"github.com/convox/ftprelay/pkg/structs"
	"github.com/convox/logger"
	"github.com/pkg/errors"
)

type Fetcher struct {
	S3      s3iface.S3API
	Staging string
	TempDir string

	logger *logger.Logger
}

func New(s s3iface.S3API, staging, tmpdir string) *Fetcher {
	return &Fetcher{
		S3:      s,
		Staging: helpers.CoalesceString(staging, config.StagingMemory),
		TempDir: tmpdir,
		logger:  logger.New("ns=object"),
	}
}

// Fetch downloads the whole object. There are no partial results: on error
// nothing stays staged.
func (f *Fetcher) Fetch(ctx context.Context, bucket, key string) (*Payload, error) {
	log := f.logger.At("fetch").Namespace("bucket=%q key=%q staging=%s", bucket, key, f.Staging).Start()

	var p *Payload
	var err error

	switch f.Staging {
	case config.StagingDisk:
		p, err = f.fetchDisk(ctx, bucket, key)
	default:
		p, err = f.fetchMemory(ctx, bucket, key)
	}
	if err != nil {
		return nil, log.Error(err)
	}

	log.Successf("bytes=%d", p.Size)

	return p, nil
}

func (f *Fetcher) fetchMemory(ctx context.Context, bucket, key string) (*Payload, error) {
	buf := aws.NewWriteAtBuffer([]byte{})

	if _, err := f.download(ctx, buf, bucket, key); err != nil {
		return nil, err
	}

	return Bytes(buf.Bytes()), nil
}

func (f *Fetcher) fetchDisk(ctx context.Context, bucket, key string) (*Payload, error) {
	fd, err := os.CreateTemp(f.TempDir, "ftprelay-*")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cleanup := func() error {
		cerr := fd.Close()
		if err := os.Remove(fd.Name()); err != nil && !os.IsNotExist(err) {
			return errors.WithStack(err)
		}
		return cerr
	}

	n, err := f.download(ctx, fd, bucket, key)
	if err != nil {
		cleanup()
		return nil, err
	}

	if _, err := fd.Seek(0, io.SeekStart); err != nil {
		cleanup()
		return nil, errors.WithStack(err)
	}

	return &Payload{Reader: fd, Size: n, close: cleanup}, nil
}

func (f *Fetcher) download(ctx context.Context, w io.WriterAt, bucket, key string) (int64, error) {
	d := s3manager.NewDownloaderWithClient(f.S3, func(d *s3manager.Downloader) {
		d.Concurrency = 1
	})

	n, err := d.DownloadWithContext(ctx, w, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return 0, classify(err, bucket, key)
	}

	return n, nil
}

func classify(err error, bucket, key string) error {
	switch helpers.AwsErrorCode(err) {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return structs.ErrObjectNotFound.Wrap(errors.Wrapf(err, "object not found: %s/%s", bucket, key))
	case "AccessDenied", "Forbidden":
		return structs.ErrAccessDenied.Wrap(errors.Wrapf(err, "access denied: %s/%s", bucket, key))
	default:
		return structs.ErrTransientStorageError.Wrap(errors.WithStack(err))
	}
}
