package cli

import (
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/convox/ftprelay/pkg/helpers"
	"github.com/convox/stdcli"
)

func init() {
	register("event", "print an object created notification", Event, stdcli.CommandOptions{
		Flags:    []stdcli.Flag{flagRegion},
		Usage:    "<bucket> <key> [key...]",
		Validate: stdcli.ArgsMin(2),
	})
}

func Event(_ Provider, c *stdcli.Context) error {
	e := objectCreated(helpers.CoalesceString(c.String("region"), "us-east-1"), c.Arg(0), c.Args[1:], time.Now().UTC())

	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return err
	}

	c.Writef("%s\n", data)

	return nil
}

// objectCreated builds a notification with keys form encoded the way S3
// delivers them, path separators left as is
func objectCreated(region, bucket string, keys []string, at time.Time) events.S3Event {
	e := events.S3Event{}

	for _, k := range keys {
		r := events.S3EventRecord{
			EventVersion: "2.1",
			EventSource:  "aws:s3",
			AWSRegion:    region,
			EventTime:    at,
			EventName:    "ObjectCreated:Put",
		}

		r.S3.SchemaVersion = "1.0"
		r.S3.Bucket.Name = bucket
		r.S3.Bucket.Arn = "arn:aws:s3:::" + bucket
		r.S3.Object.Key = strings.ReplaceAll(url.QueryEscape(k), "%2F", "/")

		e.Records = append(e.Records, r)
	}

	return e
}
