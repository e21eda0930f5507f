package relay

import (
	"net/url"

	"github.com/aws/aws-lambda-go/events"
	"github.com/convox/ftprelay/pkg/structs"
)

// recordObject extracts the bucket and key of a notification record. S3
// form encodes keys in notifications; a key that does not decode is used
// as delivered.
func recordObject(rec events.S3EventRecord) (structs.Object, error) {
	o := structs.Object{
		Bucket: rec.S3.Bucket.Name,
		Key:    rec.S3.Object.Key,
	}

	if k, err := url.QueryUnescape(o.Key); err == nil {
		o.Key = k
	}

	if o.Bucket == "" || o.Key == "" {
		return o, structs.ErrInvalidEvent.Errorf("record requires bucket and key")
	}

	return o, nil
}
