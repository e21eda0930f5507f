package helpers

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
)

// AwsSession returns a session with client side retries disabled. The
// invoking environment owns the retry policy.
func AwsSession(cfgs ...*aws.Config) (*session.Session, error) {
	base := &aws.Config{MaxRetries: aws.Int(0)}

	return session.NewSession(append([]*aws.Config{base}, cfgs...)...)
}

func AwsErrorCode(err error) string {
	if ae, ok := err.(awserr.Error); ok {
		return ae.Code()
	}

	return ""
}
