package mockrelay

import (
	context "context"

	object "github.com/convox/ftprelay/pkg/object"
	mock "github.com/stretchr/testify/mock"
)

// Fetcher is a mock type for the Fetcher type
type Fetcher struct {
	mock.Mock
}

// Fetch provides a mock function with given fields: ctx, bucket, key
func (_m *Fetcher) Fetch(ctx context.Context, bucket string, key string) (*object.Payload, error) {
	ret := _m.Called(ctx, bucket, key)

	var r0 *object.Payload
	if rf, ok := ret.Get(0).(func(context.Context, string, string) *object.Payload); ok {
		r0 = rf(ctx, bucket, key)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*object.Payload)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string, string) error); ok {
		r1 = rf(ctx, bucket, key)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}
