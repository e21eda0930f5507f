package mockrelay

import (
	context "context"
	io "io"

	mock "github.com/stretchr/testify/mock"
)

// Transferrer is a mock type for the Transferrer type
type Transferrer struct {
	mock.Mock
}

// Store provides a mock function with given fields: ctx, r, name
func (_m *Transferrer) Store(ctx context.Context, r io.Reader, name string) error {
	ret := _m.Called(ctx, r, name)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, io.Reader, string) error); ok {
		r0 = rf(ctx, r, name)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}
