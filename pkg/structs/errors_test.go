package structs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/convox/ftprelay/pkg/structs"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestErrorIs(t *testing.T) {
	err := structs.ErrAuthenticationFailed.Wrap(fmt.Errorf("530 login incorrect"))

	require.True(t, errors.Is(err, structs.ErrAuthenticationFailed))
	require.False(t, errors.Is(err, structs.ErrTransferAborted))
	require.Equal(t, "AuthenticationFailed: 530 login incorrect", err.Error())
}

func TestErrorIsWrapped(t *testing.T) {
	err := pkgerrors.WithStack(structs.ErrObjectNotFound.Errorf("object not found: %s", "a.txt"))

	require.True(t, errors.Is(err, structs.ErrObjectNotFound))
	require.Equal(t, "ObjectNotFound", structs.ErrorCode(err))
}

func TestErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("cause")
	err := structs.ErrTransientStorageError.Wrap(cause)

	require.Equal(t, cause, errors.Unwrap(err))
}

func TestErrorCodeUnclassified(t *testing.T) {
	require.Equal(t, "", structs.ErrorCode(fmt.Errorf("plain")))
	require.Equal(t, "", structs.ErrorCode(nil))
}

func TestErrorSentinel(t *testing.T) {
	require.Equal(t, "SecretUnavailable", structs.ErrSecretUnavailable.Error())
}
