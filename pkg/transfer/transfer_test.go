package transfer_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/convox/ftprelay/pkg/structs"
	"github.com/convox/ftprelay/pkg/test/ftpd"
	"github.com/convox/ftprelay/pkg/transfer"
	"github.com/convox/logger"
	"github.com/stretchr/testify/require"
)

var output = &bytes.Buffer{}

func init() {
	logger.Output = output
}

type credential struct {
	password string
	err      error
}

func (c credential) Password(ctx context.Context) (string, error) {
	return c.password, c.err
}

func testServer(t *testing.T, opts ftpd.Options, fn func(*ftpd.Server)) {
	if opts.Username == "" {
		opts.Username = "relay"
	}

	if opts.Password == "" {
		opts.Password = "hunter2"
	}

	s, err := ftpd.New(opts)
	require.NoError(t, err)
	defer s.Close()

	fn(s)
}

// requireOrder asserts that want appears in cmds as a subsequence
func requireOrder(t *testing.T, cmds []string, want ...string) {
	i := 0

	for _, c := range cmds {
		if i < len(want) && c == want[i] {
			i++
		}
	}

	require.Equal(t, len(want), i, "commands %v do not contain %v in order", cmds, want)
}

func TestStore(t *testing.T) {
	testServer(t, ftpd.Options{Dirs: []string{"/inbound"}}, func(s *ftpd.Server) {
		c := transfer.New(s.Addr(), "relay", "/inbound", credential{password: "hunter2"})

		output.Reset()

		err := c.Store(context.Background(), bytes.NewReader([]byte("0123456789")), "report.csv")
		require.NoError(t, err)
		require.Contains(t, output.String(), "step=passive mode=pasv state=open")

		data, ok := s.File("/inbound/report.csv")
		require.True(t, ok)
		require.Equal(t, "0123456789", string(data))

		requireOrder(t, s.Commands(), "USER", "PASS", "TYPE", "CWD", "PASV", "STOR")
		require.NotContains(t, s.Commands(), "EPSV")
	})
}

func TestStoreBinary(t *testing.T) {
	testServer(t, ftpd.Options{Dirs: []string{"/inbound"}}, func(s *ftpd.Server) {
		payload := []byte{0x00, 0xff, '\r', '\n', 0x1f, '\n', 0x00}

		c := transfer.New(s.Addr(), "relay", "/inbound", credential{password: "hunter2"})

		require.NoError(t, c.Store(context.Background(), bytes.NewReader(payload), "blob.bin"))

		data, ok := s.File("/inbound/blob.bin")
		require.True(t, ok)
		require.Equal(t, payload, data)
	})
}

func TestStoreAuthenticationFailed(t *testing.T) {
	testServer(t, ftpd.Options{Dirs: []string{"/inbound"}}, func(s *ftpd.Server) {
		c := transfer.New(s.Addr(), "relay", "/inbound", credential{password: "wrong"})

		err := c.Store(context.Background(), bytes.NewReader([]byte("data")), "report.csv")
		require.True(t, errors.Is(err, structs.ErrAuthenticationFailed))
		require.NotContains(t, err.Error(), "wrong")

		require.Equal(t, 0, s.Files())
		require.NotContains(t, s.Commands(), "STOR")
	})
}

func TestStoreRemoteDirectoryNotFound(t *testing.T) {
	testServer(t, ftpd.Options{Dirs: []string{"/inbound"}}, func(s *ftpd.Server) {
		c := transfer.New(s.Addr(), "relay", "/missing", credential{password: "hunter2"})

		err := c.Store(context.Background(), bytes.NewReader([]byte("data")), "report.csv")
		require.True(t, errors.Is(err, structs.ErrRemoteDirectoryNotFound))

		require.Equal(t, 0, s.Files())
		require.NotContains(t, s.Commands(), "STOR")
	})
}

func TestStoreModeNegotiationFailed(t *testing.T) {
	testServer(t, ftpd.Options{Dirs: []string{"/inbound"}, NoPassive: true}, func(s *ftpd.Server) {
		c := transfer.New(s.Addr(), "relay", "/inbound", credential{password: "hunter2"})

		output.Reset()

		err := c.Store(context.Background(), bytes.NewReader([]byte("data")), "report.csv")
		require.True(t, errors.Is(err, structs.ErrModeNegotiationFailed))
		require.NotContains(t, output.String(), "step=passive")

		require.Equal(t, 0, s.Files())
		require.NotContains(t, s.Commands(), "STOR")
	})
}

func TestStoreTransferAborted(t *testing.T) {
	testServer(t, ftpd.Options{Dirs: []string{"/inbound"}, RejectStor: true}, func(s *ftpd.Server) {
		c := transfer.New(s.Addr(), "relay", "/inbound", credential{password: "hunter2"})

		err := c.Store(context.Background(), bytes.NewReader([]byte("data")), "report.csv")
		require.True(t, errors.Is(err, structs.ErrTransferAborted))
		require.Equal(t, 0, s.Files())
	})
}

func TestStoreConnectionFailed(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	c := transfer.New(addr, "relay", "/inbound", credential{password: "hunter2"})

	err = c.Store(context.Background(), bytes.NewReader([]byte("data")), "report.csv")
	require.True(t, errors.Is(err, structs.ErrConnectionFailed))
}

func TestStoreCredentialError(t *testing.T) {
	testServer(t, ftpd.Options{}, func(s *ftpd.Server) {
		cred := credential{err: structs.ErrSecretUnavailable.Wrap(fmt.Errorf("kms unavailable"))}

		c := transfer.New(s.Addr(), "relay", "/inbound", cred)

		err := c.Store(context.Background(), bytes.NewReader([]byte("data")), "report.csv")
		require.True(t, errors.Is(err, structs.ErrSecretUnavailable))
		require.Empty(t, s.Commands())
	})
}
