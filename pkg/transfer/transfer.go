package transfer

import (
	"context"
	"io"
	"net"

	"github.com/convox/ftprelay/pkg/structs"
	"github.com/convox/logger"
	"github.com/jlaffaye/ftp"
	"github.com/pkg/errors"
)

// Credential supplies the password for the remote login
type Credential interface {
	Password(ctx context.Context) (string, error)
}

// Client stores payloads on a remote FTP server. Every Store uses its own
// control connection; nothing is reused between objects.
type Client struct {
	Address    string
	Username   string
	Directory  string
	Credential Credential

	logger *logger.Logger
}

func New(address, username, directory string, cred Credential) *Client {
	return &Client{
		Address:    address,
		Username:   username,
		Directory:  directory,
		Credential: cred,
		logger:     logger.New("ns=transfer"),
	}
}

// Store logs in, changes to the remote directory and stores r as name in
// binary mode over a passive data channel.
func (c *Client) Store(ctx context.Context, r io.Reader, name string) error {
	log := c.logger.At("store").Namespace("address=%s dir=%q name=%q", c.Address, c.Directory, name).Start()

	password, err := c.Credential.Password(ctx)
	if err != nil {
		return log.Error(err)
	}

	s := &session{ctx: ctx}

	conn, err := ftp.Dial(c.Address, ftp.DialWithDialFunc(s.dial), ftp.DialWithDisabledEPSV(true))
	if err != nil {
		return log.Error(structs.ErrConnectionFailed.Wrap(errors.WithStack(err)))
	}
	defer conn.Quit()

	log.Step("connect").Success()

	if err := conn.Login(c.Username, password); err != nil {
		return log.Error(structs.ErrAuthenticationFailed.Wrap(errors.Wrapf(err, "login rejected for %s", c.Username)))
	}

	log.Step("login").Success()

	if err := conn.ChangeDir(c.Directory); err != nil {
		return log.Error(structs.ErrRemoteDirectoryNotFound.Wrap(errors.Wrapf(err, "cwd %s", c.Directory)))
	}

	log.Step("cwd").Success()

	cr := &countReader{Reader: r}

	err = conn.Stor(name, cr)

	if s.opened() {
		log.Step("passive").Logf("mode=pasv state=open")
	}

	if err != nil {
		if !s.opened() {
			return log.Error(structs.ErrModeNegotiationFailed.Wrap(errors.Wrap(err, "passive data channel")))
		}
		return log.Error(structs.ErrTransferAborted.Wrap(errors.Wrapf(err, "stor %s", name)))
	}

	log.Successf("bytes=%d", cr.n)

	return nil
}

// session observes the connections the ftp client opens. The first is the
// control connection, any later one is a passive data channel.
type session struct {
	ctx   context.Context
	dials int
	data  bool
}

func (s *session) dial(network, address string) (net.Conn, error) {
	var d net.Dialer

	conn, err := d.DialContext(s.ctx, network, address)

	s.dials++

	if err == nil && s.dials > 1 {
		s.data = true
	}

	return conn, err
}

func (s *session) opened() bool {
	return s.data
}

type countReader struct {
	io.Reader
	n int64
}

func (r *countReader) Read(p []byte) (int, error) {
	n, err := r.Reader.Read(p)
	r.n += int64(n)
	return n, err
}
