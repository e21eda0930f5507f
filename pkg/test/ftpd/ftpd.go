// Package ftpd is a minimal in-process FTP server for tests. It speaks just
// enough of the protocol for a passive mode binary upload and records what
// it receives.
package ftpd

import (
	"bufio"
	"io/ioutil"
	"net"
	"net/textproto"
	"path"
	"strings"
	"sync"
)

type Options struct {
	Username   string
	Password   string
	Dirs       []string
	NoPassive  bool
	RejectStor bool
}

type Server struct {
	Options

	commands []string
	files    map[string][]byte
	listener net.Listener
	lock     sync.Mutex
	wg       sync.WaitGroup
}

func New(opts Options) (*Server, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}

	s := &Server{
		Options:  opts,
		files:    map[string][]byte{},
		listener: l,
	}

	s.wg.Add(1)
	go s.serve()

	return s, nil
}

// Addr is the control connection address
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

func (s *Server) Close() error {
	err := s.listener.Close()
	s.wg.Wait()
	return err
}

// Commands lists the verbs received, in order, across all sessions
func (s *Server) Commands() []string {
	s.lock.Lock()
	defer s.lock.Unlock()

	return append([]string{}, s.commands...)
}

// File returns a stored file by absolute path
func (s *Server) File(name string) ([]byte, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	data, ok := s.files[name]
	return data, ok
}

// Files returns the number of stored files
func (s *Server) Files() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return len(s.files)
}

func (s *Server) serve() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.session(conn)
		}()
	}
}

type state struct {
	cwd    string
	data   net.Listener
	logged bool
	user   string
}

func (s *Server) session(conn net.Conn) {
	defer conn.Close()

	tc := textproto.NewConn(conn)
	st := &state{cwd: "/"}

	defer func() {
		if st.data != nil {
			st.data.Close()
		}
	}()

	tc.PrintfLine("220 ftpd ready")

	r := bufio.NewReader(conn)

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}

		verb, arg := parse(line)

		s.lock.Lock()
		s.commands = append(s.commands, verb)
		s.lock.Unlock()

		if !s.command(tc, st, verb, arg) {
			return
		}
	}
}

func (s *Server) command(tc *textproto.Conn, st *state, verb, arg string) bool {
	switch verb {
	case "USER":
		st.user = arg
		tc.PrintfLine("331 password required")
	case "PASS":
		if st.user != s.Username || arg != s.Password {
			tc.PrintfLine("530 login incorrect")
			return true
		}
		st.logged = true
		tc.PrintfLine("230 logged in")
	case "QUIT":
		tc.PrintfLine("221 goodbye")
		return false
	case "FEAT", "EPSV":
		tc.PrintfLine("502 not implemented")
	case "NOOP":
		tc.PrintfLine("200 ok")
	default:
		if !st.logged {
			tc.PrintfLine("530 not logged in")
			return true
		}
		s.authenticated(tc, st, verb, arg)
	}

	return true
}

func (s *Server) authenticated(tc *textproto.Conn, st *state, verb, arg string) {
	switch verb {
	case "TYPE":
		tc.PrintfLine("200 type set to %s", arg)
	case "PWD":
		tc.PrintfLine("257 %q is the current directory", st.cwd)
	case "CWD":
		dir := resolve(st.cwd, arg)
		if !s.exists(dir) {
			tc.PrintfLine("550 %s: no such directory", arg)
			return
		}
		st.cwd = dir
		tc.PrintfLine("250 directory changed to %s", dir)
	case "PASV":
		if s.NoPassive {
			tc.PrintfLine("502 passive mode not supported")
			return
		}
		if st.data != nil {
			st.data.Close()
		}
		l, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			tc.PrintfLine("425 cannot open data connection")
			return
		}
		st.data = l
		port := l.Addr().(*net.TCPAddr).Port
		tc.PrintfLine("227 Entering Passive Mode (127,0,0,1,%d,%d)", port/256, port%256)
	case "STOR":
		s.stor(tc, st, arg)
	default:
		tc.PrintfLine("502 %s not implemented", verb)
	}
}

func (s *Server) stor(tc *textproto.Conn, st *state, name string) {
	if st.data == nil {
		tc.PrintfLine("425 use PASV first")
		return
	}

	l := st.data
	st.data = nil
	defer l.Close()

	if s.RejectStor {
		tc.PrintfLine("553 %s: permission denied", name)
		return
	}

	tc.PrintfLine("150 opening binary mode data connection for %s", name)

	dc, err := l.Accept()
	if err != nil {
		tc.PrintfLine("425 cannot open data connection")
		return
	}

	data, err := ioutil.ReadAll(dc)
	dc.Close()
	if err != nil {
		tc.PrintfLine("426 transfer aborted")
		return
	}

	s.lock.Lock()
	s.files[resolve(st.cwd, name)] = data
	s.lock.Unlock()

	tc.PrintfLine("226 transfer complete")
}

func (s *Server) exists(dir string) bool {
	if dir == "/" {
		return true
	}

	for _, d := range s.Dirs {
		if resolve("/", d) == dir {
			return true
		}
	}

	return false
}

func parse(line string) (string, string) {
	line = strings.TrimRight(line, "\r\n")

	parts := strings.SplitN(line, " ", 2)
	verb := strings.ToUpper(parts[0])

	if len(parts) < 2 {
		return verb, ""
	}

	return verb, parts[1]
}

func resolve(cwd, name string) string {
	if strings.HasPrefix(name, "/") {
		return path.Clean(name)
	}

	return path.Clean(path.Join(cwd, name))
}
