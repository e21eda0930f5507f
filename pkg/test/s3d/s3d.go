// Package s3d serves path style S3 GetObject requests from memory so the
// real SDK client can be exercised in tests.
package s3d

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/convox/ftprelay/pkg/helpers"
)

type Server struct {
	*httptest.Server

	denied  map[string]bool
	failing map[string]int
	lock    sync.Mutex
	objects map[string][]byte
	fetched []string
}

func New() *Server {
	s := &Server{
		denied:  map[string]bool{},
		failing: map[string]int{},
		objects: map[string][]byte{},
	}

	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))

	return s
}

// Put stores an object
func (s *Server) Put(bucket, key string, data []byte) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.objects[bucket+"/"+key] = data
}

// Deny makes requests for the object answer 403 AccessDenied
func (s *Server) Deny(bucket, key string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.denied[bucket+"/"+key] = true
}

// Fail makes requests for the object answer with the given status
func (s *Server) Fail(bucket, key string, status int) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.failing[bucket+"/"+key] = status
}

// Fetched lists every bucket/key requested, in order
func (s *Server) Fetched() []string {
	s.lock.Lock()
	defer s.lock.Unlock()

	return append([]string{}, s.fetched...)
}

// Client returns an S3 client pointed at the server
func (s *Server) Client() *s3.S3 {
	sess, err := helpers.AwsSession(&aws.Config{
		Credentials:      credentials.NewStaticCredentials("test-access", "test-secret", ""),
		Endpoint:         aws.String(s.URL),
		Region:           aws.String("us-test-1"),
		S3ForcePathStyle: aws.Bool(true),
	})
	if err != nil {
		panic(err)
	}

	return s3.New(sess)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/")

	s.lock.Lock()
	s.fetched = append(s.fetched, name)
	data, ok := s.objects[name]
	denied := s.denied[name]
	status := s.failing[name]
	s.lock.Unlock()

	switch {
	case r.Method != http.MethodGet:
		writeError(w, http.StatusMethodNotAllowed, "MethodNotAllowed", "method not allowed")
	case status != 0:
		writeError(w, status, strings.Replace(http.StatusText(status), " ", "", -1), "failure")
	case denied:
		writeError(w, http.StatusForbidden, "AccessDenied", "Access Denied")
	case !ok:
		writeError(w, http.StatusNotFound, "NoSuchKey", "The specified key does not exist.")
	default:
		w.Header().Set("Content-Type", "binary/octet-stream")

		// ranges against an empty object cannot be satisfied
		if len(data) == 0 {
			r.Header.Del("Range")
		}

		http.ServeContent(w, r, name, time.Time{}, bytes.NewReader(data))
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>%s</Code><Message>%s</Message><RequestId>test</RequestId></Error>`, code, message)
}
