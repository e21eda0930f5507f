package object

import (
	"bytes"
	"io"
)

// Payload is a fetched object staged for exactly one transfer. Close releases
// any staging resources and is safe to call more than once.
type Payload struct {
	io.Reader

	Size int64

	close func() error
}

// Bytes stages data in memory
func Bytes(data []byte) *Payload {
	return &Payload{
		Reader: bytes.NewReader(data),
		Size:   int64(len(data)),
	}
}

func (p *Payload) Close() error {
	if p.close == nil {
		return nil
	}

	fn := p.close
	p.close = nil

	return fn()
}
