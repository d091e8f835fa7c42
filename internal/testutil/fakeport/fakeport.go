// internal/testutil/fakeport/fakeport.go

// Package fakeport is a scripted stand-in for a scanner serial port.
package fakeport

import (
	"errors"
	"io"
	"strings"
	"sync"
	"time"
)

// ErrClosed is returned by Write after Close. Read returns io.EOF joined
// with it, like a serial port whose handle went away.
var ErrClosed = errors.New("fakeport: closed")

// Port answers written commands with scripted replies.
// A command with no scripted reply gets silence, so the reader times out.
// The last reply queued for a command is repeated for later writes.
type Port struct {
	mu      sync.Mutex
	replies map[string][]string
	written []string
	pending []byte

	// Chunk limits how many bytes one Read returns (0 = no limit).
	Chunk int
	// ReadErr and WriteErr, when set, fail every Read / Write.
	ReadErr  error
	WriteErr error

	closed bool
}

// New returns an empty port.
func New() *Port {
	return &Port{replies: make(map[string][]string)}
}

// On queues replies for command. The terminator is appended.
func (p *Port) On(command string, replies ...string) *Port {
	for _, r := range replies {
		p.OnRaw(command, r+"\r")
	}
	return p
}

// OnRaw queues a reply exactly as given.
func (p *Port) OnRaw(command, raw string) *Port {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.replies[command] = append(p.replies[command], raw)
	return p
}

func (p *Port) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return 0, ErrClosed
	}
	if p.WriteErr != nil {
		return 0, p.WriteErr
	}

	cmd := strings.TrimSuffix(string(b), "\r")
	p.written = append(p.written, cmd)

	q := p.replies[cmd]
	if len(q) > 0 {
		p.pending = append(p.pending, q[0]...)
		if len(q) > 1 {
			p.replies[cmd] = q[1:]
		}
	}
	return len(b), nil
}

func (p *Port) Read(b []byte) (int, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return 0, errors.Join(ErrClosed, io.EOF)
	}
	if p.ReadErr != nil {
		p.mu.Unlock()
		return 0, p.ReadErr
	}
	if len(p.pending) == 0 {
		p.mu.Unlock()
		// Mimic a serial read timeout rather than spinning.
		time.Sleep(time.Millisecond)
		return 0, nil
	}
	defer p.mu.Unlock()

	n := len(p.pending)
	if p.Chunk > 0 && n > p.Chunk {
		n = p.Chunk
	}
	n = copy(b, p.pending[:n])
	p.pending = p.pending[n:]
	return n, nil
}

// Close marks the port closed. A Read blocked waiting for a reply fails
// on its next poll.
func (p *Port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// Commands returns every command written so far, without terminators.
func (p *Port) Commands() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.written...)
}

// Count returns how many times command was written.
func (p *Port) Count(command string) int {
	n := 0
	for _, c := range p.Commands() {
		if c == command {
			n++
		}
	}
	return n
}
