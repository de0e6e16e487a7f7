// Package streams provides the notification outputs used by the configr Loader.
// A Loader writes one line to Out when it creates or loads a config file and
// one line to ErrOut for non-fatal warnings. The adapters here route those lines
// to the process's standard streams, to buffers, to nowhere, or to a slog.Logger.
package streams

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

// IOStreams is the contract accepted by configr.WithStreams. Either writer may
// be nil, in which case the corresponding messages are dropped.
type IOStreams interface {
	Out() io.Writer
	ErrOut() io.Writer
}

// Streams is a plain IOStreams backed by two writers.
type Streams struct {
	out    io.Writer
	errOut io.Writer
}

func (s Streams) Out() io.Writer    { return s.out }
func (s Streams) ErrOut() io.Writer { return s.errOut }

// Std returns Streams writing to os.Stdout and os.Stderr.
func Std() Streams {
	return Streams{out: os.Stdout, errOut: os.Stderr}
}

// Writers returns Streams writing Out to out and ErrOut to errOut.
func Writers(out, errOut io.Writer) Streams {
	return Streams{out: out, errOut: errOut}
}

// Discard returns Streams that drop everything.
func Discard() Streams {
	return Writers(io.Discard, io.Discard)
}

// syncBuffer is a mutex-protected bytes.Buffer.
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func (s *syncBuffer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.b.Reset()
}

// BufferStreams captures output in memory. It is safe for concurrent writers,
// so one value can be shared by Loaders running in parallel.
type BufferStreams struct {
	out    syncBuffer
	errOut syncBuffer
}

// Buffers returns empty BufferStreams.
func Buffers() *BufferStreams {
	return &BufferStreams{}
}

func (b *BufferStreams) Out() io.Writer    { return &b.out }
func (b *BufferStreams) ErrOut() io.Writer { return &b.errOut }

// Strings returns what has been written to Out and ErrOut so far.
func (b *BufferStreams) Strings() (out, errOut string) {
	return b.out.String(), b.errOut.String()
}

// Reset clears both buffers.
func (b *BufferStreams) Reset() {
	b.out.Reset()
	b.errOut.Reset()
}

// slogWriter turns each Write into one log record.
type slogWriter struct {
	l     *slog.Logger
	level slog.Level
}

func (w slogWriter) Write(p []byte) (int, error) {
	n := len(p)
	msg := string(bytes.TrimRight(p, "\r\n"))
	w.l.Log(context.Background(), w.level, msg)
	return n, nil
}

// Slog returns Streams that forward Out lines at info and ErrOut lines at
// errLevel to l, tagged with component=configr. A nil l uses slog.Default().
func Slog(l *slog.Logger, info, errLevel slog.Level) Streams {
	if l == nil {
		l = slog.Default()
	}
	l = l.With(slog.String("component", "configr"))
	return Streams{
		out:    slogWriter{l: l, level: info},
		errOut: slogWriter{l: l, level: errLevel},
	}
}
