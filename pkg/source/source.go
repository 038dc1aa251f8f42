// Package source provides windowed byte access to a file.
//
// A Source addresses a file of arbitrary size by absolute byte offset while
// holding at most one fixed-capacity window of it in memory. Lookups outside
// the loaded window trigger a single bounded read; lookups past the end of
// the file return a sentinel rather than an error, so callers can render
// padding without special-casing the file tail.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultWindowSize is the window capacity. 512 KiB bounds memory while
// amortizing syscall cost, and keeps refills small enough for slow
// removable media.
const DefaultWindowSize = 512 * 1024

var (
	// ErrEmpty is returned by Open for zero-length files.
	ErrEmpty = errors.New("source: file is empty")

	// ErrIsDirectory is returned by Open when the path names a directory.
	ErrIsDirectory = errors.New("source: path is a directory")
)

// Option configures a Source.
type Option func(*Source)

// WithWindowSize overrides the window capacity. Values below 1 are ignored.
func WithWindowSize(n int) Option {
	return func(s *Source) {
		if n > 0 {
			s.window = make([]byte, n)
		}
	}
}

// Source serves the bytes of one open file by absolute offset. The window
// slides lazily: it is only repositioned when a requested offset misses it,
// so a dump starting mid-file never reads the bytes before its start.
//
// A Source is not safe for concurrent use; the dump loop is its only caller.
type Source struct {
	f    *os.File
	size int64

	window      []byte
	windowStart int64
	windowLen   int
}

// Open resolves path and establishes the file size for the lifetime of the
// Source; the file is never re-stat'ed. Directories fail with ErrIsDirectory
// and zero-length files with ErrEmpty, both wrapped with the path.
func Open(path string, opts ...Option) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, ErrIsDirectory)
	}
	if info.Size() == 0 {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}

	s := &Source{f: f, size: info.Size()}
	for _, opt := range opts {
		opt(s)
	}
	if s.window == nil {
		s.window = make([]byte, DefaultWindowSize)
	}
	return s, nil
}

// Size returns the file length established at open time.
func (s *Source) Size() int64 {
	return s.size
}

// ByteAt returns the byte at the given absolute file offset. ok is false for
// any offset at or beyond the end of the file; that is the end-of-file
// sentinel, not an error. A read failure during a window refill is an error
// and should abort the session.
func (s *Source) ByteAt(offset int64) (b byte, ok bool, err error) {
	if offset < 0 || offset >= s.size {
		return 0, false, nil
	}
	if offset < s.windowStart || offset >= s.windowStart+int64(s.windowLen) {
		if err := s.refill(offset); err != nil {
			return 0, false, err
		}
	}
	return s.window[offset-s.windowStart], true, nil
}

// refill repositions the window so it starts at offset, reading up to one
// window of bytes in a single call. Short reads at the file tail are normal.
func (s *Source) refill(offset int64) error {
	n, err := s.f.ReadAt(s.window, offset)
	if err != nil && err != io.EOF {
		return fmt.Errorf("read at %d: %w", offset, err)
	}
	if n == 0 {
		// offset is known to be below size, so an empty read means the file
		// shrank underneath us.
		return fmt.Errorf("read at %d: %w", offset, io.ErrUnexpectedEOF)
	}
	s.windowStart = offset
	s.windowLen = n
	return nil
}

// Close releases the file handle. It is idempotent and safe to call on a
// Source whose Open never succeeded.
func (s *Source) Close() error {
	if s == nil || s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}
