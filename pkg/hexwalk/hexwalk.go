package hexwalk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"syscall"

	"github.com/hexwalk/hexwalk/pkg/log"
	"github.com/hexwalk/hexwalk/pkg/render"
	"github.com/hexwalk/hexwalk/pkg/source"
)

// Sentinel errors re-exported from pkg/source so callers can check session
// failures with errors.Is without importing sub-packages.
var (
	// ErrEmpty indicates the target file exists but has zero length.
	ErrEmpty = source.ErrEmpty

	// ErrIsDirectory indicates the target path names a directory.
	ErrIsDirectory = source.ErrIsDirectory
)

// Config holds the settings for one dump session.
// Use it with New(); the zero value of optional fields is usable.
type Config struct {
	// Path of the file to dump.
	Path string

	// StartOffset is the absolute byte offset where dumping begins. An
	// offset at or beyond the end of the file is reset to 0 with a single
	// warning rather than failing the session.
	StartOffset int64

	// BlockBits is the hex group width in bits: 8, 16, 32 or 64.
	// Defaults to 8 (one byte per group).
	BlockBits int

	// NoOffset suppresses the leading offset column.
	NoOffset bool

	// NoHex suppresses the hex column. The character gloss is always shown.
	NoHex bool

	// Charset picks the gloss classification. The zero value is
	// render.CharsetFull; use render.HostCharset() to follow the platform.
	Charset render.Charset
}

// SetDefaults fills in zero-valued fields.
func (c *Config) SetDefaults() {
	if c.BlockBits == 0 {
		c.BlockBits = 8
	}
}

// Validate checks the configuration. It performs no file I/O.
func (c *Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("hexwalk: path is required")
	}
	switch c.BlockBits {
	case 8, 16, 32, 64:
	default:
		return fmt.Errorf("hexwalk: block size must be 8, 16, 32 or 64 bits (got %d)", c.BlockBits)
	}
	if c.StartOffset < 0 {
		return fmt.Errorf("hexwalk: start offset must be non-negative (got %d)", c.StartOffset)
	}
	return nil
}

// Dumper renders one file as hex and character lines. Use New() to create an
// instance, then Run() to execute a session. A Dumper can run more than once;
// every run opens the file afresh and observes its current size.
type Dumper struct {
	cfg  Config
	opts options
	rend *render.Renderer
}

// New validates cfg and builds a Dumper. The target file is opened by Run,
// not here, so construction never leaks a file handle.
func New(cfg Config, opts ...Option) (*Dumper, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	rend, err := render.New(render.Config{
		ShowOffset: !cfg.NoOffset,
		ShowHex:    !cfg.NoHex,
		GroupSize:  cfg.BlockBits / 8,
		Charset:    cfg.Charset,
	})
	if err != nil {
		return nil, err
	}

	return &Dumper{cfg: cfg, opts: o, rend: rend}, nil
}

// Run executes one dump session: open the file, stream every line it
// implies, close the file. The handle is released on every return path.
// Cancellation is observed between lines, so an aborted consumer stops the
// dump promptly instead of after the whole file. A write failure caused by
// the downstream reader closing the pipe ends the run cleanly with nil.
func (d *Dumper) Run(ctx context.Context) error {
	var srcOpts []source.Option
	if d.opts.windowSize > 0 {
		srcOpts = append(srcOpts, source.WithWindowSize(d.opts.windowSize))
	}
	src, err := source.Open(d.cfg.Path, srcOpts...)
	if err != nil {
		return err
	}
	defer src.Close()

	start := d.cfg.StartOffset
	if start >= src.Size() {
		d.opts.logger.Warn("start offset beyond end of file, dumping from 0",
			log.Int64("start_offset", start), log.Int64("file_size", src.Size()))
		start = 0
	}

	totalLines := (src.Size() + render.LineWidth - 1) / render.LineWidth
	for line := int64(0); line < totalLines; line++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		text, err := d.rend.Line(src, start+line*render.LineWidth)
		if err != nil {
			return fmt.Errorf("hexwalk: %w", err)
		}
		if _, err := io.WriteString(d.opts.out, text+"\n"); err != nil {
			if downstreamClosed(err) {
				d.opts.logger.Debug("downstream closed, stopping",
					log.Int64("lines_emitted", line))
				return nil
			}
			return fmt.Errorf("hexwalk: write: %w", err)
		}
	}
	return nil
}

// downstreamClosed reports whether a write failed because the consumer of
// our output stopped reading.
func downstreamClosed(err error) bool {
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe)
}
