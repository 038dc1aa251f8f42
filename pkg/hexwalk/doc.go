// Package hexwalk provides an embeddable hex dump engine.
//
// Hexwalk renders the bytes of a file as fixed-width lines of hex groups and
// a printable-character gloss, streamed to a writer one line at a time. It
// can be used through the hexwalk CLI or embedded as a library.
//
// # Basic Usage
//
//	dumper, err := hexwalk.New(hexwalk.Config{
//	    Path:    "/path/to/file",
//	    Charset: render.HostCharset(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := dumper.Run(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//
// Run streams to os.Stdout by default; use WithOutput to redirect it and
// WithLogger to receive warnings (for example when a requested start offset
// lies beyond the end of the file and is reset to zero).
//
// Cancel the context to stop a dump between lines. A downstream reader
// closing the pipe is not an error: Run returns nil after releasing the
// file handle.
package hexwalk
