// Package render formats fixed-width line units of a file as an offset
// column, grouped hex cells and a printable-character gloss.
package render

import (
	"fmt"
	"runtime"
	"strings"
)

// LineWidth is the number of file bytes represented by one output line
// (a 192-bit row).
const LineWidth = 24

// Charset selects how bytes outside the ASCII printable range render in the
// character gloss.
type Charset int

const (
	// CharsetFull renders ASCII printables plus byte values above 160.
	CharsetFull Charset = iota

	// CharsetASCII restricts the gloss to the ASCII printable range, for
	// platforms whose downstream text consumers mishandle extended bytes.
	CharsetASCII
)

// HostCharset resolves the charset for the current platform.
func HostCharset() Charset {
	if runtime.GOOS == "windows" {
		return CharsetASCII
	}
	return CharsetFull
}

// ByteSource yields bytes by absolute file offset. ok reports whether the
// offset lies inside the file; false is the end-of-file sentinel.
type ByteSource interface {
	ByteAt(offset int64) (b byte, ok bool, err error)
}

// Config controls which columns a Renderer emits and how the hex column is
// grouped. The character gloss is always emitted.
type Config struct {
	ShowOffset bool
	ShowHex    bool
	GroupSize  int // bytes per hex group: 1, 2, 4 or 8
	Charset    Charset
}

// Renderer formats LineWidth-byte line units according to a fixed Config.
// It holds no platform state; the charset is resolved once by the caller.
type Renderer struct {
	cfg Config
}

// New validates cfg and builds a Renderer.
func New(cfg Config) (*Renderer, error) {
	switch cfg.GroupSize {
	case 1, 2, 4, 8:
	default:
		return nil, fmt.Errorf("render: group size must be 1, 2, 4 or 8 (got %d)", cfg.GroupSize)
	}
	return &Renderer{cfg: cfg}, nil
}

// OffsetColumn formats an absolute offset as lowercase hex, zero-padded to
// 8 digits for offsets that fit 32 bits and 16 digits beyond that, so small
// files stay compact while >4 GiB files get full-width addresses.
func OffsetColumn(offset int64) string {
	if offset <= 0xFFFFFFFF {
		return fmt.Sprintf("%08x", offset)
	}
	return fmt.Sprintf("%016x", offset)
}

// ByteHex formats one hex cell: two lowercase digits, or ".." for the
// end-of-file sentinel.
func ByteHex(b byte, ok bool) string {
	if !ok {
		return ".."
	}
	return fmt.Sprintf("%02x", b)
}

// Glyph returns the gloss character for one byte, or '.' for the end-of-file
// sentinel and for anything the configured charset cannot represent.
func (r *Renderer) Glyph(b byte, ok bool) byte {
	if !ok {
		return '.'
	}
	return glyph(b, r.cfg.Charset)
}

func glyph(b byte, cs Charset) byte {
	if b == 0xad {
		// Soft hyphen, unrepresentable on every platform.
		return '.'
	}
	if b >= 32 && b < 127 {
		return b
	}
	if cs == CharsetFull && b > 160 {
		return b
	}
	return '.'
}

// Line renders the LineWidth-byte unit starting at lineStart. Positions at
// or past the end of the file render as ".." and '.', so the final line of a
// file keeps the same column width as every other line. A two-space
// separator follows every complete hex group except the last of the line.
func (r *Renderer) Line(src ByteSource, lineStart int64) (string, error) {
	var sb strings.Builder
	if r.cfg.ShowOffset {
		sb.WriteString(OffsetColumn(lineStart))
		sb.WriteString("   ")
	}

	var gloss [LineWidth]byte
	for pos := 0; pos < LineWidth; pos++ {
		b, ok, err := src.ByteAt(lineStart + int64(pos))
		if err != nil {
			return "", err
		}
		if r.cfg.ShowHex {
			sb.WriteString(ByteHex(b, ok))
			if (pos+1)%r.cfg.GroupSize == 0 && pos+1 < LineWidth {
				sb.WriteString("  ")
			}
		}
		gloss[pos] = r.Glyph(b, ok)
	}
	sb.Write(gloss[:])
	return sb.String(), nil
}
