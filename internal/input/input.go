package input

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/lucrnz/msconv/internal/util"
)

// ErrInputTooLarge is returned once more than the configured number of
// decompressed bytes has been read.
var ErrInputTooLarge = errors.New("input exceeded maximum size")

// Type identifies the compression of an input stream
type Type int

const (
	Plain Type = iota
	Gzip
	Bzip2
	Xz
	Zstd
)

func (t Type) String() string {
	switch t {
	case Plain:
		return "plain"
	case Gzip:
		return "gzip"
	case Bzip2:
		return "bzip2"
	case Xz:
		return "xz"
	case Zstd:
		return "zstd"
	default:
		return "unknown"
	}
}

var magics = []struct {
	typ   Type
	magic []byte
}{
	{Gzip, []byte{0x1f, 0x8b}},
	{Bzip2, []byte("BZh")},
	{Xz, []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}},
	{Zstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
}

// headerLen is the longest magic number we sniff for.
const headerLen = 6

// Detect returns the compression indicated by the leading bytes of a stream.
// Anything unrecognised is treated as plain text.
func Detect(header []byte) Type {
	for _, m := range magics {
		if bytes.HasPrefix(header, m.magic) {
			return m.typ
		}
	}
	return Plain
}

// Reader is a decompressed, size-limited view of an input stream.
type Reader struct {
	Type Type

	src     io.Reader
	closers []func() error
	stream  io.Closer
	read    atomic.Int64
	max     int64
}

// Open opens path ("-" for stdin) and wraps it with NewReader.
func Open(path string, maxBytes int64) (*Reader, error) {
	if path == "-" {
		return NewReader(os.Stdin, maxBytes)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	r, err := NewReader(f, maxBytes)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.closers = append(r.closers, f.Close)
	return r, nil
}

// NewReader sniffs the compression of r and returns a reader over the
// decompressed data. maxBytes limits the decompressed size; 0 means no limit.
//
// Only the bytes of the first read are sniffed, so an interactive stdin is
// not held up waiting for a full header. If r is an io.Closer it is not
// closed by Close, but Abort closes it.
func NewReader(r io.Reader, maxBytes int64) (*Reader, error) {
	br := bufio.NewReader(r)
	if _, err := br.Peek(1); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read input header: %w", err)
	}
	header, _ := br.Peek(min(br.Buffered(), headerLen))

	out := &Reader{Type: Detect(header), max: maxBytes}
	if c, ok := r.(io.Closer); ok {
		out.stream = c
	}
	switch out.Type {
	case Gzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		out.src = gz
		out.closers = append(out.closers, gz.Close)
	case Bzip2:
		out.src = bzip2.NewReader(br)
	case Xz:
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("xz: %w", err)
		}
		out.src = xr
	case Zstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		out.src = zr
		out.closers = append(out.closers, func() error { zr.Close(); return nil })
	default:
		out.src = br
	}
	return out, nil
}

func (r *Reader) Read(p []byte) (int, error) {
	read := r.read.Load()
	if r.max > 0 {
		if read > r.max {
			return 0, r.tooLarge()
		}
		// Allow one byte past the limit so we can tell "exactly max" from "more".
		if rem := r.max - read + 1; int64(len(p)) > rem {
			p = p[:rem]
		}
	}
	n, err := r.src.Read(p)
	read = r.read.Add(int64(n))
	if r.max > 0 && read > r.max {
		return n, r.tooLarge()
	}
	return n, err
}

func (r *Reader) tooLarge() error {
	return fmt.Errorf("%w: limit is %s", ErrInputTooLarge, util.HumanReadableBytes(r.max))
}

// BytesRead returns the number of decompressed bytes returned so far. It is
// safe to call while another goroutine reads.
func (r *Reader) BytesRead() int64 { return r.read.Load() }

// Abort closes the underlying stream so that a Read blocked on it returns.
// It may be called concurrently with Read; Close must still be called once
// no Read is in progress.
func (r *Reader) Abort() {
	if r.stream != nil {
		r.stream.Close()
	}
}

// Close releases the decompressor and the underlying file, if any.
func (r *Reader) Close() error {
	var errs []error
	for _, c := range r.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}
