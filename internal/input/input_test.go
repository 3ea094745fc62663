package input

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

const sample = "1d\n2 days\n2.5 hrs\n-100\n"

func compress(t *testing.T, typ Type, data string) []byte {
	t.Helper()
	var buf bytes.Buffer
	var w io.WriteCloser
	var err error

	switch typ {
	case Plain:
		return []byte(data)
	case Gzip:
		w = gzip.NewWriter(&buf)
	case Xz:
		w, err = xz.NewWriter(&buf)
	case Zstd:
		w, err = zstd.NewWriter(&buf)
	default:
		t.Fatalf("no writer for %s", typ)
	}
	require.NoError(t, err)

	_, err = io.WriteString(w, data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestDetect(t *testing.T) {
	tests := []struct {
		header []byte
		want   Type
	}{
		{[]byte{0x1f, 0x8b, 0x08}, Gzip},
		{[]byte("BZh91AY"), Bzip2},
		{[]byte{0xfd, '7', 'z', 'X', 'Z', 0x00}, Xz},
		{[]byte{0x28, 0xb5, 0x2f, 0xfd, 0x00}, Zstd},
		{[]byte("1d\n"), Plain},
		{nil, Plain},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Detect(tt.header), "header %x", tt.header)
	}
}

func TestNewReaderDecompresses(t *testing.T) {
	for _, typ := range []Type{Plain, Gzip, Xz, Zstd} {
		t.Run(typ.String(), func(t *testing.T) {
			r, err := NewReader(bytes.NewReader(compress(t, typ, sample)), 0)
			require.NoError(t, err)
			defer r.Close()

			assert.Equal(t, typ, r.Type)
			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, sample, string(got))
			assert.Equal(t, int64(len(sample)), r.BytesRead())
		})
	}
}

func TestNewReaderShortInput(t *testing.T) {
	r, err := NewReader(strings.NewReader("5s"), 0)
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "5s", string(got))
}

func TestNewReaderDoesNotWaitForFullHeader(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	go func() { _, _ = pw.Write([]byte("1s\n")) }()

	opened := make(chan *Reader, 1)
	go func() {
		r, err := NewReader(pr, 0)
		assert.NoError(t, err)
		opened <- r
	}()

	select {
	case r := <-opened:
		require.NotNil(t, r)
		assert.Equal(t, Plain, r.Type)
		buf := make([]byte, 16)
		n, err := r.Read(buf)
		require.NoError(t, err)
		assert.Equal(t, "1s\n", string(buf[:n]))
	case <-time.After(2 * time.Second):
		t.Fatal("NewReader waited for more than the first read")
	}
}

func TestReaderAbort(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	go func() { _, _ = pw.Write([]byte("1s\n")) }()

	r, err := NewReader(pr, 0)
	require.NoError(t, err)
	_, err = r.Read(make([]byte, 16))
	require.NoError(t, err)

	readErr := make(chan error, 1)
	go func() {
		_, err := r.Read(make([]byte, 16))
		readErr <- err
	}()
	r.Abort()

	select {
	case err := <-readErr:
		assert.ErrorIs(t, err, io.ErrClosedPipe)
	case <-time.After(2 * time.Second):
		t.Fatal("Read still blocked after Abort")
	}
}

func TestReaderLimit(t *testing.T) {
	data := compress(t, Zstd, strings.Repeat("1s\n", 100))

	r, err := NewReader(bytes.NewReader(data), 30)
	require.NoError(t, err)
	_, err = io.ReadAll(r)
	assert.ErrorIs(t, err, ErrInputTooLarge)

	r, err = NewReader(bytes.NewReader(data), 300)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err, "input of exactly the limit must pass")
	assert.Len(t, got, 300)
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "durations.txt.gz")
	require.NoError(t, os.WriteFile(path, compress(t, Gzip, sample), 0644))

	r, err := Open(path, 0)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, sample, string(got))
	assert.NoError(t, r.Close())

	_, err = Open(filepath.Join(t.TempDir(), "missing"), 0)
	assert.Error(t, err)
}

func TestNewReaderCorrupt(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte{0xfd, '7', 'z', 'X', 'Z', 0x00, 0x01}), 0)
	assert.Error(t, err)
}
