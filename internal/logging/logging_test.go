package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := Options{Level: "info", Format: "JSON"}.Logger(&buf)
	require.NoError(t, err)
	l.Info("batch_done", "lines", 3)
	assert.Contains(t, buf.String(), `"msg":"batch_done"`)
	assert.Contains(t, buf.String(), `"lines":3`)

	buf.Reset()
	l, err = Options{}.Logger(&buf)
	require.NoError(t, err)
	l.Debug("hidden")
	l.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")

	buf.Reset()
	l, err = Options{Level: "WARN"}.Logger(&buf)
	require.NoError(t, err)
	l.Info("hidden")
	l.Warn("line_rejected")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("msg=")))
}

func TestOptionsLoggerRejects(t *testing.T) {
	_, err := Options{Level: "loud"}.Logger(&bytes.Buffer{})
	assert.EqualError(t, err, `unsupported log level "loud" (want debug, info, warn or error)`)

	_, err = Options{Format: "xml"}.Logger(&bytes.Buffer{})
	assert.EqualError(t, err, `unsupported log format "xml" (want text or json)`)
}

func TestDefaultLevel(t *testing.T) {
	t.Setenv(EnvLevel, "")
	assert.Equal(t, "info", DefaultLevel())

	t.Setenv(EnvLevel, " debug ")
	assert.Equal(t, "debug", DefaultLevel())
}

func TestContextLogger(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := WithContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
}
