package forge

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/hoist/internal/domain/config"
)

// fakeForge writes a shell script standing in for the forge binary
func fakeForge(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "forge")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

func newTestAdapter(t *testing.T, debug bool) *ForgeAdapter {
	cfg := &config.RuntimeConfig{ProjectRoot: t.TempDir(), Debug: debug}
	return NewForgeAdapter(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestBuild(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newTestAdapter(t, false).WithBinary(fakeForge(t, `[ "$1" = "build" ] || exit 3; echo "Compiler run successful"`))
		assert.NoError(t, f.Build(context.Background()))
	})

	t.Run("failure includes output", func(t *testing.T) {
		f := newTestAdapter(t, false).WithBinary(fakeForge(t, `echo "Error: Compiler run failed"; exit 1`))
		err := f.Build(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Compiler run failed")
	})

	t.Run("missing binary", func(t *testing.T) {
		f := newTestAdapter(t, false).WithBinary(filepath.Join(t.TempDir(), "no-forge"))
		assert.Error(t, f.Build(context.Background()))
	})

	t.Run("debug streams output", func(t *testing.T) {
		var out bytes.Buffer
		f := newTestAdapter(t, true).
			WithBinary(fakeForge(t, `echo "Compiling 3 files"`)).
			WithOutput(&out)

		require.NoError(t, f.Build(context.Background()))
		assert.Contains(t, out.String(), "Compiling 3 files")
	})
}
