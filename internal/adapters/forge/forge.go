package forge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/creack/pty"
	"github.com/trebuchet-org/hoist/internal/domain/config"
)

// ForgeAdapter runs forge commands in the project root
type ForgeAdapter struct {
	log         *slog.Logger
	projectRoot string
	debug       bool
	bin         string
	out         io.Writer
}

// NewForgeAdapter creates a new forge executor
func NewForgeAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *ForgeAdapter {
	return &ForgeAdapter{
		log:         log.With("component", "ForgeAdapter"),
		projectRoot: cfg.ProjectRoot,
		debug:       cfg.Debug,
		bin:         "forge",
		out:         os.Stderr,
	}
}

// WithBinary overrides the forge executable
func (f *ForgeAdapter) WithBinary(bin string) *ForgeAdapter {
	f.bin = bin
	return f
}

// WithOutput sets where debug-mode build output is streamed
func (f *ForgeAdapter) WithOutput(w io.Writer) *ForgeAdapter {
	f.out = w
	return f
}

// Build runs forge build with proper output handling
func (f *ForgeAdapter) Build(ctx context.Context) error {
	start := time.Now()
	f.log.Debug("running forge build", "dir", f.projectRoot)

	cmd := exec.CommandContext(ctx, f.bin, "build")
	cmd.Dir = f.projectRoot

	if f.debug {
		return f.buildStreaming(cmd, start)
	}

	output, err := cmd.CombinedOutput()
	duration := time.Since(start)
	if err != nil {
		f.log.Error("forge build failed", "error", err, "duration", duration)
		return fmt.Errorf("forge build failed: %w\nOutput: %s", err, string(output))
	}

	f.log.Debug("forge build completed successfully", "duration", duration)
	return nil
}

// buildStreaming runs the build under a PTY so forge keeps its colored output
func (f *ForgeAdapter) buildStreaming(cmd *exec.Cmd, start time.Time) error {
	ptyFile, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("failed to start pty: %w", err)
	}
	defer func() {
		_ = ptyFile.Close()
	}()

	// reading a PTY whose child has exited returns EIO on linux
	if _, err := io.Copy(f.out, ptyFile); err != nil && !errors.Is(err, syscall.EIO) {
		f.log.Debug("pty copy ended", "error", err)
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("forge build failed: %w", err)
	}

	f.log.Debug("forge build completed successfully", "duration", time.Since(start))
	return nil
}
