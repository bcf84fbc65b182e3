// Package runner executes one edit in a separate editor process.
//
// An edit request carries its image as a data URL. The runner writes it to
// input.png in a fresh temporary directory, runs the editor binary against
// it with a bounded timeout, and returns output.png as a PNG data URL. The
// temporary directory is removed whatever the outcome.
package runner

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/ironsheep/image-edit-tools/internal/envconfig"
)

var (
	ErrInvalidDataURL = errors.New("imageDataUrl must be a valid data URL")
	ErrTimeout        = errors.New("image tools timed out")
	ErrNoOutput       = errors.New("image tools did not produce output image")
)

// ToolError reports an editor process that exited unsuccessfully.
// Message is the trimmed stderr, or stdout when stderr is empty.
type ToolError struct {
	Message string
	Err     error
}

func (e *ToolError) Error() string { return e.Message }

func (e *ToolError) Unwrap() error { return e.Err }

// Runner spawns editor processes.
type Runner struct {
	// Binary is the editor executable.
	Binary string
	// Timeout bounds each process; zero means envconfig.DefaultTimeout.
	Timeout time.Duration
	// Debug logs every invocation.
	Debug bool
}

// New returns a runner configured from the environment. Without
// IMAGE_EDIT_BINARY it runs the current executable.
func New() (*Runner, error) {
	binary := envconfig.Binary()
	if binary == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to locate editor binary: %w", err)
		}
		binary = exe
	}
	return &Runner{Binary: binary, Timeout: envconfig.Timeout(), Debug: envconfig.Debug()}, nil
}

// Apply runs the tools against the image in dataURL and returns the edited
// image as a PNG data URL.
func (r *Runner) Apply(ctx context.Context, dataURL string, tools Tools) (string, error) {
	data, err := DecodeDataURL(dataURL)
	if err != nil {
		return "", err
	}

	dir, err := os.MkdirTemp("", "img_tools_")
	if err != nil {
		return "", fmt.Errorf("failed to create work directory: %w", err)
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "input.png")
	output := filepath.Join(dir, "output.png")
	if err := os.WriteFile(input, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write input image: %w", err)
	}

	if err := r.Run(ctx, Args(input, output, tools)); err != nil {
		return "", err
	}

	out, err := os.ReadFile(output)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoOutput
		}
		return "", fmt.Errorf("failed to read output image: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(out), nil
}

// Run executes the editor with args under the runner's timeout.
func (r *Runner) Run(ctx context.Context, args []string) error {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = envconfig.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	if r.Debug {
		log.Printf("ran %s with %d args in %s", filepath.Base(r.Binary), len(args), time.Since(start))
	}

	switch ctx.Err() {
	case context.DeadlineExceeded:
		return fmt.Errorf("%w after %s", ErrTimeout, timeout)
	case context.Canceled:
		return fmt.Errorf("image tools canceled: %w", ctx.Err())
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return fmt.Errorf("failed to run image tools: %w", err)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		if msg == "" {
			msg = "image tool execution failed"
		}
		return &ToolError{Message: msg, Err: err}
	}
	return nil
}

// DecodeDataURL returns the bytes of a base64 "data:image/..." URL.
func DecodeDataURL(dataURL string) ([]byte, error) {
	if !strings.HasPrefix(dataURL, "data:image/") {
		return nil, ErrInvalidDataURL
	}
	_, encoded, ok := strings.Cut(dataURL, ",")
	if !ok {
		return nil, fmt.Errorf("%w: missing image data", ErrInvalidDataURL)
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	return data, nil
}
