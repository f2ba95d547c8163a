package voice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultConversionTimeout bounds a single ffmpeg run.
const DefaultConversionTimeout = 10 * time.Second

var ErrConversionTimeout = errors.New("ffmpeg conversion timed out")

// FFmpegConverter shells out to ffmpeg to produce 16 kHz mono WAV.
type FFmpegConverter struct {
	path    string
	timeout time.Duration
}

func NewFFmpegConverter(path string, timeout time.Duration) *FFmpegConverter {
	if path == "" {
		path = "ffmpeg"
	}
	if timeout <= 0 {
		timeout = DefaultConversionTimeout
	}
	return &FFmpegConverter{path: path, timeout: timeout}
}

func (c *FFmpegConverter) Convert(ctx context.Context, src, dst string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.path, "-y", "-i", src, "-ac", "1", "-ar", "16000", dst)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	// Children that inherit stderr must not keep Wait blocked past the kill.
	cmd.WaitDelay = time.Second

	err := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s", ErrConversionTimeout, c.timeout)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("ffmpeg failed: exit code %d, stderr: %s",
				exitErr.ExitCode(), lastLine(stderr.String()))
		}
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	return nil
}

// lastLine keeps ffmpeg's banner out of the logs; the error is on the last line.
func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
