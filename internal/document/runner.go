package document

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// Command is one external tool invocation.
type Command struct {
	Name string
	Args []string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Runner executes external commands; tests substitute a fake.
type Runner interface {
	// Run returns the command's stdout. A failed run's error carries the
	// start of its stderr.
	Run(ctx context.Context, cmd Command) ([]byte, error)
}

const stderrExcerpt = 512

type execRunner struct {
	logger *slog.Logger
}

func (r execRunner) Run(ctx context.Context, c Command) ([]byte, error) {
	start := time.Now()
	r.logger.Debug("document.exec.start", "cmd_line", c.String())

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	if err := cmd.Run(); err != nil {
		stderr := excerpt(errb.String(), stderrExcerpt)
		r.logger.Warn("document.exec.failed",
			"cmd", c.Name,
			"elapsed_ms", time.Since(start).Milliseconds(),
			"error", err,
			"stderr", stderr,
		)
		return nil, fmt.Errorf("%s: %w: %s", c.Name, err, stderr)
	}
	r.logger.Debug("document.exec.ok",
		"cmd", c.Name,
		"elapsed_ms", time.Since(start).Milliseconds(),
		"stdout_bytes", out.Len(),
	)
	return out.Bytes(), nil
}

func excerpt(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
