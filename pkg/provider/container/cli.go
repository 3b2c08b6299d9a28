package container

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/Porizovatel/kulda/pkg/utils"
)

// CLI runs `<binary> ps --filter name=<filter> --format {{.Status}}`.
// Any docker-compatible CLI (docker, podman, nerdctl) works.
type CLI struct {
	Binary string
}

func (c *CLI) Name() string {
	return c.binary()
}

func (c *CLI) binary() string {
	if c.Binary == "" {
		return "docker"
	}
	return c.Binary
}

func (c *CLI) Status(ctx context.Context, filter string) (string, error) {
	log := utils.ContextLogger(ctx, slog.String("backend", c.binary()))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.binary(), "ps", "--filter", "name="+filter, "--format", "{{.Status}}")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || ctx.Err() != nil {
			return "", fmt.Errorf("failed to run %s: %w", c.binary(), err)
		}
		// a non-zero exit still leaves whatever was printed usable
		log.Warn(fmt.Sprintf("%s ps exited with status %d", c.binary(), exitErr.ExitCode()),
			slog.String("stderr", strings.TrimSpace(stderr.String())))
	}

	return strings.TrimSpace(stdout.String()), nil
}
