package container

import (
	"context"
	"fmt"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
)

// Lister is the subset of the Docker Engine client used by Engine.
type Lister interface {
	ContainerList(ctx context.Context, options types.ContainerListOptions) ([]types.Container, error)
}

// Engine asks the Docker Engine API directly instead of shelling out.
type Engine struct {
	// Client overrides the engine client; nil connects using DOCKER_HOST and
	// related environment variables.
	Client Lister
}

func (e *Engine) Name() string {
	return "docker-engine"
}

func (e *Engine) Status(ctx context.Context, filter string) (string, error) {
	lister := e.Client
	if lister == nil {
		cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
		if err != nil {
			return "", fmt.Errorf("docker client: %w", err)
		}
		defer cli.Close()
		lister = cli
	}

	containers, err := lister.ContainerList(ctx, types.ContainerListOptions{
		Filters: filters.NewArgs(filters.Arg("name", filter)),
	})
	if err != nil {
		return "", fmt.Errorf("list containers: %w", err)
	}

	statuses := make([]string, 0, len(containers))
	for _, c := range containers {
		statuses = append(statuses, c.Status)
	}
	return strings.Join(statuses, "\n"), nil
}
