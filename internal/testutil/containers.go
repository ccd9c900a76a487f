// containers.go
//
// Hierarchical app and store resolution service for the jam-build marketplace
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of jam-build-appstore.
// jam-build-appstore is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// jam-build-appstore is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with jam-build-appstore.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	defaultPostgresImage = "postgres:17-alpine"
	defaultRedisImage    = "redis:7-alpine"
)

// PostgresConfig holds the connection settings of a started postgres container
type PostgresConfig struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

// RunPostgres starts a throwaway postgres with its data directory on tmpfs.
// The caller terminates the returned container.
func RunPostgres(ctx context.Context) (testcontainers.Container, PostgresConfig, error) {
	cfg := PostgresConfig{Database: "appstore", User: "appstore", Password: "appstore"}

	port, err := nat.NewPort("tcp", "5432")
	if err != nil {
		return nil, cfg, fmt.Errorf("failed to create postgres port: %w", err)
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        envOr("POSTGRES_IMAGE", defaultPostgresImage),
			ExposedPorts: []string{string(port)},
			Env: map[string]string{
				"POSTGRES_DB":       cfg.Database,
				"POSTGRES_USER":     cfg.User,
				"POSTGRES_PASSWORD": cfg.Password,
			},
			HostConfigModifier: func(hc *container.HostConfig) {
				hc.Tmpfs = map[string]string{"/var/lib/postgresql/data": "rw"}
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort(port),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return c, cfg, fmt.Errorf("failed to start postgres: %w", err)
	}

	cfg.Host, cfg.Port, err = endpoint(ctx, c, port)
	return c, cfg, err
}

// RunRedis starts a throwaway redis and returns its redis:// url.
// The caller terminates the returned container.
func RunRedis(ctx context.Context) (testcontainers.Container, string, error) {
	port, err := nat.NewPort("tcp", "6379")
	if err != nil {
		return nil, "", fmt.Errorf("failed to create redis port: %w", err)
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        envOr("REDIS_IMAGE", defaultRedisImage),
			ExposedPorts: []string{string(port)},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return c, "", fmt.Errorf("failed to start redis: %w", err)
	}

	host, mapped, err := endpoint(ctx, c, port)
	if err != nil {
		return c, "", err
	}
	return c, fmt.Sprintf("redis://%s:%s/0", host, mapped), nil
}

// StartPostgres runs postgres for a test and registers its termination with t.
// Container tests are skipped under -short and when no docker provider is reachable.
func StartPostgres(t *testing.T) PostgresConfig {
	t.Helper()
	skipWithoutDocker(t)

	c, cfg, err := RunPostgres(context.Background())
	terminateOnCleanup(t, c)
	if err != nil {
		t.Fatalf("Failed to start postgres: %v", err)
	}
	return cfg
}

// StartRedis runs redis for a test and registers its termination with t
func StartRedis(t *testing.T) string {
	t.Helper()
	skipWithoutDocker(t)

	c, url, err := RunRedis(context.Background())
	terminateOnCleanup(t, c)
	if err != nil {
		t.Fatalf("Failed to start redis: %v", err)
	}
	return url
}

func skipWithoutDocker(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
}

func terminateOnCleanup(t *testing.T, c testcontainers.Container) {
	t.Cleanup(func() {
		// nil safe, also covers a container that failed to start
		if err := testcontainers.TerminateContainer(c); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})
}

func endpoint(ctx context.Context, c testcontainers.Container, port nat.Port) (string, string, error) {
	host, err := c.Host(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to get container host: %w", err)
	}
	mapped, err := c.MappedPort(ctx, port)
	if err != nil {
		return "", "", fmt.Errorf("failed to get mapped port %s: %w", port, err)
	}
	return host, mapped.Port(), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
