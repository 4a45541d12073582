package lambda

import (
	"context"
	"fmt"
	"sync"

	"serverless-functions/internal/config"
	"serverless-functions/pkg/server"
)

// ContainerBuilder creates the service container for an execution environment
type ContainerBuilder func(ctx context.Context, cfg *config.Config) (*server.Container, error)

// ConnectionManager owns the service container of one Lambda execution
// environment. The container (and the storage client inside it) is built on
// the first invocation and reused by every later one.
type ConnectionManager struct {
	mu        sync.Mutex
	container *server.Container
	loadCfg   func() (*config.Config, error)
	build     ContainerBuilder
}

var (
	globalConnectionManager *ConnectionManager
	connectionManagerOnce   sync.Once
)

// GetConnectionManager returns the global connection manager instance
func GetConnectionManager() *ConnectionManager {
	connectionManagerOnce.Do(func() {
		globalConnectionManager = NewConnectionManager(config.GetOptimizedConfig, server.NewContainer)
	})
	return globalConnectionManager
}

// NewConnectionManager creates a manager with explicit config and container sources
func NewConnectionManager(loadCfg func() (*config.Config, error), build ContainerBuilder) *ConnectionManager {
	return &ConnectionManager{
		loadCfg: loadCfg,
		build:   build,
	}
}

// GetContainer returns the service container, building it on first use.
// A failed build is not cached, so the next invocation tries again.
func (cm *ConnectionManager) GetContainer(ctx context.Context) (*server.Container, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container != nil {
		return cm.container, nil
	}

	cfg, err := cm.loadCfg()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	container, err := cm.build(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize container: %w", err)
	}

	cm.container = container
	return container, nil
}

// IsInitialized reports whether the container has been built
func (cm *ConnectionManager) IsInitialized() bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.container != nil
}

// Cleanup releases the container's resources
func (cm *ConnectionManager) Cleanup() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container == nil {
		return nil
	}

	err := cm.container.Close()
	cm.container = nil
	return err
}
