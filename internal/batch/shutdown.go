package batch

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"spotfind/internal/logger"
)

// Shutdownable is a component that can be asked to stop in response to a
// signal, such as a running Driver.
type Shutdownable interface {
	Shutdown()
}

// ShutdownManager listens for SIGINT/SIGTERM and shuts down registered
// components in reverse registration order, each bounded by a timeout.
type ShutdownManager struct {
	components []Shutdownable
	logger     logger.Logger
	mu         sync.Mutex
	done       chan struct{}
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewShutdownManager(log logger.Logger) *ShutdownManager {
	ctx, cancel := context.WithCancel(context.Background())

	return &ShutdownManager{
		components: make([]Shutdownable, 0),
		logger:     log,
		done:       make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (m *ShutdownManager) Register(component Shutdownable) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.components = append(m.components, component)
}

func (m *ShutdownManager) Listen() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		sig := <-sigChan
		m.logger.Info("ShutdownManager", "shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})
		m.Shutdown()
	}()
}

func (m *ShutdownManager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.done:
		return // Already shutting down
	default:
		close(m.done)
	}

	m.logger.Info("ShutdownManager", "shutdown sequence initiated", map[string]interface{}{
		"components": len(m.components),
	})

	m.cancel()

	// Shutdown components in reverse order
	for i := len(m.components) - 1; i >= 0; i-- {
		component := m.components[i]

		done := make(chan struct{})
		go func() {
			defer close(done)
			component.Shutdown()
		}()

		select {
		case <-done:
			// Component shut down successfully
		case <-time.After(10 * time.Second):
			m.logger.Warning("ShutdownManager", "component shutdown timeout", map[string]interface{}{
				"component_index": i,
			})
		}
	}

	m.logger.Info("ShutdownManager", "shutdown sequence completed", nil)
}

func (m *ShutdownManager) Context() context.Context {
	return m.ctx
}

func (m *ShutdownManager) Done() <-chan struct{} {
	return m.done
}
