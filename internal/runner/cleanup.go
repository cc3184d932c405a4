package runner

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// CleanupManager releases resources at the end of a session. Resources are
// released in reverse registration order, at most once, within a timeout.
type CleanupManager struct {
	mu          sync.Mutex
	resources   []CleanupResource
	timeout     time.Duration
	cleanupOnce sync.Once
	errs        []error
}

// CleanupResource represents a resource that needs cleanup
type CleanupResource interface {
	Cleanup() error
	Name() string
}

type cleanupFunc struct {
	name string
	fn   func() error
}

func (c *cleanupFunc) Cleanup() error { return c.fn() }

func (c *cleanupFunc) Name() string { return c.name }

// NewCleanupManager creates a manager; a non-positive timeout means 5s.
func NewCleanupManager(timeout time.Duration) *CleanupManager {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &CleanupManager{timeout: timeout}
}

// Register adds a resource to be cleaned up
func (cm *CleanupManager) Register(resource CleanupResource) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.resources = append(cm.resources, resource)
}

// RegisterFunc registers a cleanup function
func (cm *CleanupManager) RegisterFunc(name string, fn func() error) {
	cm.Register(&cleanupFunc{name: name, fn: fn})
}

// Execute runs every cleanup once. Later calls return the first result.
func (cm *CleanupManager) Execute() []error {
	cm.cleanupOnce.Do(func() {
		cm.errs = cm.executeWithTimeout()
	})
	return cm.errs
}

func (cm *CleanupManager) executeWithTimeout() []error {
	cm.mu.Lock()
	resources := make([]CleanupResource, len(cm.resources))
	copy(resources, cm.resources)
	cm.mu.Unlock()

	if len(resources) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cm.timeout)
	defer cancel()

	var (
		mu   sync.Mutex
		errs []error
	)
	record := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := len(resources) - 1; i >= 0; i-- {
			cm.run(resources[i], record)
		}
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Printf("cleanup: timeout after %v, some resources may not have been cleaned up", cm.timeout)
		record(fmt.Errorf("cleanup timeout exceeded after %v", cm.timeout))
	}

	mu.Lock()
	defer mu.Unlock()
	return append([]error(nil), errs...)
}

func (cm *CleanupManager) run(resource CleanupResource, record func(error)) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("cleanup: panic cleaning up %s: %v", resource.Name(), r)
			record(fmt.Errorf("panic during cleanup of %s: %v", resource.Name(), r))
		}
	}()

	if err := resource.Cleanup(); err != nil {
		log.Printf("cleanup: error cleaning up %s: %v", resource.Name(), err)
		record(fmt.Errorf("%s: %w", resource.Name(), err))
		return
	}
	log.Printf("cleanup: released %s", resource.Name())
}
