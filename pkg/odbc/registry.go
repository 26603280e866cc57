package odbc

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/datalith-io/searchlink/pkg/errors"
	"github.com/datalith-io/searchlink/pkg/logger"
)

// Registry manages driver registration and instantiation
type Registry struct {
	drivers     map[string]DriverFactory
	defaultName string
	mu          sync.RWMutex
	logger      *zap.Logger
}

// DriverFactory is a function that creates driver instances.
// It returns a configured Driver or an error.
type DriverFactory func() (Driver, error)

// Global registry instance
var globalRegistry = NewRegistry()

// NewRegistry creates a new driver registry
func NewRegistry() *Registry {
	return &Registry{
		drivers: make(map[string]DriverFactory),
		logger:  logger.Get().With(zap.String("component", "driver_registry")),
	}
}

// Register registers a driver factory. The first registered driver becomes
// the default until SetDefault overrides it.
func (r *Registry) Register(name string, factory DriverFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.drivers[name]; exists {
		return errors.New(errors.ErrorTypeConfig, fmt.Sprintf("driver %s already registered", name))
	}

	r.drivers[name] = factory
	if r.defaultName == "" {
		r.defaultName = name
	}
	r.logger.Info("driver registered", zap.String("name", name))
	return nil
}

// SetDefault selects the driver used when an open call names no driver.
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.drivers[name]; !exists {
		return errors.New(errors.ErrorTypeConfig, fmt.Sprintf("driver %s not found", name))
	}
	r.defaultName = name
	return nil
}

// Create instantiates a registered driver. An empty name selects the
// default driver.
func (r *Registry) Create(name string) (Driver, error) {
	r.mu.RLock()
	if name == "" {
		name = r.defaultName
	}
	factory, exists := r.drivers[name]
	r.mu.RUnlock()

	if name == "" {
		return nil, errors.New(errors.ErrorTypeConfig, "no driver registered")
	}
	if !exists {
		return nil, errors.New(errors.ErrorTypeConfig, fmt.Sprintf("driver %s not found", name))
	}

	drv, err := factory()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, fmt.Sprintf("failed to create driver %s", name))
	}

	return drv, nil
}

// List returns the names of registered drivers
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.drivers))
	for name := range r.drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has checks if a driver is registered
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.drivers[name]
	return exists
}

// Clear removes all registered drivers (mainly for testing)
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.drivers = make(map[string]DriverFactory)
	r.defaultName = ""
}

// Global registry functions

// Register registers a driver in the global registry
func Register(name string, factory DriverFactory) error {
	return globalRegistry.Register(name, factory)
}

// SetDefault selects the default driver in the global registry
func SetDefault(name string) error {
	return globalRegistry.SetDefault(name)
}

// Create instantiates a driver from the global registry
func Create(name string) (Driver, error) {
	return globalRegistry.Create(name)
}

// List returns registered driver names from the global registry
func List() []string {
	return globalRegistry.List()
}

// Has checks if a driver is registered in the global registry
func Has(name string) bool {
	return globalRegistry.Has(name)
}

// GetRegistry returns the global registry instance.
func GetRegistry() *Registry {
	return globalRegistry
}
