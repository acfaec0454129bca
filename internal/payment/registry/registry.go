package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/davidbz/gamehost/internal/domain"
)

// Registry implements the GatewayRegistry interface.
type Registry struct {
	mu       sync.RWMutex
	gateways map[string]domain.PaymentGateway
}

// NewRegistry creates a new gateway registry.
func NewRegistry() *Registry {
	return &Registry{
		mu:       sync.RWMutex{},
		gateways: make(map[string]domain.PaymentGateway),
	}
}

// Register adds a gateway to the registry.
func (r *Registry) Register(_ context.Context, gateway domain.PaymentGateway) error {
	if gateway == nil {
		return errors.New("gateway cannot be nil")
	}

	name := gateway.Name()
	if name == "" {
		return errors.New("gateway name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.gateways[name]; exists {
		return fmt.Errorf("gateway %s already registered", name)
	}

	r.gateways[name] = gateway
	return nil
}

// Get retrieves a gateway by name.
func (r *Registry) Get(_ context.Context, name string) (domain.PaymentGateway, error) {
	if name == "" {
		return nil, errors.New("gateway name cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	gateway, exists := r.gateways[name]
	if !exists {
		return nil, fmt.Errorf("gateway %s not found", name)
	}

	return gateway, nil
}

// List returns all registered gateway names in sorted order.
func (r *Registry) List(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.gateways))
	for name := range r.gateways {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}
