package crewrpc

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Registry runs several crew services side by side, each on its own
// port. Useful for serving the planning and writing crews as separate
// endpoints from one process.
type Registry struct {
	services []*Service
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers a service. Services are assigned ports in the order
// they were added.
func (r *Registry) Add(s *Service) {
	r.services = append(r.services, s)
}

// Services returns the registered services in port order.
func (r *Registry) Services() []*Service {
	return r.services
}

// Run starts every registered service on consecutive ports beginning
// at basePort and blocks until ctx is cancelled or a service fails.
// When one service fails the rest are shut down.
func (r *Registry) Run(ctx context.Context, host string, basePort int) error {
	if len(r.services) == 0 {
		return fmt.Errorf("crewrpc: no services registered")
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, svc := range r.services {
		addr := fmt.Sprintf("%s:%d", host, basePort+i)
		g.Go(func() error {
			return svc.Run(gctx, addr)
		})
	}
	return g.Wait()
}
