// Package supervisor is the composition root that wires together a software
// bus worker and a data processor thread, running both under a shared
// context and returning the first error (if any) either reports.
package supervisor

import (
	"context"

	"github.com/outpost-go/flightcore/internal/corefail"
	"github.com/outpost-go/flightcore/internal/dataproc"
	"github.com/outpost-go/flightcore/internal/swbus"
	"golang.org/x/sync/errgroup"
)

// Supervisor owns the long-running goroutines of the core and reports
// unrecoverable failures to an injected corefail.Handler rather than a
// package-global panic.
type Supervisor struct {
	bus       *swbus.Bus
	processor *dataproc.Processor
	onFatal   corefail.Handler
}

// New constructs a Supervisor over bus and processor. onFatal may be nil, in
// which case fatal failures are silently swallowed after Run returns — the
// caller is expected to inspect Run's returned error instead.
func New(bus *swbus.Bus, processor *dataproc.Processor, onFatal corefail.Handler) *Supervisor {
	return &Supervisor{bus: bus, processor: processor, onFatal: onFatal}
}

// Run starts the bus worker and the processor thread, blocking until ctx is
// cancelled or one of them returns (which, since both loop until
// cancellation, only happens on cancellation itself). It returns the first
// non-nil error from the group, if any.
func (s *Supervisor) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.bus.Run(gctx)
		return gctx.Err()
	})

	g.Go(func() error {
		s.processor.Run(gctx)
		return gctx.Err()
	})

	err := g.Wait()
	if err != nil && err != context.Canceled && err != context.DeadlineExceeded && s.onFatal != nil {
		s.onFatal.OnFatal(err)
	}
	return err
}
