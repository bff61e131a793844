package skinplay

import (
	"sync"
	"sync/atomic"
)

// ReadinessGate flips from "not drawable" to "drawable" exactly once, carrying
// the loaded ModelResource across. The frame loop polls it; it never blocks.
type ReadinessGate struct {
	once     sync.Once
	resource atomic.Pointer[gateSlot]
	done     chan struct{}
}

type gateSlot struct {
	res ModelResource
}

func NewReadinessGate() *ReadinessGate {
	return &ReadinessGate{done: make(chan struct{})}
}

// Open publishes res and reports whether this call opened the gate. Later calls
// are no-ops.
func (g *ReadinessGate) Open(res ModelResource) bool {
	if res == nil {
		panic("ReadinessGate: Open with nil resource")
	}
	opened := false
	g.once.Do(func() {
		g.resource.Store(&gateSlot{res: res})
		close(g.done)
		opened = true
	})
	return opened
}

func (g *ReadinessGate) IsOpen() bool {
	return g.resource.Load() != nil
}

// Resource returns the published resource, or nil while loading.
func (g *ReadinessGate) Resource() ModelResource {
	if slot := g.resource.Load(); slot != nil {
		return slot.res
	}
	return nil
}

// Done is closed when the gate opens.
func (g *ReadinessGate) Done() <-chan struct{} {
	return g.done
}
