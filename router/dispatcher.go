package router

import (
	"context"
	"sync"
)

// DetailHandler fully replaces standard detail rendering for a content type.
type DetailHandler func(ctx context.Context, rc *Context) (*Response, error)

// SubPathHandler renders a custom sub-view addressed by the path segments
// remaining after the object's own address. It owns rendering entirely and
// may fail with any placement/category not-found error to signal a 404.
type SubPathHandler func(ctx context.Context, bits []string, rc *Context) (*Response, error)

// Dispatcher is a capability registry keyed by content-type identity
// ("app.model"). The router queries capabilities explicitly before
// dispatching; unregistered types fall through to standard rendering.
type Dispatcher struct {
	mu       sync.RWMutex
	details  map[string]DetailHandler
	subpaths map[string]SubPathHandler
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		details:  make(map[string]DetailHandler),
		subpaths: make(map[string]SubPathHandler),
	}
}

// RegisterDetail installs a custom detail override for a content-type key.
func (d *Dispatcher) RegisterDetail(typeKey string, h DetailHandler) {
	if d == nil || typeKey == "" || h == nil {
		return
	}
	d.mu.Lock()
	d.details[typeKey] = h
	d.mu.Unlock()
}

// RegisterSubPath installs a sub-path handler for a content-type key.
func (d *Dispatcher) RegisterSubPath(typeKey string, h SubPathHandler) {
	if d == nil || typeKey == "" || h == nil {
		return
	}
	d.mu.Lock()
	d.subpaths[typeKey] = h
	d.mu.Unlock()
}

// HasCustomDetail reports whether a detail override is registered.
func (d *Dispatcher) HasCustomDetail(typeKey string) bool {
	if d == nil {
		return false
	}
	d.mu.RLock()
	_, ok := d.details[typeKey]
	d.mu.RUnlock()
	return ok
}

// HasSubPath reports whether a sub-path handler is registered.
func (d *Dispatcher) HasSubPath(typeKey string) bool {
	if d == nil {
		return false
	}
	d.mu.RLock()
	_, ok := d.subpaths[typeKey]
	d.mu.RUnlock()
	return ok
}

// DispatchDetail invokes the registered detail override.
func (d *Dispatcher) DispatchDetail(ctx context.Context, typeKey string, rc *Context) (*Response, error) {
	d.mu.RLock()
	h := d.details[typeKey]
	d.mu.RUnlock()
	if h == nil {
		return nil, ErrNoHandler
	}
	return h(ctx, rc)
}

// DispatchSubPath invokes the registered sub-path handler.
func (d *Dispatcher) DispatchSubPath(ctx context.Context, typeKey string, bits []string, rc *Context) (*Response, error) {
	d.mu.RLock()
	h := d.subpaths[typeKey]
	d.mu.RUnlock()
	if h == nil {
		return nil, ErrNoHandler
	}
	return h(ctx, bits, rc)
}
