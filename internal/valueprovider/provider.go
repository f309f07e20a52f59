// Package valueprovider implements the environment resolver: turning a
// config's dynamic variables, constants, and dotenv files into a flat,
// lazily-resolved name/value space that the template engine and process
// environment draw from.
package valueprovider

import (
	"context"
	"sync"
)

// ValueProvider yields a single string value, possibly by running a
// subprocess or reading a file. GetValue may be called more than once; a
// Deferred provider resolves only on the first call and caches the result.
type ValueProvider interface {
	GetValue(ctx context.Context) (string, error)
}

// Simple wraps a value that is already known, requiring no resolution work.
type Simple struct {
	Value string
}

// NewSimple returns a ValueProvider that always yields value.
func NewSimple(value string) *Simple {
	return &Simple{Value: value}
}

func (s *Simple) GetValue(ctx context.Context) (string, error) {
	return s.Value, nil
}

// Resolver computes a value on demand. It is invoked at most once per
// Deferred instance.
type Resolver func(ctx context.Context) (string, error)

// Deferred wraps a Resolver behind one-shot memoization: the first call to
// GetValue runs resolve and caches its outcome (value or error); every
// subsequent call, including one that arrives while the first is still
// running, observes the same cached outcome rather than re-running resolve.
type Deferred struct {
	resolve Resolver

	once  sync.Once
	value string
	err   error
}

// NewDeferred returns a Deferred provider backed by resolve.
func NewDeferred(resolve Resolver) *Deferred {
	return &Deferred{resolve: resolve}
}

func (d *Deferred) GetValue(ctx context.Context) (string, error) {
	d.once.Do(func() {
		d.value, d.err = d.resolve(ctx)
	})
	return d.value, d.err
}
