// Package logpanel collects user-facing notifications by severity, the way
// the dashboard's log panel surfaces sync outcomes.
package logpanel

import "sync"

const capacity = 50

// Panel is a bounded, severity-bucketed message sink.
type Panel struct {
	mu       sync.Mutex
	success  []string
	warnings []string
	errors   []string
}

// Snapshot is a read-only copy of the panel contents.
type Snapshot struct {
	Success  []string
	Warnings []string
	Errors   []string
}

// New builds an empty panel.
func New() *Panel {
	return &Panel{}
}

// Success records an informational message.
func (p *Panel) Success(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.success = push(p.success, msg)
}

// Warning records a recoverable problem.
func (p *Panel) Warning(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.warnings = push(p.warnings, msg)
}

// Error records a failure the user should see.
func (p *Panel) Error(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errors = push(p.errors, msg)
}

// Drain returns the current contents and empties the panel.
func (p *Panel) Drain() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	snap := Snapshot{Success: p.success, Warnings: p.warnings, Errors: p.errors}
	p.success, p.warnings, p.errors = nil, nil, nil
	return snap
}

func push(bucket []string, msg string) []string {
	bucket = append(bucket, msg)
	if len(bucket) > capacity {
		bucket = bucket[len(bucket)-capacity:]
	}
	return bucket
}
