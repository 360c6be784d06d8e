// Package jobmgr runs named background jobs that can be cancelled by name.
//
//	jm := jobmgr.NewManager(func(msg string) { log.Println("[DEBUG]", msg) })
//	_ = jm.StartAsync("notice:123", func(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	})
//	_ = jm.Stop("notice:123")
//
// No retries, no persistence. Finished jobs are forgotten.
package jobmgr

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

type Job struct {
	Name   string
	Cancel context.CancelFunc
}

// StatusReporter receives lifecycle messages such as "running:x", "done:x"
// and "error:x:reason".
type StatusReporter func(string)

// Manager is safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	jobs     map[string]*Job
	wg       sync.WaitGroup
	Reporter StatusReporter
}

// NewManager creates a Manager. reporter may be nil.
func NewManager(reporter StatusReporter) *Manager {
	return &Manager{
		jobs:     make(map[string]*Job),
		Reporter: reporter,
	}
}

// StartAsync runs runner in its own goroutine. A job with the same name must not
// be running already.
func (m *Manager) StartAsync(name string, runner func(ctx context.Context) error) error {
	m.mu.Lock()
	if _, exists := m.jobs[name]; exists {
		m.mu.Unlock()
		return fmt.Errorf("job '%s' is already running", name)
	}
	ctx, cancel := context.WithCancel(context.Background())
	job := &Job{Name: name, Cancel: cancel}
	m.jobs[name] = job
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		defer cancel()
		m.report("running:" + name)

		if err := runner(ctx); err != nil {
			m.report("error:" + name + ":" + err.Error())
		} else {
			m.report("done:" + name)
		}

		m.mu.Lock()
		if m.jobs[name] == job {
			delete(m.jobs, name)
		}
		m.mu.Unlock()
	}()

	return nil
}

// StartAfter runs fn once delay has passed, unless the job is stopped first.
func (m *Manager) StartAfter(name string, delay time.Duration, fn func() error) error {
	return m.StartAsync(name, func(ctx context.Context) error {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			return fn()
		}
	})
}

// Stop cancels a running job.
func (m *Manager) Stop(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[name]
	if !ok {
		return fmt.Errorf("job '%s' not running", name)
	}
	job.Cancel()
	delete(m.jobs, name)
	return nil
}

// StopAll cancels every job and waits for their goroutines to return.
func (m *Manager) StopAll() {
	m.mu.Lock()
	for name, job := range m.jobs {
		job.Cancel()
		delete(m.jobs, name)
	}
	m.mu.Unlock()
	m.wg.Wait()
}

// List returns the names of running jobs, sorted.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.jobs))
	for k := range m.jobs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Status is a one-line summary for logs.
func (m *Manager) Status() string {
	active := m.List()
	if len(active) == 0 {
		return "No jobs are running."
	}
	return fmt.Sprintf("Running jobs: %s", strings.Join(active, ", "))
}

func (m *Manager) report(s string) {
	if m.Reporter != nil {
		m.Reporter(s)
	}
}
