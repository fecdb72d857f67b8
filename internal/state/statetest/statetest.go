// Package statetest provides a state.Provider serving a fixed snapshot.
package statetest

import (
	"context"
	"sync"

	"github.com/fekuna/omnipos-booth-service/internal/state"
)

type Provider struct {
	mu        sync.Mutex
	snap      *state.Snapshot
	refreshes int
	err       error
}

func New(snap *state.Snapshot) *Provider {
	if snap == nil {
		snap = state.Empty()
	}
	return &Provider{snap: snap}
}

func (p *Provider) Current() *state.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap
}

// Refresh counts the call and keeps the snapshot unless Set replaced it.
func (p *Provider) Refresh(context.Context) (*state.Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refreshes++
	if p.err != nil {
		return nil, p.err
	}
	return p.snap, nil
}

func (p *Provider) Set(snap *state.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snap = snap
}

func (p *Provider) FailRefresh(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func (p *Provider) Refreshes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.refreshes
}
