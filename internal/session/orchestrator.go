// Package session owns the lifecycle of one analysis request: loading state,
// the single outbound call, and the guarantee that a superseded session can
// never overwrite a newer one.
package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/kyotei-ai/kyotei-cli/internal/classify"
	"github.com/kyotei-ai/kyotei-cli/internal/model"
)

// Analyzer issues the analyze request. *api.Client satisfies this; tests and
// the cache decorator wrap it.
type Analyzer interface {
	Analyze(ctx context.Context, venue string, raceNumber int) (*model.AnalysisResponse, error)
}

// Orchestrator runs analysis sessions. Each Start supersedes the previous
// session: results arriving for an older token are discarded, so the state
// always reflects the last session initiated.
type Orchestrator struct {
	analyzer Analyzer
	onUpdate func(model.ViewState)
	mu       sync.Mutex
	current  uuid.UUID
	state    model.ViewState
}

// New creates an orchestrator. onUpdate, if non-nil, is called with every
// applied state transition (including the initial Loading).
func New(analyzer Analyzer, onUpdate func(model.ViewState)) *Orchestrator {
	return &Orchestrator{
		analyzer: analyzer,
		onUpdate: onUpdate,
		state:    model.ViewState{Kind: model.ViewLoading},
	}
}

// State returns the current view state.
func (o *Orchestrator) State() model.ViewState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Start begins a new session for (venue, raceNumber) and returns its token.
// The state moves to Loading immediately; the terminal state is applied
// asynchronously unless a newer session has started in the meantime.
func (o *Orchestrator) Start(ctx context.Context, venue string, raceNumber int) uuid.UUID {
	token := uuid.New()

	o.mu.Lock()
	o.current = token
	o.state = model.ViewState{Kind: model.ViewLoading}
	o.mu.Unlock()
	o.notify(model.ViewState{Kind: model.ViewLoading})

	go func() {
		resp, err := o.analyzer.Analyze(ctx, venue, raceNumber)
		state := classify.Classify(resp, err)

		o.mu.Lock()
		if o.current != token {
			// A newer session owns the state now; discard this result.
			o.mu.Unlock()
			return
		}
		o.state = state
		o.mu.Unlock()
		o.notify(state)
	}()

	return token
}

// RunOnce performs a single synchronous session and returns its terminal
// state. Used by the non-interactive commands.
func (o *Orchestrator) RunOnce(ctx context.Context, venue string, raceNumber int) model.ViewState {
	token := uuid.New()

	o.mu.Lock()
	o.current = token
	o.state = model.ViewState{Kind: model.ViewLoading}
	o.mu.Unlock()

	resp, err := o.analyzer.Analyze(ctx, venue, raceNumber)
	state := classify.Classify(resp, err)

	o.mu.Lock()
	if o.current == token {
		o.state = state
	}
	o.mu.Unlock()

	return state
}

func (o *Orchestrator) notify(state model.ViewState) {
	if o.onUpdate != nil {
		o.onUpdate(state)
	}
}
