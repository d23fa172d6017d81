package adventure

import "sync"

// PendingChoice is an offered event awaiting the user's selection.
type PendingChoice struct {
	LocationKey string
	EventKey    string
}

// PendingChoices tracks at most one offered choice per user.
type PendingChoices struct {
	mu      sync.Mutex
	pending map[string]PendingChoice
}

// NewPendingChoices creates an empty registry.
func NewPendingChoices() *PendingChoices {
	return &PendingChoices{pending: make(map[string]PendingChoice)}
}

// Put records a pending choice for a user and reports whether an
// earlier one was replaced. Presenting a new event always supersedes
// any choice still on the table.
func (p *PendingChoices) Put(userID string, choice PendingChoice) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, replaced := p.pending[userID]
	p.pending[userID] = choice
	return replaced
}

// Take removes and returns the user's pending choice. A choice is
// consumed exactly once, whichever reply path (button or text) wins.
func (p *PendingChoices) Take(userID string) (PendingChoice, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	choice, ok := p.pending[userID]
	if ok {
		delete(p.pending, userID)
	}
	return choice, ok
}

// Get returns the user's pending choice without consuming it.
func (p *PendingChoices) Get(userID string) (PendingChoice, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	choice, ok := p.pending[userID]
	return choice, ok
}

// Has reports whether the user has a choice on the table.
func (p *PendingChoices) Has(userID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, ok := p.pending[userID]
	return ok
}
