package media

import (
	"sync"

	"github.com/goliatone/go-composer/sections"
)

// Picker tracks the single open media picker session. A target lives from
// Open until Resolve or Cancel.
type Picker struct {
	mu     sync.Mutex
	router *Router
	target *EditingTarget
}

// NewPicker builds a picker applying selections through router.
func NewPicker(router *Router) *Picker {
	if router == nil {
		router = NewRouter()
	}
	return &Picker{router: router}
}

// Open starts a session for target, replacing any open one.
func (p *Picker) Open(target EditingTarget) error {
	if err := target.Validate(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.target = &target
	return nil
}

// Active returns the open target.
func (p *Picker) Active() (EditingTarget, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.target == nil {
		return EditingTarget{}, false
	}
	return *p.target, true
}

// Resolve applies asset to the open target and closes the session whatever
// the outcome.
func (p *Picker) Resolve(seq []sections.Section, asset Asset) ([]sections.Section, Outcome) {
	p.mu.Lock()
	target := p.target
	p.target = nil
	p.mu.Unlock()

	if target == nil {
		return seq, NoActiveTarget
	}
	return p.router.Apply(seq, *target, asset)
}

// Cancel closes the session without applying anything.
func (p *Picker) Cancel() {
	p.mu.Lock()
	p.target = nil
	p.mu.Unlock()
}
