package dom

import "sync"

// IndicatorState is a snapshot of a refresh indicator.
type IndicatorState struct {
	Active  bool
	Loading bool
}

// Indicator is an in-memory refresh-indicator element. It records every
// state it passes through.
type Indicator struct {
	mu       sync.Mutex
	state    IndicatorState
	history  []IndicatorState
	onChange func(IndicatorState)
}

// NewIndicator creates an indicator. onChange, if non-nil, is called after
// every state change.
func NewIndicator(onChange func(IndicatorState)) *Indicator {
	return &Indicator{onChange: onChange}
}

// SetActive shows or hides the pull indicator.
func (i *Indicator) SetActive(active bool) {
	i.update(func(s *IndicatorState) { s.Active = active })
}

// SetLoading toggles the loading state.
func (i *Indicator) SetLoading(loading bool) {
	i.update(func(s *IndicatorState) { s.Loading = loading })
}

// State returns the current state.
func (i *Indicator) State() IndicatorState {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// History returns every distinct state the indicator has been in, oldest
// first, excluding the initial zero state.
func (i *Indicator) History() []IndicatorState {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([]IndicatorState, len(i.history))
	copy(out, i.history)
	return out
}

func (i *Indicator) update(mutate func(*IndicatorState)) {
	i.mu.Lock()
	next := i.state
	mutate(&next)
	if next == i.state {
		i.mu.Unlock()
		return
	}
	i.state = next
	i.history = append(i.history, next)
	cb := i.onChange
	i.mu.Unlock()
	if cb != nil {
		cb(next)
	}
}
