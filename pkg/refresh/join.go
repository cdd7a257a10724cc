package refresh

// Join waits for a set of one-shot signals and runs a callback once all of
// them have fired.
//
// Signals are created with Add before any of them can fire. Each signal
// counts once no matter how often it is called. Cancel prevents the callback
// from ever running.
type Join struct {
	pending   int
	done      func()
	finished  bool
	cancelled bool
}

// NewJoin creates a join that runs done when every added signal has fired.
func NewJoin(done func()) *Join {
	return &Join{done: done}
}

// Add registers a new signal and returns the function that fires it.
func (j *Join) Add() func() {
	j.pending++
	fired := false
	return func() {
		if fired {
			return
		}
		fired = true
		j.signal()
	}
}

// Pending returns the number of signals that have not fired.
func (j *Join) Pending() int {
	return j.pending
}

// Cancel stops the join. Signals fired afterwards are ignored.
func (j *Join) Cancel() {
	j.cancelled = true
}

// Finished reports whether the callback has run.
func (j *Join) Finished() bool {
	return j.finished
}

func (j *Join) signal() {
	if j.cancelled || j.finished {
		return
	}
	j.pending--
	if j.pending > 0 {
		return
	}
	j.finished = true
	if j.done != nil {
		j.done()
	}
}
