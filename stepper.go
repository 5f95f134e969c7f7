package tilepath

import "errors"

// ErrStepperInvalidated is returned by Step once another search has been
// started on the stepper's Finder.
var ErrStepperInvalidated = errors.New("stepper invalidated by another search")

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot struct {
	Current   Step
	Open      []Step
	Closed    []Step
	Done      bool
	Found     bool
	Path      *Path
	StepIndex int
	MaxDepth  int
}

// Stepper runs a search one expansion at a time. It borrows its Finder's
// node pool: starting any other search on the same Finder invalidates it.
type Stepper struct {
	search   *search
	result   Result
	err      error
	finished bool
}

// Stepper starts a step-by-step search with the same semantics as FindPath.
// It fails up front, with the same errors, when the start or target is out of
// bounds or the target is blocked.
func (f *Finder) Stepper(mover Mover, sx, sy, tx, ty int) (*Stepper, error) {
	s, err := f.begin(mover, sx, sy, tx, ty)
	if err != nil {
		return nil, err
	}
	return &Stepper{search: s}, nil
}

// Close releases the Finder. Further calls to Step report the search as done.
func (s *Stepper) Close() {
	if !s.finished {
		s.finished = true
		s.err = ErrStepperInvalidated
	}
	s.search.release()
}

// Step advances the search by one node expansion and returns a snapshot
func (s *Stepper) Step() (StepSnapshot, error) {
	if s.finished {
		return s.snapshot(), s.err
	}
	if s.search.invalidated {
		s.finished = true
		s.err = ErrStepperInvalidated
		return s.snapshot(), s.err
	}

	if !s.search.done {
		s.search.step()
	}
	if s.search.done {
		s.result, s.err = s.search.finish()
		s.finished = true
		snapshot := s.snapshot()
		s.search.release()
		return snapshot, s.err
	}
	return s.snapshot(), nil
}

// Result returns the outcome once Step has reported Done.
func (s *Stepper) Result() (Result, error) {
	if !s.finished {
		return Result{}, errors.New("search still running")
	}
	return s.result, s.err
}

func (s *Stepper) snapshot() StepSnapshot {
	search := s.search
	snapshot := StepSnapshot{
		Done:      s.finished,
		Found:     s.result.Found,
		Path:      s.result.Path,
		StepIndex: search.iterations,
		MaxDepth:  search.maxDepth,
	}
	if search.current != nil {
		snapshot.Current = Step{X: search.current.x, Y: search.current.y}
	} else {
		snapshot.Current = Step{X: search.sx, Y: search.sy}
	}
	// The pool is only trustworthy while this stepper still owns it.
	if !search.invalidated && search.finder.active == search {
		snapshot.Open = search.finder.open.steps()
		snapshot.Closed = search.finder.pool.closedSteps()
	}
	return snapshot
}
