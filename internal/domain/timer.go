package domain

import "time"

// StopResult is reported after a successful stop.
type StopResult struct {
	ActualEnd       time.Time
	DurationSeconds int64
	// WorldRecord is reserved for personal-record tracking, which is not
	// implemented yet. It is always false.
	WorldRecord bool
}

// TimingPatch overwrites actual-execution fields. Nil pointers leave the
// field untouched; Completed is always applied.
type TimingPatch struct {
	ActualStart *time.Time
	ActualEnd   *time.Time
	Completed   bool
	Notes       *string
}

// StartTimer records now as the actual start and returns it.
//
// Restarting is not locked: a second start overwrites the first one and
// leaves ActualEnd and Completed as they were.
func (e *Event) StartTimer(now time.Time) time.Time {
	start := now.UTC()
	e.ActualStart = &start
	return start
}

// StopTimer records now as the actual end and marks the event completed.
// It returns ErrInvalidState and leaves the event unchanged when the timer
// was never started.
func (e *Event) StopTimer(now time.Time) (StopResult, error) {
	if e.ActualStart == nil {
		return StopResult{}, ErrInvalidState
	}
	end := now.UTC()
	e.ActualEnd = &end
	e.Completed = true

	seconds, _ := e.DurationSeconds()
	return StopResult{
		ActualEnd:       end,
		DurationSeconds: seconds,
		WorldRecord:     false,
	}, nil
}

// ApplyUpdate overwrites every field present in the patch. Start/end
// ordering is not checked, so the result may have an inverted range.
func (e *Event) ApplyUpdate(p TimingPatch) EventView {
	if p.ActualStart != nil {
		start := p.ActualStart.UTC()
		e.ActualStart = &start
	}
	if p.ActualEnd != nil {
		end := p.ActualEnd.UTC()
		e.ActualEnd = &end
	}
	e.Completed = p.Completed
	if p.Notes != nil {
		notes := *p.Notes
		e.Notes = &notes
	}
	return View(*e)
}
