package domain

// EventView is an event together with its derived duration.
type EventView struct {
	Event
	DurationSeconds *int64
}

// View projects a single event. Tags are never nil in the result.
func View(e Event) EventView {
	v := EventView{Event: e}
	if seconds, ok := e.DurationSeconds(); ok {
		v.DurationSeconds = &seconds
	}
	if v.Tags == nil {
		v.Tags = []string{}
	}
	return v
}

// ListWithDuration projects events in their original order without
// mutating them.
func ListWithDuration(events []Event) []EventView {
	out := make([]EventView, 0, len(events))
	for _, e := range events {
		out = append(out, View(e))
	}
	return out
}
