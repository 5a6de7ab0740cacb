package domain

// Stats aggregates the durations (in seconds) of one group of completed events.
type Stats struct {
	Min   float64
	Max   float64
	Avg   float64
	Count int
}

// ComputeStats groups completed events that have both actual timestamps by
// title and aggregates their durations. Durations keep sub-second precision.
//
// Grouping is by exact title, so unrelated events sharing a title are merged.
func ComputeStats(events []Event) map[string]Stats {
	sums := make(map[string]float64)
	out := make(map[string]Stats)
	for _, e := range events {
		if !e.Completed || e.ActualStart == nil || e.ActualEnd == nil {
			continue
		}
		d := e.ActualEnd.Sub(*e.ActualStart).Seconds()

		s, seen := out[e.Title]
		if !seen {
			s = Stats{Min: d, Max: d}
		}
		if d < s.Min {
			s.Min = d
		}
		if d > s.Max {
			s.Max = d
		}
		s.Count++
		sums[e.Title] += d
		out[e.Title] = s
	}
	for title, s := range out {
		s.Avg = sums[title] / float64(s.Count)
		out[title] = s
	}
	return out
}
