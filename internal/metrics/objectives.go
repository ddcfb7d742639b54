package metrics

// ObjectiveProgress summarizes the tasks attached to one objective.
type ObjectiveProgress struct {
	Objective  string  `json:"objective"`
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	Percentage float64 `json:"percentage"`
	Minutes    int     `json:"minutes"`
}

// ComputeObjectiveProgress groups tasks by objective and reports
// completion per group. Tasks without an objective are dropped, not
// collected into a catch-all bucket. Groups come back in the order each
// objective was first seen, which keeps display and tests deterministic.
// Minutes sum the durations of every task in the group regardless of
// status, with a missing duration counted as zero.
func ComputeObjectiveProgress(tasks []Task) []ObjectiveProgress {
	var order []string
	groups := make(map[string]*ObjectiveProgress)

	for _, t := range tasks {
		if t.Objective == "" {
			continue
		}
		g, ok := groups[t.Objective]
		if !ok {
			g = &ObjectiveProgress{Objective: t.Objective}
			groups[t.Objective] = g
			order = append(order, t.Objective)
		}
		g.Total++
		if t.Status == TaskStatusCompleted {
			g.Completed++
		}
		if t.DurationMinutes != nil {
			g.Minutes += *t.DurationMinutes
		}
	}

	out := make([]ObjectiveProgress, 0, len(order))
	for _, objective := range order {
		g := groups[objective]
		g.Percentage = CompletionRate(g.Completed, g.Total)
		out = append(out, *g)
	}
	return out
}
