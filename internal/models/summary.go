package models

// RunSummary aggregates the statuses produced by one run, in input order.
type RunSummary struct {
	Results  []LinkStatus `json:"results"`
	Total    int          `json:"total"`
	Active   int          `json:"active"`
	Redeemed int          `json:"redeemed"`
	Unknown  int          `json:"unknown"`
}

// Tally counts the results per status.
func Tally(results []LinkStatus) RunSummary {
	s := RunSummary{Results: results, Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case StatusActive:
			s.Active++
		case StatusRedeemed:
			s.Redeemed++
		default:
			s.Unknown++
		}
	}
	return s
}

// ActiveResults returns only the active entries, preserving order.
func (s RunSummary) ActiveResults() []LinkStatus {
	var active []LinkStatus
	for _, r := range s.Results {
		if r.Status == StatusActive {
			active = append(active, r)
		}
	}
	return active
}
