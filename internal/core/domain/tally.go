package domain

import "math"

type CandidateTally struct {
	CandidateID string `json:"candidate_id"`
	Name        string `json:"name"`
	Count       int    `json:"count"`
	Percentage  int    `json:"percentage"`
}

type RaceTally struct {
	RaceID     string           `json:"race_id"`
	Title      string           `json:"title"`
	Total      int              `json:"total"`
	Candidates []CandidateTally `json:"candidates"`
}

// TallyResult is derived from a ballot collection and never persisted.
// Races and candidates follow the ElectionConfig order.
type TallyResult struct {
	Races []RaceTally `json:"races"`
}

func (t TallyResult) Race(raceID string) (RaceTally, bool) {
	for _, r := range t.Races {
		if r.RaceID == raceID {
			return r, true
		}
	}
	return RaceTally{}, false
}

func (t TallyResult) Total(raceID string) int {
	r, _ := t.Race(raceID)
	return r.Total
}

func (t TallyResult) Count(raceID, candidateID string) int {
	r, _ := t.Race(raceID)
	for _, c := range r.Candidates {
		if c.CandidateID == candidateID {
			return c.Count
		}
	}
	return 0
}

// Percentage returns round(100*count/total), or 0 when total is 0.
func Percentage(count, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}
