package domain

type Candidate struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type Race struct {
	ID         string      `json:"id" yaml:"id"`
	Title      string      `json:"title" yaml:"title"`
	Candidates []Candidate `json:"candidates" yaml:"candidates"`
}

// HasCandidate reports whether id names one of the race's candidates.
func (r Race) HasCandidate(id string) bool {
	_, ok := r.Candidate(id)
	return ok
}

func (r Race) Candidate(id string) (Candidate, bool) {
	for _, c := range r.Candidates {
		if c.ID == id {
			return c, true
		}
	}
	return Candidate{}, false
}

// ElectionConfig is read once at startup and never mutated afterwards.
type ElectionConfig struct {
	Org           string `json:"org" yaml:"org"`
	Dept          string `json:"dept" yaml:"dept"`
	Races         []Race `json:"races" yaml:"races"`
	AdminPIN      string `json:"-" yaml:"admin_pin"`
	AdminWhatsApp string `json:"-" yaml:"admin_whatsapp"`
}

func (c ElectionConfig) Race(id string) (Race, bool) {
	for _, r := range c.Races {
		if r.ID == id {
			return r, true
		}
	}
	return Race{}, false
}
