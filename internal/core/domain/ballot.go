package domain

import "time"

// TimestampLayout matches the ISO-8601 form browsers emit for Date.toISOString.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

type VoterIdentity struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Ballot is immutable once admitted. Phone is kept as entered; the
// normalized form is derived on demand.
type Ballot struct {
	ID        string            `json:"id"`
	Timestamp string            `json:"timestamp"`
	Voter     VoterIdentity     `json:"voter"`
	Choices   map[string]string `json:"choices"`
	Note      string            `json:"note"`
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// DeviceState tracks whether this device's own voter has voted.
type DeviceState struct {
	HasVoted bool   `json:"has_voted"`
	Receipt  string `json:"receipt,omitempty"`
}

// StoreState is what the persistence collaborator loads and saves.
// Ballots are kept in their natural insertion order.
type StoreState struct {
	Ballots []Ballot
	Device  DeviceState
}

type ImportReport struct {
	Merged    int `json:"merged"`
	Skipped   int `json:"skipped"`
	Malformed int `json:"malformed"`
}

type Notification struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// PhoneDuplicate groups ballots that share a normalized phone number.
type PhoneDuplicate struct {
	Phone     string   `json:"phone"`
	BallotIDs []string `json:"ballot_ids"`
}
