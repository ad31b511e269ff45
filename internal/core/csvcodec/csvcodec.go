// Package csvcodec reads and writes the flat ballot interchange format.
//
// The header is
//
//	id,timestamp,voter_name,voter_phone,vote_<race1>,...,vote_<raceN>,note
//
// and fields are joined with bare commas. Commas inside the note become
// semicolons and line breaks become spaces; nothing else is quoted or escaped, so names and notes that
// contain commas do not survive a round trip. Files already exported in
// this form must keep importing, which is why the format stays lossy.
package csvcodec

import (
	"regexp"
	"strings"

	"github.com/esrrgltshibamb2000/esr-election/internal/core/domain"
)

const (
	ColID         = "id"
	ColTimestamp  = "timestamp"
	ColVoterName  = "voter_name"
	ColVoterPhone = "voter_phone"
	ColNote       = "note"

	votePrefix = "vote_"
)

// Row maps header names to the values of one imported line.
type Row map[string]string

var lineBreak = regexp.MustCompile(`\r?\n`)

func VoteColumn(raceID string) string {
	return votePrefix + raceID
}

// Headers returns the column names in their compatibility order.
func Headers(cfg domain.ElectionConfig) []string {
	headers := []string{ColID, ColTimestamp, ColVoterName, ColVoterPhone}
	for _, race := range cfg.Races {
		headers = append(headers, VoteColumn(race.ID))
	}
	return append(headers, ColNote)
}

func Encode(ballots []domain.Ballot, cfg domain.ElectionConfig) string {
	lines := make([]string, 0, len(ballots)+1)
	lines = append(lines, strings.Join(Headers(cfg), ","))

	for _, b := range ballots {
		cols := []string{b.ID, b.Timestamp, b.Voter.Name, b.Voter.Phone}
		for _, race := range cfg.Races {
			cols = append(cols, b.Choices[race.ID])
		}
		cols = append(cols, noteField(b.Note))
		lines = append(lines, strings.Join(cols, ","))
	}

	return strings.Join(lines, "\n")
}

// Decode splits text into rows keyed by the first line's headers. Blank
// lines are dropped, cells are trimmed, and missing trailing cells read
// as the empty string.
func Decode(text string) []Row {
	var lines []string
	for _, line := range lineBreak.Split(strings.TrimSpace(text), -1) {
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	headers := splitTrim(lines[0])
	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := splitTrim(line)
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(values) {
				row[h] = values[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Ballot builds a ballot from an imported row. Every configured race gets
// an entry in Choices, empty when the row has no vote for it.
func (r Row) Ballot(cfg domain.ElectionConfig) domain.Ballot {
	choices := make(map[string]string, len(cfg.Races))
	for _, race := range cfg.Races {
		choices[race.ID] = r[VoteColumn(race.ID)]
	}
	return domain.Ballot{
		ID:        r[ColID],
		Timestamp: r[ColTimestamp],
		Voter: domain.VoterIdentity{
			Name:  r[ColVoterName],
			Phone: r[ColVoterPhone],
		},
		Choices: choices,
		Note:    r[ColNote],
	}
}

// noteReplacer keeps a note inside its own row and column.
var noteReplacer = strings.NewReplacer(",", ";", "\r\n", " ", "\n", " ", "\r", " ")

func noteField(note string) string {
	return noteReplacer.Replace(note)
}

func splitTrim(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
