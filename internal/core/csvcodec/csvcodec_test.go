package csvcodec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esrrgltshibamb2000/esr-election/internal/config"
	"github.com/esrrgltshibamb2000/esr-election/internal/core/domain"
)

func sampleBallots() []domain.Ballot {
	return []domain.Ballot{
		{
			ID:        "6f1c2a9e-3b7d-4c1a-9e2f-0a1b2c3d4e5f",
			Timestamp: "2025-03-01T09:15:00.000Z",
			Voter:     domain.VoterIdentity{Name: "Alice", Phone: "+243 970 000 001"},
			Choices:   map[string]string{"dg-construction": "ndona-joel", "rep-etude-conception": "achema-tonny"},
			Note:      "more training, please",
		},
		{
			ID:        "0b9e8d7c-6a5b-4c3d-8e2f-1a0b9c8d7e6f",
			Timestamp: "2025-03-01T09:20:00.000Z",
			Voter:     domain.VoterIdentity{Name: "Bob", Phone: "243970000002"},
			Choices:   map[string]string{"dg-construction": "toussaint-enock"},
		},
	}
}

func TestHeaders(t *testing.T) {
	assert.Equal(t,
		[]string{"id", "timestamp", "voter_name", "voter_phone", "vote_dg-construction", "vote_rep-etude-conception", "note"},
		Headers(config.Default()))
}

func TestEncode(t *testing.T) {
	out := Encode(sampleBallots(), config.Default())
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "id,timestamp,voter_name,voter_phone,vote_dg-construction,vote_rep-etude-conception,note", lines[0])
	assert.Equal(t, "6f1c2a9e-3b7d-4c1a-9e2f-0a1b2c3d4e5f,2025-03-01T09:15:00.000Z,Alice,+243 970 000 001,ndona-joel,achema-tonny,more training; please", lines[1])
	assert.Equal(t, "0b9e8d7c-6a5b-4c3d-8e2f-1a0b9c8d7e6f,2025-03-01T09:20:00.000Z,Bob,243970000002,toussaint-enock,,", lines[2])
}

func TestEncodeEmptyIsHeaderOnly(t *testing.T) {
	out := Encode(nil, config.Default())
	assert.Equal(t, strings.Join(Headers(config.Default()), ","), out)
	assert.Empty(t, Decode(out))
}

func TestDecode(t *testing.T) {
	text := "id, name ,note\r\n\r\nb1,Alice,hi\nb2,Bob\n\n"
	rows := Decode(text)

	require.Len(t, rows, 2)
	assert.Equal(t, Row{"id": "b1", "name": "Alice", "note": "hi"}, rows[0])
	assert.Equal(t, Row{"id": "b2", "name": "Bob", "note": ""}, rows[1])
}

func TestDecodeEmpty(t *testing.T) {
	assert.Empty(t, Decode(""))
	assert.Empty(t, Decode("  \n \n"))
}

func TestRoundTrip(t *testing.T) {
	cfg := config.Default()
	ballots := sampleBallots()

	rows := Decode(Encode(ballots, cfg))
	require.Len(t, rows, len(ballots))

	for i, b := range ballots {
		row := rows[i]
		assert.Equal(t, b.ID, row[ColID])
		// Decode trims cells, and the sample phones carry no edge spaces.
		assert.Equal(t, b.Voter.Phone, row[ColVoterPhone])
		for _, race := range cfg.Races {
			assert.Equal(t, b.Choices[race.ID], row[VoteColumn(race.ID)])
		}
	}

	// Names without commas survive; the note had its comma rewritten.
	assert.Equal(t, "Alice", rows[0][ColVoterName])
	assert.Equal(t, "more training; please", rows[0][ColNote])
}

func TestRowBallot(t *testing.T) {
	cfg := config.Default()
	row := Decode(Encode(sampleBallots()[1:], cfg))[0]

	b := row.Ballot(cfg)
	assert.Equal(t, "0b9e8d7c-6a5b-4c3d-8e2f-1a0b9c8d7e6f", b.ID)
	assert.Equal(t, "2025-03-01T09:20:00.000Z", b.Timestamp)
	assert.Equal(t, domain.VoterIdentity{Name: "Bob", Phone: "243970000002"}, b.Voter)
	assert.Equal(t, map[string]string{"dg-construction": "toussaint-enock", "rep-etude-conception": ""}, b.Choices)
	assert.Empty(t, b.Note)
}

func TestEncodeNoteLineBreaksStayInRow(t *testing.T) {
	ballots := sampleBallots()[:1]
	ballots[0].Note = "line one\r\nline two\nthree, four"

	out := Encode(ballots, config.Default())

	rows := Decode(out)
	require.Len(t, rows, 1)
	assert.Equal(t, "line one line two three; four", rows[0][ColNote])
	assert.Equal(t, ballots[0].ID, rows[0][ColID])
}
