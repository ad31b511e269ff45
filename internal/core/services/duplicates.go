package services

import (
	"github.com/esrrgltshibamb2000/esr-election/internal/core/domain"
	"github.com/esrrgltshibamb2000/esr-election/internal/core/phone"
)

// FindDuplicatePhones lists normalized phones held by more than one ballot,
// in order of first appearance. Ballots without digits are ignored.
func FindDuplicatePhones(ballots []domain.Ballot) []domain.PhoneDuplicate {
	groups := make(map[string][]string)
	var order []string
	for _, b := range ballots {
		key := phone.Normalize(b.Voter.Phone)
		if key == "" {
			continue
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], b.ID)
	}

	var dups []domain.PhoneDuplicate
	for _, key := range order {
		if len(groups[key]) > 1 {
			dups = append(dups, domain.PhoneDuplicate{Phone: key, BallotIDs: groups[key]})
		}
	}
	return dups
}
