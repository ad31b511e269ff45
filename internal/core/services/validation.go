package services

import (
	"fmt"
	"strings"

	"github.com/esrrgltshibamb2000/esr-election/internal/core/domain"
	"github.com/esrrgltshibamb2000/esr-election/internal/core/phone"
	"github.com/esrrgltshibamb2000/esr-election/internal/core/ports"
)

// fieldBreakers would shift or split columns in an export row.
const fieldBreakers = ",\r\n"

// validateSubmission returns every problem with the input, races first in
// config order, then name, then phone. An empty slice means the input is
// admissible.
func validateSubmission(cfg domain.ElectionConfig, input ports.SubmitInput) []string {
	var reasons []string

	for _, race := range cfg.Races {
		sel := input.Choices[race.ID]
		switch {
		case sel == "":
			reasons = append(reasons, fmt.Sprintf("choose a candidate for %q", race.Title))
		case !race.HasCandidate(sel):
			reasons = append(reasons, fmt.Sprintf("unknown candidate %q for %q", sel, race.Title))
		}
	}

	switch {
	case strings.TrimSpace(input.Voter.Name) == "":
		reasons = append(reasons, "enter your full name")
	case strings.ContainsAny(input.Voter.Name, fieldBreakers):
		reasons = append(reasons, "name must not contain commas or line breaks")
	}

	switch {
	case strings.TrimSpace(input.Voter.Phone) == "":
		reasons = append(reasons, "enter your WhatsApp phone number")
	case strings.ContainsAny(input.Voter.Phone, fieldBreakers):
		reasons = append(reasons, "phone number must not contain commas or line breaks")
	case phone.Normalize(input.Voter.Phone) == "":
		reasons = append(reasons, "phone number must contain digits")
	}

	return reasons
}
