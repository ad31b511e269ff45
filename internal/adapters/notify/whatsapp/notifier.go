// Package whatsapp composes the click-to-chat message a voter sends to the
// election admin after submitting.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/esrrgltshibamb2000/esr-election/internal/core/domain"
	"github.com/esrrgltshibamb2000/esr-election/internal/core/phone"
	"github.com/esrrgltshibamb2000/esr-election/internal/core/ports"
)

const baseURL = "https://wa.me/"

type notifier struct {
	cfg domain.ElectionConfig
}

func NewNotifier(cfg domain.ElectionConfig) ports.Notifier {
	return &notifier{
		cfg: cfg,
	}
}

func (n *notifier) Compose(ballot domain.Ballot) domain.Notification {
	text := n.message(ballot)
	return domain.Notification{
		Text: text,
		URL:  baseURL + phone.Normalize(n.cfg.AdminWhatsApp) + "?text=" + escape(text),
	}
}

func (n *notifier) message(ballot domain.Ballot) string {
	lines := []string{
		"Bonjour Admin ESR,",
		"Voici mon vote :",
	}
	for _, race := range n.cfg.Races {
		// Unknown or blank choices render as an empty name.
		c, _ := race.Candidate(ballot.Choices[race.ID])
		lines = append(lines, fmt.Sprintf("- %s : %s", race.Title, c.Name))
	}
	lines = append(lines,
		"",
		"Nom : "+ballot.Voter.Name,
		"Téléphone : "+ballot.Voter.Phone,
		"Reçu : "+ballot.ID,
	)
	return strings.Join(lines, "\n")
}

// escape percent-encodes s for a query value, spaces as %20.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
