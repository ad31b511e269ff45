// Package config loads the election definition and the process settings.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/esrrgltshibamb2000/esr-election/internal/core/domain"
)

//go:embed election.yaml
var defaultElection []byte

// Default returns the built-in ESR construction department election.
func Default() domain.ElectionConfig {
	cfg, err := ParseElection(defaultElection)
	if err != nil {
		panic(fmt.Sprintf("embedded election config: %v", err))
	}
	return cfg
}

// LoadElection reads the election from path, or the built-in one when path is empty.
func LoadElection(path string) (domain.ElectionConfig, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ElectionConfig{}, fmt.Errorf("failed to read election config: %w", err)
	}
	return ParseElection(data)
}

func ParseElection(data []byte) (domain.ElectionConfig, error) {
	var cfg domain.ElectionConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ElectionConfig{}, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	if err := Validate(cfg); err != nil {
		return domain.ElectionConfig{}, err
	}
	return cfg, nil
}

// Validate checks that race ids are unique and that every race has
// candidates with unique ids.
func Validate(cfg domain.ElectionConfig) error {
	if len(cfg.Races) == 0 {
		return fmt.Errorf("%w: no races defined", domain.ErrInvalidConfig)
	}

	races := make(map[string]struct{}, len(cfg.Races))
	for i, race := range cfg.Races {
		if race.ID == "" {
			return fmt.Errorf("%w: race #%d has no id", domain.ErrInvalidConfig, i+1)
		}
		if _, dup := races[race.ID]; dup {
			return fmt.Errorf("%w: duplicate race id %q", domain.ErrInvalidConfig, race.ID)
		}
		races[race.ID] = struct{}{}

		if len(race.Candidates) == 0 {
			return fmt.Errorf("%w: race %q has no candidates", domain.ErrInvalidConfig, race.ID)
		}
		candidates := make(map[string]struct{}, len(race.Candidates))
		for _, c := range race.Candidates {
			if c.ID == "" {
				return fmt.Errorf("%w: race %q has a candidate without id", domain.ErrInvalidConfig, race.ID)
			}
			if _, dup := candidates[c.ID]; dup {
				return fmt.Errorf("%w: duplicate candidate %q in race %q", domain.ErrInvalidConfig, c.ID, race.ID)
			}
			candidates[c.ID] = struct{}{}
		}
	}
	return nil
}
