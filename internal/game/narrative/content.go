package narrative

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/wildlands/internal/gameclock"
)

// Prompt is one narrative situation with parallel options and outcomes.
//
// Invariant: len(Options) == len(Outcomes).
type Prompt struct {
	Text     string
	Options  []string
	Outcomes []string
	// TimeOfDay, when set, restricts the prompt to that period.
	TimeOfDay gameclock.TimeOfDay
}

// Validate checks that options and outcomes pair up.
func (p Prompt) Validate() error {
	if strings.TrimSpace(p.Text) == "" {
		return fmt.Errorf("prompt text must not be empty")
	}
	if len(p.Options) == 0 {
		return fmt.Errorf("prompt %q has no options", p.Text)
	}
	if len(p.Options) != len(p.Outcomes) {
		return fmt.Errorf("prompt %q has %d options but %d outcomes", p.Text, len(p.Options), len(p.Outcomes))
	}
	return nil
}

// Library holds the prologues and prompts of every zone.
type Library struct {
	Prologues map[string][]string
	Prompts   map[string][]Prompt
}

// Validate checks every prompt.
func (l *Library) Validate() error {
	for zone, ps := range l.Prompts {
		for i, p := range ps {
			if err := p.Validate(); err != nil {
				return fmt.Errorf("zone %q prompt[%d]: %w", zone, i, err)
			}
		}
	}
	return nil
}

// ForTime returns the zone's prompts tagged with tod, or every zone prompt
// when none is tagged for it.
func (l *Library) ForTime(zone string, tod gameclock.TimeOfDay) []Prompt {
	all := l.Prompts[zone]
	var tagged []Prompt
	for _, p := range all {
		if p.TimeOfDay == tod {
			tagged = append(tagged, p)
		}
	}
	if len(tagged) > 0 {
		return tagged
	}
	return all
}
