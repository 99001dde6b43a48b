// Package effect parses and applies the stat-tag mini-language embedded in
// narrative outcome text.
//
// Grammar (case-insensitive, whitespace between number and stat allowed):
//
//	tag    := "(" sign digits stat ")" [ "[type=" ident "]" ]
//	sign   := "+" | "-"
//	stat   := "health" | "stamina" | "thirst" | "hunger" | "experience" | "exp"
//
// Two further markers are recognised but never applied as stat deltas:
// "(+Loot)" and "(Travel to ZoneName)".
package effect

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/cory-johannsen/wildlands/internal/game/stats"
)

// MaxMitigation is the largest fraction of typed health damage that
// resistance may absorb.
const MaxMitigation = 0.7

var (
	tagRE    = regexp.MustCompile(`(?i)\(([+-]\d+)\s*(health|stamina|thirst|hunger|experience|exp)\)(?:\s*\[type=(\w+)\])?`)
	lootRE   = regexp.MustCompile(`(?i)\(\+loot\)`)
	travelRE = regexp.MustCompile(`(?i)\(travel to ([^)]+)\)`)
)

// Delta is one parsed stat tag.
type Delta struct {
	Stat  stats.Stat
	Value int
	// DamageType is the lower-cased "[type=...]" suffix, or empty.
	DamageType string
}

// Resistance maps a damage type to a flat reduction.
type Resistance map[string]int

// Parse returns every stat tag in text, in textual order.
//
// Postcondition: Returns an empty (non-nil) slice when no tag matches.
func Parse(text string) []Delta {
	matches := tagRE.FindAllStringSubmatch(text, -1)
	out := make([]Delta, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		s, ok := stats.ParseStat(m[2])
		if !ok {
			continue
		}
		out = append(out, Delta{Stat: s, Value: v, DamageType: strings.ToLower(m[3])})
	}
	return out
}

// Mitigate reduces a typed health loss by the matching resistance, capped at
// MaxMitigation of the raw damage. Deltas that are not typed health losses are
// returned unchanged.
//
// Postcondition: for a typed health loss of magnitude D, the returned value is
// -ceil(D - min(res, D*MaxMitigation)), so a typed hit always lands at
// least 1 point.
func Mitigate(d Delta, res Resistance) int {
	if d.Stat != stats.Health || d.Value >= 0 || d.DamageType == "" {
		return d.Value
	}
	damage := float64(-d.Value)
	r := float64(res[d.DamageType])
	if r <= 0 {
		return d.Value
	}
	mitigation := r
	if limit := damage * MaxMitigation; mitigation > limit {
		mitigation = limit
	}
	// The epsilon keeps float noise such as 10*0.7 from rounding a whole
	// remainder up by one.
	return -int(math.Ceil(damage - mitigation - 1e-9))
}

// Applied records what one tag actually changed.
type Applied struct {
	Delta
	// Requested is the delta after mitigation, before clamping.
	Requested int
	// Actual is the change observed on the stat after clamping.
	Actual int
}

// Apply parses text and applies every tag to p in textual order.
//
// Precondition: p must not be nil.
// Postcondition: all StatModel invariants hold; the returned slice has one
// entry per matched tag.
func Apply(p *stats.PlayerStats, text string, res Resistance) []Applied {
	deltas := Parse(text)
	out := make([]Applied, 0, len(deltas))
	for _, d := range deltas {
		v := Mitigate(d, res)
		out = append(out, Applied{Delta: d, Requested: v, Actual: p.ApplyDelta(d.Stat, v)})
	}
	return out
}

// HasLoot reports whether text carries the "(+Loot)" marker.
func HasLoot(text string) bool {
	return lootRE.MatchString(text)
}

// TravelTarget returns the zone named by the first "(Travel to X)" marker.
//
// Postcondition: Returns ("", false) when no marker is present.
func TravelTarget(text string) (string, bool) {
	m := travelRE.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	zone := strings.TrimSpace(m[1])
	if zone == "" {
		return "", false
	}
	return zone, true
}

// Strip removes every tag and marker from text, leaving only the prose.
func Strip(text string) string {
	text = tagRE.ReplaceAllString(text, "")
	text = lootRE.ReplaceAllString(text, "")
	text = travelRE.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}
