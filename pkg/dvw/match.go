package dvw

import (
	"path/filepath"
	"strings"
	"time"
)

// Match is the decoded aggregate of one scout file. Every collection may
// be empty; the zero-value shape is preserved so callers never branch on
// presence before ranging.
type Match struct {
	// Filename is the source file name without extension; "" when the
	// match was parsed from memory.
	Filename string `json:"filename,omitempty"`

	// MatchID is the resolved match identifier, never empty.
	MatchID string `json:"match_id"`

	// Date is the match start time from the header; nil when absent.
	Date *time.Time `json:"match_date,omitempty"`

	// Comments is the [3COMMENTS] text, lines joined with newlines.
	Comments string `json:"comments,omitempty"`

	Teams       Teams               `json:"teams"`
	SetScores   SetScores           `json:"set_scores"`
	Result      MatchResult         `json:"match_result"`
	Players     Players             `json:"players"`
	Attacks     []AttackCombination `json:"attack_combinations"`
	SetterCalls []SetterCall        `json:"setter_calls"`
}

// Parse decodes a scout document held in memory. It never fails: any
// input, including an empty string, yields a valid aggregate whose
// unparseable parts are simply empty.
func Parse(doc string, opts ...Option) *Match {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	teams := decodeTeams(doc)
	scores := decodeSetScores(doc)
	return &Match{
		MatchID:     resolveMatchID(doc, o.ids),
		Date:        extractDate(doc),
		Comments:    extractComments(doc),
		Teams:       teams,
		SetScores:   scores,
		Result:      deriveResult(scores),
		Players:     decodePlayers(doc, teams, o.ids),
		Attacks:     decodeAttacks(doc),
		SetterCalls: decodeSetterCalls(doc),
	}
}

// ParseFile loads and decodes a scout file. The only failure mode is
// I/O: once the text is in memory, decoding cannot fail.
func ParseFile(path string, opts ...Option) (*Match, error) {
	doc, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	m := Parse(doc, opts...)
	m.Filename = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return m, nil
}

// AttackByCode returns the attack combination with the given code.
func (m *Match) AttackByCode(code string) (AttackCombination, bool) {
	for _, combo := range m.Attacks {
		if combo.Code == code {
			return combo, true
		}
	}
	return AttackCombination{}, false
}

// AttacksByType returns every attack combination of the given tempo
// type letter.
func (m *Match) AttacksByType(attackType string) []AttackCombination {
	var out []AttackCombination
	for _, combo := range m.Attacks {
		if combo.Type == attackType {
			out = append(out, combo)
		}
	}
	return out
}

// AttacksByZone returns every attack combination starting from the
// given court zone.
func (m *Match) AttacksByZone(zone int) []AttackCombination {
	var out []AttackCombination
	for _, combo := range m.Attacks {
		if combo.Zone != nil && *combo.Zone == zone {
			out = append(out, combo)
		}
	}
	return out
}

// CallByCode returns the setter call with the given code.
func (m *Match) CallByCode(code string) (SetterCall, bool) {
	for _, call := range m.SetterCalls {
		if call.Code == code {
			return call, true
		}
	}
	return SetterCall{}, false
}

// CallsWithAdditionalCodes returns the setter calls carrying extra
// codes.
func (m *Match) CallsWithAdditionalCodes() []SetterCall {
	var out []SetterCall
	for _, call := range m.SetterCalls {
		if call.HasAdditionalCodes() {
			out = append(out, call)
		}
	}
	return out
}

// Summary condenses a match into the fields a report header needs.
type Summary struct {
	MatchID         string     `json:"match_id"`
	Date            *time.Time `json:"date,omitempty"`
	HomeTeam        string     `json:"home_team,omitempty"`
	VisitingTeam    string     `json:"visiting_team,omitempty"`
	HomeSets        int        `json:"home_sets"`
	VisitingSets    int        `json:"visiting_sets"`
	Winner          string     `json:"winner"`
	HomePlayers     int        `json:"home_players"`
	VisitingPlayers int        `json:"visiting_players"`
}

// Summary derives the report header view of the match. Winner carries
// the winning team's name, or "Tie" when neither side won more sets.
func (m *Match) Summary() Summary {
	winner := "Tie"
	switch m.Result.Winner {
	case WinnerHome:
		winner = m.Teams.Home
	case WinnerVisiting:
		winner = m.Teams.Visiting
	}
	return Summary{
		MatchID:         m.MatchID,
		Date:            m.Date,
		HomeTeam:        m.Teams.Home,
		VisitingTeam:    m.Teams.Visiting,
		HomeSets:        m.Result.HomeSets,
		VisitingSets:    m.Result.VisitingSets,
		Winner:          winner,
		HomePlayers:     len(m.Players.Home),
		VisitingPlayers: len(m.Players.Visiting),
	}
}
