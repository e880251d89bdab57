package dvw

import "sort"

// minPlayerFields is the admission gate for a roster record line.
const minPlayerFields = 10

// setsPerMatch is the number of per-set starting position slots on a
// roster line.
const setsPerMatch = 5

// Side identifies one of the two rosters. Sides come from the physical
// section a line was read from ([3PLAYERS-H] vs [3PLAYERS-V]), never
// from a field on the line.
type Side string

const (
	SideHome     Side = "home"
	SideVisiting Side = "visiting"
)

// Player is one decoded roster line.
//
// Positional layout: 1 shirt number, 3-7 starting positions for sets
// 1-5, 8 identifier, 9 last name, 10 first name, 11 nickname, 12 role,
// 13 captain marker "C", 14 libero marker "True". Field 0 carries a team
// slot the decoder ignores.
type Player struct {
	// Team is the name of the player's team, defaulted to "Home" or
	// "Visiting" when [3TEAMS] did not provide one.
	Team string `json:"team,omitempty"`

	// Number is the shirt number; nil when missing or malformed.
	Number *int `json:"player_number,omitempty"`

	// ID identifies the player. When the file leaves it blank a
	// generated token is substituted so every record has an identity.
	ID string `json:"player_id"`

	LastName  string `json:"last_name,omitempty"`
	FirstName string `json:"first_name,omitempty"`

	// FullName is first and last name joined with one space; "" when
	// both are absent.
	FullName string `json:"full_name,omitempty"`

	Nickname string `json:"nickname,omitempty"`
	Role     string `json:"role,omitempty"`
	Captain  bool   `json:"captain,omitempty"`
	Libero   bool   `json:"libero,omitempty"`

	// StartingPositions holds the position code per set 1-5. A literal
	// "*" or empty field both normalize to "": not starting that set.
	StartingPositions [setsPerMatch]string `json:"starting_positions"`

	// Raw preserves the undecoded token sequence of the line.
	Raw []string `json:"raw_data,omitempty"`
}

// Players holds the two rosters in document order.
type Players struct {
	Home     []Player `json:"home"`
	Visiting []Player `json:"visiting"`
}

// decodePlayers extracts both rosters. Roster membership depends only on
// which section a line came from; the team name attached to each player
// is informational.
func decodePlayers(doc string, teams Teams, ids IDSource) Players {
	homeTeam := teams.Home
	if homeTeam == "" {
		homeTeam = "Home"
	}
	visitingTeam := teams.Visiting
	if visitingTeam == "" {
		visitingTeam = "Visiting"
	}
	return Players{
		Home:     decodeRoster(sectionLines(doc, markerPlayersHome, playersHomeTerminators), homeTeam, ids),
		Visiting: decodeRoster(sectionLines(doc, markerPlayersVisiting, playersVisitingTerminators), visitingTeam, ids),
	}
}

func decodeRoster(lines []string, team string, ids IDSource) []Player {
	var roster []Player
	for _, line := range lines {
		if p, ok := decodePlayer(splitFields(line), team, ids); ok {
			roster = append(roster, p)
		}
	}
	return roster
}

// decodePlayer maps one roster line to a Player. Lines below the
// admission gate yield no record.
func decodePlayer(f Fields, team string, ids IDSource) (Player, bool) {
	if f.Len() < minPlayerFields {
		return Player{}, false
	}

	p := Player{
		Team:      team,
		Number:    asInt(f.At(1)),
		ID:        f.At(8),
		LastName:  f.At(9),
		FirstName: f.At(10),
		Nickname:  f.At(11),
		Role:      f.At(12),
		Captain:   asFlag(f.At(13), "C"),
		Libero:    asFlag(f.At(14), "True"),
		Raw:       f.Raw(),
	}
	if p.ID == "" {
		p.ID = ids.PlayerID()
	}
	for set := 0; set < setsPerMatch; set++ {
		pos := f.At(3 + set)
		if pos == "*" {
			pos = ""
		}
		p.StartingPositions[set] = pos
	}
	p.FullName = joinName(p.FirstName, p.LastName)
	return p, true
}

// joinName joins the nonempty name parts with a single space.
func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}

// roster returns the roster for a side; an unknown side is empty.
func (p Players) roster(side Side) []Player {
	switch side {
	case SideHome:
		return p.Home
	case SideVisiting:
		return p.Visiting
	}
	return nil
}

// ByNumber returns the first player on the given side wearing the shirt
// number, or false when no roster entry matches.
func (p Players) ByNumber(side Side, number int) (Player, bool) {
	for _, pl := range p.roster(side) {
		if pl.Number != nil && *pl.Number == number {
			return pl, true
		}
	}
	return Player{}, false
}

// ByTeam returns every player whose team name matches, across both
// rosters.
func (p Players) ByTeam(team string) []Player {
	var out []Player
	for _, pl := range p.Home {
		if pl.Team == team {
			out = append(out, pl)
		}
	}
	for _, pl := range p.Visiting {
		if pl.Team == team {
			out = append(out, pl)
		}
	}
	return out
}

// StartingLineup returns the side's players holding a positive shirt
// number, sorted by number, capped at the six court positions.
func (p Players) StartingLineup(side Side) []Player {
	var lineup []Player
	for _, pl := range p.roster(side) {
		if pl.Number != nil && *pl.Number > 0 {
			lineup = append(lineup, pl)
		}
	}
	sort.SliceStable(lineup, func(i, j int) bool {
		return *lineup[i].Number < *lineup[j].Number
	})
	if len(lineup) > 6 {
		lineup = lineup[:6]
	}
	return lineup
}

// String returns the player's display name: full name when known,
// otherwise the identifier.
func (p Player) String() string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.ID
}
