package dvw

// minTeamFields is the admission gate for a [3TEAMS] record line.
const minTeamFields = 2

// Teams holds the two competing team names. Sides are positional: the
// first admitted line of [3TEAMS] names the home team, the second the
// visiting team. A missing or empty name stays "".
type Teams struct {
	Home     string `json:"home,omitempty"`
	Visiting string `json:"visiting,omitempty"`
}

// decodeTeams extracts the team names from the document. Lines below the
// admission gate are dropped and do not consume a side slot; admitted
// lines beyond the second are ignored.
func decodeTeams(doc string) Teams {
	var teams Teams
	admitted := 0
	for _, line := range sectionLines(doc, markerTeams, teamsTerminators) {
		f := splitFields(line)
		if f.Len() < minTeamFields {
			continue
		}
		switch admitted {
		case 0:
			teams.Home = f.At(1)
		case 1:
			teams.Visiting = f.At(1)
		}
		admitted++
	}
	return teams
}
