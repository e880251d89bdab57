package dvw

import (
	"sort"
	"strings"
)

// minSetFields is the admission gate for a [3SET] record line.
const minSetFields = 6

// SetScore is the final score of one set.
type SetScore struct {
	Home     int `json:"home"`
	Visiting int `json:"visiting"`
}

// SetScores maps set number (1-based) to the final score. Sets whose
// line could not be decoded have no entry; set numbers still advance
// over skipped lines, so entry 3 always means the third set line.
type SetScores map[int]SetScore

// Winner identifies the side that took more sets.
type Winner string

const (
	WinnerHome     Winner = "home"
	WinnerVisiting Winner = "visiting"
	WinnerTie      Winner = "tie"
)

// MatchResult aggregates the set score table into a match outcome.
type MatchResult struct {
	HomeSets     int    `json:"home_sets_won"`
	VisitingSets int    `json:"visiting_sets_won"`
	TotalSets    int    `json:"total_sets_played"`
	Winner       Winner `json:"winner"`
}

// scoreStep is one attempt at reading a set line's final score. Steps
// run in order; the first success wins.
type scoreStep func(Fields) (SetScore, bool)

var scoreSteps = []scoreStep{
	scoreFromFinalField,
	scoreFromRunningFields,
}

// decodeSetScores walks the [3SET] lines in order, numbering every line
// whether or not it decodes.
func decodeSetScores(doc string) SetScores {
	scores := make(SetScores)
	for i, line := range sectionLines(doc, markerSet, setTerminators) {
		if score, ok := decodeSetLine(splitFields(line)); ok {
			scores[i+1] = score
		}
	}
	return scores
}

// decodeSetLine reads one set line. It reports false for lines below
// the admission gate, unplayed sets and undecodable scores alike: a set
// with no parseable score contributes nothing, never a partial entry.
func decodeSetLine(f Fields) (SetScore, bool) {
	if f.Len() < minSetFields {
		return SetScore{}, false
	}
	if setNotPlayed(f) {
		return SetScore{}, false
	}
	for _, step := range scoreSteps {
		if score, ok := step(f); ok {
			return score, true
		}
	}
	return SetScore{}, false
}

// setNotPlayed detects the shape a producer writes for a set that never
// happened: the four running score fields blank while the duration
// field is numeric. Applied uniformly to every set number.
func setNotPlayed(f Fields) bool {
	for i := 1; i <= 4; i++ {
		if strings.TrimSpace(f.At(i)) != "" {
			return false
		}
	}
	return isDigits(strings.TrimSpace(f.At(5)))
}

// scoreFromFinalField reads the combined "home-visiting" pair from the
// final score field (position 4).
func scoreFromFinalField(f Fields) (SetScore, bool) {
	tok := strings.TrimSpace(f.At(4))
	if !strings.Contains(tok, "-") {
		return SetScore{}, false
	}
	return parseScorePair(tok)
}

// scoreFromRunningFields handles files whose final score landed in one
// of the running score fields (positions 1-4) while position 5 holds
// the numeric set duration. It applies only when the final score field
// carries no pair at all: a malformed pair there means the set is
// undecodable, not that another encoding should be tried. Fields are
// tried in order; the first pair that parses wins.
func scoreFromRunningFields(f Fields) (SetScore, bool) {
	if strings.Contains(strings.TrimSpace(f.At(4)), "-") {
		return SetScore{}, false
	}
	if !isDigits(strings.TrimSpace(f.At(5))) {
		return SetScore{}, false
	}
	for i := 1; i <= 4; i++ {
		tok := f.At(i)
		if !strings.Contains(tok, "-") {
			continue
		}
		if score, ok := parseScorePair(tok); ok {
			return score, true
		}
	}
	return SetScore{}, false
}

// parseScorePair splits a "home-visiting" token into both scores. The
// pair must have exactly two integer halves.
func parseScorePair(tok string) (SetScore, bool) {
	halves := strings.Split(tok, "-")
	if len(halves) != 2 {
		return SetScore{}, false
	}
	home := asInt(strings.TrimSpace(halves[0]))
	visiting := asInt(strings.TrimSpace(halves[1]))
	if home == nil || visiting == nil {
		return SetScore{}, false
	}
	return SetScore{Home: *home, Visiting: *visiting}, true
}

// deriveResult counts sets won per side. An equal set score increments
// neither side but still counts as played; never occurs in valid data
// but must not derail the aggregate. An empty table yields a zeroed
// result with a tie winner.
func deriveResult(scores SetScores) MatchResult {
	result := MatchResult{Winner: WinnerTie}
	for _, set := range sortedSetNumbers(scores) {
		score := scores[set]
		switch {
		case score.Home > score.Visiting:
			result.HomeSets++
		case score.Visiting > score.Home:
			result.VisitingSets++
		}
		result.TotalSets++
	}
	switch {
	case result.HomeSets > result.VisitingSets:
		result.Winner = WinnerHome
	case result.VisitingSets > result.HomeSets:
		result.Winner = WinnerVisiting
	}
	return result
}

// sortedSetNumbers returns the recorded set numbers in playing order.
func sortedSetNumbers(scores SetScores) []int {
	sets := make([]int, 0, len(scores))
	for set := range scores {
		sets = append(sets, set)
	}
	sort.Ints(sets)
	return sets
}
