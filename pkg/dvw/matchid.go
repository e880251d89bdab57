package dvw

import "strings"

// matchIDDigitRun is the minimum digit run length the header scan
// accepts as a match identifier.
const matchIDDigitRun = 5

// idStep is one attempt at resolving the match identifier. Steps run in
// order; the first success wins.
type idStep func(doc string, ids IDSource) (string, bool)

var matchIDSteps = []idStep{
	idFromHeaderField,
	idFromHeaderDigits,
	idGenerated,
}

// resolveMatchID produces the match identifier through the ordered
// fallback chain. It always succeeds: the final step generates a token.
func resolveMatchID(doc string, ids IDSource) string {
	for _, step := range matchIDSteps {
		if id, ok := step(doc, ids); ok {
			return id
		}
	}
	return ids.MatchID()
}

// headerLine returns the first record line of the [3MATCH] section.
func headerLine(doc string) (string, bool) {
	lines := sectionLines(doc, markerMatch, matchTerminators)
	if len(lines) == 0 {
		return "", false
	}
	return lines[0], true
}

// idFromHeaderField uses the 8th header field verbatim when present,
// numeric or not.
func idFromHeaderField(doc string, _ IDSource) (string, bool) {
	line, ok := headerLine(doc)
	if !ok {
		return "", false
	}
	f := splitFields(line)
	if f.Len() < 8 {
		return "", false
	}
	id := strings.TrimSpace(f.At(7))
	return id, id != ""
}

// idFromHeaderDigits scans the header line for the first run of five or
// more consecutive digits.
func idFromHeaderDigits(doc string, _ IDSource) (string, bool) {
	line, ok := headerLine(doc)
	if !ok {
		return "", false
	}
	run := digitRun(line, matchIDDigitRun)
	return run, run != ""
}

// idGenerated synthesizes a fresh token. Uniqueness across processes is
// not guaranteed; the token is a last-resort label.
func idGenerated(_ string, ids IDSource) (string, bool) {
	return ids.MatchID(), true
}

// digitRun returns the first maximal run of at least min consecutive
// ASCII digits in s, or "".
func digitRun(s string, min int) string {
	start := -1
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] >= '0' && s[i] <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 && i-start >= min {
			return s[start:i]
		}
		start = -1
	}
	return ""
}
