package dvw

import "strings"

// Section markers as written by the producing tools. The spelling is part
// of the file format and must not change.
const (
	markerMatch           = "[3MATCH]"
	markerTeams           = "[3TEAMS]"
	markerComments        = "[3COMMENTS]"
	markerSet             = "[3SET]"
	markerPlayersHome     = "[3PLAYERS-H]"
	markerPlayersVisiting = "[3PLAYERS-V]"
	markerAttacks         = "[3ATTACKCOMBINATION]"
	markerSetterCalls     = "[3SETTERCALL]"

	// sectionPrefix matches the start of any section tag and acts as the
	// generic "next section" terminator.
	sectionPrefix = "[3"

	// blankLine terminates sections that end at an empty line.
	blankLine = "\n\n"
)

// Terminator lists per section, ordered explicit tag first, then the
// generic prefix, then the blank line. The body always ends at the
// earliest occurrence of any listed terminator; the explicit tag is kept
// in front so each list documents which neighbour bounds the section.
// [3SET] deliberately has no blank-line terminator.
var (
	matchTerminators           = []string{sectionPrefix, blankLine}
	teamsTerminators           = []string{sectionPrefix, blankLine}
	commentsTerminators        = []string{sectionPrefix, blankLine}
	setTerminators             = []string{sectionPrefix}
	playersHomeTerminators     = []string{markerPlayersVisiting, sectionPrefix, blankLine}
	playersVisitingTerminators = []string{sectionPrefix, blankLine}
	attackTerminators          = []string{markerSetterCalls, sectionPrefix, blankLine}
	setterCallTerminators      = []string{sectionPrefix, blankLine}
)

// locateSection extracts the body of the section introduced by marker.
// The body runs from just after the marker to the earliest occurrence of
// any terminator, or to the end of the document when none occurs. A
// missing marker reports ok == false; absence is not an error.
func locateSection(doc, marker string, terminators []string) (body string, ok bool) {
	start := strings.Index(doc, marker)
	if start < 0 {
		return "", false
	}
	rest := doc[start+len(marker):]
	end := len(rest)
	for _, term := range terminators {
		if i := strings.Index(rest, term); i >= 0 && i < end {
			end = i
		}
	}
	return rest[:end], true
}

// splitLines returns the trimmed, nonempty lines of a section body in
// document order. Line order is meaningful: it encodes roster slots and
// set numbers.
func splitLines(body string) []string {
	var lines []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// sectionLines locates a section and tokenizes it into record lines in
// one step. A missing section yields no lines.
func sectionLines(doc, marker string, terminators []string) []string {
	body, ok := locateSection(doc, marker, terminators)
	if !ok {
		return nil
	}
	return splitLines(body)
}
