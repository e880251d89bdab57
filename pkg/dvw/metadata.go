package dvw

import (
	"strings"
	"time"
)

// headerDateLayout matches the producer's header timestamp: an American
// date field followed by a dot-separated time field.
const headerDateLayout = "01/02/2006 15.04.05"

// extractDate reads the match date from the first two header fields.
// Returns nil when the header or either field is missing or malformed.
func extractDate(doc string) *time.Time {
	line, ok := headerLine(doc)
	if !ok {
		return nil
	}
	f := splitFields(line)
	stamp := strings.TrimSpace(f.At(0)) + " " + strings.TrimSpace(f.At(1))
	t, err := time.Parse(headerDateLayout, stamp)
	if err != nil {
		return nil
	}
	return &t
}

// extractComments joins the nonempty [3COMMENTS] lines with newlines.
// Returns "" when the section is missing or empty.
func extractComments(doc string) string {
	return strings.Join(sectionLines(doc, markerComments, commentsTerminators), "\n")
}
