package dvw

import (
	"strconv"
	"strings"
)

// Fields is the ordered token sequence of one record line, split on the
// semicolon delimiter. Empty tokens are legitimate: they mean "no value
// at this position", not a parse failure.
type Fields struct {
	toks []string
}

// splitFields tokenizes a record line. Tokens are never trimmed or
// merged; embedded delimiters always split.
func splitFields(line string) Fields {
	return Fields{toks: strings.Split(line, ";")}
}

// Len reports the number of tokens, used by the per-kind admission gates.
func (f Fields) Len() int {
	return len(f.toks)
}

// At returns the token at position i, or "" when the line is too short.
// Out-of-range access is absorbed here so decoders never index-guard.
func (f Fields) At(i int) string {
	if i < 0 || i >= len(f.toks) {
		return ""
	}
	return f.toks[i]
}

// Raw returns a copy of the token sequence. Decoders attach it to their
// records so undocumented trailing fields survive a decode round trip.
func (f Fields) Raw() []string {
	out := make([]string, len(f.toks))
	copy(out, f.toks)
	return out
}

// asInt parses an unsigned decimal token. It returns nil for an empty
// token or any token containing a non-digit, including sign prefixes:
// the format's numeric fields are unsigned.
func asInt(tok string) *int {
	if !isDigits(tok) {
		return nil
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return nil
	}
	return &n
}

// isDigits reports whether s is nonempty and all ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// asFlag reports whether tok equals the given true literal exactly.
// Anything else, including an empty token, is false.
func asFlag(tok, literal string) bool {
	return tok == literal
}

// asList splits a comma-separated token into trimmed, nonempty pieces.
// An empty token yields an empty list, never an error.
func asList(tok string) []string {
	if tok == "" {
		return nil
	}
	var out []string
	for _, piece := range strings.Split(tok, ",") {
		if piece = strings.TrimSpace(piece); piece != "" {
			out = append(out, piece)
		}
	}
	return out
}
