package dvw

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ReadFile loads a scout file and returns its decoded text. Files are
// read as UTF-8; byte sequences that are not valid UTF-8 fall back to a
// Latin-1 decode, which accepts every byte value. Older scouting tools
// write Latin-1. Line endings are normalized to LF so blank-line
// section boundaries match in Windows exports.
func ReadFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read scout file: %w", err)
	}
	if utf8.Valid(raw) {
		return normalizeNewlines(string(raw)), nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decode scout file %s: %w", path, err)
	}
	return normalizeNewlines(string(decoded)), nil
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
