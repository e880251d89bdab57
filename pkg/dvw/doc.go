// Package dvw decodes DataVolley scout files (.dvw) into structured
// match records.
//
// A scout file is one text document divided into bracketed sections such
// as [3MATCH], [3TEAMS] or [3PLAYERS-H]. Each section holds one table of
// semicolon-delimited records. This package locates the sections it
// understands, tokenizes their lines and assembles one Match aggregate.
//
// Decoding never fails: a missing section yields an empty collection,
// a malformed line is dropped, a malformed optional field becomes its
// zero value. Errors are returned only by the file loading helpers.
//
// # Usage
//
// Parse a file from disk:
//
//	match, err := dvw.ParseFile("match.dvw")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(match.Teams.Home, "vs", match.Teams.Visiting)
//
// Or parse text that is already in memory:
//
//	match := dvw.Parse(content)
//
// # Deterministic identifiers
//
// Records missing an identifier receive a generated one. Tests that need
// reproducible output can inject their own source:
//
//	match := dvw.Parse(content, dvw.WithIDSource(myFixedSource))
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package dvw
