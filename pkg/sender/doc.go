// Package sender uploads decoded matches to the scoutship service.
//
// Matches travel as a single multipart request: a "manifest" form
// field carries a JSON summary of the batch (agent identity plus one
// entry per match), and a "matches" file part carries the decoded
// matches themselves as a JSON array. The service either accepts the
// whole batch or rejects it; a rejected batch is retried as a unit.
//
// # Usage
//
//	s := sender.NewHTTPSender(&http.Client{Timeout: 30 * time.Second})
//
//	err := s.Send(ctx, matches, sender.Metadata{
//		AgentID:    "courtside-01",
//		Hostname:   hostname,
//		OSArch:     runtime.GOOS + "/" + runtime.GOARCH,
//		AuthKey:    key,
//		ServiceURL: "https://ingest.example.com",
//	})
//
// # Version
//
// Current version: 1.1.0 (see Version constant)
//
// The sender module follows semantic versioning. The wire format is
// backward compatible within a major version.
package sender
